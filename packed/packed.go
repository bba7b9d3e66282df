// seehuhn.de/go/raw - a library for reading and writing camera RAW data
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package packed converts between two-dimensional pixel arrays and the
// packed representation used by uncompressed camera RAW files.
//
// In the packed representation each pixel uses a fixed number of bits
// between 1 and 32, arranged according to one of the bit orders of package
// [bitstream].  Each row of pixels starts at a byte offset given by the row
// pitch of the packed data; bits are never carried over from one row to the
// next.
package packed

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/raw/array2d"
	"seehuhn.de/go/raw/bitcache"
	"seehuhn.de/go/raw/bitstream"
	"seehuhn.de/go/raw/bytestream"
)

// Sample lists the supported pixel types.
type Sample interface {
	~uint8 | ~uint16 | ~uint32
}

// ErrSampleRange is returned by [Packer.Pack] if a pixel value does not fit
// into the configured number of bits.
var ErrSampleRange = errors.New("sample value out of range")

func elemBits[T Sample]() int {
	return int(bitcache.BitWidth[T]())
}

func checkLayout(packed array2d.Array[byte], pixelRows int, order bitstream.Order) error {
	if !order.IsValid() {
		return fmt.Errorf("invalid bit order %d", int(order))
	}
	if packed.Height() != pixelRows {
		return fmt.Errorf("packed data has %d rows, image has %d",
			packed.Height(), pixelRows)
	}
	return nil
}

// Unpacker decodes packed data into a pixel array.
type Unpacker[T Sample] struct {
	src   array2d.Array[byte]
	order bitstream.Order
	bits  int
	dst   array2d.Array[T]
}

// NewUnpacker prepares to decode src into dst.  The packed data must have
// as many rows as dst, and each packed row must be long enough to hold
// the pixels of one row of dst.
func NewUnpacker[T Sample](src array2d.Array[byte], order bitstream.Order, depth BitDepth, dst array2d.Array[T]) (*Unpacker[T], error) {
	bits, err := depth.resolve(elemBits[T]())
	if err != nil {
		return nil, err
	}
	if err := checkLayout(src, dst.Height(), order); err != nil {
		return nil, err
	}
	if !order.Stuffed() {
		need := minRowBytes(dst.Width(), bits, order)
		if src.Width() < need {
			return nil, fmt.Errorf("packed rows have %d bytes, %d needed", src.Width(), need)
		}
	}

	u := &Unpacker[T]{
		src:   src,
		order: order,
		bits:  bits,
		dst:   dst,
	}
	return u, nil
}

// Unpack decodes all rows.  If an error is returned, the contents of the
// pixel array are unspecified.
func (u *Unpacker[T]) Unpack() error {
	for y := range u.dst.Height() {
		r := bitstream.NewReader(u.src.Row(y), u.order)
		out := u.dst.Row(y)
		for x := range out {
			out[x] = T(r.GetBits(u.bits))
		}
		if err := r.Err(); err != nil {
			return fmt.Errorf("row %d: %w", y, err)
		}
	}
	return nil
}

// Packer encodes a pixel array into packed form.
type Packer[T Sample] struct {
	dst   array2d.Array[byte]
	order bitstream.Order
	bits  int
	src   array2d.Array[T]

	extraPadding func(row int) int
}

// NewPacker prepares to encode src into dst.
//
// Each packed row is padded with zero bits to a multiple of 32 bits.  If
// extraPadding is not nil, it is called once per row and the returned
// number of zero bytes is appended after the packed data of that row.
func NewPacker[T Sample](dst array2d.Array[byte], order bitstream.Order, depth BitDepth, src array2d.Array[T], extraPadding func(row int) int) (*Packer[T], error) {
	bits, err := depth.resolve(elemBits[T]())
	if err != nil {
		return nil, err
	}
	if err := checkLayout(dst, src.Height(), order); err != nil {
		return nil, err
	}
	if need := RowBytes(src.Width(), bits); dst.Width() < need {
		return nil, fmt.Errorf("packed rows have %d bytes, %d needed", dst.Width(), need)
	}

	p := &Packer[T]{
		dst:          dst,
		order:        order,
		bits:         bits,
		src:          src,
		extraPadding: extraPadding,
	}
	return p, nil
}

// Pack encodes all rows.  Bytes of a packed row which are not written to
// are left unchanged.
//
// If the packed data of a row, including stuffing and extra padding, does
// not fit into the row, the returned error wraps [io.ErrShortWrite].
func (p *Packer[T]) Pack() error {
	var zeros [64]byte
	for y := range p.src.Height() {
		row := p.src.Row(y)
		if p.bits < 32 {
			for x, v := range row {
				if uint32(v)>>p.bits != 0 {
					return fmt.Errorf("row %d, column %d: %w", y, x, ErrSampleRange)
				}
			}
		}

		sink := bytestream.NewFixedBuffer(p.dst.Row(y))
		w := bitstream.NewWriter(sink, p.order)
		for _, v := range row {
			if err := w.PutBits(uint32(v), p.bits); err != nil {
				return fmt.Errorf("row %d: %w", y, err)
			}
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("row %d: %w", y, err)
		}

		if p.extraPadding == nil {
			continue
		}
		n := p.extraPadding(y)
		if n < 0 {
			return fmt.Errorf("row %d: negative padding %d", y, n)
		}
		for n > 0 {
			k := min(n, len(zeros))
			if _, err := sink.Write(zeros[:k]); err != nil {
				return fmt.Errorf("row %d: %w", y, err)
			}
			n -= k
		}
	}
	return nil
}

// Decode unpacks an image stored in data, as described by p.
func Decode[T Sample](data []byte, p *Params) (array2d.Array[T], error) {
	if err := p.Validate(); err != nil {
		return array2d.Array[T]{}, err
	}
	bits, err := p.BitsPerSample.resolve(elemBits[T]())
	if err != nil {
		return array2d.Array[T]{}, err
	}

	src, err := array2d.New(data, minPacked(p, bits), p.Rows, p.pitch(bits))
	if err != nil {
		return array2d.Array[T]{}, err
	}
	dst := array2d.Make[T](p.Columns, p.Rows)
	u, err := NewUnpacker(src, p.Order, Bits(bits), dst)
	if err != nil {
		return array2d.Array[T]{}, err
	}
	err = u.Unpack()
	if err != nil {
		return array2d.Array[T]{}, err
	}
	return dst, nil
}

// minPacked returns the logical width of packed rows, as seen by Decode.
// For JPEG the stuffed length is not known in advance, so the whole pitch
// is used.
func minPacked(p *Params, bits int) int {
	if p.Order.Stuffed() {
		return p.pitch(bits)
	}
	return minRowBytes(p.Columns, bits, p.Order)
}

// Encode packs the image img, as described by p.  The Columns and Rows
// fields of p must match the dimensions of img.  The result contains
// p.Rows rows of the packed row pitch each; unused bytes are zero.
func Encode[T Sample](img array2d.Array[T], p *Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if img.Width() != p.Columns || img.Height() != p.Rows {
		return nil, fmt.Errorf("image is %dx%d, parameters give %dx%d",
			img.Width(), img.Height(), p.Columns, p.Rows)
	}
	bits, err := p.BitsPerSample.resolve(elemBits[T]())
	if err != nil {
		return nil, err
	}

	pitch := p.pitch(bits)
	if p.Rows > 0 && pitch > math.MaxInt/p.Rows {
		return nil, fmt.Errorf("packed image of %d rows with pitch %d is too large", p.Rows, pitch)
	}
	buf := make([]byte, pitch*p.Rows)
	dst, err := array2d.New(buf, pitch, p.Rows, pitch)
	if err != nil {
		return nil, err
	}
	pk, err := NewPacker(dst, p.Order, Bits(bits), img, nil)
	if err != nil {
		return nil, err
	}
	err = pk.Pack()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
