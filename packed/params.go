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

package packed

import (
	"errors"
	"fmt"

	"seehuhn.de/go/raw/bitstream"
)

const (
	maxColumns  = 1 << 20
	maxRows     = 1 << 20
	maxRowPitch = 1 << 26
)

// BitDepth gives the number of bits used for each sample in the packed
// representation.  Use [Bits] for an explicit width, or [NativeBits] to use
// the width of the pixel element type.  The zero value is not valid.
type BitDepth struct {
	bits   int
	native bool
}

// Bits returns an explicit bit depth.  Valid values are 1 to 32.
func Bits(n int) BitDepth {
	return BitDepth{bits: n}
}

// NativeBits returns a bit depth equal to the size of the pixel type.
func NativeBits() BitDepth {
	return BitDepth{native: true}
}

func (d BitDepth) String() string {
	if d.native {
		return "native"
	}
	return fmt.Sprintf("%d bits", d.bits)
}

// resolve returns the bit depth to use for pixels of the given size.
func (d BitDepth) resolve(elemBits int) (int, error) {
	if d.native {
		return elemBits, nil
	}
	if d.bits < 1 || d.bits > 32 {
		return 0, fmt.Errorf("invalid bit depth %d", d.bits)
	}
	if d.bits > elemBits {
		return 0, fmt.Errorf("%d-bit samples do not fit into %d-bit pixels", d.bits, elemBits)
	}
	return d.bits, nil
}

// Params describes the layout of a packed image.
type Params struct {
	// Columns is the width of the image in pixels.
	Columns int

	// Rows is the height of the image in pixels.
	Rows int

	// BitsPerSample is the number of bits used to store each pixel.
	BitsPerSample BitDepth

	// Order is the bit order of the packed data.
	Order bitstream.Order

	// RowPitch is the distance in bytes between the starts of consecutive
	// packed rows.  If this is zero, [RowBytes] is used for non-stuffed
	// bit orders and [MaxRowBytes] for JPEG.
	RowPitch int
}

// Validate checks that the parameters describe a valid layout.
func (p *Params) Validate() error {
	if p.Columns < 0 || p.Columns > maxColumns {
		return errors.New("invalid Columns value")
	}
	if p.Rows < 0 || p.Rows > maxRows {
		return errors.New("invalid Rows value")
	}
	if !p.Order.IsValid() {
		return fmt.Errorf("invalid bit order %d", int(p.Order))
	}
	if !p.BitsPerSample.native {
		if _, err := p.BitsPerSample.resolve(32); err != nil {
			return err
		}
	}
	if p.RowPitch < 0 || p.RowPitch > maxRowPitch {
		return errors.New("invalid RowPitch value")
	}
	return nil
}

// pitch returns the packed row pitch for the given bit depth.
func (p *Params) pitch(bits int) int {
	if p.RowPitch > 0 {
		return p.RowPitch
	}
	return MaxRowBytes(p.Columns, bits, p.Order)
}

// RowBytes returns the number of bytes a [Packer] writes for a row of
// the given number of columns, not counting any stuffing bytes.
// Rows are padded to a multiple of 32 bits.
func RowBytes(columns, bits int) int {
	return (columns*bits + 31) / 32 * 4
}

// MaxRowBytes returns an upper bound for the number of bytes a [Packer]
// writes for a row, including stuffing bytes for the JPEG bit order.
func MaxRowBytes(columns, bits int, order bitstream.Order) int {
	n := RowBytes(columns, bits)
	if order.Stuffed() {
		n *= 2
	}
	return n
}

// minRowBytes returns the smallest number of bytes which can hold a row
// of the given number of columns.
func minRowBytes(columns, bits int, order bitstream.Order) int {
	chunkBits := 8 * order.ChunkSize()
	return (columns*bits + chunkBits - 1) / chunkBits * order.ChunkSize()
}
