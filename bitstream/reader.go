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

package bitstream

import (
	"fmt"
	"io"

	"seehuhn.de/go/raw/bitcache"
)

// Reader extracts bit fields from a byte slice.
//
// Past the end of the data, the reader supplies zero bits.  If any of these
// padding bits are consumed, [io.ErrUnexpectedEOF] is recorded and can be
// retrieved using [Reader.Err].  Malformed JPEG byte stuffing is recorded
// in the same way.  Once an error has been recorded, the values returned by
// the reader are meaningless.
type Reader struct {
	data []byte
	pos  int
	pol  policy

	cache bitcache.Cache

	// pad is the number of zero bits at the tail of the cache which do not
	// correspond to input data.
	pad int

	err error
}

// NewReader returns a Reader which reads data using the given bit order.
func NewReader(data []byte, order Order) *Reader {
	pol := order.policy()
	return &Reader{
		data:  data,
		pol:   pol,
		cache: bitcache.New(pol.flow),
	}
}

// Err returns the first error encountered while reading, if any.
func (r *Reader) Err() error {
	return r.err
}

// Position returns the number of input bytes transferred into the cache
// so far, including stuffing bytes.
func (r *Reader) Position() int {
	return r.pos
}

// Buffered returns the number of bits held in the cache which are backed
// by input data.
func (r *Reader) Buffered() int {
	return r.cache.FillLevel() - r.pad
}

// GetBits reads the next n bits, for 1 <= n <= 32.
func (r *Reader) GetBits(n int) uint32 {
	checkCount(n)
	r.fill(n)
	v := r.cache.Peek(n)
	r.cache.Skip(n)
	r.checkPad()
	return v
}

// PeekBits returns the next n bits without consuming them, for 1 <= n <= 32.
func (r *Reader) PeekBits(n int) uint32 {
	checkCount(n)
	r.fill(n)
	return r.cache.Peek(n)
}

// SkipBits discards the next n bits.
// Unlike for GetBits, n can be larger than 32.
func (r *Reader) SkipBits(n int) {
	if n < 0 {
		panic(fmt.Sprintf("bitstream: cannot skip %d bits", n))
	}
	for n > 0 {
		k := min(n, bitcache.MaxFetch)
		r.fill(k)
		r.cache.Skip(k)
		r.checkPad()
		n -= k
	}
}

func checkCount(n int) {
	if n < 1 || n > bitcache.MaxFetch {
		panic(fmt.Sprintf("bitstream: cannot read %d bits at once", n))
	}
}

func (r *Reader) checkPad() {
	if fill := r.cache.FillLevel(); fill < r.pad {
		r.pad = fill
		r.setErr(io.ErrUnexpectedEOF)
	}
}

func (r *Reader) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

// fill tops up the cache until at least n bits are available.
func (r *Reader) fill(n int) {
	for r.cache.FillLevel() < n {
		if r.pol.stuffed {
			r.fillStuffed()
			continue
		}

		c := r.pol.chunk
		if len(r.data)-r.pos < c {
			r.pushPadding(c * 8)
			continue
		}
		var v uint64
		switch c {
		case 1:
			v = uint64(r.data[r.pos])
		case 2:
			v = uint64(r.pol.endian.Uint16(r.data[r.pos:]))
		case 4:
			v = uint64(r.pol.endian.Uint32(r.data[r.pos:]))
		}
		r.pos += c
		r.cache.Push(v, c*8)
	}
}

func (r *Reader) pushPadding(bits int) {
	r.cache.Push(0, bits)
	r.pad += bits
}
