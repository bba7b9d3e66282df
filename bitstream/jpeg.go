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
)

// MarkerError is recorded by a JPEG [Reader] when a 0xFF byte in the input
// is not followed by a stuffing byte 0x00.
type MarkerError struct {
	Pos    int  // offset of the 0xFF byte
	Marker byte // the byte following 0xFF
}

func (err *MarkerError) Error() string {
	return fmt.Sprintf("bitstream: unexpected JPEG marker 0xFF%02X at byte %d",
		err.Marker, err.Pos)
}

// fillStuffed transfers one byte into the cache, removing the 0x00 which
// follows every 0xFF.
func (r *Reader) fillStuffed() {
	if r.err != nil || r.pos >= len(r.data) {
		r.pushPadding(8)
		return
	}

	b := r.data[r.pos]
	if b == 0xFF {
		if r.pos+1 >= len(r.data) {
			r.setErr(io.ErrUnexpectedEOF)
			r.pushPadding(8)
			return
		}
		if next := r.data[r.pos+1]; next != 0x00 {
			r.setErr(&MarkerError{Pos: r.pos, Marker: next})
			r.pushPadding(8)
			return
		}
		r.pos++
	}
	r.pos++
	r.cache.Push(uint64(b), 8)
}

// stuff appends the bytes of src to dst, inserting 0x00 after every 0xFF.
func stuff(dst, src []byte) []byte {
	for _, b := range src {
		dst = append(dst, b)
		if b == 0xFF {
			dst = append(dst, 0x00)
		}
	}
	return dst
}
