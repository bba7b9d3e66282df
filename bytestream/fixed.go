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

package bytestream

import "io"

// FixedBuffer is an [io.Writer] backed by a caller-provided slice.
// Once the slice is full, further writes fail with [io.ErrShortWrite].
type FixedBuffer struct {
	buf []byte
	n   int
}

// NewFixedBuffer returns a FixedBuffer which stores data in buf.
func NewFixedBuffer(buf []byte) *FixedBuffer {
	return &FixedBuffer{buf: buf}
}

// Write implements the [io.Writer] interface.
// If p does not fit, the leading part which fits is stored and
// [io.ErrShortWrite] is returned.
func (b *FixedBuffer) Write(p []byte) (int, error) {
	n := copy(b.buf[b.n:], p)
	b.n += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteByte implements the [io.ByteWriter] interface.
func (b *FixedBuffer) WriteByte(c byte) error {
	if b.n >= len(b.buf) {
		return io.ErrShortWrite
	}
	b.buf[b.n] = c
	b.n++
	return nil
}

// Len returns the number of bytes written so far.
func (b *FixedBuffer) Len() int {
	return b.n
}

// Available returns the number of bytes which can still be written.
func (b *FixedBuffer) Available() int {
	return len(b.buf) - b.n
}

// Bytes returns the part of the buffer which has been written.
func (b *FixedBuffer) Bytes() []byte {
	return b.buf[:b.n]
}
