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

// Package bytestream reads and writes fixed-width integers and IEEE floats
// from and to byte buffers, in either byte order.
//
// Reading is done through a [Stream], a cursor over an immutable byte slice.
// Callers are expected to check the available capacity (see [Stream.Check])
// before reading: reading past the end of the data is a programming error
// and causes a panic.  Writing is done through a [Writer], which reports
// failures of the underlying [io.Writer] as ordinary errors.
package bytestream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Endianness selects the byte order of multi-byte values.
type Endianness int

// These are the supported byte orders.
const (
	Little Endianness = iota
	Big
)

func (e Endianness) String() string {
	switch e {
	case Little:
		return "little-endian"
	case Big:
		return "big-endian"
	default:
		return fmt.Sprintf("Endianness(%d)", int(e))
	}
}

// ByteOrder returns the corresponding [binary.ByteOrder].
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Uint16 decodes the first two bytes of b.
func (e Endianness) Uint16(b []byte) uint16 {
	if e == Big {
		return binary.BigEndian.Uint16(b)
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32 decodes the first four bytes of b.
func (e Endianness) Uint32(b []byte) uint32 {
	if e == Big {
		return binary.BigEndian.Uint32(b)
	}
	return binary.LittleEndian.Uint32(b)
}

// Uint64 decodes the first eight bytes of b.
func (e Endianness) Uint64(b []byte) uint64 {
	if e == Big {
		return binary.BigEndian.Uint64(b)
	}
	return binary.LittleEndian.Uint64(b)
}

// PutUint16 encodes v into the first two bytes of b.
func (e Endianness) PutUint16(b []byte, v uint16) {
	if e == Big {
		binary.BigEndian.PutUint16(b, v)
	} else {
		binary.LittleEndian.PutUint16(b, v)
	}
}

// PutUint32 encodes v into the first four bytes of b.
func (e Endianness) PutUint32(b []byte, v uint32) {
	if e == Big {
		binary.BigEndian.PutUint32(b, v)
	} else {
		binary.LittleEndian.PutUint32(b, v)
	}
}

// PutUint64 encodes v into the first eight bytes of b.
func (e Endianness) PutUint64(b []byte, v uint64) {
	if e == Big {
		binary.BigEndian.PutUint64(b, v)
	} else {
		binary.LittleEndian.PutUint64(b, v)
	}
}

// Value lists the types which can be read from a [Stream] and written to a
// [Writer].
type Value interface {
	uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		float32 | float64
}

// Size returns the encoded size of a value of type T, in bytes.
func Size[T Value]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

// encode stores v into buf, which must have room for Size[T]() bytes.
func encode[T Value](e Endianness, buf []byte, v T) {
	switch v := any(v).(type) {
	case uint8:
		buf[0] = v
	case int8:
		buf[0] = byte(v)
	case uint16:
		e.PutUint16(buf, v)
	case int16:
		e.PutUint16(buf, uint16(v))
	case uint32:
		e.PutUint32(buf, v)
	case int32:
		e.PutUint32(buf, uint32(v))
	case float32:
		e.PutUint32(buf, math.Float32bits(v))
	case uint64:
		e.PutUint64(buf, v)
	case int64:
		e.PutUint64(buf, uint64(v))
	case float64:
		e.PutUint64(buf, math.Float64bits(v))
	}
}

// decode reads a value of type T from the start of buf.
func decode[T Value](e Endianness, buf []byte) T {
	var res any
	var zero T
	switch any(zero).(type) {
	case uint8:
		res = buf[0]
	case int8:
		res = int8(buf[0])
	case uint16:
		res = e.Uint16(buf)
	case int16:
		res = int16(e.Uint16(buf))
	case uint32:
		res = e.Uint32(buf)
	case int32:
		res = int32(e.Uint32(buf))
	case float32:
		res = math.Float32frombits(e.Uint32(buf))
	case uint64:
		res = e.Uint64(buf)
	case int64:
		res = int64(e.Uint64(buf))
	case float64:
		res = math.Float64frombits(e.Uint64(buf))
	}
	return res.(T)
}

// Stream is a read cursor over an immutable byte slice.
type Stream struct {
	data  []byte
	pos   int
	Order Endianness
}

// NewStream returns a stream which reads data, starting at offset 0.
func NewStream(data []byte, order Endianness) *Stream {
	return &Stream{data: data, Order: order}
}

// Position returns the number of bytes consumed so far.
func (s *Stream) Position() int {
	return s.pos
}

// Remaining returns the number of bytes which can still be read.
func (s *Stream) Remaining() int {
	return len(s.data) - s.pos
}

// Check returns [io.ErrUnexpectedEOF] if fewer than n bytes remain.
func (s *Stream) Check(n int) error {
	if n < 0 || n > s.Remaining() {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// Skip advances the cursor by n bytes.
func (s *Stream) Skip(n int) {
	s.need(n)
	s.pos += n
}

// Peek returns the next n bytes without consuming them.
// The returned slice aliases the underlying data.
func (s *Stream) Peek(n int) []byte {
	s.need(n)
	return s.data[s.pos : s.pos+n]
}

// Bytes consumes the next n bytes and returns them.
// The returned slice aliases the underlying data.
func (s *Stream) Bytes(n int) []byte {
	b := s.Peek(n)
	s.pos += n
	return b
}

func (s *Stream) need(n int) {
	if n < 0 || n > s.Remaining() {
		panic(fmt.Sprintf("bytestream: read of %d bytes at offset %d overruns %d byte buffer",
			n, s.pos, len(s.data)))
	}
}

// Get reads the next value of type T from s.
// This panics if not enough data remains.
func Get[T Value](s *Stream) T {
	n := Size[T]()
	return decode[T](s.Order, s.Bytes(n))
}

// Writer encodes values onto an [io.Writer].
type Writer struct {
	w     io.Writer
	Order Endianness
	buf   [8]byte
}

// NewWriter returns a Writer which writes to w using the given byte order.
func NewWriter(w io.Writer, order Endianness) *Writer {
	return &Writer{w: w, Order: order}
}

// Write passes p through to the underlying writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Put writes v to w.
func Put[T Value](w *Writer, v T) error {
	n := Size[T]()
	encode(w.Order, w.buf[:n], v)
	k, err := w.w.Write(w.buf[:n])
	if err == nil && k < n {
		err = io.ErrShortWrite
	}
	return err
}
