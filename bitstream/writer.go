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
	"errors"
	"fmt"
	"io"
	"runtime"

	"seehuhn.de/go/raw/bitcache"
)

// Writer appends bit fields to an [io.Writer].
//
// Bits are collected in a cache and written out in 32-bit units.  When all
// values have been written, [Writer.Flush] or [Writer.Close] must be called
// to pad the last unit with zero bits and write it.  A Writer which is
// garbage collected while it still holds unwritten bits indicates a
// programming error; in this case the program is aborted.
type Writer struct {
	*writerState
}

// writerState is split from Writer so that the cleanup function can inspect
// it after the Writer has become unreachable.
type writerState struct {
	w   io.Writer
	pol policy

	cache bitcache.Cache
	buf   []byte
	n     int64

	closed bool
	err    error
}

var errClosed = errors.New("bitstream: write to closed Writer")

// NewWriter returns a Writer which writes to w using the given bit order.
func NewWriter(w io.Writer, order Order) *Writer {
	pol := order.policy()
	st := &writerState{
		w:     w,
		pol:   pol,
		cache: bitcache.New(pol.flow),
		buf:   make([]byte, 0, 2*writebackBits/8),
	}
	res := &Writer{writerState: st}
	runtime.AddCleanup(res, checkDrained, st)
	return res
}

func checkDrained(st *writerState) {
	if st.err == nil && st.cache.FillLevel() > 0 {
		panic(fmt.Sprintf("bitstream: Writer discarded with %d unflushed bits",
			st.cache.FillLevel()))
	}
}

// PutBits appends the n least significant bits of v to the stream,
// for 0 <= n <= 32.  All higher bits of v must be zero.
func (w *Writer) PutBits(v uint32, n int) error {
	if w.err != nil {
		return w.err
	}
	if n < 0 || n > bitcache.MaxFetch {
		panic(fmt.Sprintf("bitstream: cannot write %d bits at once", n))
	}
	if n < 32 && v>>n != 0 {
		panic(fmt.Sprintf("bitstream: value %#x does not fit into %d bits", v, n))
	}

	w.cache.Push(uint64(v), n)
	if w.cache.FillLevel() >= writebackBits {
		return w.drain()
	}
	return nil
}

// Flush pads the buffered bits with zeros to a multiple of 32 bits and
// writes them out.  Flushing an empty Writer writes nothing.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	fill := w.cache.FillLevel()
	if fill == 0 {
		return nil
	}
	w.cache.Push(0, writebackBits-fill)
	return w.drain()
}

// Close flushes the Writer.  Further writes fail.
// Close does not close the underlying [io.Writer].
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	err := w.Flush()
	if err == nil {
		w.closed = true
		w.err = errClosed
	}
	return err
}

// Len returns the number of bytes written to the underlying writer,
// including stuffing bytes.
func (w *Writer) Len() int64 {
	return w.n
}

// Buffered returns the number of bits waiting to be written.
func (w *Writer) Buffered() int {
	return w.cache.FillLevel()
}

// drain writes one 32-bit unit from the cache.
func (w *writerState) drain() error {
	word := w.cache.Peek(writebackBits)
	w.cache.Skip(writebackBits)

	var chunks [writebackBits / 8]byte
	c := w.pol.chunk
	bits := c * 8
	for i := range writebackBits / bits {
		var shift int
		if w.pol.flow == bitcache.HighInLowOut {
			shift = writebackBits - (i+1)*bits
		} else {
			shift = i * bits
		}
		v := word >> shift
		out := chunks[i*c : (i+1)*c]
		switch c {
		case 1:
			out[0] = byte(v)
		case 2:
			w.pol.endian.PutUint16(out, uint16(v))
		case 4:
			w.pol.endian.PutUint32(out, v)
		}
	}

	buf := w.buf[:0]
	if w.pol.stuffed {
		buf = stuff(buf, chunks[:])
	} else {
		buf = append(buf, chunks[:]...)
	}

	k, err := w.w.Write(buf)
	w.n += int64(k)
	if err == nil && k < len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = err
		w.cache.Reset()
	}
	return err
}
