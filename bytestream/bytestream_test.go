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

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEndianness(t *testing.T) {
	data := []byte{42, 0}

	s := NewStream(data, Little)
	if v := Get[uint16](s); v != 42 {
		t.Errorf("little-endian: got %d, want 42", v)
	}

	s = NewStream(data, Big)
	if v := Get[uint16](s); v != 10752 {
		t.Errorf("big-endian: got %d, want 10752", v)
	}
}

func TestGetAll(t *testing.T) {
	data := []byte{
		0xFE,
		0x01, 0x02,
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0xFF,
		0xFF, 0xFE,
		0xFF, 0xFF, 0xFF, 0xFE,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
	}
	s := NewStream(data, Big)

	if v := Get[uint8](s); v != 0xFE {
		t.Errorf("uint8: got %#x", v)
	}
	if v := Get[uint16](s); v != 0x0102 {
		t.Errorf("uint16: got %#x", v)
	}
	if v := Get[uint32](s); v != 0x01020304 {
		t.Errorf("uint32: got %#x", v)
	}
	if v := Get[uint64](s); v != 0x0102030405060708 {
		t.Errorf("uint64: got %#x", v)
	}
	if v := Get[int8](s); v != -1 {
		t.Errorf("int8: got %d", v)
	}
	if v := Get[int16](s); v != -2 {
		t.Errorf("int16: got %d", v)
	}
	if v := Get[int32](s); v != -2 {
		t.Errorf("int32: got %d", v)
	}
	if v := Get[int64](s); v != -2 {
		t.Errorf("int64: got %d", v)
	}
	if s.Remaining() != 0 {
		t.Errorf("%d bytes left over", s.Remaining())
	}
}

func TestRoundTrip(t *testing.T) {
	for _, order := range []Endianness{Little, Big} {
		t.Run(order.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			w := NewWriter(buf, order)
			check := func(err error) {
				t.Helper()
				if err != nil {
					t.Fatal(err)
				}
			}
			check(Put(w, uint8(7)))
			check(Put(w, uint16(0xBEEF)))
			check(Put(w, uint32(0xDEADBEEF)))
			check(Put(w, uint64(math.MaxUint64-1)))
			check(Put(w, int8(-5)))
			check(Put(w, int16(-300)))
			check(Put(w, int32(-70000)))
			check(Put(w, int64(math.MinInt64)))
			check(Put(w, float32(1.5)))
			check(Put(w, math.Pi))

			if buf.Len() != 1+2+4+8+1+2+4+8+4+8 {
				t.Fatalf("wrong length %d", buf.Len())
			}

			s := NewStream(buf.Bytes(), order)
			got := []any{
				Get[uint8](s), Get[uint16](s), Get[uint32](s), Get[uint64](s),
				Get[int8](s), Get[int16](s), Get[int32](s), Get[int64](s),
				Get[float32](s), Get[float64](s),
			}
			want := []any{
				uint8(7), uint16(0xBEEF), uint32(0xDEADBEEF), uint64(math.MaxUint64 - 1),
				int8(-5), int16(-300), int32(-70000), int64(math.MinInt64),
				float32(1.5), math.Pi,
			}
			if d := cmp.Diff(want, got); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestReadPastEnd(t *testing.T) {
	s := NewStream([]byte{1, 2, 3}, Little)
	if err := s.Check(4); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Check(4) = %v", err)
	}
	if err := s.Check(3); err != nil {
		t.Errorf("Check(3) = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("reading past the end did not panic")
		}
	}()
	Get[uint32](s)
}

func TestFixedBuffer(t *testing.T) {
	buf := NewFixedBuffer(make([]byte, 5))
	w := NewWriter(buf, Big)

	if err := Put(w, uint32(0x01020304)); err != nil {
		t.Fatal(err)
	}
	err := Put(w, uint16(0x0506))
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("expected io.ErrShortWrite, got %v", err)
	}
	if d := cmp.Diff([]byte{1, 2, 3, 4, 5}, buf.Bytes()); d != "" {
		t.Error(d)
	}
	if buf.Available() != 0 {
		t.Errorf("Available() = %d", buf.Available())
	}
	if err := buf.WriteByte(0); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("WriteByte on full buffer: %v", err)
	}
}

func TestGrowableWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf, Little)
	for i := range 1000 {
		if err := Put(w, uint32(i)); err != nil {
			t.Fatal(err)
		}
	}
	if buf.Len() != 4000 {
		t.Errorf("wrote %d bytes, expected 4000", buf.Len())
	}
}
