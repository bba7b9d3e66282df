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

package array2d

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPitch(t *testing.T) {
	data := []uint16{
		1, 2, 3, 0xDEAD,
		4, 5, 6, 0xDEAD,
		7, 8, 9,
	}
	a, err := New(data, 3, 3, 4)
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff([]uint16{4, 5, 6}, a.Row(1)); d != "" {
		t.Error(d)
	}
	if a.At(2, 2) != 9 {
		t.Errorf("At(2, 2) = %d", a.At(2, 2))
	}

	if a.At(0, 1) != 4 || a.At(1, 0) != 2 {
		t.Errorf("At(0, 1) = %d, At(1, 0) = %d", a.At(0, 1), a.At(1, 0))
	}

	a.Set(1, 0, 42)
	if data[1] != 42 {
		t.Error("Set did not write through to the storage")
	}

	// appending to a row must not clobber the padding
	row := a.Row(0)
	_ = append(row, 99)
	if data[3] != 0xDEAD {
		t.Error("padding was overwritten")
	}
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		n, width, height, pitch int
	}{
		{12, 4, 3, 3},                // pitch < width
		{10, 4, 3, 4},                // too short
		{12, -1, 3, 4},               // negative width
		{4, 1, math.MaxInt/4 + 2, 4}, // size overflows
		{4, 2, math.MaxInt, 2},       // size overflows
		{8, 8, 2, math.MaxInt - 4},   // size overflows
	}
	for _, c := range cases {
		_, err := New(make([]byte, c.n), c.width, c.height, c.pitch)
		if err == nil {
			t.Errorf("New(%d, %d, %d, %d) succeeded", c.n, c.width, c.height, c.pitch)
		}
	}

	if _, err := New[byte](nil, 0, 0, 0); err != nil {
		t.Errorf("empty array: %v", err)
	}
}

func TestRowRange(t *testing.T) {
	a := Make[uint8](2, 2)
	defer func() {
		if recover() == nil {
			t.Error("out of range row did not panic")
		}
	}()
	a.Row(2)
}

func TestMakeTooLarge(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("overflowing size did not panic")
		}
	}()
	Make[byte](math.MaxInt/2, 3)
}
