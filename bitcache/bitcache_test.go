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

package bitcache

import (
	"fmt"
	"math/bits"
	"math/rand"
	"testing"
)

func testExtractLaws[T interface{ ~uint8 | ~uint16 | ~uint32 | ~uint64 }](t *testing.T) {
	width := BitWidth[T]()
	ones := ^T(0)
	for n := uint(0); n <= width; n++ {
		if got := ExtractHighBits(T(0), n); got != 0 {
			t.Errorf("%d bits: ExtractHighBits(0, %d) = %#x", width, n, got)
		}
		if got := ExtractLowBits(T(0), n); got != 0 {
			t.Errorf("%d bits: ExtractLowBits(0, %d) = %#x", width, n, got)
		}

		// shifted back up, the high bits are n leading ones followed by
		// width-n zeros
		high := uint64(ExtractHighBits(ones, n)) << (width - n)
		wantHigh := ((uint64(1) << n) - 1) << (width - n)
		if high != wantHigh {
			t.Errorf("%d bits: ExtractHighBits(ones, %d) = %#x", width, n, high>>(width-n))
		}
		if got := uint(bits.OnesCount64(high)); got != n {
			t.Errorf("%d bits: ExtractHighBits(ones, %d) has %d ones", width, n, got)
		}

		low := uint64(ExtractLowBits(ones, n))
		if low != (uint64(1)<<n)-1 {
			t.Errorf("%d bits: ExtractLowBits(ones, %d) = %#x", width, n, low)
		}
		if got := uint(bits.TrailingZeros64(^low)); got != n {
			t.Errorf("%d bits: ExtractLowBits(ones, %d) has %d trailing ones", width, n, got)
		}
	}

	rng := rand.New(rand.NewSource(int64(width)))
	for range 100 {
		x := T(rng.Uint64())
		if got := ExtractHighBits(x, width); got != x {
			t.Errorf("ExtractHighBits(%#x, width) = %#x", x, got)
		}
		if got := ExtractLowBits(x, width); got != x {
			t.Errorf("ExtractLowBits(%#x, width) = %#x", x, got)
		}
		if ExtractHighBits(x, 0) != 0 || ExtractLowBits(x, 0) != 0 {
			t.Errorf("extracting 0 bits from %#x gave non-zero result", x)
		}
	}
}

func TestExtractLaws(t *testing.T) {
	t.Run("uint8", testExtractLaws[uint8])
	t.Run("uint16", testExtractLaws[uint16])
	t.Run("uint32", testExtractLaws[uint32])
	t.Run("uint64", testExtractLaws[uint64])
}

func TestExtractTruthTable(t *testing.T) {
	cases := []struct {
		x    uint8
		n    uint
		high uint8
		low  uint8
	}{
		{0b10110010, 0, 0, 0},
		{0b10110010, 1, 0b1, 0b0},
		{0b10110010, 2, 0b10, 0b10},
		{0b10110010, 3, 0b101, 0b010},
		{0b10110010, 4, 0b1011, 0b0010},
		{0b10110010, 5, 0b10110, 0b10010},
		{0b10110010, 6, 0b101100, 0b110010},
		{0b10110010, 7, 0b1011001, 0b0110010},
		{0b10110010, 8, 0b10110010, 0b10110010},
	}
	for _, c := range cases {
		if got := ExtractHighBits(c.x, c.n); got != c.high {
			t.Errorf("ExtractHighBits(%08b, %d) = %b, want %b", c.x, c.n, got, c.high)
		}
		if got := ExtractLowBits(c.x, c.n); got != c.low {
			t.Errorf("ExtractLowBits(%08b, %d) = %b, want %b", c.x, c.n, got, c.low)
		}
	}
}

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", what)
		}
	}()
	fn()
}

func TestExtractTooWide(t *testing.T) {
	mustPanic(t, "ExtractHighBits(uint8, 9)", func() { ExtractHighBits(uint8(1), 9) })
	mustPanic(t, "ExtractLowBits(uint16, 17)", func() { ExtractLowBits(uint16(1), 17) })
}

func TestContracts(t *testing.T) {
	for _, flow := range []Flow{HighInLowOut, LowInHighOut} {
		t.Run(flow.String(), func(t *testing.T) {
			c := New(flow)
			mustPanic(t, "peek on empty cache", func() { c.Peek(1) })
			mustPanic(t, "skip on empty cache", func() { c.Skip(1) })

			c.Push(0, 0) // no-op
			c.Skip(0)
			if c.FillLevel() != 0 {
				t.Fatalf("fill level %d after no-ops", c.FillLevel())
			}

			c.Push(0xFFFF, 16)
			mustPanic(t, "peek(0)", func() { c.Peek(0) })
			mustPanic(t, "peek beyond fill level", func() { c.Peek(17) })
			mustPanic(t, "skip beyond fill level", func() { c.Skip(17) })

			c.Push(0, 48)
			if c.FillLevel() != Capacity {
				t.Fatalf("fill level %d, expected %d", c.FillLevel(), Capacity)
			}
			mustPanic(t, "push into full cache", func() { c.Push(1, 1) })
			mustPanic(t, "peek beyond MaxFetch", func() { c.Peek(MaxFetch + 1) })

			// skipping more than MaxFetch bits is fine
			c.Skip(MaxFetch + 8)
			if c.FillLevel() != Capacity-MaxFetch-8 {
				t.Errorf("fill level %d after skip", c.FillLevel())
			}
		})
	}
}

func TestOrder(t *testing.T) {
	for _, flow := range []Flow{HighInLowOut, LowInHighOut} {
		c := New(flow)
		c.Push(0b101, 3)
		c.Push(0b0110, 4)
		if got := c.Peek(3); got != 0b101 {
			t.Errorf("%s: first value %03b", flow, got)
		}
		c.Skip(3)
		if got := c.Peek(4); got != 0b0110 {
			t.Errorf("%s: second value %04b", flow, got)
		}
		c.Skip(4)
	}

	// for HighInLowOut the oldest bit comes out first
	c := New(HighInLowOut)
	c.Push(0b1100, 4)
	if got := c.Peek(2); got != 0b11 {
		t.Errorf("high-in-low-out: Peek(2) = %02b", got)
	}
	// for LowInHighOut the lowest bit comes out first
	c = New(LowInHighOut)
	c.Push(0b1100, 4)
	if got := c.Peek(2); got != 0b00 {
		t.Errorf("low-in-high-out: Peek(2) = %02b", got)
	}
}

// TestBitByBit pushes a word in random size pieces and reconstructs it
// one bit at a time.
func TestBitByBit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, flow := range []Flow{HighInLowOut, LowInHighOut} {
		for trial := range 200 {
			word := rng.Uint64()
			c := New(flow)

			pos := 0
			for pos < Capacity {
				n := min(1+rng.Intn(MaxFetch), Capacity-pos)
				var piece uint64
				if flow == HighInLowOut {
					piece = ExtractHighBits(word<<pos, uint(n))
				} else {
					piece = ExtractLowBits(word>>pos, uint(n))
				}
				c.Push(piece, n)
				pos += n
			}

			var got uint64
			for i := range Capacity {
				bit := uint64(c.Peek(1))
				c.Skip(1)
				if flow == HighInLowOut {
					got |= bit << (Capacity - 1 - i)
				} else {
					got |= bit << i
				}
			}
			if got != word {
				t.Fatalf("%s trial %d: got %016x, want %016x", flow, trial, got, word)
			}
			if c.FillLevel() != 0 {
				t.Fatalf("%s: cache not empty", flow)
			}
		}
	}
}

func TestInterleaved(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, flow := range []Flow{HighInLowOut, LowInHighOut} {
		t.Run(fmt.Sprint(flow), func(t *testing.T) {
			c := New(flow)
			var queue []uint32
			var widths []int
			for range 10000 {
				if len(queue) == 0 || (rng.Intn(2) == 0 && c.Free() >= MaxFetch) {
					n := 1 + rng.Intn(MaxFetch)
					v := uint32(ExtractLowBits(rng.Uint64(), uint(n)))
					c.Push(uint64(v), n)
					queue = append(queue, v)
					widths = append(widths, n)
					continue
				}
				got := c.Peek(widths[0])
				c.Skip(widths[0])
				if got != queue[0] {
					t.Fatalf("got %x, want %x", got, queue[0])
				}
				queue, widths = queue[1:], widths[1:]
			}
		})
	}
}
