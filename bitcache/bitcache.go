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

// Package bitcache implements the shift register which sits between a byte
// stream and the bit-level readers and writers of this module.
//
// A [Cache] holds up to [Capacity] bits.  Bits are added with [Cache.Push]
// and removed with [Cache.Peek] and [Cache.Skip]; the order in which the
// bits come out is the order in which they went in.  How the bits are laid
// out inside the register is selected by the [Flow] of the cache.
//
// Violations of the cache contract (pushing more bits than fit, peeking or
// skipping more bits than are stored) are programming errors and cause a
// panic.
package bitcache

import "fmt"

const (
	// Capacity is the number of bits a cache can hold.
	Capacity = 64

	// MaxFetch is the largest number of bits which can be peeked at once.
	MaxFetch = 32
)

// Flow describes where new bits enter the register and where old bits
// leave it.
type Flow int

const (
	// HighInLowOut keeps the stored bits left-aligned in the register.
	// The oldest bits occupy the highest positions and new bits are added
	// directly below them.  This is used for MSB-first bit orders.
	HighInLowOut Flow = iota

	// LowInHighOut keeps the stored bits right-aligned in the register.
	// The oldest bits occupy the lowest positions and new bits are added
	// directly above them.  This is used for LSB-first bit orders.
	LowInHighOut
)

func (f Flow) String() string {
	switch f {
	case HighInLowOut:
		return "high-in-low-out"
	case LowInHighOut:
		return "low-in-high-out"
	default:
		return fmt.Sprintf("Flow(%d)", int(f))
	}
}

// Cache is a 64-bit shift register together with a fill level.
// The zero value is an empty HighInLowOut cache.
type Cache struct {
	reg  uint64
	fill int
	flow Flow
}

// New returns an empty cache with the given flow direction.
func New(flow Flow) Cache {
	if flow != HighInLowOut && flow != LowInHighOut {
		panic(fmt.Sprintf("bitcache: invalid flow %d", int(flow)))
	}
	return Cache{flow: flow}
}

// Flow returns the flow direction of the cache.
func (c *Cache) Flow() Flow {
	return c.flow
}

// FillLevel returns the number of bits currently stored.
func (c *Cache) FillLevel() int {
	return c.fill
}

// Free returns the number of bits which can still be pushed.
func (c *Cache) Free() int {
	return Capacity - c.fill
}

// Push appends the low count bits of bits to the cache.
// Higher bits of the argument are ignored.
func (c *Cache) Push(bits uint64, count int) {
	if count < 0 || count > Capacity-c.fill {
		panic(fmt.Sprintf("bitcache: cannot push %d bits, %d of %d bits in use",
			count, c.fill, Capacity))
	}
	if count == 0 {
		return
	}
	bits = ExtractLowBits(bits, uint(count))
	switch c.flow {
	case HighInLowOut:
		c.reg |= bits << (Capacity - c.fill - count)
	case LowInHighOut:
		c.reg |= bits << c.fill
	}
	c.fill += count
}

// Peek returns the next count bits, right-aligned, without removing them.
// The oldest of the returned bits is the most significant one.
func (c *Cache) Peek(count int) uint32 {
	if count <= 0 || count > MaxFetch || count > c.fill {
		panic(fmt.Sprintf("bitcache: cannot peek %d bits, %d bits in cache",
			count, c.fill))
	}
	switch c.flow {
	case HighInLowOut:
		return uint32(ExtractHighBits(c.reg, uint(count)))
	default:
		return uint32(ExtractLowBits(c.reg, uint(count)))
	}
}

// Skip removes the next count bits.
func (c *Cache) Skip(count int) {
	if count < 0 || count > c.fill {
		panic(fmt.Sprintf("bitcache: cannot skip %d bits, %d bits in cache",
			count, c.fill))
	}
	switch c.flow {
	case HighInLowOut:
		c.reg <<= count
	case LowInHighOut:
		c.reg >>= count
	}
	c.fill -= count
}

// Reset discards all stored bits.
func (c *Cache) Reset() {
	c.reg = 0
	c.fill = 0
}
