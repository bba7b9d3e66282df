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

// Package bitstream reads and writes packed bit sequences in the bit orders
// found in camera RAW files.
//
// A [Reader] extracts values of 1 to 32 bits from a byte slice, a [Writer]
// appends such values to an [io.Writer].  Both keep a 64-bit
// [bitcache.Cache] between the caller and the bytes and move data to and
// from memory in whole chunks, as determined by the [Order] of the stream.
//
// The JPEG order additionally implements the byte stuffing of JPEG entropy
// coded segments: the writer inserts a 0x00 byte after every 0xFF byte,
// and the reader removes it again.
package bitstream

import (
	"fmt"
	"strings"

	"seehuhn.de/go/raw/bitcache"
	"seehuhn.de/go/raw/bytestream"
)

// Order selects the convention by which values are packed into bytes.
type Order int

// These are the supported bit orders.
const (
	// LSB packs values starting at the least significant bit of each byte.
	LSB Order = iota

	// MSB packs values starting at the most significant bit of each byte.
	MSB

	// MSB16 packs values MSB-first into little-endian 16-bit words.
	MSB16

	// MSB32 packs values MSB-first into little-endian 32-bit words.
	MSB32

	// JPEG is MSB-first with 0xFF 0x00 byte stuffing.
	JPEG
)

// writebackBits is the size of the units in which a Writer drains its cache.
const writebackBits = 32

type policy struct {
	chunk   int // bytes per refill/drain unit
	endian  bytestream.Endianness
	flow    bitcache.Flow
	stuffed bool
}

var policies = [...]policy{
	LSB:   {chunk: 1, endian: bytestream.Little, flow: bitcache.LowInHighOut},
	MSB:   {chunk: 1, endian: bytestream.Big, flow: bitcache.HighInLowOut},
	MSB16: {chunk: 2, endian: bytestream.Little, flow: bitcache.HighInLowOut},
	MSB32: {chunk: 4, endian: bytestream.Little, flow: bitcache.HighInLowOut},
	JPEG:  {chunk: 1, endian: bytestream.Big, flow: bitcache.HighInLowOut, stuffed: true},
}

var orderNames = [...]string{
	LSB:   "lsb",
	MSB:   "msb",
	MSB16: "msb16",
	MSB32: "msb32",
	JPEG:  "jpeg",
}

// IsValid reports whether o is one of the defined bit orders.
func (o Order) IsValid() bool {
	return o >= LSB && o <= JPEG
}

func (o Order) String() string {
	if !o.IsValid() {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ChunkSize returns the number of bytes the stream moves at a time.
func (o Order) ChunkSize() int {
	return o.policy().chunk
}

// Stuffed reports whether the order uses JPEG byte stuffing.
func (o Order) Stuffed() bool {
	return o.policy().stuffed
}

func (o Order) policy() policy {
	if !o.IsValid() {
		panic(fmt.Sprintf("bitstream: invalid bit order %d", int(o)))
	}
	return policies[o]
}

// ParseOrder converts the name of a bit order, as returned by
// [Order.String], back into an Order.  Case is ignored.
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(s)
	for o, name := range orderNames {
		if name == s {
			return Order(o), nil
		}
	}
	return 0, fmt.Errorf("unknown bit order %q", s)
}
