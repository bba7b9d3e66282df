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

	"golang.org/x/exp/constraints"
)

// BitWidth returns the number of bits in a value of type T.
func BitWidth[T constraints.Unsigned]() uint {
	var zero T
	return uint(bits.Len64(uint64(^zero)))
}

// ExtractHighBits returns the count most significant bits of x,
// moved down to the least significant end of the result.
// For count 0 the result is 0.  This panics if count exceeds the width of T.
func ExtractHighBits[T constraints.Unsigned](x T, count uint) T {
	width := BitWidth[T]()
	if count > width {
		panic(fmt.Sprintf("bitcache: cannot extract %d bits from %d-bit value", count, width))
	}
	if count == 0 {
		return 0
	}
	return x >> (width - count)
}

// ExtractLowBits returns the count least significant bits of x.
// For count 0 the result is 0.  This panics if count exceeds the width of T.
func ExtractLowBits[T constraints.Unsigned](x T, count uint) T {
	width := BitWidth[T]()
	if count > width {
		panic(fmt.Sprintf("bitcache: cannot extract %d bits from %d-bit value", count, width))
	}
	if count == 0 {
		return 0
	}
	return x & (^T(0) >> (width - count))
}
