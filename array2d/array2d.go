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

// Package array2d provides rectangular views onto flat slices.
//
// An [Array] has a logical width and height, and a pitch which gives the
// distance between the starts of consecutive rows.  The pitch may exceed
// the width; elements between the end of one row and the start of the
// next do not belong to the array.  Arrays do not own their storage.
package array2d

import (
	"errors"
	"fmt"
	"math"
)

// Array is a two-dimensional view onto a slice of T.
type Array[T any] struct {
	data   []T
	width  int
	height int
	pitch  int
}

// New returns a view of data with the given dimensions.
// The last row only needs to contain width elements.
func New[T any](data []T, width, height, pitch int) (Array[T], error) {
	if width < 0 || height < 0 {
		return Array[T]{}, errors.New("array2d: negative dimensions")
	}
	if pitch < width {
		return Array[T]{}, fmt.Errorf("array2d: pitch %d is smaller than width %d", pitch, width)
	}
	if height > 0 && width > 0 {
		if height-1 > (math.MaxInt-width)/pitch {
			return Array[T]{}, fmt.Errorf("array2d: %dx%d array with pitch %d is too large", width, height, pitch)
		}
		need := (height-1)*pitch + width
		if len(data) < need {
			return Array[T]{}, fmt.Errorf("array2d: %d elements needed, %d given", need, len(data))
		}
	}
	return Array[T]{data: data, width: width, height: height, pitch: pitch}, nil
}

// Make allocates a new array with pitch equal to width.
func Make[T any](width, height int) Array[T] {
	if width < 0 || height < 0 {
		panic("array2d: negative dimensions")
	}
	if width > 0 && height > math.MaxInt/width {
		panic(fmt.Sprintf("array2d: %dx%d array is too large", width, height))
	}
	return Array[T]{
		data:   make([]T, width*height),
		width:  width,
		height: height,
		pitch:  width,
	}
}

// Width returns the number of elements in each row.
func (a Array[T]) Width() int { return a.width }

// Height returns the number of rows.
func (a Array[T]) Height() int { return a.height }

// Pitch returns the distance between the starts of consecutive rows.
func (a Array[T]) Pitch() int { return a.pitch }

// Row returns the elements of row y.  The returned slice aliases the
// storage of the array.
func (a Array[T]) Row(y int) []T {
	if y < 0 || y >= a.height {
		panic(fmt.Sprintf("array2d: row %d out of range [0, %d)", y, a.height))
	}
	start := y * a.pitch
	return a.data[start : start+a.width : start+a.width]
}

// At returns the element in column x of row y.
// The argument order is the same as for [image.Image.At].
func (a Array[T]) At(x, y int) T {
	return a.Row(y)[x]
}

// Set stores v in column x of row y.
func (a Array[T]) Set(x, y int, v T) {
	a.Row(y)[x] = v
}

// Data returns the underlying storage.
func (a Array[T]) Data() []T {
	return a.data
}
