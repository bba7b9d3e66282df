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

package main

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/tiff"

	"seehuhn.de/go/raw/array2d"
)

// toGray16 converts a pixel array to a 16-bit grayscale image.  Each
// sample is shifted left by shift bits.
func toGray16(img array2d.Array[uint16], shift int) *image.Gray16 {
	res := image.NewGray16(image.Rect(0, 0, img.Width(), img.Height()))
	for y := range img.Height() {
		for x, v := range img.Row(y) {
			res.SetGray16(x, y, color.Gray16{Y: v << shift})
		}
	}
	return res
}

// fromImage converts an arbitrary image to a pixel array of 16-bit
// luminance values.  Each sample is shifted right by shift bits.
func fromImage(img image.Image, shift int) array2d.Array[uint16] {
	b := img.Bounds()
	res := array2d.Make[uint16](b.Dx(), b.Dy())
	for y := range res.Height() {
		row := res.Row(y)
		for x := range row {
			c := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			row[x] = c.Y >> shift
		}
	}
	return res
}

func writeTIFF(fname string, img array2d.Array[uint16], shift int) error {
	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	err = tiff.Encode(w, toGray16(img, shift), &tiff.Options{
		Compression: tiff.Deflate,
		Predictor:   true,
	})
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func readTIFF(fname string, shift int) (array2d.Array[uint16], error) {
	in, err := os.Open(fname)
	if err != nil {
		return array2d.Array[uint16]{}, err
	}
	defer in.Close()

	img, err := tiff.Decode(bufio.NewReader(in))
	if err != nil {
		return array2d.Array[uint16]{}, fmt.Errorf("%s: %w", fname, err)
	}
	return fromImage(img, shift), nil
}
