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
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/term"

	"seehuhn.de/go/raw/array2d"
	"seehuhn.de/go/raw/bitstream"
	"seehuhn.de/go/raw/packed"
)

var errTerminal = errors.New("refusing to write binary data to a terminal")

func isCompressed(fname string) bool {
	return strings.HasSuffix(strings.ToLower(fname), ".zst")
}

// readRaw reads a packed RAW file, decompressing it if necessary.
func readRaw(fname string) ([]byte, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	if !isCompressed(fname) {
		return data, nil
	}
	return decompress(data)
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

func compress(w io.Writer, data []byte) error {
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	_, err = io.Copy(enc, bytes.NewReader(data))
	if err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// writeRaw writes packed data to fname, or to stdout if fname is "-".
func writeRaw(fname string, data []byte) error {
	if fname == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errTerminal
		}
		_, err := os.Stdout.Write(data)
		return err
	}

	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	if isCompressed(fname) {
		err = compress(out, data)
	} else {
		_, err = out.Write(data)
	}
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// packImage packs img into rows of a common pitch, which is the packed row
// size plus pad bytes.  For the JPEG bit order the row size allows for
// stuffing bytes, so that the result can be unpacked with the default pitch
// when pad is zero.
func packImage(img array2d.Array[uint16], bits int, order bitstream.Order, pad int) ([]byte, error) {
	pitch := packedPitch(img.Width(), bits, order, pad)
	buf := make([]byte, pitch*img.Height())
	dst, err := array2d.New(buf, pitch, img.Height(), pitch)
	if err != nil {
		return nil, err
	}

	p, err := packed.NewPacker(dst, order, packed.Bits(bits), img, func(int) int {
		return pad
	})
	if err != nil {
		return nil, err
	}
	if err := p.Pack(); err != nil {
		return nil, err
	}
	return buf, nil
}

// packedPitch returns the row pitch used by packImage.  Pass this value to
// "rawpack unpack -pitch" to read back data packed with padding.
func packedPitch(columns, bits int, order bitstream.Order, pad int) int {
	return packed.MaxRowBytes(columns, bits, order) + pad
}
