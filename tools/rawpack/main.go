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
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/raw/bitstream"
	"seehuhn.de/go/raw/packed"
	"seehuhn.de/go/raw/tools/internal/buildinfo"
	"seehuhn.de/go/raw/tools/internal/profile"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
	verbose    = flag.Bool("v", false, "print a summary to stderr")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "rawpack: convert between packed RAW data and TIFF images\n")
	fmt.Fprintf(out, "%s\n\n", buildinfo.Short("rawpack"))
	fmt.Fprintf(out, "Usage:\n")
	fmt.Fprintf(out, "  rawpack [options] unpack [unpack options] <in.raw> <out.tiff>\n")
	fmt.Fprintf(out, "  rawpack [options] pack [pack options] <in.tiff> <out.raw>\n\n")
	fmt.Fprintf(out, "Raw file names ending in \".zst\" are zstd compressed.\n")
	fmt.Fprintf(out, "The output name \"-\" writes packed data to stdout.\n")
	fmt.Fprintf(out, "Packed rows are padded to a multiple of 4 bytes (8 bytes per 32 bits\n")
	fmt.Fprintf(out, "for the jpeg order).  Data written with \"pack -pad N\" must be read\n")
	fmt.Fprintf(out, "with \"unpack -pitch\" set to this row size plus N.\n\n")
	fmt.Fprintf(out, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  rawpack unpack -width 4000 -height 3000 -bits 12 -order msb in.raw out.tiff\n")
	fmt.Fprintf(out, "  rawpack pack -bits 14 -order lsb in.tiff out.raw.zst\n")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "rawpack:", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	switch cmd {
	case "unpack":
		return unpackCmd(args)
	case "pack":
		return packCmd(args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// orderFlag lets a [bitstream.Order] be set from the command line.
type orderFlag struct {
	order bitstream.Order
}

func (f *orderFlag) String() string {
	return f.order.String()
}

func (f *orderFlag) Set(s string) error {
	o, err := bitstream.ParseOrder(s)
	if err != nil {
		return err
	}
	f.order = o
	return nil
}

func unpackCmd(args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ContinueOnError)
	width := fs.Int("width", 0, "image width in pixels")
	height := fs.Int("height", 0, "image height in pixels")
	bits := fs.Int("bits", 16, "bits per sample (1-16)")
	pitch := fs.Int("pitch", 0, "bytes per packed row (0 = derive from width)")
	offset := fs.Int("offset", 0, "skip `n` bytes at the start of the input")
	scale := fs.Bool("scale", false, "scale samples to the full 16-bit range")
	order := &orderFlag{order: bitstream.MSB}
	fs.Var(order, "order", "bit order: lsb, msb, msb16, msb32 or jpeg")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("unpack needs an input and an output file")
	}
	if *bits < 1 || *bits > 16 {
		return fmt.Errorf("TIFF output supports 1 to 16 bits per sample, not %d", *bits)
	}

	data, err := readRaw(fs.Arg(0))
	if err != nil {
		return err
	}
	if *offset < 0 || *offset > len(data) {
		return fmt.Errorf("offset %d outside the %d byte input", *offset, len(data))
	}
	data = data[*offset:]

	params := &packed.Params{
		Columns:       *width,
		Rows:          *height,
		BitsPerSample: packed.Bits(*bits),
		Order:         order.order,
		RowPitch:      *pitch,
	}
	img, err := packed.Decode[uint16](data, params)
	if err != nil {
		return err
	}

	shift := 0
	if *scale {
		shift = 16 - *bits
	}
	err = writeTIFF(fs.Arg(1), img, shift)
	if err != nil {
		return err
	}

	if *verbose {
		p := message.NewPrinter(language.English)
		p.Fprintf(os.Stderr, "%s: %d bytes, %d×%d pixels, %d bits, %s order\n",
			fs.Arg(0), len(data), *width, *height, *bits, order.order)
	}
	return nil
}

func packCmd(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	bits := fs.Int("bits", 16, "bits per sample (1-16)")
	pad := fs.Int("pad", 0, "extra zero bytes after each packed row")
	scale := fs.Bool("scale", false, "input samples use the full 16-bit range")
	order := &orderFlag{order: bitstream.MSB}
	fs.Var(order, "order", "bit order: lsb, msb, msb16, msb32 or jpeg")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("pack needs an input and an output file")
	}
	if *bits < 1 || *bits > 16 {
		return fmt.Errorf("TIFF input supports 1 to 16 bits per sample, not %d", *bits)
	}
	if *pad < 0 {
		return fmt.Errorf("invalid padding %d", *pad)
	}

	shift := 0
	if *scale {
		shift = 16 - *bits
	}
	img, err := readTIFF(fs.Arg(0), shift)
	if err != nil {
		return err
	}

	data, err := packImage(img, *bits, order.order, *pad)
	if err != nil {
		return err
	}
	err = writeRaw(fs.Arg(1), data)
	if err != nil {
		return err
	}

	if *verbose {
		p := message.NewPrinter(language.English)
		p.Fprintf(os.Stderr, "%s: %d×%d pixels packed into %d bytes, row pitch %d\n",
			fs.Arg(1), img.Width(), img.Height(), len(data),
			packedPitch(img.Width(), *bits, order.order, *pad))
	}
	return nil
}
