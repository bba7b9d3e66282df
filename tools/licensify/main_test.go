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
	"testing"
)

func TestAddHeader(t *testing.T) {
	body := []byte("// Package foo does things.\npackage foo\n")
	res, changed := addHeader(body)
	if !changed {
		t.Fatal("header not added")
	}
	if !bytes.HasPrefix(res, []byte(header)) || !bytes.HasSuffix(res, body) {
		t.Errorf("unexpected result:\n%s", res)
	}

	again, changed := addHeader(res)
	if changed || !bytes.Equal(again, res) {
		t.Error("header added twice")
	}
}

func TestAddHeaderSkip(t *testing.T) {
	for _, body := range []string{
		"// Copyright 2009 The Go Authors.\npackage foo\n",
		"//go:build ignore\n\npackage main\n",
	} {
		if _, changed := addHeader([]byte(body)); changed {
			t.Errorf("changed %q", body)
		}
	}
}

func TestSkipDir(t *testing.T) {
	cases := map[string]bool{
		".":                  false,
		"packed":             false,
		"_examples":          true,
		"tools/.cache":       true,
		"bitstream/testdata": true,
	}
	for path, want := range cases {
		if got := skipDir(path); got != want {
			t.Errorf("skipDir(%q) = %t, want %t", path, got, want)
		}
	}
}
