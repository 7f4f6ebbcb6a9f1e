// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package wad

import (
	"strings"

	"github.com/thekovic/wadutil64/d64"
	"github.com/thekovic/wadutil64/jaguar"
)

// Compression identifies which codec produced a lump's on-disk body.
type Compression int

const (
	CompressNone Compression = iota
	CompressD64
	CompressJaguar
)

func (c Compression) String() string {
	switch c {
	case CompressD64:
		return "d64"
	case CompressJaguar:
		return "jaguar"
	default:
		return "none"
	}
}

// selector reproduces the console's codec choice while walking the
// directory in order. The choice is sticky: a T_START marker switches
// compressed lumps to the d64 codec, T_END switches back to jaguar, and a
// map lump (MAPnn) forces d64. Anything before the first marker uses
// jaguar, as the console does.
type selector struct {
	mode Compression
}

func (s *selector) next(name string, compressed bool) Compression {
	if s.mode == CompressNone {
		s.mode = CompressJaguar
	}
	switch {
	case name == "T_START":
		s.mode = CompressD64
	case name == "T_END":
		s.mode = CompressJaguar
	case isMapName(name):
		s.mode = CompressD64
	}
	if !compressed {
		return CompressNone
	}
	return s.mode
}

func isMapName(name string) bool {
	if len(name) != 5 || !strings.HasPrefix(name, "MAP") {
		return false
	}
	return name[3] >= '0' && name[3] <= '9' && name[4] >= '0' && name[4] <= '9'
}

// MarkCompressed applies the console's codec policy to every lump, using
// the same marker walk the reader uses: lumps between the texture markers,
// map lumps, and the lumps that follow a map lump up to the next marker get
// the d64 codec; other lumps get jaguar. Zero-length lumps stay raw.
func (f *File) MarkCompressed() {
	var sel selector
	for _, l := range f.Lumps {
		c := sel.next(l.Name, len(l.Data) > 0)
		l.Compression = c
	}
}

func decodeLump(c Compression, raw []byte, size int) ([]byte, error) {
	switch c {
	case CompressD64:
		return d64.Decode(raw, size)
	case CompressJaguar:
		return jaguar.Decode(raw, size)
	default:
		return nil, ErrCorrupt
	}
}

func encodeLump(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressD64:
		return d64.Encode(data)
	case CompressJaguar:
		return jaguar.Encode(data)
	default:
		return data, nil
	}
}
