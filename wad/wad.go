// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package wad reads and writes Doom 64 WAD archives.
//
// A WAD is a 12-byte header, a run of lump bodies, and a trailing directory
// of 16-byte entries, all little-endian. A set high bit on the first byte
// of a lump's directory name marks the body as compressed; the directory
// size is always the decompressed size, and a compressed body's on-disk
// extent runs to the next lump's file position. Which codec a compressed
// lump uses is not recorded anywhere: the console decides from name
// markers while walking the directory, and this package reproduces that
// walk (see codec.go).
package wad

import (
	"encoding/binary"
	"os"
	"strings"
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "wad: " + string(e) }

var (
	// ErrCorrupt is returned for a bad magic or a directory whose
	// positions walk outside the file.
	ErrCorrupt error = Error("archive is corrupted")
)

const (
	magic        = "IWAD"
	headerSize   = 12
	lumpInfoSize = 16
	nameLen      = 8

	// High bit of the first name byte marking a compressed lump.
	nameCompressed = 0x80
)

// Lump is one named entry of the archive. Data always holds the expanded
// bytes; Compression records which codec the on-disk body used, and is
// honored again when the archive is written back out.
type Lump struct {
	Name        string
	Data        []byte
	Compression Compression
}

// File is a fully parsed archive.
type File struct {
	Lumps []*Lump

	aligned bool
}

// Read parses an archive and expands every compressed lump.
func Read(data []byte) (*File, error) {
	if len(data) < headerSize || string(data[:4]) != magic {
		return nil, ErrCorrupt
	}
	numLumps := int(int32(binary.LittleEndian.Uint32(data[4:])))
	dirOffset := int(int32(binary.LittleEndian.Uint32(data[8:])))
	if numLumps < 0 || dirOffset < 0 || dirOffset+numLumps*lumpInfoSize > len(data) {
		return nil, ErrCorrupt
	}

	type info struct {
		filePos, size int
		name          [nameLen]byte
	}
	dir := make([]info, numLumps)
	for i := range dir {
		rec := data[dirOffset+i*lumpInfoSize:]
		dir[i].filePos = int(int32(binary.LittleEndian.Uint32(rec)))
		dir[i].size = int(int32(binary.LittleEndian.Uint32(rec[4:])))
		copy(dir[i].name[:], rec[8:lumpInfoSize])
	}

	f := &File{Lumps: make([]*Lump, numLumps)}
	var sel selector
	for i, in := range dir {
		compressed := in.name[0]&nameCompressed != 0
		in.name[0] &^= nameCompressed
		name := lumpName(in.name)

		// The on-disk extent of a compressed body runs to the next
		// lump's position; the directory size is the expanded size.
		end := dirOffset
		if i+1 < numLumps {
			end = dir[i+1].filePos
		}
		if in.filePos < 0 || in.size < 0 || end < in.filePos || end > len(data) {
			return nil, ErrCorrupt
		}

		lump := &Lump{Name: name}
		codec := sel.next(name, compressed)
		if compressed {
			raw := data[in.filePos:end]
			expanded, err := decodeLump(codec, raw, in.size)
			if err != nil {
				return nil, err
			}
			lump.Data = expanded
			lump.Compression = codec
		} else {
			if in.filePos+in.size > len(data) {
				return nil, ErrCorrupt
			}
			lump.Data = append([]byte(nil), data[in.filePos:in.filePos+in.size]...)
		}
		f.Lumps[i] = lump
	}
	return f, nil
}

// ReadFile reads and parses the archive at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Encode serializes the archive, recompressing every lump whose
// Compression is set and restoring the name high bit for them.
func (f *File) Encode() ([]byte, error) {
	out := make([]byte, headerSize)
	copy(out, magic)

	type entry struct {
		filePos, size int
		name          [nameLen]byte
	}
	dir := make([]entry, len(f.Lumps))
	for i, lump := range f.Lumps {
		body, err := encodeLump(lump.Compression, lump.Data)
		if err != nil {
			return nil, err
		}
		copy(dir[i].name[:], lump.Name)
		if lump.Compression != CompressNone {
			dir[i].name[0] |= nameCompressed
		}
		dir[i].filePos = len(out)
		dir[i].size = len(lump.Data)
		out = append(out, body...)
		if f.aligned {
			for len(out)%4 != 0 {
				out = append(out, 0)
			}
		}
	}

	dirOffset := len(out)
	for i := range dir {
		var rec [lumpInfoSize]byte
		binary.LittleEndian.PutUint32(rec[0:], uint32(dir[i].filePos))
		binary.LittleEndian.PutUint32(rec[4:], uint32(dir[i].size))
		copy(rec[8:], dir[i].name[:])
		out = append(out, rec[:]...)
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(len(f.Lumps)))
	binary.LittleEndian.PutUint32(out[8:], uint32(dirOffset))
	return out, nil
}

// WriteFile serializes the archive to path.
func (f *File) WriteFile(path string) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}

// Align marks the archive so that Encode pads every lump body with zero
// bytes to a four-byte boundary. The padding lives between bodies;
// directory sizes are unaffected.
func (f *File) Align() {
	f.aligned = true
}

func lumpName(name [nameLen]byte) string {
	s := string(name[:])
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}
