// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"compress/flate"
	"io"

	kpflate "github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"

	"github.com/thekovic/wadutil64/d64"
	"github.com/thekovic/wadutil64/jaguar"
)

func init() {
	Register("d64", Codec{Encode: d64.Encode, Decode: d64.Decode})
	Register("jag", Codec{Encode: jaguar.Encode, Decode: jaguar.Decode})

	Register("std-fl", Codec{
		Encode: func(raw []byte) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
			if err != nil {
				return nil, err
			}
			if _, err := zw.Write(raw); err != nil {
				return nil, err
			}
			if err := zw.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decode: func(compressed []byte, size int) ([]byte, error) {
			zr := flate.NewReader(bytes.NewReader(compressed))
			defer zr.Close()
			return io.ReadAll(zr)
		},
	})

	Register("kp-fl", Codec{
		Encode: func(raw []byte) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := kpflate.NewWriter(&buf, kpflate.DefaultCompression)
			if err != nil {
				return nil, err
			}
			if _, err := zw.Write(raw); err != nil {
				return nil, err
			}
			if err := zw.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decode: func(compressed []byte, size int) ([]byte, error) {
			zr := kpflate.NewReader(bytes.NewReader(compressed))
			defer zr.Close()
			return io.ReadAll(zr)
		},
	})

	Register("xz", Codec{
		Encode: func(raw []byte) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := xz.NewWriter(&buf)
			if err != nil {
				return nil, err
			}
			if _, err := zw.Write(raw); err != nil {
				return nil, err
			}
			if err := zw.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		Decode: func(compressed []byte, size int) ([]byte, error) {
			zr, err := xz.NewReader(bytes.NewReader(compressed))
			if err != nil {
				return nil, err
			}
			return io.ReadAll(zr)
		},
	})
}
