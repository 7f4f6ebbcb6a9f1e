// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the lump codecs in this repository against
// general-purpose compressors with respect to encode speed, decode speed,
// and compression ratio. Lump codecs work on whole buffers, so every
// comparison codec is wrapped behind the same buffer-in, buffer-out pair.
package bench

import (
	"runtime"
	"testing"
)

// Codec is a whole-buffer compressor. Decode receives the expanded size,
// which the lump codecs require and the wrapped stream codecs ignore.
type Codec struct {
	Encode func(raw []byte) ([]byte, error)
	Decode func(compressed []byte, size int) ([]byte, error)
}

// Codecs is the registry of comparison codecs, keyed by display name.
var Codecs = make(map[string]Codec)

func Register(name string, c Codec) {
	Codecs[name] = c
}

// Ratio reports rawSize/compSize for one codec on the given input.
func Ratio(c Codec, input []byte) (float64, error) {
	b, err := c.Encode(input)
	if err != nil {
		return 0, err
	}
	return float64(len(input)) / float64(len(b)), nil
}

// EncodeRate benchmarks compression and reports a rate in MB/s.
func EncodeRate(c Codec, input []byte) float64 {
	return rate(input, func() error {
		_, err := c.Encode(input)
		return err
	})
}

// DecodeRate benchmarks decompression of pre-compressed input and reports
// a rate in MB/s relative to the expanded size.
func DecodeRate(c Codec, input []byte) float64 {
	comp, err := c.Encode(input)
	if err != nil {
		return 0
	}
	return rate(input, func() error {
		_, err := c.Decode(comp, len(input))
		return err
	})
}

func rate(input []byte, f func() error) float64 {
	r := testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if err := f(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
	if r.N == 0 {
		return 0
	}
	us := (float64(r.T.Nanoseconds()) / 1e3) / float64(r.N)
	return float64(r.Bytes) / us
}
