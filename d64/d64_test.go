// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package d64

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thekovic/wadutil64/internal/testutil"
)

func testRoundTrip(t *testing.T, input []byte) []byte {
	t.Helper()
	comp, err := Encode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, err := Decode(comp, len(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(input, output) {
		t.Fatalf("round trip mismatch: input %d bytes, output %d bytes", len(input), len(output))
	}
	return comp
}

func TestRoundTrip(t *testing.T) {
	rand := testutil.NewRand(1)
	vectors := [][]byte{
		nil,
		[]byte("A"),
		[]byte("ab"),
		bytes.Repeat([]byte{0x00}, 13),
		bytes.Repeat([]byte{0xff}, 14),
		[]byte("the quick brown fox jumped over the lazy dog"),
		bytes.Repeat([]byte("A"), 300),
		bytes.Repeat([]byte("ab"), 200),
		bytes.Repeat([]byte("abcdefgh"), 1000),
		testutil.ResizeData(rand.Bytes(64), 4096),
		rand.Bytes(15),
		rand.Bytes(8192),
	}
	for i, input := range vectors {
		comp := testRoundTrip(t, input)
		t.Logf("vector %d: %d -> %d bytes", i, len(input), len(comp))
	}
}

// A run longer than the seeded prelude forces the encoder into copies whose
// source runs right up against the write position in the window.
func TestRoundTripRuns(t *testing.T) {
	for _, n := range []int{15, 64, 100, 300, 5000} {
		testRoundTrip(t, bytes.Repeat([]byte{'x'}, n))
		testRoundTrip(t, testutil.ResizeData([]byte("0123"), n))
	}
}

// Inputs larger than the window exercise the wrap-around of both the match
// search and the decoder's copy addressing.
func TestRoundTripWindowWrap(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large round trip in short mode")
	}
	rand := testutil.NewRand(7)
	testRoundTrip(t, testutil.ResizeData(rand.Bytes(256), 2*windowSize))
}

// Incompressible data must still reconstruct, and must not overflow the
// largest distance bucket.
func TestRoundTripIncompressible(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping incompressible round trip in short mode")
	}
	rand := testutil.NewRand(3)
	input := rand.Bytes(30000)
	comp := testRoundTrip(t, input)
	assert.True(t, len(comp) > len(input), "random data should expand")
}

// Compressed sizes for fixed seeds are recorded as regression values; a
// change means the emitted stream changed shape, not merely the tests.
func TestRegressionSizes(t *testing.T) {
	rand := testutil.NewRand(1)
	in8k := rand.Bytes(8192)
	comp, err := Encode(in8k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, err := Decode(comp, len(in8k))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, in8k, output)
	t.Logf("8 KiB pseudo-random compressed to %d bytes", len(comp))
	assert.Equal(t, 8454, len(comp), "8 KiB pseudo-random compressed size")
}

// The empty stream is small enough to pin down exactly: the end-of-stream
// symbol in the freshly built tree is the nine bits 101110101, then zero
// padding. Likewise a single literal is its fresh-tree code followed by the
// end code, which the first update does not disturb.
func TestWireFixtures(t *testing.T) {
	empty, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, testutil.MustDecodeHex("ba80"), empty)

	output, err := Decode(testutil.MustDecodeHex("ba80"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Empty(t, output)

	one, err := Encode([]byte("A"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, testutil.MustDecodeHex("5b5d40"), one)

	output, err = Decode(testutil.MustDecodeHex("5b5d40"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, []byte("A"), output)
}

// The decoder must finish with the same adaptive state the encoder had, or
// the formats have diverged somewhere mid-stream.
func TestTreeSync(t *testing.T) {
	rand := testutil.NewRand(5)
	for _, input := range [][]byte{
		nil,
		[]byte("synchrony"),
		bytes.Repeat([]byte("na"), 500),
		testutil.ResizeData(rand.Bytes(512), 6000),
	} {
		e := new(encoder)
		e.bw.Init()
		e.tree.Init()
		e.run(input)
		comp := e.bw.Flush()

		d := new(decoder)
		d.rd.Init(comp)
		d.tree.Init()
		d.out = make([]byte, 0, len(input))
		d.size = len(input)
		d.run()

		assert.Equal(t, input, append([]byte(nil), d.out...), "output mismatch")
		assert.Equal(t, e.tree.weight, d.tree.weight)
		assert.Equal(t, e.tree.left, d.tree.left)
		assert.Equal(t, e.tree.right, d.tree.right)
		assert.Equal(t, e.tree.parent, d.tree.parent)
		assert.Equal(t, e.tree.posOf, d.tree.posOf)
		assert.Equal(t, e.tree.nodeAt, d.tree.nodeAt)
	}
}

func TestDecodeDeterminism(t *testing.T) {
	rand := testutil.NewRand(6)
	input := testutil.ResizeData(rand.Bytes(100), 2000)
	comp, err := Encode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := Decode(comp, len(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Decode(comp, len(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, first, second)
}

func TestDecodeErrors(t *testing.T) {
	input := []byte("some compressible data, some compressible data")
	comp, err := Encode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Declared size too small.
	_, err = Decode(comp, len(input)-1)
	assert.Equal(t, ErrOutputOverflow, err)

	// No input at all.
	_, err = Decode(nil, 16)
	assert.Equal(t, ErrInputExhausted, err)

	// Truncated input must never panic or hang. The reader feeds 1-bits
	// past the end, so the decoder either trips the exhaustion check, runs
	// the output over, or in rare bit patterns reaches the end symbol with
	// a short result; all are acceptable, an endless loop is not.
	for cut := 1; cut < len(comp); cut += 3 {
		output, err := Decode(comp[:cut], len(input))
		if err == nil {
			assert.True(t, len(output) <= len(input))
		}
	}
}
