// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jaguar

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
		[]byte("abab"),
		[]byte("the quick brown fox jumped over the lazy dog"),
		bytes.Repeat([]byte{'x'}, 300), // Overlapping copies
		bytes.Repeat([]byte("0123456789abcdef"), 64),
		rand.Bytes(256),
		rand.Bytes(4096),
		// Larger than the 12-bit offset reach.
		testutil.ResizeData(rand.Bytes(512), 20000),
	}
	for i, input := range vectors {
		comp := testRoundTrip(t, input)
		t.Logf("vector %d: %d -> %d bytes", i, len(input), len(comp))
	}
}

// The empty stream is a single flagged terminator token.
func TestTerminator(t *testing.T) {
	comp, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, testutil.MustDecodeHex("010000"), comp)

	output, err := Decode(comp, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Empty(t, output)
}

func TestDecodeErrors(t *testing.T) {
	input := []byte("errors, errors, errors, errors")
	comp, err := Encode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Decode(comp, len(input)-1)
	assert.Equal(t, ErrOutputOverflow, err)

	_, err = Decode(nil, 4)
	assert.Equal(t, ErrInputExhausted, err)

	_, err = Decode(comp[:len(comp)-2], len(input))
	assert.Equal(t, ErrInputExhausted, err)

	// A token referencing bytes before the start of the output.
	_, err = Decode(testutil.MustDecodeHex("010012"), 8)
	assert.Equal(t, ErrCorrupt, err)
}
