// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"testing"

	"github.com/thekovic/wadutil64/internal/testutil"
)

// Every registered codec must round-trip the same corpus; the comparison
// numbers are meaningless otherwise.
func TestCodecs(t *testing.T) {
	input := testutil.ResizeData(testutil.NewRand(1).Bytes(128), 4096)
	for name, c := range Codecs {
		comp, err := c.Encode(input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		output, err := c.Decode(comp, len(input))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !bytes.Equal(input, output) {
			t.Fatalf("%s: round trip mismatch", name)
		}

		ratio, err := Ratio(c, input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if ratio <= 0 {
			t.Fatalf("%s: nonsense ratio %v", name, ratio)
		}
	}
}
