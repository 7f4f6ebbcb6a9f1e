// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package jaguar implements the LZSS lump compression format that the
// Nintendo 64 port of Doom inherited from the Jaguar version.
//
// The stream is a sequence of entries guarded by flag bytes: each flag byte
// carries eight flag bits, consumed LSB-first, one per entry. A clear flag
// introduces a single literal byte. A set flag introduces a two-byte token
// holding a 12-bit window offset and a 4-bit length field; the match length
// is the field plus one, and a zero field (length one) terminates the
// stream. Matches copy from the already-produced output, byte at a time, so
// overlapping copies repeat runs.
package jaguar

import "github.com/dsnet/golib/errs"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "jaguar: " + string(e) }

var (
	// ErrOutputOverflow is returned when decoding produces more bytes than
	// the declared output size.
	ErrOutputOverflow error = Error("output overflow")

	// ErrInputExhausted is returned when the input ends before the
	// terminator token.
	ErrInputExhausted error = Error("input exhausted")

	// ErrCorrupt is returned when a token references bytes before the
	// start of the output.
	ErrCorrupt error = Error("stream is corrupted")
)

const (
	lenShift  = 4
	maxLength = 16   // 4-bit length field, offset by one
	minLength = 2    // Shorter matches are emitted as literals
	maxOffset = 4096 // 12-bit window offset, offset by one
)

// Decode decompresses one entry. The size argument is the decompressed
// size declared by the archive directory.
func Decode(input []byte, size int) (output []byte, err error) {
	defer errs.Recover(&err)

	next := func() int {
		errs.Assert(len(input) > 0, ErrInputExhausted)
		b := input[0]
		input = input[1:]
		return int(b)
	}

	out := make([]byte, 0, size)
	var idByte, getIDByte int
	for {
		if getIDByte == 0 {
			idByte = next()
		}
		getIDByte = (getIDByte + 1) & 7

		if idByte&1 != 0 {
			pos := next() << lenShift
			d := next()
			pos |= d >> lenShift
			length := d&0xf + 1
			if length == 1 {
				break
			}
			src := len(out) - pos - 1
			errs.Assert(src >= 0, ErrCorrupt)
			for i := 0; i < length; i++ {
				errs.Assert(len(out) < size, ErrOutputOverflow)
				out = append(out, out[src+i])
			}
		} else {
			errs.Assert(len(out) < size, ErrOutputOverflow)
			out = append(out, byte(next()))
		}
		idByte >>= 1
	}
	return out, nil
}

// encoder accumulates flagged entries. A flag byte is reserved when the
// first of each group of eight entries arrives and filled in as the group
// completes.
type encoder struct {
	out     []byte
	flagPos int
	nflags  uint
}

func (e *encoder) entry(flag bool, data ...byte) {
	if e.nflags == 0 {
		e.flagPos = len(e.out)
		e.out = append(e.out, 0)
	}
	if flag {
		e.out[e.flagPos] |= 1 << e.nflags
	}
	e.nflags = (e.nflags + 1) & 7
	e.out = append(e.out, data...)
}

// Encode compresses one entry with a greedy longest-match search over the
// produced output. It never fails on well-formed input; the result may be
// larger than the input for incompressible data.
func Encode(input []byte) (output []byte, err error) {
	e := new(encoder)
	for i := 0; i < len(input); {
		n, src := findMatch(input, i)
		if n >= minLength {
			pos := i - src - 1
			e.entry(true, byte(pos>>lenShift), byte(pos<<lenShift)|byte(n-1))
			i += n
		} else {
			e.entry(false, input[i])
			i++
		}
	}
	e.entry(true, 0, 0)
	return e.out, nil
}

// findMatch returns the longest match for input[pos:] starting at an
// earlier input position, preferring the most recent one. Matches may
// overlap pos; the decoder's byte-at-a-time copy reproduces them.
func findMatch(input []byte, pos int) (n, src int) {
	lo := pos - maxOffset
	if lo < 0 {
		lo = 0
	}
	for s := pos - 1; s >= lo; s-- {
		var i int
		for i < maxLength && pos+i < len(input) && input[s+i] == input[pos+i] {
			i++
		}
		if i > n {
			n, src = i, s
			if n == maxLength {
				break
			}
		}
	}
	return n, src
}
