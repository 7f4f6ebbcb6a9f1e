// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package d64

// encoder is the session state for compressing a single entry. It drives
// the same tree and window types as the decoder so that the adaptive state
// on both sides evolves identically.
type encoder struct {
	bw   bitWriter
	tree symbolTree
	hist window
}

// Encode compresses one entry. The result may be larger than the input for
// incompressible data; it never fails on well-formed input.
func Encode(input []byte) (output []byte, err error) {
	defer errRecover(&err)

	e := new(encoder)
	e.bw.Init()
	e.tree.Init()
	e.run(input)
	return e.bw.Flush(), nil
}

func (e *encoder) run(input []byte) {
	// Seed the history with raw literals before searching for matches.
	i := 0
	for ; i < len(input) && i < preludeLen; i++ {
		e.literal(input[i])
	}

	for i < len(input) {
		if n, start := e.findMatch(input, i); n > 0 && e.tryMatch(input, i, n, start) {
			i += n
			continue
		}
		e.literal(input[i])
		i++
	}

	e.tree.EncodeSym(&e.bw, endSym)
	e.tree.Update(endSym)
}

func (e *encoder) literal(b byte) {
	e.tree.EncodeSym(&e.bw, int(b))
	e.tree.Update(int(b))
	e.hist.Push(b)
}

// findMatch runs the greedy search: longest length first, most recent
// window position first, accepting the first hit. The probed history depth
// is capped at maxSearch positions; before the window first wraps the
// search also stops at position zero, and afterwards candidate positions
// wrap modulo the window size.
func (e *encoder) findMatch(input []byte, pos int) (n, start int) {
	limit := len(input) - pos
	for j := maxMatch; j >= minMatch; j-- {
		if j > limit {
			continue
		}
		for back := 0; back <= maxSearch; back++ {
			s := e.hist.head - back - j
			if s < 0 {
				if !e.hist.wrapped {
					break
				}
				s += windowSize
			}
			if e.windowEqual(s, input[pos:pos+j]) {
				return j, s
			}
		}
	}
	return 0, 0
}

func (e *encoder) windowEqual(s int, want []byte) bool {
	for _, b := range want {
		if e.hist.buf[s] != b {
			return false
		}
		s++
		if s == windowSize {
			s = 0
		}
	}
	return true
}

// tryMatch attempts to emit a copy of length bytes starting at window
// position start. The distance is fit to the smallest bucket whose range
// covers it; a distance no bucket can carry falls back to a literal.
// Before emitting, the copy is replayed against the window exactly as the
// decoder will run it, including bytes that become visible mid-copy; a
// replay mismatch also falls back to a literal. Reports whether the match
// was emitted.
func (e *encoder) tryMatch(input []byte, pos, length, start int) bool {
	dist := e.hist.head - start
	if dist < 0 {
		dist += windowSize
	}
	bucket := 0
	for bucket < numBuckets && dist > lenBase[bucket]+length+(1<<lenBits[bucket])-1 {
		bucket++
	}
	if bucket == numBuckets {
		return false
	}
	extra := dist - lenBase[bucket] - length
	if extra < 0 {
		return false
	}

	src, dst := start, e.hist.head
	for i := 0; i < length; i++ {
		b := e.hist.buf[src]
		if b != input[pos+i] {
			return false
		}
		e.hist.buf[dst] = b
		if src++; src == windowSize {
			src = 0
		}
		if dst++; dst == windowSize {
			dst = 0
		}
	}

	sym := matchSymMin + bucket*symsPerBucket + (length - minMatch)
	e.tree.EncodeSym(&e.bw, sym)
	e.tree.Update(sym)
	e.bw.WriteBits(extra, lenBits[bucket])

	for i := 0; i < length; i++ {
		e.hist.Push(input[pos+i])
	}
	return true
}
