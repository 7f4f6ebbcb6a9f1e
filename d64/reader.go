// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package d64

// decoder is the session state for expanding a single entry. A fresh value
// is built per call; nothing survives between entries.
type decoder struct {
	rd   bitReader
	tree symbolTree
	hist window
	out  []byte
	size int
}

// Decode decompresses one entry. The size argument is the decompressed
// size declared by the archive directory: producing more than size bytes
// fails with ErrOutputOverflow, and input that runs out before the
// end-of-stream symbol fails with ErrInputExhausted. On error the returned
// slice is nil and any partial output is discarded.
func Decode(input []byte, size int) (output []byte, err error) {
	defer errRecover(&err)

	if size < 0 {
		size = 0
	}
	d := new(decoder)
	d.rd.Init(input)
	d.tree.Init()
	d.out = make([]byte, 0, size)
	d.size = size
	d.run()
	return d.out, nil
}

func (d *decoder) run() {
	for {
		sym := d.tree.DecodeSym(&d.rd)
		if d.rd.exhausted {
			panic(ErrInputExhausted)
		}
		switch {
		case sym == endSym:
			d.tree.Update(sym)
			return
		case sym < endSym:
			d.emit(byte(sym))
		case sym < numSymbols:
			d.copyMatch(sym)
			if d.rd.exhausted {
				panic(ErrInputExhausted)
			}
		default:
			panic(ErrInvalidSymbol)
		}
		d.tree.Update(sym)
	}
}

func (d *decoder) emit(b byte) {
	if len(d.out) >= d.size {
		panic(ErrOutputOverflow)
	}
	d.out = append(d.out, b)
	d.hist.Push(b)
}

// copyMatch decodes a back-reference: the symbol carries the length bucket
// and the match length, the extra bits carry the within-bucket distance.
// Bytes stream through the window one at a time so that a copy overlapping
// head sees its own output.
func (d *decoder) copyMatch(sym int) {
	m := sym - matchSymMin
	bucket := m / symsPerBucket
	length := m%symsPerBucket + minMatch
	extra := d.rd.ReadBits(lenBits[bucket])

	dist := lenBase[bucket] + extra + length
	src := d.hist.head - dist
	if src < 0 {
		src += windowSize
	}
	for i := 0; i < length; i++ {
		d.emit(d.hist.buf[src])
		src++
		if src == windowSize {
			src = 0
		}
	}
}
