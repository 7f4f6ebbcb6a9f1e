// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Benchmark tool to compare the lump codecs against general-purpose
// compressors. Individual implementations are referred to as codecs.
//
// Example usage:
//	$ go run main.go -codecs d64,jag,std-fl -sizes 1e4,1e5 -file MAP01.bin
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dsnet/golib/strconv"

	"github.com/thekovic/wadutil64/internal/testutil"
	"github.com/thekovic/wadutil64/internal/tool/bench"
)

func main() {
	var codecList, sizeList, file string
	flag.StringVar(&codecList, "codecs", defaultCodecs(), "comma-separated list of codecs to run")
	flag.StringVar(&sizeList, "sizes", "1e4,1e5", "comma-separated list of input sizes")
	flag.StringVar(&file, "file", "", "input file (pseudo-random data when empty)")
	flag.Parse()

	var input []byte
	if file != "" {
		input = testutil.MustLoadFile(file)
	} else {
		input = testutil.NewRand(0).Bytes(1 << 16)
	}

	var sizes []int
	for _, s := range strings.Split(sizeList, ",") {
		n, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid size: %s\n", s)
			os.Exit(1)
		}
		sizes = append(sizes, int(n))
	}

	fmt.Printf("%-12s %10s %10s %10s %8s\n", "benchmark", "enc MB/s", "dec MB/s", "ratio", "size")
	for _, name := range strings.Split(codecList, ",") {
		c, ok := bench.Codecs[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown codec: %s\n", name)
			os.Exit(1)
		}
		for _, size := range sizes {
			data := testutil.ResizeData(input, size)
			ratio, err := bench.Ratio(c, data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
				os.Exit(1)
			}
			fmt.Printf("%-12s %10.2f %10.2f %10.3f %8s\n",
				fmt.Sprintf("%s:%d", name, size),
				bench.EncodeRate(c, data), bench.DecodeRate(c, data), ratio,
				strconv.FormatPrefix(float64(size), strconv.Base1024, 2))
		}
	}
}

func defaultCodecs() string {
	var names []string
	for name := range bench.Codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
