// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command wad64 transforms Doom 64 WAD archives between their on-ROM
// compressed form and a fully expanded form.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thekovic/wadutil64/wad"
)

var outputPath string

func main() {
	root := &cobra.Command{
		Use:           "wad64",
		Short:         "Read and write Doom 64 WAD archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output archive path")

	root.AddCommand(
		transformCmd("decompress", "Expand every compressed lump", "_decomp",
			func(f *wad.File) {
				for _, l := range f.Lumps {
					l.Compression = wad.CompressNone
				}
			}),
		transformCmd("compress", "Recompress lumps with the codec the console expects", "_comp",
			func(f *wad.File) {
				f.MarkCompressed()
			}),
		transformCmd("align", "Pad every lump body to a four-byte boundary", "_pad",
			func(f *wad.File) {
				f.Align()
			}),
		listCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wad64:", err)
		os.Exit(1)
	}
}

func transformCmd(name, short, suffix string, apply func(*wad.File)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " ARCHIVE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := wad.ReadFile(args[0])
			if err != nil {
				return err
			}
			apply(f)
			out := outputPath
			if out == "" {
				out = deriveName(args[0], suffix)
			}
			if err := f.WriteFile(out); err != nil {
				return err
			}
			fmt.Printf("%s: %d lumps -> %s\n", name, len(f.Lumps), out)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list ARCHIVE",
		Short: "Print the lump directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := wad.ReadFile(args[0])
			if err != nil {
				return err
			}
			for i, l := range f.Lumps {
				fmt.Printf("%4d  %-8s  %8d  %s\n", i, l.Name, len(l.Data), l.Compression)
			}
			return nil
		},
	}
}

// deriveName turns X.WAD into X<suffix>.WAD, matching the original tool's
// output naming.
func deriveName(path, suffix string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i] + suffix + path[i:]
	}
	return path + suffix
}
