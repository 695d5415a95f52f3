// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

/*
The hpackdump command decodes a hex-encoded HPACK header block and
prints the header fields it contains, along with the resulting
dynamic table state.

Usage:

	$ hpackdump -table 4096 '82 86 84 41 0f 77 77 77 2e 65 78 61 6d 70 6c 65 2e 63 6f 6d'
	$ echo '82 86 84 41 0f ...' | hpackdump

Hex bytes given as arguments are decoded as one header block. Input
on stdin is read line by line: with -chunk, each line is fed as a
separate chunk of the same header block, exercising the chunked
decoder the way header fields arriving across several HTTP/2
CONTINUATION frames would; without it, each line is decoded as a
complete header block.
*/
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hpack-project/hpack/hpack"
)

var (
	flagTableSize = flag.Uint("table", 4096, "maximum dynamic table size, in bytes")
	flagChunk     = flag.Bool("chunk", false, "treat each stdin line as a separate wire chunk of the same header block")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: hpackdump [flags] [hex-bytes]\n\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	d := hpack.NewDecoder(uint32(*flagTableSize))
	cd := hpack.NewChunkedDecoder(d)

	if args := flag.Args(); len(args) > 0 {
		dumpOne(cd, strings.Join(args, " "), true)
		printTable(d)
		return
	}

	sc := bufio.NewScanner(os.Stdin)
	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("reading stdin: %v", err)
	}
	if len(lines) == 0 {
		usage()
	}
	for i, line := range lines {
		dumpOne(cd, line, i == len(lines)-1 || !*flagChunk)
	}
	printTable(d)
}

func dumpOne(cd *hpack.ChunkedDecoder, hexChunk string, last bool) {
	b, err := hex.DecodeString(strings.ReplaceAll(hexChunk, " ", ""))
	if err != nil {
		log.Fatalf("decoding hex input: %v", err)
	}
	hint, err := cd.Feed(b, last, func(f hpack.HeaderField) {
		fmt.Println(f.String())
	})
	if err != nil {
		log.Fatalf("decoding header block: %v", err)
	}
	if hint > 0 {
		fmt.Printf("# incomplete representation, need approximately %d more byte(s)\n", hint)
	}
}

func printTable(d *hpack.Decoder) {
	fmt.Printf("# dynamic table size: %d\n", d.DynamicTableSize())
}
