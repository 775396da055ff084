// comp40 compresses PPM images to the COMP40 container format and back.
//
// Usage:
//
//	comp40 -c [file]    compress a PPM image to the container format
//	comp40 -d [file]    decompress a container back to a PPM image
//
// With no file argument the input is read from standard input. The
// transformed image is written to standard output; diagnostics go to
// standard error. Input compressed with gzip is detected by its magic
// bytes and decompressed transparently.
//
// Exit codes:
//
//	0: success
//	1: read, parse, or precondition failure
//	2: usage error
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/mrjoshuak/go-comp40/comp40"
	"github.com/mrjoshuak/go-comp40/ppm"
)

const version = "1.0.0"

type mode int

const (
	modeNone mode = iota
	modeCompress
	modeDecompress
)

func main() {
	os.Exit(run())
}

func run() int {
	selected := modeNone
	path := ""

	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch arg {
		case "-c", "--compress":
			if selected != modeNone {
				fmt.Fprintln(os.Stderr, "comp40: choose exactly one of -c or -d")
				printUsage()
				return 2
			}
			selected = modeCompress
		case "-d", "--decompress":
			if selected != modeNone {
				fmt.Fprintln(os.Stderr, "comp40: choose exactly one of -c or -d")
				printUsage()
				return 2
			}
			selected = modeDecompress
		case "-h", "--help":
			printUsage()
			return 0
		case "--version":
			fmt.Printf("comp40 version %s\n", version)
			return 0
		default:
			if len(arg) > 0 && arg[0] == '-' {
				fmt.Fprintf(os.Stderr, "comp40: unknown option: %s\n", arg)
				printUsage()
				return 2
			}
			if path != "" {
				fmt.Fprintln(os.Stderr, "comp40: at most one input file")
				printUsage()
				return 2
			}
			path = arg
		}
	}

	if selected == modeNone {
		fmt.Fprintln(os.Stderr, "comp40: choose one of -c or -d")
		printUsage()
		return 2
	}

	input, closeInput, err := openInput(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "comp40: %v\n", err)
		return 1
	}
	defer closeInput()

	switch selected {
	case modeCompress:
		err = compress(input, os.Stdout)
	case modeDecompress:
		err = decompress(input, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "comp40: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: comp40 -c|-d [file]

Compress a PPM image to the COMP40 container format, or decompress a
container back to PPM. Without a file argument, input is read from
standard input. Output goes to standard output.

Options:
  -c, --compress     compress a PPM image
  -d, --decompress   decompress a container
  -h, --help         show this help message
  --version          show version information`)
}

// openInput opens the named file, or standard input when path is empty, and
// unwraps gzip-compressed streams transparently.
func openInput(path string) (io.Reader, func(), error) {
	var raw io.Reader = os.Stdin
	closeFn := func() {}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		raw = f
		closeFn = func() { f.Close() }
	}

	br := bufio.NewReader(raw)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("reading gzip input: %w", err)
		}
		inner := closeFn
		return zr, func() { zr.Close(); inner() }, nil
	}
	return br, closeFn, nil
}

func compress(r io.Reader, w io.Writer) error {
	img, err := ppm.Decode(r)
	if err != nil {
		return err
	}
	return comp40.Compress(img, w)
}

func decompress(r io.Reader, w io.Writer) error {
	img, err := comp40.Decompress(r)
	if err != nil {
		return err
	}
	return ppm.Encode(w, img)
}
