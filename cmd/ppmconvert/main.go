// ppmconvert decodes common raster formats into PPM so they can be fed to
// the comp40 compressor.
//
// Usage:
//
//	ppmconvert [file]
//
// The input may be PNG, JPEG, BMP, or TIFF; the format is detected from the
// stream. With no file argument the input is read from standard input. The
// PPM image is written to standard output with a channel maximum of 255.
//
// Exit codes:
//
//	0: success
//	1: read or decode failure
//	2: usage error
package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/mrjoshuak/go-comp40/ppm"
)

func main() {
	os.Exit(run())
}

func run() int {
	path := ""
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch arg {
		case "-h", "--help":
			printUsage()
			return 0
		default:
			if len(arg) > 0 && arg[0] == '-' {
				fmt.Fprintf(os.Stderr, "ppmconvert: unknown option: %s\n", arg)
				printUsage()
				return 2
			}
			if path != "" {
				fmt.Fprintln(os.Stderr, "ppmconvert: at most one input file")
				printUsage()
				return 2
			}
			path = arg
		}
	}

	var input io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ppmconvert: %v\n", err)
			return 1
		}
		defer f.Close()
		input = f
	}

	src, _, err := image.Decode(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppmconvert: decoding input: %v\n", err)
		return 1
	}

	if err := ppm.Encode(os.Stdout, fromImage(src)); err != nil {
		fmt.Fprintf(os.Stderr, "ppmconvert: writing ppm: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: ppmconvert [file]

Decode a PNG, JPEG, BMP, or TIFF image and write it as PPM (P6) to
standard output. Without a file argument, input is read from standard
input.`)
}

// fromImage converts any image.Image to an 8-bit PPM pixmap. Alpha is
// dropped; the 16-bit samples from RGBA are scaled down to 8 bits.
func fromImage(src image.Image) *ppm.Image {
	bounds := src.Bounds()
	out := ppm.New(bounds.Dx(), bounds.Dy(), 255)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			out.Set(x-bounds.Min.X, y-bounds.Min.Y, ppm.Pixel{
				R: uint16(r >> 8),
				G: uint16(g >> 8),
				B: uint16(b >> 8),
			})
		}
	}
	return out
}
