// Package comp40 implements a lossy codec for PPM rasters.
//
// The compressed container — "COMP40 Compressed image format 2" — holds an
// ASCII header followed by one packed 32-bit codeword per 2×2 block of the
// source image, stored big-endian in row-major order. A compressed payload
// is one third the pixel byte count of an 8-bit-per-channel input.
//
// Compression runs the image through a fixed pipeline: odd trailing rows and
// columns are trimmed, pixels move to component-video space (Y′, Pb, Pr),
// each aligned 2×2 block is reduced to averaged chroma plus four discrete
// cosine transform coefficients of its luminance, the results are quantized,
// and the quantized fields are packed into codewords. Decompression inverts
// each stage. The loss is bounded and attributable solely to chroma and
// coefficient quantization.
package comp40

import (
	"errors"
)

// Errors reported by the codec. All are terminal: the pipeline has no
// recoverable error class and no partial-output contract.
var (
	// ErrImageTooSmall is returned when the input, after trimming, has no
	// complete 2×2 block.
	ErrImageTooSmall = errors.New("comp40: image smaller than one 2x2 block")

	// ErrBadMagic is returned when a container does not begin with the
	// compressed-image magic line.
	ErrBadMagic = errors.New("comp40: not a compressed image")

	// ErrBadHeader is returned when the container dimensions line is
	// malformed.
	ErrBadHeader = errors.New("comp40: malformed container header")

	// ErrTruncated is returned when the payload ends before supplying
	// every codeword the header promises.
	ErrTruncated = errors.New("comp40: truncated payload")
)
