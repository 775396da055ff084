package comp40

import (
	"io"

	"github.com/mrjoshuak/go-comp40/ppm"
	"github.com/mrjoshuak/go-comp40/raster"
)

// Compress encodes img into the compressed container format on w.
//
// The image is trimmed to even dimensions first; an image without at least
// one complete 2×2 block is rejected with ErrImageTooSmall. Only the
// transformed payload is written: on error the stream may hold a prefix.
func Compress(img *ppm.Image, w io.Writer) error {
	width := img.Width &^ 1
	height := img.Height &^ 1
	if width < 2 || height < 2 {
		return ErrImageTooSmall
	}

	yc := trimToYC(img, width, height)
	blocks := reduce(yc)
	words := pack(blocks)
	return writeContainer(w, words)
}

// trimToYC drops any odd trailing column and row and converts the surviving
// pixels to component video, laid out in 2×2 blocks so the reduce stage
// walks each block contiguously.
func trimToYC(img *ppm.Image, width, height int) *raster.Blocked[pixelYC] {
	yc := raster.NewBlocked[pixelYC](width, height, 2)
	d := img.MaxVal
	parallelRows(height, func(y int) {
		for x := 0; x < width; x++ {
			yc.Set(x, y, ycFromRGB(img.At(x, y), d))
		}
	})
	return yc
}

// reduce collapses each aligned 2×2 block into a block record: the chroma
// of the four pixels is averaged and clamped, and the four luminance values
// run through the DCT. The result grid has half the input dimensions.
func reduce(yc *raster.Blocked[pixelYC]) *raster.Flat[block] {
	outW := yc.Width() / 2
	outH := yc.Height() / 2
	blocks := raster.NewFlat[block](outW, outH)

	parallelRows(outH, func(by int) {
		for bx := 0; bx < outW; bx++ {
			x, y := bx*2, by*2
			p1 := yc.At(x, y)
			p2 := yc.At(x+1, y)
			p3 := yc.At(x, y+1)
			p4 := yc.At(x+1, y+1)

			a, b, c, d := dctForward(p1.Y, p2.Y, p3.Y, p4.Y)
			blocks.Set(bx, by, block{
				A: a, B: b, C: c, D: d,
				Pb: clamp((p1.Pb+p2.Pb+p3.Pb+p4.Pb)/4, -0.5, 0.5),
				Pr: clamp((p1.Pr+p2.Pr+p3.Pr+p4.Pr)/4, -0.5, 0.5),
			})
		}
	})
	return blocks
}

// pack quantizes every block record and assembles its codeword.
func pack(blocks *raster.Flat[block]) *raster.Flat[uint32] {
	words := raster.NewFlat[uint32](blocks.Width(), blocks.Height())
	parallelRows(blocks.Height(), func(y int) {
		for x := 0; x < blocks.Width(); x++ {
			words.Set(x, y, packBlock(quantizeBlock(blocks.At(x, y))))
		}
	})
	return words
}
