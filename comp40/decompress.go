package comp40

import (
	"io"

	"github.com/mrjoshuak/go-comp40/ppm"
	"github.com/mrjoshuak/go-comp40/raster"
)

// outputDenominator is the channel maximum of every decompressed image.
const outputDenominator = 255

// Decompress reads a compressed container from r and reconstructs the RGB
// pixmap. The result has twice the container's dimensions in each direction
// and a channel maximum of 255.
func Decompress(r io.Reader) (*ppm.Image, error) {
	words, err := readContainer(r)
	if err != nil {
		return nil, err
	}
	blocks := unpack(words)
	yc := expand(blocks)
	return ycToRGB(yc), nil
}

// unpack splits every codeword and dequantizes its fields back to block
// records.
func unpack(words *raster.Flat[uint32]) *raster.Flat[block] {
	blocks := raster.NewFlat[block](words.Width(), words.Height())
	parallelRows(words.Height(), func(y int) {
		for x := 0; x < words.Width(); x++ {
			blocks.Set(x, y, dequantizeBlock(unpackCodeword(words.At(x, y))))
		}
	})
	return blocks
}

// expand doubles both dimensions, turning each block record back into a 2×2
// group of component-video pixels via the inverse DCT. All four pixels of a
// group share the block's averaged chroma.
func expand(blocks *raster.Flat[block]) *raster.Blocked[pixelYC] {
	outW := blocks.Width() * 2
	outH := blocks.Height() * 2
	yc := raster.NewBlocked[pixelYC](outW, outH, 2)

	parallelRows(blocks.Height(), func(by int) {
		for bx := 0; bx < blocks.Width(); bx++ {
			b := blocks.At(bx, by)
			y1, y2, y3, y4 := dctInverse(b.A, b.B, b.C, b.D)

			x, y := bx*2, by*2
			yc.Set(x, y, pixelYC{Y: y1, Pb: b.Pb, Pr: b.Pr})
			yc.Set(x+1, y, pixelYC{Y: y2, Pb: b.Pb, Pr: b.Pr})
			yc.Set(x, y+1, pixelYC{Y: y3, Pb: b.Pb, Pr: b.Pr})
			yc.Set(x+1, y+1, pixelYC{Y: y4, Pb: b.Pb, Pr: b.Pr})
		}
	})
	return yc
}

// ycToRGB converts the component-video grid to an RGB pixmap with the fixed
// output denominator.
func ycToRGB(yc *raster.Blocked[pixelYC]) *ppm.Image {
	img := ppm.New(yc.Width(), yc.Height(), outputDenominator)
	parallelRows(yc.Height(), func(y int) {
		for x := 0; x < yc.Width(); x++ {
			img.Set(x, y, rgbFromYC(yc.At(x, y), outputDenominator))
		}
	})
	return img
}
