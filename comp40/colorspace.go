package comp40

import (
	"math"

	"github.com/mrjoshuak/go-comp40/ppm"
)

// pixelYC is one pixel in component-video space. Y is luminance in [0,1];
// Pb and Pr are chroma differences in [-0.5, 0.5].
type pixelYC struct {
	Y, Pb, Pr float64
}

// ITU-R BT.601 coefficients relating RGB and Y′PbPr.
//
//	Y  =  0.299 R + 0.587 G + 0.114 B
//	Pb = -0.168736 R - 0.331264 G + 0.5 B
//	Pr =  0.5 R - 0.418688 G - 0.081312 B
const (
	kr = 0.299
	kg = 0.587
	kb = 0.114
)

// ycFromRGB converts one RGB pixel, scaled against denominator d, to
// component video. Outputs are clamped to their declared ranges.
func ycFromRGB(p ppm.Pixel, d uint16) pixelYC {
	r := float64(p.R) / float64(d)
	g := float64(p.G) / float64(d)
	b := float64(p.B) / float64(d)

	y := kr*r + kg*g + kb*b
	pb := -0.168736*r - 0.331264*g + 0.5*b
	pr := 0.5*r - 0.418688*g - 0.081312*b

	return pixelYC{
		Y:  clamp(y, 0, 1),
		Pb: clamp(pb, -0.5, 0.5),
		Pr: clamp(pr, -0.5, 0.5),
	}
}

// rgbFromYC converts one component-video pixel back to RGB scaled against
// denominator d. Channels are clamped to [0,1] before scaling and rounded
// half away from zero.
func rgbFromYC(p pixelYC, d uint16) ppm.Pixel {
	r := p.Y + 1.402*p.Pr
	g := p.Y - 0.344136*p.Pb - 0.714136*p.Pr
	b := p.Y + 1.772*p.Pb

	scale := float64(d)
	return ppm.Pixel{
		R: uint16(math.Round(clamp(r, 0, 1) * scale)),
		G: uint16(math.Round(clamp(g, 0, 1) * scale)),
		B: uint16(math.Round(clamp(b, 0, 1) * scale)),
	}
}

// clamp pushes v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
