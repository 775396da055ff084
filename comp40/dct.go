package comp40

// block holds the reduced representation of one 2×2 pixel block: the
// averaged chroma of its four pixels and the four DCT coefficients of its
// luminance. A lies in [0,1]; B, C and D in [-0.3, 0.3]; Pb and Pr in
// [-0.5, 0.5].
type block struct {
	A, B, C, D float64
	Pb, Pr     float64
}

// dctForward transforms the four luminance values of one 2×2 block into
// coefficients. The inputs arrive in raster order: y1 top-left, y2
// top-right, y3 bottom-left, y4 bottom-right.
//
//	a = (y4 + y3 + y2 + y1) / 4    average brightness
//	b = (y4 + y3 − y2 − y1) / 4    top/bottom gradient
//	c = (y4 − y3 + y2 − y1) / 4    left/right gradient
//	d = (y4 − y3 − y2 + y1) / 4    diagonal gradient
func dctForward(y1, y2, y3, y4 float64) (a, b, c, d float64) {
	a = clamp((y4+y3+y2+y1)/4, 0, 1)
	b = clamp((y4+y3-y2-y1)/4, -0.3, 0.3)
	c = clamp((y4-y3+y2-y1)/4, -0.3, 0.3)
	d = clamp((y4-y3-y2+y1)/4, -0.3, 0.3)
	return a, b, c, d
}

// dctInverse reconstructs the four luminance values from coefficients,
// clamping each to [0,1]. It is the exact inverse of dctForward for
// coefficients inside their clamp ranges.
func dctInverse(a, b, c, d float64) (y1, y2, y3, y4 float64) {
	y1 = clamp(a-b-c+d, 0, 1)
	y2 = clamp(a-b+c-d, 0, 1)
	y3 = clamp(a+b-c-d, 0, 1)
	y4 = clamp(a+b+c+d, 0, 1)
	return y1, y2, y3, y4
}
