package comp40

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mrjoshuak/go-comp40/ppm"
)

// compressToWords compresses img and returns the parsed container grid.
func compressToWords(t *testing.T, img *ppm.Image) (width, height int, words []uint32) {
	t.Helper()
	var buf bytes.Buffer
	if err := Compress(img, &buf); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	grid, err := readContainer(&buf)
	if err != nil {
		t.Fatalf("readContainer: %v", err)
	}
	grid.EachRowMajor(func(x, y int, cw uint32) {
		words = append(words, cw)
	})
	return grid.Width(), grid.Height(), words
}

func solid(w, h int, p ppm.Pixel) *ppm.Image {
	img := ppm.New(w, h, 255)
	for i := range img.Pixels {
		img.Pixels[i] = p
	}
	return img
}

func TestCompressSolidBlack(t *testing.T) {
	w, h, words := compressToWords(t, solid(2, 2, ppm.Pixel{}))
	if w != 1 || h != 1 {
		t.Fatalf("container = %dx%d, want 1x1", w, h)
	}
	q := unpackCodeword(words[0])
	if q.A != 0 || q.B != 0 || q.C != 0 || q.D != 0 {
		t.Errorf("luminance fields = %+v, want all zero", q)
	}
	wantChroma := IndexOfChroma(0)
	if q.Pb != wantChroma || q.Pr != wantChroma {
		t.Errorf("chroma indices = %d/%d, want %d", q.Pb, q.Pr, wantChroma)
	}
}

func TestCompressSolidWhite(t *testing.T) {
	_, _, words := compressToWords(t, solid(2, 2, ppm.Pixel{R: 255, G: 255, B: 255}))
	q := unpackCodeword(words[0])
	if q.A != 63 {
		t.Errorf("A = %d, want 63", q.A)
	}
	if q.B != 0 || q.C != 0 || q.D != 0 {
		t.Errorf("gradients = %d,%d,%d, want zero", q.B, q.C, q.D)
	}
	wantChroma := IndexOfChroma(0)
	if q.Pb != wantChroma || q.Pr != wantChroma {
		t.Errorf("chroma indices = %d/%d, want %d", q.Pb, q.Pr, wantChroma)
	}
}

func TestCompressTrimsOddDimensions(t *testing.T) {
	// A 3x3 image is trimmed to 2x2: one codeword, and the last row and
	// column must not influence the output.
	img := ppm.New(3, 3, 255)
	for i := range img.Pixels {
		img.Pixels[i] = ppm.Pixel{R: 100, G: 100, B: 100}
	}
	// Poison the trimmed row and column.
	for i := 0; i < 3; i++ {
		img.Set(2, i, ppm.Pixel{R: 255})
		img.Set(i, 2, ppm.Pixel{B: 255})
	}
	w, h, words := compressToWords(t, img)
	if w != 1 || h != 1 {
		t.Fatalf("container = %dx%d, want 1x1", w, h)
	}

	ref := ppm.New(2, 2, 255)
	for i := range ref.Pixels {
		ref.Pixels[i] = ppm.Pixel{R: 100, G: 100, B: 100}
	}
	_, _, refWords := compressToWords(t, ref)
	if words[0] != refWords[0] {
		t.Errorf("trimmed image codeword %#x, want %#x", words[0], refWords[0])
	}
}

func TestCompressTooSmall(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 4}, {4, 1}, {1, 8}} {
		img := ppm.New(dims[0], dims[1], 255)
		var buf bytes.Buffer
		if err := Compress(img, &buf); !errors.Is(err, ErrImageTooSmall) {
			t.Errorf("%dx%d: err = %v, want ErrImageTooSmall", dims[0], dims[1], err)
		}
	}
}

func TestDimensionContract(t *testing.T) {
	// Container dimensions are half the trimmed input; decompressed
	// dimensions are twice the container.
	for _, tt := range []struct{ w, h, cw, ch int }{
		{2, 2, 1, 1},
		{4, 2, 2, 1},
		{5, 3, 2, 1},
		{7, 9, 3, 4},
		{16, 16, 8, 8},
	} {
		img := ppm.New(tt.w, tt.h, 255)
		var buf bytes.Buffer
		if err := Compress(img, &buf); err != nil {
			t.Fatalf("%dx%d: Compress: %v", tt.w, tt.h, err)
		}
		out, err := Decompress(&buf)
		if err != nil {
			t.Fatalf("%dx%d: Decompress: %v", tt.w, tt.h, err)
		}
		if out.Width != tt.cw*2 || out.Height != tt.ch*2 {
			t.Errorf("%dx%d: decompressed to %dx%d, want %dx%d",
				tt.w, tt.h, out.Width, out.Height, tt.cw*2, tt.ch*2)
		}
		if out.MaxVal != 255 {
			t.Errorf("%dx%d: denominator = %d, want 255", tt.w, tt.h, out.MaxVal)
		}
	}
}

func TestDecompressLiteralContainer(t *testing.T) {
	// The literal container from the format description: a "2 1" header
	// with eight payload bytes decodes to a 4x2 pixmap.
	data := Magic + "\n2 1\n" + "\x00\x00\x00\x77\x80\x00\x00\x77"
	out, err := Decompress(bytes.NewReader([]byte(data)))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if out.Width != 4 || out.Height != 2 {
		t.Errorf("decoded to %dx%d, want 4x2", out.Width, out.Height)
	}
}

func TestGradientRoundTripBound(t *testing.T) {
	// A horizontal luminance gradient survives a full round trip within
	// the documented quantization bound.
	img := ppm.New(4, 4, 255)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint16(40 + 40*x)
			img.Set(x, y, ppm.Pixel{R: v, G: v, B: v})
		}
	}
	var buf bytes.Buffer
	if err := Compress(img, &buf); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	out, err := Decompress(&buf)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if out.Width != 4 || out.Height != 4 {
		t.Fatalf("decompressed to %dx%d", out.Width, out.Height)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			in := img.At(x, y)
			got := out.At(x, y)
			inLuma := 0.299*float64(in.R) + 0.587*float64(in.G) + 0.114*float64(in.B)
			gotLuma := 0.299*float64(got.R) + 0.587*float64(got.G) + 0.114*float64(got.B)
			if diff := inLuma - gotLuma; diff > 12 || diff < -12 {
				t.Errorf("(%d,%d): luminance %g -> %g", x, y, inLuma, gotLuma)
			}
		}
	}
}

func TestSmoothImageRoundTripBound(t *testing.T) {
	// Property: on smooth regions the per-channel error stays within the
	// documented bound of 20/255.
	const n = 16
	img := ppm.New(n, n, 255)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.Set(x, y, ppm.Pixel{
				R: uint16(60 + 8*x),
				G: uint16(90 + 6*y),
				B: uint16(120 + 3*x + 3*y),
			})
		}
	}
	var buf bytes.Buffer
	if err := Compress(img, &buf); err != nil {
		t.Fatalf("Compress: %v", err)
	}

	// Compressed payload is a third of the raw byte count: one 4-byte
	// codeword per 2x2 block of 12 raw bytes.
	rawBytes := n * n * 3
	wantPayload := (n / 2) * (n / 2) * 4
	header := len(Magic) + 1 + len("8 8\n")
	if got := buf.Len(); got != header+wantPayload {
		t.Errorf("container size = %d, want %d", got, header+wantPayload)
	}
	if 3*wantPayload != rawBytes {
		t.Fatalf("payload %d is not a third of %d", wantPayload, rawBytes)
	}

	out, err := Decompress(&buf)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			in := img.At(x, y)
			got := out.At(x, y)
			if absDiff(in.R, got.R) > 20 || absDiff(in.G, got.G) > 20 || absDiff(in.B, got.B) > 20 {
				t.Errorf("(%d,%d): %+v -> %+v", x, y, in, got)
			}
		}
	}
}

func TestRoundTripIdempotent(t *testing.T) {
	// Once quantization loss has been paid, a second compress/decompress
	// cycle reproduces the first result within one unit per channel.
	img := ppm.New(8, 8, 255)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, ppm.Pixel{
				R: uint16(x * 30 % 256),
				G: uint16(y * 30 % 256),
				B: uint16((x + y) * 15 % 256),
			})
		}
	}
	var buf1 bytes.Buffer
	if err := Compress(img, &buf1); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	once, err := Decompress(&buf1)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	var buf2 bytes.Buffer
	if err := Compress(once, &buf2); err != nil {
		t.Fatalf("second Compress: %v", err)
	}
	twice, err := Decompress(&buf2)
	if err != nil {
		t.Fatalf("second Decompress: %v", err)
	}
	for i := range once.Pixels {
		if absDiff(once.Pixels[i].R, twice.Pixels[i].R) > 1 ||
			absDiff(once.Pixels[i].G, twice.Pixels[i].G) > 1 ||
			absDiff(once.Pixels[i].B, twice.Pixels[i].B) > 1 {
			t.Fatalf("pixel %d drifted: %+v -> %+v", i, once.Pixels[i], twice.Pixels[i])
		}
	}
}

func BenchmarkCompress(b *testing.B) {
	img := ppm.New(256, 256, 255)
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.Set(x, y, ppm.Pixel{R: uint16(x), G: uint16(y), B: uint16(x ^ y)})
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := Compress(img, &buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	img := ppm.New(256, 256, 255)
	var buf bytes.Buffer
	if err := Compress(img, &buf); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decompress(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
