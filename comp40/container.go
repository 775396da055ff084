package comp40

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-comp40/internal/wire"
	"github.com/mrjoshuak/go-comp40/raster"
)

// Magic is the first header line of every compressed image.
const Magic = "COMP40 Compressed image format 2"

// maxContainerDim bounds each header dimension and maxContainerCells their
// product. They exist to stop a corrupted header from driving a
// multi-gigabyte allocation before the payload read fails anyway.
const (
	maxContainerDim   = 1 << 20
	maxContainerCells = 1 << 26
)

// writeContainer emits the header and the codeword payload in row-major
// order, each codeword as four big-endian bytes.
func writeContainer(w io.Writer, words *raster.Flat[uint32]) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n", Magic, words.Width(), words.Height()); err != nil {
		return fmt.Errorf("comp40: writing header: %w", err)
	}
	sw := wire.NewStreamWriter(bw)
	var werr error
	words.EachRowMajor(func(x, y int, cw uint32) {
		if werr == nil {
			werr = sw.WriteUint32(cw)
		}
	})
	if werr != nil {
		return fmt.Errorf("comp40: writing payload: %w", werr)
	}
	return bw.Flush()
}

// readContainer parses the header and reads exactly width·height codewords.
// The dimensions in the header are the compressed-grid dimensions, half the
// final image in each direction.
func readContainer(r io.Reader) (*raster.Flat[uint32], error) {
	br := bufio.NewReader(r)

	magic, err := readHeaderLine(br)
	if err != nil || magic != Magic {
		return nil, ErrBadMagic
	}
	dims, err := readHeaderLine(br)
	if err != nil {
		return nil, ErrBadHeader
	}
	width, height, err := parseDimensions(dims)
	if err != nil {
		return nil, err
	}

	words := raster.NewFlat[uint32](width, height)
	sr := wire.NewStreamReader(br)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cw, err := sr.ReadUint32()
			if err != nil {
				if errors.Is(err, wire.ErrShortRead) {
					return nil, ErrTruncated
				}
				return nil, fmt.Errorf("comp40: reading payload: %w", err)
			}
			words.Set(x, y, cw)
		}
	}
	return words, nil
}

// readHeaderLine reads one newline-terminated header line. A stream that
// ends before the newline is malformed.
func readHeaderLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", ErrBadHeader
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// parseDimensions parses the "<width> <height>" header line.
func parseDimensions(line string) (width, height int, err error) {
	fields := strings.Split(line, " ")
	if len(fields) != 2 {
		return 0, 0, ErrBadHeader
	}
	width, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, ErrBadHeader
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, ErrBadHeader
	}
	if width < 1 || height < 1 || width > maxContainerDim || height > maxContainerDim {
		return 0, 0, ErrBadHeader
	}
	if width*height > maxContainerCells {
		return 0, 0, ErrBadHeader
	}
	return width, height, nil
}
