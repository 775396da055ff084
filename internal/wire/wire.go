// Package wire provides big-endian binary reading and writing for the
// compressed image container.
//
// The container stores each 32-bit codeword with its most significant byte
// at the smallest offset. This package wraps io.Reader and io.Writer with a
// small scratch buffer so codewords can be streamed without per-word
// allocation.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrShortRead is returned when the underlying stream ends in the middle of
// a value.
var ErrShortRead = errors.New("wire: short read")

// ByteOrder is the byte order used on the wire.
var ByteOrder = binary.BigEndian

// StreamReader reads big-endian values from an io.Reader.
type StreamReader struct {
	r   io.Reader
	buf [4]byte
}

// NewStreamReader creates a StreamReader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: r}
}

// ReadUint32 reads one big-endian 32-bit value. A truncated stream yields
// ErrShortRead; other I/O failures are returned as-is.
func (r *StreamReader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, ErrShortRead
		}
		return 0, err
	}
	return ByteOrder.Uint32(r.buf[:4]), nil
}

// ReadByte reads a single byte.
func (r *StreamReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, ErrShortRead
		}
		return 0, err
	}
	return r.buf[0], nil
}

// StreamWriter writes big-endian values to an io.Writer.
type StreamWriter struct {
	w   io.Writer
	buf [4]byte
}

// NewStreamWriter creates a StreamWriter from an io.Writer.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// WriteUint32 writes one big-endian 32-bit value.
func (w *StreamWriter) WriteUint32(v uint32) error {
	ByteOrder.PutUint32(w.buf[:4], v)
	_, err := w.w.Write(w.buf[:4])
	return err
}

// WriteBytes writes a byte slice.
func (w *StreamWriter) WriteBytes(b []byte) error {
	_, err := w.w.Write(b)
	return err
}
