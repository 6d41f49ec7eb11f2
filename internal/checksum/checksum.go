// Package checksum provides CRC32 integrity wrappers for snapshot I/O.
//
// CRC32 (IEEE polynomial) detects accidental storage corruption; it is not
// cryptographically secure and must not be relied on for tamper detection.
package checksum

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"
)

var table = crc32.MakeTable(crc32.IEEE)

// Writer wraps an io.Writer and computes a running CRC32 of everything
// written through it.
type Writer struct {
	w    io.Writer
	hash hash.Hash32
}

// NewWriter creates a new checksumming writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, hash: crc32.New(table)}
}

// Write implements io.Writer.
func (cw *Writer) Write(p []byte) (int, error) {
	if _, err := cw.hash.Write(p); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}

// Sum returns the checksum of all bytes written so far.
func (cw *Writer) Sum() uint32 {
	return cw.hash.Sum32()
}

// Reader wraps an io.Reader and computes a running CRC32 of everything read
// through it.
type Reader struct {
	r    io.Reader
	hash hash.Hash32
}

// NewReader creates a new checksumming reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, hash: crc32.New(table)}
}

// Read implements io.Reader.
func (cr *Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		if _, hashErr := cr.hash.Write(p[:n]); hashErr != nil {
			return n, hashErr
		}
	}
	return n, err
}

// Sum returns the checksum of all bytes read so far.
func (cr *Reader) Sum() uint32 {
	return cr.hash.Sum32()
}

// Verify compares the running checksum against expected.
func (cr *Reader) Verify(expected uint32) error {
	if actual := cr.Sum(); actual != expected {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// MismatchError is returned when checksum verification fails.
type MismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}
