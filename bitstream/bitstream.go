// Package bitstream adapts github.com/icza/bitio to the rewindable bit
// source and flushing bit sink the huff codec reads from and writes to.
//
// Bits are MSB-first within each byte. The writer pads the final partial byte
// with zero bits when it is closed.
package bitstream

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/icza/bitio"
)

var (
	// ErrClosed is returned by writes on a closed Writer.
	ErrClosed = errors.New("bitstream: write on closed writer")
	// ErrNotRewindable is returned by Rewind when the source cannot seek.
	ErrNotRewindable = errors.New("bitstream: source is not rewindable")
)

// Reader reads fixed-width units from an io.Reader. If the reader also
// implements io.Seeker it can rewind to the start of the stream.
type Reader struct {
	src  io.Reader
	br   *bitio.Reader
	bits int64
}

// NewReader returns a Reader positioned at the current offset of src.
// Rewind always returns to offset 0.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src, br: bitio.NewReader(src)}
}

// NewBytesReader is shorthand for NewReader(bytes.NewReader(b)).
func NewBytesReader(b []byte) *Reader {
	return NewReader(bytes.NewReader(b))
}

// ReadBits returns the next n bits (n <= 64) as an unsigned value.
// It returns io.EOF once the source cannot supply all n bits.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	v, err := r.br.ReadBits(n)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	r.bits += int64(n)
	return v, nil
}

// Rewind seeks the source back to its start and drops any buffered bits.
func (r *Reader) Rewind() error {
	s, ok := r.src.(io.Seeker)
	if !ok {
		return ErrNotRewindable
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	r.br = bitio.NewReader(r.src)
	return nil
}

// BitsRead reports the number of bits returned by ReadBits, across rewinds.
func (r *Reader) BitsRead() int64 { return r.bits }

// Writer appends fixed-width units to an io.Writer.
type Writer struct {
	buf    *bufio.Writer
	bw     *bitio.Writer
	bits   int64
	closed bool
}

// NewWriter returns a Writer buffering into dst. Nothing is guaranteed to
// reach dst until Close.
func NewWriter(dst io.Writer) *Writer {
	buf := bufio.NewWriter(dst)
	return &Writer{buf: buf, bw: bitio.NewWriter(buf)}
}

// WriteBits appends the low n bits of value, most significant first.
func (w *Writer) WriteBits(value uint64, n uint8) error {
	if w.closed {
		return ErrClosed
	}
	if err := w.bw.WriteBits(value, n); err != nil {
		return err
	}
	w.bits += int64(n)
	return nil
}

// Close pads the last byte with zero bits and flushes everything to the
// underlying writer. It does not close the underlying writer. Calling Close
// more than once is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.bw.Close(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// BitsWritten reports the number of bits accepted by WriteBits, excluding
// the padding added by Close.
func (w *Writer) BitsWritten() int64 { return w.bits }
