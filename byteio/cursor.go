/*
NAME
  cursor.go

DESCRIPTION
  cursor.go provides bounded little-endian byte-stream cursors used
  throughout the VMD/RBT codec and container packages for fixed-layout
  field access.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package byteio provides little-endian integer read/write helpers and a
// bounded byte-stream cursor with remaining-bytes queries.
package byteio

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrUnderrun is returned when a read would go past the end of the cursor's
// buffer.
var ErrUnderrun = errors.New("byteio: read past end of buffer")

// Reader is a bounded cursor for reading little-endian fields out of a byte
// buffer without copying it.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// Off returns the current read offset.
func (r *Reader) Off() int { return r.off }

// Seek repositions the cursor to an absolute offset.
func (r *Reader) Seek(off int) { r.off = off }

// Bytes reads n raw bytes and advances the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, errors.Wrapf(ErrUnderrun, "want %d bytes, have %d", n, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// U8 reads one byte.
func (r *Reader) U8() (byte, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Writer is an append-only little-endian byte buffer builder.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// NewWriterSize returns an empty Writer with buf pre-allocated to size.
func NewWriterSize(size int) *Writer { return &Writer{buf: make([]byte, 0, size)} }

// Bytes appends raw bytes.
func (w *Writer) Bytes(b []byte) { w.buf = append(w.buf, b...) }

// U8 appends one byte.
func (w *Writer) U8(v byte) { w.buf = append(w.buf, v) }

// U16 appends a little-endian uint16.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// U32 appends a little-endian uint32.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Pad appends n zero bytes.
func (w *Writer) Pad(n int) { w.buf = append(w.buf, make([]byte, n)...) }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Out returns the underlying buffer.
func (w *Writer) Out() []byte { return w.buf }
