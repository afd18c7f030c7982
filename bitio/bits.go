/*
NAME
  bits.go

DESCRIPTION
  bits.go provides an MSB-first bit reader and bit writer over owned byte
  buffers, used by the RBT LZS codec for its variable-length back-reference
  offsets and length table.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitio provides an MSB-first bit reader and bit writer backed by
// byte buffers.
package bitio

import "github.com/pkg/errors"

// maxReadBits bounds the size of a single Read/Peek request: only requests
// of fewer than maxReadBits bits are serviced. refill stops adding bytes as
// soon as more than 24 bits are valid, so any such request is satisfied from
// one refill while input remains.
const maxReadBits = 24

// ErrTooManyBits is returned when a caller requests maxReadBits or more bits
// in one call.
var ErrTooManyBits = errors.New("bitio: read/peek request of n>=24 bits")

// ErrUnderrun is returned when the reader runs out of input bytes before
// satisfying a request.
var ErrUnderrun = errors.New("bitio: buffer underrun")

// Reader is an MSB-first bit reader over an owned byte buffer.
type Reader struct {
	buf   []byte
	idx   int
	acc   uint32
	valid uint // number of high bits of acc that are valid
}

// NewReader returns a Reader that reads bits from buf, most significant bit
// first.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// refill tops up the accumulator with whole bytes from the input until
// valid exceeds 24 bits or the input is exhausted.
func (r *Reader) refill() {
	for r.valid <= maxReadBits && r.idx < len(r.buf) {
		r.acc |= uint32(r.buf[r.idx]) << (24 - r.valid)
		r.idx++
		r.valid += 8
	}
}

// Peek returns the next n bits without advancing the reader. n must be less
// than 24.
func (r *Reader) Peek(n uint) (uint32, error) {
	if n >= maxReadBits {
		return 0, ErrTooManyBits
	}
	r.refill()
	if n > r.valid {
		return 0, ErrUnderrun
	}
	return r.acc >> (32 - n), nil
}

// Read returns the next n bits and advances the reader past them. n must be
// less than 24.
func (r *Reader) Read(n uint) (uint32, error) {
	v, err := r.Peek(n)
	if err != nil {
		return 0, err
	}
	r.acc <<= n
	r.valid -= n
	return v, nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (uint32, error) {
	return r.Read(1)
}

// BytesRead returns the number of whole input bytes consumed into the
// accumulator so far (including bits not yet read out of it).
func (r *Reader) BytesRead() int {
	return r.idx
}

// Writer is an MSB-first bit writer that accumulates bits and emits whole
// bytes to an owned output buffer.
type Writer struct {
	buf   []byte
	acc   uint32
	count uint // number of buffered bits in acc, right-aligned
}

// NewWriter returns a new, empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Put appends the low n bits of v to the bitstream, most significant bit
// first, emitting whole bytes to the output buffer as they fill.
func (w *Writer) Put(v uint32, n uint) {
	w.acc = (w.acc << n) | (v & ((1 << n) - 1))
	w.count += n
	for w.count >= 8 {
		w.count -= 8
		w.buf = append(w.buf, byte(w.acc>>w.count))
	}
}

// PutBit appends a single bit.
func (w *Writer) PutBit(b bool) {
	if b {
		w.Put(1, 1)
	} else {
		w.Put(0, 1)
	}
}

// Flush emits a final partial byte, left-aligned within its byte, padding
// the low bits with zero. It is idempotent: calling Flush with no buffered
// bits is a no-op.
func (w *Writer) Flush() {
	if w.count == 0 {
		return
	}
	w.buf = append(w.buf, byte(w.acc<<(8-w.count)))
	w.acc = 0
	w.count = 0
}

// Bytes returns the accumulated output. Flush should be called first to
// include any partially-filled trailing byte.
func (w *Writer) Bytes() []byte {
	return w.buf
}
