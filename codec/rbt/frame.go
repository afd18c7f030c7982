/*
NAME
  frame.go

DESCRIPTION
  frame.go parses and serializes the RBT per-frame video header and its
  fragment headers (spec.md §3, §4.5).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rbt

import (
	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/byteio"
)

// FrameHeaderSize is the fixed size of a frame's video header.
const FrameHeaderSize = 24

// FragmentHeaderSize is the fixed size of one fragment's header.
const FragmentHeaderSize = 10

// CompressionNone marks a fragment payload as LZS-compressed; any other
// value marks it as stored raw.
const CompressionNone = 0

// FrameHeader is the fixed 24-byte video header preceding a frame's
// fragments.
type FrameHeader struct {
	Scale            byte
	Width, Height    uint16
	OriginX, OriginY uint16
	CompressedSize   uint16
	FragmentCount    uint16
}

// ParseFrameHeader parses a 24-byte RBT video frame header.
func ParseFrameHeader(buf []byte) (FrameHeader, error) {
	if len(buf) < FrameHeaderSize {
		return FrameHeader{}, errors.Wrapf(ErrInvalidData, "frame header too short: %d bytes", len(buf))
	}
	r := byteio.NewReader(buf)
	var h FrameHeader
	if _, err := r.Bytes(3); err != nil {
		return h, err
	}
	scale, err := r.U8()
	if err != nil {
		return h, err
	}
	h.Scale = scale
	if h.Width, err = r.U16(); err != nil {
		return h, err
	}
	if h.Height, err = r.U16(); err != nil {
		return h, err
	}
	if _, err := r.Bytes(4); err != nil { // offsets 8..12, unaccounted reserved bytes
		return h, err
	}
	if h.OriginX, err = r.U16(); err != nil {
		return h, err
	}
	if h.OriginY, err = r.U16(); err != nil {
		return h, err
	}
	if h.CompressedSize, err = r.U16(); err != nil {
		return h, err
	}
	if h.FragmentCount, err = r.U16(); err != nil {
		return h, err
	}
	return h, nil
}

// Bytes serializes h back into a 24-byte header.
func (h FrameHeader) Bytes() []byte {
	w := byteio.NewWriterSize(FrameHeaderSize)
	w.Pad(3)
	w.U8(h.Scale)
	w.U16(h.Width)
	w.U16(h.Height)
	w.Pad(4)
	w.U16(h.OriginX)
	w.U16(h.OriginY)
	w.U16(h.CompressedSize)
	w.U16(h.FragmentCount)
	w.Pad(FrameHeaderSize - w.Len()) // offsets 20..24, reserved
	return w.Out()
}

// Fragment is one LZS-coded (or raw) chunk of a frame's payload.
type Fragment struct {
	CompressedSize   uint32
	DecompressedSize uint32
	CompressionType  uint16
	Payload          []byte
}

// ParseFragmentHeader parses a fragment's 10-byte header.
func ParseFragmentHeader(buf []byte) (Fragment, error) {
	if len(buf) < FragmentHeaderSize {
		return Fragment{}, errors.Wrapf(ErrInvalidData, "fragment header too short: %d bytes", len(buf))
	}
	r := byteio.NewReader(buf)
	var f Fragment
	var err error
	if f.CompressedSize, err = r.U32(); err != nil {
		return f, err
	}
	if f.DecompressedSize, err = r.U32(); err != nil {
		return f, err
	}
	if f.CompressionType, err = r.U16(); err != nil {
		return f, err
	}
	return f, nil
}

// Bytes serializes the fragment header (not its payload).
func (f Fragment) Bytes() []byte {
	w := byteio.NewWriterSize(FragmentHeaderSize)
	w.U32(f.CompressedSize)
	w.U32(f.DecompressedSize)
	w.U16(f.CompressionType)
	return w.Out()
}

// Decode decompresses the fragment's payload, running the LZS decoder if
// CompressionType is CompressionNone, or returning the payload unchanged
// otherwise.
func (f Fragment) Decode() ([]byte, error) {
	if f.CompressionType != CompressionNone {
		return f.Payload, nil
	}
	return Decode(f.Payload, int(f.DecompressedSize))
}
