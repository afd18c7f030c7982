/*
NAME
  header.go

DESCRIPTION
  header.go parses and serializes the fixed 60-byte RBT file header
  (spec.md §3, §6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rbt implements the Sierra RBT (Robot) container: a fixed header,
// an unknown chunk, a palette chunk, per-frame size tables, a reserved
// table, and sequential frame data padded to a 0x800-byte boundary
// (spec.md §3, §6).
package rbt

import (
	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/byteio"
)

// HeaderSize is the size in bytes of the fixed RBT file header.
const HeaderSize = 60

// BlockAlignment is the boundary frame data is padded to before it starts.
const BlockAlignment = 0x800

// UnknownTableSize is the size in bytes of the fixed reserved table that
// follows the per-frame size tables.
const UnknownTableSize = 1536

// ErrInvalidData is returned when a header, chunk, or table can't be
// parsed.
var ErrInvalidData = errors.New("container/rbt: invalid data")

// Header is the parsed fixed RBT file header.
type Header struct {
	Version          uint16
	AudioChunkSize   uint32
	FrameCount       uint16
	PaletteChunkSize uint16
	UnknownChunkSize uint16
}

// Bytes serializes h into a HeaderSize-byte buffer.
func (h Header) Bytes() []byte {
	w := byteio.NewWriterSize(HeaderSize)
	w.Pad(6)
	w.U16(h.Version)
	w.U32(h.AudioChunkSize)
	w.Pad(14 - w.Len())
	w.U16(h.FrameCount)
	w.U16(h.PaletteChunkSize)
	w.U16(h.UnknownChunkSize)
	w.Pad(HeaderSize - w.Len())
	return w.Out()
}

// ParseHeader parses a HeaderSize-byte RBT file header.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errors.Wrapf(ErrInvalidData, "header too short: %d bytes", len(buf))
	}
	r := byteio.NewReader(buf)
	var h Header
	var err error
	r.Seek(6)
	if h.Version, err = r.U16(); err != nil {
		return h, err
	}
	if h.AudioChunkSize, err = r.U32(); err != nil {
		return h, err
	}
	r.Seek(14)
	if h.FrameCount, err = r.U16(); err != nil {
		return h, err
	}
	if h.PaletteChunkSize, err = r.U16(); err != nil {
		return h, err
	}
	if h.UnknownChunkSize, err = r.U16(); err != nil {
		return h, err
	}
	return h, nil
}
