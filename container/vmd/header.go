/*
NAME
  header.go

DESCRIPTION
  header.go parses and serializes the fixed 0x330-byte VMD file header
  (spec.md §6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vmd implements the Sierra VMD container: a fixed-layout file
// header, a palette region patched by seek-back as the palette grows, and a
// block/frame table trailer (spec.md §4.6).
package vmd

import (
	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/byteio"
)

// HeaderSize is the size in bytes of the fixed VMD file header.
const HeaderSize = 0x330

// headerSizeField is the value stored in the header's own "header size"
// field (offset 0): the header minus its trailing two size bytes.
const headerSizeField = 0x32E

// PaletteOffset is the absolute file offset of the palette region.
const PaletteOffset = 28

// Fixed header field offsets referenced by seek-back patches.
const (
	offsetFrameCount = 6
	offsetToCOffset  = 812
)

// audioPresentFlag is the container's own flags-field value (header
// offset 16), written unconditionally regardless of whether the stream
// carries audio (spec.md §9 open question on header offset 16; the
// original muxer writes this value for every file, audio or not).
const audioPresentFlag = 0x4081

// ErrInvalidData is returned when a header or ToC record can't be parsed.
var ErrInvalidData = errors.New("container/vmd: invalid data")

// Header is the parsed fixed VMD file header.
type Header struct {
	Handle           uint16
	Unknown          uint16
	ToCBlockCount    uint16
	FrameTop         uint16
	FrameLeft        uint16
	Width            uint16
	Height           uint16
	Flags            uint16
	FramesPerBlock   uint16
	DataOffset       uint32
	Palette          [768]byte
	LoadBufferSize   uint32
	DecodeBufferSize uint32
	AudioSampleRate  uint16
	AudioFrameLength uint16
	AudioBuffers     uint16
	AudioFlags       uint16
	ToCOffset        uint32
}

// Bytes serializes h into a HeaderSize-byte buffer.
func (h Header) Bytes() []byte {
	w := byteio.NewWriterSize(HeaderSize)
	w.U16(headerSizeField)
	w.U16(h.Handle)
	w.U16(h.Unknown)
	w.U16(h.ToCBlockCount)
	w.U16(h.FrameTop)
	w.U16(h.FrameLeft)
	w.U16(h.Width)
	w.U16(h.Height)
	w.U16(h.Flags)
	w.U16(h.FramesPerBlock)
	w.U32(h.DataOffset)
	w.Pad(PaletteOffset - w.Len())
	w.Bytes(h.Palette[:])
	w.Pad(796 - w.Len())
	w.U32(h.LoadBufferSize)
	w.U32(h.DecodeBufferSize)
	w.U16(h.AudioSampleRate)
	w.U16(h.AudioFrameLength)
	w.U16(h.AudioBuffers)
	w.U16(h.AudioFlags)
	w.U32(h.ToCOffset)
	out := w.Out()
	if len(out) != HeaderSize {
		panic("container/vmd: header serialization length mismatch")
	}
	return out
}

// ParseHeader parses a HeaderSize-byte VMD file header.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errors.Wrapf(ErrInvalidData, "header too short: %d bytes", len(buf))
	}
	r := byteio.NewReader(buf)
	var h Header
	var err error
	if _, err = r.U16(); err != nil { // header size field, not retained
		return h, err
	}
	if h.Handle, err = r.U16(); err != nil {
		return h, err
	}
	if h.Unknown, err = r.U16(); err != nil {
		return h, err
	}
	if h.ToCBlockCount, err = r.U16(); err != nil {
		return h, err
	}
	if h.FrameTop, err = r.U16(); err != nil {
		return h, err
	}
	if h.FrameLeft, err = r.U16(); err != nil {
		return h, err
	}
	if h.Width, err = r.U16(); err != nil {
		return h, err
	}
	if h.Height, err = r.U16(); err != nil {
		return h, err
	}
	if h.Flags, err = r.U16(); err != nil {
		return h, err
	}
	if h.FramesPerBlock, err = r.U16(); err != nil {
		return h, err
	}
	if h.DataOffset, err = r.U32(); err != nil {
		return h, err
	}
	r.Seek(PaletteOffset)
	pal, err := r.Bytes(768)
	if err != nil {
		return h, err
	}
	copy(h.Palette[:], pal)
	r.Seek(796)
	if h.LoadBufferSize, err = r.U32(); err != nil {
		return h, err
	}
	if h.DecodeBufferSize, err = r.U32(); err != nil {
		return h, err
	}
	if h.AudioSampleRate, err = r.U16(); err != nil {
		return h, err
	}
	if h.AudioFrameLength, err = r.U16(); err != nil {
		return h, err
	}
	if h.AudioBuffers, err = r.U16(); err != nil {
		return h, err
	}
	if h.AudioFlags, err = r.U16(); err != nil {
		return h, err
	}
	if h.ToCOffset, err = r.U32(); err != nil {
		return h, err
	}
	return h, nil
}
