/*
NAME
  frame.go

DESCRIPTION
  frame.go parses the 16-byte VMD frame info record that prefixes every
  frame payload (spec.md §3, §6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import (
	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/byteio"
)

// InfoSize is the size in bytes of a VMD frame info record.
const InfoSize = 16

// FrameType values seen in byte 0 of a frame info record. The container
// (§4.6, §6) uses FrameTypeVideo/FrameTypeAudio for its own trailer
// records; video payloads parsed here always carry FrameTypeVideo.
const (
	FrameTypeAudio = 1
	FrameTypeVideo = 2
)

// NewPaletteFlag is bit 1 (0x02) of the video-flags byte (offset 15),
// indicating a new-palette payload prefix follows the info record.
const NewPaletteFlag = 0x02

// FrameInfo is the parsed 16-byte frame info record.
type FrameInfo struct {
	Type       byte
	Unknown0   byte
	Length     uint32
	LeftEdge   uint16
	TopEdge    uint16
	RightEdge  uint16
	BottomEdge uint16
	Unknown1   byte
	Flags      byte
}

// Width returns the decoded rectangle's width in pixels.
func (f FrameInfo) Width() int { return int(f.RightEdge) - int(f.LeftEdge) + 1 }

// Height returns the decoded rectangle's height in pixels.
func (f FrameInfo) Height() int { return int(f.BottomEdge) - int(f.TopEdge) + 1 }

// HasNewPalette reports whether the flags byte indicates a palette prefix.
func (f FrameInfo) HasNewPalette() bool { return f.Flags&NewPaletteFlag != 0 }

// Bytes serializes f back into a 16-byte info record.
func (f FrameInfo) Bytes() []byte {
	w := byteio.NewWriterSize(InfoSize)
	w.U8(f.Type)
	w.U8(f.Unknown0)
	w.U32(f.Length)
	w.U16(f.LeftEdge)
	w.U16(f.TopEdge)
	w.U16(f.RightEdge)
	w.U16(f.BottomEdge)
	w.U8(f.Unknown1)
	w.U8(f.Flags)
	return w.Out()
}

// ParseFrameInfo parses the 16-byte info record at the start of buf.
func ParseFrameInfo(buf []byte) (FrameInfo, error) {
	if len(buf) < InfoSize {
		return FrameInfo{}, errors.Wrapf(ErrInvalidData, "frame info record too short: %d bytes", len(buf))
	}
	r := byteio.NewReader(buf)
	var f FrameInfo
	var err error
	if f.Type, err = r.U8(); err != nil {
		return f, err
	}
	if f.Unknown0, err = r.U8(); err != nil {
		return f, err
	}
	length, err := r.U32()
	if err != nil {
		return f, err
	}
	f.Length = length
	if f.LeftEdge, err = r.U16(); err != nil {
		return f, err
	}
	if f.TopEdge, err = r.U16(); err != nil {
		return f, err
	}
	if f.RightEdge, err = r.U16(); err != nil {
		return f, err
	}
	if f.BottomEdge, err = r.U16(); err != nil {
		return f, err
	}
	if f.Unknown1, err = r.U8(); err != nil {
		return f, err
	}
	if f.Flags, err = r.U8(); err != nil {
		return f, err
	}
	return f, nil
}
