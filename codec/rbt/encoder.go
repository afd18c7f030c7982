/*
NAME
  encoder.go

DESCRIPTION
  encoder.go assembles the LZS run-length encoder and frame/fragment header
  serialization into a single frame encode call (spec.md §4.5).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rbt

import "github.com/ausocean/utils/logging"

// Encoder encodes RBT video frames as a single LZS-compressed fragment.
type Encoder struct {
	log logging.Logger
}

// NewEncoder returns an Encoder that logs to log, which may be nil.
func NewEncoder(log logging.Logger) *Encoder {
	return &Encoder{log: log}
}

func (e *Encoder) debug(msg string, kv ...interface{}) {
	if e.log != nil {
		e.log.Debug(msg, kv...)
	}
}

// EncodeFrame LZS-compresses pixels (width*height bytes) into a single
// fragment and returns the full header+fragment+payload byte sequence
// described in spec.md §3.
func (e *Encoder) EncodeFrame(pixels []byte, width, height int, originX, originY uint16, scale byte) []byte {
	compressed := Encode(pixels)

	frag := Fragment{
		CompressedSize:   uint32(len(compressed)),
		DecompressedSize: uint32(len(pixels)),
		CompressionType:  CompressionNone,
	}
	hdr := FrameHeader{
		Scale:          scale,
		Width:          uint16(width),
		Height:         uint16(height),
		OriginX:        originX,
		OriginY:        originY,
		CompressedSize: uint16(len(compressed) + FragmentHeaderSize),
		FragmentCount:  1,
	}

	out := hdr.Bytes()
	out = append(out, frag.Bytes()...)
	out = append(out, compressed...)

	e.debug("encoded RBT frame", "width", width, "height", height, "compressed", len(compressed))
	return out
}
