/*
NAME
  palette.go

DESCRIPTION
  palette.go parses and serializes the RBT palette chunk: a small preamble
  (first index, count, type) followed by 6-bit RGB triples starting at an
  offset that depends on the type byte (spec.md §3).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rbt

import "github.com/pkg/errors"

// Palette chunk preamble field offsets and data-start offsets, selected by
// Type (spec.md §3: "palette data begins at offset 37 or 38 within the
// chunk according to type"; exact offsets per the original tool's
// palette_chunk[25]/[29]/[32] reads).
const (
	paletteFirstIndexOffset = 25
	paletteCountOffset      = 29
	paletteTypeOffset       = 32

	paletteDataOffsetType0 = 38
	paletteDataOffsetOther = 37

	palettePreambleSize = 25
)

// PaletteChunk is the RBT file's initial palette, carried as a chunk
// alongside the fixed header. Reserved holds the chunk's leading bytes
// (offsets 0-24), whose layout isn't otherwise documented; it's preserved
// verbatim across parse/serialize rather than guessed at.
type PaletteChunk struct {
	Reserved   [palettePreambleSize]byte
	FirstIndex byte
	Count      uint16
	Type       byte
	Data       []byte // Count*3 bytes of 6-bit RGB triples
}

// dataOffset returns where p's RGB data starts within its serialized
// chunk, per its Type: type 0 selects offset 38, any other type offset 37.
func (p PaletteChunk) dataOffset() int {
	if p.Type == 0 {
		return paletteDataOffsetType0
	}
	return paletteDataOffsetOther
}

// ParsePaletteChunk parses a palette chunk of the given total size.
func ParsePaletteChunk(buf []byte) (PaletteChunk, error) {
	if len(buf) < paletteTypeOffset+1 {
		return PaletteChunk{}, errors.Wrap(ErrInvalidData, "palette chunk too short for preamble")
	}
	var p PaletteChunk
	copy(p.Reserved[:], buf[:palettePreambleSize])
	p.FirstIndex = buf[paletteFirstIndexOffset]
	p.Count = uint16(buf[paletteCountOffset]) | uint16(buf[paletteCountOffset+1])<<8
	p.Type = buf[paletteTypeOffset]

	off := p.dataOffset()
	need := off + int(p.Count)*3
	if len(buf) < need {
		return PaletteChunk{}, errors.Wrapf(ErrInvalidData, "palette chunk too short: have %d, need %d", len(buf), need)
	}
	p.Data = buf[off:need]
	return p, nil
}

// Bytes serializes p into a chunk of the given total size, zero-padding
// everything before and after the preamble/data.
func (p PaletteChunk) Bytes(chunkSize int) []byte {
	off := p.dataOffset()
	out := make([]byte, chunkSize)
	copy(out[:palettePreambleSize], p.Reserved[:])
	out[paletteFirstIndexOffset] = p.FirstIndex
	out[paletteCountOffset] = byte(p.Count)
	out[paletteCountOffset+1] = byte(p.Count >> 8)
	out[paletteTypeOffset] = p.Type
	copy(out[off:], p.Data)
	return out
}

// ScaledRGB returns p's i-th entry expanded from 6-bit to 8-bit channels,
// matching the VMD palette's scaling formula.
func (p PaletteChunk) ScaledRGB(i int) (r, g, b byte) {
	r6, g6, b6 := p.Data[i*3], p.Data[i*3+1], p.Data[i*3+2]
	scale := func(v byte) byte { return (v << 2) | (v >> 4) }
	return scale(r6), scale(g6), scale(b6)
}
