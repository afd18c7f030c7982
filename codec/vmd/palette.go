/*
NAME
  palette.go

DESCRIPTION
  palette.go implements the VMD 256-entry RGB palette: 6-bit-to-8-bit
  channel scaling for decode, and an insertion-ordered 24-bit-key-to-index
  map for incremental palette construction during encode (spec.md's design
  note on replacing a global single-entry palette tree with an
  insertion-ordered map).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import "github.com/pkg/errors"

// PaletteSize is the fixed number of entries in a VMD palette.
const PaletteSize = 256

// RGBA is a 24-bit color with a fixed 0xFF alpha, as carried on the wire.
type RGBA struct {
	R, G, B, A byte
}

// Palette is the 256-entry decode-side color table.
type Palette [PaletteSize]RGBA

// Scale6To8 expands a 6-bit (0-63) channel value to 8 bits, per spec.md's
// §3 formula: v' = (v<<2) | (v>>4).
func Scale6To8(v byte) byte {
	return (v << 2) | (v >> 4)
}

// DecodePalette reads PaletteSize*3 bytes of 6-bit RGB triples from b and
// returns the scaled 8-bit palette.
func DecodePalette(b []byte) (Palette, error) {
	var p Palette
	if len(b) < PaletteSize*3 {
		return p, errors.Errorf("vmd: palette data too short: %d bytes", len(b))
	}
	for i := 0; i < PaletteSize; i++ {
		r, g, bl := b[i*3], b[i*3+1], b[i*3+2]
		p[i] = RGBA{Scale6To8(r), Scale6To8(g), Scale6To8(bl), 0xFF}
	}
	return p, nil
}

// ErrPaletteOverflow is returned when the encoder's palette map grows past
// PaletteSize distinct colors within a single frame, even after a reset.
var ErrPaletteOverflow = errors.New("vmd: palette has more than 256 distinct colors in a single frame")

// paletteEntry is one insertion-ordered entry of a PaletteMap.
type paletteEntry struct {
	key   uint32 // 6-bit-per-channel (r<<16)|(g<<8)|b
	index byte
}

// PaletteMap is an insertion-ordered map from a quantized 18-bit color key
// to its assigned palette index, used by the encoder to build up the
// palette incrementally as frames stream in. A hash map suffices here since
// output ordering follows insertion order, not key order (spec.md §9).
type PaletteMap struct {
	byKey   map[uint32]byte
	ordered []paletteEntry
}

// NewPaletteMap returns a PaletteMap with its single reserved entry: black
// (0,0,0) at index 0, per spec.md §4.4.
func NewPaletteMap() *PaletteMap {
	m := &PaletteMap{byKey: make(map[uint32]byte, PaletteSize)}
	m.insert(0)
	return m
}

// Reset clears the map back to just the reserved black entry.
func (m *PaletteMap) Reset() {
	m.byKey = make(map[uint32]byte, PaletteSize)
	m.ordered = m.ordered[:0]
	m.insert(0)
}

// Len returns the number of distinct colors currently held.
func (m *PaletteMap) Len() int { return len(m.ordered) }

func (m *PaletteMap) insert(key uint32) byte {
	idx := byte(len(m.ordered))
	m.byKey[key] = idx
	m.ordered = append(m.ordered, paletteEntry{key: key, index: idx})
	return idx
}

// Index returns the palette index for r,g,b (each already scaled to 6
// bits), inserting a new entry if the color hasn't been seen, and reports
// whether a new entry was created. If the map would grow past PaletteSize,
// ok is false and the caller must Reset and retry.
func (m *PaletteMap) Index(r, g, b byte) (idx byte, created bool, ok bool) {
	key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if i, found := m.byKey[key]; found {
		return i, false, true
	}
	if len(m.ordered) >= PaletteSize {
		return 0, false, false
	}
	return m.insert(key), true, true
}

// Serialize writes the map's entries in index order as PaletteSize*3 bytes
// of 6-bit RGB, the wire format spec.md §4.4 and §4.6 require. Unassigned
// trailing entries are zero.
func (m *PaletteMap) Serialize() []byte {
	out := make([]byte, PaletteSize*3)
	for _, e := range m.ordered {
		r := byte(e.key >> 16 & 0x3F)
		g := byte(e.key >> 8 & 0x3F)
		b := byte(e.key & 0x3F)
		out[int(e.index)*3] = r
		out[int(e.index)*3+1] = g
		out[int(e.index)*3+2] = b
	}
	return out
}
