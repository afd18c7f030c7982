/*
NAME
  packet.go

DESCRIPTION
  packet.go defines the side-data packet prefix that travels between the
  VMD video encoder and the container muxer (spec.md §6), and its wire
  serialization.

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

// SideDataSize is the size in bytes of the fixed side-data prefix: four
// LE16 coordinates, two flag/count bytes, and a 768-byte palette.
const SideDataSize = 4*2 + 1 + 1 + PaletteSize*3

// Packet is one encoded VMD video frame plus the side-data the container
// muxer needs to patch the header palette and populate the frame table.
type Packet struct {
	Left, Top, Right, Bottom uint16
	NewPalette               bool
	NewPaletteEntries        byte
	Palette                  [PaletteSize * 3]byte // full palette, 6-bit RGB, index order
	Payload                  []byte // method byte + encoded plane bytes
}

// Bytes serializes the side-data prefix followed by Payload, the wire shape
// described in spec.md §6.
func (p Packet) Bytes() []byte {
	w := byteio.NewWriterSize(SideDataSize + len(p.Payload))
	w.U16(p.Left)
	w.U16(p.Top)
	w.U16(p.Right)
	w.U16(p.Bottom)
	if p.NewPalette {
		w.U8(1)
	} else {
		w.U8(0)
	}
	w.U8(p.NewPaletteEntries)
	w.Bytes(p.Palette[:])
	w.Bytes(p.Payload)
	return w.Out()
}

// ParsePacket splits a serialized packet back into its side-data fields and
// payload.
func ParsePacket(b []byte) (Packet, error) {
	if len(b) < SideDataSize {
		return Packet{}, errors.Wrapf(ErrInvalidData, "packet too short for side-data prefix: %d bytes", len(b))
	}
	r := byteio.NewReader(b)
	var p Packet
	var err error
	if p.Left, err = r.U16(); err != nil {
		return p, err
	}
	if p.Top, err = r.U16(); err != nil {
		return p, err
	}
	if p.Right, err = r.U16(); err != nil {
		return p, err
	}
	if p.Bottom, err = r.U16(); err != nil {
		return p, err
	}
	flag, err := r.U8()
	if err != nil {
		return p, err
	}
	p.NewPalette = flag != 0
	if p.NewPaletteEntries, err = r.U8(); err != nil {
		return p, err
	}
	pal, err := r.Bytes(PaletteSize * 3)
	if err != nil {
		return p, err
	}
	copy(p.Palette[:], pal)
	rest, err := r.Bytes(r.Remaining())
	if err != nil {
		return p, err
	}
	p.Payload = rest
	return p, nil
}
