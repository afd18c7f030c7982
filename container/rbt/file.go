/*
NAME
  file.go

DESCRIPTION
  file.go assembles/parses a complete RBT file: header, unknown chunk,
  palette chunk, per-frame size tables, a reserved table, and sequential
  frame data padded to a 0x800-byte boundary (spec.md §3, §6).

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

// File is a fully parsed (or about-to-be-serialized) RBT file.
//
// VideoSizes[i]/FrameSizes[i] are the documented per-frame size table
// entries: FrameSizes[i] is the total byte length of frame i (audio plus
// video); VideoSizes[i] is how many of those bytes are video. Audio codec
// support is out of scope (spec.md §1 non-goals), so this package always
// treats a frame's video bytes as its trailing VideoSizes[i] bytes,
// matching §4.5's "read frame_size bytes (audio + video)" read order, and
// BuildFile only ever produces frames with no audio portion.
type File struct {
	Header       Header
	Unknown      []byte
	Palette      PaletteChunk
	VideoSizes   []uint16
	FrameSizes   []uint16
	UnknownTable [UnknownTableSize]byte
	Frames       [][]byte
}

// ParseFile parses a complete RBT file from buf.
func ParseFile(buf []byte) (*File, error) {
	hdr, err := ParseHeader(buf)
	if err != nil {
		return nil, errors.Wrap(err, "parsing header")
	}

	off := HeaderSize
	if off+int(hdr.UnknownChunkSize) > len(buf) {
		return nil, errors.Wrap(ErrInvalidData, "truncated unknown chunk")
	}
	unknown := buf[off : off+int(hdr.UnknownChunkSize)]
	off += int(hdr.UnknownChunkSize)

	if off+int(hdr.PaletteChunkSize) > len(buf) {
		return nil, errors.Wrap(ErrInvalidData, "truncated palette chunk")
	}
	pal, err := ParsePaletteChunk(buf[off : off+int(hdr.PaletteChunkSize)])
	if err != nil {
		return nil, errors.Wrap(err, "parsing palette chunk")
	}
	off += int(hdr.PaletteChunkSize)

	frameCount := int(hdr.FrameCount)
	if off+frameCount*4 > len(buf) {
		return nil, errors.Wrap(ErrInvalidData, "truncated frame size tables")
	}
	r := byteio.NewReader(buf[off:])
	videoSizes := make([]uint16, frameCount)
	for i := range videoSizes {
		if videoSizes[i], err = r.U16(); err != nil {
			return nil, errors.Wrapf(err, "reading video size table entry %d", i)
		}
	}
	frameSizes := make([]uint16, frameCount)
	for i := range frameSizes {
		if frameSizes[i], err = r.U16(); err != nil {
			return nil, errors.Wrapf(err, "reading frame size table entry %d", i)
		}
	}
	off += frameCount * 4

	if off+UnknownTableSize > len(buf) {
		return nil, errors.Wrap(ErrInvalidData, "truncated unknown table")
	}
	var unkTable [UnknownTableSize]byte
	copy(unkTable[:], buf[off:off+UnknownTableSize])
	off += UnknownTableSize

	if rem := off % BlockAlignment; rem != 0 {
		off += BlockAlignment - rem
	}

	frames := make([][]byte, frameCount)
	for i := range frames {
		sz := int(frameSizes[i])
		if off+sz > len(buf) {
			return nil, errors.Wrapf(ErrInvalidData, "truncated frame %d", i)
		}
		frames[i] = buf[off : off+sz]
		off += sz
	}

	return &File{
		Header:       hdr,
		Unknown:      unknown,
		Palette:      pal,
		VideoSizes:   videoSizes,
		FrameSizes:   frameSizes,
		UnknownTable: unkTable,
		Frames:       frames,
	}, nil
}

// VideoFrame returns frame i's video-only bytes: the 24-byte video header
// and its fragments, ready for codec/rbt.Decoder.
func (f *File) VideoFrame(i int) ([]byte, error) {
	if i < 0 || i >= len(f.Frames) {
		return nil, errors.Wrapf(ErrInvalidData, "frame index %d out of range", i)
	}
	frame := f.Frames[i]
	vs := int(f.VideoSizes[i])
	if vs > len(frame) {
		return nil, errors.Wrapf(ErrInvalidData, "frame %d video size %d exceeds frame size %d", i, vs, len(frame))
	}
	return frame[len(frame)-vs:], nil
}

// BuildFile serializes a complete RBT file from a palette chunk, an
// unknown chunk, and a list of already-encoded video frames (each frame's
// 24-byte header plus fragments, with no audio portion).
func BuildFile(pal PaletteChunk, unknown []byte, frames [][]byte) []byte {
	frameCount := len(frames)
	sizes := make([]uint16, frameCount)
	for i, f := range frames {
		sizes[i] = uint16(len(f))
	}

	paletteChunkSize := pal.dataOffset() + int(pal.Count)*3
	hdr := Header{
		FrameCount:       uint16(frameCount),
		PaletteChunkSize: uint16(paletteChunkSize),
		UnknownChunkSize: uint16(len(unknown)),
	}

	w := byteio.NewWriter()
	w.Bytes(hdr.Bytes())
	w.Bytes(unknown)
	w.Bytes(pal.Bytes(paletteChunkSize))
	for _, s := range sizes { // video size table: no audio, so equal to frame size
		w.U16(s)
	}
	for _, s := range sizes { // frame size table
		w.U16(s)
	}
	w.Pad(UnknownTableSize)

	out := w.Out()
	if rem := len(out) % BlockAlignment; rem != 0 {
		out = append(out, make([]byte, BlockAlignment-rem)...)
	}
	for _, f := range frames {
		out = append(out, f...)
	}
	return out
}
