/*
NAME
  muxer.go

DESCRIPTION
  muxer.go implements the VMD container muxer: fixed header write, palette
  seek-back patching as the encoder's palette grows, and a growable
  block/frame table trailer (spec.md §4.6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import (
	"io"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/byteio"
	vcodec "github.com/ausocean/sierravid/codec/vmd"
)

// frameTableGrowth is a 100-entry growth stride for the frame table. Muxer
// does not use it: its frame table grows through append.
const frameTableGrowth = 100

// frameTableEntry is one frame's trailer bookkeeping: where its payload
// starts in the file and how large it is.
type frameTableEntry struct {
	offset uint32
	size   uint32
}

// Muxer writes a VMD file: the fixed header, a stream of frame payloads,
// and a trailer built from the bookkeeping accumulated along the way.
type Muxer struct {
	dst io.WriteSeeker
	log logging.Logger

	header Header
	pos    int64

	// paletteOffset is the running cursor into the header's palette
	// region (spec.md §4.6); paletteWritten is how many palette entries
	// (not bytes) have already been physically patched into it.
	paletteOffset  int64
	paletteWritten int

	hasAudio bool
	entries  []frameTableEntry
}

// NewMuxer writes the fixed VMD header to dst and returns a Muxer ready to
// accept frame packets. loadBufSize/decodeBufSize populate the header's
// buffer-size fields (offsets 796/800); decodeBufSize should match the LZ
// unpack buffer the paired decoder will use.
func NewMuxer(dst io.WriteSeeker, width, height int, hasAudio bool, audioSampleRate, audioFrameLength, audioBuffers uint16, loadBufSize, decodeBufSize uint32, log logging.Logger) (*Muxer, error) {
	// Close writes a video and an audio frame-table record for every frame,
	// so every block carries two records whether or not audio is present.
	const framesPerBlock = 2

	h := Header{
		Width:            uint16(width),
		Height:           uint16(height),
		Flags:            audioPresentFlag,
		FramesPerBlock:   framesPerBlock,
		DataOffset:       HeaderSize,
		LoadBufferSize:   loadBufSize,
		DecodeBufferSize: decodeBufSize,
		AudioSampleRate:  audioSampleRate,
		AudioFrameLength: audioFrameLength,
		AudioBuffers:     audioBuffers,
	}

	if _, err := dst.Write(h.Bytes()); err != nil {
		return nil, errors.Wrap(err, "writing VMD header")
	}

	m := &Muxer{
		dst:    dst,
		log:    log,
		header: h,
		pos:    HeaderSize,
		// The encoder's palette map starts with one reserved entry (black,
		// at index 0); the header's palette region is already zero-filled
		// for it at write time, so it never needs a seek-back patch. The
		// running cursor starts past it.
		paletteOffset:  PaletteOffset + 3,
		paletteWritten: 1,
		hasAudio:       hasAudio,
	}
	return m, nil
}

func (m *Muxer) debug(msg string, kv ...interface{}) {
	if m.log != nil {
		m.log.Debug(msg, kv...)
	}
}

// WriteFrame patches any new palette entries into the header, then appends
// pkt's encoded payload as the next frame, recording its offset and size
// for the trailer.
func (m *Muxer) WriteFrame(pkt vcodec.Packet) error {
	if pkt.NewPalette {
		m.paletteWritten = 0
		m.paletteOffset = PaletteOffset
	}
	if pkt.NewPaletteEntries > 0 {
		start := m.paletteWritten * 3
		n := int(pkt.NewPaletteEntries) * 3
		if start+n > len(pkt.Palette) {
			return errors.Wrap(ErrInvalidData, "new palette entries exceed palette size")
		}
		if _, err := m.dst.Seek(m.paletteOffset, io.SeekStart); err != nil {
			return errors.Wrap(err, "seeking to palette offset")
		}
		if _, err := m.dst.Write(pkt.Palette[start : start+n]); err != nil {
			return errors.Wrap(err, "patching palette")
		}
		m.paletteOffset += int64(n)
		m.paletteWritten += int(pkt.NewPaletteEntries)
		if _, err := m.dst.Seek(m.pos, io.SeekStart); err != nil {
			return errors.Wrap(err, "seeking back to stream position")
		}
	}

	n, err := m.dst.Write(pkt.Payload)
	if err != nil {
		return errors.Wrap(err, "writing frame payload")
	}

	m.entries = append(m.entries, frameTableEntry{offset: uint32(m.pos), size: uint32(n)})
	m.pos += int64(n)
	m.debug("wrote VMD frame", "offset", m.entries[len(m.entries)-1].offset, "size", n)
	return nil
}

// Close emits the block/frame table trailer, then patches the header's
// frame-count and ToC-offset fields by seeking back.
func (m *Muxer) Close() error {
	toCOffset := m.pos

	// Block table: one 6-byte record per frame (unknown LE16 + offset LE32).
	for _, e := range m.entries {
		w := byteio.NewWriterSize(6)
		w.U16(0)
		w.U32(e.offset)
		if _, err := m.dst.Write(w.Out()); err != nil {
			return errors.Wrap(err, "writing block table")
		}
	}

	// Frame table: one video record (type=2) plus one zeroed audio record
	// (type=1) per frame, written unconditionally regardless of whether
	// the container actually carries an audio track.
	for _, e := range m.entries {
		video := vcodec.FrameInfo{
			Type:       vcodec.FrameTypeVideo,
			Length:     e.size,
			RightEdge:  m.header.Width - 1,
			BottomEdge: m.header.Height - 1,
		}
		if _, err := m.dst.Write(video.Bytes()); err != nil {
			return errors.Wrap(err, "writing video frame-table record")
		}
		audio := vcodec.FrameInfo{Type: vcodec.FrameTypeAudio}
		if _, err := m.dst.Write(audio.Bytes()); err != nil {
			return errors.Wrap(err, "writing audio frame-table record")
		}
	}

	if _, err := m.dst.Seek(offsetFrameCount, io.SeekStart); err != nil {
		return errors.Wrap(err, "seeking to frame count field")
	}
	cw := byteio.NewWriterSize(2)
	cw.U16(uint16(len(m.entries)))
	if _, err := m.dst.Write(cw.Out()); err != nil {
		return errors.Wrap(err, "patching frame count")
	}

	if _, err := m.dst.Seek(offsetToCOffset, io.SeekStart); err != nil {
		return errors.Wrap(err, "seeking to ToC offset field")
	}
	tw := byteio.NewWriterSize(4)
	tw.U32(uint32(toCOffset))
	if _, err := m.dst.Write(tw.Out()); err != nil {
		return errors.Wrap(err, "patching ToC offset")
	}

	if c, ok := m.dst.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
