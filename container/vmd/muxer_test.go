/*
NAME
  muxer_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import (
	"bytes"
	"io"
	"testing"

	vcodec "github.com/ausocean/sierravid/codec/vmd"
)

// memSeeker is a minimal in-memory io.ReadWriteSeeker used to exercise the
// muxer's seek-back patching without touching the filesystem.
type memSeeker struct {
	buf []byte
	pos int64
}

func (m *memSeeker) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		nb := make([]byte, end)
		copy(nb, m.buf)
		m.buf = nb
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memSeeker) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.buf)) + offset
	}
	return m.pos, nil
}

// TestMuxDemuxRoundTrip exercises the scenario from spec.md §8: a 2-frame
// 4x4 stream encoded, written, and read back, checking pixel planes and
// palette entry count.
func TestMuxDemuxRoundTrip(t *testing.T) {
	const w, h = 4, 4
	frame1 := bytes.Repeat([]byte{0, 0, 255}, w*h)   // all red
	frame2 := append(bytes.Repeat([]byte{0, 0, 255}, w*h/2), bytes.Repeat([]byte{0, 255, 0}, w*h/2)...)

	enc := vcodec.NewEncoder(w, h, nil)
	pkt1, err := enc.Write(frame1)
	if err != nil {
		t.Fatalf("Write frame1: %v", err)
	}
	pkt2, err := enc.Write(frame2)
	if err != nil {
		t.Fatalf("Write frame2: %v", err)
	}

	mem := &memSeeker{}
	mux, err := NewMuxer(mem, w, h, false, 0, 0, 0, 0, 4096, nil)
	if err != nil {
		t.Fatalf("NewMuxer: %v", err)
	}
	if err := mux.WriteFrame(pkt1); err != nil {
		t.Fatalf("WriteFrame 1: %v", err)
	}
	if err := mux.WriteFrame(pkt2); err != nil {
		t.Fatalf("WriteFrame 2: %v", err)
	}
	if err := mux.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	mem.pos = 0
	dem, err := NewDemuxer(mem)
	if err != nil {
		t.Fatalf("NewDemuxer: %v", err)
	}
	if dem.FrameCount() != 2 {
		t.Fatalf("FrameCount() = %d, want 2", dem.FrameCount())
	}

	dec := vcodec.NewDecoder(w, h, 0, nil)
	wantPlanes := [][]byte{}
	{
		// Re-derive expected quantized planes the same way the encoder did,
		// by decoding the payload the encoder itself produced (method 2
		// carries the quantized indices verbatim after the method byte).
		wantPlanes = append(wantPlanes, pkt1.Payload[1:], pkt2.Payload[1:])
	}

	for i := 0; i < 2; i++ {
		info, payload, err := dem.ReadFrame(i)
		if err != nil {
			t.Fatalf("ReadFrame(%d): %v", i, err)
		}
		if info.Width() != w || info.Height() != h {
			t.Fatalf("frame %d rect = %dx%d, want %dx%d", i, info.Width(), info.Height(), w, h)
		}
		plane, err := dec.DecodeFrame(info, payload)
		if err != nil {
			t.Fatalf("DecodeFrame(%d): %v", i, err)
		}
		if !bytes.Equal(plane.Data, wantPlanes[i]) {
			t.Errorf("frame %d plane = %v, want %v", i, plane.Data, wantPlanes[i])
		}
	}

	// Palette entries written into the header must match the encoder's
	// final distinct-color count: the reserved black entry plus red and
	// green.
	h2, err := ParseHeader(mem.buf[:HeaderSize])
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	gotEntries := enc.PaletteEntries()
	if gotEntries != 3 {
		t.Fatalf("encoder PaletteEntries() = %d, want 3", gotEntries)
	}
	wantPalBytes := pkt2.Palette[:gotEntries*3]
	if !bytes.Equal(h2.Palette[:gotEntries*3], wantPalBytes) {
		t.Errorf("header palette = %v, want %v", h2.Palette[:gotEntries*3], wantPalBytes)
	}
}
