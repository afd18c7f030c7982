/*
NAME
  rbt_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rbt

import (
	"bytes"
	"testing"

	vcodec "github.com/ausocean/sierravid/codec/rbt"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		Version:          1,
		AudioChunkSize:   0,
		FrameCount:       3,
		PaletteChunkSize: 37 + 768,
		UnknownChunkSize: 0,
	}
	got, err := ParseHeader(h.Bytes())
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got != h {
		t.Errorf("got %+v, want %+v", got, h)
	}
}

func TestPaletteChunkRoundTrip(t *testing.T) {
	for _, typ := range []byte{0, 1} {
		data := make([]byte, 4*3)
		for i := range data {
			data[i] = byte(i + 1)
		}
		p := PaletteChunk{FirstIndex: 0, Count: 4, Type: typ, Data: data}
		size := p.dataOffset() + len(data)

		got, err := ParsePaletteChunk(p.Bytes(size))
		if err != nil {
			t.Fatalf("type %d: ParsePaletteChunk: %v", typ, err)
		}
		if got.FirstIndex != p.FirstIndex || got.Count != p.Count || got.Type != p.Type {
			t.Fatalf("type %d: preamble mismatch: got %+v", typ, got)
		}
		if !bytes.Equal(got.Data, data) {
			t.Errorf("type %d: data = %v, want %v", typ, got.Data, data)
		}
	}
}

// TestBuildParseFileRoundTrip encodes two small frames with the RBT video
// codec, assembles a file, parses it back, and checks the decoded pixels.
func TestBuildParseFileRoundTrip(t *testing.T) {
	const w, h = 4, 2
	px1 := []byte{1, 1, 1, 1, 2, 2, 2, 2}
	px2 := []byte{3, 3, 3, 3, 3, 3, 3, 3}

	enc := vcodec.NewEncoder(nil)
	frame1 := enc.EncodeFrame(px1, w, h, 0, 0, 1)
	frame2 := enc.EncodeFrame(px2, w, h, 0, 0, 1)

	pal := PaletteChunk{FirstIndex: 0, Count: 4, Type: 0, Data: make([]byte, 4*3)}
	fileBytes := BuildFile(pal, nil, [][]byte{frame1, frame2})

	f, err := ParseFile(fileBytes)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if int(f.Header.FrameCount) != 2 {
		t.Fatalf("FrameCount = %d, want 2", f.Header.FrameCount)
	}

	dec := vcodec.NewDecoder(nil)
	for i, want := range [][]byte{px1, px2} {
		vbuf, err := f.VideoFrame(i)
		if err != nil {
			t.Fatalf("VideoFrame(%d): %v", i, err)
		}
		_, got, err := dec.DecodeFrame(vbuf)
		if err != nil {
			t.Fatalf("DecodeFrame(%d): %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d = %v, want %v", i, got, want)
		}
	}
}
