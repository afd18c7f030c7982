/*
NAME
  engine_rbt_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package overlay

import (
	"bytes"
	"testing"

	rcodec "github.com/ausocean/sierravid/codec/rbt"
	crbt "github.com/ausocean/sierravid/container/rbt"
)

// TestRunRBTComposites builds a small RBT file, runs the overlay engine
// with a sidecar supplying a known base plane and a rasterizer drawing an
// opaque black pixel at (0,0), and checks the rebuilt file's decoded
// frame reflects the composite.
func TestRunRBTComposites(t *testing.T) {
	const w, h = 4, 2

	enc := rcodec.NewEncoder(nil)
	px := bytes.Repeat([]byte{7}, w*h)
	frame := enc.EncodeFrame(px, w, h, 0, 0, 1)

	pal := crbt.PaletteChunk{FirstIndex: 0, Count: 4, Type: 0, Data: make([]byte, 4*3)}
	input := crbt.BuildFile(pal, nil, [][]byte{frame})

	base := bytes.Repeat([]byte{11}, w*h)
	sc, err := NewSidecar(bytes.NewReader(sidecarBytes(w, h, [][]byte{base})))
	if err != nil {
		t.Fatalf("NewSidecar: %v", err)
	}

	rast := fixedRasterizer{layers: []Layer{blackLayer(0, 0, 1, 1)}}

	eng := NewEngine(DefaultOptions(), nil)
	out, err := eng.RunRBT(input, sc, rast)
	if err != nil {
		t.Fatalf("RunRBT: %v", err)
	}

	f, err := crbt.ParseFile(out)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if f.Header.FrameCount != 1 {
		t.Fatalf("FrameCount = %d, want 1", f.Header.FrameCount)
	}

	dec := rcodec.NewDecoder(nil)
	vbuf, err := f.VideoFrame(0)
	if err != nil {
		t.Fatalf("VideoFrame: %v", err)
	}
	_, got, err := dec.DecodeFrame(vbuf)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}

	want := append([]byte(nil), base...)
	want[0] = 0 // composited black pixel at (0,0)
	if !bytes.Equal(got, want) {
		t.Errorf("decoded frame = %v, want %v", got, want)
	}
}
