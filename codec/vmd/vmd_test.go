/*
NAME
  vmd_test.go

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
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDecodeMethod2 exercises the method-2 (raw) scenario from spec.md §8:
// width=2, height=2, payload {0x00,0x01,0x02,0x03} -> plane {0,1,2,3}.
func TestDecodeMethod2(t *testing.T) {
	d := NewDecoder(2, 2, 0, nil)
	info := FrameInfo{Type: FrameTypeVideo, RightEdge: 1, BottomEdge: 1}
	payload := []byte{MethodRaw, 0x00, 0x01, 0x02, 0x03}

	plane, err := d.DecodeFrame(info, payload)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	want := []byte{0, 1, 2, 3}
	if !bytes.Equal(plane.Data, want) {
		t.Errorf("plane = %v, want %v", plane.Data, want)
	}
}

// TestDecodeMethod1InterframeCopy exercises the scenario from spec.md §8:
// previous plane {9,9,9,9} (1x4), stream byte 0x03 (copy 4 from prev) ->
// current plane {9,9,9,9}.
func TestDecodeMethod1InterframeCopy(t *testing.T) {
	d := NewDecoder(4, 1, 0, nil)
	d.prev = PlaneView{Data: []byte{9, 9, 9, 9}, Width: 4, Height: 1, Stride: 4}
	d.haveFrame = true

	info := FrameInfo{Type: FrameTypeVideo, RightEdge: 3, BottomEdge: 0}
	payload := []byte{MethodInterframeRLE, 0x03}

	plane, err := d.DecodeFrame(info, payload)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	want := []byte{9, 9, 9, 9}
	if !bytes.Equal(plane.Data, want) {
		t.Errorf("plane = %v, want %v", plane.Data, want)
	}
}

// TestDecodeMethod1LiteralRunFillsRow checks that a literal run sized to
// exactly fill the remainder of the row is accepted rather than rejected
// as exceeding row width (codec/vmd/decoder.go's bound checks must
// compare against the run's true byte count, not count-1).
func TestDecodeMethod1LiteralRunFillsRow(t *testing.T) {
	d := NewDecoder(4, 1, 0, nil)
	d.prev = PlaneView{Data: []byte{0, 0, 0, 0}, Width: 4, Height: 1, Stride: 4}
	d.haveFrame = true

	info := FrameInfo{Type: FrameTypeVideo, RightEdge: 3, BottomEdge: 0}
	// Literal branch, bit7 set, low7=3 -> run of 4, exactly the row width.
	payload := []byte{MethodInterframeRLE, 0x80 | 0x03, 0xAA, 0xBB, 0xCC, 0xDD}

	plane, err := d.DecodeFrame(info, payload)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	if !bytes.Equal(plane.Data, want) {
		t.Errorf("plane = %v, want %v", plane.Data, want)
	}
}

// TestDecodeMethod1LiteralRunOverflowsRow checks that a literal run one
// byte longer than the row rejects with ErrInvalidData rather than being
// allowed to spill past the row.
func TestDecodeMethod1LiteralRunOverflowsRow(t *testing.T) {
	d := NewDecoder(4, 1, 0, nil)
	d.prev = PlaneView{Data: []byte{0, 0, 0, 0}, Width: 4, Height: 1, Stride: 4}
	d.haveFrame = true

	info := FrameInfo{Type: FrameTypeVideo, RightEdge: 3, BottomEdge: 0}
	// Literal branch, low7=4 -> run of 5, one past the row width of 4.
	payload := []byte{MethodInterframeRLE, 0x80 | 0x04, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE}

	if _, err := d.DecodeFrame(info, payload); err == nil {
		t.Fatal("DecodeFrame: expected error for literal run exceeding row width, got nil")
	}
}

// TestDecodeMethod1CopyRunOverflowsRow checks the same for the interframe
// copy branch.
func TestDecodeMethod1CopyRunOverflowsRow(t *testing.T) {
	d := NewDecoder(4, 1, 0, nil)
	d.prev = PlaneView{Data: []byte{9, 9, 9, 9}, Width: 4, Height: 1, Stride: 4}
	d.haveFrame = true

	info := FrameInfo{Type: FrameTypeVideo, RightEdge: 3, BottomEdge: 0}
	// Copy branch, byte value 4 -> run of 5, one past the row width of 4.
	payload := []byte{MethodInterframeRLE, 0x04}

	if _, err := d.DecodeFrame(info, payload); err == nil {
		t.Fatal("DecodeFrame: expected error for copy run exceeding row width, got nil")
	}
}

// TestPaletteScaling checks 6-bit to 8-bit palette scaling: 6-bit input
// (0x3F,0x20,0x00) expands to 8-bit (0xFF,0x82,0x00) with alpha 0xFF, since
// (0x20<<2)|(0x20>>4) = 0x80|0x02.
func TestPaletteScaling(t *testing.T) {
	b := make([]byte, PaletteSize*3)
	b[0], b[1], b[2] = 0x3F, 0x20, 0x00

	pal, err := DecodePalette(b)
	if err != nil {
		t.Fatalf("DecodePalette: %v", err)
	}
	want := RGBA{0xFF, 0x82, 0x00, 0xFF}
	if pal[0] != want {
		t.Errorf("pal[0] = %+v, want %+v", pal[0], want)
	}
}

// TestPaletteMapOverflowResets verifies that a full 256-entry palette map
// reports overflow instead of growing further, and that Reset returns it to
// just the reserved black entry.
func TestPaletteMapOverflowResets(t *testing.T) {
	pm := NewPaletteMap()
	for i := 1; i < PaletteSize; i++ {
		if _, _, ok := pm.Index(byte(i), 0, 0); !ok {
			t.Fatalf("unexpected overflow at entry %d", i)
		}
	}
	if pm.Len() != PaletteSize {
		t.Fatalf("Len() = %d, want %d", pm.Len(), PaletteSize)
	}
	if _, _, ok := pm.Index(0, 1, 0); ok {
		t.Fatalf("expected overflow signal at entry %d", PaletteSize)
	}
	pm.Reset()
	if pm.Len() != 1 {
		t.Fatalf("Len() after reset = %d, want 1", pm.Len())
	}
}

// TestEncoderRawRoundTrip checks that encoding then decoding a raw-method
// frame reproduces the quantized input (spec.md §8: Decode(Encode(x)) ≈ x
// for method 2).
func TestEncoderRawRoundTrip(t *testing.T) {
	const w, h = 2, 2
	bgr := []byte{
		0, 0, 255, // pixel 0: pure red in BGR order
		0, 255, 0, // pixel 1: pure green
		255, 0, 0, // pixel 2: pure blue
		0, 0, 255, // pixel 3: pure red again, reuses index
	}
	enc := NewEncoder(w, h, nil)
	pkt, err := enc.Write(bgr)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if pkt.Payload[0] != MethodRaw {
		t.Fatalf("method byte = %#x, want MethodRaw", pkt.Payload[0])
	}
	if pkt.Payload[1] != pkt.Payload[4] {
		t.Errorf("pixel 0 and pixel 3 should share a palette index (same color)")
	}

	dec := NewDecoder(w, h, 0, nil)
	info := FrameInfo{Type: FrameTypeVideo, RightEdge: w - 1, BottomEdge: h - 1, Flags: 0}
	plane, err := dec.DecodeFrame(info, pkt.Payload)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if diff := cmp.Diff(pkt.Payload[1:], plane.Data); diff != "" {
		t.Errorf("decoded plane mismatch (-encoded +decoded):\n%s", diff)
	}
}

// TestEncodeDecodeInterframeRLE round-trips the method-1 compressor against
// the decoder.
func TestEncodeDecodeInterframeRLE(t *testing.T) {
	prev := PlaneView{Data: []byte{1, 1, 1, 2, 2, 3, 3, 3}, Width: 8, Height: 1, Stride: 8}
	cur := PlaneView{Data: []byte{1, 1, 1, 9, 9, 3, 3, 3}, Width: 8, Height: 1, Stride: 8}

	enc := EncodeInterframeRLE(cur, prev)

	d := NewDecoder(8, 1, 0, nil)
	d.prev = prev
	d.haveFrame = true
	info := FrameInfo{Type: FrameTypeVideo, RightEdge: 7, BottomEdge: 0}
	payload := append([]byte{MethodInterframeRLE}, enc...)

	plane, err := d.DecodeFrame(info, payload)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if !bytes.Equal(plane.Data, cur.Data) {
		t.Errorf("round-tripped plane = %v, want %v", plane.Data, cur.Data)
	}
}

// TestInnerRLEDecode exercises the inner RLE sub-coder used by method 3:
// output length must equal the requested destination length (spec.md §8).
func TestInnerRLEDecode(t *testing.T) {
	// Control byte 0x81 (bit7 set, low7=1) copies 2 raw bytes.
	src := []byte{0x81, 0xAA, 0xBB}
	dst := make([]byte, 2)
	n, err := innerRLEDecode(src, dst)
	if err != nil {
		t.Fatalf("innerRLEDecode: %v", err)
	}
	if n != 3 {
		t.Fatalf("consumed = %d, want 3", n)
	}
	if !bytes.Equal(dst, []byte{0xAA, 0xBB}) {
		t.Errorf("dst = %v, want [0xAA 0xBB]", dst)
	}

	// Control byte 0x02 (bit7 clear, value=2) repeats a 2-byte run twice:
	// 4 output bytes.
	src2 := []byte{0x02, 0x11, 0x22}
	dst2 := make([]byte, 4)
	if _, err := innerRLEDecode(src2, dst2); err != nil {
		t.Fatalf("innerRLEDecode: %v", err)
	}
	want2 := []byte{0x11, 0x22, 0x11, 0x22}
	if !bytes.Equal(dst2, want2) {
		t.Errorf("dst2 = %v, want %v", dst2, want2)
	}
}
