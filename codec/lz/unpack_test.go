/*
NAME
  unpack_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package lz

import (
	"bytes"
	"testing"
)

// TestUnpackSentinelLiteralRun exercises the scenario from the end-to-end
// test vectors: a sentinel-flagged stream whose tag byte selects eight
// literal bytes one bit at a time.
func TestUnpackSentinelLiteralRun(t *testing.T) {
	src := []byte{
		0x08, 0x00, 0x00, 0x00, // dataleft = 8
		0x56, 0x78, 0x12, 0x34, // sentinel
		0xFF, // tag: all 8 bits literal
		'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H',
	}
	dst := make([]byte, 8)
	n, err := Unpack(src, dst)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
	if !bytes.Equal(dst, []byte("ABCDEFGH")) {
		t.Errorf("dst = %q, want %q", dst, "ABCDEFGH")
	}
}

// TestUnpackBackReference exercises a plain (non-sentinel) stream
// containing a dictionary back-reference into the space-filled window.
func TestUnpackBackReference(t *testing.T) {
	// tag 0x01: bit0=1 (literal 'Z'), bit1=0 (one back-reference), remaining
	// bits unused since dataleft reaches 0 first.
	// With qpos starting at 0xFEE and the queue pre-filled with 0x20, the
	// literal 'Z' is stored at 0xFEE, so a reference to chainofs=0xFEF,
	// chainlen=3 copies three space bytes.
	src := []byte{
		0x04, 0x00, 0x00, 0x00, // dataleft = 4 (1 literal + 3 back-ref bytes)
		0x01,
		'Z',
		0xEF, 0xF0, // chainofs = 0xEF | (0xF0&0xF0)<<4 = 0xFEF, chainlen = (0xF0&0x0F)+3 = 3
	}
	dst := make([]byte, 4)
	n, err := Unpack(src, dst)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	want := []byte{'Z', 0x20, 0x20, 0x20}
	if !bytes.Equal(dst, want) {
		t.Errorf("dst = %v, want %v", dst, want)
	}
}
