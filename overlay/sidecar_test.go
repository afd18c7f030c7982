/*
NAME
  sidecar_test.go

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
	"errors"
	"testing"
)

func TestSidecarHeaderFields(t *testing.T) {
	data := sidecarBytes(3, 2, [][]byte{bytes.Repeat([]byte{1}, 6), bytes.Repeat([]byte{2}, 6)})
	sc, err := NewSidecar(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewSidecar: %v", err)
	}
	if sc.FrameCount() != 2 {
		t.Errorf("FrameCount() = %d, want 2", sc.FrameCount())
	}
	if sc.Width() != 3 || sc.Height() != 2 {
		t.Errorf("Width/Height = %d/%d, want 3/2", sc.Width(), sc.Height())
	}
}

func TestSidecarNextFrameExhausted(t *testing.T) {
	data := sidecarBytes(2, 1, [][]byte{{1, 2}})
	sc, err := NewSidecar(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewSidecar: %v", err)
	}

	if _, err := sc.NextFrame(); err != nil {
		t.Fatalf("NextFrame 1: %v", err)
	}
	if _, err := sc.NextFrame(); !errors.Is(err, ErrSidecarExhausted) {
		t.Errorf("NextFrame 2 err = %v, want ErrSidecarExhausted", err)
	}
}

func TestNewSidecarShortHeader(t *testing.T) {
	_, err := NewSidecar(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Fatal("NewSidecar with truncated header: want error, got nil")
	}
}
