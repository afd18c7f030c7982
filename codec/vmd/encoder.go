/*
NAME
  encoder.go

DESCRIPTION
  encoder.go implements the VMD video frame encoder: an incrementally-built
  palette, a raw-method (2) frame payload, and the interframe diff buffer
  spec.md §4.4 describes (consumed by the overlay tool's method-1
  compressor, see method1.go).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Encoder builds VMD video packets from successive 24-bit BGR frames,
// modelled on codec/adpcm.Encoder's owned-estimation-state-across-calls
// shape: every call to Write depends on the previous call's palette map and
// previous-frame plane.
type Encoder struct {
	width, height int

	cur, prev PlaneView
	diff      PlaneView

	pm *PaletteMap

	firstFrame bool

	log logging.Logger
}

// NewEncoder allocates an Encoder for width x height 24-bit BGR input
// frames.
func NewEncoder(width, height int, log logging.Logger) *Encoder {
	return &Encoder{
		width:      width,
		height:     height,
		cur:        NewPlane(width, height),
		prev:       NewPlane(width, height),
		diff:       NewPlane(width, height),
		pm:         NewPaletteMap(),
		firstFrame: true,
		log:        log,
	}
}

func (e *Encoder) debug(msg string, kv ...interface{}) {
	if e.log != nil {
		e.log.Debug(msg, kv...)
	}
}

// Close releases the encoder's owned buffers.
func (e *Encoder) Close() error {
	e.cur, e.prev, e.diff = PlaneView{}, PlaneView{}, PlaneView{}
	return nil
}

// Diff returns the interframe diff plane computed by the most recent Write
// call: diff[i] = cur[i] where cur[i] != prev[i], else 0.
func (e *Encoder) Diff() PlaneView { return e.diff }

// Current returns the most recently quantized current-frame plane.
func (e *Encoder) Current() PlaneView { return e.cur }

// Previous returns the plane from before the most recent Write call.
func (e *Encoder) Previous() PlaneView { return e.prev }

// PaletteEntries returns the number of distinct colors in the palette map.
func (e *Encoder) PaletteEntries() int { return e.pm.Len() }

// Write quantizes one 24-bit BGR frame (len(bgr) == width*height*3),
// assigns/reuses palette indices, and returns a Packet ready for the
// container muxer. The returned Packet's Payload always uses method 2
// (raw); compressed interframe payloads are the overlay tool's concern
// (see EncodeInterframeRLE).
func (e *Encoder) Write(bgr []byte) (Packet, error) {
	if len(bgr) != e.width*e.height*3 {
		return Packet{}, errors.Wrapf(ErrUnsupportedPixelFormat, "got %d bytes, want %d", len(bgr), e.width*e.height*3)
	}

	// Swap current into previous before reprocessing this frame.
	e.prev, e.cur = e.cur, e.prev

	priorCount := e.pm.Len()
	reset, err := e.quantize(bgr)
	if err != nil {
		return Packet{}, err
	}

	for i := range e.diff.Data {
		if e.cur.Data[i] != e.prev.Data[i] {
			e.diff.Data[i] = e.cur.Data[i]
		} else {
			e.diff.Data[i] = 0
		}
	}

	var newEntries int
	if reset {
		newEntries = e.pm.Len()
	} else {
		newEntries = e.pm.Len() - priorCount
	}

	pkt := Packet{
		NewPalette:        reset,
		NewPaletteEntries: byte(newEntries),
		Payload:           append([]byte{MethodRaw}, e.cur.Data...),
	}
	copy(pkt.Palette[:], e.pm.Serialize())

	if e.firstFrame {
		e.firstFrame = false
		e.debug("emitted keyframe", "palette entries", e.pm.Len())
	}
	return pkt, nil
}

// quantize scales bgr down to the palette map's 6-bit-per-channel keys and
// fills e.cur with assigned indices, resetting and retrying once if the
// palette map would grow past PaletteSize (spec.md §4.4 step 2, §7).
func (e *Encoder) quantize(bgr []byte) (reset bool, err error) {
	for attempt := 0; attempt < 2; attempt++ {
		overflowed := false
		for i := 0; i < e.width*e.height; i++ {
			b, g, r := bgr[i*3], bgr[i*3+1], bgr[i*3+2]
			idx, _, ok := e.pm.Index(r>>2, g>>2, b>>2)
			if !ok {
				overflowed = true
				break
			}
			e.cur.Data[i] = idx
		}
		if !overflowed {
			return attempt == 1, nil
		}
		e.pm.Reset()
		reset = true
	}
	return false, errors.Wrap(ErrPaletteOverflow, "palette overflowed twice in a single frame")
}
