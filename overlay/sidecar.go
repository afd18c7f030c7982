/*
NAME
  sidecar.go

DESCRIPTION
  sidecar.go reads the pre-computed raw-frame sidecar file that accompanies
  an overlay run: a 6-byte header (frame count, width, height, all LE16)
  followed by frame_count * width * height bytes, one already-decoded
  palette-index byte per pixel per frame (spec.md §6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package overlay

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/byteio"
)

// sidecarHeaderSize is the size in bytes of the sidecar's fixed header.
const sidecarHeaderSize = 6

// Sidecar reads successive raw decoded frames from a pre-computed sidecar
// file, one per video block the overlay engine processes.
type Sidecar struct {
	src           io.Reader
	frameCount    int
	width, height int
	read          int
}

// NewSidecar parses src's 6-byte header and returns a Sidecar ready to
// serve FrameCount() frames via NextFrame.
func NewSidecar(src io.Reader) (*Sidecar, error) {
	buf := make([]byte, sidecarHeaderSize)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, errors.Wrap(err, "reading sidecar header")
	}
	r := byteio.NewReader(buf)
	frameCount, err := r.U16()
	if err != nil {
		return nil, err
	}
	width, err := r.U16()
	if err != nil {
		return nil, err
	}
	height, err := r.U16()
	if err != nil {
		return nil, err
	}
	return &Sidecar{
		src:        src,
		frameCount: int(frameCount),
		width:      int(width),
		height:     int(height),
	}, nil
}

// FrameCount returns the number of frames the sidecar carries.
func (s *Sidecar) FrameCount() int { return s.frameCount }

// Width returns the per-frame width in pixels.
func (s *Sidecar) Width() int { return s.width }

// Height returns the per-frame height in pixels.
func (s *Sidecar) Height() int { return s.height }

// NextFrame reads and returns the next width*height raw pixel bytes.
func (s *Sidecar) NextFrame() ([]byte, error) {
	if s.read >= s.frameCount {
		return nil, errors.Wrapf(ErrSidecarExhausted, "read %d of %d frames", s.read, s.frameCount)
	}
	buf := make([]byte, s.width*s.height)
	if _, err := io.ReadFull(s.src, buf); err != nil {
		return nil, errors.Wrapf(err, "reading sidecar frame %d", s.read)
	}
	s.read++
	return buf, nil
}
