/*
NAME
  plane.go

DESCRIPTION
  plane.go provides PlaneView, a checked view over a contiguous rectangle of
  8-bit palette-index pixels, as described in spec.md's design note on
  replacing raw pointer arithmetic with bounds-checked row/column access.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vmd implements the Sierra VMD video codec: frame decoding
// (methods 1, 2 and 3, with an optional LZ-wrapped prefix) and frame
// encoding (palette accumulation with interframe RLE diffing).
package vmd

import "github.com/pkg/errors"

// ErrOutOfBounds is returned when a row or column access falls outside a
// PlaneView's dimensions.
var ErrOutOfBounds = errors.New("vmd: plane access out of bounds")

// PlaneView is a checked rectangular view over a contiguous buffer of 8-bit
// palette indices.
type PlaneView struct {
	Data   []byte
	Width  int
	Height int
	Stride int // bytes per row; Stride >= Width
}

// NewPlane allocates a PlaneView of the given dimensions with Stride==Width.
func NewPlane(width, height int) PlaneView {
	return PlaneView{
		Data:   make([]byte, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}
}

// At returns the pixel at (x, y), bounds-checked.
func (p PlaneView) At(x, y int) (byte, error) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return 0, errors.Wrapf(ErrOutOfBounds, "At(%d,%d) in %dx%d plane", x, y, p.Width, p.Height)
	}
	return p.Data[y*p.Stride+x], nil
}

// Set writes the pixel at (x, y), bounds-checked.
func (p PlaneView) Set(x, y int, v byte) error {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return errors.Wrapf(ErrOutOfBounds, "Set(%d,%d) in %dx%d plane", x, y, p.Width, p.Height)
	}
	p.Data[y*p.Stride+x] = v
	return nil
}

// Row returns the byte range backing row y, bounds-checked.
func (p PlaneView) Row(y int) ([]byte, error) {
	if y < 0 || y >= p.Height {
		return nil, errors.Wrapf(ErrOutOfBounds, "Row(%d) in plane of height %d", y, p.Height)
	}
	return p.Data[y*p.Stride : y*p.Stride+p.Width], nil
}

// CopyFrom copies all pixels from src into p; both planes must share
// dimensions.
func (p PlaneView) CopyFrom(src PlaneView) error {
	if p.Width != src.Width || p.Height != src.Height {
		return errors.Errorf("vmd: plane dimension mismatch: %dx%d vs %dx%d", p.Width, p.Height, src.Width, src.Height)
	}
	for y := 0; y < p.Height; y++ {
		dr, _ := p.Row(y)
		sr, _ := src.Row(y)
		copy(dr, sr)
	}
	return nil
}
