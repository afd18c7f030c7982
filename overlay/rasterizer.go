/*
NAME
  rasterizer.go

DESCRIPTION
  rasterizer.go documents the subtitle rasterizer boundary the overlay
  engine consumes: an externally implemented collaborator that renders
  grayscale-with-color subtitle bitmaps for a given timestamp (spec.md §1,
  §4.7). Modelled on device/device.go's AVDevice style of documenting a
  consumed interface rather than implementing one.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package overlay

import "time"

// Rasterizer renders subtitle layers for a given presentation timestamp.
// It is implemented outside this module (spec.md §1's "consumed as a
// library" collaborator); the engine only calls Render.
type Rasterizer interface {
	Render(ts time.Duration) ([]Layer, error)
}

// Layer is one rendered subtitle bitmap, positioned in frame coordinates.
// Pix holds W*H 32-bit packed colors in row-major order, Stride bytes per
// row: alpha in the low 8 bits, and 6-bit R/G/B components at bit shifts
// 26, 18, and 10 respectively (spec.md §4.7).
type Layer struct {
	W, H, Stride int
	Pix          []byte
	X, Y         int
}
