/*
NAME
  errors.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package overlay drives the subtitle overlay tool's end-to-end path:
// it reads a pre-decoded raw-frame sidecar and an existing VMD or RBT
// file, composites rendered subtitle layers onto each video block, and
// re-encodes and remuxes the result (spec.md §4.7).
package overlay

import "github.com/pkg/errors"

// ErrInvalidData is returned when the sidecar or input container doesn't
// match the shape the engine expects.
var ErrInvalidData = errors.New("overlay: invalid data")

// ErrSidecarExhausted is returned when a video block needs a sidecar frame
// but none remain.
var ErrSidecarExhausted = errors.New("overlay: sidecar has no more frames")
