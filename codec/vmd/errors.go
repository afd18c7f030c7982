/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error kinds from spec.md §7, consumed by
  the decoder, encoder and container layers.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import "github.com/pkg/errors"

var (
	// ErrInvalidData covers malformed headers, out-of-range rectangles,
	// truncated streams, and impossible opcodes.
	ErrInvalidData = errors.New("vmd: invalid data")

	// ErrOutOfMemory covers allocation failure during init or dynamic
	// growth.
	ErrOutOfMemory = errors.New("vmd: out of memory")

	// ErrUnsupportedPixelFormat is returned by the encoder when fed
	// anything other than 24-bit BGR pixels.
	ErrUnsupportedPixelFormat = errors.New("vmd: unsupported pixel format, expected 24-bit BGR")
)
