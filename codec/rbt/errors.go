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

// Package rbt implements the Sierra RBT video codec: an LZS-style
// back-reference coder with a variable-length length code, used by Robot
// format frames.
package rbt

import "github.com/pkg/errors"

// ErrInvalidData is returned when a bitstream can't be parsed as valid RBT
// LZS data.
var ErrInvalidData = errors.New("rbt: invalid data")

// ErrOverrun is returned when a decode call would produce more bytes than
// the caller's destination buffer holds.
var ErrOverrun = errors.New("rbt: decoded data overruns destination")

// ErrLengthOutOfRange is returned by EncodeLength when asked to encode a run
// length below 2, the shortest length the VLC table can express.
var ErrLengthOutOfRange = errors.New("rbt: run length out of range for VLC table")
