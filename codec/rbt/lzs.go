/*
NAME
  lzs.go

DESCRIPTION
  lzs.go implements the RBT LZS-style back-reference codec: a control-bit
  stream of literal and back-reference records, with 7- or 11-bit offsets
  and VLC-coded lengths (spec.md §4.5).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rbt

import (
	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/bitio"
)

// Decode LZS-decompresses src into exactly dstLen bytes.
//
// Each record begins with a control bit: 1 selects a back-reference (one
// offset-width bit selecting a 7-bit or 11-bit offset, then a VLC length);
// 0 selects an 8-bit literal. Back-reference copies proceed one byte at a
// time from the output already produced (overlap semantics), so a
// back-reference may legitimately read bytes it itself just wrote.
func Decode(src []byte, dstLen int) ([]byte, error) {
	r := bitio.NewReader(src)
	dst := make([]byte, 0, dstLen)

	for len(dst) < dstLen {
		ctrl, err := r.ReadBit()
		if err != nil {
			return nil, errors.Wrap(ErrInvalidData, "reading control bit")
		}

		if ctrl == 0 {
			v, err := r.Read(8)
			if err != nil {
				return nil, errors.Wrap(ErrInvalidData, "reading literal byte")
			}
			if len(dst)+1 > dstLen {
				return nil, ErrOverrun
			}
			dst = append(dst, byte(v))
			continue
		}

		offsetType, err := r.ReadBit()
		if err != nil {
			return nil, errors.Wrap(ErrInvalidData, "reading offset type bit")
		}
		offsetBits := uint(11)
		if offsetType == 1 {
			offsetBits = 7
		}
		offset, err := r.Read(offsetBits)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidData, "reading back-reference offset")
		}
		length, err := DecodeLength(r)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidData, "reading back-reference length")
		}

		start := len(dst) - int(offset)
		if start < 0 {
			return nil, errors.Wrap(ErrInvalidData, "back-reference points before start of output")
		}
		if len(dst)+length > dstLen {
			return nil, ErrOverrun
		}
		for i := 0; i < length; i++ {
			dst = append(dst, dst[start+i])
		}
	}
	return dst, nil
}

// Encode LZS-compresses src using the single-pass run-length rule described
// in spec.md §4.5: runs of length 1 are a literal; runs of length 2 are two
// literals; runs of length 3 or more are a literal followed by a type=1,
// offset=1 back-reference of length run-1. This intentionally emits one
// redundant literal immediately before every back-reference rather than
// folding it into the run (see codec/rbt's entry in DESIGN.md).
func Encode(src []byte) []byte {
	w := bitio.NewWriter()
	i := 0
	for i < len(src) {
		run := 1
		for i+run < len(src) && src[i+run] == src[i] {
			run++
		}
		switch {
		case run == 1:
			emitLiteral(w, src[i])
			i++
		case run == 2:
			emitLiteral(w, src[i])
			emitLiteral(w, src[i])
			i += 2
		default:
			emitLiteral(w, src[i])
			emitBackref(w, 1, run-1)
			i += run
		}
	}
	w.Flush()
	return w.Bytes()
}

func emitLiteral(w *bitio.Writer, b byte) {
	w.PutBit(false)
	w.Put(uint32(b), 8)
}

// emitBackref always uses offset_type=1 (7-bit offset), matching the
// encoder's self-referential run compression.
func emitBackref(w *bitio.Writer, offset, length int) {
	w.PutBit(true)
	w.PutBit(true)
	w.Put(uint32(offset), 7)
	EncodeLength(w, length)
}
