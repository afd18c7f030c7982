/*
NAME
  rle.go

DESCRIPTION
  rle.go implements the inner, pair-encoded RLE sub-coder used by VMD video
  method 3's literal branch (spec.md §4.3 "Inner RLE").

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import "github.com/pkg/errors"

// innerRLEDecode fills dst (length srcCount) from the pair-encoded stream
// src, returning the number of src bytes consumed. If srcCount is odd, one
// raw byte is emitted first; thereafter each control byte l either copies
// (l&0x7F)*2 raw bytes (high bit set) or repeats a 2-byte value l times
// (high bit clear).
func innerRLEDecode(src []byte, dst []byte) (consumed int, err error) {
	srcCount := len(dst)
	var si, di int

	if srcCount%2 != 0 {
		if si >= len(src) {
			return si, errors.Wrap(ErrInvalidData, "innerRLE: underrun on odd leading byte")
		}
		dst[di] = src[si]
		si++
		di++
	}

	for di < srcCount {
		if si >= len(src) {
			return si, errors.Wrap(ErrInvalidData, "innerRLE: underrun on control byte")
		}
		l := src[si]
		si++
		if l&0x80 != 0 {
			n := int(l&0x7F) * 2
			if si+n > len(src) {
				return si, errors.Wrap(ErrInvalidData, "innerRLE: underrun on raw copy")
			}
			if di+n > srcCount {
				return si, errors.Wrap(ErrInvalidData, "innerRLE: raw copy overruns destination")
			}
			copy(dst[di:di+n], src[si:si+n])
			si += n
			di += n
			continue
		}
		if si+2 > len(src) {
			return si, errors.Wrap(ErrInvalidData, "innerRLE: underrun on run value")
		}
		v0, v1 := src[si], src[si+1]
		si += 2
		n := int(l) * 2
		if di+n > srcCount {
			return si, errors.Wrap(ErrInvalidData, "innerRLE: run overruns destination")
		}
		for i := 0; i < int(l); i++ {
			dst[di] = v0
			dst[di+1] = v1
			di += 2
		}
	}
	return si, nil
}
