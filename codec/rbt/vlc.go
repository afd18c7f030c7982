/*
NAME
  vlc.go

DESCRIPTION
  vlc.go implements the RBT back-reference length code: a fixed four-bit
  lookup table for lengths 2-7, extended by an escape sequence of 4-bit
  groups for lengths 8 and up.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rbt

import "github.com/ausocean/sierravid/bitio"

// DecodeLength reads one VLC-coded back-reference length from r. Codes
// 00/01/10 (top two bits not both set) are 2 bits wide and yield lengths
// 2/3/4. Codes 1100/1101/1110 are 4 bits wide and yield lengths 5/6/7. Code
// 1111 is an escape: the base value 8 is extended by repeated 4-bit groups,
// each adding its value, with a group of 0xF continuing the chain and any
// other value terminating it.
func DecodeLength(r *bitio.Reader) (int, error) {
	top2, err := r.Peek(2)
	if err != nil {
		return 0, err
	}
	if top2 != 3 {
		if _, err := r.Read(2); err != nil {
			return 0, err
		}
		return int(top2) + 2, nil
	}

	full4, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	switch full4 {
	case 0xC:
		return 5, nil
	case 0xD:
		return 6, nil
	case 0xE:
		return 7, nil
	default: // 0xF
		length := 8
		for {
			g, err := r.Read(4)
			if err != nil {
				return 0, err
			}
			length += int(g)
			if g != 0xF {
				break
			}
		}
		return length, nil
	}
}

// EncodeLength appends the VLC encoding of run (a back-reference length of
// at least 2) to w. Lengths of 8 and up have no upper bound: the escape
// chain grows by one 4-bit group per 15.
func EncodeLength(w *bitio.Writer, run int) error {
	switch {
	case run >= 2 && run <= 4:
		w.Put(uint32(run-2), 2)
	case run >= 5 && run <= 7:
		w.Put(uint32(run+7), 4)
	case run >= 8:
		rem := run - 8
		w.Put(0xF, 4)
		for rem >= 15 {
			w.Put(0xF, 4)
			rem -= 15
		}
		w.Put(uint32(rem), 4)
	default:
		return ErrLengthOutOfRange
	}
	return nil
}
