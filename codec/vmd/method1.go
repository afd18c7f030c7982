/*
NAME
  method1.go

DESCRIPTION
  method1.go implements the VMD method-1 interframe RLE compressor: the
  encode side of decodeInterframeRLE, used by the subtitle overlay tool
  (spec.md §4.7) to re-encode a composited frame against its previous
  frame.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

// EncodeInterframeRLE compresses cur against prev using method 1's per-row
// RLE: runs of pixels equal to prev are emitted as copy records (len byte
// with bit 7 clear, value = run-1, run in [1,128]); runs of pixels that
// differ are emitted as literal records (len byte with bit 7 set, low 7
// bits = run-1, run in [1,128], followed by the literal bytes).
func EncodeInterframeRLE(cur, prev PlaneView) []byte {
	out := make([]byte, 0, cur.Width*cur.Height/4)
	for y := 0; y < cur.Height; y++ {
		curRow, _ := cur.Row(y)
		prevRow, _ := prev.Row(y)
		x := 0
		for x < cur.Width {
			same := curRow[x] == prevRow[x]
			run := 1
			for x+run < cur.Width && run < 128 && (curRow[x+run] == prevRow[x+run]) == same {
				run++
			}
			if same {
				out = append(out, byte(run-1))
			} else {
				out = append(out, 0x80|byte(run-1))
				out = append(out, curRow[x:x+run]...)
			}
			x += run
		}
	}
	return out
}
