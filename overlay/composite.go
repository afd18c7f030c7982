/*
NAME
  composite.go

DESCRIPTION
  composite.go maps a rendered subtitle layer's packed colors onto the
  nearest existing palette entry and writes the result into a frame plane
  wherever the layer's alpha exceeds a threshold (spec.md §4.7).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package overlay

import (
	"encoding/binary"

	vcodec "github.com/ausocean/sierravid/codec/vmd"
)

// DefaultAlphaThreshold is the compositing alpha cutoff spec.md §4.7
// specifies: a layer pixel is drawn only if its alpha exceeds this value.
const DefaultAlphaThreshold = 0x70

// nearestPaletteIndex returns pal's entry closest to r,g,b by squared
// Euclidean distance.
func nearestPaletteIndex(pal vcodec.Palette, r, g, b byte) byte {
	best := 0
	bestDist := -1
	for i, c := range pal {
		dr := int(c.R) - int(r)
		dg := int(c.G) - int(g)
		db := int(c.B) - int(b)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = i
			if dist == 0 {
				break
			}
		}
	}
	return byte(best)
}

// CompositeLayer writes layer's pixels into cur wherever the packed
// color's alpha (low 8 bits) exceeds threshold, mapping the 6-bit R/G/B
// components (bit shifts 26/18/10) to the nearest entry in pal. Pixels
// that fall outside cur's bounds are silently clipped.
func CompositeLayer(cur vcodec.PlaneView, layer Layer, pal vcodec.Palette, threshold byte) {
	for y := 0; y < layer.H; y++ {
		rowStart := y * layer.Stride
		rowEnd := rowStart + layer.W*4
		if rowEnd > len(layer.Pix) {
			break
		}
		row := layer.Pix[rowStart:rowEnd]
		for x := 0; x < layer.W; x++ {
			packed := binary.LittleEndian.Uint32(row[x*4:])
			alpha := byte(packed)
			if alpha <= threshold {
				continue
			}
			r6 := byte(packed>>26) & 0x3F
			g6 := byte(packed>>18) & 0x3F
			b6 := byte(packed>>10) & 0x3F
			r := vcodec.Scale6To8(r6)
			g := vcodec.Scale6To8(g6)
			b := vcodec.Scale6To8(b6)
			idx := nearestPaletteIndex(pal, r, g, b)
			cur.Set(layer.X+x, layer.Y+y, idx) // out-of-bounds writes are no-ops
		}
	}
}
