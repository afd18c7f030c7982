/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the VMD video frame decoder: methods 1 (interframe
  RLE), 2 (raw) and 3 (method 1 + secondary RLE), with an optional LZ-wrapped
  prefix (spec.md §4.3).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/ausocean/sierravid/codec/lz"
)

// Method byte values, after masking off the LZ-wrapped bit (0x80).
const (
	MethodRaw            = 2
	MethodInterframeRLE  = 1
	MethodInterframeRLE2 = 3
	lzWrappedFlag        = 0x80
	methodMask           = 0x7F
)

// Decoder holds the state a VMD video decoder owns across frames: the
// previous pixel plane, the LZ unpack scratch buffer, the
// current palette, and the persistent frame offset (spec.md's design note
// on replacing vmd->x_off/vmd->palette globals with owned state).
type Decoder struct {
	frameWidth  int
	frameHeight int
	xOff, yOff  int

	prev      PlaneView
	haveFrame bool

	palette Palette

	lzBuf []byte

	log logging.Logger
}

// NewDecoder allocates a Decoder for a frameWidth x frameHeight canvas. lzBufSize
// should come from the VMD file header's decode-buffer-size field (offset
// 800); it is pre-allocated once and reused for every LZ-wrapped frame.
func NewDecoder(frameWidth, frameHeight, lzBufSize int, log logging.Logger) *Decoder {
	return &Decoder{
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
		prev:        NewPlane(frameWidth, frameHeight),
		lzBuf:       make([]byte, lzBufSize),
		log:         log,
	}
}

// debug forwards to the decoder's logger, if one was supplied.
func (d *Decoder) debug(msg string, kv ...interface{}) {
	if d.log != nil {
		d.log.Debug(msg, kv...)
	}
}

// Close releases the decoder's owned buffers.
func (d *Decoder) Close() error {
	d.prev = PlaneView{}
	d.lzBuf = nil
	return nil
}

// Palette returns the decoder's current palette.
func (d *Decoder) Palette() Palette { return d.palette }

// DecodeFrame decodes one video frame payload (everything after the 16-byte
// frame info record) and returns the decoded plane. On any error, the
// decoder's retained state (previous plane, palette) is left unmodified, so
// a caller may continue decoding subsequent frames (spec.md's "no partial
// frames" failure semantics).
func (d *Decoder) DecodeFrame(info FrameInfo, payload []byte) (PlaneView, error) {
	rectW, rectH := info.Width(), info.Height()
	fullRect := rectW == d.frameWidth && rectH == d.frameHeight

	if fullRect && (info.LeftEdge != 0 || info.TopEdge != 0) {
		d.xOff, d.yOff = int(info.LeftEdge), int(info.TopEdge)
	} else {
		if int(info.LeftEdge) < 0 || int(info.RightEdge) >= d.frameWidth || info.LeftEdge > info.RightEdge {
			return PlaneView{}, errors.Wrapf(ErrInvalidData, "invalid horizontal rectangle [%d,%d) in width %d", info.LeftEdge, info.RightEdge, d.frameWidth)
		}
		if int(info.TopEdge) < 0 || int(info.BottomEdge) >= d.frameHeight || info.TopEdge > info.BottomEdge {
			return PlaneView{}, errors.Wrapf(ErrInvalidData, "invalid vertical rectangle [%d,%d) in height %d", info.TopEdge, info.BottomEdge, d.frameHeight)
		}
	}

	needsCopy := info.LeftEdge != 0 || info.TopEdge != 0 || rectW < d.frameWidth || rectH < d.frameHeight
	if needsCopy && !d.haveFrame {
		return PlaneView{}, errors.Wrap(ErrInvalidData, "sub-rectangle update with no previous frame")
	}

	cur := NewPlane(d.frameWidth, d.frameHeight)
	if needsCopy {
		if err := cur.CopyFrom(d.prev); err != nil {
			return PlaneView{}, errors.Wrap(err, "copying previous frame plane")
		}
	}

	body := payload
	if info.HasNewPalette() {
		if len(body) < 2+PaletteSize*3 {
			return PlaneView{}, errors.Wrap(ErrInvalidData, "truncated palette prefix")
		}
		body = body[2:]
		pal, err := DecodePalette(body[:PaletteSize*3])
		if err != nil {
			return PlaneView{}, errors.Wrap(err, "decoding palette prefix")
		}
		d.palette = pal
		body = body[PaletteSize*3:]
		d.debug("decoded new palette prefix")
	}

	if len(body) < 1 {
		return PlaneView{}, errors.Wrap(ErrInvalidData, "missing method byte")
	}
	methodByte := body[0]
	body = body[1:]

	if methodByte&lzWrappedFlag != 0 {
		n, err := lz.Unpack(body, d.lzBuf)
		if err != nil {
			return PlaneView{}, errors.Wrap(err, "unpacking LZ-wrapped frame")
		}
		body = d.lzBuf[:n]
	}
	method := methodByte & methodMask

	var err error
	switch method {
	case MethodRaw:
		err = d.decodeRaw(cur, info, body)
	case MethodInterframeRLE:
		err = d.decodeInterframeRLE(cur, info, body, false)
	case MethodInterframeRLE2:
		err = d.decodeInterframeRLE(cur, info, body, true)
	default:
		err = errors.Wrapf(ErrInvalidData, "unknown method byte %#x", methodByte)
	}
	if err != nil {
		return PlaneView{}, err
	}

	d.prev = cur
	d.haveFrame = true
	d.debug("decoded frame", "method", method, "width", rectW, "height", rectH)
	return cur, nil
}

// decodeRaw implements method 2: a straight row-by-row copy.
func (d *Decoder) decodeRaw(cur PlaneView, info FrameInfo, src []byte) error {
	w, h := info.Width(), info.Height()
	off := 0
	for row := 0; row < h; row++ {
		if off+w > len(src) {
			return errors.Wrap(ErrInvalidData, "method 2: truncated row")
		}
		for col := 0; col < w; col++ {
			if err := cur.Set(int(info.LeftEdge)+col, int(info.TopEdge)+row, src[off+col]); err != nil {
				return err
			}
		}
		off += w
	}
	return nil
}

// decodeInterframeRLE implements methods 1 and 3. withInnerRLE selects
// method 3's secondary RLE escape on the literal branch.
func (d *Decoder) decodeInterframeRLE(cur PlaneView, info FrameInfo, src []byte, withInnerRLE bool) error {
	w, h := info.Width(), info.Height()
	off := 0

	for row := 0; row < h; row++ {
		col := 0
		for col < w {
			if off >= len(src) {
				return errors.Wrap(ErrInvalidData, "method 1/3: truncated row")
			}
			lenByte := src[off]
			off++

			if lenByte&0x80 != 0 {
				// Literal branch.
				n := int(lenByte&0x7F) + 1

				if col+n > w {
					return errors.Wrap(ErrInvalidData, "method 1/3: literal run exceeds row width")
				}

				if withInnerRLE && off < len(src) && src[off] == 0xFF {
					off++
					remain := w - col
					if n > remain {
						n = remain
					}
					dst := make([]byte, n)
					consumed, err := innerRLEDecode(src[off:], dst)
					if err != nil {
						return errors.Wrap(err, "method 3: inner RLE")
					}
					off += consumed
					for i := 0; i < n; i++ {
						if err := cur.Set(int(info.LeftEdge)+col+i, int(info.TopEdge)+row, dst[i]); err != nil {
							return err
						}
					}
					col += n
					continue
				}

				if off+n > len(src) {
					return errors.Wrap(ErrInvalidData, "method 1/3: truncated literal run")
				}
				for i := 0; i < n; i++ {
					if err := cur.Set(int(info.LeftEdge)+col+i, int(info.TopEdge)+row, src[off+i]); err != nil {
						return err
					}
				}
				off += n
				col += n
				continue
			}

			// Interframe copy branch.
			n := int(lenByte) + 1
			if col+n > w {
				return errors.Wrap(ErrInvalidData, "method 1/3: copy run exceeds row width")
			}
			for i := 0; i < n; i++ {
				v, err := d.prev.At(int(info.LeftEdge)+col+i, int(info.TopEdge)+row)
				if err != nil {
					return errors.Wrap(err, "method 1/3: interframe copy source")
				}
				if err := cur.Set(int(info.LeftEdge)+col+i, int(info.TopEdge)+row, v); err != nil {
					return err
				}
			}
			col += n
		}
	}
	return nil
}
