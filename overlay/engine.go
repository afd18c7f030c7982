/*
NAME
  engine.go

DESCRIPTION
  engine.go implements the subtitle overlay tool's end-to-end path for
  both container formats: duplicate the input's header/ToC, and for
  every video block, force the full-frame change rectangle, pull the
  matching pre-decoded frame from the sidecar, composite rendered
  subtitle layers onto it, re-encode, and remux (spec.md §4.7).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package overlay

import (
	"io"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	rcodec "github.com/ausocean/sierravid/codec/rbt"
	vcodec "github.com/ausocean/sierravid/codec/vmd"
	crbt "github.com/ausocean/sierravid/container/rbt"
	cvmd "github.com/ausocean/sierravid/container/vmd"
)

// Options carries the overlay engine's caller-tunable knobs (spec.md §9's
// design note: these belong in config, not buried constants).
type Options struct {
	// AlphaThreshold is the compositing cutoff; a subtitle pixel is drawn
	// only if its alpha exceeds this value.
	AlphaThreshold byte
	// BlockDuration is the presentation-time step between successive
	// video blocks, used to compute each block's rasterizer timestamp.
	BlockDuration time.Duration
}

// DefaultOptions returns spec.md §4.7's defaults: alpha threshold 0x70,
// one block per 100ms.
func DefaultOptions() Options {
	return Options{AlphaThreshold: DefaultAlphaThreshold, BlockDuration: 100 * time.Millisecond}
}

// Engine drives the decode -> composite -> encode -> remux pipeline
// shared by the VMD and RBT paths.
type Engine struct {
	opts Options
	log  logging.Logger
}

// NewEngine returns an Engine configured with opts, logging to log, which
// may be nil.
func NewEngine(opts Options, log logging.Logger) *Engine {
	return &Engine{opts: opts, log: log}
}

func (e *Engine) debug(msg string, kv ...interface{}) {
	if e.log != nil {
		e.log.Debug(msg, kv...)
	}
}

// RunVMD reads a VMD file from src, composites subtitle layers from rast
// against sc's pre-decoded frames onto every video block, and writes the
// result to dst.
func (e *Engine) RunVMD(src io.ReadSeeker, dst io.WriteSeeker, sc *Sidecar, rast Rasterizer) error {
	dm, err := cvmd.NewDemuxer(src)
	if err != nil {
		return errors.Wrap(err, "opening VMD input")
	}
	h := dm.Header()
	width, height := int(h.Width), int(h.Height)
	if sc.Width() != width || sc.Height() != height {
		return errors.Wrapf(ErrInvalidData, "sidecar dimensions %dx%d do not match container %dx%d", sc.Width(), sc.Height(), width, height)
	}

	pal, err := vcodec.DecodePalette(h.Palette[:])
	if err != nil {
		return errors.Wrap(err, "decoding input palette")
	}

	hasAudio := h.FramesPerBlock >= 2
	mux, err := cvmd.NewMuxer(dst, width, height, hasAudio, h.AudioSampleRate, h.AudioFrameLength, h.AudioBuffers, h.LoadBufferSize, h.DecodeBufferSize, e.log)
	if err != nil {
		return errors.Wrap(err, "opening VMD output")
	}

	prev := vcodec.NewPlane(width, height)
	paletteSent := false

	for i := 0; i < dm.FrameCount(); i++ {
		info, payload, err := dm.ReadFrame(i)
		if err != nil {
			return errors.Wrapf(err, "reading input block %d", i)
		}

		if info.Type != vcodec.FrameTypeVideo {
			if err := mux.WriteFrame(vcodec.Packet{Payload: payload}); err != nil {
				return errors.Wrapf(err, "writing passthrough block %d", i)
			}
			continue
		}

		raw, err := sc.NextFrame()
		if err != nil {
			return errors.Wrapf(err, "reading sidecar frame for block %d", i)
		}
		cur := vcodec.NewPlane(width, height)
		copy(cur.Data, raw)

		layers, err := rast.Render(time.Duration(i) * e.opts.BlockDuration)
		if err != nil {
			return errors.Wrapf(err, "rendering subtitles for block %d", i)
		}
		for _, l := range layers {
			CompositeLayer(cur, l, pal, e.opts.AlphaThreshold)
		}

		pkt := vcodec.Packet{Payload: encodeVMDBlock(cur, prev)}
		if !paletteSent {
			pkt.NewPalette = true
			pkt.NewPaletteEntries = vcodec.PaletteSize
			copy(pkt.Palette[:], h.Palette[:])
			paletteSent = true
		}
		if err := mux.WriteFrame(pkt); err != nil {
			return errors.Wrapf(err, "writing composited block %d", i)
		}

		prev = cur
		e.debug("composited VMD block", "block", i, "layers", len(layers))
	}

	return mux.Close()
}

// encodeVMDBlock runs method 1 (interframe RLE against prev) and falls
// back to method 2 (raw) if the compressed size doesn't beat the raw
// size, per spec.md §4.7.
func encodeVMDBlock(cur, prev vcodec.PlaneView) []byte {
	enc := vcodec.EncodeInterframeRLE(cur, prev)
	if len(enc) < len(cur.Data) {
		return append([]byte{vcodec.MethodInterframeRLE}, enc...)
	}
	return append([]byte{vcodec.MethodRaw}, cur.Data...)
}

// RunRBT reads a complete RBT file from src, composites subtitle layers
// from rast against sc's pre-decoded frames onto every frame, and returns
// the rebuilt file.
func (e *Engine) RunRBT(src []byte, sc *Sidecar, rast Rasterizer) ([]byte, error) {
	f, err := crbt.ParseFile(src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing RBT input")
	}

	var pal vcodec.Palette
	for i := 0; i < int(f.Palette.Count); i++ {
		idx := int(f.Palette.FirstIndex) + i
		if idx < 0 || idx >= vcodec.PaletteSize {
			continue
		}
		r, g, b := f.Palette.ScaledRGB(i)
		pal[idx] = vcodec.RGBA{R: r, G: g, B: b, A: 0xFF}
	}

	dec := rcodec.NewDecoder(e.log)
	enc := rcodec.NewEncoder(e.log)
	frames := make([][]byte, len(f.Frames))

	for i := range f.Frames {
		vbuf, err := f.VideoFrame(i)
		if err != nil {
			return nil, errors.Wrapf(err, "extracting video frame %d", i)
		}
		hdr, _, err := dec.DecodeFrame(vbuf)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding RBT frame %d", i)
		}

		raw, err := sc.NextFrame()
		if err != nil {
			return nil, errors.Wrapf(err, "reading sidecar frame for block %d", i)
		}
		cur := vcodec.NewPlane(int(hdr.Width), int(hdr.Height))
		copy(cur.Data, raw)

		layers, err := rast.Render(time.Duration(i) * e.opts.BlockDuration)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering subtitles for block %d", i)
		}
		for _, l := range layers {
			CompositeLayer(cur, l, pal, e.opts.AlphaThreshold)
		}

		frames[i] = enc.EncodeFrame(cur.Data, int(hdr.Width), int(hdr.Height), hdr.OriginX, hdr.OriginY, hdr.Scale)
		e.debug("composited RBT block", "block", i, "layers", len(layers))
	}

	return crbt.BuildFile(f.Palette, f.Unknown, frames), nil
}
