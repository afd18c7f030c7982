/*
NAME
  decoder.go

DESCRIPTION
  decoder.go assembles RBT frame header parsing and per-fragment LZS
  decoding into a single frame decode call (spec.md §4.5).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rbt

import (
	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Decoder decodes RBT video frames. It carries no state across frames;
// unlike the VMD decoder, RBT frames are independently compressed.
type Decoder struct {
	log logging.Logger
}

// NewDecoder returns a Decoder that logs to log, which may be nil.
func NewDecoder(log logging.Logger) *Decoder {
	return &Decoder{log: log}
}

func (d *Decoder) debug(msg string, kv ...interface{}) {
	if d.log != nil {
		d.log.Debug(msg, kv...)
	}
}

// DecodeFrame parses buf's 24-byte video header and its fragments, decodes
// each fragment, and returns the header and the concatenated decompressed
// pixel bytes.
func (d *Decoder) DecodeFrame(buf []byte) (FrameHeader, []byte, error) {
	hdr, err := ParseFrameHeader(buf)
	if err != nil {
		return FrameHeader{}, nil, errors.Wrap(err, "parsing frame header")
	}

	off := FrameHeaderSize
	var out []byte
	for i := 0; i < int(hdr.FragmentCount); i++ {
		if off+FragmentHeaderSize > len(buf) {
			return hdr, nil, errors.Wrapf(ErrInvalidData, "truncated fragment header %d", i)
		}
		frag, err := ParseFragmentHeader(buf[off:])
		if err != nil {
			return hdr, nil, errors.Wrapf(err, "parsing fragment header %d", i)
		}
		off += FragmentHeaderSize

		if off+int(frag.CompressedSize) > len(buf) {
			return hdr, nil, errors.Wrapf(ErrInvalidData, "truncated fragment payload %d", i)
		}
		frag.Payload = buf[off : off+int(frag.CompressedSize)]
		off += int(frag.CompressedSize)

		decoded, err := frag.Decode()
		if err != nil {
			return hdr, nil, errors.Wrapf(err, "decoding fragment %d", i)
		}
		out = append(out, decoded...)
	}

	d.debug("decoded RBT frame", "width", hdr.Width, "height", hdr.Height, "fragments", hdr.FragmentCount)
	return hdr, out, nil
}
