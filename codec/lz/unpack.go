/*
NAME
  unpack.go

DESCRIPTION
  unpack.go implements the VMD outer-layer LZ decompressor: a dictionary
  coder over a 4096-byte circular sliding window, optionally extended with a
  sentinel-activated long-match escape.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package lz implements the LZ-style dictionary decompressor used as the
// outer layer of VMD video frame payloads.
package lz

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	windowSize = 4096
	windowMask = windowSize - 1

	qposSentinel = 0x111
	qposPlain    = 0xFEE

	speclenSentinel = 18
	speclenPlain    = 100 // never matches a 4-bit+3 chain length, effectively disabled
)

// ErrUnderrun is returned when the input is exhausted before dataleft
// reaches zero.
var ErrUnderrun = errors.New("lz: input underrun")

// ErrOverrun is returned when decompression would write past the caller's
// output buffer.
var ErrOverrun = errors.New("lz: output overrun")

// sentinel is compared byte-for-byte against the stream, not interpreted as
// a little-endian integer: the source format writes it as the literal byte
// sequence 56 78 12 34, which is the big-endian rendering of 0x56781234.
var sentinelBytes = [4]byte{0x56, 0x78, 0x12, 0x34}

// Unpack decompresses src into dst, returning the number of bytes written.
// dst must be large enough to hold the decompressed data (the caller sizes
// it from the VMD file header's decode-buffer-size field); Unpack never
// grows dst.
func Unpack(src []byte, dst []byte) (int, error) {
	if len(src) < 4 {
		return 0, errors.Wrap(ErrUnderrun, "missing dataleft counter")
	}
	dataleft := int(binary.LittleEndian.Uint32(src[:4]))
	src = src[4:]

	qpos := qposPlain
	speclen := speclenPlain
	if len(src) >= 4 && [4]byte{src[0], src[1], src[2], src[3]} == sentinelBytes {
		src = src[4:]
		qpos = qposSentinel
		speclen = speclenSentinel
	}

	var queue [windowSize]byte
	for i := range queue {
		queue[i] = 0x20
	}

	si, do := 0, 0
	emit := func(b byte) error {
		if do >= len(dst) {
			return ErrOverrun
		}
		dst[do] = b
		do++
		queue[qpos] = b
		qpos = (qpos + 1) & windowMask
		return nil
	}
	readByte := func() (byte, error) {
		if si >= len(src) {
			return 0, ErrUnderrun
		}
		b := src[si]
		si++
		return b, nil
	}

	for dataleft > 0 {
		tag, err := readByte()
		if err != nil {
			return do, errors.Wrap(err, "lz: reading tag byte")
		}

		if tag == 0xFF && dataleft > 8 {
			if si+8 > len(src) {
				return do, errors.Wrap(ErrUnderrun, "literal run of 8")
			}
			for i := 0; i < 8; i++ {
				if err := emit(src[si+i]); err != nil {
					return do, err
				}
			}
			si += 8
			dataleft -= 8
			continue
		}

		for bit := 0; bit < 8 && dataleft > 0; bit++ {
			if tag&(1<<uint(bit)) != 0 {
				b, err := readByte()
				if err != nil {
					return do, errors.Wrap(err, "lz: literal byte")
				}
				if err := emit(b); err != nil {
					return do, err
				}
				dataleft--
				continue
			}

			b0, err := readByte()
			if err != nil {
				return do, errors.Wrap(err, "lz: reference byte 0")
			}
			b1, err := readByte()
			if err != nil {
				return do, errors.Wrap(err, "lz: reference byte 1")
			}
			chainofs := int(b0) | (int(b1&0xF0) << 4)
			chainlen := int(b1&0x0F) + 3
			if chainlen == speclen {
				extra, err := readByte()
				if err != nil {
					return do, errors.Wrap(err, "lz: extended chain length")
				}
				chainlen = int(extra) + 18
			}
			for i := 0; i < chainlen; i++ {
				if err := emit(queue[chainofs&windowMask]); err != nil {
					return do, err
				}
				chainofs++
			}
			dataleft -= chainlen
		}
	}
	return do, nil
}
