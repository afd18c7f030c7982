/*
NAME
  demuxer.go

DESCRIPTION
  demuxer.go reads a VMD file's header and ToC, then serves per-frame
  payloads by offset (spec.md §4.6, §6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vmd

import (
	"io"

	"github.com/pkg/errors"

	vcodec "github.com/ausocean/sierravid/codec/vmd"
)

// blockRecord is one parsed 6-byte ToC block-table entry.
type blockRecord struct {
	unknown uint16
	offset  uint32
}

// Demuxer reads a VMD file's fixed header and ToC once at construction,
// then serves frame payloads on demand by seeking src.
type Demuxer struct {
	src io.ReadSeeker

	header Header
	blocks []blockRecord
	frames [][]vcodec.FrameInfo // per block, one record (video only) or two (video+audio)
}

// NewDemuxer reads and parses src's header and ToC.
func NewDemuxer(src io.ReadSeeker) (*Demuxer, error) {
	hbuf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(src, hbuf); err != nil {
		return nil, errors.Wrap(err, "reading VMD header")
	}
	h, err := ParseHeader(hbuf)
	if err != nil {
		return nil, errors.Wrap(err, "parsing VMD header")
	}

	d := &Demuxer{src: src, header: h}

	if _, err := src.Seek(int64(h.ToCOffset), io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seeking to ToC")
	}

	blockCount := int(h.ToCBlockCount)
	d.blocks = make([]blockRecord, blockCount)
	for i := range d.blocks {
		buf := make([]byte, 6)
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, errors.Wrapf(err, "reading block table record %d", i)
		}
		d.blocks[i] = blockRecord{
			unknown: uint16(buf[0]) | uint16(buf[1])<<8,
			offset:  uint32(buf[2]) | uint32(buf[3])<<8 | uint32(buf[4])<<16 | uint32(buf[5])<<24,
		}
	}

	recordsPerBlock := int(h.FramesPerBlock)
	if recordsPerBlock == 0 {
		recordsPerBlock = 1
	}
	d.frames = make([][]vcodec.FrameInfo, blockCount)
	for i := range d.frames {
		d.frames[i] = make([]vcodec.FrameInfo, recordsPerBlock)
		for j := 0; j < recordsPerBlock; j++ {
			buf := make([]byte, vcodec.InfoSize)
			if _, err := io.ReadFull(src, buf); err != nil {
				return nil, errors.Wrapf(err, "reading frame table record %d/%d", i, j)
			}
			info, err := vcodec.ParseFrameInfo(buf)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing frame table record %d/%d", i, j)
			}
			d.frames[i][j] = info
		}
	}

	return d, nil
}

// Header returns the parsed file header.
func (d *Demuxer) Header() Header { return d.header }

// FrameCount returns the number of blocks in the ToC.
func (d *Demuxer) FrameCount() int { return len(d.blocks) }

// ReadFrame seeks to block i's offset and reads its video frame payload,
// returning the video frame-table record and the raw payload bytes
// (method byte plus encoded data).
func (d *Demuxer) ReadFrame(i int) (vcodec.FrameInfo, []byte, error) {
	if i < 0 || i >= len(d.blocks) {
		return vcodec.FrameInfo{}, nil, errors.Wrapf(ErrInvalidData, "frame index %d out of range", i)
	}
	video := d.frames[i][0]
	if _, err := d.src.Seek(int64(d.blocks[i].offset), io.SeekStart); err != nil {
		return video, nil, errors.Wrap(err, "seeking to frame payload")
	}
	buf := make([]byte, video.Length)
	if _, err := io.ReadFull(d.src, buf); err != nil {
		return video, nil, errors.Wrap(err, "reading frame payload")
	}
	return video, buf, nil
}
