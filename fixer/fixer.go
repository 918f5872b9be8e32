/*
DESCRIPTION
  fixer.go provides Fixer, an io.Writer that corrects the SPS frame cropping
  of H.264 chunks written to it and optionally pads them to an 8 byte boundary
  before passing them on.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fixer provides correction of the frame cropping signalled by an
// H.264 encoder that reports macroblock aligned dimensions, and filler
// padding of its output.
package fixer

import (
	"errors"
	"fmt"
	"io"

	"github.com/ausocean/h264fix/codec/h264"
	"github.com/ausocean/h264fix/codec/h264/h264dec"
	"github.com/ausocean/h264fix/fixer/config"
	"github.com/ausocean/utils/logging"
)

// spsGrowth is the room allowed for an SPS to grow when its cropping fields
// are rewritten.
const spsGrowth = 8

// Stats holds counts of what a Fixer has done.
type Stats struct {
	Chunks      int   // Chunks written to the Fixer.
	Fixed       int   // SPS NAL units with rewritten cropping.
	Skipped     int   // SPS NAL units left as is as they are not supported.
	FillerBytes int   // Bytes of filler NAL units added.
	BytesIn     int64 // Bytes written to the Fixer.
	BytesOut    int64 // Bytes written to the destination.
}

// Fixer is an io.Writer that takes chunks of an H.264 byte stream, such as
// those produced by h264.Lex, corrects the cropping of any SPS in each chunk
// and writes the result to a destination io.Writer. Fixer is not safe for
// concurrent use.
type Fixer struct {
	dst    io.Writer
	log    logging.Logger
	width  int
	height int
	crop   bool
	pad    bool

	// scratch holds the SPS being rewritten and out the chunk being built.
	scratch []byte
	out     []byte

	seenSPS bool
	stats   Stats
}

// New returns a new Fixer writing to dst, configured by c. c.Logger must be
// set.
func New(dst io.Writer, c config.Config) *Fixer {
	return &Fixer{
		dst:    dst,
		log:    c.Logger,
		width:  int(c.Width),
		height: int(c.Height),
		crop:   c.Crop(),
		pad:    c.Pad,
	}
}

// Write implements io.Writer. p is taken to hold whole NAL units. The first
// SPS in p has its cropping rewritten for the configured dimensions. An SPS
// that cannot be rewritten because its profile or VUI parameters are not
// supported is passed on unchanged. A malformed SPS is an error.
func (f *Fixer) Write(p []byte) (int, error) {
	f.stats.Chunks++
	f.stats.BytesIn += int64(len(p))

	out, err := f.fix(p)
	if err != nil {
		return 0, err
	}

	if f.pad {
		n := len(out)
		out = h264dec.AppendPadding(out)
		f.stats.FillerBytes += len(out) - n
	}
	f.out = out

	n, err := f.dst.Write(out)
	f.stats.BytesOut += int64(n)
	if err != nil {
		return 0, fmt.Errorf("could not write chunk: %w", err)
	}
	return len(p), nil
}

// fix returns p with its first SPS rewritten, held in f.out.
func (f *Fixer) fix(p []byte) ([]byte, error) {
	hdr, err := h264dec.FindSPS(p)
	if err != nil {
		return append(f.out[:0], p...), nil
	}
	f.logProfile(p)

	if !f.crop {
		return append(f.out[:0], p...), nil
	}

	start, end := h264dec.NALBounds(p, hdr)
	f.scratch = append(f.scratch[:0], p[start:end]...)
	f.scratch = append(f.scratch, make([]byte, spsGrowth)...)

	n, err := h264dec.FixCropping(f.scratch, f.width, f.height)
	switch {
	case err == nil:
	case errors.Is(err, h264dec.ErrUnsupported):
		f.stats.Skipped++
		f.log.Warning("could not fix SPS cropping, passing on unchanged", "error", err.Error())
		return append(f.out[:0], p...), nil
	default:
		return nil, fmt.Errorf("could not fix SPS cropping: %w", err)
	}
	f.stats.Fixed++
	f.log.Debug("fixed SPS cropping", "oldSize", end-start, "newSize", n, "width", f.width, "height", f.height)

	out := append(f.out[:0], p[:start]...)
	out = append(out, f.scratch[:n]...)
	return append(out, p[end:]...), nil
}

// logProfile logs the profile and level of the first SPS seen.
func (f *Fixer) logProfile(p []byte) {
	if f.seenSPS {
		return
	}
	f.seenSPS = true

	profileIDC, levelIDC, err := h264dec.ParseProfileLevel(p)
	if err != nil {
		f.log.Warning("could not parse SPS profile and level", "error", err.Error())
		return
	}
	profile, err := h264dec.ProfileFromIDC(profileIDC)
	if err != nil {
		f.log.Warning("unrecognised profile", "profile_idc", profileIDC)
		return
	}
	level, err := h264dec.LevelFromIDC(levelIDC)
	if err != nil {
		f.log.Warning("unrecognised level", "profile", profile.String(), "level_idc", levelIDC)
		return
	}
	f.log.Info("stream parameters", "profile", profile.String(), "level", level.String())
}

// Stats returns the counts for chunks written so far.
func (f *Fixer) Stats() Stats { return f.stats }

// Run lexes the H.264 byte stream from src into chunks and writes them through
// a Fixer configured by c to dst. c is validated first. Run returns when src
// is exhausted, or on the first error.
func Run(c config.Config, src io.Reader, dst io.Writer) (Stats, error) {
	err := c.Validate()
	if err != nil {
		return Stats{}, fmt.Errorf("invalid config: %w", err)
	}
	if !c.Crop() {
		c.Logger.Info("no dimensions given, SPS cropping will not be rewritten")
	}

	f := New(dst, c)
	err = h264.Lex(f, src)
	s := f.Stats()
	c.Logger.Info("finished", "chunks", s.Chunks, "fixed", s.Fixed, "skipped", s.Skipped, "fillerBytes", s.FillerBytes, "bytesIn", s.BytesIn, "bytesOut", s.BytesOut)
	if err != nil {
		return s, fmt.Errorf("could not process stream: %w", err)
	}
	return s, nil
}
