/*
NAME
  parse.go

DESCRIPTION
  parse.go provides reading and writing of the ue(v) and se(v) syntax element
  descriptors specified in 7.2 and 9.1 of ITU-T H.264, and a sticky error
  field reader for walking syntax structures.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h264dec

import (
	mbits "math/bits"

	"github.com/ausocean/h264fix/codec/h264/h264dec/bits"
	"github.com/pkg/errors"
)

// maxLeadingZeros bounds the prefix of an Exp-Golomb code. H.264 syntax
// elements never exceed 2^32-2, which needs 32 leading zeros.
const maxLeadingZeros = 32

var errUeRange = errors.New("Exp-Golomb value out of range")

// ReadUe parses a syntax element of ue(v) descriptor, i.e. an unsigned integer
// Exp-Golomb-coded element using method as specified in section 9.1 of ITU-T
// H.264. Leading zero bits are counted up to the first 1 bit, and that many
// further bits are read as the suffix.
func ReadUe(c *bits.Cursor) (uint64, error) {
	nZeros := 0
	for {
		b, err := c.ReadBit()
		if err != nil {
			return 0, err
		}
		if b == 1 {
			break
		}
		nZeros++
		if nZeros > maxLeadingZeros {
			return 0, errors.Wrapf(errUeRange, "more than %d leading zeros", maxLeadingZeros)
		}
	}
	rem, err := c.ReadBits(nZeros)
	if err != nil {
		return 0, err
	}
	return 1<<uint(nZeros) - 1 + rem, nil
}

// WriteUe writes v as a ue(v) syntax element; this is the inverse of ReadUe.
func WriteUe(c *bits.Cursor, v uint64) error {
	n, err := ueLen(v)
	if err != nil {
		return err
	}
	if c.Remaining() < n {
		return errors.Wrapf(bits.ErrShortBuffer, "need %d bits for ue(v) %d", n, v)
	}
	nZeros := n / 2
	err = c.WriteBits(nZeros, 0)
	if err != nil {
		return err
	}
	return c.WriteBits(nZeros+1, v+1)
}

// ReadSe parses a syntax element with descriptor se(v), i.e. a signed integer
// Exp-Golomb-coded syntax element, using the method described in sections
// 9.1 and 9.1.1 of ITU-T H.264. Odd code numbers map to positive values.
func ReadSe(c *bits.Cursor) (int64, error) {
	codeNum, err := ReadUe(c)
	if err != nil {
		return 0, errors.Wrap(err, "error reading ue(v)")
	}
	if codeNum&1 == 1 {
		return int64((codeNum + 1) / 2), nil
	}
	return -int64(codeNum / 2), nil
}

// WriteSe writes v as an se(v) syntax element; this is the inverse of ReadSe.
func WriteSe(c *bits.Cursor, v int64) error {
	const max = 1 << maxLeadingZeros
	if v > max || v < -max {
		return errors.Wrapf(errUeRange, "cannot code %d", v)
	}
	if v > 0 {
		return WriteUe(c, uint64(v)*2-1)
	}
	return WriteUe(c, uint64(-v)*2)
}

// UeLen returns the number of bits used to code v as ue(v), that is
// 2*floor(log2(v+1))+1. Values that cannot be coded return -1.
func UeLen(v uint64) int {
	n, err := ueLen(v)
	if err != nil {
		return -1
	}
	return n
}

func ueLen(v uint64) (int, error) {
	if v >= 1<<(maxLeadingZeros+1)-1 {
		return 0, errors.Wrapf(errUeRange, "cannot code %d", v)
	}
	return 2*(mbits.Len64(v+1)-1) + 1, nil
}

// fieldReader provides methods for reading named syntax elements from a
// bits.Cursor with a sticky error that may be checked after a series of
// parsing read calls. The first failure is recorded as ErrMalformed, naming
// the element that could not be read.
type fieldReader struct {
	e error
	c *bits.Cursor
}

// newFieldReader returns a new fieldReader.
func newFieldReader(c *bits.Cursor) *fieldReader {
	return &fieldReader{c: c}
}

// readBits returns n bits read as the element name. If we have an error
// already, we do not continue with the read.
func (r *fieldReader) readBits(name string, n int) uint64 {
	if r.e != nil {
		return 0
	}
	v, err := r.c.ReadBits(n)
	r.fail(name, err)
	return v
}

// readFlag reads a single bit element and returns it as a bool.
func (r *fieldReader) readFlag(name string) bool {
	return r.readBits(name, 1) == 1
}

// readUe reads a ue(v) element. The read does not happen if the fieldReader
// has a non-nil error.
func (r *fieldReader) readUe(name string) uint64 {
	if r.e != nil {
		return 0
	}
	v, err := ReadUe(r.c)
	r.fail(name, err)
	return v
}

// readSe reads an se(v) element. The read does not happen if the fieldReader
// has a non-nil error.
func (r *fieldReader) readSe(name string) int64 {
	if r.e != nil {
		return 0
	}
	v, err := ReadSe(r.c)
	r.fail(name, err)
	return v
}

func (r *fieldReader) fail(name string, err error) {
	if err != nil {
		r.e = errors.Wrapf(ErrMalformed, "could not read %s: %v", name, err)
	}
}

// err returns the fieldReader's error e.
func (r *fieldReader) err() error {
	return r.e
}

// fieldWriter is the writing counterpart of fieldReader.
type fieldWriter struct {
	e error
	c *bits.Cursor
}

func newFieldWriter(c *bits.Cursor) *fieldWriter {
	return &fieldWriter{c: c}
}

func (w *fieldWriter) writeFlag(name string, f bool) {
	if w.e != nil {
		return
	}
	var b uint64
	if f {
		b = 1
	}
	w.fail(name, w.c.WriteBit(b))
}

func (w *fieldWriter) writeUe(name string, v uint64) {
	if w.e != nil {
		return
	}
	w.fail(name, WriteUe(w.c, v))
}

func (w *fieldWriter) fail(name string, err error) {
	if err != nil {
		w.e = errors.Wrapf(ErrMalformed, "could not write %s: %v", name, err)
	}
}

func (w *fieldWriter) err() error {
	return w.e
}
