/*
DESCRIPTION
  filler.go provides generation of filler data NAL units for padding access
  units to an 8 byte boundary.

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
	"github.com/ausocean/h264fix/codec/h264/h264dec/bits"
	"github.com/pkg/errors"
)

// MinFillerSize is the size of the smallest filler NAL unit; a four byte
// start code, the header and the trailing byte holding the stop bit.
const MinFillerSize = 6

// Alignment is the byte boundary that Padding pads to.
const Alignment = 8

const (
	fillerHeader  = 0x0c // nal_ref_idc 0, nal_unit_type 12.
	fillerPayload = 0xff // ff_byte.
	fillerTrailer = 0x80 // rbsp_stop_one_bit and alignment zero bits.
)

// fillerSize holds, for each remainder of a size modulo Alignment, the size of
// filler NAL unit that brings the size to the next boundary.
var fillerSize = [Alignment]int{0, 7, 14, 13, 12, 11, 10, 9}

// FillerNAL writes a filler data NAL unit of size bytes into p.
func FillerNAL(size int, p []byte) error {
	if size < MinFillerSize {
		return errors.Wrapf(ErrInvalidSize, "size %d less than %d", size, MinFillerSize)
	}
	if len(p) < size {
		return errors.Wrapf(bits.ErrShortBuffer, "filler of %d bytes into buffer of %d", size, len(p))
	}

	p[0], p[1], p[2], p[3] = 0x00, 0x00, 0x00, 0x01
	p[4] = fillerHeader
	for i := 5; i < size-1; i++ {
		p[i] = fillerPayload
	}
	p[size-1] = fillerTrailer
	return nil
}

// Padding writes to the start of p the filler NAL unit needed to pad an
// access unit of size bytes to a multiple of Alignment, and returns the number
// of bytes written. Nothing is written if size is already aligned.
func Padding(size int, p []byte) (int, error) {
	n := PaddingLen(size)
	if n == 0 {
		return 0, nil
	}
	err := FillerNAL(n, p)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// PaddingLen returns the size of the filler NAL unit Padding would write for
// an access unit of size bytes.
func PaddingLen(size int) int {
	return fillerSize[size%Alignment]
}

// AppendPadding appends to b the filler NAL unit needed to pad b to a
// multiple of Alignment bytes.
func AppendPadding(b []byte) []byte {
	n := PaddingLen(len(b))
	if n == 0 {
		return b
	}
	l := len(b)
	b = append(b, make([]byte, n)...)

	// The filler is always at least MinFillerSize and b has room.
	_ = FillerNAL(n, b[l:])
	return b
}
