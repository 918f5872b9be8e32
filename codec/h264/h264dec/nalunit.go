/*
DESCRIPTION
  nalunit.go provides NAL unit type codes and start code location for H.264
  byte streams.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h264dec provides parsing and rewriting of the H.264 sequence
// parameter set, Exp-Golomb coding, and filler NAL unit generation.
package h264dec

// NAL unit type codes from table 7-1 of ITU-T H.264.
const (
	NALTypeUnspecified = iota
	NALTypeNonIDR
	NALTypeDataPartitionA
	NALTypeDataPartitionB
	NALTypeDataPartitionC
	NALTypeIDR
	NALTypeSEI
	NALTypeSPS
	NALTypePPS
	NALTypeAccessUnitDelimiter
	NALTypeEndOfSequence
	NALTypeEndOfStream
	NALTypeFillerData
)

// nalTypeMask selects nal_unit_type from a NAL unit header byte.
const nalTypeMask = 0x1f

// NALType returns the nal_unit_type of the NAL unit header byte h.
func NALType(h byte) int { return int(h & nalTypeMask) }

// FindStartCode scans buf[:end] for the start code prefix 0x000001 and
// returns the index of the byte immediately following it. Only a start code
// that is followed by at least one byte before end is found, so the returned
// index is always a valid index of buf. If end is beyond the length of buf,
// the length of buf is used.
func FindStartCode(buf []byte, end int) (int, bool) {
	if end > len(buf) {
		end = len(buf)
	}

	// The window holds the most recently scanned bytes; the start of the
	// scan behaves as though preceded by non-zero bytes.
	const (
		mask   = 0x00ffffff
		prefix = 0x000001
	)
	win := uint32(0xffffffff)
	for i := 0; i < end; i++ {
		win = win<<8 | uint32(buf[i])
		if win&mask == prefix {
			if i+1 >= end {
				return 0, false
			}
			return i + 1, true
		}
	}
	return 0, false
}

// FindSPS returns the index of the header byte of the first SPS NAL unit in
// buf. NAL units of other types are skipped. ErrNotFound is returned if buf
// runs out before an SPS header is seen.
func FindSPS(buf []byte) (int, error) {
	off := 0
	for {
		n, ok := FindStartCode(buf[off:], len(buf)-off)
		if !ok {
			return 0, ErrNotFound
		}
		off += n
		if NALType(buf[off]) == NALTypeSPS {
			return off, nil
		}
		off++
	}
}

// startCodeLen returns the length of the start code that begins buf, either
// 3 or 4, or 0 if buf does not begin with a start code.
func startCodeLen(buf []byte) int {
	switch {
	case len(buf) >= 4 && buf[0] == 0 && buf[1] == 0 && buf[2] == 0 && buf[3] == 1:
		return 4
	case len(buf) >= 3 && buf[0] == 0 && buf[1] == 0 && buf[2] == 1:
		return 3
	default:
		return 0
	}
}

// NALBounds returns the start and end of the NAL unit whose header byte is at
// index hdr of buf. The start includes the start code preceding the header,
// taking the four byte form where a zero byte precedes the three byte prefix.
// The end is the start of the next NAL unit's start code, or len(buf).
func NALBounds(buf []byte, hdr int) (start, end int) {
	start = hdr - 3
	if start > 0 && buf[start-1] == 0 {
		start--
	}

	end = len(buf)
	n, ok := FindStartCode(buf[hdr+1:], len(buf)-hdr-1)
	if !ok {
		// A start code ending the buffer has nothing after it for
		// FindStartCode to return, but still ends this NAL unit.
		if len(buf)-hdr-1 >= 3 && buf[len(buf)-3] == 0 && buf[len(buf)-2] == 0 && buf[len(buf)-1] == 1 {
			end = len(buf) - 3
		} else {
			return start, end
		}
	} else {
		end = hdr + 1 + n - 3
	}
	if end > hdr+1 && buf[end-1] == 0 {
		end--
	}
	return start, end
}
