/*
NAME
  lex.go

DESCRIPTION
  lex.go provides a lexer to lex h264 bytestream into chunks of NAL units.

AUTHOR
  Dan Kortschak <dan@ausocean.org>
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h264 provides a h264 bytestream lexer.
package h264

import (
	"io"

	"github.com/ausocean/h264fix/codec/codecutil"
	"github.com/ausocean/h264fix/codec/h264/h264dec"
)

const (
	readSize = 4 << 10 // Standard file buffer size.
	bufSize  = 8 << 10
)

// Lex lexes H.264 NAL units read from src into separate writes to dst. NAL
// units are split after type 1 (Coded slice of a non-IDR picture), 5 (Coded
// slice of a IDR picture), 6 (SEI) and 8 (Picture parameter set), so that a
// parameter set is written in the same chunk as the NAL units before it.
// Each chunk starts with the start code of its first NAL unit. The remainder
// of src is written as a final chunk when src is exhausted. Lex returns nil
// once src returns io.EOF.
func Lex(dst io.Writer, src io.Reader) error {
	c := codecutil.NewByteScanner(src, make([]byte, readSize))

	buf := make([]byte, 0, bufSize)
	writeOut := false

	for {
		var b byte
		var err error
		buf, b, err = c.ScanUntil(buf, 0x00)
		if err != nil {
			return flush(dst, buf, err)
		}

		for n := 1; b == 0x0 && n < 4; n++ {
			b, err = c.ReadByte()
			if err != nil {
				return flush(dst, buf, err)
			}
			buf = append(buf, b)

			if b != 0x1 || (n != 2 && n != 3) {
				continue
			}

			if writeOut {
				_, err := dst.Write(buf[:len(buf)-(n+1)])
				if err != nil {
					return err
				}
				buf = make([]byte, n, bufSize)
				buf = append(buf, 1)
				writeOut = false
			}

			b, err = c.ReadByte()
			if err != nil {
				return flush(dst, buf, err)
			}
			buf = append(buf, b)

			switch h264dec.NALType(b) {
			case h264dec.NALTypeNonIDR, h264dec.NALTypeIDR, h264dec.NALTypePPS, h264dec.NALTypeSEI:
				writeOut = true
			}
		}
	}
}

// flush writes out what remains of the stream once reading stops with err.
func flush(dst io.Writer, buf []byte, err error) error {
	if err != io.EOF {
		return err
	}
	if len(buf) == 0 {
		return nil
	}
	_, err = dst.Write(buf)
	return err
}
