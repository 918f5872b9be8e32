/*
NAME
  bytescanner.go

DESCRIPTION
  bytescanner.go provides a buffered byte scanner used by the H.264 byte
  stream lexer to search for start code prefixes.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package codecutil provides utilities shared by the codec packages.
package codecutil

import "io"

// ByteScanner is a byte scanner.
type ByteScanner struct {
	buf []byte
	off int

	// r is the source of data for the scanner.
	r io.Reader

	// n is the number of bytes returned to the caller so far.
	n int64
}

// NewByteScanner returns a scanner initialised with an io.Reader and a read
// buffer. The capacity of buf sets the size of reads from r.
func NewByteScanner(r io.Reader, buf []byte) *ByteScanner {
	return &ByteScanner{r: r, buf: buf[:0]}
}

// ScanUntil scans the scanner's underlying io.Reader until a delim byte
// has been read, appending all read bytes to dst. It returns the resulting
// appended data and the last read byte. If the reader is exhausted before
// delim is found, the data read so far is returned with io.EOF.
func (c *ByteScanner) ScanUntil(dst []byte, delim byte) (res []byte, b byte, err error) {
outer:
	for {
		var i int
		for i, b = range c.buf[c.off:] {
			if b != delim {
				continue
			}
			dst = append(dst, c.buf[c.off:c.off+i+1]...)
			c.n += int64(i + 1)
			c.off += i + 1
			break outer
		}
		dst = append(dst, c.buf[c.off:]...)
		c.n += int64(len(c.buf) - c.off)
		c.off = len(c.buf)
		err = c.reload()
		if err != nil {
			break
		}
	}
	return dst, b, err
}

// ReadByte implements io.ByteReader.
func (c *ByteScanner) ReadByte() (byte, error) {
	if c.off >= len(c.buf) {
		err := c.reload()
		if err != nil {
			return 0, err
		}
	}
	b := c.buf[c.off]
	c.off++
	c.n++
	return b, nil
}

// Count returns the number of bytes the scanner has returned.
func (c *ByteScanner) Count() int64 { return c.n }

// reload re-fills the scanner's buffer. Reads returning no data and no error
// are retried.
func (c *ByteScanner) reload() error {
	for {
		n, err := c.r.Read(c.buf[:cap(c.buf)])
		c.buf = c.buf[:n]
		c.off = 0
		if n != 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
