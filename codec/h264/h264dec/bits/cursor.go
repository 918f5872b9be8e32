/*
DESCRIPTION
  cursor.go provides a bit cursor that can read, overwrite and seek within a
  byte slice at bit granularity.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides a bit cursor for reading and rewriting the bits of a
// byte slice in place.
package bits

import (
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when a read, write or seek would move the cursor
// past the end of the underlying buffer.
var ErrShortBuffer = errors.New("bits: operation beyond end of buffer")

// maxBits is the largest number of bits that can be read or written in one
// call, as limited by the uint64 result.
const maxBits = 64

// Cursor is a bit position within a borrowed byte slice. Bits are addressed
// most-significant first, so bit 0 is the top bit of buf[0].
//
// Every operation checks bounds before touching the buffer; an operation that
// would overrun returns ErrShortBuffer and leaves both the buffer and the
// position unchanged.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a Cursor positioned at the first bit of buf. The Cursor
// does not copy buf; writes are made directly to it.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// ReadBit reads a single bit and advances the cursor by one.
func (c *Cursor) ReadBit() (uint64, error) {
	if c.pos >= c.Len() {
		return 0, ErrShortBuffer
	}
	b := c.bit(c.pos)
	c.pos++
	return b, nil
}

// WriteBit sets the bit at the cursor to the low bit of b and advances the
// cursor by one.
func (c *Cursor) WriteBit(b uint64) error {
	if c.pos >= c.Len() {
		return ErrShortBuffer
	}
	c.setBit(c.pos, b)
	c.pos++
	return nil
}

// ReadBits reads n bits and returns them in the least-significant part of a
// uint64, the first bit read being the most significant.
// For example, with a source as []byte{0x8f,0xe3} (1000 1111, 1110 0011), we
// would get the following results for consecutive reads with n values:
// n = 4, res = 0x8 (1000)
// n = 2, res = 0x3 (0011)
// n = 4, res = 0xf (1111)
// n = 6, res = 0x23 (10 0011)
func (c *Cursor) ReadBits(n int) (uint64, error) {
	if err := c.check(n); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<1 | c.bit(c.pos)
		c.pos++
	}
	return v, nil
}

// WriteBits writes the low n bits of v, most-significant first, and advances
// the cursor by n.
func (c *Cursor) WriteBits(n int, v uint64) error {
	if err := c.check(n); err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		c.setBit(c.pos, v>>uint(i))
		c.pos++
	}
	return nil
}

// Skip advances the cursor by n bits without reading them.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.pos+n > c.Len() {
		return ErrShortBuffer
	}
	c.pos += n
	return nil
}

// Seek moves the cursor to the absolute bit position pos. Seeking to Len is
// permitted, any read or write from there will fail.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > c.Len() {
		return fmt.Errorf("seek to bit %d of %d: %w", pos, c.Len(), ErrShortBuffer)
	}
	c.pos = pos
	return nil
}

// Pos returns the current bit position of the cursor.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the underlying buffer in bits.
func (c *Cursor) Len() int { return len(c.buf) * 8 }

// Remaining returns the number of bits between the cursor and the end of the
// buffer.
func (c *Cursor) Remaining() int { return c.Len() - c.pos }

// ByteAligned returns true if the cursor is at the start of a byte.
func (c *Cursor) ByteAligned() bool { return c.pos%8 == 0 }

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

// check returns ErrShortBuffer if n bits cannot be consumed from the cursor.
func (c *Cursor) check(n int) error {
	if n < 0 || n > maxBits {
		return fmt.Errorf("bits: invalid bit count %d", n)
	}
	if c.pos+n > c.Len() {
		return fmt.Errorf("need %d bits at bit %d of %d: %w", n, c.pos, c.Len(), ErrShortBuffer)
	}
	return nil
}

func (c *Cursor) bit(pos int) uint64 {
	return uint64(c.buf[pos/8]>>uint(7-pos%8)) & 1
}

func (c *Cursor) setBit(pos int, b uint64) {
	shift := uint(7 - pos%8)
	c.buf[pos/8] &^= 1 << shift
	c.buf[pos/8] |= byte(b&1) << shift
}
