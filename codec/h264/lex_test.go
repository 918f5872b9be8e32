/*
NAME
  lex_test.go

DESCRIPTION
  lex_test.go provides tests for the lexer in lex.go.

AUTHOR
  Dan Kortschak <dan@ausocean.org>
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h264

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

// chunkWriter records each write as a separate chunk.
type chunkWriter [][]byte

func (w *chunkWriter) Write(b []byte) (int, error) {
	*w = append(*w, append([]byte(nil), b...))
	return len(b), nil
}

var lexTests = []struct {
	name string
	in   []byte
	want [][]byte
}{
	{
		name: "empty",
		in:   nil,
		want: nil,
	},
	{
		name: "access units",
		in: []byte{
			0x00, 0x00, 0x00, 0x01, 0x09, 0xf0, // AUD
			0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0xc0, 0x1e, // SPS
			0x00, 0x00, 0x00, 0x01, 0x68, 0xce, 0x3c, 0x80, // PPS
			0x00, 0x00, 0x01, 0x65, 0x88, 0x84, 0x21, 0xa0, // IDR
			0x00, 0x00, 0x00, 0x01, 0x41, 0x9a, 0x02, // non-IDR
		},
		want: [][]byte{
			{
				0x00, 0x00, 0x00, 0x01, 0x09, 0xf0,
				0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0xc0, 0x1e,
				0x00, 0x00, 0x00, 0x01, 0x68, 0xce, 0x3c, 0x80,
			},
			{0x00, 0x00, 0x01, 0x65, 0x88, 0x84, 0x21, 0xa0},
			{0x00, 0x00, 0x00, 0x01, 0x41, 0x9a, 0x02},
		},
	},
	{
		name: "sei split",
		in: []byte{
			0x00, 0x00, 0x00, 0x01, 0x06, 0x05, 0x01, 0xff, // SEI
			0x00, 0x00, 0x00, 0x01, 0x41, 0x9a, 0x00, 0x02, // non-IDR with zero byte
		},
		want: [][]byte{
			{0x00, 0x00, 0x00, 0x01, 0x06, 0x05, 0x01, 0xff},
			{0x00, 0x00, 0x00, 0x01, 0x41, 0x9a, 0x00, 0x02},
		},
	},
	{
		name: "no split",
		in:   []byte{0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x00, 0x01, 0x09, 0xf0},
		want: [][]byte{
			{0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x00, 0x01, 0x09, 0xf0},
		},
	},
}

func TestLex(t *testing.T) {
	for _, test := range lexTests {
		for _, wrap := range []func(io.Reader) io.Reader{
			func(r io.Reader) io.Reader { return r },
			iotest.OneByteReader,
		} {
			var got chunkWriter
			err := Lex(&got, wrap(bytes.NewReader(test.in)))
			if err != nil {
				t.Errorf("unexpected error for test %s: %v", test.name, err)
				continue
			}
			if !cmp.Equal([][]byte(got), test.want) {
				t.Errorf("unexpected chunks for test %s:\n%s", test.name, cmp.Diff(test.want, [][]byte(got)))
			}
		}
	}
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestLexErrors(t *testing.T) {
	errBroken := errors.New("broken")

	err := Lex(io.Discard, iotest.ErrReader(errBroken))
	if !errors.Is(err, errBroken) {
		t.Errorf("expected read error, got: %v", err)
	}

	err = Lex(errWriter{errBroken}, bytes.NewReader(lexTests[1].in))
	if !errors.Is(err, errBroken) {
		t.Errorf("expected write error, got: %v", err)
	}
}
