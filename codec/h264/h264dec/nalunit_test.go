/*
DESCRIPTION
  nalunit_test.go provides testing for start code and SPS location in
  nalunit.go.

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
	"errors"
	"testing"
)

func TestFindStartCode(t *testing.T) {
	tests := []struct {
		in     []byte
		end    int
		want   int
		wantOK bool
	}{
		{
			in:     []byte{0x01, 0x02, 0x00, 0x00, 0x01, 0x09, 0xf0},
			end:    7,
			want:   5,
			wantOK: true,
		},
		{
			in:     []byte{0x00, 0x00, 0x00, 0x01, 0x67},
			end:    5,
			want:   4,
			wantOK: true,
		},
		{
			in:     []byte{0x00, 0x00, 0x01, 0x67},
			end:    4,
			want:   3,
			wantOK: true,
		},
		{
			// No start code.
			in:     []byte{0x01, 0x02, 0x00, 0x02, 0x00, 0x01, 0x00},
			end:    7,
			wantOK: false,
		},
		{
			// Start code ends the buffer so has nothing after it.
			in:     []byte{0x09, 0x00, 0x00, 0x01},
			end:    4,
			wantOK: false,
		},
		{
			// Start code lies beyond end.
			in:     []byte{0x09, 0x09, 0x00, 0x00, 0x01, 0x67},
			end:    4,
			wantOK: false,
		},
		{
			// end beyond the buffer is clipped.
			in:     []byte{0x00, 0x00, 0x01, 0x68},
			end:    100,
			want:   3,
			wantOK: true,
		},
		{
			in:     nil,
			end:    0,
			wantOK: false,
		},
	}

	for i, test := range tests {
		got, ok := FindStartCode(test.in, test.end)
		if ok != test.wantOK {
			t.Errorf("unexpected found result for test: %d\nGot: %v\nWant: %v\n", i, ok, test.wantOK)
			continue
		}
		if ok && got != test.want {
			t.Errorf("unexpected result for test: %d\nGot: %v\nWant: %v\n", i, got, test.want)
		}
	}
}

func TestFindSPS(t *testing.T) {
	tests := []struct {
		in      []byte
		want    int
		wantErr error
	}{
		{
			in:   []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x1e},
			want: 4,
		},
		{
			// AUD then SPS.
			in:   []byte{0x00, 0x00, 0x01, 0x09, 0xf0, 0x00, 0x00, 0x00, 0x01, 0x27, 0x42},
			want: 9,
		},
		{
			// PPS and IDR only.
			in:      []byte{0x00, 0x00, 0x01, 0x68, 0xce, 0x00, 0x00, 0x01, 0x65, 0x88},
			wantErr: ErrNotFound,
		},
		{
			// SPS header would be the last byte, but no start code is found
			// with a byte after it.
			in:      []byte{0x00, 0x00, 0x01},
			wantErr: ErrNotFound,
		},
	}

	for i, test := range tests {
		got, err := FindSPS(test.in)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("unexpected error for test: %d\nGot: %v\nWant: %v\n", i, err, test.wantErr)
			continue
		}
		if err == nil && got != test.want {
			t.Errorf("unexpected result for test: %d\nGot: %v\nWant: %v\n", i, got, test.want)
		}
	}
}

func TestNALBounds(t *testing.T) {
	tests := []struct {
		in        []byte
		hdr       int
		wantStart int
		wantEnd   int
	}{
		{
			// Lone SPS with four byte start code.
			in:        []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x1e},
			hdr:       4,
			wantStart: 0,
			wantEnd:   8,
		},
		{
			// SPS followed by PPS with four byte start code.
			in:        []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x80, 0x00, 0x00, 0x00, 0x01, 0x68, 0xce},
			hdr:       4,
			wantStart: 0,
			wantEnd:   7,
		},
		{
			// AUD with three byte start code, SPS, then PPS with three byte code.
			in:        []byte{0x00, 0x00, 0x01, 0x09, 0xf0, 0x00, 0x00, 0x01, 0x67, 0x42, 0x80, 0x00, 0x00, 0x01, 0x68},
			hdr:       8,
			wantStart: 5,
			wantEnd:   11,
		},
		{
			// Trailing start code.
			in:        []byte{0x00, 0x00, 0x01, 0x67, 0x42, 0x80, 0x00, 0x00, 0x01},
			hdr:       3,
			wantStart: 0,
			wantEnd:   6,
		},
	}

	for i, test := range tests {
		start, end := NALBounds(test.in, test.hdr)
		if start != test.wantStart || end != test.wantEnd {
			t.Errorf("unexpected bounds for test: %d\nGot: [%d, %d)\nWant: [%d, %d)\n", i, start, end, test.wantStart, test.wantEnd)
		}
	}
}

func TestNALType(t *testing.T) {
	tests := []struct {
		in   byte
		want int
	}{
		{in: 0x67, want: NALTypeSPS},
		{in: 0x27, want: NALTypeSPS},
		{in: 0x68, want: NALTypePPS},
		{in: 0x65, want: NALTypeIDR},
		{in: 0x09, want: NALTypeAccessUnitDelimiter},
		{in: 0x0c, want: NALTypeFillerData},
	}
	for i, test := range tests {
		if got := NALType(test.in); got != test.want {
			t.Errorf("unexpected result for test: %d\nGot: %v\nWant: %v\n", i, got, test.want)
		}
	}
}
