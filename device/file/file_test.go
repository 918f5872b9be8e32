/*
DESCRIPTION
  file_test.go provides testing for the File Source.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package file

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/h264fix/device"
	"github.com/ausocean/h264fix/fixer/config"
	"github.com/ausocean/utils/logging"
)

var _ device.Source = (*File)(nil)

var stream = []byte{0x00, 0x00, 0x00, 0x01, 0x09, 0xf0, 0x00, 0x00, 0x00, 0x01, 0x65, 0x88}

func TestIsRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.h264")
	err := os.WriteFile(path, stream, 0o644)
	if err != nil {
		t.Fatalf("could not write test file: %v", err)
	}

	d := New((*logging.TestLogger)(t))

	err = d.Set(config.Config{
		InputPath: path,
	})
	if err != nil {
		t.Fatalf("could not set device: %v", err)
	}

	if d.IsRunning() {
		t.Error("device is running before start")
	}

	err = d.Start()
	if err != nil {
		t.Fatalf("could not start device %v", err)
	}

	if !d.IsRunning() {
		t.Error("device isn't running, when it should be")
	}

	got, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("could not read device: %v", err)
	}
	if !bytes.Equal(got, stream) {
		t.Errorf("unexpected data\nGot: %x\nWant: %x\n", got, stream)
	}

	err = d.Stop()
	if err != nil {
		t.Error(err.Error())
	}

	if d.IsRunning() {
		t.Error("device is running, when it should not be")
	}

	_, err = d.Read(make([]byte, 1))
	if err == nil {
		t.Error("expected error reading from stopped device")
	}
}

func TestStdStream(t *testing.T) {
	d := NewWith((*logging.TestLogger)(t), config.StdStream)
	d.stdin = io.NopCloser(bytes.NewReader(stream))

	err := d.Start()
	if err != nil {
		t.Fatalf("could not start device %v", err)
	}
	got, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("could not read device: %v", err)
	}
	if !bytes.Equal(got, stream) {
		t.Errorf("unexpected data\nGot: %x\nWant: %x\n", got, stream)
	}
	err = d.Stop()
	if err != nil {
		t.Errorf("could not stop device: %v", err)
	}
}

func TestStartErrors(t *testing.T) {
	d := New((*logging.TestLogger)(t))
	if err := d.Start(); err == nil {
		t.Error("expected error starting unset device")
	}

	err := d.Set(config.Config{InputPath: filepath.Join(t.TempDir(), "missing.h264")})
	if err != nil {
		t.Fatalf("could not set device: %v", err)
	}
	if err := d.Start(); err == nil {
		t.Error("expected error opening missing file")
	}

	if err := d.Set(config.Config{}); err == nil {
		t.Error("expected error for empty input path")
	}
}
