/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate and Update).

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:     dl,
		LogLevel:   defaultVerbosity,
		InputPath:  defaultInputPath,
		OutputPath: defaultOutputPath,
	}

	got := Config{Logger: dl, LogLevel: 100}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		width, height uint
		wantW, wantH  uint
	}{
		{width: 1280, height: 720, wantW: 1280, wantH: 720},
		{width: 0, height: 0, wantW: 0, wantH: 0},
		{width: 1280, height: 0, wantW: 0, wantH: 0},
		{width: 0, height: 720, wantW: 0, wantH: 0},
		{width: 10000, height: 720, wantW: 0, wantH: 0},
		{width: 1280, height: 10000, wantW: 0, wantH: 0},
	}

	for i, test := range tests {
		c := Config{Logger: &dumbLogger{}, Width: test.width, Height: test.height}
		err := c.Validate()
		if err != nil {
			t.Fatalf("did not expect error: %v", err)
		}
		if c.Width != test.wantW || c.Height != test.wantH {
			t.Errorf("unexpected dimensions for test: %d\nGot: %dx%d\nWant: %dx%d\n", i, c.Width, c.Height, test.wantW, test.wantH)
		}
		if c.Crop() != (test.wantW != 0) {
			t.Errorf("unexpected Crop result for test: %d", i)
		}
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"Height":     "720",
		"InputPath":  "/inputpath",
		"logging":    "Error",
		"LogPath":    "/var/log/h264fix.log",
		"OutputPath": "/outputpath",
		"Pad":        "true",
		"Suppress":   "true",
		"Width":      "1280",
	}

	dl := &dumbLogger{}

	want := Config{
		Logger:     dl,
		Height:     720,
		InputPath:  "/inputpath",
		LogLevel:   logging.Error,
		LogPath:    "/var/log/h264fix.log",
		OutputPath: "/outputpath",
		Pad:        true,
		Suppress:   true,
		Width:      1280,
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestUpdateBadValues(t *testing.T) {
	got := Config{Logger: (*logging.TestLogger)(t), LogLevel: logging.Info}
	got.Update(map[string]string{
		"Width":   "wide",
		"Pad":     "yes",
		"logging": "Verbose",
	})
	if got.Width != 0 || got.Pad || got.LogLevel != logging.Info {
		t.Errorf("unexpected config after bad update: %+v", got)
	}
}
