/*
DESCRIPTION
  file.go provides an implementation of the Source interface for H.264 byte
  stream files and standard input.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package file provides an implementation of Source for files.
package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ausocean/h264fix/fixer/config"
	"github.com/ausocean/utils/logging"
)

// File is an implementation of the Source interface for a file containing
// an H.264 byte stream. The path config.StdStream selects standard input.
type File struct {
	f         io.ReadCloser
	path      string
	isRunning bool
	log       logging.Logger
	set       bool
	mu        sync.Mutex

	// stdin is the reader used for config.StdStream.
	stdin io.ReadCloser
}

// New returns a new File.
func New(l logging.Logger) *File { return &File{log: l, stdin: os.Stdin} }

// NewWith returns a new File with the path provided i.e. the Set method does
// not need to be called.
func NewWith(l logging.Logger, path string) *File {
	return &File{log: l, path: path, set: true, stdin: os.Stdin}
}

// Name returns the name of the device.
func (m *File) Name() string {
	return "File"
}

// Set sets the File's path to the InputPath field of c.
func (m *File) Set(c config.Config) error {
	if c.InputPath == "" {
		return errors.New("no input path")
	}
	m.path = c.InputPath
	m.set = true
	return nil
}

// Start will open the file at the location of the InputPath field of the
// config struct.
func (m *File) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return errors.New("File has not been set with config")
	}
	if m.path == config.StdStream {
		m.log.Debug("reading from standard input")
		m.f = io.NopCloser(m.stdin)
		m.isRunning = true
		return nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return fmt.Errorf("could not open media file: %w", err)
	}
	m.log.Debug("opened input file", "path", m.path)
	m.f = f
	m.isRunning = true
	return nil
}

// Stop will close the file such that any further reads will fail.
func (m *File) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	if err != nil {
		return err
	}
	m.f = nil
	m.isRunning = false
	return nil
}

// Read implements io.Reader. If start has not been called, or Start has been
// called and Stop has since been called, an error is returned.
func (m *File) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.f == nil {
		return 0, errors.New("file is closed, File not started")
	}
	return m.f.Read(p)
}

// IsRunning is used to determine if the File device is running.
func (m *File) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.f != nil && m.isRunning
}
