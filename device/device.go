/*
DESCRIPTION
  device.go provides Source, an interface that describes a configurable
  source of an H.264 byte stream that can be started and stopped.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides an interface and implementations for stream
// sources that can be started and stopped from which H.264 data can be
// obtained.
package device

import (
	"io"

	"github.com/ausocean/h264fix/fixer/config"
)

// Source describes a configurable source from which an H.264 byte stream
// can be obtained. Source is an io.Reader.
type Source interface {
	io.Reader

	// Name returns the name of the Source.
	Name() string

	// Set allows for configuration of the Source using a Config struct. All,
	// some or none of the fields of the Config struct may be used for
	// configuration by an implementation. An implementation should specify
	// what fields are considered.
	Set(c config.Config) error

	// Start will start the Source; after which the Read method may be called
	// to obtain the data.
	Start() error

	// Stop will stop the Source. From this point Reads will no longer be
	// successful.
	Stop() error

	// IsRunning is used to determine if the Source is running.
	IsRunning() bool
}
