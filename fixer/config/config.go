/*
NAME
  config.go

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for the H.264 fixer.
package config

import "github.com/ausocean/utils/logging"

// StdStream is the path used to select standard input or standard output.
const StdStream = "-"

// Config provides parameters relevant to a fixer instance. Default values for
// these fields are defined in variables.go.
type Config struct {
	// Logger holds an implementation of the Logger interface. It must be set
	// before calling Update or Validate.
	Logger logging.Logger

	// LogLevel is the logging verbosity level.
	// Valid values are defined by enums from the logging package: logging.Debug,
	// logging.Info, logging.Warning logging.Error, logging.Fatal.
	LogLevel int8

	// LogPath is the path of the rotated log file. No log file is written if
	// LogPath is empty.
	LogPath string

	InputPath  string // Path of the H.264 byte stream to read, or StdStream.
	OutputPath string // Path to write the fixed byte stream to, or StdStream.

	// Width and Height are the true dimensions of the encoded picture in
	// luma samples. The SPS cropping is rewritten so that decoders output
	// pictures of these dimensions. The SPS is left as is if either is zero.
	Width  uint
	Height uint

	// Pad enables padding of each access unit to a multiple of 8 bytes with
	// a filler data NAL unit.
	Pad bool

	Suppress bool // Holds logger suppression state.
}

// Crop returns true if SPS cropping is to be rewritten.
func (c *Config) Crop() bool { return c.Width != 0 && c.Height != 0 }

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values and converting into correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
