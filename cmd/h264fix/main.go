/*
DESCRIPTION
  h264fix reads an H.264 byte stream from an encoder that reports macroblock
  aligned picture dimensions, rewrites the frame cropping of each SPS so that
  decoders output pictures of the true dimensions, and optionally pads each
  access unit to an 8 byte boundary with filler data NAL units.

  Specify the input file with the in flag, and the output file with the out
  flag. Either may be - for standard input or output.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h264fix is a command line front end for the fixer package.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/h264fix/device/file"
	"github.com/ausocean/h264fix/fixer"
	"github.com/ausocean/h264fix/fixer/config"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logMaxSize   = 50 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	var (
		inPtr       = flag.String("in", config.StdStream, "H.264 byte stream input file, - for standard input")
		outPtr      = flag.String("out", config.StdStream, "output file, - for standard output")
		widthPtr    = flag.Uint("width", 0, "true picture width in pixels")
		heightPtr   = flag.Uint("height", 0, "true picture height in pixels")
		padPtr      = flag.Bool("pad", false, "pad access units to 8 bytes with filler NAL units")
		logLevelPtr = flag.String("loglevel", "Info", "log level: Debug, Info, Warning, Error or Fatal")
		logPathPtr  = flag.String("logpath", "", "rotated log file path, logs only go to standard error if unset")
		showVersion = flag.Bool("version", false, "show version")
	)
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var logOut io.Writer = os.Stderr
	if *logPathPtr != "" {
		// Create lumberjack logger to handle logging to file.
		fileLog := &lumberjack.Logger{
			Filename:   *logPathPtr,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		}
		defer fileLog.Close()
		logOut = io.MultiWriter(os.Stderr, fileLog)
	}
	log := logging.New(logVerbosity, logOut, logSuppress)

	cfg := config.Config{Logger: log}
	cfg.Update(map[string]string{
		config.KeyInputPath:  *inPtr,
		config.KeyOutputPath: *outPtr,
		config.KeyWidth:      strconv.FormatUint(uint64(*widthPtr), 10),
		config.KeyHeight:     strconv.FormatUint(uint64(*heightPtr), 10),
		config.KeyPad:        strconv.FormatBool(*padPtr),
		config.KeyLogging:    *logLevelPtr,
		config.KeyLogPath:    *logPathPtr,
	})
	err := cfg.Validate()
	if err != nil {
		log.Fatal("invalid config", "error", err.Error())
	}
	log.SetLevel(cfg.LogLevel)
	log.Info("starting h264fix", "version", version, "width", cfg.Width, "height", cfg.Height, "pad", cfg.Pad)

	src := file.New(log)
	err = src.Set(cfg)
	if err != nil {
		log.Fatal("could not set input", "error", err.Error())
	}
	err = src.Start()
	if err != nil {
		log.Fatal("could not start input", "error", err.Error())
	}
	defer src.Stop()

	dst, err := output(cfg.OutputPath)
	if err != nil {
		log.Fatal("could not open output", "error", err.Error())
	}

	_, err = fixer.Run(cfg, src, dst)
	if err != nil {
		log.Error("could not fix stream", "error", err.Error())
	}
	if cerr := dst.Close(); cerr != nil {
		log.Error("could not close output", "error", cerr.Error())
	}
	if err != nil {
		os.Exit(1)
	}
}

// output returns the destination for the fixed stream at path.
func output(path string) (io.WriteCloser, error) {
	if path == config.StdStream {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
