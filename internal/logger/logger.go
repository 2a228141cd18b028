/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a levelled logger that can be silenced when the
// resolver is embedded in another tool.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	// Default logs warnings to stderr. Set to io.Discard for silent mode.
	output io.Writer = os.Stderr
	level            = log.WarnLevel
	logger *log.Logger
)

func init() {
	logger = newLogger()
}

func newLogger() *log.Logger {
	return log.NewWithOptions(output, log.Options{
		Prefix: "identify",
		Level:  level,
	})
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	output = w
	logger = newLogger()
}

// SetLevel sets the minimum level by name: debug, info, warn, error.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	level = lvl
	logger.SetLevel(lvl)
	return nil
}

// SetVerbose switches between debug and the default warn level.
func SetVerbose(verbose bool) {
	if verbose {
		level = log.DebugLevel
	} else {
		level = log.WarnLevel
	}
	logger.SetLevel(level)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}
