// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the logrus logger used across linuxblox.
//
// The TUI owns the terminal, so by default logs go to a file in the state
// directory as JSON lines. CLI commands run with --verbose log to stderr in
// text form instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Options selects the log destination and level.
type Options struct {
	// Level is a logrus level name ("debug", "info", "warn", ...).
	Level string
	// File is the log file path. Empty disables file logging.
	File string
	// Stderr logs to stderr in text form instead of the file.
	Stderr bool
}

// New returns a configured logger and a closer for any opened file.
// An invalid level falls back to info.
func New(opts Options) (*log.Logger, io.Closer, error) {
	logger := log.New()

	level, err := log.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	switch {
	case opts.Stderr:
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		return logger, nopCloser{}, nil

	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			logger.SetOutput(io.Discard)
			return logger, nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.SetOutput(io.Discard)
			return logger, nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(f)
		logger.SetFormatter(&log.JSONFormatter{})
		return logger, f, nil

	default:
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
