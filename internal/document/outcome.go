// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"errors"
	"fmt"
)

// Code classifies the result of a load or save.
type Code int

const (
	// Loaded means the file was read and parsed.
	Loaded Code = iota
	// NotFound means no file exists yet; it will be created on save.
	NotFound
	// Empty means the file exists but holds only whitespace.
	Empty
	// PathUnavailable means no document path could be derived.
	PathUnavailable
	// Malformed means the file is not a JSON object. The caller continues
	// with an empty document and overwrites the file on save.
	Malformed
	// AccessDenied means the file could not be opened or written for
	// permission reasons.
	AccessDenied
	// IOFailure covers every other read or write error.
	IOFailure
	// Saved means the document was written.
	Saved
	// Busy means another load or save was already running.
	Busy
)

var codeNames = map[Code]string{
	Loaded:          "loaded",
	NotFound:        "not_found",
	Empty:           "empty",
	PathUnavailable: "path_unavailable",
	Malformed:       "malformed",
	AccessDenied:    "access_denied",
	IOFailure:       "io_failure",
	Saved:           "saved",
	Busy:            "busy",
}

// String returns the snake_case name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Sentinel errors returned by Outcome.Err and Persist.
var (
	ErrPathUnavailable = errors.New("config path unavailable")
	ErrMalformed       = errors.New("config document is malformed")
	ErrAccessDenied    = errors.New("access denied")
	ErrIOFailure       = errors.New("i/o failure")
	ErrBusy            = errors.New("operation already in progress")
)

// Outcome is the result of a load or save. Failures carry a Detail from the
// underlying error.
type Outcome struct {
	Code   Code
	Detail string
	Path   string
}

// OK reports whether the operation left the caller in a normal state.
// NotFound and Empty are normal: the document is simply new.
func (o Outcome) OK() bool {
	switch o.Code {
	case Loaded, NotFound, Empty, Saved:
		return true
	default:
		return false
	}
}

// Err maps failure outcomes to sentinel errors; it is nil when OK.
func (o Outcome) Err() error {
	var base error
	switch o.Code {
	case PathUnavailable:
		base = ErrPathUnavailable
	case Malformed:
		base = ErrMalformed
	case AccessDenied:
		base = ErrAccessDenied
	case IOFailure:
		base = ErrIOFailure
	case Busy:
		base = ErrBusy
	default:
		return nil
	}
	if o.Detail == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, o.Detail)
}

// Message returns text suitable for a status line.
func (o Outcome) Message() string {
	switch o.Code {
	case Loaded:
		if o.Detail != "" {
			return "Sober config loaded, but " + o.Detail + "."
		}
		return "Sober config file loaded successfully."
	case NotFound:
		return "Sober config not found. It will be created on save."
	case Empty:
		return "Sober config is empty."
	case PathUnavailable:
		return "Sober config path unavailable. Set HOME or sober.config_path."
	case Malformed:
		return "Sober config is not valid JSON and will be replaced on save: " + o.Detail
	case AccessDenied:
		return "Permission denied for Sober config: " + o.Detail
	case IOFailure:
		return "Error accessing Sober config: " + o.Detail
	case Saved:
		return "Flags saved successfully to Sober config!"
	case Busy:
		return "Another load or save is still running."
	default:
		return "Unknown result."
	}
}
