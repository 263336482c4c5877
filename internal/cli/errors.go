// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for linuxblox commands.
//
// Command handlers always return errors and never print and swallow them.
// main decides how to display them and which exit code to use.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/linuxblox/internal/config"
	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/flags"
	"github.com/jeranaias/linuxblox/internal/history"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates the Sober config or settings could not be used
	ExitConfigError = 3
	// ExitPermissionError indicates a file could not be read or written
	ExitPermissionError = 4
	// ExitNotFoundError indicates a flag or snapshot was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "flags", "history")
	Action  string // Action being performed (e.g., "enable", "restore")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError represents invalid arguments.
type UsageError struct {
	Message string
	Usage   string // Correct usage line (optional)
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s\nUsage: %s", e.Message, e.Usage)
	}
	return e.Message
}

// StatusError is an error whose message was written for display as-is.
type StatusError struct {
	Status string
	Err    error
}

func (e *StatusError) Error() string {
	return e.Status
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// OutcomeError carries a failed load or save outcome.
type OutcomeError struct {
	Outcome document.Outcome
}

func (e *OutcomeError) Error() string {
	return e.Outcome.Message()
}

func (e *OutcomeError) Unwrap() error {
	return e.Outcome.Err()
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// ErrMissingArgument creates a usage error for a missing argument.
func ErrMissingArgument(argName, usage string) error {
	return &UsageError{
		Message: fmt.Sprintf("missing required argument: %s", argName),
		Usage:   usage,
	}
}

// ErrUnknownSubcommand creates a usage error for an unknown subcommand.
func ErrUnknownSubcommand(command, sub string) error {
	return &UsageError{Message: fmt.Sprintf("unknown %s subcommand: %s", command, sub)}
}

// outcomeErr returns nil for OK outcomes.
func outcomeErr(out document.Outcome) error {
	if out.OK() {
		return nil
	}
	return &OutcomeError{Outcome: out}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err in a consistent format. In JSON mode it writes a
// JSON error response instead.
func DisplayError(w io.Writer, command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		resp := NewJSONErrorResponse(command, err)
		resp.ErrorType = errorType(err)
		resp.Print(w)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

func errorType(err error) string {
	var usage *UsageError
	var outcome *OutcomeError
	var command *CommandError
	switch {
	case errors.As(err, &usage):
		return "usage_error"
	case errors.As(err, &outcome):
		return outcome.Outcome.Code.String()
	case errors.As(err, &command):
		return "command_error"
	default:
		return "generic_error"
	}
}

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}

	var invalid config.ValidateErrors
	if errors.As(err, &invalid) {
		return ExitConfigError
	}

	switch {
	case errors.Is(err, flags.ErrUnknownFlag),
		errors.Is(err, history.ErrNotFound):
		return ExitNotFoundError
	case errors.Is(err, flags.ErrKindMismatch),
		errors.Is(err, history.ErrAmbiguous):
		return ExitUsageError
	case errors.Is(err, document.ErrAccessDenied):
		return ExitPermissionError
	case errors.Is(err, document.ErrPathUnavailable),
		errors.Is(err, document.ErrMalformed):
		return ExitConfigError
	}

	return ExitGeneralError
}

// IsUsageError reports whether err is a usage error.
func IsUsageError(err error) bool {
	var e *UsageError
	return errors.As(err, &e)
}
