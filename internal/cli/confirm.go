// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation for commands that overwrite files.
//
// The pattern:
//   1. If --yes is present, proceed without prompting
//   2. If --json mode, require --yes (no interactive prompts in JSON mode)
//   3. If stdin is not a TTY, require --yes (can't prompt)
//   4. Otherwise, show an interactive prompt

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
)

// ErrConfirmationRequired is returned when a prompt is impossible.
var ErrConfirmationRequired = errors.New("confirmation required: use --yes")

// ConfirmationOptions controls RequireConfirmation.
type ConfirmationOptions struct {
	// Yes indicates --yes was passed
	Yes bool
	// JSONMode indicates --json was passed
	JSONMode bool
	// Interactive reports whether a prompt can be shown; defaults to IsTTY.
	Interactive func() bool
}

// RequireConfirmation asks the user to confirm action.
func (rt *Runtime) RequireConfirmation(action string, opts ConfirmationOptions) (bool, error) {
	if opts.Yes {
		return true, nil
	}
	if opts.JSONMode {
		return false, &UsageError{Message: ErrConfirmationRequired.Error() + " in JSON mode"}
	}

	interactive := opts.Interactive
	if interactive == nil {
		interactive = IsTTY
	}
	if !interactive() {
		return false, &UsageError{Message: "stdin is not a terminal; " + ErrConfirmationRequired.Error()}
	}

	fmt.Fprintf(rt.Out, "Are you sure you want to %s? [y/N]: ", action)

	reader := bufio.NewReader(rt.In)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}
