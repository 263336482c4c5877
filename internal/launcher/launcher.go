// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// DefaultCommand and DefaultArgs start Sober through flatpak.
const DefaultCommand = "flatpak"

// DefaultArgs returns the arguments passed to DefaultCommand.
func DefaultArgs() []string {
	return []string{"run", "org.vinegarhq.Sober"}
}

// ErrEmptyCommand is returned when Launch is called without a command.
var ErrEmptyCommand = errors.New("launch command is empty")

// LaunchError describes a failed start.
type LaunchError struct {
	Command string
	Cause   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Command, e.Cause)
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// Process launches real OS processes.
type Process struct {
	// LookPath resolves the command; defaults to exec.LookPath.
	LookPath func(string) (string, error)
	// Env is the child environment; defaults to os.Environ().
	Env []string
}

// New returns a Process launcher with default settings.
func New() *Process {
	return &Process{}
}

// Launch starts command with args in its own process group and releases it
// so it keeps running after linuxblox exits.
func (p *Process) Launch(command string, args ...string) error {
	if command == "" {
		return ErrEmptyCommand
	}

	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(command)
	if err != nil {
		return &LaunchError{Command: command, Cause: err}
	}

	cmd := exec.Command(path, args...)
	cmd.Env = p.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.SysProcAttr = detachedAttr()

	// Don't capture output - let it run independently
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return &LaunchError{Command: command, Cause: err}
	}

	if cmd.Process != nil {
		// Non-fatal: the process is already running
		_ = cmd.Process.Release()
	}
	return nil
}
