// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flags

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFlag is returned when a name is not in the registry.
	ErrUnknownFlag = errors.New("unknown flag")
	// ErrKindMismatch is returned when a value's kind differs from the flag's.
	ErrKindMismatch = errors.New("value kind does not match flag kind")
	// ErrDuplicateFlag is returned when two descriptors share a name.
	ErrDuplicateFlag = errors.New("duplicate flag name")
	// ErrInvalidName is returned for an empty flag name.
	ErrInvalidName = errors.New("invalid flag name")
)

// FlagError ties a registry error to the flag it concerns.
type FlagError struct {
	Name string
	Err  error
}

func (e *FlagError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Name)
}

func (e *FlagError) Unwrap() error {
	return e.Err
}
