// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package launcher

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunch_EmptyCommand(t *testing.T) {
	assert.ErrorIs(t, New().Launch(""), ErrEmptyCommand)
}

func TestLaunch_NotFound(t *testing.T) {
	p := &Process{LookPath: func(string) (string, error) { return "", exec.ErrNotFound }}

	err := p.Launch("flatpak", DefaultArgs()...)
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)

	var le *LaunchError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "flatpak", le.Command)
}

func TestLaunch_StartsProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a Unix shell builtin")
	}
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("'true' not available")
	}
	require.NoError(t, New().Launch(path))
}

func TestDefaultArgs_Fresh(t *testing.T) {
	a := DefaultArgs()
	a[0] = "changed"
	assert.Equal(t, "run", DefaultArgs()[0])
}
