// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build unix

package cli

import "golang.org/x/sys/unix"

// writable asks the kernel whether the current user may write path.
func writable(path string) error {
	return unix.Access(path, unix.W_OK)
}
