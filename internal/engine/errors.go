// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "errors"

// ErrNoLauncher is returned by Launch when no command is configured.
var ErrNoLauncher = errors.New("no launcher configured")
