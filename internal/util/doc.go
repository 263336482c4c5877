// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by linuxblox packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync and rename
//
// String Utilities:
//   - TruncateWidth: Display-width aware truncation with ellipsis
//   - PadRight: Display-width aware padding for column layouts
//
// # Usage
//
//	// Write files atomically so the target is never half-written
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Fit a description into a table column
//	cell := util.TruncateWidth(desc, 40)
package util
