// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package launcher starts external programs detached from linuxblox.
//
// The default target is Sober via flatpak:
//
//	l := launcher.New()
//	err := l.Launch("flatpak", "run", "org.vinegarhq.Sober")
//
// Launch returns as soon as the child is running; linuxblox does not wait
// for it or track its exit.
package launcher
