// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine ties the flag registry to the Sober config document.
//
// A Session owns everything one run of linuxblox needs: the document path,
// the registry, the launcher and an optional save journal. There is no
// package-level state.
//
// # Control Flow
//
//	Initialize: Load -> Apply
//	mutations:  SetEnabled / SetValue / SetText (registry emits events)
//	Save:       Load (fresh) -> Render -> Persist
//
// Only one Initialize or Save runs at a time; a second call while one is
// in flight returns a Busy outcome.
package engine
