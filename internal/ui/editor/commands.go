// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/engine"
	"github.com/jeranaias/linuxblox/internal/flags"
)

// =============================================================================
// MESSAGES
// =============================================================================

// LoadedMsg carries the outcome of Initialize.
type LoadedMsg struct {
	Outcome document.Outcome
}

// SavedMsg carries the outcome of Save.
type SavedMsg struct {
	Outcome document.Outcome
}

// LaunchedMsg carries the result of Launch.
type LaunchedMsg struct {
	Status string
	Err    error
}

// ChangedMsg is sent for every registry change event.
type ChangedMsg struct {
	Change flags.Change
}

// =============================================================================
// COMMANDS
// =============================================================================

// Engine operations block on the filesystem or on process start, so each one
// runs as a tea.Cmd off the update loop.

func initializeCmd(s *engine.Session) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Outcome: s.Initialize()}
	}
}

func saveCmd(s *engine.Session) tea.Cmd {
	return func() tea.Msg {
		return SavedMsg{Outcome: s.Save()}
	}
}

func launchCmd(s *engine.Session) tea.Cmd {
	return func() tea.Msg {
		status, err := s.Launch()
		return LaunchedMsg{Status: status, Err: err}
	}
}

// =============================================================================
// REGISTRY SUBSCRIPTION
// =============================================================================

// changeBuffer bounds queued change events. Events past it are dropped: the
// view always re-reads the registry, so a dropped event loses nothing.
const changeBuffer = 64

// subscribe forwards registry events into a channel the update loop drains.
func subscribe(reg *flags.Registry) (<-chan flags.Change, *flags.Subscription) {
	ch := make(chan flags.Change, changeBuffer)
	sub := reg.Subscribe(func(c flags.Change) {
		select {
		case ch <- c:
		default:
		}
	})
	return ch, sub
}

// waitForChange blocks until the next registry event.
func waitForChange(ch <-chan flags.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return ChangedMsg{Change: c}
	}
}
