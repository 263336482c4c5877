// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components of the flag editor.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderPath  lipgloss.Style

	// ==========================================================================
	// FLAG LIST
	// ==========================================================================

	Category      lipgloss.Style
	Row           lipgloss.Style
	RowSelected   lipgloss.Style
	CheckboxOn    lipgloss.Style
	CheckboxOff   lipgloss.Style
	FlagName      lipgloss.Style
	FlagValue     lipgloss.Style
	FlagValueEdit lipgloss.Style
	Description   lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusText   lipgloss.Style
	Dirty        lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style

	// ==========================================================================
	// OUTCOMES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	MutedStyle   lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// NewPlainTheme creates a theme without terminal detection, for tests and
// --no-color.
func NewPlainTheme() *Theme {
	t := &Theme{IsDark: true, ColorProfile: termenv.Ascii}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderPath = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Flag list
	t.Category = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.Row = lipgloss.NewStyle()

	t.RowSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(Purple).
		Bold(true)

	t.CheckboxOn = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.CheckboxOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FlagName = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.FlagValue = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FlagValueEdit = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.Description = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Dirty = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	// Outcomes
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Amber)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// Checkbox renders an enabled marker with an ASCII shape.
func (t *Theme) Checkbox(enabled bool) string {
	if enabled {
		return t.CheckboxOn.Render("[x]")
	}
	return t.CheckboxOff.Render("[ ]")
}
