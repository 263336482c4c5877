// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/linuxblox/internal/ui/styles"
	"github.com/jeranaias/linuxblox/internal/util"
)

// =============================================================================
// STATUS
// =============================================================================

// Tone colors the status message.
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarning
	ToneError
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneInfo:
		return "info"
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneError:
		return "error"
	default:
		return "unknown"
	}
}

// Icon returns an ASCII shape for the tone.
func (t Tone) Icon() string {
	switch t {
	case ToneSuccess:
		return styles.StatusIndicators.Success
	case ToneWarning:
		return styles.StatusIndicators.Warning
	case ToneError:
		return styles.StatusIndicators.Error
	default:
		return ""
	}
}

// Shortcut is one key hint.
type Shortcut struct {
	Key  string
	Desc string
}

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line of the editor.
type StatusBar struct {
	Message   string
	Tone      Tone
	Dirty     bool
	Busy      string // spinner view; replaces the message while set
	Width     int
	Shortcuts []Shortcut

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// SetWidth sets the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetMessage sets the status text and its tone.
func (s *StatusBar) SetMessage(msg string, tone Tone) {
	s.Message = msg
	s.Tone = tone
}

// View renders the status bar: message on the left, shortcuts on the right.
// Shortcuts are dropped first when space runs out, then the message is
// truncated.
func (s *StatusBar) View() string {
	left := s.renderLeft()
	right := s.renderShortcuts()

	if s.Width <= 0 {
		if right == "" {
			return left
		}
		return left + "  " + right
	}

	inner := s.Width - 2 // padding
	if lipgloss.Width(left)+2+lipgloss.Width(right) > inner {
		right = ""
	}
	if lipgloss.Width(left) > inner {
		left = s.renderLeftTruncated(inner)
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) renderLeft() string {
	var parts []string
	if s.Dirty {
		parts = append(parts, s.theme.Dirty.Render(styles.StatusIndicators.Dirty))
	}
	if s.Busy != "" {
		parts = append(parts, s.Busy)
		return strings.Join(parts, " ")
	}
	if icon := s.Tone.Icon(); icon != "" {
		parts = append(parts, s.toneStyle().Render(icon))
	}
	if s.Message != "" {
		parts = append(parts, s.toneStyle().Render(s.Message))
	}
	return strings.Join(parts, " ")
}

// renderLeftTruncated shortens the plain message so the styled result fits.
func (s *StatusBar) renderLeftTruncated(width int) string {
	prefix := ""
	if s.Dirty {
		prefix = s.theme.Dirty.Render(styles.StatusIndicators.Dirty) + " "
	}
	if s.Busy != "" {
		return prefix + s.Busy
	}
	if icon := s.Tone.Icon(); icon != "" {
		prefix += s.toneStyle().Render(icon) + " "
	}
	room := width - lipgloss.Width(prefix)
	if room < 1 {
		return prefix
	}
	return prefix + s.toneStyle().Render(util.TruncateWidth(s.Message, room))
}

func (s *StatusBar) renderShortcuts() string {
	parts := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}

func (s *StatusBar) toneStyle() lipgloss.Style {
	switch s.Tone {
	case ToneSuccess:
		return s.theme.SuccessStyle
	case ToneWarning:
		return s.theme.WarningStyle
	case ToneError:
		return s.theme.ErrorStyle
	default:
		return s.theme.StatusText
	}
}
