// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestNewPlainTheme(t *testing.T) {
	theme := NewPlainTheme()
	if theme.ColorProfile != termenv.Ascii {
		t.Errorf("ColorProfile = %v, want Ascii", theme.ColorProfile)
	}
	if !theme.RowSelected.GetBold() {
		t.Error("RowSelected should be bold")
	}
	if !theme.Category.GetBold() {
		t.Error("Category should be bold")
	}
}

func TestCheckbox(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	theme := NewPlainTheme()

	if got := theme.Checkbox(true); got != "[x]" {
		t.Errorf("Checkbox(true) = %q, want [x]", got)
	}
	if got := theme.Checkbox(false); got != "[ ]" {
		t.Errorf("Checkbox(false) = %q, want [ ]", got)
	}
}

func TestStatusIndicatorsAreASCII(t *testing.T) {
	for _, s := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Pending,
		StatusIndicators.Dirty,
	} {
		if s == "" {
			t.Error("indicator must not be empty")
		}
		if strings.IndexFunc(s, func(r rune) bool { return r > 127 }) >= 0 {
			t.Errorf("indicator %q is not ASCII", s)
		}
	}
}
