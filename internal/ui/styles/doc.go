// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles holds the colors and lipgloss styles of the flag editor.
//
// Colors are lipgloss.AdaptiveColor values so the editor reads on light
// and dark terminals. State is never shown by color alone: checkboxes,
// StatusIndicators and the dirty marker carry the same information in text.
//
// Usage:
//
//	theme := styles.NewTheme()
//	row := theme.Row.Render(name)
package styles
