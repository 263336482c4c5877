// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/linuxblox/internal/flags"
	"github.com/jeranaias/linuxblox/internal/util"
)

const (
	// headerHeight is the title line plus one blank line.
	headerHeight = 2
	// valueWidth is the column reserved for values.
	valueWidth = 10
)

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	lines := m.renderList()
	start, end := m.visibleRange(len(lines))
	visible := lines[start:end]
	if h := m.listHeight(); h > 0 {
		for len(visible) < h {
			visible = append(visible, "")
		}
	}
	b.WriteString(strings.Join(visible, "\n"))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
		b.WriteString("\n")
	}
	b.WriteString(m.status.View())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("linuxblox") + " " + m.theme.MutedStyle.Render("Sober FFlag Editor")
	path := m.session.Path()
	if path == "" {
		path = "(no config path)"
	}
	if m.width > 0 {
		room := m.width - lipgloss.Width(title) - 4
		path = util.TruncateWidth(path, room)
	}
	header := title
	if path != "" {
		header += "  " + m.theme.HeaderPath.Render(path)
	}
	if m.width > 0 {
		return m.theme.Header.Width(m.width).Render(header)
	}
	return m.theme.Header.Render(header)
}

// renderList returns one string per screen line: category headers, blank
// separators and flag rows.
func (m Model) renderList() []string {
	nameWidth := 0
	for _, d := range m.descs {
		if w := util.StringWidth(d.Name); w > nameWidth {
			nameWidth = w
		}
	}

	lines := make([]string, 0, len(m.descs)+12)
	current := flags.Category(-1)
	for i, d := range m.descs {
		if d.Category != current {
			if current != flags.Category(-1) {
				lines = append(lines, "")
			}
			current = d.Category
			lines = append(lines, m.theme.Category.Render(current.String()))
		}
		lines = append(lines, m.renderRow(i, d, nameWidth))
	}
	return lines
}

func (m Model) renderRow(i int, d flags.Descriptor, nameWidth int) string {
	selected := i == m.cursor
	editing := m.state == StateEditing && d.Name == m.editing

	marker := "  "
	if selected {
		marker = "> "
	}
	checkbox := "[ ]"
	if d.Enabled {
		checkbox = "[x]"
	}
	name := util.PadRight(d.Name, nameWidth)

	value := util.PadRight(d.Value.String(), valueWidth)
	if editing {
		value = m.input.View()
	}

	fixed := util.StringWidth(marker) + util.StringWidth(checkbox) + 1 + nameWidth + 2 + valueWidth + 2
	desc := ""
	if m.width <= 0 {
		desc = d.Description
	} else if room := m.width - fixed; room > 10 {
		desc = util.TruncateWidth(d.Description, room)
	}

	if selected && !editing {
		line := marker + checkbox + " " + name + "  " + value
		if desc != "" {
			line += "  " + desc
		}
		return m.theme.RowSelected.Render(line)
	}

	line := marker + m.theme.Checkbox(d.Enabled) + " " + m.theme.FlagName.Render(name) + "  "
	if editing {
		line += value
	} else {
		line += m.theme.FlagValue.Render(value)
	}
	if desc != "" && !editing {
		line += "  " + m.theme.Description.Render(desc)
	}
	return m.theme.Row.Render(line)
}

// =============================================================================
// SCROLLING
// =============================================================================

// lineOf returns the screen line of flag i within renderList's output.
func (m Model) lineOf(i int) int {
	line := 0
	current := flags.Category(-1)
	for j, d := range m.descs {
		if d.Category != current {
			if current != flags.Category(-1) {
				line++
			}
			current = d.Category
			line++
		}
		if j == i {
			return line
		}
		line++
	}
	return line
}

// listHeight is the number of list lines that fit, or 0 before the first
// WindowSizeMsg.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	footer := 1
	if m.showHelp {
		footer += lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp()))
	}
	h := m.height - headerHeight - footer
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) visibleRange(total int) (int, int) {
	h := m.listHeight()
	if h == 0 || total <= h {
		return 0, total
	}
	start := m.offset
	if start > total-h {
		start = total - h
	}
	if start < 0 {
		start = 0
	}
	return start, start + h
}

func (m *Model) clampScroll() {
	h := m.listHeight()
	if h == 0 {
		m.offset = 0
		return
	}
	line := m.lineOf(m.cursor)
	// Keep the category header above the first flag visible.
	if m.cursor == 0 {
		line = 0
	}
	if line < m.offset {
		m.offset = line
	}
	if line >= m.offset+h {
		m.offset = line - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.descs) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.descs) {
		m.cursor = len(m.descs) - 1
	}
	m.clampScroll()
}

func (m Model) pageSize() int {
	if h := m.listHeight(); h > 2 {
		return h - 2
	}
	return 1
}
