// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jeranaias/linuxblox/internal/engine"
	"github.com/jeranaias/linuxblox/internal/flags"
	"github.com/jeranaias/linuxblox/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeLauncher struct {
	command string
	err     error
}

func (f *fakeLauncher) Launch(command string, args ...string) error {
	f.command = command
	return f.err
}

func newTestModel(t *testing.T, path string, l *fakeLauncher) (Model, *engine.Session) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	session := engine.New(engine.Options{
		Path:          path,
		Launcher:      l,
		LaunchCommand: "flatpak",
		LaunchArgs:    []string{"run", "org.vinegarhq.Sober"},
	})
	m := New(Options{Session: session, Theme: styles.NewPlainTheme()})
	t.Cleanup(m.Close)
	return m, session
}

// loaded runs the initial load synchronously.
func loaded(t *testing.T, m Model, s *engine.Session) Model {
	t.Helper()
	return update(m, initializeCmd(s)())
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func mustGet(t *testing.T, s *engine.Session, name string) flags.Descriptor {
	t.Helper()
	d, err := s.Registry().Get(name)
	require.NoError(t, err)
	return d
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestNew_StartsLoading(t *testing.T) {
	m, _ := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})

	assert.Equal(t, StateBusy, m.State())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), msgInitializing)
}

func TestLoaded_ShowsOutcome(t *testing.T) {
	dir := t.TempDir()
	m, s := newTestModel(t, filepath.Join(dir, "config.json"), &fakeLauncher{})

	m = loaded(t, m, s)
	assert.Equal(t, StateReady, m.State())
	assert.False(t, m.Dirty())
	assert.Equal(t, "Sober config not found. It will be created on save.", m.StatusMessage())
}

func TestLoaded_ReconcilesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fflags":{"FFlagDebugDisplayFPS":"TRUE"}}`), 0o644))
	m, s := newTestModel(t, path, &fakeLauncher{})

	m = loaded(t, m, s)
	assert.Equal(t, "Sober config file loaded successfully.", m.StatusMessage())
	assert.True(t, mustGet(t, s, "FFlagDebugDisplayFPS").Enabled)
	assert.False(t, mustGet(t, s, "DFIntTaskSchedulerTargetFps").Enabled)
	assert.Contains(t, m.View(), "[x] FFlagDebugDisplayFPS")
}

func TestLoaded_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	m, s := newTestModel(t, path, &fakeLauncher{})

	m = loaded(t, m, s)
	assert.Equal(t, StateReady, m.State())
	assert.Contains(t, m.StatusMessage(), "not valid JSON")
	assert.Contains(t, m.View(), "[!]")
}

// =============================================================================
// EDITING
// =============================================================================

func TestToggle(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)

	m, _ = press(m, keyDown)
	m, _ = press(m, keyDown)
	sel, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "FFlagDebugGraphicsPreferOpenGL", sel.Name)
	require.False(t, sel.Enabled)

	m, _ = press(m, keySpace)
	assert.True(t, mustGet(t, s, sel.Name).Enabled)
	assert.True(t, m.Dirty())
	assert.Contains(t, m.View(), "> [x] FFlagDebugGraphicsPreferOpenGL")

	m, _ = press(m, keySpace)
	assert.False(t, mustGet(t, s, sel.Name).Enabled)
}

func TestEdit_InputFlag(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)

	sel, _ := m.Selected()
	require.Equal(t, "DFIntTaskSchedulerTargetFps", sel.Name)

	m, _ = press(m, keyEnter)
	require.Equal(t, StateEditing, m.State())

	// While editing, letters and digits go to the input.
	for range "144" {
		m, _ = press(m, keyBack)
	}
	m, _ = press(m, runes("240"))
	assert.Equal(t, StateEditing, m.State())

	m, _ = press(m, keyEnter)
	assert.Equal(t, StateReady, m.State())
	assert.Equal(t, "240", mustGet(t, s, sel.Name).Value.Text)
	assert.True(t, m.Dirty())
}

func TestEdit_Cancel(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)

	m, _ = press(m, keyEnter)
	m, _ = press(m, runes("9"))
	m, _ = press(m, keyEsc)

	assert.Equal(t, StateReady, m.State())
	assert.Equal(t, "144", mustGet(t, s, "DFIntTaskSchedulerTargetFps").Value.Text)
	assert.False(t, m.Dirty())
}

func TestEdit_ToggleFlagFlipsValue(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)

	m, _ = press(m, keyDown)
	sel, _ := m.Selected()
	require.Equal(t, flags.KindToggle, sel.Kind())

	m, _ = press(m, keyEnter)
	assert.Equal(t, StateReady, m.State())
	assert.Equal(t, !sel.Value.Bool, mustGet(t, s, sel.Name).Value.Bool)
	assert.True(t, m.Dirty())
}

// =============================================================================
// OPERATIONS
// =============================================================================

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sober", "config.json")
	m, s := newTestModel(t, path, &fakeLauncher{})
	m = loaded(t, m, s)

	m, _ = press(m, keyDown)
	m, _ = press(m, keyDown)
	m, _ = press(m, keySpace)
	require.True(t, m.Dirty())

	m, cmd := press(m, runes("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, StateBusy, m.State())
	assert.Contains(t, m.View(), msgSaving)

	// Edits are blocked while the save runs.
	before := mustGet(t, s, "FFlagDebugGraphicsPreferOpenGL").Enabled
	m, _ = press(m, keySpace)
	assert.Equal(t, before, mustGet(t, s, "FFlagDebugGraphicsPreferOpenGL").Enabled)

	m = update(m, saveCmd(s)())
	assert.Equal(t, StateReady, m.State())
	assert.False(t, m.Dirty())
	assert.Equal(t, "Flags saved successfully to Sober config!", m.StatusMessage())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, gjson.True, gjson.GetBytes(data, "fflags.FFlagDebugGraphicsPreferOpenGL").Type)
}

func TestSave_NoPath(t *testing.T) {
	m, s := newTestModel(t, "", &fakeLauncher{})
	m = loaded(t, m, s)

	m, cmd := press(m, runes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, StateReady, m.State())
	assert.Contains(t, m.StatusMessage(), "path unavailable")
}

func TestSave_Failure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the save fail.
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.Mkdir(path, 0o755))
	m, s := newTestModel(t, path, &fakeLauncher{})
	m = loaded(t, m, s)

	m = update(m, saveCmd(s)())
	assert.Equal(t, StateReady, m.State())
	assert.True(t, strings.HasPrefix(m.StatusMessage(), "Error accessing Sober config"), m.StatusMessage())
	assert.Contains(t, m.View(), "[X]")
}

func TestLaunch(t *testing.T) {
	l := &fakeLauncher{}
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), l)
	m = loaded(t, m, s)

	m, cmd := press(m, runes("p"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), msgLaunching)

	m = update(m, launchCmd(s)())
	assert.Equal(t, "flatpak", l.command)
	assert.Equal(t, "Roblox launched via Sober.", m.StatusMessage())
	assert.Contains(t, m.View(), "[OK]")
}

func TestLaunch_Failure(t *testing.T) {
	l := &fakeLauncher{err: errors.New("not installed")}
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), l)
	m = loaded(t, m, s)

	m = update(m, launchCmd(s)())
	assert.Equal(t, "Launch failed. Is 'flatpak' installed & Sober available? Error: not installed", m.StatusMessage())
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m, s := newTestModel(t, path, &fakeLauncher{})
	m = loaded(t, m, s)

	require.NoError(t, os.WriteFile(path, []byte(`{"fflags":{"FFlagDebugDisplayFPS":true}}`), 0o644))
	m, cmd := press(m, runes("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, StateBusy, m.State())

	m = update(m, initializeCmd(s)())
	assert.Equal(t, StateReady, m.State())
	assert.True(t, mustGet(t, s, "FFlagDebugDisplayFPS").Enabled)
}

// =============================================================================
// REGISTRY EVENTS
// =============================================================================

func TestChangedMsg(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)

	require.NoError(t, s.SetEnabled("FFlagDebugDisplayFPS", true))
	msg := waitForChange(m.changes)()
	changed, ok := msg.(ChangedMsg)
	require.True(t, ok)
	assert.Equal(t, flags.ChangeEnabled, changed.Change.Type)
	assert.Equal(t, "FFlagDebugDisplayFPS", changed.Change.Name)

	next, cmd := m.Update(changed)
	m = next.(Model)
	assert.NotNil(t, cmd, "the listener is re-armed")
	assert.True(t, m.Dirty())
	assert.Contains(t, m.View(), "[x] FFlagDebugDisplayFPS")

	next, _ = m.Update(ChangedMsg{Change: flags.Change{Type: flags.ChangeReconciled}})
	assert.True(t, next.(Model).Dirty())
}

// =============================================================================
// QUIT
// =============================================================================

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestQuit(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)

	_, cmd := press(m, runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestQuit_ConfirmsUnsavedChanges(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)
	m, _ = press(m, keySpace)

	m, cmd := press(m, runes("q"))
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.StatusMessage(), "Unsaved changes")

	// Any other key resets the confirmation.
	m, _ = press(m, keyDown)
	m, cmd = press(m, runes("q"))
	assert.False(t, isQuit(cmd))

	m, cmd = press(m, runes("q"))
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
}

func TestQuit_CtrlCAlwaysQuits(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)
	m, _ = press(m, keySpace)

	_, cmd := press(m, keyCtrlC)
	assert.True(t, isQuit(cmd))
}

// =============================================================================
// VIEW
// =============================================================================

func TestView_GroupsByCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m, s := newTestModel(t, path, &fakeLauncher{})
	m = loaded(t, m, s)

	view := m.View()
	assert.Contains(t, view, "linuxblox")
	assert.Contains(t, view, path)
	assert.Contains(t, view, "> [x] DFIntTaskSchedulerTargetFps")

	order := []string{"Core", "Rendering Backend", "Lighting Technology", "Graphics Quality", "Menu & UX", "Telemetry & UI"}
	last := -1
	for _, c := range order {
		i := strings.Index(view, "\n"+c+"\n")
		require.GreaterOrEqual(t, i, 0, "category %s", c)
		assert.Greater(t, i, last, "category %s out of order", c)
		last = i
	}
}

func TestView_ScrollsToCursor(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 8})

	view := m.View()
	assert.Contains(t, view, "DFIntTaskSchedulerTargetFps")
	assert.NotContains(t, view, "FFlagDebugDisableTelemetryV2Event")
	assert.Equal(t, 8, lipgloss.Height(view))

	m, _ = press(m, runes("G"))
	view = m.View()
	assert.Contains(t, view, "> [ ] FFlagDebugDisableTelemetryV2Event")
	assert.NotContains(t, view, "DFIntTaskSchedulerTargetFps")
	assert.Equal(t, 8, lipgloss.Height(view))

	m, _ = press(m, runes("g"))
	assert.Equal(t, 0, m.Cursor())
	assert.Contains(t, m.View(), "Core")
}

func TestView_Help(t *testing.T) {
	m, s := newTestModel(t, filepath.Join(t.TempDir(), "config.json"), &fakeLauncher{})
	m = loaded(t, m, s)

	m, _ = press(m, runes("?"))
	assert.Contains(t, m.View(), "launch Roblox")
	m, _ = press(m, runes("?"))
	assert.NotContains(t, m.View(), "launch Roblox")
}
