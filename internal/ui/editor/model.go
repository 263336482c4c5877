// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor is the interactive flag editor.
//
// The model never touches the document itself. Every load, save and launch
// goes through the engine session as a tea.Cmd, and the list is redrawn from
// registry change events. Edits are blocked while an operation is running so
// the registry is not mutated under the reconciler or the writer.
package editor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/engine"
	"github.com/jeranaias/linuxblox/internal/flags"
	"github.com/jeranaias/linuxblox/internal/ui/components"
	"github.com/jeranaias/linuxblox/internal/ui/styles"
)

// State is the editor's interaction mode.
type State int

const (
	// StateReady accepts navigation and edits.
	StateReady State = iota
	// StateBusy means a load, save or launch is running.
	StateBusy
	// StateEditing means a value is being typed.
	StateEditing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Status texts shown while an operation runs.
const (
	msgInitializing = "Initializing..."
	msgSaving       = "Saving flags..."
	msgLaunching    = "Launching Roblox via Sober..."
)

// Model is the bubbletea model of the editor.
type Model struct {
	session *engine.Session
	theme   *styles.Theme
	keys    KeyMap
	edit    editKeys
	help    help.Model
	log     *log.Entry

	descs  []flags.Descriptor
	cursor int
	offset int

	state       State
	input       textinput.Model
	editing     string
	spinner     components.Spinner
	status      *components.StatusBar
	dirty       bool
	confirmQuit bool
	showHelp    bool
	quitting    bool

	changes <-chan flags.Change
	sub     *flags.Subscription

	width  int
	height int
}

// Options configures New.
type Options struct {
	Session *engine.Session
	Theme   *styles.Theme
	Logger  *log.Logger
}

// New creates the editor. The first load starts in Init.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New()
		logger.SetLevel(log.PanicLevel)
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256
	input.TextStyle = theme.FlagValueEdit

	m := Model{
		session: opts.Session,
		theme:   theme,
		keys:    DefaultKeyMap(),
		edit:    defaultEditKeys(),
		help:    help.New(),
		log:     logger.WithField("session", opts.Session.ID()),
		input:   input,
		spinner: components.NewSpinner(theme),
		status:  components.NewStatusBar(theme),
		descs:   opts.Session.ListFlags(),
	}
	m.status.Shortcuts = []components.Shortcut{
		{Key: "space", Desc: "toggle"},
		{Key: "enter", Desc: "edit"},
		{Key: "s", Desc: "save"},
		{Key: "p", Desc: "launch"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
	m.changes, m.sub = subscribe(opts.Session.Registry())

	m.state = StateBusy
	m.spinner.Start(msgInitializing)
	m.status.Busy = m.spinner.View()
	return m
}

// Init starts the first load and the registry listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		initializeCmd(m.session),
		waitForChange(m.changes),
		m.spinner.Tick(),
	)
}

// Close stops listening to the registry.
func (m Model) Close() {
	m.sub.Unsubscribe()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current interaction mode.
func (m Model) State() State { return m.state }

// Dirty reports whether there are unsaved changes.
func (m Model) Dirty() bool { return m.dirty }

// Cursor returns the index of the selected flag.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the flag under the cursor.
func (m Model) Selected() (flags.Descriptor, bool) {
	if m.cursor < 0 || m.cursor >= len(m.descs) {
		return flags.Descriptor{}, false
	}
	return m.descs[m.cursor], true
}

// StatusMessage returns the status bar text.
func (m Model) StatusMessage() string { return m.status.Message }

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.status.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		if m.state == StateEditing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.spinner.IsActive() {
			m.status.Busy = m.spinner.View()
		}
		return m, cmd

	case LoadedMsg:
		m.finishOp()
		m.refresh()
		m.dirty = false
		m.status.SetMessage(msg.Outcome.Message(), loadTone(msg.Outcome))
		return m, nil

	case SavedMsg:
		m.finishOp()
		if msg.Outcome.OK() {
			m.dirty = false
			m.status.SetMessage(msg.Outcome.Message(), components.ToneSuccess)
		} else {
			m.status.SetMessage(msg.Outcome.Message(), components.ToneError)
		}
		return m, nil

	case LaunchedMsg:
		m.finishOp()
		if msg.Err != nil {
			m.status.SetMessage(msg.Status, components.ToneError)
		} else {
			m.status.SetMessage(msg.Status, components.ToneSuccess)
		}
		return m, nil

	case ChangedMsg:
		m.refresh()
		if msg.Change.Type == flags.ChangeEnabled || msg.Change.Type == flags.ChangeValue {
			m.dirty = true
		}
		return m, waitForChange(m.changes)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(msg)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageSize())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageSize())
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.descs))
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.descs))
		return m, nil
	}

	if m.state == StateBusy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSelected()
	case key.Matches(msg, m.keys.Edit):
		return m.editSelected()
	case key.Matches(msg, m.keys.Save):
		if !m.session.CanSave() {
			out := document.Outcome{Code: document.PathUnavailable}
			m.status.SetMessage(out.Message(), components.ToneError)
			return m, nil
		}
		return m, m.startOp(msgSaving, saveCmd(m.session))
	case key.Matches(msg, m.keys.Launch):
		return m, m.startOp(msgLaunching, launchCmd(m.session))
	case key.Matches(msg, m.keys.Reload):
		return m, m.startOp(msgInitializing, initializeCmd(m.session))
	}
	return m, nil
}

// quit leaves at once unless there are unsaved changes or an operation is
// running; then the first q only warns. ctrl+c always quits.
func (m Model) quit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	force := msg.Type == tea.KeyCtrlC
	if !force && !m.confirmQuit {
		switch {
		case m.state == StateBusy:
			m.confirmQuit = true
			m.status.SetMessage("An operation is still running. Press q again to quit anyway.", components.ToneWarning)
			return m, nil
		case m.dirty:
			m.confirmQuit = true
			m.status.SetMessage("Unsaved changes. Press s to save or q again to quit.", components.ToneWarning)
			return m, nil
		}
	}
	m.quitting = true
	m.sub.Unsubscribe()
	return m, tea.Quit
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	d, ok := m.Selected()
	if !ok {
		return m, nil
	}
	if err := m.session.SetEnabled(d.Name, !d.Enabled); err != nil {
		m.status.SetMessage(err.Error(), components.ToneError)
		return m, nil
	}
	m.refresh()
	m.dirty = true
	return m, nil
}

// editSelected flips a toggle's value, or opens the text input for an
// input flag.
func (m Model) editSelected() (tea.Model, tea.Cmd) {
	d, ok := m.Selected()
	if !ok {
		return m, nil
	}

	if d.Kind() == flags.KindToggle {
		if err := m.session.SetValue(d.Name, flags.Toggle(!d.Value.Bool)); err != nil {
			m.status.SetMessage(err.Error(), components.ToneError)
			return m, nil
		}
		m.refresh()
		m.dirty = true
		return m, nil
	}

	m.state = StateEditing
	m.editing = d.Name
	m.input.SetValue(d.Value.Text)
	m.input.CursorEnd()
	m.status.SetMessage("Editing "+d.Name+" (enter to apply, esc to cancel)", components.ToneInfo)
	return m, m.input.Focus()
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.edit.Confirm):
		name := m.editing
		m.stopEditing()
		if err := m.session.SetText(name, m.input.Value()); err != nil {
			m.status.SetMessage(err.Error(), components.ToneError)
			return m, nil
		}
		m.refresh()
		m.dirty = true
		m.status.SetMessage("", components.ToneInfo)
		return m, nil

	case key.Matches(msg, m.edit.Cancel):
		m.stopEditing()
		m.status.SetMessage("", components.ToneInfo)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.state = StateReady
	m.editing = ""
	m.input.Blur()
}

// =============================================================================
// OPERATIONS
// =============================================================================

func (m *Model) startOp(text string, op tea.Cmd) tea.Cmd {
	m.state = StateBusy
	m.log.WithField("operation", text).Debug("operation started")
	tick := m.spinner.Start(text)
	m.status.Busy = m.spinner.View()
	return tea.Batch(op, tick)
}

func (m *Model) finishOp() {
	m.state = StateReady
	m.spinner.Stop()
	m.status.Busy = ""
}

func (m *Model) refresh() {
	m.descs = m.session.ListFlags()
	if m.cursor >= len(m.descs) {
		m.cursor = len(m.descs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func loadTone(out document.Outcome) components.Tone {
	switch {
	case out.Code == document.Malformed:
		return components.ToneWarning
	case !out.OK():
		return components.ToneError
	case out.Code == document.Loaded && out.Detail != "":
		return components.ToneWarning
	default:
		return components.ToneInfo
	}
}
