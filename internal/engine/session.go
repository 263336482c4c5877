// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/flags"
)

// Launcher starts an external program and returns once it is running.
type Launcher interface {
	Launch(command string, args ...string) error
}

// Journal keeps copies of the document as it was before each save.
type Journal interface {
	Record(sessionID, path string, content []byte, reason string) error
}

// Options configures a Session. Only Path is needed for load and save.
type Options struct {
	// Path is the absolute document path; empty means PathUnavailable.
	Path string
	// FlagsKey defaults to document.DefaultFlagsKey.
	FlagsKey string
	// Render controls how the flags object is rebuilt.
	Render document.RenderOptions
	// Registry defaults to the built-in catalog.
	Registry *flags.Registry

	Launcher      Launcher
	LaunchCommand string
	LaunchArgs    []string

	// Journal is optional.
	Journal Journal
	// Logger defaults to a logger that discards output.
	Logger *log.Logger
}

// Session is the engine boundary used by the CLI and the TUI.
type Session struct {
	id       string
	path     string
	key      string
	render   document.RenderOptions
	registry *flags.Registry

	launcher   Launcher
	launchCmd  string
	launchArgs []string
	journal    Journal

	log *log.Entry

	// inflight serializes Initialize and Save.
	inflight sync.Mutex
}

// New creates a session.
func New(opts Options) *Session {
	key := opts.FlagsKey
	if key == "" {
		key = document.DefaultFlagsKey
	}
	reg := opts.Registry
	if reg == nil {
		reg = flags.MustDefault()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New()
		logger.SetOutput(io.Discard)
	}

	id := uuid.NewString()
	return &Session{
		id:         id,
		path:       opts.Path,
		key:        key,
		render:     opts.Render,
		registry:   reg,
		launcher:   opts.Launcher,
		launchCmd:  opts.LaunchCommand,
		launchArgs: append([]string(nil), opts.LaunchArgs...),
		journal:    opts.Journal,
		log:        logger.WithField("session", id),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Path returns the document path, possibly empty.
func (s *Session) Path() string { return s.path }

// FlagsKey returns the top-level key the flags live under.
func (s *Session) FlagsKey() string { return s.key }

// Registry exposes the live registry, mainly for subscribing to changes.
func (s *Session) Registry() *flags.Registry { return s.registry }

// CanSave reports whether a document path is known.
func (s *Session) CanSave() bool { return strings.TrimSpace(s.path) != "" }

// ListFlags returns a snapshot of all descriptors.
func (s *Session) ListFlags() []flags.Descriptor {
	return s.registry.List()
}

// SetEnabled changes whether a flag is written on the next save.
func (s *Session) SetEnabled(name string, enabled bool) error {
	if err := s.registry.SetEnabled(name, enabled); err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"flag": name, "enabled": enabled}).Debug("flag toggled")
	return nil
}

// SetValue replaces a flag's value.
func (s *Session) SetValue(name string, v flags.Value) error {
	if err := s.registry.SetValue(name, v); err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"flag": name, "value": v.String()}).Debug("flag value set")
	return nil
}

// SetText decodes raw by the flag's kind and stores it.
func (s *Session) SetText(name, raw string) error {
	if err := s.registry.SetText(name, raw); err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"flag": name, "value": raw}).Debug("flag value set")
	return nil
}

// Initialize loads the document and reconciles the registry with it.
func (s *Session) Initialize() document.Outcome {
	if !s.inflight.TryLock() {
		return document.Outcome{Code: document.Busy, Path: s.path}
	}
	defer s.inflight.Unlock()

	doc, out := document.Load(s.path)
	entry := s.log.WithFields(log.Fields{"path": s.path, "outcome": out.Code.String()})

	if out.Code == document.Loaded {
		if !Apply(doc, s.key, s.registry) {
			out.Detail = fmt.Sprintf("no '%s' section found", s.key)
		}
	}

	switch out.Code {
	case document.Loaded, document.NotFound, document.Empty:
		entry.Info("config loaded")
	case document.Malformed:
		entry.WithField("detail", out.Detail).Warn("config is malformed; continuing with an empty document")
	default:
		entry.WithField("detail", out.Detail).Error("config load failed")
	}
	return out
}

// Save re-reads the document, replaces its flags object with the registry's
// current state and writes it back. The fresh read keeps edits made by
// other programs since Initialize.
func (s *Session) Save() document.Outcome {
	if !s.inflight.TryLock() {
		return document.Outcome{Code: document.Busy, Path: s.path}
	}
	defer s.inflight.Unlock()

	entry := s.log.WithField("path", s.path)

	doc, loaded := document.Load(s.path)
	switch loaded.Code {
	case document.PathUnavailable, document.AccessDenied, document.IOFailure:
		entry.WithFields(log.Fields{"outcome": loaded.Code.String(), "detail": loaded.Detail}).Error("save aborted: could not read current config")
		return loaded
	case document.Malformed:
		entry.WithField("detail", loaded.Detail).Warn("overwriting malformed config")
	}

	next, err := document.Render(doc, s.key, s.registry.List(), s.render)
	if err != nil {
		entry.WithError(err).Error("render failed")
		return document.Outcome{Code: document.IOFailure, Detail: err.Error(), Path: s.path}
	}

	s.snapshot(entry, loaded.Code)

	out := document.SaveOutcome(s.path, document.Persist(s.path, next))
	if out.OK() {
		entry.WithField("enabled", countEnabled(s.registry.List())).Info("config saved")
	} else {
		entry.WithFields(log.Fields{"outcome": out.Code.String(), "detail": out.Detail}).Error("config save failed")
	}
	return out
}

// snapshot journals the bytes currently on disk. Journal failures are
// logged and never block the save.
func (s *Session) snapshot(entry *log.Entry, code document.Code) {
	if s.journal == nil || (code != document.Loaded && code != document.Malformed) {
		return
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		entry.WithError(err).Warn("could not snapshot config before save")
		return
	}
	reason := "save"
	if code == document.Malformed {
		reason = "save-over-malformed"
	}
	if err := s.journal.Record(s.id, s.path, content, reason); err != nil {
		entry.WithError(err).Warn("could not journal config before save")
	}
}

// Launch starts the configured program. The returned status is meant for
// direct display; err is non-nil when the program could not be started.
func (s *Session) Launch() (string, error) {
	if s.launcher == nil || s.launchCmd == "" {
		return "Launch failed. No launch command configured.", ErrNoLauncher
	}
	entry := s.log.WithFields(log.Fields{"command": s.launchCmd, "args": strings.Join(s.launchArgs, " ")})
	if err := s.launcher.Launch(s.launchCmd, s.launchArgs...); err != nil {
		entry.WithError(err).Error("launch failed")
		return fmt.Sprintf("Launch failed. Is '%s' installed & Sober available? Error: %v", s.launchCmd, err), err
	}
	entry.Info("launched")
	return "Roblox launched via Sober.", nil
}

func countEnabled(descs []flags.Descriptor) int {
	n := 0
	for _, d := range descs {
		if d.Enabled {
			n++
		}
	}
	return n
}
