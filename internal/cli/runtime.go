// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Shared dependencies for command handlers.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jeranaias/linuxblox/internal/config"
	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/engine"
	"github.com/jeranaias/linuxblox/internal/history"
	"github.com/jeranaias/linuxblox/internal/launcher"
)

// Runtime carries what every command needs. main builds one per process;
// tests build their own with temp paths and fakes.
type Runtime struct {
	Config *config.Config
	// SettingsPath is where config set/reset write; empty means the default.
	SettingsPath string
	Logger       *log.Logger
	Launcher     engine.Launcher

	Out io.Writer
	Err io.Writer
	In  io.Reader
}

// NewRuntime returns a runtime writing to the process's standard streams.
func NewRuntime(cfg *config.Config, logger *log.Logger) *Runtime {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Launcher: launcher.New(),
		Out:      os.Stdout,
		Err:      os.Stderr,
		In:       os.Stdin,
	}
}

// DocumentPath returns the Sober config path for this invocation.
// --config-path wins over settings, which win over the HOME-derived path.
func (rt *Runtime) DocumentPath(args Args) string {
	if p := strings.TrimSpace(args.ConfigPath); p != "" {
		return p
	}
	return config.ResolveDocumentPath(rt.Config)
}

// settingsPath returns the settings file path.
func (rt *Runtime) settingsPath() (string, error) {
	if rt.SettingsPath != "" {
		return rt.SettingsPath, nil
	}
	return config.ConfigPath()
}

// OpenHistory opens the snapshot journal.
func (rt *Runtime) OpenHistory() (*history.Store, error) {
	path := rt.Config.HistoryPath()
	if path == "" {
		return nil, fmt.Errorf("failed to open history: %w", config.ErrNoConfigDir)
	}
	return history.Open(path, rt.Config.History.MaxEntries)
}

// OpenSession builds an engine session. The returned close function
// releases the journal and must always be called.
func (rt *Runtime) OpenSession(args Args) (*engine.Session, func()) {
	opts := engine.Options{
		Path:          rt.DocumentPath(args),
		FlagsKey:      rt.Config.Sober.FlagsKey,
		Render:        document.RenderOptions{KeepUnmanaged: rt.Config.Sober.KeepUnmanagedFlags},
		Launcher:      rt.Launcher,
		LaunchCommand: rt.Config.Launch.Command,
		LaunchArgs:    rt.Config.Launch.Args,
		Logger:        rt.Logger,
	}

	closeFn := func() {}
	if rt.Config.History.Enabled {
		store, err := rt.OpenHistory()
		if err != nil {
			// History is best effort; editing still works without it.
			rt.logger().WithError(err).Warn("history disabled for this session")
		} else {
			opts.Journal = store
			closeFn = func() { store.Close() }
		}
	}

	return engine.New(opts), closeFn
}

func (rt *Runtime) logger() *log.Logger {
	if rt.Logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		rt.Logger = l
	}
	return rt.Logger
}

// note writes a human-readable line; in JSON mode it goes to stderr so
// stdout stays machine-readable.
func (rt *Runtime) note(args Args, format string, a ...interface{}) {
	w := rt.Out
	if args.JSON {
		w = rt.Err
	}
	fmt.Fprintf(w, format+"\n", a...)
}

func outcomeData(out document.Outcome) OutcomeData {
	return OutcomeData{
		Code:    out.Code.String(),
		Message: out.Message(),
		Detail:  out.Detail,
		Path:    out.Path,
	}
}
