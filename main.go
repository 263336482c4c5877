// linuxblox - Roblox FFlag editor for Sober on Linux.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/jeranaias/linuxblox/internal/cli"
	"github.com/jeranaias/linuxblox/internal/config"
	"github.com/jeranaias/linuxblox/internal/logging"
	"github.com/jeranaias/linuxblox/internal/ui/editor"
	"github.com/jeranaias/linuxblox/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args := cli.Parse()
	if args.NoColor {
		cli.SetColorsEnabled(false)
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", cfgErr)
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.LogPath(),
		Stderr: args.Verbose && cmd != cli.CmdTUI,
	})
	if err != nil && args.Verbose {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closer.Close()
	if args.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	rt := cli.NewRuntime(cfg, logger)

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(rt, args)
	case cli.CmdFlags:
		err = cli.HandleFlags(rt, args)
	case cli.CmdLaunch:
		err = cli.HandleLaunch(rt, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(rt, args)
	case cli.CmdHistory:
		err = cli.HandleHistory(rt, args)
	case cli.CmdDoctor:
		err = cli.HandleDoctor(rt, args)
	case cli.CmdVersion:
		err = cli.PrintVersion(os.Stdout, args.JSON)
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
	default:
		err = &cli.UsageError{Message: unknownCommand(args.Unknown)}
	}

	if err != nil {
		cli.DisplayError(os.Stderr, cmd.String(), err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

func unknownCommand(word string) string {
	msg := fmt.Sprintf("unknown command %q", word)
	if s := cli.SuggestCommand(word); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return msg + "; run 'linuxblox help' for usage"
}

// runTUI starts the interactive editor. Without a terminal it prints the
// flag list instead.
func runTUI(rt *cli.Runtime, args cli.Args) error {
	if !cli.CanRunTUI() {
		args.Subcommand = "list"
		return cli.HandleFlags(rt, args)
	}

	session, closeSession := rt.OpenSession(args)
	defer closeSession()

	theme := styles.NewTheme()
	if !cli.ColorsEnabled() {
		theme = styles.NewPlainTheme()
	}

	m := editor.New(editor.Options{
		Session: session,
		Theme:   theme,
		Logger:  rt.Logger,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
