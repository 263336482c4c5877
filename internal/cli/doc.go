// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of linuxblox.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - Runtime: Settings, logger, launcher and output streams shared by handlers
//   - JSONResponse: Envelope for --json output
//
// # Usage
//
//	cmd, args := cli.Parse()
//	rt := cli.NewRuntime(cfg, logger)
//	switch cmd {
//	case cli.CmdFlags:
//	    err = cli.HandleFlags(rt, args)
//	case cli.CmdLaunch:
//	    err = cli.HandleLaunch(rt, args)
//	// ... other commands
//	}
//	os.Exit(cli.GetExitCode(err))
//
// # Commands Overview
//
//   - flags: list, show, enable, disable and set Sober fast flags
//   - launch: start Roblox through Sober
//   - config: linuxblox's own settings
//   - history: snapshots of the Sober config taken before each save
//   - doctor: path, permission and install checks
//
// All commands support --json.
package cli
