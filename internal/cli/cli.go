// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and usage text for linuxblox.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdFlags
	CmdLaunch
	CmdConfig
	CmdHistory
	CmdDoctor
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name as typed by the user.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdFlags:
		return "flags"
	case CmdLaunch:
		return "launch"
	case CmdConfig:
		return "config"
	case CmdHistory:
		return "history"
	case CmdDoctor:
		return "doctor"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose bool
	JSON    bool // Output in JSON format
	NoColor bool
	// ConfigPath overrides the Sober config document path
	ConfigPath string

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Unknown holds the unrecognized command word for CmdUnknown
	Unknown string

	// Raw args after the command word
	Raw []string
}

const usageText = `linuxblox - Roblox FFlag editor for Sober on Linux

linuxblox edits the fast flags Sober passes to Roblox. It only touches the
flags section of Sober's config.json; every other setting is left as-is.

Usage:
  linuxblox                          Start the flag editor (default)
  linuxblox flags [list]             List all known flags
  linuxblox flags show <NAME>        Show one flag
  linuxblox flags enable <NAME>...   Enable flags and save
  linuxblox flags disable <NAME>...  Disable flags and save
  linuxblox flags set <NAME> <VALUE> Set a flag's value, enable it and save
  linuxblox launch                   Start Roblox through Sober
  linuxblox config [show|set|path|reset]
                                     linuxblox settings
  linuxblox history [list|show|restore]
                                     Snapshots taken before each save
  linuxblox doctor                   Check paths and permissions
  linuxblox version                  Show version
  linuxblox help                     Show this help

Flags Options:
  --enabled                          Only list enabled flags
  --category <NAME>                  Only list one category
  --no-enable                        With set: keep the enabled state

History Options:
  --limit N                          Entries to list (default: 20)
  --yes                              Restore without prompting

Global Options:
  --config-path PATH                 Use this Sober config.json
  -v, --verbose                      Log to stderr
  --json                             Output in JSON format
  --no-color                         Disable colored output

Editor Keys:
  up/down, j/k                       Move
  space                              Toggle the selected flag
  enter                              Edit the selected flag's value
  s                                  Save
  p                                  Launch Roblox
  r                                  Reload from disk
  q, ctrl+c                          Quit

Examples:
  linuxblox flags enable DFIntTaskSchedulerTargetFps
  linuxblox flags set DFIntTaskSchedulerTargetFps 240
  linuxblox flags list --category Lighting --json
  linuxblox config set launch.args "run org.vinegarhq.Sober"
  linuxblox history restore 3f2a

Version: %s
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer, jsonMode bool) error {
	if jsonMode {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(w)
	}
	fmt.Fprintf(w, "linuxblox version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s\n", runtime.Version())
	return nil
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the arguments after the program name.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui", "edit":
		return CmdTUI, parsedArgs

	case "flags", "flag", "f":
		parseSubcommand(&parsedArgs, remaining)
		return CmdFlags, parsedArgs

	case "launch", "play", "run":
		return CmdLaunch, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "history", "snapshots":
		parseSubcommand(&parsedArgs, remaining)
		return CmdHistory, parsedArgs

	case "doctor":
		return CmdDoctor, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = cmd
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags pulls global options out of args wherever they appear.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-color":
			parsedArgs.NoColor = true
		case "--config-path":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--config-path=") {
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config-path=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// boolOptions never take a value, so "--enabled list" keeps list positional.
var boolOptions = []string{"enabled", "no-enable", "yes", "y"}

func parseSubcommand(args *Args, remaining []string) {
	args.Subcommand = strings.ToLower(NewArgParser(remaining, boolOptions...).Subcommand())
}

func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = strings.ToLower(remaining[0])
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = strings.Join(remaining[2:], " ")
		}
	}
}
