// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jeranaias/linuxblox/internal/config"
	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/flags"
	"github.com/jeranaias/linuxblox/internal/history"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"list"},
			wantSub: "list",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"list", "--limit", "5"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("limit") != "5" {
					t.Errorf("Flag(limit) = %q, want %q", p.Flag("limit"), "5")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"list", "--category=lighting"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("category") != "lighting" {
					t.Errorf("Flag(category) = %q, want %q", p.Flag("category"), "lighting")
				}
			},
		},
		{
			name:    "declared bool does not eat the next arg",
			args:    []string{"--enabled", "list"},
			bools:   []string{"enabled"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("enabled") {
					t.Error("BoolFlag(enabled) should be true")
				}
			},
		},
		{
			name:    "undeclared flag takes a value",
			args:    []string{"--enabled", "list"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("enabled") != "list" {
					t.Errorf("Flag(enabled) = %q, want list", p.Flag("enabled"))
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"set", "DFIntCanHideGuiGroupId", "--", "-1"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(2) != "-1" {
					t.Errorf("Positional(2) = %q, want -1", p.Positional(2))
				}
				if p.HasFlag("1") {
					t.Error("-1 after -- should not be a flag")
				}
			},
		},
		{
			name:    "multiple positional args",
			args:    []string{"enable", "A", "B", "C"},
			wantSub: "enable",
			validate: func(t *testing.T, p *ArgParser) {
				if got := strings.Join(p.PositionalFrom(1), ","); got != "A,B,C" {
					t.Errorf("PositionalFrom(1) = %q, want A,B,C", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			if p.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagIntOrDefault(t *testing.T) {
	p := NewArgParser([]string{"list", "--limit", "7", "--bad", "x"})
	if got := p.FlagIntOrDefault("limit", 20); got != 7 {
		t.Errorf("FlagIntOrDefault(limit) = %d, want 7", got)
	}
	if got := p.FlagIntOrDefault("bad", 20); got != 20 {
		t.Errorf("FlagIntOrDefault(bad) = %d, want 20", got)
	}
	if got := p.FlagIntOrDefault("missing", 3); got != 3 {
		t.Errorf("FlagIntOrDefault(missing) = %d, want 3", got)
	}
}

func TestArgParser_EmptyArgs(t *testing.T) {
	p := NewArgParser([]string{})
	if p.Subcommand() != "" || p.PositionalCount() != 0 {
		t.Errorf("empty parser: sub=%q count=%d", p.Subcommand(), p.PositionalCount())
	}
	if p.Positional(3) != "" || len(p.PositionalFrom(1)) != 0 {
		t.Error("out of range access should be empty")
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"YES", true, false},
		{"on", true, false},
		{"0", false, false},
		{" off ", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		got, err := ParseBoolString(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBoolString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseBoolString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseIntWithValidation(t *testing.T) {
	if v, err := ParseIntWithValidation("12", "limit"); err != nil || v != 12 {
		t.Errorf("ParseIntWithValidation(12) = %d, %v", v, err)
	}
	for _, bad := range []string{"", "x", "0", "-4"} {
		if _, err := ParseIntWithValidation(bad, "limit"); err == nil {
			t.Errorf("ParseIntWithValidation(%q) should fail", bad)
		}
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantCommand Command
		validate    func(*testing.T, Args)
	}{
		{
			name:        "no args starts the editor",
			args:        nil,
			wantCommand: CmdTUI,
		},
		{
			name:        "flags defaults to list",
			args:        []string{"flags"},
			wantCommand: CmdFlags,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "" {
					t.Errorf("Subcommand = %q, want empty", a.Subcommand)
				}
			},
		},
		{
			name:        "flags enable with names",
			args:        []string{"flags", "enable", "FFlagDebugDisplayFPS"},
			wantCommand: CmdFlags,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "enable" {
					t.Errorf("Subcommand = %q, want enable", a.Subcommand)
				}
				if len(a.Raw) != 2 {
					t.Errorf("Raw = %v", a.Raw)
				}
			},
		},
		{
			name:        "bool option before subcommand",
			args:        []string{"f", "--enabled", "list"},
			wantCommand: CmdFlags,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "list" {
					t.Errorf("Subcommand = %q, want list", a.Subcommand)
				}
			},
		},
		{
			name:        "global flags anywhere",
			args:        []string{"flags", "list", "--json", "-v", "--config-path", "/tmp/c.json", "--no-color"},
			wantCommand: CmdFlags,
			validate: func(t *testing.T, a Args) {
				if !a.JSON || !a.Verbose || !a.NoColor {
					t.Errorf("globals = %+v", a)
				}
				if a.ConfigPath != "/tmp/c.json" {
					t.Errorf("ConfigPath = %q", a.ConfigPath)
				}
				if len(a.Raw) != 1 || a.Raw[0] != "list" {
					t.Errorf("Raw = %v, want [list]", a.Raw)
				}
			},
		},
		{
			name:        "config-path with equals",
			args:        []string{"--config-path=/x/config.json", "launch"},
			wantCommand: CmdLaunch,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "/x/config.json" {
					t.Errorf("ConfigPath = %q", a.ConfigPath)
				}
			},
		},
		{
			name:        "play alias",
			args:        []string{"play"},
			wantCommand: CmdLaunch,
		},
		{
			name:        "config set joins value",
			args:        []string{"config", "set", "launch.args", "run", "org.vinegarhq.Sober"},
			wantCommand: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "set" || a.ConfigKey != "launch.args" {
					t.Errorf("config args = %+v", a)
				}
				if a.ConfigVal != "run org.vinegarhq.Sober" {
					t.Errorf("ConfigVal = %q", a.ConfigVal)
				}
			},
		},
		{
			name:        "history restore",
			args:        []string{"history", "restore", "abcd", "--yes"},
			wantCommand: CmdHistory,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "restore" {
					t.Errorf("Subcommand = %q", a.Subcommand)
				}
			},
		},
		{
			name:        "doctor",
			args:        []string{"doctor"},
			wantCommand: CmdDoctor,
		},
		{
			name:        "version flag",
			args:        []string{"--version"},
			wantCommand: CmdVersion,
		},
		{
			name:        "help",
			args:        []string{"-h"},
			wantCommand: CmdHelp,
		},
		{
			name:        "unknown command",
			args:        []string{"flgas", "list"},
			wantCommand: CmdUnknown,
			validate: func(t *testing.T, a Args) {
				if a.Unknown != "flgas" {
					t.Errorf("Unknown = %q", a.Unknown)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.args)
			if cmd != tt.wantCommand {
				t.Errorf("Command = %v, want %v", cmd, tt.wantCommand)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

// =============================================================================
// SUGGESTIONS (suggest.go)
// =============================================================================

func TestSuggestCommand(t *testing.T) {
	tests := map[string]string{
		"flgas":  "flags",
		"lanuch": "launch",
		"docter": "doctor",
		"hepl":   "help",
		"flags":  "",
		"x":      "",
		"zzzzzz": "",
	}
	for input, want := range tests {
		if got := SuggestCommand(input); got != want {
			t.Errorf("SuggestCommand(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	names := []string{"DFIntTaskSchedulerTargetFps", "FFlagDebugDisplayFPS", "FFlagDebugGraphicsPreferVulkan"}

	if got := SuggestFlag("DFIntTaskSchedulerTargetFPS", names); got != "DFIntTaskSchedulerTargetFps" {
		t.Errorf("case-only difference: got %q", got)
	}
	if got := SuggestFlag("FFlagDebugGraphicsPreferVulkn", names); got != "FFlagDebugGraphicsPreferVulkan" {
		t.Errorf("typo: got %q", got)
	}
	if got := SuggestFlag("SomethingElseEntirely", names); got != "" {
		t.Errorf("unrelated: got %q", got)
	}
}

// =============================================================================
// ERRORS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", ErrMissingArgument("NAME", "linuxblox flags show <NAME>"), ExitUsageError},
		{"unknown flag", &flags.FlagError{Name: "X", Err: flags.ErrUnknownFlag}, ExitNotFoundError},
		{"wrapped unknown flag", fmt.Errorf("%w (did you mean Y?)", &flags.FlagError{Name: "X", Err: flags.ErrUnknownFlag}), ExitNotFoundError},
		{"snapshot missing", fmt.Errorf("%w: abc", history.ErrNotFound), ExitNotFoundError},
		{"ambiguous snapshot", history.ErrAmbiguous, ExitUsageError},
		{"access denied", &OutcomeError{Outcome: document.Outcome{Code: document.AccessDenied, Detail: "nope"}}, ExitPermissionError},
		{"path unavailable", &OutcomeError{Outcome: document.Outcome{Code: document.PathUnavailable}}, ExitConfigError},
		{"io failure", &OutcomeError{Outcome: document.Outcome{Code: document.IOFailure, Detail: "disk"}}, ExitGeneralError},
		{"invalid settings", fmt.Errorf("invalid: %w", config.ValidateErrors{{Field: "log.level", Message: "bad"}}), ExitConfigError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOutcomeError(t *testing.T) {
	out := document.Outcome{Code: document.AccessDenied, Detail: "permission denied", Path: "/x"}
	err := outcomeErr(out)
	if err == nil {
		t.Fatal("outcomeErr() should fail for AccessDenied")
	}
	if !errors.Is(err, document.ErrAccessDenied) {
		t.Error("OutcomeError should unwrap to ErrAccessDenied")
	}
	if err.Error() != out.Message() {
		t.Errorf("Error() = %q, want %q", err.Error(), out.Message())
	}
	if outcomeErr(document.Outcome{Code: document.NotFound}) != nil {
		t.Error("NotFound is not an error")
	}
}
