// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for linuxblox.
//
// Command: config [subcommand]
// Short:   View and modify linuxblox settings
//
// Subcommands:
//   show (default)      Display current settings
//   set <key> <value>   Set a setting
//   reset               Reset to default settings
//   path                Show settings file path
//
// Examples:
//   linuxblox config
//   linuxblox config show --json
//   linuxblox config set sober.config_path /home/me/sober.json
//   linuxblox config set sober.keep_unmanaged_flags true
//   linuxblox config set launch.args "run --branch=beta org.vinegarhq.Sober"
//   linuxblox config set history.max_entries 100
//   linuxblox config reset
//   linuxblox config path
//
// Keys use dot notation; underscores in the section part are accepted
// (sober_flags_key works like sober.flags_key).

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/linuxblox/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(rt *Runtime, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(rt, args)
	case "set":
		return handleConfigSet(rt, args)
	case "reset":
		return handleConfigReset(rt, args)
	case "path":
		return handleConfigPath(rt, args)
	default:
		return ErrUnknownSubcommand("config", args.Subcommand)
	}
}

// handleConfigShow displays the effective settings, env overrides included.
func handleConfigShow(rt *Runtime, args Args) error {
	path, _ := rt.settingsPath()
	cfg := rt.Config

	if args.JSON {
		values := make(map[string]interface{}, len(config.GetAllKeys()))
		for _, key := range config.GetAllKeys() {
			if v, err := cfg.Get(key); err == nil {
				values[key] = v
			}
		}
		return NewJSONResponse("config show", ConfigData{
			Values:       values,
			Path:         path,
			DocumentPath: rt.DocumentPath(args),
		}).Print(rt.Out)
	}

	fmt.Fprintln(rt.Out, TitleStyle.Render("linuxblox Configuration"))
	fmt.Fprintln(rt.Out, RenderSeparator(41))

	section := ""
	for _, key := range config.GetAllKeys() {
		v, err := cfg.Get(key)
		if err != nil {
			continue
		}
		name := key
		if i := strings.IndexByte(key, '.'); i >= 0 {
			if key[:i] != section {
				section = key[:i]
				fmt.Fprintln(rt.Out, SectionStyle.Render("["+section+"]"))
			}
			name = key[i+1:]
		}
		fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel(name+":"), HighlightStyle.Render(formatSetting(v)))
	}

	fmt.Fprintln(rt.Out)
	fmt.Fprintln(rt.Out, SeparatorStyle.Render(strings.Repeat("-", 41)))
	fmt.Fprintf(rt.Out, "Settings file: %s\n", PathStyle.Render(path))
	fmt.Fprintf(rt.Out, "Sober config:  %s\n", PathStyle.Render(orNone(rt.DocumentPath(args))))
	return nil
}

// handleConfigSet changes one setting in the file. The file is re-read so
// environment overrides are never written back.
func handleConfigSet(rt *Runtime, args Args) error {
	key := normalizeSettingKey(args.ConfigKey)
	if key == "" {
		return ErrMissingArgument("key", "linuxblox config set <key> <value>")
	}
	if args.ConfigVal == "" && !strings.HasSuffix(key, "path") && !strings.HasSuffix(key, "file") {
		return ErrMissingArgument("value", fmt.Sprintf("linuxblox config set %s <value>", key))
	}

	path, err := rt.settingsPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		rt.note(args, "%s %s (starting from defaults)", WarningStyle.Render("Warning:"), err)
	}

	if err := cfg.Set(key, args.ConfigVal); err != nil {
		return &UsageError{Message: err.Error(), Usage: "linuxblox config set <key> <value>"}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}
	if err := config.SaveTo(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	rt.Config = cfg
	rt.Config.ApplyEnvOverrides()

	v, _ := cfg.Get(key)
	if args.JSON {
		return NewJSONResponse("config set", map[string]interface{}{
			"key":   key,
			"value": v,
			"path":  path,
		}).Print(rt.Out)
	}
	fmt.Fprintf(rt.Out, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, formatSetting(v))
	return nil
}

// handleConfigReset writes the default settings.
func handleConfigReset(rt *Runtime, args Args) error {
	path, err := rt.settingsPath()
	if err != nil {
		return err
	}
	cfg := config.Default()
	if err := config.SaveTo(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	rt.Config = cfg

	if args.JSON {
		return NewJSONResponse("config reset", map[string]interface{}{"path": path}).Print(rt.Out)
	}
	fmt.Fprintf(rt.Out, "%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
	fmt.Fprintf(rt.Out, "Settings file: %s\n", PathStyle.Render(path))
	return nil
}

// handleConfigPath shows the settings file path.
func handleConfigPath(rt *Runtime, args Args) error {
	path, err := rt.settingsPath()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config path", map[string]interface{}{
			"path":   path,
			"exists": exists,
		}).Print(rt.Out)
	}

	fmt.Fprintln(rt.Out, path)
	if !exists {
		fmt.Fprintf(rt.Err, "%s (file does not exist - defaults are in use)\n", DimStyle.Render("Note"))
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// normalizeSettingKey accepts "sober_flags_key" for "sober.flags_key".
func normalizeSettingKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || strings.Contains(key, ".") {
		return key
	}
	for _, section := range []string{"sober", "launch", "history", "log"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

func formatSetting(v interface{}) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, " ")
	case string:
		return orNone(val)
	default:
		return fmt.Sprint(val)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
