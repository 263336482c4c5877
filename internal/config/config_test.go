// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// clearEnv removes variables that would leak into config loading.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LINUXBLOX_SOBER_CONFIG", "LINUXBLOX_FLAGS_KEY",
		"LINUXBLOX_LOG_LEVEL", "LINUXBLOX_HISTORY",
	} {
		t.Setenv(k, "")
	}
}

// TestConfig_Default tests the built-in defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
	if cfg.Version == "" {
		t.Error("Default config should have a version")
	}
	if cfg.Sober.FlagsKey != "fflags" {
		t.Errorf("Expected default flags key 'fflags', got '%s'", cfg.Sober.FlagsKey)
	}
	if cfg.Launch.Command != "flatpak" {
		t.Errorf("Expected default launch command 'flatpak', got '%s'", cfg.Launch.Command)
	}
	if want := []string{"run", "org.vinegarhq.Sober"}; !reflect.DeepEqual(cfg.Launch.Args, want) {
		t.Errorf("Launch.Args = %v, want %v", cfg.Launch.Args, want)
	}
	if !cfg.History.Enabled {
		t.Error("History should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		field   string
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, "", false},
		{"empty flags key", func(c *Config) { c.Sober.FlagsKey = "  " }, "sober.flags_key", true},
		{"relative config path", func(c *Config) { c.Sober.ConfigPath = "sober/config.json" }, "sober.config_path", true},
		{"absolute config path", func(c *Config) { c.Sober.ConfigPath = "/tmp/config.json" }, "", false},
		{"empty launch command", func(c *Config) { c.Launch.Command = "" }, "launch.command", true},
		{"zero max entries", func(c *Config) { c.History.MaxEntries = 0 }, "history.max_entries", true},
		{"too many entries", func(c *Config) { c.History.MaxEntries = 10001 }, "history.max_entries", true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level", true},
		{"upper case log level", func(c *Config) { c.Log.Level = "DEBUG" }, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var errs ValidateErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Validate() error type = %T, want ValidateErrors", err)
			}
			if errs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.field)
			}
		})
	}
}

// TestConfig_GetSet tests dot-notation access.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("sober.flags_key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "fflags" {
		t.Errorf("Get('sober.flags_key') = %v, want 'fflags'", val)
	}

	if err := cfg.Set("history.max_entries", "12"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.History.MaxEntries != 12 {
		t.Errorf("MaxEntries = %d, want 12", cfg.History.MaxEntries)
	}

	if err := cfg.Set("sober.keep_unmanaged_flags", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !cfg.Sober.KeepUnmanagedFlags {
		t.Error("KeepUnmanagedFlags should be true")
	}

	if err := cfg.Set("launch.args", "run  --branch=beta org.vinegarhq.Sober"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if want := []string{"run", "--branch=beta", "org.vinegarhq.Sober"}; !reflect.DeepEqual(cfg.Launch.Args, want) {
		t.Errorf("Launch.Args = %v, want %v", cfg.Launch.Args, want)
	}

	errorCases := []struct {
		key   string
		value string
	}{
		{"invalid.key", "x"},
		{"sober", "x"},
		{"history.max_entries", "many"},
		{"history.enabled", "maybe"},
		{"", "x"},
	}
	for _, tc := range errorCases {
		if err := cfg.Set(tc.key, tc.value); err == nil {
			t.Errorf("Set(%q, %q) should return error", tc.key, tc.value)
		}
	}

	if _, err := cfg.Get("invalid.key"); err == nil {
		t.Error("Get() with invalid key should return error")
	}
}

// TestConfig_GetAllKeys checks every listed key is reachable.
func TestConfig_GetAllKeys(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}

// TestConfig_SaveLoadRoundTrip writes and reads back a settings file.
func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "linuxblox", "config.toml")

	cfg := Default()
	cfg.Sober.ConfigPath = "/srv/sober/config.json"
	cfg.Sober.KeepUnmanagedFlags = true
	cfg.History.MaxEntries = 7
	cfg.Log.Level = "debug"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# linuxblox configuration file") {
		t.Error("saved file should start with the header comment")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

// TestConfig_LoadPartial fills missing sections from defaults.
func TestConfig_LoadPartial(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[sober]\nflags_key = \"FFlags\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Sober.FlagsKey != "FFlags" {
		t.Errorf("FlagsKey = %q, want FFlags", cfg.Sober.FlagsKey)
	}
	if cfg.Launch.Command != "flatpak" {
		t.Errorf("Launch.Command = %q, want default", cfg.Launch.Command)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("MaxEntries = %d, want 50", cfg.History.MaxEntries)
	}
}

// TestConfig_LoadInvalid reports parse and validation failures.
func TestConfig_LoadInvalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[sober\nflags_key ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(broken); err == nil {
		t.Error("LoadFrom() should fail on malformed TOML")
	}

	invalid := filepath.Join(dir, "invalid.toml")
	if err := os.WriteFile(invalid, []byte("[history]\nmax_entries = -3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(invalid); err == nil {
		t.Error("LoadFrom() should fail validation")
	}
}

// TestConfig_LoadDefaultLocation covers the XDG lookup and missing file case.
func TestConfig_LoadDefaultLocation(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no file error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("Load() with no file should return defaults")
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(xdg, "linuxblox", "config.toml") {
		t.Errorf("ConfigPath() = %q", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not = [valid"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load()
	if err == nil {
		t.Error("Load() should report a broken file")
	}
	if cfg == nil || cfg.Sober.FlagsKey != "fflags" {
		t.Error("Load() should still return defaults for a broken file")
	}
}

// TestConfig_Dirs tests XDG and HOME fallbacks.
func TestConfig_Dirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/player")

	dir, err := ConfigDir()
	if err != nil || dir != "/home/player/.config/linuxblox" {
		t.Errorf("ConfigDir() = %q, %v", dir, err)
	}
	state, err := StateDir()
	if err != nil || state != "/home/player/.local/state/linuxblox" {
		t.Errorf("StateDir() = %q, %v", state, err)
	}

	cfg := Default()
	if got := cfg.HistoryPath(); got != "/home/player/.local/state/linuxblox/history.db" {
		t.Errorf("HistoryPath() = %q", got)
	}
	if got := cfg.LogPath(); got != "/home/player/.local/state/linuxblox/linuxblox.log" {
		t.Errorf("LogPath() = %q", got)
	}

	t.Setenv("HOME", "")
	if _, err := ConfigDir(); !errors.Is(err, ErrNoConfigDir) {
		t.Errorf("ConfigDir() without HOME error = %v", err)
	}
}

// TestConfig_EnvOverrides tests LINUXBLOX_* variables.
func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LINUXBLOX_SOBER_CONFIG", "/opt/sober.json")
	t.Setenv("LINUXBLOX_FLAGS_KEY", "FFlags")
	t.Setenv("LINUXBLOX_LOG_LEVEL", "trace")
	t.Setenv("LINUXBLOX_HISTORY", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Sober.ConfigPath != "/opt/sober.json" {
		t.Errorf("ConfigPath = %q", cfg.Sober.ConfigPath)
	}
	if cfg.Sober.FlagsKey != "FFlags" {
		t.Errorf("FlagsKey = %q", cfg.Sober.FlagsKey)
	}
	if cfg.Log.Level != "trace" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.History.Enabled {
		t.Error("History should be disabled by env")
	}
}

// TestConfig_LoadOrDefault never returns nil.
func TestConfig_LoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	if err != nil || cfg == nil {
		t.Fatalf("LoadOrDefault(missing) = %v, %v", cfg, err)
	}

	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[[["), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOrDefault(broken)
	if err == nil {
		t.Error("LoadOrDefault(broken) should return the parse error")
	}
	if cfg == nil {
		t.Error("LoadOrDefault(broken) should return defaults")
	}
}
