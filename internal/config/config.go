// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/launcher"
	"github.com/jeranaias/linuxblox/internal/util"
)

// CurrentVersion is written into new settings files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete linuxblox configuration.
type Config struct {
	Version string `toml:"version"`

	// Sober config document settings
	Sober SoberConfig `toml:"sober"`

	// How to start Sober
	Launch LaunchConfig `toml:"launch"`

	// Save journal
	History HistoryConfig `toml:"history"`

	// Logging
	Log LogConfig `toml:"log"`
}

// SoberConfig locates and shapes the Sober config document.
type SoberConfig struct {
	// ConfigPath overrides the derived document path (empty = derive from HOME)
	ConfigPath string `toml:"config_path"`
	// FlagsKey is the top-level key holding the flags object
	FlagsKey string `toml:"flags_key"`
	// KeepUnmanagedFlags keeps flags linuxblox does not know about on save
	KeepUnmanagedFlags bool `toml:"keep_unmanaged_flags"`
}

// LaunchConfig is the command used to start Sober.
type LaunchConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// HistoryConfig controls the pre-save snapshot journal.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	// Path of the SQLite database (empty = state dir)
	Path       string `toml:"path"`
	MaxEntries int    `toml:"max_entries"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	// File path (empty = state dir)
	File string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Sober: SoberConfig{
			FlagsKey: document.DefaultFlagsKey,
		},
		Launch: LaunchConfig{
			Command: launcher.DefaultCommand,
			Args:    launcher.DefaultArgs(),
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ErrNoConfigDir is returned when neither XDG_CONFIG_HOME nor HOME is set.
var ErrNoConfigDir = errors.New("could not determine configuration directory; set XDG_CONFIG_HOME or HOME")

// ConfigDir returns the linuxblox configuration directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "linuxblox"), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "linuxblox"), nil
	}
	return "", ErrNoConfigDir
}

// StateDir returns the directory for logs and the history database.
func StateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "linuxblox"), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "state", "linuxblox"), nil
	}
	return "", ErrNoConfigDir
}

// ConfigPath returns the path to the TOML settings file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the configured or default history database path.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	dir, err := StateDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// LogPath returns the configured or default log file path.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir, err := StateDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "linuxblox.log")
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the settings file. A missing file yields defaults and no error.
// A broken file yields defaults and the error, so callers can warn and carry
// on. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	cfg, err := LoadOrDefault(path)
	cfg.ApplyEnvOverrides()
	return cfg, err
}

// LoadOrDefault is LoadFrom with defaults for a missing or broken file.
// It never returns a nil Config.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		return Default(), err
	}
	return cfg, nil
}

// LoadFrom reads settings from path on top of the defaults. Environment
// overrides are not applied, so the result can be saved back unchanged.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to the default settings path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg as TOML to path atomically.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# linuxblox configuration file\n")
	buf.WriteString("# Generated by linuxblox - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Sober.FlagsKey) == "" {
		errs = append(errs, ValidationError{"sober.flags_key", "must not be empty"})
	}
	if c.Sober.ConfigPath != "" && !filepath.IsAbs(c.Sober.ConfigPath) {
		errs = append(errs, ValidationError{"sober.config_path", "must be an absolute path"})
	}
	if strings.TrimSpace(c.Launch.Command) == "" {
		errs = append(errs, ValidationError{"launch.command", "must not be empty"})
	}
	if c.History.MaxEntries < 1 || c.History.MaxEntries > 10000 {
		errs = append(errs, ValidationError{"history.max_entries", "must be between 1 and 10000"})
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{"log.level", "must be one of trace, debug, info, warn, error"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty fields with defaults.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Sober.FlagsKey == "" {
		c.Sober.FlagsKey = d.Sober.FlagsKey
	}
	if c.Launch.Command == "" {
		c.Launch.Command = d.Launch.Command
		c.Launch.Args = d.Launch.Args
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = d.History.MaxEntries
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// ApplyEnvOverrides applies LINUXBLOX_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	// LINUXBLOX_SOBER_CONFIG
	if path := os.Getenv("LINUXBLOX_SOBER_CONFIG"); path != "" {
		c.Sober.ConfigPath = path
	}

	// LINUXBLOX_FLAGS_KEY
	if key := os.Getenv("LINUXBLOX_FLAGS_KEY"); key != "" {
		c.Sober.FlagsKey = key
	}

	// LINUXBLOX_LOG_LEVEL
	if level := os.Getenv("LINUXBLOX_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	// LINUXBLOX_HISTORY
	if history := os.Getenv("LINUXBLOX_HISTORY"); history != "" {
		c.History.Enabled = history == "1" || strings.EqualFold(history, "true")
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"sober.config_path",
		"sober.flags_key",
		"sober.keep_unmanaged_flags",
		"launch.command",
		"launch.args",
		"history.enabled",
		"history.path",
		"history.max_entries",
		"log.level",
		"log.file",
	}
}

// Get retrieves a configuration value using dot notation (e.g. "sober.flags_key").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value from its string form. Lists are split on
// whitespace.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %q", key, value)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %q", key, value)
		}
		field.SetBool(b)
	case reflect.Slice:
		field.Set(reflect.ValueOf(strings.Fields(value)))
	default:
		return fmt.Errorf("cannot set field: %s", key)
	}
	return nil
}

// lookup walks the struct by toml tag names.
func (c *Config) lookup(key string) (reflect.Value, error) {
	parts := strings.Split(strings.TrimSpace(key), ".")
	if len(parts) == 0 || parts[0] == "" {
		return reflect.Value{}, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Tag.Get("toml"), name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
