// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ===== SOBER PATHS =====

// SoberAppID is the Flatpak application ID of Sober.
const SoberAppID = "org.vinegarhq.Sober"

// SoberConfigPath returns the Sober config document path under home.
func SoberConfigPath(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".var", "app", SoberAppID, "config", "sober", "config.json")
}

// ResolveDocumentPath returns the Sober config path to operate on: the
// settings override when set, otherwise the path derived from HOME. It
// returns "" when no path can be determined.
func ResolveDocumentPath(cfg *Config) string {
	if cfg != nil && cfg.Sober.ConfigPath != "" {
		return cfg.Sober.ConfigPath
	}
	return SoberConfigPath(os.Getenv("HOME"))
}

// ===== CLIENT SETTINGS DISCOVERY =====

// Discovery is the result of probing for Sober's ClientSettings directory.
type Discovery struct {
	// Path to ClientAppSettings.json, or "" when nothing was found
	Path string
	// Trace holds one line per probe step
	Trace []string
}

// Found reports whether a ClientSettings directory exists.
func (d Discovery) Found() bool {
	return d.Path != ""
}

// DiscoverClientSettings probes the appData then exe ClientSettings
// directories under home. It never creates anything.
func DiscoverClientSettings(home string) Discovery {
	var d Discovery
	if home == "" {
		d.Trace = append(d.Trace, "[FAIL] Cannot determine HOME directory.")
		return d
	}

	data := filepath.Join(home, ".var", "app", SoberAppID, "data", "sober")
	candidates := []struct {
		label string
		dir   string
	}{
		{"appData", filepath.Join(data, "appData", "ClientSettings")},
		{"exe", filepath.Join(data, "exe", "ClientSettings")},
	}

	for _, c := range candidates {
		d.Trace = append(d.Trace, fmt.Sprintf("Checking %s path: '%s'", c.label, c.dir))
		info, err := os.Stat(c.dir)
		if err != nil {
			if !os.IsNotExist(err) {
				d.Trace = append(d.Trace, fmt.Sprintf("[IO FAIL] %v", err))
			}
			continue
		}
		if !info.IsDir() {
			d.Trace = append(d.Trace, fmt.Sprintf("[SKIP] '%s' is not a directory", c.dir))
			continue
		}
		d.Path = filepath.Join(c.dir, "ClientAppSettings.json")
		d.Trace = append(d.Trace, fmt.Sprintf("[SUCCESS] Found settings directory at %s path: '%s'", c.label, d.Path))
		return d
	}

	d.Trace = append(d.Trace, "[FAIL] Neither ClientSettings directory exists.")
	return d
}
