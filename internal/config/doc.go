// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides loading and management of linuxblox's own settings.
//
// These settings say where the Sober config lives, how Sober is launched,
// and how linuxblox journals and logs. They are not the Sober config itself;
// that document is handled by package document.
//
// # Key Types
//
//   - Config: Main settings structure
//   - SoberConfig: Document path override, flags key, unmanaged flag policy
//   - LaunchConfig: Command used to start Sober
//   - HistoryConfig: Pre-save snapshot journal
//
// # Configuration Precedence
//
// Settings are loaded from (in order of precedence):
//   - Environment variables (LINUXBLOX_*)
//   - $XDG_CONFIG_HOME/linuxblox/config.toml (or ~/.config/linuxblox/config.toml)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logger.Warnf("using default settings: %v", err)
//	}
//	path := config.ResolveDocumentPath(cfg)
package config
