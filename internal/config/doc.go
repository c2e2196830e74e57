// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/gigachad/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/gigachad/config.cue on macOS, %APPDATA%\gigachad\config.cue
// on Windows) and validated against the embedded config_schema.cue. GIGACHAD_* environment
// variables override file values; nested keys use underscores (GIGACHAD_UI_VERBOSE).
package config
