// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/gedforge/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/gedforge/config.cue on macOS, %APPDATA%\gedforge\config.cue
// on Windows), falling back to ./config.cue. It selects the default calendar, the message
// language, the log level, strict validation and the xref prefix used when minting.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they are
// merged over the defaults. GEDFORGE_* environment variables override both.
package config
