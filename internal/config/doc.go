// Package config handles loading and parsing the bloom configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bloom/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/bloom/config.toml
//   - API base: http://127.0.0.1:8080
//   - Session directory: ~/.local/share/bloom/session
//   - Log file: ~/.local/share/bloom/bloom.log
//   - Log level: info
//
// # TOML Format
//
//	api_base = "https://bloom.example"
//	session_dir = "~/.local/share/bloom/session"
//	log_file = "~/.local/share/bloom/bloom.log"
//	log_level = "debug"
//
// Every field is optional. Tilde expansion is performed on paths, and the log
// level is lowercased. BLOOM_LOG_LEVEL is applied later by the logging
// package, not here.
//
// # Error Handling
//
// A missing file is not an error. Unreadable files and invalid TOML are
// returned as "open config", "read config" or "parse config" errors so the
// user sees which step failed.
package config
