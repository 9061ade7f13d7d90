// Package app provides the orchestration layer for bloom.
//
// # Overview
//
// This package wires together configuration, logging, the stored session, the
// API client and the diary screen. It is the composition root: the TUI entry
// point (Run) and the CLI subcommands in cmd/bloom both start from Load.
//
// # Architecture
//
//  1. Load bloom configuration from ~/.config/bloom/config.toml
//  2. Open the JSON log file (BLOOM_LOG_LEVEL overrides the configured level)
//  3. Open the diskv session store and require an access token
//  4. Build the bloom.Client with an oauth2 bearer transport
//  5. Build diary.Screen with the session's user passed explicitly
//  6. Refresh once, start the rollover watcher, then run the TUI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Load()              config, logger, session store
//	       ├─────> Env.NewScreen()     client + diary.Screen
//	       ├─────> Screen.Refresh()    question and done list
//	       ├─────> StartRollover()     follow midnight
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Day Rollover
//
// A diary left open overnight should move to the new day the way it would
// after a restart. StartRollover checks the clock periodically; when the
// screen was showing today and the day changes, it selects the new day and
// refreshes, which registers the new question. Past days are never moved,
// and an open editor postpones the move so its working copy survives.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Log file or session directory unusable
//   - No stored session (run `bloom login`)
//   - Malformed --date
//
// Everything after startup is recoverable: remote failures become notices in
// the TUI and log entries.
package app
