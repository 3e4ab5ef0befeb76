// Package app provides the orchestration layer for shelf.
//
// # Overview
//
// This package wires configuration, preferences, the activity log, the
// catalog client and the UI together. It is the composition root: every
// dependency is built here and handed to ui.Run.
//
// # Startup
//
//  1. Load ~/.config/shelf/config.toml (or the -config path) and apply the
//     -url override
//  2. Open the activity log and point the standard logger at it
//  3. Build the catalog client with the configured request timeout
//  4. Load preferences (theme) from ~/.config/shelf/prefs.toml
//  5. Start the TUI and block until the user quits or the context ends
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()       base_url, request_timeout, log_file
//	       ├─────> openLog()           log.SetOutput(file)
//	       ├─────> catalog.NewClient() HTTP client for GET /books
//	       ├─────> prefs.Load()        theme
//	       └─────> ui.Run()            TUI (blocks)
//
// There is no background polling. Each view fetches once when it is mounted
// and the catalog is only fetched again when the list is mounted again.
//
// # Error Handling
//
// Fatal errors are returned from Run and printed by main:
//
//   - Malformed config file or request_timeout
//   - Log directory or file that cannot be created
//   - Base URL without a host
//
// Catalog request failures are never fatal. They are logged and shown in the
// view that issued them.
package app
