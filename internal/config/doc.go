// Package config handles loading shelf's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/shelf/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/shelf/config.toml
//   - Catalog API: http://localhost:3000
//   - Request timeout: 5s
//   - Activity log: ~/.local/state/shelf/shelf.log
//
// # TOML Format
//
//	base_url = "http://localhost:3000"
//	request_timeout = "5s"
//	log_file = "~/.local/state/shelf/shelf.log"
//
// All fields are optional. request_timeout takes a Go duration string;
// values that fail to parse are an error, non-positive values keep the
// default. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and malformed durations. A missing file
// is not an error so shelf works without any setup.
package config
