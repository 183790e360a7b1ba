// Package config loads crumb's runtime configuration.
//
// # Overview
//
// Settings come from three layers, each overriding the one before:
//
//  1. Built-in defaults
//  2. The TOML file (explicit path, or ~/.config/crumb/config.toml)
//  3. CRUMB_* environment variables
//
// Command-line flags are applied by the caller on top of the returned Config.
// A missing config file is not an error.
//
// # Default Values
//
//   - base_url: https://www.themealdb.com/api/json/v1/1
//   - category: Dessert
//   - request_timeout: 10s
//   - log_file: ~/.local/state/crumb/crumb.log ("-" logs to stderr)
//   - log_level: info
//   - export_workers: 4
//
// # TOML Format
//
//	base_url = "https://www.themealdb.com/api/json/v1/1"
//	category = "Seafood"
//	request_timeout = "5s"
//	log_file = "~/.local/state/crumb/crumb.log"
//	log_level = "debug"
//	export_workers = 8
//
// Every field is optional. Blank strings fall back to the default and tilde
// paths are expanded.
//
// # Environment
//
// Each key has an override named CRUMB_<KEY>, for example CRUMB_CATEGORY or
// CRUMB_REQUEST_TIMEOUT. Durations use time.ParseDuration syntax.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML parse errors ("parse config"),
// malformed environment values and anything Validate rejects.
package config
