// Package config loads runtime configuration for the usershelf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables prefixed with USERS_.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-e string   users endpoint URL
//	-t int      request timeout (seconds)
//	-s string   store driver: sqlite, postgres, redis or memory
//	-d string   store DSN (file path, postgres URL, redis URL or host:port)
//	-stub       serve the built-in stub users instead of calling the endpoint
//	-dedup      share one load between concurrent callers
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations can be strings like "10s" or integer nanoseconds:
//
//	{
//	  "endpoint": "https://jsonplaceholder.typicode.com/users",
//	  "request_timeout": "10s",
//	  "store_driver": "sqlite",
//	  "store_dsn": "users.db",
//	  "stub": false,
//	  "dedup": false,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The endpoint's shape is not checked here; a malformed endpoint is reported
// by the fetcher as an invalid endpoint.
package config
