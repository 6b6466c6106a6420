// Package config loads runtime configuration for the TABZ client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or
//     TABZ_CONFIG.
//  3. TABZ_* environment variables, read with cleanenv (see EnvHelp).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL override
//	-p string   platform: web or native
//	-s string   session store path
//	-l string   log level
//	-i int      poll interval (seconds)
//
// # JSON schema
//
// Durations are timex.Duration values: strings like "3s" or integer
// nanoseconds.
//
//	{
//	  "default_base_url": "http://127.0.0.1:3000",
//	  "platform": "native",
//	  "hydration_timeout": "3s",
//	  "poll_interval": "5s",
//	  "store_path": "tabz.db"
//	}
//
// # Platform policy
//
// FailOpenTimeout and FallbackAllowed encode the platform rules: web builds
// never fail open and never use the development token.
package config
