// Package config provides the configuration management for the nttgen application.
// This file contains environment variable utilities for configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as uint64, or the default value if not set
// or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// explicitFieldParams reports which of the field parameters were supplied
// explicitly, either as a command-line flag or through the environment.
//
// Parameters:
//   - fs: The parsed flag set, used to detect explicitly set flags.
//
// Returns:
//   - qSet, nSet, zetaSet: true when the corresponding parameter was given.
func explicitFieldParams(fs *flag.FlagSet) (qSet, nSet, zetaSet bool) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	qSet = set["q"] || os.Getenv(EnvPrefix+"Q") != ""
	nSet = set["n"] || os.Getenv(EnvPrefix+"N") != ""
	zetaSet = set["zeta"] || os.Getenv(EnvPrefix+"ZETA") != ""
	return qSet, nSet, zetaSet
}

// applyEnvOverrides applies environment variable values to configuration
// fields whose flags were not explicitly set on the command line. Flags
// always win over environment variables; environment variables win over
// built-in defaults.
//
// Parameters:
//   - config: The configuration to update in place.
//   - fs: The parsed flag set, used to detect explicitly set flags.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["q"] {
		config.Q = getEnvUint64("Q", config.Q)
	}
	if !set["n"] {
		config.N = getEnvUint64("N", config.N)
	}
	if !set["zeta"] {
		config.Zeta = getEnvUint64("ZETA", config.Zeta)
	}
	if !set["roots"] {
		config.RootCount = getEnvInt("ROOTS", config.RootCount)
	}
	if !set["timeout"] {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !set["output"] && !set["o"] {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !set["port"] {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !set["quiet"] {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !set["no-color"] {
		config.NoColor = getEnvBool("NO_COLOR_FLAG", config.NoColor)
	}
	if !set["json"] {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
}
