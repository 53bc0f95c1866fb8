package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "SECREON_HOME"
	EnvOutputFormat = "SECREON_OUTPUT_FORMAT"
	EnvVerbose      = "SECREON_VERBOSE"
	EnvLogLevel     = "SECREON_LOG_LEVEL"
	EnvLogFile      = "SECREON_LOG_FILE"
	EnvNoColor      = "NO_COLOR"
	EnvMemoryLock   = "SECREON_MEMORY_LOCK"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		format := strings.ToLower(strings.TrimSpace(v))
		switch format {
		case "text", "json", "auto":
			cfg.Output.DefaultFormat = format
		default:
			cfg.Warnings = append(cfg.Warnings, "ignoring "+EnvOutputFormat+"="+v+": must be text, json, or auto")
		}
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}

	// NO_COLOR disables colored output regardless of its value.
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	if v := os.Getenv(EnvMemoryLock); v != "" {
		cfg.Security.MemoryLock = parseBool(v)
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
