package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"1", "1", true},
		{"true", "true", true},
		{"TRUE", "TRUE", true},
		{"yes", "yes", true},
		{"YES", "YES", true},
		{"on", "on", true},
		{"ON", "ON", true},
		{"with spaces", "  true  ", true},
		{"0", "0", false},
		{"false", "false", false},
		{"FALSE", "FALSE", false},
		{"no", "no", false},
		{"off", "off", false},
		{"empty", "", false},
		{"random", "random", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := parseBool(tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestApplyEnvironment(t *testing.T) {
	// Cannot run in parallel: modifies process environment.

	t.Run("home override", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvHome, "/custom/home")
		ApplyEnvironment(cfg)
		assert.Equal(t, "/custom/home", cfg.Home)
	})

	t.Run("output format", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvOutputFormat, "JSON")
		ApplyEnvironment(cfg)
		assert.Equal(t, "json", cfg.Output.DefaultFormat)
	})

	t.Run("invalid output format records a warning", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvOutputFormat, "yaml")
		ApplyEnvironment(cfg)
		assert.Equal(t, "auto", cfg.Output.DefaultFormat)
		assert.Len(t, cfg.Warnings, 1)
		assert.Contains(t, cfg.Warnings[0], "SECREON_OUTPUT_FORMAT=yaml")
	})

	t.Run("verbose values", func(t *testing.T) {
		tests := []struct {
			value    string
			expected bool
		}{
			{"true", true},
			{"1", true},
			{"yes", true},
			{"false", false},
			{"0", false},
			{"", false},
		}

		for _, tt := range tests {
			t.Run(tt.value, func(t *testing.T) {
				cfg := Defaults()
				t.Setenv(EnvVerbose, tt.value)
				ApplyEnvironment(cfg)
				assert.Equal(t, tt.expected, cfg.Output.Verbose)
			})
		}
	})

	t.Run("log level", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvLogLevel, "DEBUG")
		ApplyEnvironment(cfg)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("log file", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvLogFile, "/tmp/secreon.log")
		ApplyEnvironment(cfg)
		assert.Equal(t, "/tmp/secreon.log", cfg.Logging.File)
	})

	t.Run("no color", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvNoColor, "1")
		ApplyEnvironment(cfg)
		assert.Equal(t, "never", cfg.Output.Color)
	})

	t.Run("memory lock", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvMemoryLock, "false")
		ApplyEnvironment(cfg)
		assert.False(t, cfg.Security.MemoryLock)
	})

	t.Run("multiple env vars", func(t *testing.T) {
		cfg := Defaults()
		t.Setenv(EnvHome, "/custom/home")
		t.Setenv(EnvOutputFormat, "json")
		t.Setenv(EnvVerbose, "true")

		ApplyEnvironment(cfg)

		assert.Equal(t, "/custom/home", cfg.Home)
		assert.Equal(t, "json", cfg.Output.DefaultFormat)
		assert.True(t, cfg.Output.Verbose)
	})
}

func TestDefaults_Fields(t *testing.T) {
	t.Parallel()

	cfg := Defaults()

	assert.NotEmpty(t, cfg.Home)
	assert.True(t, cfg.Sharing.Extendable)
	assert.True(t, cfg.Security.MemoryLock)
	assert.Equal(t, "auto", cfg.Output.DefaultFormat)
}
