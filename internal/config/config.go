// Package config provides configuration management for the secreon CLI:
// defaults, YAML on-disk persistence, environment overrides, and a
// structured logger, following the same layering the engine's host
// application uses for its own settings.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Sharing  SharingConfig  `yaml:"sharing"`
	Security SecurityConfig `yaml:"security"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Warnings accumulates non-fatal issues noticed while applying
	// environment overrides, surfaced by the CLI rather than failing outright.
	Warnings []string `yaml:"-"`
}

// SharingConfig holds mnemonic-split parameters loaded from the config
// file. The generate command does not read it; its defaults are the ones
// fixed in its flag definitions.
type SharingConfig struct {
	Extendable        bool `yaml:"extendable"`
	IterationExponent int  `yaml:"iteration_exponent"`
	GroupThreshold    int  `yaml:"group_threshold"`
	MemberThreshold   int  `yaml:"member_threshold"`
	MemberCount       int  `yaml:"member_count"`
}

// SecurityConfig defines security-related settings.
type SecurityConfig struct {
	MemoryLock bool `yaml:"memory_lock"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file, layering it over the
// defaults so a partial file is valid.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path under home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the secreon home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// GetSecurity returns the security configuration.
func (c *Config) GetSecurity() SecurityConfig {
	return c.Security
}

// DefaultHome returns the default secreon home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".secreon"
	}
	return filepath.Join(home, ".secreon")
}
