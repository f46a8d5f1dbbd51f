// Package config handles configuration loading and defaults.
package config

import "fmt"

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultPriority   = 3
	DefaultDateFormat = "2006-01-02"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// SeedFile is an optional JSON file of initial tasks loaded at startup.
	SeedFile string `toml:"seed_file"`

	// Form defaults
	DefaultPriority int    `toml:"default_priority"`
	DateFormat      string `toml:"date_format"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// WithSources holds configuration along with source information per field.
type WithSources struct {
	Config  *Config
	Sources map[string]Source
}

// Fields returns the tracked field names in display order.
func Fields() []string {
	return []string{
		"seed_file",
		"default_priority",
		"date_format",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}

// Validate checks value constraints after all sources have been applied.
func (c *Config) Validate() error {
	if c.DefaultPriority < 1 || c.DefaultPriority > 5 {
		return fmt.Errorf("default_priority must be between 1 and 5, got %d", c.DefaultPriority)
	}
	if c.DateFormat == "" {
		return fmt.Errorf("date_format must not be empty")
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format must be one of: text, json, logfmt, got %q", c.LogFormat)
	}
	return nil
}

func setDefaults(cfg *Config) {
	cfg.DefaultPriority = DefaultPriority
	cfg.DateFormat = DefaultDateFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
}
