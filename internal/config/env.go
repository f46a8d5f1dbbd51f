package config

import (
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvSeedFile        = "TASKDECK_SEED_FILE"
	EnvDefaultPriority = "TASKDECK_DEFAULT_PRIORITY"
	EnvDateFormat      = "TASKDECK_DATE_FORMAT"
	EnvLogLevel        = "TASKDECK_LOG_LEVEL"
	EnvLogFormat       = "TASKDECK_LOG_FORMAT"
	EnvLogTimestamps   = "TASKDECK_LOG_TIMESTAMPS"
)

// loadFromEnv overrides config from environment variables. Unparseable
// numeric or boolean values are ignored rather than failing startup.
func loadFromEnv(cfg *Config, sources map[string]Source) {
	if v := os.Getenv(EnvSeedFile); v != "" {
		cfg.SeedFile = v
		sources["seed_file"] = SourceEnv
	}
	if v := os.Getenv(EnvDefaultPriority); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultPriority = n
			sources["default_priority"] = SourceEnv
		}
	}
	if v := os.Getenv(EnvDateFormat); v != "" {
		cfg.DateFormat = v
		sources["date_format"] = SourceEnv
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		sources["log_level"] = SourceEnv
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		sources["log_format"] = SourceEnv
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogTimestamps = b
			sources["log_timestamps"] = SourceEnv
		}
	}
}
