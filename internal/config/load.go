package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config file names looked for in the working directory.
var projectConfigNames = []string{"taskdeck.toml", ".taskdeck.toml"}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.config/taskdeck/taskdeck.toml or OS equivalent)
// 3. Project config file (taskdeck.toml or .taskdeck.toml in current directory)
// 4. Environment variables (TASKDECK_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	ws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return ws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value,
// for diagnostics like the doctor command.
func LoadWithSources(fs *flag.FlagSet, args []string) (*WithSources, error) {
	cfg := &Config{}
	sources := make(map[string]Source)

	setDefaults(cfg)
	for _, field := range Fields() {
		sources[field] = SourceDefault
	}

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg, sources)

	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &WithSources{Config: cfg, Sources: sources}, nil
}

// findUserConfigFile returns the user-level config file path, or "" if none.
func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "taskdeck", "taskdeck.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// findProjectConfigFile returns the project config file path, or "" if none.
func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadConfigFile merges a TOML file into cfg, recording the source of every
// key the file actually defines.
func loadConfigFile(cfg *Config, path string, sources map[string]Source, source Source) error {
	var fileCfg Config
	md, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	if md.IsDefined("seed_file") {
		cfg.SeedFile = fileCfg.SeedFile
		sources["seed_file"] = source
	}
	if md.IsDefined("default_priority") {
		cfg.DefaultPriority = fileCfg.DefaultPriority
		sources["default_priority"] = source
	}
	if md.IsDefined("date_format") {
		cfg.DateFormat = fileCfg.DateFormat
		sources["date_format"] = source
	}
	if md.IsDefined("log_level") {
		cfg.LogLevel = fileCfg.LogLevel
		sources["log_level"] = source
	}
	if md.IsDefined("log_format") {
		cfg.LogFormat = fileCfg.LogFormat
		sources["log_format"] = source
	}
	if md.IsDefined("log_timestamps") {
		cfg.LogTimestamps = fileCfg.LogTimestamps
		sources["log_timestamps"] = source
	}
	return nil
}

// parseFlags registers global flags on fs, parses args, and applies only the
// flags the user actually set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]Source) error {
	seedFile := fs.String("seed", cfg.SeedFile, "JSON file of initial tasks")
	defaultPriority := fs.Int("default-priority", cfg.DefaultPriority, "Default priority for new tasks (1-5)")
	dateFormat := fs.String("date-format", cfg.DateFormat, "Date format for due dates (Go reference layout)")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	logTimestamps := fs.Bool("log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.SeedFile = *seedFile
			sources["seed_file"] = SourceFlag
		case "default-priority":
			cfg.DefaultPriority = *defaultPriority
			sources["default_priority"] = SourceFlag
		case "date-format":
			cfg.DateFormat = *dateFormat
			sources["date_format"] = SourceFlag
		case "log-level":
			cfg.LogLevel = *logLevel
			sources["log_level"] = SourceFlag
		case "log-format":
			cfg.LogFormat = *logFormat
			sources["log_format"] = SourceFlag
		case "log-timestamps":
			cfg.LogTimestamps = *logTimestamps
			sources["log_timestamps"] = SourceFlag
		}
	})
	return nil
}
