// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskdeck/internal/config"
	"github.com/nibzard/taskdeck/internal/logging"
	"github.com/nibzard/taskdeck/internal/seed"
	"github.com/nibzard/taskdeck/internal/store"
	"github.com/nibzard/taskdeck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	ws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := ws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	// Determine the subcommand; with no args the TUI is the default.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(ws, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newLogger builds the console logger from the resolved config.
func newLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	formatter, err := logging.ParseFormatter(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	opts := logging.DefaultOptions()
	opts.Level = level
	opts.Formatter = formatter
	opts.ReportTimestamp = cfg.LogTimestamps
	return logging.New(os.Stderr, opts), nil
}

// tuiCommand builds the session store, applies the seed file if configured,
// and launches the interactive session.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	st, err := buildStore(cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("starting session", "tasks", st.Len())
	return ui.RunTUI(ctx, cfg, st)
}

// buildStore constructs the session store, seeded when a seed file is set.
func buildStore(cfg *config.Config, logger *log.Logger) (*store.Store, error) {
	st := store.New()
	if cfg.SeedFile == "" {
		return st, nil
	}

	tasks, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("loading seed file %s: %w", cfg.SeedFile, err)
	}
	for _, t := range tasks {
		st.Add(t)
	}
	logger.Info("seeded tasks", "count", len(tasks), "file", cfg.SeedFile)
	return st, nil
}

// doctorCommand prints the resolved configuration with value sources and
// checks that the seed file, when configured, loads cleanly.
func doctorCommand(ws *config.WithSources, args []string) error {
	fs := flag.NewFlagSet("taskdeck doctor", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := ws.Config

	fmt.Println("Taskdeck Doctor")
	fmt.Println("===============")
	fmt.Println()

	fmt.Println("Config:")
	values := map[string]string{
		"seed_file":        cfg.SeedFile,
		"default_priority": fmt.Sprintf("%d", cfg.DefaultPriority),
		"date_format":      cfg.DateFormat,
		"log_level":        cfg.LogLevel,
		"log_format":       cfg.LogFormat,
		"log_timestamps":   fmt.Sprintf("%t", cfg.LogTimestamps),
	}
	for _, field := range config.Fields() {
		value := values[field]
		if value == "" {
			value = "(unset)"
		}
		fmt.Printf("  %-18s %-14s (%s)\n", field, value, ws.Sources[field])
	}
	fmt.Println()

	allOK := true

	fmt.Println("Seed file:")
	if cfg.SeedFile == "" {
		fmt.Println("  not configured, starting empty")
	} else if tasks, err := seed.Load(cfg.SeedFile); err != nil {
		fmt.Printf("  error: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("  %s: %d tasks, ok\n", cfg.SeedFile, len(tasks))
	}
	fmt.Println()

	fmt.Println("Terminal:")
	if ui.IsTTY(os.Stdout) {
		fmt.Println("  stdout is a TTY, tui available")
	} else {
		fmt.Println("  stdout is not a TTY, tui unavailable")
	}
	fmt.Println()

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// versionCommand prints the version.
func versionCommand() error {
	fmt.Printf("taskdeck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskdeck - A single-user task tracker for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui           Launch the interactive tracker (default command)")
	fmt.Fprintln(w, "  doctor        Print resolved config and check the seed file")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
