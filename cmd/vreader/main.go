// Package main is the entry point for the v-reader terminal text reader.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RichardViskovic/v-reader/internal/app"
	"github.com/RichardViskovic/v-reader/internal/config"
	"github.com/RichardViskovic/v-reader/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logFile    string
	logLevel   string
	cacheDir   string
	watch      bool
	noCache    bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logCfg := cfg.Log()
	logger, closeLog, err := app.OpenLogFile(logCfg.File, app.ParseLogLevel(logCfg.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	if from := cfg.LoadedFrom(); from != "" {
		logger.Info("configuration loaded from %s", from)
	}

	application, err := app.New(app.Options{
		Config: cfg,
		File:   f.file,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		logger.Error("run: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// loadConfig reads the configuration file and environment, then applies
// the command-line overrides.
func loadConfig(f flags) (*config.Config, error) {
	var opts []config.Option
	if f.configPath != "" {
		opts = append(opts, config.WithConfigPath(f.configPath))
	}
	cfg := config.New(opts...)

	if err := cfg.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	overrides := map[string]any{}
	if f.logFile != "" {
		overrides["log.file"] = f.logFile
	}
	if f.logLevel != "" {
		overrides["log.level"] = f.logLevel
	}
	if f.cacheDir != "" {
		overrides["cache.dir"] = f.cacheDir
	}
	if f.watch {
		overrides["reader.watch"] = true
	}
	if f.noCache {
		overrides["cache.enabled"] = false
	}
	for path, value := range overrides {
		if err := cfg.Set(path, value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logFile, "log", "", "Write logs to this file")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.cacheDir, "cache-dir", "", "Directory for the last-file cache")
	flag.BoolVar(&f.noCache, "no-cache", false, "Do not save or restore the last file")
	flag.BoolVar(&f.watch, "watch", false, "Reload the file when it changes on disk")
	flag.BoolVar(&f.watch, "w", false, "Reload the file when it changes on disk (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "v-reader - a line-by-line text reader for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vreader [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  space        highlight the top line / clear the highlight\n")
		fmt.Fprintf(os.Stderr, "  down, j      next line\n")
		fmt.Fprintf(os.Stderr, "  up, k        previous line\n")
		fmt.Fprintf(os.Stderr, "  tab, m       side panel\n")
		fmt.Fprintf(os.Stderr, "  o            open a file\n")
		fmt.Fprintf(os.Stderr, "  q, ctrl-c    quit\n")
		fmt.Fprintf(os.Stderr, "\nWithout a file the text from the previous session is shown.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("v-reader %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", flag.NArg())
		os.Exit(2)
	}
	f.file = flag.Arg(0)

	return f
}
