// Package main is the entry point for the rainbow-csv viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/NivWeisman/rainbow-csv/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	var delim rune
	if cli.delimiter != "" {
		if utf8.RuneCountInString(cli.delimiter) != 1 {
			fmt.Fprintf(os.Stderr, "Error: delimiter must be a single character, got %q\n", cli.delimiter)
			return 1
		}
		delim, _ = utf8.DecodeRuneInString(cli.delimiter)
		if delim == '"' {
			fmt.Fprintf(os.Stderr, "Error: delimiter cannot be the quote character\n")
			return 1
		}
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cli.logLevel),
		Prefix: "rainbow-csv",
	})
	if cli.logFile != "" {
		f, err := os.OpenFile(cli.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		// The viewer owns the terminal while it runs; writing logs to
		// stderr would tear up the screen.
		logger.Disable()
	}

	application, err := app.New(app.Options{
		Path:        cli.path,
		ConfigPath:  cli.configPath,
		WatchConfig: cli.watch,
		Delimiter:   delim,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Close()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Quit()
	}()

	if err := application.Run(); err != nil {
		// Check if it's a normal quit using errors.Is for wrapped errors
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

type cliOptions struct {
	path       string
	configPath string
	delimiter  string
	logLevel   string
	logFile    string
	watch      bool
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.delimiter, "delimiter", "", "Field delimiter (overrides config)")
	flag.StringVar(&opts.delimiter, "d", "", "Field delimiter (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload configuration when it changes")
	flag.BoolVar(&opts.watch, "w", false, "Reload configuration when it changes (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rainbow-csv - column highlighting for delimited files\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rainbow-csv [options] file.csv\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rainbow-csv data.csv                  View a file\n")
		fmt.Fprintf(os.Stderr, "  rainbow-csv -d ';' data.csv           Use a semicolon delimiter\n")
		fmt.Fprintf(os.Stderr, "  rainbow-csv -c rc.toml -w data.csv    Reload config on change\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("rainbow-csv %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	args := flag.Args()
	switch len(args) {
	case 1:
		opts.path = args[0]
	case 0:
		fmt.Fprintf(os.Stderr, "Error: no input file\n\n")
		flag.Usage()
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected one input file, got %d\n", len(args))
		os.Exit(1)
	}

	return opts
}
