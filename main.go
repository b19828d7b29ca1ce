package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	app "github.com/rocketscienceinc/tictactoe-timetravel/internal"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
)

var errUnknownCommand = errors.New("unknown command")

var (
	configPath string
	moves      []int
	help       bool
)

func init() {
	flag.StringVarP(&configPath, "config", "c", "", "Path to the config file (defaults to ./config.yml)")
	flag.IntSliceVarP(&moves, "moves", "m", nil, "Cells to play in order for the replay command, e.g. 0,3,1")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.Usage = usage
}

func usage() {
	fmt.Println("tictactoe - tic-tac-toe with move history and time travel")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  tictactoe [options] [serve|tui|replay]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  serve    Serve the web page and websocket API (default)")
	fmt.Println("  tui      Play in the terminal")
	fmt.Println("  replay   Print the game produced by --moves")
	fmt.Println("")
	fmt.Println("Options:")
	flag.PrintDefaults()
}

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	flag.Parse()
	if help {
		usage()
		return
	}

	conf := initConfig()

	command := "serve"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if err := run(command, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func run(command string, conf *config.Config) error {
	switch command {
	case "serve":
		return app.RunServer(initLogger(conf, os.Stdout), conf)
	case "tui":
		logOut, closeLog, err := tuiLogOutput(conf)
		if err != nil {
			return err
		}
		defer closeLog()

		return app.RunTUI(initLogger(conf, logOut))
	case "replay":
		return app.RunReplay(initLogger(conf, os.Stderr), os.Stdout, moves)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

// initialize config.
func initConfig() *config.Config {
	if configPath != "" {
		return config.MustLoad(configPath)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// tuiLogOutput - the terminal belongs to the UI, so logs go to a file or nowhere.
func tuiLogOutput(conf *config.Config) (io.Writer, func(), error) {
	if conf.TUI.LogFile == "" {
		return io.Discard, func() {}, nil
	}

	file, err := os.OpenFile(conf.TUI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, func() { _ = file.Close() }, nil
}
