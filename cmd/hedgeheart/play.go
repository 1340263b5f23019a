package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hedgeheart/internal/core"
	"github.com/vovakirdan/hedgeheart/internal/platform/tui"
	"github.com/vovakirdan/hedgeheart/internal/runner"
	"github.com/vovakirdan/hedgeheart/internal/storage"
)

var (
	flagRemote    bool
	flagRemoteURL string
	flagLogFile   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Hedgeheart in the terminal",
	Long: `Start Hedgeheart in the terminal.

Controls:
  Space/Enter  - Start a run (or click the prompt)
  Left/A       - Run back
  Right/D      - Run ahead
  Up/W         - Jump
  Down/S       - Drop faster
  Tab          - Run history
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

The on-screen buttons at the bottom row can be clicked and held.

Difficulty options:
  easy   - Slower platform, gentler speed-up
  normal - Values from the config file
  hard   - Faster platform, steeper speed-up
  fixed  - No speed-up at all

Examples:
  hedgeheart play
  hedgeheart play --difficulty easy
  hedgeheart play --config ./my-hedgeheart.yaml
  hedgeheart play --remote --remote-url ws://localhost:8081`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addRemoteFlags(playCmd)
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.hedgeheart/hedgeheart.log", "Where play logs are written")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs go to a file
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger, err := newLogger(logFile, "hedgeheart")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	// Open run storage
	var recorder runner.Recorder
	var history tui.RunSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage - game still works
		store = nil
	} else {
		recorder = store
		history = store
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := runner.Options{
		Config:   gameCfg,
		Seed:     cfg.Seed,
		Recorder: recorder,
		Logger:   logger,
	}
	if bridge := newRemote(gameCfg, logger); bridge != nil {
		opts.Remote = bridge
		go func() {
			if err := bridge.Run(ctx); err != nil {
				logger.Error("remote bridge stopped", "error", err)
			}
		}()
	}

	r, err := runner.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(r, history, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func openLogFile(path string) (*os.File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
