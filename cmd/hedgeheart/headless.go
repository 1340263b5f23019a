package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/hedgeheart/internal/config"
	"github.com/vovakirdan/hedgeheart/internal/remote"
	"github.com/vovakirdan/hedgeheart/internal/runner"
	"github.com/vovakirdan/hedgeheart/internal/storage"
)

var (
	flagAutoStart bool
	flagMaxRuns   int
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the game without a terminal",
	Long: `Run the game loop in real time without drawing anything.

This is meant for remote controllers: the game connects to the controller
URL, consumes its actions and answers each one with an observation grid.
Finished runs are recorded in the run history.

Examples:
  hedgeheart headless --remote-url ws://localhost:8081
  hedgeheart headless --runs 10 --seed 42
  hedgeheart headless --auto-start=false`,
	Args: cobra.NoArgs,
	Run:  runHeadless,
}

func init() {
	addRemoteFlags(headlessCmd)
	headlessCmd.Flags().BoolVar(&flagAutoStart, "auto-start", false, "Start a new run whenever none is in progress")
	headlessCmd.Flags().IntVar(&flagMaxRuns, "runs", 0, "Stop after this many finished runs (0 = no limit)")
}

// addRemoteFlags registers the controller flags shared by play and headless.
func addRemoteFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagRemote, "remote", false, "Connect to a remote controller")
	cmd.Flags().StringVar(&flagRemoteURL, "remote-url", "", "Remote controller URL (overrides the config, implies --remote)")
}

// newRemote creates the controller bridge when the config or the flags
// enable it. It returns nil when remote control is off.
func newRemote(cfg config.GameConfig, logger *log.Logger) *remote.Bridge {
	rc := cfg.Remote
	url := rc.URL
	if flagRemoteURL != "" {
		url = flagRemoteURL
	}
	if !rc.Enabled && !flagRemote && flagRemoteURL == "" {
		return nil
	}

	return remote.NewBridge(remote.Options{
		URL:               url,
		ReconnectInterval: time.Duration(rc.ReconnectIntervalMs) * time.Millisecond,
		MaxRetries:        rc.MaxRetries,
		Logger:            logger.WithPrefix("remote"),
	})
}

func runHeadless(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "hedgeheart")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}
	flagRemote = true // headless play is remote play

	opts := runner.Options{
		Config: gameCfg,
		Seed:   seed(),
		Player: "remote",
		Logger: logger,
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
	} else {
		defer store.Close()
		opts.Recorder = store
	}
	bridge := newRemote(gameCfg, logger)
	opts.Remote = bridge

	r, err := runner.New(opts)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	// The loop ends the group: a finished run budget also stops the bridge.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return r.RunHeadless(gctx, runner.HeadlessOptions{
			TickRate:  flagFPS,
			AutoStart: flagAutoStart,
			MaxRuns:   flagMaxRuns,
		})
	})
	g.Go(func() error {
		return bridge.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("headless loop failed", "error", err)
		return
	}
	logger.Info("controller", "connected", bridge.Connected(), "attempts", bridge.Attempts())
	if res, ok := r.Last(); ok {
		logger.Info("last run", "outcome", res.Outcome, "score", res.Score, "clock", res.Clock)
	}
}
