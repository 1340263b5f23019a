package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hedgeheart/internal/core"
	"github.com/vovakirdan/hedgeheart/internal/remote"
)

var (
	flagListen     string
	flagScript     string
	flagIntervalMs int
)

var controllerCmd = &cobra.Command{
	Use:   "controller",
	Short: "Serve a scripted remote controller",
	Long: `Start a WebSocket server that plays a fixed script against any game
that connects to it. Each action waits for the game's observation; the
reward and the running total are logged.

Script commands: start, reset, left, right, jump, idle.

Examples:
  hedgeheart controller
  hedgeheart controller --listen :9000 --interval 100
  hedgeheart controller --script start,jump,idle,idle,right`,
	Args: cobra.NoArgs,
	Run:  runController,
}

func init() {
	controllerCmd.Flags().StringVar(&flagListen, "listen", ":8081", "Address to listen on")
	controllerCmd.Flags().StringVar(&flagScript, "script", "", "Comma separated commands (default: built-in script)")
	controllerCmd.Flags().IntVar(&flagIntervalMs, "interval", 250, "Pause between actions in milliseconds")
}

func runController(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "controller")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var script []core.Command
	if flagScript != "" {
		script, err = remote.ParseScript(flagScript)
		if err != nil {
			logger.Fatal("invalid script", "error", err)
		}
	}

	ctrl := remote.NewController(remote.ControllerOptions{
		Script:   script,
		Interval: time.Duration(flagIntervalMs) * time.Millisecond,
		Logger:   logger,
	})
	server := &http.Server{
		Addr:              flagListen,
		Handler:           ctrl,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("controller listening", "address", flagListen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	//nolint:errcheck // Best-effort shutdown on exit
	server.Shutdown(shutdownCtx)
}
