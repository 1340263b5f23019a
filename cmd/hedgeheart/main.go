// hedgeheart is a side-scrolling countdown runner for the terminal.
//
// Usage:
//
//	hedgeheart play          - Play in the terminal
//	hedgeheart headless      - Run the game without a terminal (remote control)
//	hedgeheart controller    - Serve a scripted remote controller
//	hedgeheart serve         - Start SSH server for remote play
//	hedgeheart scores        - Show the run history
//	hedgeheart catalog       - List obstacle kinds
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible spawning
//	--db <path>          - Set database path (default: ~/.hedgeheart/runs.db)
//	--config <path>      - Use a custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hedgeheart/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hedgeheart",
	Short: "Hedgeheart - run the hedgehog home before the countdown ends",
	Long: `Hedgeheart is a side-scrolling obstacle runner. Every obstacle you
pass takes time off the countdown to Hedgeheart; get it low enough and the
heart itself comes to meet you.

Available commands:
  play        - Play in the terminal
  headless    - Run without a terminal, driven by a remote controller
  controller  - Serve a scripted remote controller over WebSocket
  serve       - Start SSH server for remote play
  scores      - View the run history
  catalog     - List the obstacle kinds of the loaded config

Examples:
  hedgeheart play
  hedgeheart play --difficulty hard
  hedgeheart headless --remote --remote-url ws://localhost:8081
  hedgeheart controller --listen :8081
  hedgeheart serve --ssh :2222
  hedgeheart scores --outcome won`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hedgeheart/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(controllerCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadGameConfig loads the config file and applies the difficulty preset.
func loadGameConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// seed returns the --seed value, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
