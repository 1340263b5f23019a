package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hedgeheart/internal/countdown"
	"github.com/vovakirdan/hedgeheart/internal/platform/tui"
	"github.com/vovakirdan/hedgeheart/internal/storage"
)

var (
	flagOutcome string
	flagLimit   int
	flagRecent  bool
	flagBrowse  bool
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the runs that got closest to Hedgeheart.

Runs are ranked by the countdown left when they ended; runs that reached
Hedgeheart come first.

Examples:
  hedgeheart scores
  hedgeheart scores --outcome won
  hedgeheart scores --recent --limit 20
  hedgeheart scores --browse
  hedgeheart scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagOutcome, "outcome", "", "Only show runs with this outcome: won or lost")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse the history in an interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole history")
}

func runScores(_ *cobra.Command, _ []string) {
	if flagOutcome != "" && flagOutcome != storage.OutcomeWon && flagOutcome != storage.OutcomeLost {
		fmt.Fprintf(os.Stderr, "Error: unknown outcome %q (want won or lost)\n", flagOutcome)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")
		return

	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	var runs []storage.Run
	title := "Closest to Hedgeheart"
	if flagRecent {
		title = "Latest runs"
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.BestRuns(flagOutcome, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hedgeheart play' to start the journey!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-22s  %-7s  %s\n", "Rank", "Player", "Result", "Left", "Played", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-22s  %-7s  %s\n", "----", "------", "------", "----", "------", "----")
	for i, r := range runs {
		left := "-"
		if r.Score > 0 {
			left = countdown.Format(r.Score)
		}
		fmt.Printf("  %-4d  %-10s  %-6s  %-22s  %-7s  %s\n",
			i+1, r.Player, r.Outcome, left, fmt.Sprintf("%ds", r.Clock), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Made it: %d  Journey over: %d  Longest: %ds\n",
			stats.Runs, stats.Wins, stats.Losses, stats.LongestRun)
	}
}
