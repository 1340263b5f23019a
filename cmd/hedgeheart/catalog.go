package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hedgeheart/internal/config"
	"github.com/vovakirdan/hedgeheart/internal/countdown"
	"github.com/vovakirdan/hedgeheart/internal/game"
)

var flagPrintDefaults bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List obstacle kinds",
	Long: `Shows the obstacle catalog of the loaded config in difficulty order.

The spawner only draws from the first entries of the list; the eligible
prefix grows with the platform speed.

Examples:
  hedgeheart catalog
  hedgeheart catalog --difficulty hard
  hedgeheart catalog --defaults > configs/hedgeheart.yaml`,
	Args: cobra.NoArgs,
	Run:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&flagPrintDefaults, "defaults", false, "Print the built-in config document and exit")
}

func runCatalog(_ *cobra.Command, _ []string) {
	if flagPrintDefaults {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck
		return
	}

	cfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cat, err := game.NewCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	maxNameLen := 4 // "Name" header
	for _, a := range cat.Obstacles {
		maxNameLen = max(maxNameLen, len(a.Name))
	}

	fmt.Println("Obstacles:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-6s  %-7s  %-11s  %s\n", "#", maxNameLen, "Name", "Speed", "Gravity", "Motion", "Score")
	fmt.Printf("  %-3s  %-*s  %-6s  %-7s  %-11s  %s\n", "-", maxNameLen, "----", "-----", "-------", "------", "-----")
	for i, a := range cat.Obstacles {
		if a.Cluster() {
			fmt.Printf("  %-3d  %-*s  %-6s  %-7s  %-11s  %s\n", i+1, maxNameLen, a.Name, "-", "-",
				fmt.Sprintf("%d members", len(a.Members)), countdown.Format(a.Score))
			continue
		}
		fmt.Printf("  %-3d  %-*s  %-6.1f  %-7s  %-11s  %s\n", i+1, maxNameLen, a.Name,
			a.SpeedFactor, a.Gravity, a.Pattern, countdown.Format(a.Score))
	}

	fmt.Println()
	fmt.Printf("Winner: %s (%s) once the countdown drops below %ds\n",
		cat.Winner.Name, cat.Winner.Pattern, cfg.Countdown.WinThreshold)
	fmt.Printf("Celebration: %d entities\n", len(cat.Celebration))
}
