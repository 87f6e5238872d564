package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show best results for a mode",
	Long: `Display the top results for the specified mode.

Examples:
  stacker scores marathon
  stacker scores sprint --db ./my-results.db`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'stacker list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.TopResults(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read results: %v\n", err)
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Printf("No results yet for %q. Play it first!\n", modeID)
		return
	}

	fmt.Printf("Best results for %s:\n", modeID)
	fmt.Println()
	fmt.Printf("  %-5s %-10s %-7s %-8s %s\n", "Rank", "Score", "Lines", "Time", "Date")

	for i, r := range results {
		seconds := r.Duration / 60
		fmt.Printf("  %-5d %-10d %-7d %d:%02d     %s\n",
			i+1, r.Score, r.Lines, seconds/60, seconds%60,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(modeID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
