// stacker is a deterministic falling-block training platform for the terminal.
//
// Usage:
//
//	stacker list              - List available training modes
//	stacker play <mode>       - Play a mode
//	stacker menu              - Start menu to pick modes interactively
//	stacker serve             - Start SSH server for remote play
//	stacker scores <mode>     - Show best results for a mode
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.stacker/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-stacker/internal/modes/garbage"
	_ "github.com/vovakirdan/tui-stacker/internal/modes/marathon"
	_ "github.com/vovakirdan/tui-stacker/internal/modes/sprint"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stacker",
	Short: "Stacker - deterministic falling-block training in your terminal",
	Long: `Stacker is a terminal falling-block simulator built around a fully
deterministic engine: the same seed and the same inputs always produce the
same game, tick for tick.

Available commands:
  list     - Show all available training modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best results

Examples:
  stacker list
  stacker play marathon
  stacker play sprint --seed 42
  stacker menu
  stacker serve --ssh :2222
  stacker scores marathon`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stacker/results.db", "Path to results database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
