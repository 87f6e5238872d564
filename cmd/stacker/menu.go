package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive mode picker",
	Long: `Open an interactive menu to pick a mode.

Navigation:
  Up/Down - Move selection
  Enter   - Play selected mode
  Tab     - View best results
  Q       - Quit

After a session ends you return to the menu.`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(cmd *cobra.Command, args []string) {
	engineCfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	// Menu loop: menu -> play/scoreboard -> back to menu
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			os.Exit(1)
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error showing scoreboard: %v\n", err)
				os.Exit(1)
			}
			if !goBack {
				return
			}
			continue
		}

		mode, err := registry.Create(result.ModeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
			os.Exit(1)
		}

		// Each run gets a fresh seed unless one was pinned on the command line
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(mode, engineCfg, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
			os.Exit(1)
		}
	}
}
