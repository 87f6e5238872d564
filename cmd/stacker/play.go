package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a training mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right - Move piece
  Up/X       - Rotate clockwise
  Z          - Rotate counterclockwise
  Down       - Soft drop
  Space      - Hard drop
  C          - Hold
  P          - Pause
  R          - Restart (after the session ends)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower gravity, longer lock delay
  normal - Config values as-is
  hard   - Faster gravity, tighter lock handling
  fixed  - Constant drill pacing for practice

Examples:
  stacker play marathon
  stacker play sprint --seed 42
  stacker play garbage --difficulty easy
  stacker play marathon --config ./my-stacker.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadEngineConfig resolves the simulation config from flags.
func loadEngineConfig() (engine.Config, error) {
	fileCfg, err := config.Load(flagConfig)
	if err != nil {
		return engine.Config{}, err
	}
	if flagDifficulty != "" {
		if !config.ValidPreset(flagDifficulty) {
			return engine.Config{}, fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
		}
		config.ApplyPreset(&fileCfg, config.DifficultyPreset(flagDifficulty))
	}
	return fileCfg.ToEngine()
}

// terminalSize returns the terminal dimensions with sane fallbacks.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'stacker list' to see available modes.")
		os.Exit(1)
	}

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

	// Create mode instance
	mode, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the session still works
		store = nil
	}

	// Run the session
	runErr := tui.Run(mode, engineCfg, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
