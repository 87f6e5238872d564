package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available training modes",
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes registered.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Find max width for alignment
	maxIDLen := 0
	for _, info := range modes {
		if len(info.ID) > maxIDLen {
			maxIDLen = len(info.ID)
		}
	}

	for _, info := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, info.ID, info.Title)
	}

	fmt.Println()
	fmt.Println("Play a mode with: stacker play <mode>")
}
