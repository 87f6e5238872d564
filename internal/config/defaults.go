package config

import (
	_ "embed"
)

//go:embed defaults/stacker.yaml
var defaultStackerYAML []byte

// DefaultStackerConfig returns the default simulation configuration:
// a guideline 10x20 board with three hidden rows, 60 ticks per second
// pacing, and a five-piece preview.
func DefaultStackerConfig() StackerConfig {
	return StackerConfig{
		Board: BoardConfig{
			Width:         10,
			VisibleHeight: 20,
			HiddenRows:    3,
		},
		Physics: PhysicsConfig{
			Gravity:        17,   // ~1 cell per second at 60 ticks/s
			SoftDrop:       1000, // 1 cell per tick
			LockDelayTicks: 30,   // half a second
			MaxLockResets:  15,
		},
		Queue: QueueConfig{
			Preview: 5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultStackerYAML
}
