// Package config provides YAML-based simulation configuration loading and
// difficulty presets for the stacker platform.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// StackerConfig contains all tunable simulation parameters. Rates are in
// fixed-point units: 1000 = one cell per tick.
type StackerConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Physics PhysicsConfig `yaml:"physics"`
	Queue   QueueConfig   `yaml:"queue"`
}

// BoardConfig defines playfield dimensions.
type BoardConfig struct {
	Width         int `yaml:"width"`
	VisibleHeight int `yaml:"visible_height"`
	HiddenRows    int `yaml:"hidden_rows"`
}

// PhysicsConfig defines fall and lock behavior.
type PhysicsConfig struct {
	Gravity        int `yaml:"gravity"`         // fall rate, fixed-point units per tick
	SoftDrop       int `yaml:"soft_drop"`       // fall rate while soft drop is engaged
	LockDelayTicks int `yaml:"lock_delay_ticks"`
	MaxLockResets  int `yaml:"max_lock_resets"`
}

// QueueConfig defines the next-piece preview.
type QueueConfig struct {
	Preview int `yaml:"preview"`
}

// ToEngine converts the file representation into a validated engine config.
func (c StackerConfig) ToEngine() (engine.Config, error) {
	gravity, err := engine.NewRate(c.Physics.Gravity)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config: gravity: %w", err)
	}
	softDrop, err := engine.NewRate(c.Physics.SoftDrop)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config: soft_drop: %w", err)
	}
	lockDelay, err := engine.NewTicks(c.Physics.LockDelayTicks)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config: lock_delay_ticks: %w", err)
	}

	cfg := engine.Config{
		Width:         c.Board.Width,
		VisibleHeight: c.Board.VisibleHeight,
		HiddenRows:    c.Board.HiddenRows,
		Gravity:       gravity,
		SoftDrop:      softDrop,
		LockDelay:     lockDelay,
		MaxLockResets: c.Physics.MaxLockResets,
		Preview:       c.Queue.Preview,
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // drill gravity, generous lock handling
)

// ValidPreset reports whether the name is a known preset.
func ValidPreset(name string) bool {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}
