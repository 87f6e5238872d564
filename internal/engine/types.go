// Package engine implements a deterministic, replayable falling-block
// simulation. It is UI-agnostic and contains no external dependencies so the
// core stays pure and testable: every transition consumes a GameState value
// and returns a new one, and identical (state, commands, tick) triples always
// yield identical successors.
package engine

import "fmt"

// CellValue is the content of one board cell.
// 0 is empty, 1-7 are the seven piece kinds, 8 is garbage.
type CellValue uint8

const (
	CellEmpty   CellValue = 0
	CellGarbage CellValue = 8
)

// NewCellValue validates an integer cell value at the boundary.
func NewCellValue(v int) (CellValue, error) {
	if v < 0 || v > int(CellGarbage) {
		return 0, fmt.Errorf("engine: cell value %d outside [0,8]: %w", v, ErrBounds)
	}
	return CellValue(v), nil
}

// Frame is the simulation clock, counted in ticks since session start.
type Frame uint64

// Ticks is a duration measured in simulation ticks.
type Ticks int

// NewTicks validates a tick duration.
func NewTicks(n int) (Ticks, error) {
	if n < 0 {
		return 0, fmt.Errorf("engine: duration %d must not be negative: %w", n, ErrConfiguration)
	}
	return Ticks(n), nil
}

// Seed identifies a reproducible random stream.
type Seed int64
