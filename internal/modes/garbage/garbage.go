// Package garbage implements a digging drill: the board starts buried under
// single-hole garbage rows and more arrive as pieces lock. Clearing the board
// completely wins the drill.
package garbage

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/modes"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

const (
	initialRows = 4 // garbage rows staged before play starts
	locksPerRow = 3 // pieces locked between injections
)

// Mode implements the digging drill. Hole positions come from a fixed
// arithmetic walk over the board width so a given session layout depends
// only on the board dimensions, never on the engine RNG.
type Mode struct {
	width    int
	locks    int // piece locks since the last injection
	injected int // rows injected so far, drives the hole walk
	dug      int // garbage rows removed from the board
	done     bool
}

// New creates a garbage-drill instance.
func New() *Mode {
	return &Mode{}
}

func init() {
	registry.Register("garbage", func() modes.Mode {
		return New()
	})
}

// ID returns the mode identifier.
func (m *Mode) ID() string {
	return "garbage"
}

// Title returns the display name.
func (m *Mode) Title() string {
	return "Garbage Dig"
}

// hole returns the hole column for the i-th injected row. The stride is
// coprime with common board widths, so consecutive holes never line up.
func (m *Mode) hole(i int) int {
	return (i*7 + 3) % m.width
}

// Init buries the board under the starting garbage.
func (m *Mode) Init(cfg engine.Config, st engine.GameState) modes.Result {
	m.width = cfg.Width

	holes := make([]int, initialRows)
	for i := range holes {
		holes[i] = m.hole(i)
		m.injected++
	}

	return modes.Result{
		Effects: []modes.Effect{{Message: "Dig to the bottom!"}},
		Ops:     []engine.Op{engine.AddGarbage(holes)},
		Filter:  noHold,
		Status:  m.status(),
	}
}

// Step injects a fresh garbage row every few locked pieces and checks the
// win condition: a board with no occupied cells left.
func (m *Mode) Step(in modes.StepInput) modes.Result {
	if m.done {
		return modes.Result{Done: true, Score: m.dug, Status: m.status()}
	}

	var (
		effects []modes.Effect
		ops     []engine.Op
	)

	for _, e := range in.Events {
		switch ev := e.(type) {
		case engine.PieceLockedEvent:
			m.locks++
			if m.locks >= locksPerRow {
				m.locks = 0
				ops = append(ops, engine.AddGarbage([]int{m.hole(m.injected)}))
				m.injected++
				effects = append(effects, modes.Effect{Sound: "rumble"})
			}
		case engine.LinesClearedEvent:
			m.dug += len(ev.Rows)
		}
	}

	if len(ops) == 0 && boardClean(in.State.Board) {
		m.done = true
		effects = append(effects, modes.Effect{Message: "Board clean!", Sound: "win"})
	}

	return modes.Result{
		Effects: effects,
		Ops:     ops,
		Filter:  noHold,
		Done:    m.done,
		Score:   m.dug,
		Status:  m.status(),
	}
}

func (m *Mode) status() string {
	return fmt.Sprintf("Dug %d rows", m.dug)
}

// noHold disables the hold slot: the drill is about placing what you get.
func noHold(c engine.Command) bool {
	return c != engine.CmdHold
}

// boardClean reports whether no settled cells remain anywhere on the board.
func boardClean(b engine.Board) bool {
	for _, c := range b.Cells {
		if c != engine.CellEmpty {
			return false
		}
	}
	return true
}
