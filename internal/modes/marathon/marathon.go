// Package marathon implements the default free-play scenario: endless play
// with guideline-style scoring and level tracking.
package marathon

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/modes"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

// scoreTable maps lines-cleared-at-once to base points.
var scoreTable = [5]int{0, 100, 300, 500, 800}

// linesPerLevel is how many cleared lines advance the displayed level.
const linesPerLevel = 10

// Mode implements free play.
type Mode struct {
	score int
	lines int
	level int
}

// New creates a marathon mode instance.
func New() *Mode {
	return &Mode{}
}

func init() {
	registry.Register("marathon", func() modes.Mode {
		return New()
	})
}

// ID returns the mode identifier.
func (m *Mode) ID() string {
	return "marathon"
}

// Title returns the display name.
func (m *Mode) Title() string {
	return "Marathon"
}

// Init needs no staging: marathon plays on the canonical empty board.
func (m *Mode) Init(cfg engine.Config, st engine.GameState) modes.Result {
	return modes.Result{
		Effects: []modes.Effect{{Message: "Marathon: stack as long as you can"}},
		Status:  m.status(),
	}
}

// Step scores the previous tick's clears. Marathon never finishes on its
// own; the session ends at top-out.
func (m *Mode) Step(in modes.StepInput) modes.Result {
	var effects []modes.Effect

	for _, e := range in.Events {
		cleared, ok := e.(engine.LinesClearedEvent)
		if !ok {
			continue
		}
		n := len(cleared.Rows)
		if n >= len(scoreTable) {
			n = len(scoreTable) - 1
		}
		m.score += scoreTable[n] * (m.level + 1)
		m.lines += len(cleared.Rows)
		prevLevel := m.level
		m.level = m.lines / linesPerLevel

		if n == 4 {
			effects = append(effects, modes.Effect{Message: "Tetris!", Sound: "clear4"})
		} else {
			effects = append(effects, modes.Effect{Sound: "clear"})
		}
		if m.level > prevLevel {
			effects = append(effects, modes.Effect{
				Message: fmt.Sprintf("Level %d", m.level+1),
				Sound:   "levelup",
			})
		}
	}

	return modes.Result{
		Effects: effects,
		Score:   m.score,
		Status:  m.status(),
	}
}

func (m *Mode) status() string {
	return fmt.Sprintf("Level %d  Lines %d", m.level+1, m.lines)
}
