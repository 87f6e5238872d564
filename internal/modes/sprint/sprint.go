// Package sprint implements the 40-line race: clear 40 lines in as few
// ticks as possible.
package sprint

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/engine"
	"github.com/vovakirdan/tui-stacker/internal/modes"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

// goal is the number of lines to clear.
const goal = 40

// Mode implements the line race. Score is the cleared line count; the
// elapsed tick count is surfaced through Duration for result storage.
type Mode struct {
	lines int
	ticks int
	done  bool

	// practice holds an optional scripted queue installed at Init, so a
	// run can be repeated against the exact same pieces.
	practice []engine.PieceKind
}

// New creates a sprint instance.
func New() *Mode {
	return &Mode{}
}

// NewPractice creates a sprint that replaces the opening queue with a fixed
// piece sequence for reproducible drilling.
func NewPractice(seq []engine.PieceKind) *Mode {
	return &Mode{practice: append([]engine.PieceKind(nil), seq...)}
}

func init() {
	registry.Register("sprint", func() modes.Mode {
		return New()
	})
}

// ID returns the mode identifier.
func (m *Mode) ID() string {
	return "sprint"
}

// Title returns the display name.
func (m *Mode) Title() string {
	return "Sprint 40"
}

// Duration returns the elapsed tick count.
func (m *Mode) Duration() int {
	return m.ticks
}

// Init optionally installs the practice queue.
func (m *Mode) Init(cfg engine.Config, st engine.GameState) modes.Result {
	r := modes.Result{
		Effects: []modes.Effect{{Message: fmt.Sprintf("Clear %d lines!", goal)}},
		Status:  m.status(),
	}
	if len(m.practice) > 0 {
		r.Ops = []engine.Op{engine.ReplaceQueue(m.practice)}
	}
	return r
}

// Step counts cleared lines and finishes the race at the goal.
func (m *Mode) Step(in modes.StepInput) modes.Result {
	if m.done {
		return modes.Result{Done: true, Score: m.lines, Status: m.status()}
	}

	m.ticks++

	var effects []modes.Effect
	for _, e := range in.Events {
		cleared, ok := e.(engine.LinesClearedEvent)
		if !ok {
			continue
		}
		m.lines += len(cleared.Rows)
		effects = append(effects, modes.Effect{Sound: "clear"})
	}

	if m.lines >= goal {
		m.done = true
		effects = append(effects, modes.Effect{Message: "Finished!", Sound: "win"})
	}

	return modes.Result{
		Effects: effects,
		Done:    m.done,
		Score:   m.lines,
		Status:  m.status(),
	}
}

func (m *Mode) status() string {
	return fmt.Sprintf("%d/%d lines", m.lines, goal)
}
