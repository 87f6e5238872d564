// Package modes defines the training-scenario contract layered on top of the
// engine. A mode observes engine state and events, stages boards and garbage
// through engine ops, and restricts or annotates play. It never reaches into
// the tick pipeline itself.
package modes

import (
	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// Effect is a presentation-layer side-effect descriptor. Modes emit them;
// the platform decides how (or whether) to show them.
type Effect struct {
	Message string
	Sound   string // cue name, empty for silent effects
}

// CommandFilter restricts which submitted commands reach the engine during
// one tick. A nil filter forwards everything.
type CommandFilter func(engine.Command) bool

// Result is what a mode hands back from Init and Step.
type Result struct {
	Effects []Effect
	Ops     []engine.Op   // applied to the engine state between ticks
	Filter  CommandFilter // applies to the upcoming tick only
	Done    bool          // the scenario's win condition was reached
	Score   int           // mode-defined score for display and storage
	Status  string        // one-line HUD annotation
}

// StepInput carries everything a mode may inspect for one tick.
type StepInput struct {
	Commands []engine.Command  // control commands submitted this tick
	State    engine.GameState  // engine state after the last tick
	Events   []engine.Event    // events the last tick produced
}

// Mode is a training scenario. Implementations are stateful: the platform
// creates a fresh instance per session, calls Init once, then Step every
// tick. Modes must stay deterministic: their decisions may depend only on
// their inputs, never on wall clock or shared state.
type Mode interface {
	// ID returns a unique identifier (e.g. "marathon", "garbage").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Init inspects the freshly created engine state and may stage the
	// scenario with ops (pre-filled boards, scripted queues).
	Init(cfg engine.Config, st engine.GameState) Result

	// Step runs once per tick, before the engine transition.
	Step(in StepInput) Result
}
