package engine

import "fmt"

// Config carries the physics and layout parameters of a session.
// All rates are fixed-point (Scale units = one cell).
type Config struct {
	Width         int
	VisibleHeight int
	HiddenRows    int
	Gravity       Fixed // cells per tick, fixed-point
	SoftDrop      Fixed // replaces Gravity while soft-drop is engaged
	LockDelay     Ticks // grace period after grounding, in ticks
	MaxLockResets int   // grounded move/rotate deadline extensions per piece
	Preview       int   // next-queue length kept topped up from the RNG
}

// Validate checks the configuration. Every field is validated here so that
// a constructed GameState can assume well-formed parameters throughout.
func (c Config) Validate() error {
	if c.Width <= 0 || c.VisibleHeight <= 0 || c.HiddenRows < 0 {
		return fmt.Errorf("engine: board %dx%d+%d hidden: %w",
			c.Width, c.VisibleHeight, c.HiddenRows, ErrConfiguration)
	}
	if c.Width < 4 {
		return fmt.Errorf("engine: width %d cannot fit a piece bounding box: %w", c.Width, ErrConfiguration)
	}
	if c.HiddenRows < 2 {
		return fmt.Errorf("engine: %d hidden rows cannot contain a spawned piece: %w", c.HiddenRows, ErrConfiguration)
	}
	if c.Gravity <= 0 || c.SoftDrop <= 0 {
		return fmt.Errorf("engine: gravity rates must be positive: %w", ErrConfiguration)
	}
	if c.LockDelay < 0 {
		return fmt.Errorf("engine: lock delay %d: %w", c.LockDelay, ErrConfiguration)
	}
	if c.MaxLockResets < 0 {
		return fmt.Errorf("engine: max lock resets %d: %w", c.MaxLockResets, ErrConfiguration)
	}
	if c.Preview < 1 {
		return fmt.Errorf("engine: preview length %d: %w", c.Preview, ErrConfiguration)
	}
	return nil
}

// HoldSlot is the nullable hold piece plus its once-per-piece gate.
type HoldSlot struct {
	Kind   PieceKind
	Filled bool
	Used   bool // set on hold, cleared on every lock
}

// GameState is the aggregate simulation state. It is a value: every tick or
// command produces a new state and never mutates the old one, so any saved
// state replays identically.
type GameState struct {
	Config Config
	Tick   Frame
	Board  Board

	Active    ActivePiece
	HasActive bool

	Hold  HoldSlot
	Queue []PieceKind

	GravityAcc Fixed
	SoftDrop   bool

	LockPending  bool
	LockDeadline Frame
	LockResets   int

	RNG    PieceRandomGenerator
	TopOut bool
}

// NewGameState creates the initial state for a session: an empty board, a
// queue topped up from the generator, and the first piece spawned.
func NewGameState(cfg Config, rng PieceRandomGenerator, startTick Frame) (GameState, error) {
	if err := cfg.Validate(); err != nil {
		return GameState{}, err
	}
	if rng == nil {
		return GameState{}, fmt.Errorf("engine: nil piece generator: %w", ErrConfiguration)
	}
	board, err := NewBoard(cfg.Width, cfg.VisibleHeight, cfg.HiddenRows)
	if err != nil {
		return GameState{}, err
	}

	s := GameState{
		Config: cfg,
		Tick:   startTick,
		Board:  board,
		RNG:    rng,
	}
	s.refillQueue()
	s.spawnNext()
	return s, nil
}

// clone returns a deep copy: transitions mutate the copy and return it, so
// the receiver stays untouched. The RNG needs no copying because generators
// are themselves immutable values.
func (s GameState) clone() GameState {
	s.Board = s.Board.Clone()
	queue := make([]PieceKind, len(s.Queue))
	copy(queue, s.Queue)
	s.Queue = queue
	return s
}

// refillQueue tops the next-queue up to the configured preview count.
func (s *GameState) refillQueue() {
	for len(s.Queue) < s.Config.Preview {
		var k PieceKind
		k, s.RNG = s.RNG.Draw()
		s.Queue = append(s.Queue, k)
	}
}

// spawnNext pops the queue head, refills, and spawns it as the active piece.
// On spawn collision the state becomes terminal.
func (s *GameState) spawnNext() {
	s.refillQueue()
	kind := s.Queue[0]
	s.Queue = s.Queue[1:]
	s.refillQueue()
	s.spawnKind(kind)
}

// spawnKind installs a freshly spawned piece of the given kind, resetting
// all per-piece bookkeeping. On spawn collision the state becomes terminal.
func (s *GameState) spawnKind(kind PieceKind) {
	piece := Spawn(kind, s.Board)
	if piece.Collides(s.Board) {
		s.HasActive = false
		s.TopOut = true
		return
	}
	s.Active = piece
	s.HasActive = true
	s.GravityAcc = 0
	s.LockPending = false
	s.LockDeadline = 0
	s.LockResets = 0
}

// grounded reports whether the active piece cannot move down one cell.
func (s *GameState) grounded() bool {
	return s.HasActive && s.Active.Moved(0, 1).Collides(s.Board)
}

// GhostY returns the lowest y the active piece can drop to. Presentation
// uses it for the landing preview; hard drop uses it for the final position.
func (s GameState) GhostY() int {
	if !s.HasActive {
		return 0
	}
	p := s.Active
	for !p.Moved(0, 1).Collides(s.Board) {
		p = p.Moved(0, 1)
	}
	return p.Y
}
