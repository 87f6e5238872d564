package engine

import (
	"reflect"
	"testing"
)

func testConfig() Config {
	return Config{
		Width:         10,
		VisibleHeight: 20,
		HiddenRows:    3,
		Gravity:       Scale, // one cell per tick
		SoftDrop:      20 * Scale,
		LockDelay:     3,
		MaxLockResets: 2,
		Preview:       5,
	}
}

// newTestState builds a session over a scripted piece sequence so tests know
// exactly which pieces arrive.
func newTestState(t *testing.T, cfg Config, seq ...PieceKind) GameState {
	t.Helper()
	if len(seq) == 0 {
		seq = []PieceKind{PieceO}
	}
	gen, err := NewFixedSequence(seq)
	if err != nil {
		t.Fatalf("NewFixedSequence failed: %v", err)
	}
	s, err := NewGameState(cfg, gen, 0)
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	return s
}

// stepN advances n ticks with no input.
func stepN(t *testing.T, s GameState, n int) (GameState, []Event) {
	t.Helper()
	var all []Event
	for range n {
		var events []Event
		var err error
		s, events, err = Step(s, nil)
		if err != nil {
			t.Fatalf("Step failed at tick %d: %v", s.Tick, err)
		}
		all = append(all, events...)
	}
	return s, all
}

func TestNewGameStateInitialShape(t *testing.T) {
	s := newTestState(t, testConfig(), PieceI, PieceO, PieceT)

	if !s.HasActive {
		t.Fatal("no active piece after construction")
	}
	if s.Active.Kind != PieceI {
		t.Errorf("active piece = %s, want I", s.Active.Kind)
	}
	if len(s.Queue) != s.Config.Preview {
		t.Errorf("queue length = %d, want %d", len(s.Queue), s.Config.Preview)
	}
	if s.Queue[0] != PieceO {
		t.Errorf("queue head = %s, want O", s.Queue[0])
	}
	if s.TopOut {
		t.Error("fresh session is terminal")
	}
}

func TestNewGameStateValidatesConfig(t *testing.T) {
	gen, _ := NewFixedSequence([]PieceKind{PieceI})

	bad := testConfig()
	bad.Preview = 0
	if _, err := NewGameState(bad, gen, 0); err == nil {
		t.Error("NewGameState accepted zero preview")
	}

	if _, err := NewGameState(testConfig(), nil, 0); err == nil {
		t.Error("NewGameState accepted nil generator")
	}
}

func TestGravityDropsWholeCells(t *testing.T) {
	cfg := testConfig()
	cfg.Gravity = Scale / 2 // half a cell per tick
	s := newTestState(t, cfg, PieceO)

	startY := s.Active.Y

	s, _ = stepN(t, s, 1)
	if s.Active.Y != startY {
		t.Errorf("piece dropped after half a cell accumulated")
	}

	s, _ = stepN(t, s, 1)
	if s.Active.Y != startY+1 {
		t.Errorf("Y = %d after two ticks, want %d", s.Active.Y, startY+1)
	}
}

func TestSoftDropRate(t *testing.T) {
	cfg := testConfig()
	cfg.Gravity = Scale / 10
	cfg.SoftDrop = Scale
	s := newTestState(t, cfg, PieceO)
	startY := s.Active.Y

	s, _, err := Step(s, []Command{CmdSoftDropOn})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.Active.Y != startY+1 {
		t.Errorf("Y = %d with soft drop engaged, want %d", s.Active.Y, startY+1)
	}

	s, _, err = Step(s, []Command{CmdSoftDropOff})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.Active.Y != startY+1 {
		t.Errorf("Y = %d after disengaging soft drop, want %d", s.Active.Y, startY+1)
	}
}

func TestLockAfterLockDelay(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	// O spawns at y=-2 and rests at y=18; one cell per tick grounds it at
	// tick 20, arming the deadline at 20+3.
	s, events := stepN(t, s, 22)
	if len(events) != 0 {
		t.Fatalf("piece locked before deadline: %v", events)
	}
	if !s.LockPending {
		t.Fatal("lock deadline not armed while grounded")
	}

	s, events = stepN(t, s, 1) // tick 23 == deadline
	locked := false
	for _, e := range events {
		if _, ok := e.(PieceLockedEvent); ok {
			locked = true
		}
	}
	if !locked {
		t.Fatal("no PieceLockedEvent at the deadline tick")
	}

	// O occupies columns 4-5, rows 18-19.
	for _, c := range []Coord{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		if s.Board.Cell(c.X, c.Y) != PieceO.Cell() {
			t.Errorf("Cell(%d, %d) = %d, want locked O", c.X, c.Y, s.Board.Cell(c.X, c.Y))
		}
	}

	// The next piece respawned fresh.
	if !s.HasActive || s.Active.Y != -2 {
		t.Errorf("next piece not at spawn: HasActive=%v Y=%d", s.HasActive, s.Active.Y)
	}
}

func TestGroundedMoveExtendsDeadlineUpToCap(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO) // MaxLockResets: 2

	s, _ = stepN(t, s, 20) // grounded, deadline = 23
	if !s.LockPending || s.LockDeadline != 23 {
		t.Fatalf("after grounding: pending=%v deadline=%d, want pending at 23", s.LockPending, s.LockDeadline)
	}

	step := func(cmds ...Command) []Event {
		t.Helper()
		var events []Event
		var err error
		s, events, err = Step(s, cmds)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		return events
	}

	step(CmdMoveLeft) // tick 21: reset 1, deadline 24
	if s.LockDeadline != 24 || s.LockResets != 1 {
		t.Fatalf("after first reset: deadline=%d resets=%d", s.LockDeadline, s.LockResets)
	}

	step(CmdMoveRight) // tick 22: reset 2 (cap), deadline 25
	if s.LockDeadline != 25 || s.LockResets != 2 {
		t.Fatalf("after second reset: deadline=%d resets=%d", s.LockDeadline, s.LockResets)
	}

	// Cap reached: further successful moves no longer extend.
	step(CmdMoveLeft) // tick 23
	if s.LockDeadline != 25 {
		t.Fatalf("deadline extended past the cap: %d", s.LockDeadline)
	}

	step(CmdMoveRight)          // tick 24
	events := step(CmdMoveLeft) // tick 25: lock fires despite input
	locked := false
	for _, e := range events {
		if _, ok := e.(PieceLockedEvent); ok {
			locked = true
		}
	}
	if !locked {
		t.Error("anti-stall lock did not fire at the frozen deadline")
	}
}

func TestHardDropLocksImmediately(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	s, events, err := Step(s, []Command{CmdHardDrop})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	var locked *PieceLockedEvent
	for _, e := range events {
		if ev, ok := e.(PieceLockedEvent); ok {
			locked = &ev
		}
	}
	if locked == nil {
		t.Fatal("hard drop did not lock")
	}
	if !locked.HardDrop {
		t.Error("PieceLockedEvent.HardDrop = false")
	}
	if s.Board.Cell(4, 19) != PieceO.Cell() {
		t.Error("piece not committed at the floor")
	}
}

func TestLineClearOnLock(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	// Fill the bottom row except the O landing columns 4-5.
	for x := 0; x < s.Board.Width; x++ {
		if x == 4 || x == 5 {
			continue
		}
		idx, err := s.Board.Index(x, 19)
		if err != nil {
			t.Fatalf("Index failed: %v", err)
		}
		s.Board.Cells[idx] = CellGarbage
	}

	s, events, err := Step(s, []Command{CmdHardDrop})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	var clearedRows []int
	rowsCleared := 0
	for _, e := range events {
		switch ev := e.(type) {
		case LinesClearedEvent:
			clearedRows = ev.Rows
		case PieceLockedEvent:
			rowsCleared = ev.RowsCleared
		}
	}
	if len(clearedRows) != 1 || rowsCleared != 1 {
		t.Fatalf("cleared rows = %v (locked reports %d), want one row", clearedRows, rowsCleared)
	}

	// Top half of the O shifted down to the bottom row; garbage is gone.
	if s.Board.Cell(4, 19) != PieceO.Cell() || s.Board.Cell(5, 19) != PieceO.Cell() {
		t.Error("remaining O cells did not shift to the bottom row")
	}
	if s.Board.Cell(0, 19) != CellEmpty {
		t.Error("garbage survived the clear")
	}
}

func TestHoldSwapsOncePerPiece(t *testing.T) {
	s := newTestState(t, testConfig(), PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL)

	// First hold stores I and activates the queue head O.
	s, _, err := Step(s, []Command{CmdHold})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !s.Hold.Filled || s.Hold.Kind != PieceI || !s.Hold.Used {
		t.Fatalf("hold slot = %+v, want I/filled/used", s.Hold)
	}
	if s.Active.Kind != PieceO {
		t.Fatalf("active = %s after hold, want O", s.Active.Kind)
	}

	// Second hold in the same piece lifetime is ignored.
	s, _, err = Step(s, []Command{CmdHold})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.Active.Kind != PieceO || s.Hold.Kind != PieceI {
		t.Error("hold gate did not block the second swap")
	}

	// Lock the O; the gate re-arms.
	s, _, err = Step(s, []Command{CmdHardDrop})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.Hold.Used {
		t.Error("hold used flag not reset on lock")
	}

	// Now holding swaps with the stored I, respawned fresh.
	s, _, err = Step(s, []Command{CmdHold})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.Active.Kind != PieceI {
		t.Errorf("active = %s after swap, want I", s.Active.Kind)
	}
	if s.Active.Rot != RotSpawn || s.Active.Y != -2 {
		t.Error("swapped-in piece did not respawn at spawn position/orientation")
	}
	if s.Hold.Kind != PieceT || !s.Hold.Used {
		t.Errorf("hold slot = %+v, want T/used", s.Hold)
	}
}

func TestTopOutOnBlockedSpawn(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	// Block the next O spawn inside the hidden rows.
	idx, err := s.Board.Index(4, -1)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	s.Board.Cells[idx] = CellGarbage

	s, events, err := Step(s, []Command{CmdHardDrop})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	if !s.TopOut {
		t.Fatal("state not terminal after blocked spawn")
	}
	topOut := false
	for _, e := range events {
		if _, ok := e.(TopOutEvent); ok {
			topOut = true
		}
	}
	if !topOut {
		t.Error("no TopOutEvent emitted")
	}

	// Terminal states step to themselves with no events.
	next, events, err := Step(s, []Command{CmdMoveLeft})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("terminal state produced events: %v", events)
	}
	if !reflect.DeepEqual(next, s) {
		t.Error("terminal state changed on Step")
	}
}

func TestRotateAgainstWallNudges(t *testing.T) {
	s := newTestState(t, testConfig(), PieceI)

	// Stand the I upright against the left wall, then rotate back to
	// horizontal: the plain rotation collides and the nudge resolves it.
	s.Active = ActivePiece{Kind: PieceI, Rot: RotRight, X: -2, Y: 10}
	if s.Active.Collides(s.Board) {
		t.Fatal("setup piece should not collide")
	}

	s, _, err := Step(s, []Command{CmdRotateCW})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.Active.Rot != RotFlip {
		t.Errorf("rotation = %d, want flip state", s.Active.Rot)
	}
	if s.Active.Collides(s.Board) {
		t.Error("nudged rotation left the piece colliding")
	}
}

func TestStepDeterminism(t *testing.T) {
	cfg := testConfig()
	script := [][]Command{
		{CmdMoveLeft}, {CmdRotateCW}, {CmdSoftDropOn}, nil, {CmdSoftDropOff, CmdMoveRight},
		{CmdHardDrop}, {CmdHold}, nil, {CmdRotateCCW}, {CmdHardDrop},
	}

	run := func() GameState {
		s := newTestState(t, cfg, PieceI, PieceT, PieceL, PieceS)
		for _, cmds := range script {
			var err error
			s, _, err = Step(s, cmds)
			if err != nil {
				t.Fatalf("Step failed: %v", err)
			}
		}
		return s
	}

	a := run()
	b := run()
	if !reflect.DeepEqual(a, b) {
		t.Error("identical (state, commands) runs diverged")
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)
	snapshot := s.clone()

	if _, _, err := Step(s, []Command{CmdHardDrop, CmdMoveLeft}); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !reflect.DeepEqual(s, snapshot) {
		t.Error("Step mutated its input state")
	}
}
