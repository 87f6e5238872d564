package engine

// Step advances the simulation by one tick: it applies the queued commands
// in submission order, accumulates gravity, and handles grounding, lock
// delay, line clears, and the next spawn. The input state is never mutated;
// the successor state and the tick's events are returned.
//
// A terminal (top-out) state steps to itself with no events.
func Step(s GameState, commands []Command) (GameState, []Event, error) {
	if s.TopOut {
		return s, nil, nil
	}

	n := s.clone()
	n.Tick++
	var events []Event

	// 1. Commands, in submission order. Hard drop may lock and respawn
	// mid-loop; remaining commands then act on the new piece.
	for _, cmd := range commands {
		n.applyCommand(cmd, &events)
		if n.TopOut {
			return n, events, nil
		}
	}

	// 2. Gravity. The accumulator is fixed-point; the piece drops one row
	// per whole cell crossed, stopping early at ground contact.
	if n.HasActive {
		rate := n.Config.Gravity
		if n.SoftDrop {
			rate = n.Config.SoftDrop
		}
		n.GravityAcc = n.GravityAcc.Add(rate)
		for range n.GravityAcc.WholeCells() {
			if n.grounded() {
				break
			}
			n.Active = n.Active.Moved(0, 1)
		}
		n.GravityAcc = n.GravityAcc.Frac()
	}

	// 3. Lock bookkeeping. First ground contact arms the deadline; leaving
	// the ground (a clean rotation off a ledge, cleared garbage) disarms it.
	if n.HasActive {
		switch {
		case n.grounded() && !n.LockPending:
			n.LockPending = true
			n.LockDeadline = n.Tick + Frame(n.Config.LockDelay)
		case !n.grounded() && n.LockPending:
			n.LockPending = false
		}

		if n.LockPending && n.Tick >= n.LockDeadline {
			n.lockActive(false, &events)
		}
	}

	return n, events, nil
}

// applyCommand mutates the working state for a single command. Failed moves
// and rotations are silently ignored; successful ones while grounded extend
// the lock deadline up to the configured reset cap.
func (s *GameState) applyCommand(cmd Command, events *[]Event) {
	switch cmd {
	case CmdSoftDropOn:
		s.SoftDrop = true
		return
	case CmdSoftDropOff:
		s.SoftDrop = false
		return
	}

	if !s.HasActive {
		return
	}

	switch cmd {
	case CmdMoveLeft:
		s.tryMove(-1)
	case CmdMoveRight:
		s.tryMove(1)
	case CmdRotateCW:
		s.tryRotate(s.Active.Rot.CW())
	case CmdRotateCCW:
		s.tryRotate(s.Active.Rot.CCW())
	case CmdHardDrop:
		s.Active.Y = s.GhostY()
		s.lockActive(true, events)
	case CmdHold:
		s.holdActive(events)
	}
}

// tryMove shifts the piece horizontally if the target cells are free.
func (s *GameState) tryMove(dx int) {
	moved := s.Active.Moved(dx, 0)
	if moved.Collides(s.Board) {
		return
	}
	s.Active = moved
	s.noteLockReset()
}

// tryRotate rotates in place, then with the small horizontal nudges that let
// pieces turn against a wall. Spawn placement never kicks; only rotation
// does.
func (s *GameState) tryRotate(target Rotation) {
	for _, dx := range []int{0, -1, 1, -2, 2} {
		candidate := s.Active.Rotated(target).Moved(dx, 0)
		if !candidate.Collides(s.Board) {
			s.Active = candidate
			s.noteLockReset()
			return
		}
	}
}

// noteLockReset extends the lock deadline after a successful grounded move
// or rotation. Once the reset count reaches the cap the deadline freezes so
// a piece cannot be stalled indefinitely.
func (s *GameState) noteLockReset() {
	if !s.LockPending || !s.grounded() {
		return
	}
	if s.LockResets >= s.Config.MaxLockResets {
		return
	}
	s.LockResets++
	s.LockDeadline = s.Tick + Frame(s.Config.LockDelay)
}

// holdActive swaps the active piece with the hold slot, at most once per
// piece lifetime. The incoming piece always starts fresh at spawn.
func (s *GameState) holdActive(events *[]Event) {
	if s.Hold.Used {
		return
	}
	current := s.Active.Kind
	if s.Hold.Filled {
		s.spawnKind(s.Hold.Kind)
	} else {
		s.spawnNext()
	}
	s.Hold = HoldSlot{Kind: current, Filled: true, Used: true}
	if s.TopOut {
		*events = append(*events, TopOutEvent{})
	}
}

// lockActive commits the piece, clears full rows, resets the hold gate, and
// spawns the next piece. A blocked spawn makes the state terminal.
func (s *GameState) lockActive(hardDrop bool, events *[]Event) {
	kind := s.Active.Kind
	s.Board = s.Board.Commit(s.Active)
	s.HasActive = false

	board, cleared := s.Board.ClearFullRows()
	s.Board = board

	*events = append(*events, PieceLockedEvent{
		Kind:        kind,
		HardDrop:    hardDrop,
		RowsCleared: len(cleared),
	})
	if len(cleared) > 0 {
		*events = append(*events, LinesClearedEvent{Rows: cleared})
	}

	s.Hold.Used = false
	s.spawnNext()
	if s.TopOut {
		*events = append(*events, TopOutEvent{})
	}
}
