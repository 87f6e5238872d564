package engine

import "fmt"

// Op is a pure scenario-setup transform: training modes apply them between
// ticks to stage boards, queues, and garbage without going through the
// command pipeline. Every op either returns a valid successor state or an
// error with the input state unmodified; none of them read the RNG.
type Op func(GameState) (GameState, error)

// ReplaceBoard resets the board to its canonical empty dimensions and
// installs the given cells. The cell slice must match the configured storage
// size exactly.
func ReplaceBoard(cells []CellValue) Op {
	return func(s GameState) (GameState, error) {
		want := s.Config.Width * (s.Config.VisibleHeight + s.Config.HiddenRows)
		if len(cells) != want {
			return s, fmt.Errorf("engine: replace board with %d cells, want %d: %w",
				len(cells), want, ErrBounds)
		}
		n := s.clone()
		board, err := NewBoard(s.Config.Width, s.Config.VisibleHeight, s.Config.HiddenRows)
		if err != nil {
			return s, err
		}
		copy(board.Cells, cells)
		n.Board = board
		return n, nil
	}
}

// ReplaceQueue installs the next-queue verbatim. The tick engine refills it
// from the RNG once it drops below the preview count, so short queues are
// allowed.
func ReplaceQueue(queue []PieceKind) Op {
	return func(s GameState) (GameState, error) {
		n := s.clone()
		n.Queue = make([]PieceKind, len(queue))
		copy(n.Queue, queue)
		return n, nil
	}
}

// ForcePiece discards the current active piece and installs a freshly
// spawned instance of the given kind. Fails if the spawn placement is
// blocked; a scenario that wants a top-out stages it through the board, not
// through a broken spawn.
func ForcePiece(kind PieceKind) Op {
	return func(s GameState) (GameState, error) {
		if !CanSpawn(kind, s.Board) {
			return s, fmt.Errorf("engine: force piece %s: spawn blocked: %w", kind, ErrBounds)
		}
		n := s.clone()
		n.spawnKind(kind)
		return n, nil
	}
}

// AddGarbage inserts one garbage row at the bottom per entry, bottom-up,
// each fully occupied except for a single hole at the given column. An empty
// slice is a no-op. Any hole column outside [0, width) fails the whole op
// atomically: the returned state is the unmodified input.
func AddGarbage(holes []int) Op {
	return func(s GameState) (GameState, error) {
		for _, hole := range holes {
			if hole < 0 || hole >= s.Config.Width {
				return s, fmt.Errorf("engine: garbage hole column %d outside [0,%d): %w",
					hole, s.Config.Width, ErrBounds)
			}
		}
		if len(holes) == 0 {
			return s, nil
		}
		n := s.clone()
		for _, hole := range holes {
			row := make([]CellValue, n.Board.Width)
			for x := range row {
				if x != hole {
					row[x] = CellGarbage
				}
			}
			board, err := n.Board.ShiftUpInsert(row)
			if err != nil {
				return s, err
			}
			n.Board = board
		}
		return n, nil
	}
}

// ClearHold empties the hold slot and re-arms the once-per-piece gate.
func ClearHold() Op {
	return func(s GameState) (GameState, error) {
		n := s.clone()
		n.Hold = HoldSlot{}
		return n, nil
	}
}

// ApplyOps runs ops in order, stopping at the first failure. On failure the
// original state is returned untouched, keeping scenario setup atomic.
func ApplyOps(s GameState, ops ...Op) (GameState, error) {
	current := s
	for _, op := range ops {
		next, err := op(current)
		if err != nil {
			return s, err
		}
		current = next
	}
	return current, nil
}
