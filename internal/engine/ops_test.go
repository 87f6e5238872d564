package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddGarbageEmptyIsNoOp(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	next, err := AddGarbage(nil)(s)
	if err != nil {
		t.Fatalf("AddGarbage(nil) failed: %v", err)
	}
	if !reflect.DeepEqual(next, s) {
		t.Error("AddGarbage(nil) changed the state")
	}
}

func TestAddGarbageSingleRow(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	// Mark the topmost hidden row so we can see it get discarded.
	idx, err := s.Board.Index(0, -3)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	s.Board.Cells[idx] = CellValue(1)

	next, err := AddGarbage([]int{3})(s)
	if err != nil {
		t.Fatalf("AddGarbage([3]) failed: %v", err)
	}

	// Bottom row: garbage everywhere except the hole column.
	for x := 0; x < next.Board.Width; x++ {
		want := CellGarbage
		if x == 3 {
			want = CellEmpty
		}
		if got := next.Board.Cell(x, 19); got != want {
			t.Errorf("Cell(%d, 19) = %d, want %d", x, got, want)
		}
	}

	// The old topmost hidden row was discarded by the shift.
	if next.Board.Cell(0, -3) != CellEmpty {
		t.Error("topmost hidden row not discarded")
	}
}

func TestAddGarbageMultipleRowsBottomUp(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	next, err := AddGarbage([]int{2, 7})(s)
	if err != nil {
		t.Fatalf("AddGarbage failed: %v", err)
	}

	// Rows insert bottom-up: the first hole ends up above the second.
	if next.Board.Cell(2, 18) != CellEmpty || next.Board.Cell(7, 18) != CellGarbage {
		t.Errorf("row 18 holes wrong: col2=%d col7=%d", next.Board.Cell(2, 18), next.Board.Cell(7, 18))
	}
	if next.Board.Cell(7, 19) != CellEmpty || next.Board.Cell(2, 19) != CellGarbage {
		t.Errorf("row 19 holes wrong: col2=%d col7=%d", next.Board.Cell(2, 19), next.Board.Cell(7, 19))
	}
}

func TestAddGarbageBadHoleIsAtomic(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	tests := []struct {
		name  string
		holes []int
	}{
		{"negative hole", []int{-1}},
		{"hole at width", []int{10}},
		{"valid then invalid", []int{3, 99}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, err := AddGarbage(tc.holes)(s)
			if !errors.Is(err, ErrBounds) {
				t.Fatalf("error = %v, want ErrBounds", err)
			}
			if !reflect.DeepEqual(next, s) {
				t.Error("failed AddGarbage left the state modified")
			}
		})
	}
}

func TestReplaceBoard(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	cells := make([]CellValue, len(s.Board.Cells))
	cells[len(cells)-1] = CellGarbage

	next, err := ReplaceBoard(cells)(s)
	if err != nil {
		t.Fatalf("ReplaceBoard failed: %v", err)
	}
	if next.Board.Cell(9, 19) != CellGarbage {
		t.Error("installed cells not visible in the new board")
	}

	// Wrong size fails with a bounds error.
	if _, err := ReplaceBoard(make([]CellValue, 5))(s); !errors.Is(err, ErrBounds) {
		t.Errorf("short cell slice: error = %v, want ErrBounds", err)
	}
}

func TestReplaceQueueVerbatim(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	queue := []PieceKind{PieceL, PieceJ}
	next, err := ReplaceQueue(queue)(s)
	if err != nil {
		t.Fatalf("ReplaceQueue failed: %v", err)
	}
	if len(next.Queue) != 2 || next.Queue[0] != PieceL || next.Queue[1] != PieceJ {
		t.Errorf("queue = %v, want [L J]", next.Queue)
	}
}

func TestForcePiece(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	next, err := ForcePiece(PieceT)(s)
	if err != nil {
		t.Fatalf("ForcePiece failed: %v", err)
	}
	if next.Active.Kind != PieceT {
		t.Errorf("active = %s, want T", next.Active.Kind)
	}
	if next.Active != Spawn(PieceT, next.Board) {
		t.Error("forced piece is not a fresh spawn")
	}

	// A blocked spawn fails fast instead of topping out.
	idx, err := s.Board.Index(4, -1)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	s.Board.Cells[idx] = CellGarbage
	if _, err := ForcePiece(PieceT)(s); !errors.Is(err, ErrBounds) {
		t.Errorf("blocked spawn: error = %v, want ErrBounds", err)
	}
}

func TestClearHold(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)
	s.Hold = HoldSlot{Kind: PieceI, Filled: true, Used: true}

	next, err := ClearHold()(s)
	if err != nil {
		t.Fatalf("ClearHold failed: %v", err)
	}
	if next.Hold != (HoldSlot{}) {
		t.Errorf("hold slot = %+v, want empty", next.Hold)
	}
}

func TestOpsDoNotTouchRNG(t *testing.T) {
	s := newTestState(t, testConfig(), PieceI, PieceO, PieceT)

	ops := []Op{
		AddGarbage([]int{0, 9}),
		ReplaceQueue([]PieceKind{PieceZ}),
		ClearHold(),
		ForcePiece(PieceS),
	}
	next, err := ApplyOps(s, ops...)
	if err != nil {
		t.Fatalf("ApplyOps failed: %v", err)
	}

	before, _ := s.RNG.Draw()
	after, _ := next.RNG.Draw()
	if before != after {
		t.Error("ops advanced the generator")
	}
}

func TestApplyOpsAtomicOnFailure(t *testing.T) {
	s := newTestState(t, testConfig(), PieceO)

	ops := []Op{
		AddGarbage([]int{1}),
		AddGarbage([]int{42}), // out of range
	}
	next, err := ApplyOps(s, ops...)
	if !errors.Is(err, ErrBounds) {
		t.Fatalf("error = %v, want ErrBounds", err)
	}
	if !reflect.DeepEqual(next, s) {
		t.Error("failed op sequence left a partially applied state")
	}
}

func TestOpPurityLaw(t *testing.T) {
	// The same op sequence applied to two structurally equal states must
	// produce structurally equal results.
	mk := func() GameState {
		return newTestState(t, testConfig(), PieceI, PieceO)
	}
	ops := []Op{
		AddGarbage([]int{4, 2}),
		ReplaceQueue([]PieceKind{PieceT, PieceL}),
		ForcePiece(PieceJ),
		ClearHold(),
	}

	a, err := ApplyOps(mk(), ops...)
	if err != nil {
		t.Fatalf("ApplyOps failed: %v", err)
	}
	b, err := ApplyOps(mk(), ops...)
	if err != nil {
		t.Fatalf("ApplyOps failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("op sequence is not pure")
	}
}
