package engine

import (
	"errors"
	"testing"
)

func TestSpawnAllKindsOnEmptyBoard(t *testing.T) {
	b := mustBoard(t, 10, 20, 3)

	for _, kind := range AllPieceKinds() {
		if !CanSpawn(kind, b) {
			t.Errorf("CanSpawn(%s) = false on empty board", kind)
		}
		if TopOut(kind, b) {
			t.Errorf("TopOut(%s) = true on empty board", kind)
		}
	}
}

func TestSpawnPositionI(t *testing.T) {
	b := mustBoard(t, 10, 20, 3)
	p := Spawn(PieceI, b)

	if p.X != 3 || p.Y != -2 {
		t.Errorf("Spawn(I) at (%d, %d), want (3, -2)", p.X, p.Y)
	}
	if p.Rot != RotSpawn {
		t.Errorf("Spawn(I) rotation = %d, want spawn orientation", p.Rot)
	}
	if !p.EntirelyHidden() {
		t.Error("Spawn(I) should sit entirely within the hidden rows")
	}
}

func TestSpawnEntirelyHiddenAllKinds(t *testing.T) {
	b := mustBoard(t, 10, 20, 3)

	for _, kind := range AllPieceKinds() {
		if !Spawn(kind, b).EntirelyHidden() {
			t.Errorf("Spawn(%s) not entirely hidden", kind)
		}
	}
}

func TestSpawnStructurallyStable(t *testing.T) {
	b := mustBoard(t, 10, 20, 3)

	for _, kind := range AllPieceKinds() {
		if Spawn(kind, b) != Spawn(kind, b) {
			t.Errorf("Spawn(%s) not structurally stable", kind)
		}
	}
}

func TestEntirelyHidden(t *testing.T) {
	tests := []struct {
		name     string
		piece    ActivePiece
		expected bool
	}{
		{"I at spawn", ActivePiece{Kind: PieceI, Rot: RotSpawn, X: 3, Y: -2}, true},
		{"I one row lower", ActivePiece{Kind: PieceI, Rot: RotSpawn, X: 3, Y: -1}, false},
		{"O above field", ActivePiece{Kind: PieceO, Rot: RotSpawn, X: 3, Y: -2}, true},
		{"T straddling edge", ActivePiece{Kind: PieceT, Rot: RotSpawn, X: 3, Y: -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.piece.EntirelyHidden(); got != tc.expected {
				t.Errorf("EntirelyHidden() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCollides(t *testing.T) {
	b := mustBoard(t, 10, 20, 3)

	tests := []struct {
		name     string
		piece    ActivePiece
		expected bool
	}{
		{"spawn position", Spawn(PieceT, b), false},
		{"left wall", ActivePiece{Kind: PieceT, Rot: RotSpawn, X: -1, Y: 5}, true},
		{"right wall", ActivePiece{Kind: PieceT, Rot: RotSpawn, X: 8, Y: 5}, true},
		{"floor", ActivePiece{Kind: PieceT, Rot: RotSpawn, X: 3, Y: 19}, true},
		{"resting on floor", ActivePiece{Kind: PieceT, Rot: RotSpawn, X: 3, Y: 18}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.piece.Collides(b); got != tc.expected {
				t.Errorf("Collides() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCollidesWithHiddenRowCells(t *testing.T) {
	b := mustBoard(t, 10, 20, 3)

	// Occupy a hidden-row cell under the spawn box.
	idx, err := b.Index(4, -1)
	if err != nil {
		t.Fatalf("Index failed: %v", err)
	}
	b.Cells[idx] = CellGarbage

	// The I piece spawns on row -1, so the blocked hidden cell collides.
	if CanSpawn(PieceI, b) {
		t.Error("CanSpawn(I) = true despite occupied hidden-row cell")
	}
	if !TopOut(PieceI, b) {
		t.Error("TopOut(I) = false despite blocked spawn")
	}
}

func TestRotationStates(t *testing.T) {
	if RotSpawn.CW() != RotRight || RotRight.CW() != RotFlip || RotFlip.CW() != RotLeft || RotLeft.CW() != RotSpawn {
		t.Error("CW rotation cycle broken")
	}
	if RotSpawn.CCW() != RotLeft || RotLeft.CCW() != RotFlip {
		t.Error("CCW rotation cycle broken")
	}
}

func TestEveryRotationHasFourCells(t *testing.T) {
	for _, kind := range AllPieceKinds() {
		for rot := RotSpawn; rot <= RotLeft; rot++ {
			p := ActivePiece{Kind: kind, Rot: rot, X: 0, Y: 0}
			seen := map[Coord]bool{}
			for _, c := range p.OccupiedCells() {
				seen[c] = true
			}
			if len(seen) != 4 {
				t.Errorf("%s rotation %d has %d distinct cells, want 4", kind, rot, len(seen))
			}
		}
	}
}

func TestNewPieceKindBounds(t *testing.T) {
	if _, err := NewPieceKind(7); !errors.Is(err, ErrBounds) {
		t.Errorf("NewPieceKind(7) error = %v, want ErrBounds", err)
	}
	if _, err := NewPieceKind(-1); !errors.Is(err, ErrBounds) {
		t.Errorf("NewPieceKind(-1) error = %v, want ErrBounds", err)
	}
	k, err := NewPieceKind(2)
	if err != nil || k != PieceT {
		t.Errorf("NewPieceKind(2) = %v, %v, want PieceT", k, err)
	}
}

func TestCellValueBounds(t *testing.T) {
	if _, err := NewCellValue(9); !errors.Is(err, ErrBounds) {
		t.Errorf("NewCellValue(9) error = %v, want ErrBounds", err)
	}
	v, err := NewCellValue(8)
	if err != nil || v != CellGarbage {
		t.Errorf("NewCellValue(8) = %v, %v, want CellGarbage", v, err)
	}
}
