package engine

import "fmt"

// PieceKind identifies one of the seven tetromino shapes.
type PieceKind uint8

const (
	PieceI PieceKind = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL

	pieceKindCount = 7
)

// NewPieceKind validates an integer piece kind at the boundary.
func NewPieceKind(v int) (PieceKind, error) {
	if v < 0 || v >= pieceKindCount {
		return 0, fmt.Errorf("engine: piece kind %d outside [0,6]: %w", v, ErrBounds)
	}
	return PieceKind(v), nil
}

// Cell returns the board cell value this kind locks as.
func (k PieceKind) Cell() CellValue {
	return CellValue(k) + 1
}

// String returns the conventional one-letter name.
func (k PieceKind) String() string {
	switch k {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return "?"
	}
}

// AllPieceKinds lists every kind in canonical order.
func AllPieceKinds() []PieceKind {
	return []PieceKind{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}
}

// Rotation is one of the four orientation states of an active piece.
type Rotation uint8

const (
	RotSpawn Rotation = iota
	RotRight
	RotFlip
	RotLeft
)

// CW returns the next rotation clockwise.
func (r Rotation) CW() Rotation {
	return (r + 1) % 4
}

// CCW returns the next rotation counterclockwise.
func (r Rotation) CCW() Rotation {
	return (r + 3) % 4
}

// Offset is a cell offset within a piece's 4x4 bounding box.
type Offset struct {
	X, Y int
}

// pieceOffsets holds the per-kind, per-rotation occupied cells within a 4x4
// box. Indexed [kind][rotation]. Initialized once at startup and never
// mutated; callers receive copies, never slices into the table.
var pieceOffsets = [pieceKindCount][4][4]Offset{
	// I
	{
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	// O
	{
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	// T
	{
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	// S
	{
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	// Z
	{
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	// J
	{
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	// L
	{
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// spawnY places the 4x4 bounding box so that every spawn-orientation cell of
// every kind sits inside the hidden rows of a board with at least two of
// them.
const spawnY = -2

// Coord is an absolute board coordinate occupied by an active piece cell.
type Coord struct {
	X, Y int
}

// ActivePiece is the falling piece: a kind, a rotation state, and the
// top-left corner of its 4x4 bounding box in board coordinates.
type ActivePiece struct {
	Kind PieceKind
	Rot  Rotation
	X, Y int
}

// Spawn returns a piece of the given kind at the canonical spawn position
// for the board: horizontally centered bounding box, top rows hidden.
// The result is a fresh value; spawn state for a given (kind, width) is
// always structurally identical, so callers compare spawns structurally.
func Spawn(kind PieceKind, b Board) ActivePiece {
	return ActivePiece{
		Kind: kind,
		Rot:  RotSpawn,
		X:    (b.Width - 4) / 2,
		Y:    spawnY,
	}
}

// OccupiedCells returns the four absolute board coordinates the piece covers
// at its current rotation.
func (p ActivePiece) OccupiedCells() [4]Coord {
	var cells [4]Coord
	for i, off := range pieceOffsets[p.Kind][p.Rot] {
		cells[i] = Coord{X: p.X + off.X, Y: p.Y + off.Y}
	}
	return cells
}

// Collides reports whether the piece overlaps an occupied board cell or
// leaves the valid column/row range. Hidden-row collisions count.
func (p ActivePiece) Collides(b Board) bool {
	for _, c := range p.OccupiedCells() {
		if c.X < 0 || c.X >= b.Width {
			return true
		}
		if c.Y >= b.VisibleHeight || c.Y < -b.HiddenRows {
			return true
		}
		if b.Occupied(c.X, c.Y) {
			return true
		}
	}
	return false
}

// Moved returns the piece translated by (dx, dy).
func (p ActivePiece) Moved(dx, dy int) ActivePiece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece at the given rotation state.
func (p ActivePiece) Rotated(r Rotation) ActivePiece {
	p.Rot = r
	return p
}

// EntirelyHidden reports whether every occupied cell sits above the visible
// field (y < 0). Used to suppress presentation effects for the fully-hidden
// spawn state.
func (p ActivePiece) EntirelyHidden() bool {
	for _, c := range p.OccupiedCells() {
		if c.Y >= 0 {
			return false
		}
	}
	return true
}

// CanSpawn reports whether a freshly spawned piece of the given kind fits on
// the board.
func CanSpawn(kind PieceKind, b Board) bool {
	return !Spawn(kind, b).Collides(b)
}

// TopOut is the terminal failure condition for a run: the next piece cannot
// spawn.
func TopOut(kind PieceKind, b Board) bool {
	return !CanSpawn(kind, b)
}
