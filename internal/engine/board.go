package engine

import "fmt"

// Board is a fixed grid of cells with hidden rows above the visible field.
// Cells are stored row-major: storage row 0 is the topmost hidden row, and
// the first visible row (y = 0) is storage row HiddenRows. Visible y
// coordinates therefore range over [-HiddenRows, VisibleHeight).
//
// All Board operations are pure: they return a new board and never mutate
// their receiver's cells.
type Board struct {
	Width         int
	VisibleHeight int
	HiddenRows    int
	Cells         []CellValue // length Width * (VisibleHeight + HiddenRows)
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(width, visibleHeight, hiddenRows int) (Board, error) {
	if width <= 0 || visibleHeight <= 0 || hiddenRows < 0 {
		return Board{}, fmt.Errorf("engine: board %dx%d+%d hidden: %w",
			width, visibleHeight, hiddenRows, ErrConfiguration)
	}
	return Board{
		Width:         width,
		VisibleHeight: visibleHeight,
		HiddenRows:    hiddenRows,
		Cells:         make([]CellValue, width*(visibleHeight+hiddenRows)),
	}, nil
}

// TotalHeight returns the storage height including hidden rows.
func (b Board) TotalHeight() int {
	return b.VisibleHeight + b.HiddenRows
}

// index converts a coordinate to a flat storage index. Callers must have
// bounds-checked x and y already.
func (b Board) index(x, y int) int {
	return (y+b.HiddenRows)*b.Width + x
}

// Index converts (x, y) to a storage index, failing with a bounds error when
// x is outside [0, Width) or y is outside [-HiddenRows, VisibleHeight).
func (b Board) Index(x, y int) (int, error) {
	if !b.InBounds(x, y) {
		return 0, fmt.Errorf("engine: coordinate (%d,%d): %w", x, y, ErrBounds)
	}
	return b.index(x, y), nil
}

// CoordOf is the inverse of Index: it recovers the (x, y) coordinate of a
// storage index.
func (b Board) CoordOf(idx int) (x, y int, err error) {
	if idx < 0 || idx >= len(b.Cells) {
		return 0, 0, fmt.Errorf("engine: index %d: %w", idx, ErrBounds)
	}
	return idx % b.Width, idx/b.Width - b.HiddenRows, nil
}

// InBounds reports whether (x, y) addresses a stored cell, hidden rows
// included.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= -b.HiddenRows && y < b.VisibleHeight
}

// Cell returns the value at (x, y), or CellEmpty when out of bounds.
func (b Board) Cell(x, y int) CellValue {
	if !b.InBounds(x, y) {
		return CellEmpty
	}
	return b.Cells[b.index(x, y)]
}

// Occupied reports whether the cell at (x, y) holds a non-empty value.
func (b Board) Occupied(x, y int) bool {
	return b.Cell(x, y) != CellEmpty
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	cells := make([]CellValue, len(b.Cells))
	copy(cells, b.Cells)
	b.Cells = cells
	return b
}

// ShiftUpInsert shifts every row up by one, discarding the topmost hidden
// row, and installs the given row at the bottom. The row length must match
// the board width.
func (b Board) ShiftUpInsert(row []CellValue) (Board, error) {
	if len(row) != b.Width {
		return Board{}, fmt.Errorf("engine: inserted row has %d cells, board is %d wide: %w",
			len(row), b.Width, ErrBounds)
	}
	next := b.Clone()
	copy(next.Cells, next.Cells[b.Width:])
	copy(next.Cells[len(next.Cells)-b.Width:], row)
	return next, nil
}

// Commit writes the active piece's occupied cells into the board using the
// piece kind's cell value. Cells that fall outside storage are dropped.
func (b Board) Commit(p ActivePiece) Board {
	next := b.Clone()
	for _, c := range p.OccupiedCells() {
		if next.InBounds(c.X, c.Y) {
			next.Cells[next.index(c.X, c.Y)] = p.Kind.Cell()
		}
	}
	return next
}

// FullRows returns the storage row indices of fully-occupied rows, top to
// bottom.
func (b Board) FullRows() []int {
	var rows []int
	for r := 0; r < b.TotalHeight(); r++ {
		full := true
		for x := 0; x < b.Width; x++ {
			if b.Cells[r*b.Width+x] == CellEmpty {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearFullRows removes every fully-occupied row, shifting the rows above it
// down and inserting empty rows at the top. Returns the new board and the
// storage indices of the cleared rows.
func (b Board) ClearFullRows() (Board, []int) {
	full := b.FullRows()
	if len(full) == 0 {
		return b, nil
	}
	next := b.Clone()
	isFull := make(map[int]bool, len(full))
	for _, r := range full {
		isFull[r] = true
	}
	dst := next.TotalHeight() - 1
	for src := next.TotalHeight() - 1; src >= 0; src-- {
		if isFull[src] {
			continue
		}
		copy(next.Cells[dst*next.Width:(dst+1)*next.Width], b.Cells[src*b.Width:(src+1)*b.Width])
		dst--
	}
	for ; dst >= 0; dst-- {
		for x := 0; x < next.Width; x++ {
			next.Cells[dst*next.Width+x] = CellEmpty
		}
	}
	return next, full
}

// Equal reports whether two boards have the same dimensions and contents.
func (b Board) Equal(other Board) bool {
	if b.Width != other.Width || b.VisibleHeight != other.VisibleHeight || b.HiddenRows != other.HiddenRows {
		return false
	}
	for i, c := range b.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}
