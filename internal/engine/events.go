package engine

// Event is something that happened during a tick, reported to collaborators
// (training modes, presentation). The set is closed: only the engine creates
// events.
type Event interface {
	isEvent()
}

// PieceLockedEvent fires the tick a piece is committed to the board.
type PieceLockedEvent struct {
	Kind       PieceKind
	HardDrop   bool
	RowsCleared int
}

func (PieceLockedEvent) isEvent() {}

// LinesClearedEvent fires when one or more full rows are removed.
// Rows holds storage row indices, top to bottom.
type LinesClearedEvent struct {
	Rows []int
}

func (LinesClearedEvent) isEvent() {}

// TopOutEvent fires once when the next piece cannot spawn. The state it
// accompanies is terminal.
type TopOutEvent struct{}

func (TopOutEvent) isEvent() {}
