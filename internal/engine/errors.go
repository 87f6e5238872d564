package engine

import "errors"

// Sentinel errors for the three failure classes the engine can report.
// Callers match them with errors.Is; every returned error wraps one of these.
var (
	// ErrConfiguration indicates invalid construction input: bad board
	// dimensions, an empty generator sequence, a malformed rate.
	ErrConfiguration = errors.New("engine: invalid configuration")

	// ErrBounds indicates a coordinate, index, or column outside its
	// valid range.
	ErrBounds = errors.New("engine: out of bounds")

	// ErrInvariant indicates an internal state that should be unreachable.
	// It signals a logic defect in the engine, not a user error.
	ErrInvariant = errors.New("engine: invariant violation")
)
