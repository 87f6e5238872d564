package engine

import "fmt"

// Fixed-point scale factor: 1 cell = 1000 units.
// Gravity rates are expressed in units per tick, so 500 means half a cell
// per tick and 20000 means a 20-cell drop per tick (effectively instant).
const Scale = 1000

// Fixed represents a fixed-point quantity of cells (scaled by Scale).
// All engine motion arithmetic is integer fixed-point so identical inputs
// always produce bit-identical results.
type Fixed int

// ToFixed converts a whole cell count to fixed-point.
func ToFixed(cells int) Fixed {
	return Fixed(cells * Scale)
}

// NewRate validates a fixed-point rate. Rates must be positive: a zero or
// negative gravity would stall the simulation forever.
func NewRate(unitsPerTick int) (Fixed, error) {
	if unitsPerTick <= 0 {
		return 0, fmt.Errorf("engine: rate %d must be positive: %w", unitsPerTick, ErrConfiguration)
	}
	return Fixed(unitsPerTick), nil
}

// WholeCells returns the number of whole cells this value covers.
func (f Fixed) WholeCells() int {
	return int(f) / Scale
}

// Frac returns the sub-cell remainder.
func (f Fixed) Frac() Fixed {
	return Fixed(int(f) % Scale)
}

// Add adds two fixed-point values.
func (f Fixed) Add(other Fixed) Fixed {
	return f + other
}
