package engine

import (
	"fmt"
	"math/rand"
)

// PieceRandomGenerator is the polymorphic piece-generator capability.
//
// Every draw is immutable: it returns the drawn piece together with a new
// generator value at the advanced position. The prior value stays valid and,
// drawn from again, reproduces the same piece. This snapshot property is what
// makes exact replay from any saved generator state possible, so
// implementations must never mutate in place.
type PieceRandomGenerator interface {
	// Draw returns the next piece and the advanced generator.
	Draw() (PieceKind, PieceRandomGenerator)

	// DrawN returns the next n pieces and the advanced generator.
	DrawN(n int) ([]PieceKind, PieceRandomGenerator)
}

// FixedSequence cycles a fixed non-empty sequence of piece kinds, wrapping
// with modulo. Used by training modes that need a scripted piece order.
type FixedSequence struct {
	seq []PieceKind
	pos int
}

// NewFixedSequence builds a generator over the given sequence.
// The sequence must not be empty.
func NewFixedSequence(seq []PieceKind) (FixedSequence, error) {
	if len(seq) == 0 {
		return FixedSequence{}, fmt.Errorf("engine: empty piece sequence: %w", ErrConfiguration)
	}
	owned := make([]PieceKind, len(seq))
	copy(owned, seq)
	return FixedSequence{seq: owned}, nil
}

// Draw returns seq[pos mod len(seq)] and a generator advanced by one.
func (g FixedSequence) Draw() (PieceKind, PieceRandomGenerator) {
	i := g.pos % len(g.seq)
	if i < 0 || i >= len(g.seq) {
		// Unreachable after the modulo above; a failure here is a logic
		// defect, not bad input.
		panic(fmt.Errorf("engine: sequence index %d after modulo: %w", i, ErrInvariant))
	}
	return g.seq[i], FixedSequence{seq: g.seq, pos: i + 1}
}

// DrawN draws n pieces in order.
func (g FixedSequence) DrawN(n int) ([]PieceKind, PieceRandomGenerator) {
	return drawN(g, n)
}

// SevenBag deals shuffled seven-piece bags: each group of seven draws is a
// permutation of all kinds. The generator is fully determined by (seed, draw
// offset), so any saved value can be reconstructed without replaying the
// draws before it.
type SevenBag struct {
	seed  Seed
	draws int
}

// NewSevenBag creates a bag generator for the given seed.
func NewSevenBag(seed Seed) SevenBag {
	return SevenBag{seed: seed}
}

// Draw returns the next piece of the current bag and the advanced generator.
func (g SevenBag) Draw() (PieceKind, PieceRandomGenerator) {
	bag := shuffledBag(g.seed, g.draws/pieceKindCount)
	return bag[g.draws%pieceKindCount], SevenBag{seed: g.seed, draws: g.draws + 1}
}

// DrawN draws n pieces in order.
func (g SevenBag) DrawN(n int) ([]PieceKind, PieceRandomGenerator) {
	return drawN(g, n)
}

// shuffledBag deals bag number idx for the given seed. Each bag gets its own
// rand source derived from (seed, idx) with a splitmix-style mix, so bags are
// addressable in O(1) regardless of how many draws preceded them.
func shuffledBag(seed Seed, idx int) [pieceKindCount]PieceKind {
	h := uint64(seed) + (uint64(idx)+1)*0x9e3779b97f4a7c15
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	r := rand.New(rand.NewSource(int64(h)))

	bag := [pieceKindCount]PieceKind{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}
	r.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}

// drawN implements DrawN on top of Draw for any generator.
func drawN(g PieceRandomGenerator, n int) ([]PieceKind, PieceRandomGenerator) {
	pieces := make([]PieceKind, 0, n)
	for range n {
		var k PieceKind
		k, g = g.Draw()
		pieces = append(pieces, k)
	}
	return pieces, g
}
