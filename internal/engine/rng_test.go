package engine

import (
	"errors"
	"testing"
)

func TestFixedSequenceModuloLaw(t *testing.T) {
	seq := []PieceKind{PieceI, PieceO, PieceT}
	gen, err := NewFixedSequence(seq)
	if err != nil {
		t.Fatalf("NewFixedSequence failed: %v", err)
	}

	var g PieceRandomGenerator = gen
	for i := 0; i < 10; i++ {
		var k PieceKind
		k, g = g.Draw()
		if want := seq[i%len(seq)]; k != want {
			t.Errorf("draw %d = %s, want %s", i, k, want)
		}
	}
}

func TestFixedSequenceRejectsEmpty(t *testing.T) {
	if _, err := NewFixedSequence(nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewFixedSequence(nil) error = %v, want ErrConfiguration", err)
	}
}

func TestFixedSequenceSnapshotLaw(t *testing.T) {
	gen, err := NewFixedSequence([]PieceKind{PieceS, PieceZ, PieceL, PieceJ})
	if err != nil {
		t.Fatalf("NewFixedSequence failed: %v", err)
	}

	// Advance a few draws, save the generator, then draw from the saved
	// value repeatedly: it must reproduce the same piece every time.
	var g PieceRandomGenerator = gen
	for range 5 {
		_, g = g.Draw()
	}
	saved := g

	first, _ := saved.Draw()
	for range 3 {
		again, _ := saved.Draw()
		if again != first {
			t.Fatalf("saved generator drew %s then %s", first, again)
		}
	}

	// The advanced generator is unaffected by draws from the saved one.
	_, next := saved.Draw()
	k1, _ := next.Draw()
	k2, _ := next.Draw()
	if k1 != k2 {
		t.Errorf("advanced generator not stable: %s vs %s", k1, k2)
	}
}

func TestSevenBagEachBagIsPermutation(t *testing.T) {
	var g PieceRandomGenerator = NewSevenBag(42)

	for bag := 0; bag < 4; bag++ {
		seen := map[PieceKind]bool{}
		for range pieceKindCount {
			var k PieceKind
			k, g = g.Draw()
			if seen[k] {
				t.Fatalf("bag %d repeated %s", bag, k)
			}
			seen[k] = true
		}
		if len(seen) != pieceKindCount {
			t.Fatalf("bag %d contained %d kinds, want %d", bag, len(seen), pieceKindCount)
		}
	}
}

func TestSevenBagReproducibleFromSeedAndOffset(t *testing.T) {
	a, _ := NewSevenBag(1234).DrawN(30)

	// A second generator with the same seed reproduces the whole stream.
	b, _ := NewSevenBag(1234).DrawN(30)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d: %s vs %s", i, a[i], b[i])
		}
	}

	// Manually reconstructing the generator at a mid-stream offset
	// continues the same stream: state is (seed, draw count) alone.
	mid := SevenBag{seed: 1234, draws: 17}
	rest, _ := mid.DrawN(13)
	for i, k := range rest {
		if k != a[17+i] {
			t.Fatalf("reconstructed draw %d = %s, want %s", 17+i, k, a[17+i])
		}
	}
}

func TestSevenBagSnapshotLaw(t *testing.T) {
	var g PieceRandomGenerator = NewSevenBag(7)
	for range 10 {
		_, g = g.Draw()
	}
	saved := g

	first, _ := saved.Draw()
	again, _ := saved.Draw()
	if first != again {
		t.Errorf("saved bag generator drew %s then %s", first, again)
	}
}

func TestSevenBagSeedsDiffer(t *testing.T) {
	a, _ := NewSevenBag(1).DrawN(21)
	b, _ := NewSevenBag(2).DrawN(21)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical 21-draw streams")
	}
}

func TestDrawNMatchesRepeatedDraw(t *testing.T) {
	gen, err := NewFixedSequence([]PieceKind{PieceI, PieceT})
	if err != nil {
		t.Fatalf("NewFixedSequence failed: %v", err)
	}

	batch, afterBatch := gen.DrawN(5)

	var g PieceRandomGenerator = gen
	for i := 0; i < 5; i++ {
		var k PieceKind
		k, g = g.Draw()
		if k != batch[i] {
			t.Errorf("draw %d = %s, batch had %s", i, k, batch[i])
		}
	}

	// Both advanced generators continue identically.
	k1, _ := afterBatch.Draw()
	k2, _ := g.Draw()
	if k1 != k2 {
		t.Errorf("batch and single advance diverged: %s vs %s", k1, k2)
	}
}
