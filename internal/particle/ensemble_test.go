package particle

import (
	"math"
	"math/rand"
	"testing"
)

func newTestEnsemble(t *testing.T, min, max int, vs float64, seed int64) *Ensemble {
	t.Helper()
	e, err := New(Config{MinSize: min, MaxSize: max, SampleVolume: vs}, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestEnsemble_AddTriggersHalving(t *testing.T) {
	e := newTestEnsemble(t, 1, 20, 1e-9, 42)

	for i := 0; i < 25; i++ {
		e.Add(Nascent(32, 18, float64(i)))
	}

	if e.Len() > 20 {
		t.Fatalf("expected |E| <= 20 after halving, got %d", e.Len())
	}
	// weight scales by n/(n-removed), which only equals 2 for an even n at
	// the halving trigger — assert the weaker, parity-independent fact that
	// a halving occurred.
	if e.Weight() <= 1 {
		t.Fatalf("expected weight to increase after halving, got %f", e.Weight())
	}
}

func TestEnsemble_RemoveTriggersDoubling(t *testing.T) {
	e := newTestEnsemble(t, 10, 100, 1e-9, 7)
	for i := 0; i < 10; i++ {
		e.Add(Nascent(32, 18, 0))
	}

	e.Remove(0)

	if e.Len() != 18 {
		t.Fatalf("expected |E|=18 after doubling from 9, got %d", e.Len())
	}
	if e.Weight() != 0.5 {
		t.Fatalf("expected w=0.5, got %f", e.Weight())
	}
}

func TestEnsemble_HalvingPreservesNumberDensity(t *testing.T) {
	e := newTestEnsemble(t, 1, 10, 1e-9, 1)
	for i := 0; i < 10; i++ {
		e.Add(Nascent(32, 18, 0))
	}

	// one more Add crosses maxSize=10 (n becomes 11, odd) and triggers a
	// halve; the density right after must equal what the un-halved state
	// would have had, since halving only resamples the representation.
	nBefore := e.Len()
	wBefore := e.Weight()
	expected := float64(nBefore+1) * wBefore / e.SampleVolume()

	e.Add(Nascent(32, 18, 0))
	after := e.NumberDensity()

	if math.Abs(after-expected) > 1e-9*expected {
		t.Fatalf("number density changed across halving: expected=%g got=%g", expected, after)
	}
}

func TestEnsemble_SelectPair_FailsBelowTwo(t *testing.T) {
	e := newTestEnsemble(t, 1, 10, 1e-9, 1)
	if _, _, ok := e.SelectPair(); ok {
		t.Fatal("expected no-selection on empty ensemble")
	}
	e.Add(Nascent(32, 18, 0))
	if _, _, ok := e.SelectPair(); ok {
		t.Fatal("expected no-selection with |E|=1")
	}
}

func TestEnsemble_SelectWeighted_FailsOnZeroSum(t *testing.T) {
	e := newTestEnsemble(t, 1, 10, 1e-9, 1)
	e.Add(Nascent(32, 18, 0))
	e.Add(Nascent(32, 18, 0))
	if _, ok := e.SelectWeighted([]float64{0, 0}); ok {
		t.Fatal("expected no-selection for all-zero weights")
	}
}

func TestEnsemble_RemoveHighestFirstPreservesLowerIndex(t *testing.T) {
	e := newTestEnsemble(t, 1, 100, 1e-9, 1)
	p0 := Nascent(1, 1, 0)
	p1 := Nascent(2, 2, 0)
	p2 := Nascent(3, 3, 0)
	e.Add(p0)
	e.Add(p1)
	e.Add(p2)

	e.RemoveHighestFirst(0, 2)

	if e.Len() != 1 {
		t.Fatalf("expected 1 particle left, got %d", e.Len())
	}
	if e.At(0) != p1 {
		t.Fatal("expected the untouched middle particle to remain")
	}
}
