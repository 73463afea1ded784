package dsa

import (
	"math/rand"
	"testing"

	"github.com/san-kum/sootsim/internal/particle"
	"github.com/san-kum/sootsim/internal/process"
)

type constGas struct {
	t, p  float64
	concs map[string]float64
}

func (g constGas) T() float64                        { return g.t }
func (g constGas) P() float64                         { return g.p }
func (g constGas) Concentration(name string) float64 { return g.concs[name] }

func newEnsemble(t *testing.T, seed int64, min, max int) *particle.Ensemble {
	t.Helper()
	e, err := particle.New(particle.Config{MinSize: min, MaxSize: max, SampleVolume: 1e-9}, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("particle.New: %v", err)
	}
	return e
}

func TestEngine_IdlesWhenAllRatesZero(t *testing.T) {
	ens := newEnsemble(t, 1, 1, 4096)
	g := constGas{t: 1500, p: 101325, concs: map[string]float64{}}
	eng := New(42, DefaultConfig(), process.DefaultNucleation(), process.DefaultGrowth(), process.DefaultCoagulation(), process.DefaultOxidation())

	res := eng.Step(g, ens, 1e-5)

	if len(res.Events) != 0 {
		t.Fatalf("expected no events with all rates zero, got %d", len(res.Events))
	}
	if eng.Time() != 1e-5 {
		t.Fatalf("expected clock to advance to dt, got %g", eng.Time())
	}
}

func TestEngine_NucleationIncreasesEnsembleMonotonically(t *testing.T) {
	ens := newEnsemble(t, 1, 512, 4096)
	g := constGas{t: 1500, p: 101325, concs: map[string]float64{"A4": 1e-6}}
	nuc := process.DefaultNucleation()
	cfg := DefaultConfig()
	cfg.DeferGrowth = true
	cfg.DeferOxidation = true
	eng := New(42, cfg, nuc, process.Growth{}, process.Coagulation{MaxSamplePairs: 100}, process.Oxidation{})

	prev := 0
	for i := 0; i < 100; i++ {
		eng.Step(g, ens, 1e-7)
		if ens.Len() < prev {
			t.Fatalf("ensemble size decreased: %d -> %d", prev, ens.Len())
		}
		prev = ens.Len()
	}
	if ens.Len() == 0 {
		t.Fatal("expected |E| > 0 after pure-nucleation run")
	}
}

func TestEngine_Reproducibility(t *testing.T) {
	runOnce := func() []Event {
		ens := newEnsemble(t, 1, 512, 4096)
		g := constGas{t: 1500, p: 101325, concs: map[string]float64{"A4": 1e-6, "C2H2": 1e-5, "O2": 1e-5}}
		eng := New(42, DefaultConfig(), process.DefaultNucleation(), process.DefaultGrowth(), process.DefaultCoagulation(), process.DefaultOxidation())
		var events []Event
		for i := 0; i < 20; i++ {
			res := eng.Step(g, ens, 1e-7)
			events = append(events, res.Events...)
		}
		return events
	}

	a := runOnce()
	b := runOnce()

	if len(a) != len(b) {
		t.Fatalf("event count differs across runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEngine_TimeMonotonicallyIncreases(t *testing.T) {
	ens := newEnsemble(t, 1, 512, 4096)
	g := constGas{t: 1500, p: 101325, concs: map[string]float64{"A4": 1e-6}}
	eng := New(1, DefaultConfig(), process.DefaultNucleation(), process.DefaultGrowth(), process.DefaultCoagulation(), process.DefaultOxidation())

	prev := 0.0
	for i := 0; i < 50; i++ {
		eng.Step(g, ens, 1e-7)
		if eng.Time() < prev {
			t.Fatalf("engine time decreased: %g -> %g", prev, eng.Time())
		}
		prev = eng.Time()
	}
}

func TestEngine_CoagulationDecreasesEnsembleAndConservesAtoms(t *testing.T) {
	ens := newEnsemble(t, 1, 1, 4096)
	for i := 0; i < 20; i++ {
		p, _ := particle.New(100, 50, 1, 0, 0)
		ens.Add(p)
	}
	sumNCBefore := ens.SumNC()

	g := constGas{t: 1500, p: 101325, concs: map[string]float64{}}
	eng := New(7, DefaultConfig(), process.Nucleation{}, process.Growth{}, process.DefaultCoagulation(), process.Oxidation{})

	for attempts := 0; ens.Len() > 1 && attempts < 10000; attempts++ {
		eng.Step(g, ens, 1e4)
	}
	if ens.Len() != 1 {
		t.Fatalf("expected ensemble to relax to a single particle, got %d", ens.Len())
	}

	if ens.SumNC() != sumNCBefore {
		t.Fatalf("total nC not conserved: before=%d after=%d", sumNCBefore, ens.SumNC())
	}
}
