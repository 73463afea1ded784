package process

import (
	"math/rand"
	"testing"

	"github.com/san-kum/sootsim/internal/particle"
)

type constGas struct {
	t, p   float64
	concs  map[string]float64
}

func (g constGas) T() float64 { return g.t }
func (g constGas) P() float64 { return g.p }
func (g constGas) Concentration(name string) float64 { return g.concs[name] }

func TestNucleation_ZeroPrecursorGivesZeroRate(t *testing.T) {
	n := DefaultNucleation()
	g := constGas{t: 1500, p: 101325, concs: map[string]float64{}}
	if r := n.Rate(g); r != 0 {
		t.Fatalf("expected exactly 0, got %g", r)
	}
}

func TestNucleation_PositivePrecursorGivesPositiveRate(t *testing.T) {
	n := DefaultNucleation()
	g := constGas{t: 1500, p: 101325, concs: map[string]float64{"A4": 1e-6}}
	if r := n.Rate(g); r <= 0 {
		t.Fatalf("expected positive rate, got %g", r)
	}
}

func TestCoagulation_ZeroRateBelowTwoParticles(t *testing.T) {
	c := DefaultCoagulation()
	rng := rand.New(rand.NewSource(1))
	p1, _ := particle.New(100, 50, 1, 0, 0)

	if r := c.EstimateRate(rng, 1500, []*particle.Particle{}, 1, 1e-9); r != 0 {
		t.Fatalf("expected 0 for empty ensemble, got %g", r)
	}
	if r := c.EstimateRate(rng, 1500, []*particle.Particle{p1}, 1, 1e-9); r != 0 {
		t.Fatalf("expected 0 for single particle, got %g", r)
	}
}

func TestCoagulation_ApplyConservesMass(t *testing.T) {
	a, _ := particle.New(100, 50, 1, 0, 0)
	b, _ := particle.New(200, 80, 2, 0, 0)
	c := DefaultCoagulation()

	coag := c.Apply(a, b)
	want := a.Mass() + b.Mass()
	got := coag.Mass()
	if diff := got - want; diff > 1e-20 || diff < -1e-20 {
		t.Fatalf("mass not conserved: got %g want %g", got, want)
	}
}

func TestGrowth_WeightsProportionalToRate(t *testing.T) {
	gr := DefaultGrowth()
	g := constGas{t: 1500, p: 101325, concs: map[string]float64{"C2H2": 1e-4}}
	small, _ := particle.New(32, 18, 1, 0, 0)
	large, _ := particle.New(3200, 1800, 10, 0, 0)

	w := gr.Weights(g, []*particle.Particle{small, large})
	if w[1] <= w[0] {
		t.Fatalf("expected larger particle to have higher growth rate: %v", w)
	}
}

func TestOxidation_BurnsOutAtZeroCarbon(t *testing.T) {
	ox := DefaultOxidation()
	p, _ := particle.New(1, 1, 1, 0, 0)

	burned := ox.Apply(p)
	if !burned {
		t.Fatal("expected particle with nC=1 to burn out after removing >=1 carbon")
	}
	if p.NC != 0 {
		t.Fatalf("expected nC clamped to 0, got %d", p.NC)
	}
}
