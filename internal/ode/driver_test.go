package ode

import (
	"math"
	"testing"

	"github.com/san-kum/sootsim/internal/gas"
)

func inertMixture(t *testing.T) *gas.Mixture {
	t.Helper()
	m, err := gas.NewMixture(
		[]string{"N2"},
		[]float64{28.0134e-3 * 1000}, // kg/kmol
		[]float64{0},
		1500, 101325,
		[]float64{1.0},
		1200,
		gas.InertProduction,
	)
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}
	return m
}

func TestDriver_InertMixtureHoldsStateConstant(t *testing.T) {
	for _, integrator := range []string{"bdf", "radau", "lsoda", "rk45", "rk23"} {
		t.Run(integrator, func(t *testing.T) {
			m := inertMixture(t)
			cfg := DefaultConfig()
			cfg.Integrator = integrator
			d := New(cfg)

			T0 := m.T()
			Y0 := m.Y()

			if err := d.Advance(m, 1e-6); err != nil {
				t.Fatalf("Advance: %v", err)
			}

			if math.Abs(m.T()-T0)/T0 > 1e-6 {
				t.Errorf("%s: T drifted: %g -> %g", integrator, T0, m.T())
			}
			for i, y := range m.Y() {
				if math.Abs(y-Y0[i]) > 1e-6 {
					t.Errorf("%s: Y[%d] drifted: %g -> %g", integrator, i, Y0[i], y)
				}
			}
		})
	}
}

func TestDriver_SourceTermsPerturbComposition(t *testing.T) {
	m, err := gas.NewMixture(
		[]string{"N2", "A4"},
		[]float64{28.0134, 202.0},
		[]float64{0, 0},
		1500, 101325,
		[]float64{1.0, 0.0},
		1200,
		gas.InertProduction,
	)
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}

	d := New(DefaultConfig())
	d.SetSourceTerms(map[string]float64{"A4": 1e-3, "N2": -1e-3})

	Y0 := m.Y()
	if err := d.Advance(m, 1e-3); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	Y1 := m.Y()

	if Y1[1] <= Y0[1] {
		t.Fatalf("expected A4 mass fraction to increase under a positive source term: %g -> %g", Y0[1], Y1[1])
	}
}
