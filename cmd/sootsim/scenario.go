package main

import "github.com/san-kum/sootsim/internal/gas"

// newFlameGas builds the toy in-memory gas mechanism the CLI drives: a
// seven-species surrogate (precursor A4, growth species C2H2, oxidizers
// O2/OH, and byproducts H2/CO/N2) with a production-rate function loosely
// modelling premixed-flame depletion of the precursor and growth species.
// A real Cantera/Chemkin-style mechanism would satisfy gas.Capability the
// same way (spec §1's scope boundary: the mechanism itself is supplied by
// the caller, not implemented here).
func newFlameGas(t0, p0 float64, yA4, yC2H2, yO2, yOH float64) (*gas.Mixture, error) {
	names := []string{"A4", "C2H2", "O2", "OH", "H2", "CO", "N2"}
	molarMasses := []float64{202.0, 26.04, 32.0, 17.01, 2.016, 28.01, 28.0134}
	enthalpies := make([]float64, len(names))

	yRest := 1 - yA4 - yC2H2 - yO2 - yOH
	if yRest < 0 {
		yRest = 0
	}
	y0 := []float64{yA4, yC2H2, yO2, yOH, 0, 0, yRest}

	rate := func(t, p float64, y []float64) []float64 {
		omega := make([]float64, len(y))
		kDep := 1e2
		omega[0] = -kDep * y[0] * y[2]
		omega[1] = -kDep * 0.5 * y[1] * y[3]
		omega[2] = -kDep * 0.3 * y[0] * y[2]
		omega[3] = -kDep * 0.2 * y[1] * y[3]
		omega[4] = kDep * 0.1 * y[1] * y[3]
		omega[5] = kDep * 0.1 * y[0] * y[2]
		return omega
	}

	return gas.NewMixture(names, molarMasses, enthalpies, t0, p0, y0, 1200, rate)
}
