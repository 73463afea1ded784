package process

import "github.com/san-kum/sootsim/internal/particle"

// Nucleation models R_nuc = 1/2 * k_nuc * [A4]^2 * Na, appending a nascent
// particle of fixed composition (spec §4.2).
type Nucleation struct {
	KNuc         float64
	PrecursorGas string // default "A4"
	NascentNC    int64  // default 32
	NascentNH    int64  // default 18
	Stoich       Stoichiometry
}

// DefaultNucleation returns the process with spec §4.2's defaults.
func DefaultNucleation() Nucleation {
	nuc, _, _ := DefaultStoichiometry()
	return Nucleation{
		KNuc:         2e9,
		PrecursorGas: "A4",
		NascentNC:    32,
		NascentNH:    18,
		Stoich:       nuc,
	}
}

// Rate computes R_nuc (#/(m^3*s)). A missing precursor species yields
// exactly 0 (spec §8: "With [A4] = 0, nucleation rate is exactly 0").
func (n Nucleation) Rate(g GasReader) float64 {
	ca4 := g.Concentration(n.PrecursorGas)
	return 0.5 * n.KNuc * ca4 * ca4 * particle.Avogadro
}

// Apply appends a nascent particle at simulation time t. The caller (the
// DSA engine) is responsible for invoking the ensemble's size-control
// policy via Ensemble.Add.
func (n Nucleation) Apply(t float64) *particle.Particle {
	return particle.Nascent(n.NascentNC, n.NascentNH, t)
}

// SourceTerms returns the particle->gas species rates (mol/(m^3*s)) this
// process exports at the given instantaneous R_nuc, using the configured
// stoichiometry.
func (n Nucleation) SourceTerms(rNuc float64) map[string]float64 {
	out := make(map[string]float64, len(n.Stoich))
	for species, coeff := range n.Stoich {
		out[species] = coeff * rNuc / particle.Avogadro
	}
	return out
}
