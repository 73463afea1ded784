package process

import "github.com/san-kum/sootsim/internal/particle"

// Growth models HACA surface growth: per-particle rate
// k_g * chi * [C2H2] * A_surface * Na (atoms/s), adding 2 carbon and 1
// hydrogen atom to the selected particle (spec §4.2).
type Growth struct {
	KG           float64
	Chi          float64
	PrecursorGas string // default "C2H2"
	Stoich       Stoichiometry
}

func DefaultGrowth() Growth {
	_, grow, _ := DefaultStoichiometry()
	return Growth{KG: 8e7, Chi: 1, PrecursorGas: "C2H2", Stoich: grow}
}

// PerParticleRate returns the growth rate for a single particle, atoms/s.
func (gr Growth) PerParticleRate(g GasReader, p ParticleSnapshot) float64 {
	c := g.Concentration(gr.PrecursorGas)
	return gr.KG * gr.Chi * c * p.SurfaceArea() * particle.Avogadro
}

// TotalRate sums the per-particle rate over the ensemble, used both as the
// engine's R_grow when growth is not deferred and as the basis for
// select-by-rate weights.
func (gr Growth) TotalRate(g GasReader, ps []*particle.Particle) float64 {
	total := 0.0
	for _, p := range ps {
		total += gr.PerParticleRate(g, Snapshot(p))
	}
	return total
}

// Weights returns the per-particle rates, used by Ensemble.SelectWeighted
// to pick a particle proportional to its own growth rate (spec: "not
// uniform").
func (gr Growth) Weights(g GasReader, ps []*particle.Particle) []float64 {
	w := make([]float64, len(ps))
	for i, p := range ps {
		w[i] = gr.PerParticleRate(g, Snapshot(p))
	}
	return w
}

// Apply adds 2 carbon and 1 hydrogen atom to the particle (a single
// stochastic growth event).
func (gr Growth) Apply(p *particle.Particle) {
	p.NC += 2
	p.NH += 1
}

// ApplyDeferred applies floor(rate*dt) growth steps to a particle over the
// residual dt, each step adding 2 carbon and 1 hydrogen atom as Apply does
// (so 2*floor(rate*dt) carbon in total), as a deterministic accumulator
// (spec §4.3 "Linear process deferment").
func (gr Growth) ApplyDeferred(g GasReader, p *particle.Particle, dt float64) {
	rate := gr.PerParticleRate(g, Snapshot(p))
	added := int64(rate * dt)
	if added <= 0 {
		return
	}
	p.NC += 2 * added
	p.NH += added
}

func (gr Growth) SourceTerms(rGrow float64) map[string]float64 {
	out := make(map[string]float64, len(gr.Stoich))
	for species, coeff := range gr.Stoich {
		out[species] = coeff * rGrow / particle.Avogadro
	}
	return out
}
