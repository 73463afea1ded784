package process

import "github.com/san-kum/sootsim/internal/particle"

// Oxidation models per-particle rate (k_O2*[O2] + k_OH*[OH]) * A * Na
// (atoms/s), removing ~1% of carbon (and proportional hydrogen) per event,
// deleting the particle if nC reaches 0 (spec §4.2).
type Oxidation struct {
	KO2, KOH     float64
	O2Gas, OHGas string // default "O2", "OH"
	Stoich       Stoichiometry
}

func DefaultOxidation() Oxidation {
	_, _, ox := DefaultStoichiometry()
	return Oxidation{KO2: 1e4, KOH: 1e8, O2Gas: "O2", OHGas: "OH", Stoich: ox}
}

func (ox Oxidation) PerParticleRate(g GasReader, p ParticleSnapshot) float64 {
	rate := ox.KO2*g.Concentration(ox.O2Gas) + ox.KOH*g.Concentration(ox.OHGas)
	return rate * p.SurfaceArea() * particle.Avogadro
}

func (ox Oxidation) TotalRate(g GasReader, ps []*particle.Particle) float64 {
	total := 0.0
	for _, p := range ps {
		total += ox.PerParticleRate(g, Snapshot(p))
	}
	return total
}

func (ox Oxidation) Weights(g GasReader, ps []*particle.Particle) []float64 {
	w := make([]float64, len(ps))
	for i, p := range ps {
		w[i] = ox.PerParticleRate(g, Snapshot(p))
	}
	return w
}

// Apply removes max(1, floor(0.01*nC)) carbons and floor(removed/4)
// hydrogens, reporting whether the particle has fully burned out (nC<=0)
// and should be deleted.
func (ox Oxidation) Apply(p *particle.Particle) (burnedOut bool) {
	removed := int64(0.01 * float64(p.NC))
	if removed < 1 {
		removed = 1
	}
	p.NC -= removed
	p.NH -= removed / 4
	if p.NH < 0 {
		p.NH = 0
	}
	if p.NC <= 0 {
		p.NC = 0
		return true
	}
	return false
}

// ApplyDeferred removes floor(rate*dt) carbon atoms (and a quarter as many
// hydrogens) as a deterministic accumulator over the residual dt.
func (ox Oxidation) ApplyDeferred(g GasReader, p *particle.Particle, dt float64) (burnedOut bool) {
	rate := ox.PerParticleRate(g, Snapshot(p))
	removed := int64(rate * dt)
	if removed <= 0 {
		return false
	}
	if removed > p.NC {
		removed = p.NC
	}
	p.NC -= removed
	p.NH -= removed / 4
	if p.NH < 0 {
		p.NH = 0
	}
	return p.NC <= 0
}

func (ox Oxidation) SourceTerms(rOx float64) map[string]float64 {
	out := make(map[string]float64, len(ox.Stoich))
	for species, coeff := range ox.Stoich {
		out[species] = coeff * rOx / particle.Avogadro
	}
	return out
}
