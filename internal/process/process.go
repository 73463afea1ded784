// Package process implements the rate laws and state transforms for the
// four particle processes (spec §4.2): nucleation, surface growth,
// coagulation and oxidation. Each process is immutable, stateless, and
// reads the gas state only through the narrow GasReader capability — never
// mutating it.
package process

import "github.com/san-kum/sootsim/internal/particle"

// GasReader is the narrow, read-only capability every process consults.
// It is a strict subset of gas.Capability so processes cannot accidentally
// reach for a mutator.
type GasReader interface {
	T() float64
	P() float64
	// Concentration returns mol/m^3, 0 if the species is unknown — a
	// process must never abort because an optional precursor is absent
	// from the mechanism (spec §7.3).
	Concentration(name string) float64
}

// Rates is the non-negative rate container spec §3 defines, in
// #/(m^3*s) (Nuc, Coag) or atoms/(m^3*s) (Grow, Ox aggregate).
type Rates struct {
	Nuc, Grow, Coag, Ox float64
}

// Total returns R = R_nuc + R_grow + R_coag + R_ox.
func (r Rates) Total() float64 { return r.Nuc + r.Grow + r.Coag + r.Ox }

// Kind tags which process an Event or a deferred pass belongs to.
type Kind int

const (
	KindNucleation Kind = iota
	KindGrowth
	KindCoagulation
	KindOxidation
)

func (k Kind) String() string {
	switch k {
	case KindNucleation:
		return "nucleation"
	case KindGrowth:
		return "growth"
	case KindCoagulation:
		return "coagulation"
	case KindOxidation:
		return "oxidation"
	default:
		return "unknown"
	}
}

// Stoichiometry maps a species name to the per-unit-rate coefficient used
// to build particle->gas source terms (spec §4.3, §9: "the core must
// accept configurable stoichiometry vectors rather than hard-coding species
// names"). A positive coefficient is production, negative is consumption.
type Stoichiometry map[string]float64

// DefaultStoichiometry reproduces spec §4.3's hard-coded elementary-step
// assumptions, expressed as configurable tables rather than inline
// constants — callers may override any of these per process to match a
// different mechanism's species names.
func DefaultStoichiometry() (nuc, grow, ox Stoichiometry) {
	nuc = Stoichiometry{"A4": -2, "H2": 1}
	grow = Stoichiometry{"C2H2": -0.5, "H2": 0.25}
	ox = Stoichiometry{"O2": -0.5, "CO": 1}
	return
}

// ParticleSnapshot is the read view of a particle the per-particle rate
// functions need; avoids importing *particle.Particle mutators into the
// rate-law signatures.
type ParticleSnapshot interface {
	SurfaceArea() float64
	NC() int64
}

// particleAdapter adapts *particle.Particle to ParticleSnapshot.
type particleAdapter struct{ p *particle.Particle }

func (a particleAdapter) SurfaceArea() float64 { return a.p.SurfaceArea() }
func (a particleAdapter) NC() int64            { return a.p.NC }

func Snapshot(p *particle.Particle) ParticleSnapshot { return particleAdapter{p} }
