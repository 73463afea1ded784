// Package particle implements the immutable-identity, mutable-content
// particle record and the size-controlled Monte-Carlo ensemble that owns a
// population of them (spec §3, §4.1).
package particle

import (
	"math"

	"github.com/google/uuid"
)

// Physical constants used to derive scalars from atom counts (spec §3).
const (
	Avogadro  = 6.02214076e23 // 1/mol
	CarbonMw  = 12.011e-3     // kg/mol
	HydrogenMw = 1.008e-3     // kg/mol
	SootDensity = 1800.0      // kg/m^3, amorphous soot
)

// Particle is an immutable-identity record with mutable chemical content.
// ID is assigned once at construction and never changes, even across
// coagulation (the coagulate gets a fresh ID; spec does not require
// provenance tracking beyond creation time).
type Particle struct {
	ID           uuid.UUID
	NC           int64 // carbon atom count
	NH           int64 // hydrogen atom count
	NP           int64 // primary sub-particle count, >= 1
	NA           int64 // active surface sites
	CreationTime float64
}

// New constructs a particle, validating the invariants in spec §3: nC >= 0,
// nH >= 0, nP >= 1, nA >= 0.
func New(nc, nh, np, na int64, creationTime float64) (*Particle, error) {
	p := &Particle{ID: uuid.New(), NC: nc, NH: nh, NP: np, NA: na, CreationTime: creationTime}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Particle) validate() error {
	if p.NC < 0 || p.NH < 0 || p.NA < 0 {
		return InvalidParticleError{Message: "atom/site counts must be non-negative"}
	}
	if p.NP < 1 {
		return InvalidParticleError{Message: "primary count must be >= 1"}
	}
	return nil
}

// InvalidParticleError is a programmer error (spec §7.1): never recovered.
type InvalidParticleError struct{ Message string }

func (e InvalidParticleError) Error() string { return "particle: " + e.Message }

// Clone deep-copies a particle, assigning it a fresh identity. Used by
// ensemble doubling, which must produce independent records.
func (p *Particle) Clone() *Particle {
	c := *p
	c.ID = uuid.New()
	return &c
}

// Mass returns m = (nC*Mc + nH*Mh) / Na, in kg.
func (p *Particle) Mass() float64 {
	return (float64(p.NC)*CarbonMw + float64(p.NH)*HydrogenMw) / Avogadro
}

// Volume returns V = nC*Mc / (Na * rho_soot), in m^3. The source text
// approximates particle volume from carbon content only (hydrogen
// contributes negligible volume for soot).
func (p *Particle) Volume() float64 {
	return float64(p.NC) * CarbonMw / (Avogadro * SootDensity)
}

// Diameter returns the spherical-equivalent diameter d = (6V/pi)^(1/3).
func (p *Particle) Diameter() float64 {
	v := p.Volume()
	if v <= 0 {
		return 0
	}
	return math.Cbrt(6 * v / math.Pi)
}

// PrimaryDiameter returns d_p = (6V/(nP*pi))^(1/3).
func (p *Particle) PrimaryDiameter() float64 {
	v := p.Volume()
	if v <= 0 || p.NP <= 0 {
		return 0
	}
	return math.Cbrt(6 * v / (float64(p.NP) * math.Pi))
}

// SurfaceArea returns A = nP * pi * d_p^2.
func (p *Particle) SurfaceArea() float64 {
	dp := p.PrimaryDiameter()
	return float64(p.NP) * math.Pi * dp * dp
}

// Coagulate produces a new particle record with summed counts and
// creation_time = min(a.CreationTime, b.CreationTime), per spec §3.
func Coagulate(a, b *Particle) *Particle {
	ct := a.CreationTime
	if b.CreationTime < ct {
		ct = b.CreationTime
	}
	return &Particle{
		ID:           uuid.New(),
		NC:           a.NC + b.NC,
		NH:           a.NH + b.NH,
		NP:           a.NP + b.NP,
		NA:           a.NA + b.NA,
		CreationTime: ct,
	}
}

// Nascent builds the particle nucleation appends: fixed composition set by
// configuration (defaults nC=32, nH=18, two active sites), at simulation
// time t.
func Nascent(nc, nh int64, t float64) *Particle {
	return &Particle{ID: uuid.New(), NC: nc, NH: nh, NP: 1, NA: 2, CreationTime: t}
}
