package gas

import "math"

// Mixture is a lightweight in-memory Capability double. It is not a
// chemistry backend — loading mechanisms and computing real net production
// rates is explicitly out of the core's scope (spec §1) — but the core
// needs something concrete to integrate against in tests and from the CLI
// when no external mechanism is wired in. Production rates are supplied by
// an injectable ProductionFunc so callers can model anything from a fully
// inert mixture to a toy reacting one.
type Mixture struct {
	names   []string
	index   map[string]int
	molar   []float64 // kg/kmol
	enth    []float64 // J/kmol, held constant for this double
	t       float64
	p       float64
	y       []float64
	cp      float64 // J/(kg*K), held constant
	rateFn  ProductionFunc
}

// ProductionFunc computes net molar production omega (kmol/(m^3*s)) for the
// current (T, P, Y). Returning a nil or all-zero slice models an inert gas.
type ProductionFunc func(t, p float64, y []float64) []float64

// NewMixture builds a Mixture double. names/molarMasses/enthalpies must be
// parallel slices; y0 is the initial mass-fraction vector and must sum to 1
// within 1e-6 or NewMixture returns an error (an invalid initial state is a
// programmer error per spec §7.1).
func NewMixture(names []string, molarMasses, enthalpies []float64, t0, p0 float64, y0 []float64, cp float64, rateFn ProductionFunc) (*Mixture, error) {
	if len(names) != len(molarMasses) || len(names) != len(enthalpies) || len(names) != len(y0) {
		return nil, InvalidStateError{Message: "species slices must be the same length"}
	}
	if t0 <= 0 || p0 <= 0 {
		return nil, InvalidStateError{Message: "T and P must be positive"}
	}
	sum := 0.0
	for _, yi := range y0 {
		if yi < 0 {
			return nil, InvalidStateError{Message: "mass fraction must be non-negative"}
		}
		sum += yi
	}
	if math.Abs(sum-1) > 1e-6 {
		return nil, InvalidStateError{Message: "mass fractions must sum to 1"}
	}
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	if rateFn == nil {
		rateFn = InertProduction
	}
	y := make([]float64, len(y0))
	copy(y, y0)
	return &Mixture{
		names:  append([]string(nil), names...),
		index:  index,
		molar:  append([]float64(nil), molarMasses...),
		enth:   append([]float64(nil), enthalpies...),
		t:      t0,
		p:      p0,
		y:      y,
		cp:     cp,
		rateFn: rateFn,
	}, nil
}

// InertProduction is the zero ProductionFunc: no reactions.
func InertProduction(t, p float64, y []float64) []float64 {
	return make([]float64, len(y))
}

func (m *Mixture) T() float64 { return m.t }
func (m *Mixture) P() float64 { return m.p }

func (m *Mixture) meanMolarMass() float64 {
	invM := 0.0
	for i, yi := range m.y {
		invM += yi / m.molar[i]
	}
	if invM <= 0 {
		return 0
	}
	return 1 / invM
}

func (m *Mixture) Density() float64 {
	const R = 8314.462618 // J/(kmol*K)
	mbar := m.meanMolarMass()
	if mbar == 0 || m.t == 0 {
		return 0
	}
	// ideal gas: rho = P * Mbar / (R * T), Mbar in kg/kmol, P in Pa -> rho kg/m^3
	return m.p * mbar / (R * m.t)
}

func (m *Mixture) Concentration(name string) float64 {
	idx, ok := m.index[name]
	if !ok {
		return 0
	}
	rho := m.Density()
	if rho == 0 {
		return 0
	}
	// mol/m^3 = rho[kg/m^3] * Y / (W[kg/kmol]/1000[mol/kmol... kg->g]) -- use
	// consistent SI: W here is kg/kmol == g/mol, so concentration in mol/m^3
	// is rho*Y/W * 1000 (kmol/m^3 -> mol/m^3).
	return rho * m.y[idx] / m.molar[idx] * 1000
}

func (m *Mixture) Y() []float64 {
	out := make([]float64, len(m.y))
	copy(out, m.y)
	return out
}

func (m *Mixture) ProductionRates() []float64 {
	return m.rateFn(m.t, m.p, m.y)
}

func (m *Mixture) MolarMasses() []float64 {
	out := make([]float64, len(m.molar))
	copy(out, m.molar)
	return out
}

func (m *Mixture) PartialMolarEnthalpies() []float64 {
	out := make([]float64, len(m.enth))
	copy(out, m.enth)
	return out
}

func (m *Mixture) Cp() float64 { return m.cp }

func (m *Mixture) SpeciesIndex(name string) (int, bool) {
	idx, ok := m.index[name]
	return idx, ok
}

func (m *Mixture) NumSpecies() int { return len(m.names) }

func (m *Mixture) SpeciesNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *Mixture) SetTPY(t, p float64, y []float64) error {
	if t <= 0 || p <= 0 {
		return InvalidStateError{Message: "T and P must be positive"}
	}
	if len(y) != len(m.y) {
		return InvalidStateError{Message: "Y has wrong length"}
	}
	sum := 0.0
	for _, yi := range y {
		if yi < -1e-9 {
			return InvalidStateError{Message: "negative mass fraction"}
		}
		sum += yi
	}
	if math.Abs(sum-1) > 1e-3 {
		return InvalidStateError{Message: "mass fractions do not sum to 1"}
	}
	m.t = t
	m.p = p
	copy(m.y, y)
	return nil
}
