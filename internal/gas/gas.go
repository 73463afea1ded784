// Package gas defines the narrow, read-mostly capability the particle-side
// core needs from a chemistry backend. The core never depends on a concrete
// mechanism implementation — loading mechanisms, parsing thermo data and
// computing net production rates is the job of an external collaborator
// that satisfies Capability.
package gas

import "fmt"

// Capability is the contract the population-balance core consumes. A real
// implementation wraps a chemistry/mechanism backend; the processes only
// read T, P and species concentrations, and SetTPY is called only by the ODE
// driver and the splitting coordinator.
type Capability interface {
	T() float64
	P() float64
	// Concentration returns the molar concentration of name in mol/m^3.
	// Unknown species return 0, never an error — see spec §7 category 3.
	Concentration(name string) float64
	// Y returns the current mass-fraction vector, indexed by SpeciesIndex.
	Y() []float64
	// ProductionRates returns net molar production omega, kmol/(m^3*s), one
	// entry per species.
	ProductionRates() []float64
	MolarMasses() []float64
	PartialMolarEnthalpies() []float64
	Density() float64
	Cp() float64
	// SpeciesIndex resolves a species name to its index, or ok=false if the
	// mechanism does not carry that species.
	SpeciesIndex(name string) (idx int, ok bool)
	NumSpecies() int
	SpeciesNames() []string
	// SetTPY is the mutator used by the ODE driver and by the splitting
	// coordinator (to restore a saved state in predictor-corrector); the
	// processes and the DSA engine never call it.
	SetTPY(T, P float64, Y []float64) error
}

// UnknownSpeciesError describes a species name the mechanism does not
// carry. Mixture never returns it: Concentration yields zero and
// SpeciesIndex reports ok=false for an unknown name.
type UnknownSpeciesError struct {
	Name string
}

func (e UnknownSpeciesError) Error() string {
	return fmt.Sprintf("gas: unknown species %q", e.Name)
}

// InvalidStateError marks a programmer error: non-physical gas state passed
// to SetTPY (non-positive T/P, mass fractions not summing to 1 within
// tolerance, negative mass fraction).
type InvalidStateError struct {
	Message string
}

func (e InvalidStateError) Error() string { return "gas: invalid state: " + e.Message }
