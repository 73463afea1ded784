package ode

import (
	"fmt"
	"math"

	"github.com/san-kum/sootsim/internal/gas"
)

// Config governs the stiff driver's tolerances and integrator choice (spec
// §6 config keys ode.*).
type Config struct {
	Integrator       string // "bdf" (default), "radau", "lsoda", "rk45", "rk23"
	RTol             float64
	ATol             float64
	MaxSteps         int
	EnergyEnabled    bool
	ConstantPressure bool
}

func DefaultConfig() Config {
	return Config{
		Integrator:       "bdf",
		RTol:             1e-6,
		ATol:             1e-12,
		MaxSteps:         10000,
		EnergyEnabled:    true,
		ConstantPressure: true,
	}
}

// ConvergenceWarning is the recoverable condition spec §4.4/§7.2 describes:
// the internal stepper failed to converge within its step bound; the
// driver commits the last successful state and continues.
type ConvergenceWarning struct {
	Time float64
}

func (w ConvergenceWarning) Error() string {
	return fmt.Sprintf("ode: integrator did not converge at t=%.6g, committing best-available state", w.Time)
}

// FatalStateError marks a programmer-error-class failure: the gas state
// left its physical domain beyond any recoverable tolerance (NaN, negative
// mass fraction beyond tolerance). Spec §4.4 distinguishes this from a
// plain convergence warning.
type FatalStateError struct {
	Message string
}

func (e FatalStateError) Error() string { return "ode: " + e.Message }

type stiffStepper interface {
	// step advances y by dt using rhsFn, returning the new state and
	// whether the internal solve converged.
	step(rhsFn func(Vector) Vector, y Vector, dt float64, rtol, atol float64) (Vector, bool)
}

// Driver advances (Y, T) over [0, dt]. It holds a private copy of the
// current particle->gas source terms; the coordinator sets/clears them
// between splitting sub-steps (spec §4.4).
type Driver struct {
	cfg     Config
	sources map[string]float64
}

func New(cfg Config) *Driver {
	return &Driver{cfg: cfg, sources: make(map[string]float64)}
}

// SetSourceTerms installs the engine-produced source terms (mol/(m^3*s))
// for the next Advance call.
func (d *Driver) SetSourceTerms(s map[string]float64) {
	d.sources = s
	if d.sources == nil {
		d.sources = make(map[string]float64)
	}
}

// ClearSourceTerms removes any installed source terms (pure gas-phase
// relaxation, e.g. between splitting cycles that don't refresh sources).
func (d *Driver) ClearSourceTerms() {
	d.sources = make(map[string]float64)
}

func (d *Driver) stepper() stiffStepper {
	switch d.cfg.Integrator {
	case "rk45":
		return rk45Stepper{}
	case "rk23":
		return rk23Stepper{}
	case "radau":
		return implicitStepper{order: "radau"}
	case "lsoda":
		return lsodaStepper{}
	default:
		return implicitStepper{order: "bdf"}
	}
}

// Advance integrates g's (T, Y) forward by dt, subdividing internally up to
// cfg.MaxSteps, with absolute/relative tolerance cfg.ATol/cfg.RTol. On
// non-convergence it logs (via the returned warning) and commits the last
// successful state rather than raising (spec §4.4, §7.2).
func (d *Driver) Advance(g gas.Capability, dt float64) error {
	y, err := d.readState(g)
	if err != nil {
		return err
	}

	rhs := d.buildRHS(g)
	stepper := d.stepper()

	maxSteps := d.cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 10000
	}
	// Internal subdivision: each pass tries the whole remaining interval and,
	// when the stepper reports a failed error/Newton check, half of it; the
	// total number of internal steps is capped at maxSteps.
	remaining := dt
	t0 := 0.0
	steps := 0
	var warning error

	for remaining > 1e-15*math.Max(1, dt) && steps < maxSteps {
		trial := remaining
		next, ok := stepper.step(rhs, y, trial, d.cfg.RTol, d.cfg.ATol)
		if !ok {
			half := trial / 2
			if half >= dt*1e-6 {
				next, ok = stepper.step(rhs, y, half, d.cfg.RTol, d.cfg.ATol)
				trial = half
			}
			if !ok {
				// keep y, the last converged state, and stop integrating.
				warning = ConvergenceWarning{Time: t0}
				break
			}
		}
		if !next.IsValid() {
			return FatalStateError{Message: "NaN/Inf encountered integrating gas state"}
		}
		y = next
		t0 += trial
		remaining -= trial
		steps++
	}

	if err := d.writeState(g, y); err != nil {
		return err
	}
	return warning
}

func (d *Driver) readState(g gas.Capability) (Vector, error) {
	y := g.Y()
	if d.cfg.EnergyEnabled {
		v := make(Vector, len(y)+1)
		copy(v, y)
		v[len(y)] = g.T()
		return v, nil
	}
	v := make(Vector, len(y))
	copy(v, y)
	return v, nil
}

func (d *Driver) writeState(g gas.Capability, y Vector) error {
	s := g.NumSpecies()
	yy := make([]float64, s)
	copy(yy, y[:s])
	T := g.T()
	if d.cfg.EnergyEnabled {
		T = y[s]
	}
	return g.SetTPY(T, g.P(), yy)
}

// buildRHS closes over the gas mechanism and the driver's current source
// terms, implementing spec §4.4's right-hand side:
//
//	dYs/dt = (omega_s + s_s/1000) * Ws / rho
//	dT/dt  = -Sum_s h_s*omega_s / (rho*cp)     (energy enabled)
//
// Each call mutates g's TPY to the trial state before querying production
// rates/density/cp — the mechanism-as-stateful-object idiom spec §6
// describes (set_TPY, then read derived quantities).
func (d *Driver) buildRHS(g gas.Capability) func(Vector) Vector {
	s := g.NumSpecies()
	P := g.P()
	return func(y Vector) Vector {
		Y := make([]float64, s)
		copy(Y, y[:s])
		T := g.T()
		if d.cfg.EnergyEnabled {
			T = y[s]
		}
		pressure := P
		if !d.cfg.ConstantPressure {
			pressure = constantVolumePressure(g, T, Y)
		}
		normalizeMassFractions(Y)
		if err := g.SetTPY(T, pressure, Y); err != nil {
			// a trial state outside the mechanism's domain degrades to a
			// zero derivative rather than propagating a fatal error from
			// inside a Newton/RK stage evaluation.
			return make(Vector, len(y))
		}

		omega := g.ProductionRates()
		W := g.MolarMasses()
		rho := g.Density()
		dy := make(Vector, len(y))
		if rho <= 0 {
			return dy
		}
		for i := 0; i < s; i++ {
			src := d.sources[nameFor(g, i)]
			dy[i] = (omega[i] + src/1000) * W[i] / rho
		}
		if d.cfg.EnergyEnabled {
			h := g.PartialMolarEnthalpies()
			cp := g.Cp()
			if cp > 0 {
				sum := 0.0
				for i := 0; i < s; i++ {
					sum += h[i] * omega[i]
				}
				dy[s] = -sum / (rho * cp)
			}
		}
		return dy
	}
}

func nameFor(g gas.Capability, idx int) string {
	names := g.SpeciesNames()
	if idx < len(names) {
		return names[idx]
	}
	return ""
}

// constantVolumePressure backs out P from the ideal-gas law holding the
// mechanism's current density fixed, for the constant-volume reactor
// variant (spec §4.4).
func constantVolumePressure(g gas.Capability, T float64, Y []float64) float64 {
	const R = 8314.462618
	rho := g.Density()
	mbar := meanMolarMass(g, Y)
	if mbar <= 0 {
		return g.P()
	}
	return rho * R * T / mbar
}

func meanMolarMass(g gas.Capability, Y []float64) float64 {
	W := g.MolarMasses()
	invM := 0.0
	for i, y := range Y {
		if W[i] > 0 {
			invM += y / W[i]
		}
	}
	if invM <= 0 {
		return 0
	}
	return 1 / invM
}

func normalizeMassFractions(Y []float64) {
	sum := 0.0
	for i := range Y {
		if Y[i] < 0 {
			Y[i] = 0
		}
		sum += Y[i]
	}
	if sum <= 0 {
		return
	}
	for i := range Y {
		Y[i] /= sum
	}
}
