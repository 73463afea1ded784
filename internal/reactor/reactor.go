// Package reactor implements the operator-splitting coordinator (spec
// §4.5) and the library's outward-facing Reactor API (spec §6). It is the
// top-level orchestration layer, adapted from the teacher repo's
// internal/sim.Simulator driving loop: a macro-step loop that advances a
// gas/particle coupled system and emits snapshots, generalized from a
// single-system ODE loop to the two-system splitting scheme this spec
// requires.
package reactor

import (
	"fmt"
	"math"

	"github.com/san-kum/sootsim/internal/dsa"
	"github.com/san-kum/sootsim/internal/gas"
	"github.com/san-kum/sootsim/internal/ode"
	"github.com/san-kum/sootsim/internal/particle"
	"github.com/san-kum/sootsim/internal/process"
)

// Splitting selects the coupling scheme between the stiff gas ODE and the
// stochastic particle engine (spec §4.5).
type Splitting int

const (
	SplittingLie Splitting = iota
	SplittingStrang
	SplittingPredictor
)

func ParseSplitting(name string) (Splitting, error) {
	switch name {
	case "", "strang":
		return SplittingStrang, nil
	case "lie":
		return SplittingLie, nil
	case "predictor":
		return SplittingPredictor, nil
	default:
		return 0, fmt.Errorf("reactor: unknown splitting scheme %q", name)
	}
}

// Config collects every configuration key spec §6 recognises.
type Config struct {
	Splitting      Splitting
	ODE            ode.Config
	Ensemble       particle.Config
	Seed           int64
	CorrectorTol   float64
	CorrectorIters int
	Processes      ProcessSet
	DSA            dsa.Config
}

// ProcessSet bundles the four rate-law processes the engine consults.
type ProcessSet struct {
	Nucleation  process.Nucleation
	Growth      process.Growth
	Coagulation process.Coagulation
	Oxidation   process.Oxidation
}

func DefaultProcessSet() ProcessSet {
	return ProcessSet{
		Nucleation:  process.DefaultNucleation(),
		Growth:      process.DefaultGrowth(),
		Coagulation: process.DefaultCoagulation(),
		Oxidation:   process.DefaultOxidation(),
	}
}

func DefaultConfig() Config {
	return Config{
		Splitting:      SplittingStrang,
		ODE:            ode.DefaultConfig(),
		Ensemble:       particle.Config{MinSize: 512, MaxSize: 4096, SampleVolume: 1e-9},
		CorrectorTol:   1e-3,
		CorrectorIters: 3,
		Processes:      DefaultProcessSet(),
		DSA:            dsa.DefaultConfig(),
	}
}

// Snapshot is the record emitted at each output boundary (spec §6).
type Snapshot struct {
	Time              float64
	T                 float64
	P                 float64
	Y                 []float64
	NParticles        int
	MeanDiameter      float64
	NumberDensity     float64
	MassConcentration float64
}

// Warning is a non-fatal, logged condition (spec §7.2): ODE non-convergence,
// DSA safety-cap hits, or corrector non-convergence. The caller may inspect
// these but the run never aborts because of one.
type Warning struct {
	Time    float64
	Source  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("t=%.6g [%s] %s", w.Time, w.Source, w.Message)
}

// Reactor couples the ODE driver and the DSA engine through a splitting
// coordinator. It owns the ensemble and the driver; the gas object is
// supplied by the caller (the mechanism-agnostic external collaborator).
type Reactor struct {
	cfg      Config
	gas      gas.Capability
	ensemble *particle.Ensemble
	engine   *dsa.Engine
	driver   *ode.Driver
	time     float64
	warnings []Warning
}

// Configure validates cfg and returns it with CorrectorTol/CorrectorIters
// defaulted (1e-3 / 3) when non-positive; a distinct step from
// Initialize per spec §6's outward API (configure/initialize/step/run/reset).
func Configure(cfg Config) (Config, error) {
	if cfg.Ensemble.SampleVolume <= 0 {
		return cfg, fmt.Errorf("reactor: sample_volume must be positive")
	}
	if cfg.Ensemble.MinSize < 1 || cfg.Ensemble.MaxSize < cfg.Ensemble.MinSize {
		return cfg, fmt.Errorf("reactor: invalid ensemble bounds")
	}
	if cfg.CorrectorTol <= 0 {
		cfg.CorrectorTol = 1e-3
	}
	if cfg.CorrectorIters <= 0 {
		cfg.CorrectorIters = 3
	}
	return cfg, nil
}

// Initialize builds a Reactor around g with the given initial particles
// (spec §6 initialize(sample_volume, initial_particles)); sample_volume
// lives in cfg.Ensemble.SampleVolume. An empty ensemble with nucleation
// absent is valid — the engine idles, clock advances (spec §4.5).
func Initialize(cfg Config, g gas.Capability, initial []*particle.Particle) (*Reactor, error) {
	cfg, err := Configure(cfg)
	if err != nil {
		return nil, err
	}

	eng := dsa.New(cfg.Seed, cfg.DSA,
		cfg.Processes.Nucleation, cfg.Processes.Growth,
		cfg.Processes.Coagulation, cfg.Processes.Oxidation)

	r := &Reactor{
		cfg:    cfg,
		gas:    g,
		engine: eng,
		driver: ode.New(cfg.ODE),
	}

	ens, err := particle.New(cfg.Ensemble, eng.RNG())
	if err != nil {
		return nil, err
	}
	for _, p := range initial {
		ens.Add(p)
	}
	r.ensemble = ens

	return r, nil
}

// Reset rebuilds the reactor's ensemble (empty) and clock, keeping cfg and
// the gas object.
func (r *Reactor) Reset() error {
	ens, err := particle.New(r.cfg.Ensemble, r.engine.RNG())
	if err != nil {
		return err
	}
	r.ensemble = ens
	r.time = 0
	r.warnings = nil
	return nil
}

func (r *Reactor) Time() float64       { return r.time }
func (r *Reactor) Ensemble() *particle.Ensemble { return r.ensemble }
func (r *Reactor) Warnings() []Warning { return r.warnings }

func (r *Reactor) warn(source, msg string) {
	r.warnings = append(r.warnings, Warning{Time: r.time, Source: source, Message: msg})
}

// Step advances the coupled system by one macro step dt (spec §6
// step(dt)), dispatching to the configured splitting scheme.
func (r *Reactor) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("reactor: dt must be positive")
	}
	var err error
	switch r.cfg.Splitting {
	case SplittingLie:
		err = r.stepLie(dt)
	case SplittingPredictor:
		err = r.stepPredictorCorrector(dt)
	default:
		err = r.stepStrang(dt)
	}
	if err != nil {
		return err
	}
	r.time += dt
	return nil
}

// stepLie advances gas(dt) then particles(dt), first order (spec §4.5).
func (r *Reactor) stepLie(dt float64) error {
	if err := r.advanceGas(dt); err != nil {
		return err
	}
	r.refreshSources()
	r.advanceParticles(dt)
	return nil
}

// stepStrang advances gas(dt/2) -> refresh -> particles(dt) -> refresh ->
// gas(dt/2), second order and the default scheme (spec §4.5).
func (r *Reactor) stepStrang(dt float64) error {
	half := dt / 2
	if err := r.advanceGas(half); err != nil {
		return err
	}
	r.refreshSources()
	r.advanceParticles(dt)
	r.refreshSources()
	if err := r.advanceGas(half); err != nil {
		return err
	}
	return nil
}

// stepPredictorCorrector implements spec §4.5's predictor-corrector: snapshot
// G0, refresh sources, predict gas(dt) -> Gp, advance particles against the
// predicted gas (read-only), refresh sources, restore G0, re-run gas(dt) ->
// Gc, compare Gc to Gp; iterate until corrector_tol or max_corrector_iters.
func (r *Reactor) stepPredictorCorrector(dt float64) error {
	g0T, g0P, g0Y := r.gas.T(), r.gas.P(), r.gas.Y()

	r.refreshSources()
	if err := r.advanceGas(dt); err != nil {
		return err
	}
	predT, predY := r.gas.T(), r.gas.Y()

	r.advanceParticles(dt)
	r.refreshSources()

	for iter := 0; iter < r.cfg.CorrectorIters; iter++ {
		if err := r.gas.SetTPY(g0T, g0P, g0Y); err != nil {
			return err
		}
		if err := r.advanceGas(dt); err != nil {
			return err
		}
		corrT, corrY := r.gas.T(), r.gas.Y()

		tDiff := math.Abs(corrT-predT) / math.Max(math.Abs(predT), 1e-30)
		yDiff := maxAbsDiff(corrY, predY)

		if tDiff <= r.cfg.CorrectorTol && yDiff <= r.cfg.CorrectorTol {
			return nil
		}

		predT, predY = corrT, corrY
		if iter == r.cfg.CorrectorIters-1 {
			r.warn("corrector", "predictor-corrector did not converge, accepting last iteration")
		}
	}
	return nil
}

func maxAbsDiff(a, b []float64) float64 {
	m := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > m {
			m = d
		}
	}
	return m
}

func (r *Reactor) advanceGas(dt float64) error {
	err := r.driver.Advance(r.gas, dt)
	if err == nil {
		return nil
	}
	switch err.(type) {
	case ode.ConvergenceWarning:
		r.warn("ode", err.Error())
		return nil
	default:
		return err
	}
}

func (r *Reactor) advanceParticles(dt float64) {
	res := r.engine.Step(gasReaderAdapter{r.gas}, r.ensemble, dt)
	if res.Warning != nil {
		r.warn("dsa", res.Warning.Error())
	}
}

func (r *Reactor) refreshSources() {
	sources := r.engine.SourceTerms(gasReaderAdapter{r.gas}, r.ensemble)
	r.driver.SetSourceTerms(sources)
}

// gasReaderAdapter narrows gas.Capability to process.GasReader.
type gasReaderAdapter struct{ g gas.Capability }

func (a gasReaderAdapter) T() float64 { return a.g.T() }
func (a gasReaderAdapter) P() float64 { return a.g.P() }
func (a gasReaderAdapter) Concentration(name string) float64 { return a.g.Concentration(name) }

// Snapshot captures the current reactor-state record (spec §6).
func (r *Reactor) Snapshot() Snapshot {
	stats := r.ensemble.Statistics()
	return Snapshot{
		Time:              r.time,
		T:                 r.gas.T(),
		P:                 r.gas.P(),
		Y:                 r.gas.Y(),
		NParticles:        stats.NParticles,
		MeanDiameter:      stats.MeanDiameter,
		NumberDensity:     stats.NumberDensity,
		MassConcentration: stats.MassConcentration,
	}
}

// Run advances duration/dt macro steps, emitting a Snapshot every
// output_interval seconds (spec §6 run(duration, dt, output_interval)).
func (r *Reactor) Run(duration, dt, outputInterval float64) ([]Snapshot, error) {
	if dt <= 0 || duration <= 0 {
		return nil, fmt.Errorf("reactor: dt and duration must be positive")
	}
	if outputInterval <= 0 {
		outputInterval = dt
	}

	steps := int(duration / dt)
	snapshots := make([]Snapshot, 0, steps+1)
	snapshots = append(snapshots, r.Snapshot())
	nextOutput := outputInterval

	for i := 0; i < steps; i++ {
		if err := r.Step(dt); err != nil {
			return snapshots, err
		}
		if r.time+1e-12 >= nextOutput {
			snapshots = append(snapshots, r.Snapshot())
			nextOutput += outputInterval
		}
	}
	return snapshots, nil
}
