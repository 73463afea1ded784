// Package dsa implements the Direct Simulation Algorithm: the
// kinetic-Monte-Carlo event engine that advances a particle ensemble over a
// fixed gas state by sampling a time-inhomogeneous Poisson process (spec
// §4.3).
package dsa

import (
	"math/rand"

	"github.com/san-kum/sootsim/internal/particle"
	"github.com/san-kum/sootsim/internal/process"
)

// Config configures deferment policy and safety bounds (spec §6 config
// keys: defer_growth, defer_oxidation, plus the iteration cap).
type Config struct {
	DeferGrowth    bool
	DeferOxidation bool
	MaxIterations  int // safety cap per step, default 10000
}

func DefaultConfig() Config {
	return Config{DeferGrowth: true, DeferOxidation: true, MaxIterations: 10000}
}

// Engine owns the RNG, running event counters and total simulated time
// (spec §4.3 "State"). It never mutates the gas; it only reads it through
// process.GasReader.
type Engine struct {
	cfg     Config
	nuc     process.Nucleation
	grow    process.Growth
	coag    process.Coagulation
	ox      process.Oxidation
	rng     *rand.Rand
	time    float64
	counts  map[process.Kind]int64
	capHits int64
}

// New constructs an engine with an explicit seed, satisfying the single
// reproducibility-seed contract (spec §6).
func New(seed int64, cfg Config, nuc process.Nucleation, grow process.Growth, coag process.Coagulation, ox process.Oxidation) *Engine {
	return &Engine{
		cfg:    cfg,
		nuc:    nuc,
		grow:   grow,
		coag:   coag,
		ox:     ox,
		rng:    rand.New(rand.NewSource(seed)),
		counts: make(map[process.Kind]int64),
	}
}

func (e *Engine) Time() float64 { return e.time }

// RNG exposes the engine's random source so the ensemble it drives can
// share a single reproducible stream (spec §6's single-seed contract).
func (e *Engine) RNG() *rand.Rand { return e.rng }

func (e *Engine) EventCount(k process.Kind) int64 { return e.counts[k] }

func (e *Engine) SafetyCapHits() int64 { return e.capHits }

// Event is the tagged observability record spec §3 defines; it never feeds
// back into computation.
type Event struct {
	Time   float64
	Kind   process.Kind
	Target int // particle index, -1 when not applicable
	Rate   float64
}

// StepResult carries the events drawn during one Step call and any
// recoverable warning (safety cap hit).
type StepResult struct {
	Events  []Event
	Warning error
}

// CapWarning is the recoverable condition spec §7.2/§8 describes: the
// safety bound on event iterations was hit. The caller continues with the
// best-available state.
type CapWarning struct{ Iterations int }

func (w CapWarning) Error() string {
	return "dsa: safety iteration cap hit"
}

// computedRates bundles the instantaneous stochastic rates (after
// excluding any deferred linear processes) with the raw per-process rates
// needed for deferred application and gas source-term export.
type computedRates struct {
	stochastic process.Rates // used to drive the exponential sampler
	raw        process.Rates // full, undeferred values for export/reporting
}

func (e *Engine) computeRates(g process.GasReader, ens *particle.Ensemble) computedRates {
	ps := ens.Particles()
	raw := process.Rates{
		Nuc:  e.nuc.Rate(g),
		Grow: e.grow.TotalRate(g, ps),
		Coag: e.coag.EstimateRate(e.rng, g.T(), ps, ens.Weight(), ens.SampleVolume()),
		Ox:   e.ox.TotalRate(g, ps),
	}
	stoch := raw
	if e.cfg.DeferGrowth {
		stoch.Grow = 0
	}
	if e.cfg.DeferOxidation {
		stoch.Ox = 0
	}
	return computedRates{stochastic: stoch, raw: raw}
}

// Step advances the ensemble from e.Time() to e.Time()+dt, holding the gas
// state fixed (spec §4.3 step algorithm). It returns the drawn events.
func (e *Engine) Step(g process.GasReader, ens *particle.Ensemble, dt float64) StepResult {
	target := e.time + dt
	result := StepResult{}
	cap := e.cfg.MaxIterations
	if cap <= 0 {
		cap = 10000
	}

	for iter := 0; ; iter++ {
		if iter >= cap {
			e.capHits++
			result.Warning = CapWarning{Iterations: iter}
			e.applyDeferredResidual(g, ens, target-e.time)
			e.time = target
			return result
		}

		rates := e.computeRates(g, ens)
		total := rates.stochastic.Total()

		if total <= 0 {
			e.applyDeferredResidual(g, ens, target-e.time)
			e.time = target
			return result
		}

		tau := e.rng.ExpFloat64() / total
		if e.time+tau > target {
			e.applyDeferredResidual(g, ens, target-e.time)
			e.time = target
			return result
		}

		e.time += tau
		evt := e.fireEvent(g, ens, rates.stochastic)
		result.Events = append(result.Events, evt)
	}
}

// fireEvent draws an event kind by cumulative selection on
// (R_nuc, R_grow, R_coag, R_ox) and executes it.
func (e *Engine) fireEvent(g process.GasReader, ens *particle.Ensemble, rates process.Rates) Event {
	total := rates.Total()
	r := e.rng.Float64() * total

	switch {
	case r < rates.Nuc:
		return e.fireNucleation(ens, rates.Nuc)
	case r < rates.Nuc+rates.Grow:
		return e.fireGrowth(g, ens, rates.Grow)
	case r < rates.Nuc+rates.Grow+rates.Coag:
		return e.fireCoagulation(ens, rates.Coag)
	default:
		return e.fireOxidation(g, ens, rates.Ox)
	}
}

func (e *Engine) fireNucleation(ens *particle.Ensemble, rate float64) Event {
	p := e.nuc.Apply(e.time)
	ens.Add(p)
	e.counts[process.KindNucleation]++
	return Event{Time: e.time, Kind: process.KindNucleation, Target: -1, Rate: rate}
}

func (e *Engine) fireGrowth(g process.GasReader, ens *particle.Ensemble, rate float64) Event {
	ps := ens.Particles()
	weights := e.grow.Weights(g, ps)
	idx, ok := ens.SelectWeighted(weights)
	if !ok {
		return Event{Time: e.time, Kind: process.KindGrowth, Target: -1, Rate: rate}
	}
	e.grow.Apply(ens.At(idx))
	e.counts[process.KindGrowth]++
	return Event{Time: e.time, Kind: process.KindGrowth, Target: idx, Rate: rate}
}

func (e *Engine) fireCoagulation(ens *particle.Ensemble, rate float64) Event {
	i, j, ok := ens.SelectPair()
	if !ok {
		return Event{Time: e.time, Kind: process.KindCoagulation, Target: -1, Rate: rate}
	}
	a, b := ens.At(i), ens.At(j)
	coag := e.coag.Apply(a, b)
	// delete higher index first to preserve the lower (spec §4.3).
	ens.RemoveHighestFirst(i, j)
	before := ens.Len()
	ens.Add(coag)
	// Add may have triggered a halving, which can remove or relocate the
	// particle just appended — in that case its final index isn't
	// observable here, so report -1 rather than a misleading guess.
	target := -1
	if ens.Len() == before+1 {
		target = ens.Len() - 1
	}
	e.counts[process.KindCoagulation]++
	return Event{Time: e.time, Kind: process.KindCoagulation, Target: target, Rate: rate}
}

func (e *Engine) fireOxidation(g process.GasReader, ens *particle.Ensemble, rate float64) Event {
	ps := ens.Particles()
	weights := e.ox.Weights(g, ps)
	idx, ok := ens.SelectWeighted(weights)
	if !ok {
		return Event{Time: e.time, Kind: process.KindOxidation, Target: -1, Rate: rate}
	}
	p := ens.At(idx)
	burnedOut := e.ox.Apply(p)
	if burnedOut {
		ens.Remove(idx)
	}
	e.counts[process.KindOxidation]++
	return Event{Time: e.time, Kind: process.KindOxidation, Target: idx, Rate: rate}
}

// applyDeferredResidual applies the deterministic linear accumulators for
// growth/oxidation (when deferred) over the residual dt, once per Step
// call (spec §4.3 "Linear process deferment").
func (e *Engine) applyDeferredResidual(g process.GasReader, ens *particle.Ensemble, dt float64) {
	if dt <= 0 {
		return
	}
	if e.cfg.DeferGrowth {
		for _, p := range ens.Particles() {
			e.grow.ApplyDeferred(g, p, dt)
		}
	}
	if e.cfg.DeferOxidation {
		burnedOutIdx := make([]int, 0)
		ps := ens.Particles()
		for i, p := range ps {
			if e.ox.ApplyDeferred(g, p, dt) {
				burnedOutIdx = append(burnedOutIdx, i)
			}
		}
		for k := len(burnedOutIdx) - 1; k >= 0; k-- {
			ens.Remove(burnedOutIdx[k])
		}
	}
}

// SourceTerms exports particle->gas consumption/production for the next
// splitting cycle, computed from the raw (undeferred) instantaneous rates
// at the current gas state (spec §4.3 "Gas source terms").
func (e *Engine) SourceTerms(g process.GasReader, ens *particle.Ensemble) map[string]float64 {
	rates := e.computeRates(g, ens)
	out := make(map[string]float64)
	for species, v := range e.nuc.SourceTerms(rates.raw.Nuc) {
		out[species] += v
	}
	for species, v := range e.grow.SourceTerms(rates.raw.Grow) {
		out[species] += v
	}
	for species, v := range e.ox.SourceTerms(rates.raw.Ox) {
		out[species] += v
	}
	return out
}
