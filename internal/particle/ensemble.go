package particle

import (
	"math"
	"math/rand"
)

// Ensemble is a finite, unordered bag of particles plus a positive
// statistical weight and sample volume (spec §3, §4.1).
type Ensemble struct {
	particles []*Particle
	weight    float64
	sampleVol float64
	minSize   int
	maxSize   int
	rng       *rand.Rand
}

// Config bounds the ensemble size-control policy (spec §4.1, §6 config keys
// max_particles/min_particles/sample_volume).
type Config struct {
	MinSize      int
	MaxSize      int
	SampleVolume float64
}

// New creates an empty ensemble with w=1, the given sample volume, and size
// bounds [min, max]. rng is the engine's owned random stream (spec §4.3,
// §5) — the ensemble never seeds its own generator, preserving the single
// reproducibility seed contract.
func New(cfg Config, rng *rand.Rand) (*Ensemble, error) {
	if cfg.SampleVolume <= 0 {
		return nil, InvalidParticleError{Message: "sample volume must be positive"}
	}
	if cfg.MinSize < 1 || cfg.MaxSize < cfg.MinSize {
		return nil, InvalidParticleError{Message: "invalid ensemble size bounds"}
	}
	return &Ensemble{
		particles: make([]*Particle, 0, cfg.MaxSize),
		weight:    1,
		sampleVol: cfg.SampleVolume,
		minSize:   cfg.MinSize,
		maxSize:   cfg.MaxSize,
		rng:       rng,
	}, nil
}

func (e *Ensemble) Len() int             { return len(e.particles) }
func (e *Ensemble) Weight() float64      { return e.weight }
func (e *Ensemble) SampleVolume() float64 { return e.sampleVol }
func (e *Ensemble) At(i int) *Particle   { return e.particles[i] }

// NumberDensity returns n = |E|*w/Vs, #/m^3.
func (e *Ensemble) NumberDensity() float64 {
	return float64(len(e.particles)) * e.weight / e.sampleVol
}

// MassConcentration returns (sum m_i) * w / Vs, kg/m^3.
func (e *Ensemble) MassConcentration() float64 {
	sum := 0.0
	for _, p := range e.particles {
		sum += p.Mass()
	}
	return sum * e.weight / e.sampleVol
}

// Add appends particle; if size now exceeds maxSize, triggers a halving.
func (e *Ensemble) Add(p *Particle) {
	e.particles = append(e.particles, p)
	if len(e.particles) > e.maxSize {
		e.halve()
	}
}

// Remove deletes the particle at index i (order is not preserved — it is
// replaced by the last element, an O(1) removal appropriate for an
// unordered bag); if size now falls below minSize (and is non-zero),
// triggers a doubling.
func (e *Ensemble) Remove(i int) {
	last := len(e.particles) - 1
	e.particles[i] = e.particles[last]
	e.particles = e.particles[:last]
	if len(e.particles) > 0 && len(e.particles) < e.minSize {
		e.double()
	}
}

// RemoveHighestFirst deletes the particles at the given indices, removing
// the higher index first so lower indices stay valid — the contract
// coagulation event execution relies on (spec §4.3).
func (e *Ensemble) RemoveHighestFirst(i, j int) {
	if i < j {
		i, j = j, i
	}
	e.Remove(i)
	e.Remove(j)
}

// halve samples floor(|E|/2) indices without replacement, deletes them, and
// rescales w by n/(n-toRemove) so |E|*w is preserved exactly (spec §8, §3):
// for even n this is the familiar 2w, but for odd n plain doubling would
// over-correct (n=11 -> keep 6, 2w adds one particle's worth of density).
func (e *Ensemble) halve() {
	n := len(e.particles)
	toRemove := n / 2
	if toRemove == 0 {
		return
	}
	idx := e.rng.Perm(n)[:toRemove]
	// delete from highest index to lowest so earlier removals don't shift
	// later target indices (swap-with-last removal semantics).
	sortDesc(idx)
	for _, i := range idx {
		last := len(e.particles) - 1
		e.particles[i] = e.particles[last]
		e.particles = e.particles[:last]
	}
	e.weight *= float64(n) / float64(n-toRemove)
}

// double appends an independent deep copy of every existing particle and
// sets w <- w/2.
func (e *Ensemble) double() {
	n := len(e.particles)
	for i := 0; i < n; i++ {
		e.particles = append(e.particles, e.particles[i].Clone())
	}
	e.weight /= 2
}

func sortDesc(idx []int) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && idx[j] > idx[j-1]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
}

// SelectUniform draws a uniform index. ok is false on an empty ensemble —
// a recoverable "no-selection" condition (spec §4.1, §7.4), never an error.
func (e *Ensemble) SelectUniform() (idx int, ok bool) {
	if len(e.particles) == 0 {
		return 0, false
	}
	return e.rng.Intn(len(e.particles)), true
}

// SelectPair draws two distinct uniform indices. ok is false when
// |E| < 2.
func (e *Ensemble) SelectPair() (i, j int, ok bool) {
	n := len(e.particles)
	if n < 2 {
		return 0, 0, false
	}
	i = e.rng.Intn(n)
	j = e.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j, true
}

// SelectWeighted draws an index proportional to weights[i]. ok is false
// when len(weights) != Len() or the weights sum to <= 0.
func (e *Ensemble) SelectWeighted(weights []float64) (idx int, ok bool) {
	if len(weights) != len(e.particles) {
		return 0, false
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0, false
	}
	r := e.rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i, true
		}
	}
	return len(weights) - 1, true
}

// Statistics holds the population-level quantities spec §4.1 requires.
type Statistics struct {
	NParticles       int
	MeanDiameter     float64
	StdDiameter      float64
	MeanNC           float64
	MeanNP           float64
	NumberDensity    float64
	MassConcentration float64
}

func (e *Ensemble) Statistics() Statistics {
	n := len(e.particles)
	stats := Statistics{
		NParticles:        n,
		NumberDensity:     e.NumberDensity(),
		MassConcentration: e.MassConcentration(),
	}
	if n == 0 {
		return stats
	}
	var sumD, sumD2, sumNC, sumNP float64
	for _, p := range e.particles {
		d := p.Diameter()
		sumD += d
		sumD2 += d * d
		sumNC += float64(p.NC)
		sumNP += float64(p.NP)
	}
	stats.MeanDiameter = sumD / float64(n)
	variance := sumD2/float64(n) - stats.MeanDiameter*stats.MeanDiameter
	if variance < 0 {
		variance = 0
	}
	stats.StdDiameter = math.Sqrt(variance)
	stats.MeanNC = sumNC / float64(n)
	stats.MeanNP = sumNP / float64(n)
	return stats
}

// Histogram bins diameters into the given number of bins over [min, max],
// with counts scaled by w.
func (e *Ensemble) Histogram(bins int, min, max float64) []float64 {
	counts := make([]float64, bins)
	if bins <= 0 || max <= min {
		return counts
	}
	width := (max - min) / float64(bins)
	for _, p := range e.particles {
		d := p.Diameter()
		if d < min || d > max {
			continue
		}
		bin := int((d - min) / width)
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin] += e.weight
	}
	return counts
}

// Particles returns a read-only snapshot slice of the current members, for
// processes that need to range over the population without mutating it.
func (e *Ensemble) Particles() []*Particle {
	out := make([]*Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// SumNC, SumNH, SumNP report the population-wide invariants spec §8 checks
// across coagulation events.
func (e *Ensemble) SumNC() int64 {
	var s int64
	for _, p := range e.particles {
		s += p.NC
	}
	return s
}

func (e *Ensemble) SumNH() int64 {
	var s int64
	for _, p := range e.particles {
		s += p.NH
	}
	return s
}

func (e *Ensemble) SumNP() int64 {
	var s int64
	for _, p := range e.particles {
		s += p.NP
	}
	return s
}
