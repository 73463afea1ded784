package process

import (
	"math"
	"math/rand"

	"github.com/san-kum/sootsim/internal/particle"
)

// Coagulation implements the free-molecular kernel
// beta(i,j) = eps * sqrt(6*kB*T) * (di+dj)^2 * sqrt(1/mi + 1/mj) / 4
// (spec §4.2). Transition-regime interpolation is a non-goal.
type Coagulation struct {
	Eps float64
	// MaxSamplePairs bounds the O(N) rate-estimation sampler (spec §4.3);
	// spec's baseline samples up to 100 pairs regardless of |E|.
	MaxSamplePairs int
}

const boltzmann = 1.380649e-23 // J/K

func DefaultCoagulation() Coagulation {
	return Coagulation{Eps: 1, MaxSamplePairs: 100}
}

// Kernel returns beta(i,j) for a specific pair.
func (c Coagulation) Kernel(t float64, a, b *particle.Particle) float64 {
	di, dj := a.Diameter(), b.Diameter()
	mi, mj := a.Mass(), b.Mass()
	if mi <= 0 || mj <= 0 {
		return 0
	}
	sum := di + dj
	return c.Eps * math.Sqrt(6*boltzmann*t) * sum * sum * math.Sqrt(1/mi+1/mj) / 4
}

// EstimateRate estimates Sum_{i<j} beta(i,j), scaled by w^2/Vs, by sampling
// up to MaxSamplePairs random pairs and averaging (spec §4.3). Returns 0
// when |E| < 2 (spec §8: coagulation rate is exactly 0 with fewer than two
// particles, and never fires).
func (c Coagulation) EstimateRate(rng *rand.Rand, t float64, ps []*particle.Particle, weight, sampleVol float64) float64 {
	n := len(ps)
	if n < 2 {
		return 0
	}
	samples := c.MaxSamplePairs
	if samples <= 0 {
		samples = 100
	}
	sum := 0.0
	for k := 0; k < samples; k++ {
		i := rng.Intn(n)
		j := rng.Intn(n - 1)
		if j >= i {
			j++
		}
		sum += c.Kernel(t, ps[i], ps[j])
	}
	mean := sum / float64(samples)
	pairs := float64(n) * float64(n-1) / 2
	return mean * pairs * weight * weight / sampleVol
}

// Apply coagulates the pair into a single new particle (acceptance is
// always 1 in the baseline majorant design; spec reserves an acceptance
// probability slot for a future exact kernel).
func (c Coagulation) Apply(a, b *particle.Particle) *particle.Particle {
	return particle.Coagulate(a, b)
}
