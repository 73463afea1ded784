package reactor

import (
	"sync"

	"github.com/san-kum/sootsim/internal/gas"
	"github.com/san-kum/sootsim/internal/particle"
)

// BatchRun is one member of an ensemble-of-runs sweep: the seed it ran
// with, its snapshots, and any error it hit.
type BatchRun struct {
	Seed      int64
	Snapshots []Snapshot
	Err       error
}

// GasFactory builds a fresh, independent gas object for one batch member —
// batch runs must not share mutable gas state across goroutines.
type GasFactory func() gas.Capability

// RunBatch fans out n independent reactor runs across goroutines, one per
// seed (seeds[0]..seeds[n-1]), each with its own gas object from newGas and
// its own initial particle set from newInitial. Adapted from the teacher
// repo's internal/sim/parallel.go goroutine-per-seed Ensemble pattern,
// generalized from a single ODE system to the splitting-coordinated
// Reactor and re-seeded for reproducible-but-independent Monte Carlo
// replicates (spec §12 batch runner).
func RunBatch(cfg Config, seeds []int64, newGas GasFactory, newInitial func() []*particle.Particle, duration, dt, outputInterval float64) []BatchRun {
	results := make([]BatchRun, len(seeds))
	var wg sync.WaitGroup

	for i, seed := range seeds {
		wg.Add(1)
		go func(i int, seed int64) {
			defer wg.Done()

			runCfg := cfg
			runCfg.Seed = seed

			r, err := Initialize(runCfg, newGas(), newInitial())
			if err != nil {
				results[i] = BatchRun{Seed: seed, Err: err}
				return
			}

			snaps, err := r.Run(duration, dt, outputInterval)
			results[i] = BatchRun{Seed: seed, Snapshots: snaps, Err: err}
		}(i, seed)
	}

	wg.Wait()
	return results
}
