package config

import (
	"github.com/san-kum/sootsim/internal/dsa"
	"github.com/san-kum/sootsim/internal/ode"
	"github.com/san-kum/sootsim/internal/particle"
	"github.com/san-kum/sootsim/internal/process"
	"github.com/san-kum/sootsim/internal/reactor"
)

// ToReactorConfig translates the on-disk Config into the typed
// reactor.Config the solver's outward API consumes, the seam between the
// ambient YAML layer and the domain packages.
func (c *Config) ToReactorConfig() (reactor.Config, error) {
	splitting, err := reactor.ParseSplitting(c.Splitting)
	if err != nil {
		return reactor.Config{}, err
	}

	nuc := process.DefaultNucleation()
	nuc.KNuc = c.Processes.NucleationKNuc

	grow := process.DefaultGrowth()
	grow.KG = c.Processes.GrowthKG
	grow.Chi = c.Processes.GrowthChi

	coag := process.DefaultCoagulation()
	coag.Eps = c.Processes.CoagulationEps
	if c.Processes.CoagulationMaxSamples > 0 {
		coag.MaxSamplePairs = c.Processes.CoagulationMaxSamples
	}

	ox := process.DefaultOxidation()
	ox.KO2 = c.Processes.OxidationKO2
	ox.KOH = c.Processes.OxidationKOH

	return reactor.Config{
		Splitting: splitting,
		Seed:      c.Seed,
		ODE: ode.Config{
			Integrator:       c.ODE.Integrator,
			RTol:             c.ODE.RTol,
			ATol:             c.ODE.ATol,
			MaxSteps:         c.ODE.MaxSteps,
			EnergyEnabled:    c.ODE.EnergyEnabled,
			ConstantPressure: c.ODE.ConstantPressure,
		},
		Ensemble: particle.Config{
			MinSize:      c.Ensemble.MinParticles,
			MaxSize:      c.Ensemble.MaxParticles,
			SampleVolume: c.Ensemble.SampleVolume,
		},
		CorrectorTol:   c.Corrector.Tolerance,
		CorrectorIters: c.Corrector.MaxIters,
		Processes: reactor.ProcessSet{
			Nucleation:  nuc,
			Growth:      grow,
			Coagulation: coag,
			Oxidation:   ox,
		},
		DSA: dsa.Config{
			DeferGrowth:    c.Processes.DeferGrowth,
			DeferOxidation: c.Processes.DeferOxidation,
			MaxIterations:  10000,
		},
	}, nil
}
