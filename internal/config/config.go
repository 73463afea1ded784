// Package config is the on-disk YAML configuration layer, adapted from the
// teacher repo's internal/config package: a flat, yaml-tagged Config
// struct with Load/Save and a named-preset registry, generalized from the
// teacher's model/integrator/controller keys to this solver's
// splitting/ensemble/process/ode keys (spec §6).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMinParticles   = 512
	DefaultMaxParticles   = 4096
	DefaultSampleVolume   = 1e-9
	DefaultDt             = 1e-6
	DefaultDuration       = 1e-2
	DefaultOutputInterval = 1e-4
	DefaultRTol           = 1e-6
	DefaultATol           = 1e-12
)

// Config is the full on-disk description of a run (spec §6's configuration
// surface), serialized with gopkg.in/yaml.v3 the way the teacher's config
// package does.
type Config struct {
	Splitting string `yaml:"splitting"`
	Seed      int64  `yaml:"seed"`

	Dt             float64 `yaml:"dt"`
	Duration       float64 `yaml:"duration"`
	OutputInterval float64 `yaml:"output_interval"`

	Ensemble  EnsembleConfig  `yaml:"ensemble"`
	ODE       ODEConfig       `yaml:"ode"`
	Corrector CorrectorConfig `yaml:"corrector"`
	Processes ProcessesConfig `yaml:"processes"`
}

type EnsembleConfig struct {
	MinParticles int     `yaml:"min_particles"`
	MaxParticles int     `yaml:"max_particles"`
	SampleVolume float64 `yaml:"sample_volume"`
}

type ODEConfig struct {
	Integrator       string  `yaml:"integrator"`
	RTol             float64 `yaml:"rtol"`
	ATol             float64 `yaml:"atol"`
	MaxSteps         int     `yaml:"max_steps"`
	EnergyEnabled    bool    `yaml:"energy_enabled"`
	ConstantPressure bool    `yaml:"constant_pressure"`
}

type CorrectorConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	MaxIters  int     `yaml:"max_iters"`
}

// ProcessesConfig carries the per-process rate constants and deferment
// flags (spec §4.2/§6).
type ProcessesConfig struct {
	DeferGrowth    bool `yaml:"defer_growth"`
	DeferOxidation bool `yaml:"defer_oxidation"`

	NucleationKNuc        float64 `yaml:"nucleation_k_nuc"`
	GrowthKG              float64 `yaml:"growth_k_g"`
	GrowthChi             float64 `yaml:"growth_chi"`
	CoagulationEps        float64 `yaml:"coagulation_eps"`
	CoagulationMaxSamples int     `yaml:"coagulation_max_samples"`
	OxidationKO2          float64 `yaml:"oxidation_k_o2"`
	OxidationKOH          float64 `yaml:"oxidation_k_oh"`
}

func DefaultConfig() *Config {
	return &Config{
		Splitting:      "strang",
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		OutputInterval: DefaultOutputInterval,
		Ensemble: EnsembleConfig{
			MinParticles: DefaultMinParticles,
			MaxParticles: DefaultMaxParticles,
			SampleVolume: DefaultSampleVolume,
		},
		ODE: ODEConfig{
			Integrator:       "bdf",
			RTol:             DefaultRTol,
			ATol:             DefaultATol,
			MaxSteps:         10000,
			EnergyEnabled:    true,
			ConstantPressure: true,
		},
		Corrector: CorrectorConfig{Tolerance: 1e-3, MaxIters: 3},
		Processes: ProcessesConfig{
			DeferGrowth:           true,
			DeferOxidation:        true,
			NucleationKNuc:        2e9,
			GrowthKG:              8e7,
			GrowthChi:             1,
			CoagulationEps:        1,
			CoagulationMaxSamples: 100,
			OxidationKO2:          1e4,
			OxidationKOH:          1e8,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
