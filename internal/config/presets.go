package config

// Presets holds named scenario configurations (spec §6 "presets"),
// following the teacher's registry-of-named-configs pattern but flattened
// to a single level since this solver has no per-model dimension to key
// on first.
var Presets = map[string]*Config{
	"premixed-flame": {
		Splitting: "strang", Dt: 1e-7, Duration: 1e-2, OutputInterval: 1e-4,
		Ensemble:  EnsembleConfig{MinParticles: 512, MaxParticles: 4096, SampleVolume: 1e-9},
		ODE:       ODEConfig{Integrator: "bdf", RTol: 1e-6, ATol: 1e-12, MaxSteps: 10000, EnergyEnabled: true, ConstantPressure: true},
		Corrector: CorrectorConfig{Tolerance: 1e-3, MaxIters: 3},
		Processes: ProcessesConfig{DeferGrowth: true, DeferOxidation: true, NucleationKNuc: 2e9, GrowthKG: 8e7, GrowthChi: 1, CoagulationEps: 1, CoagulationMaxSamples: 100, OxidationKO2: 1e4, OxidationKOH: 1e8},
	},
	"sooting-diffusion": {
		Splitting: "strang", Dt: 5e-8, Duration: 5e-3, OutputInterval: 5e-5,
		Ensemble:  EnsembleConfig{MinParticles: 1024, MaxParticles: 8192, SampleVolume: 5e-10},
		ODE:       ODEConfig{Integrator: "radau", RTol: 1e-7, ATol: 1e-13, MaxSteps: 20000, EnergyEnabled: true, ConstantPressure: true},
		Corrector: CorrectorConfig{Tolerance: 1e-3, MaxIters: 3},
		Processes: ProcessesConfig{DeferGrowth: true, DeferOxidation: true, NucleationKNuc: 5e9, GrowthKG: 1.2e8, GrowthChi: 1, CoagulationEps: 1, CoagulationMaxSamples: 100, OxidationKO2: 2e4, OxidationKOH: 1.5e8},
	},
	"fast-nucleation-screen": {
		Splitting: "lie", Dt: 1e-7, Duration: 1e-3, OutputInterval: 1e-5,
		Ensemble:  EnsembleConfig{MinParticles: 128, MaxParticles: 1024, SampleVolume: 1e-9},
		ODE:       ODEConfig{Integrator: "rk45", RTol: 1e-5, ATol: 1e-11, MaxSteps: 5000, EnergyEnabled: false, ConstantPressure: true},
		Corrector: CorrectorConfig{Tolerance: 1e-3, MaxIters: 1},
		Processes: ProcessesConfig{DeferGrowth: false, DeferOxidation: false, NucleationKNuc: 2e9, GrowthKG: 8e7, GrowthChi: 1, CoagulationEps: 1, CoagulationMaxSamples: 100, OxidationKO2: 1e4, OxidationKOH: 1e8},
	},
	"accuracy-reference": {
		Splitting: "predictor", Dt: 1e-8, Duration: 1e-3, OutputInterval: 1e-5,
		Ensemble:  EnsembleConfig{MinParticles: 2048, MaxParticles: 16384, SampleVolume: 1e-9},
		ODE:       ODEConfig{Integrator: "lsoda", RTol: 1e-8, ATol: 1e-14, MaxSteps: 50000, EnergyEnabled: true, ConstantPressure: true},
		Corrector: CorrectorConfig{Tolerance: 1e-4, MaxIters: 5},
		// sample more pairs per rate estimate than the baseline default for
		// a tighter coagulation-rate estimate at this preset's finer dt.
		Processes: ProcessesConfig{DeferGrowth: true, DeferOxidation: true, NucleationKNuc: 2e9, GrowthKG: 8e7, GrowthChi: 1, CoagulationEps: 1, CoagulationMaxSamples: 500, OxidationKO2: 1e4, OxidationKOH: 1e8},
	},
}

// GetPreset returns a copy of the named preset so callers can freely mutate
// fields (e.g. assigning a run seed) without aliasing the shared registry
// entry.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
