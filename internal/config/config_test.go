package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Splitting != "strang" {
		t.Errorf("expected splitting strang, got %s", cfg.Splitting)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Processes.GrowthKG = 1.5e8

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Seed != 7 {
		t.Errorf("expected seed 7, got %d", loaded.Seed)
	}
	if loaded.Processes.GrowthKG != 1.5e8 {
		t.Errorf("expected growth_k_g 1.5e8, got %g", loaded.Processes.GrowthKG)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error loading a missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("premixed-flame")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Splitting != "strang" {
		t.Errorf("expected splitting strang, got %s", cfg.Splitting)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopyNotAlias(t *testing.T) {
	cfg := GetPreset("premixed-flame")
	cfg.Seed = 12345

	again := GetPreset("premixed-flame")
	if again.Seed != 0 {
		t.Errorf("mutating a returned preset leaked into the registry, seed=%d", again.Seed)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected at least one preset")
	}
}

func TestToReactorConfig(t *testing.T) {
	cfg := DefaultConfig()
	rc, err := cfg.ToReactorConfig()
	if err != nil {
		t.Fatalf("ToReactorConfig: %v", err)
	}
	if rc.Ensemble.MinSize != cfg.Ensemble.MinParticles {
		t.Errorf("expected min particles %d, got %d", cfg.Ensemble.MinParticles, rc.Ensemble.MinSize)
	}
	if rc.Processes.Growth.KG != cfg.Processes.GrowthKG {
		t.Errorf("expected growth_k_g %g, got %g", cfg.Processes.GrowthKG, rc.Processes.Growth.KG)
	}
}

func TestToReactorConfig_RejectsUnknownSplitting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Splitting = "nonexistent"
	if _, err := cfg.ToReactorConfig(); err == nil {
		t.Error("expected an error for an unknown splitting scheme")
	}
}
