package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sootsim/internal/config"
	"github.com/san-kum/sootsim/internal/reactor"
)

func sampleSnapshots() []reactor.Snapshot {
	return []reactor.Snapshot{
		{Time: 0.0, T: 1500, P: 101325, Y: []float64{0.1, 0.9}, NParticles: 0, MeanDiameter: 0, NumberDensity: 0, MassConcentration: 0},
		{Time: 1e-6, T: 1501, P: 101325, Y: []float64{0.09, 0.91}, NParticles: 3, MeanDiameter: 1.2e-9, NumberDensity: 1e16, MassConcentration: 1e-6},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = 42

	runID, err := st.Save(cfg, sampleSnapshots())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.NumEvents != 2 {
		t.Errorf("expected 2 snapshots, got %d", meta.NumEvents)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(config.DefaultConfig(), sampleSnapshots()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.DefaultConfig(), sampleSnapshots())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "manifest.json")); os.IsNotExist(err) {
		t.Error("manifest.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "snapshots.csv")); os.IsNotExist(err) {
		t.Error("snapshots.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ExportJSON(path, "strang", 42, sampleSnapshots()); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected export file to exist: %v", err)
	}
}
