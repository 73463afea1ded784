// Package store is the run-output writer, adapted from the teacher repo's
// internal/storage (CSV states + JSON run metadata) and internal/store
// (JSON export), merged into a single package that persists a reactor
// run's snapshot series alongside a reproducibility manifest (spec §12
// supplemental feature: run metadata/reproducibility manifest).
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/sootsim/internal/config"
	"github.com/san-kum/sootsim/internal/reactor"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Manifest is the reproducibility record spec §12 calls for: the seed,
// splitting scheme, and full configuration needed to reproduce a run
// bit-for-bit given the same gas mechanism.
type Manifest struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Seed      int64          `json:"seed"`
	Splitting string         `json:"splitting"`
	Config    *config.Config `json:"config"`
	NumEvents int            `json:"num_snapshots"`
}

// Save writes a run's manifest.json and snapshots.csv under a fresh
// <baseDir>/<runID> directory, following the teacher's Store.Save shape
// (metadata.json + states.csv) generalized to this solver's Snapshot
// record.
func (s *Store) Save(cfg *config.Config, snaps []reactor.Snapshot) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	manifest := Manifest{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Splitting: cfg.Splitting,
		Config:    cfg,
		NumEvents: len(snaps),
	}

	metaPath := filepath.Join(runDir, "manifest.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return "", err
	}

	if err := writeSnapshotsCSV(filepath.Join(runDir, "snapshots.csv"), snaps); err != nil {
		return "", err
	}

	return runID, nil
}

func writeSnapshotsCSV(path string, snaps []reactor.Snapshot) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(snaps) == 0 {
		return nil
	}

	header := []string{"time", "T", "P", "n_particles", "mean_diameter", "number_density", "mass_concentration"}
	for i := range snaps[0].Y {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, snap := range snaps {
		row := []string{
			strconv.FormatFloat(snap.Time, 'g', -1, 64),
			strconv.FormatFloat(snap.T, 'g', -1, 64),
			strconv.FormatFloat(snap.P, 'g', -1, 64),
			strconv.Itoa(snap.NParticles),
			strconv.FormatFloat(snap.MeanDiameter, 'g', -1, 64),
			strconv.FormatFloat(snap.NumberDensity, 'g', -1, 64),
			strconv.FormatFloat(snap.MassConcentration, 'g', -1, 64),
		}
		for _, y := range snap.Y {
			row = append(row, strconv.FormatFloat(y, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]Manifest, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Manifest{}, nil
		}
		return nil, err
	}

	runs := make([]Manifest, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "manifest.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		runs = append(runs, m)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*Manifest, error) {
	metaPath := filepath.Join(s.baseDir, runID, "manifest.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
