package store

import (
	"encoding/json"
	"os"

	"github.com/san-kum/sootsim/internal/reactor"
)

// ExportData is the flat JSON export shape, adapted from the teacher's
// store.ExportData (Times/States/Controls/Metrics) to this solver's
// snapshot fields.
type ExportData struct {
	Splitting         string      `json:"splitting"`
	Seed              int64       `json:"seed"`
	Steps             int         `json:"steps"`
	Times             []float64   `json:"times"`
	Temperatures      []float64   `json:"temperatures"`
	Pressures         []float64   `json:"pressures"`
	Y                 [][]float64 `json:"mass_fractions"`
	NParticles        []int       `json:"n_particles"`
	MeanDiameter      []float64   `json:"mean_diameter"`
	NumberDensity     []float64   `json:"number_density"`
	MassConcentration []float64   `json:"mass_concentration"`
}

func toExportData(splitting string, seed int64, snaps []reactor.Snapshot) ExportData {
	data := ExportData{
		Splitting:         splitting,
		Seed:              seed,
		Steps:             len(snaps),
		Times:             make([]float64, len(snaps)),
		Temperatures:      make([]float64, len(snaps)),
		Pressures:         make([]float64, len(snaps)),
		Y:                 make([][]float64, len(snaps)),
		NParticles:        make([]int, len(snaps)),
		MeanDiameter:      make([]float64, len(snaps)),
		NumberDensity:     make([]float64, len(snaps)),
		MassConcentration: make([]float64, len(snaps)),
	}
	for i, snap := range snaps {
		data.Times[i] = snap.Time
		data.Temperatures[i] = snap.T
		data.Pressures[i] = snap.P
		data.Y[i] = snap.Y
		data.NParticles[i] = snap.NParticles
		data.MeanDiameter[i] = snap.MeanDiameter
		data.NumberDensity[i] = snap.NumberDensity
		data.MassConcentration[i] = snap.MassConcentration
	}
	return data
}

func ExportJSON(path string, splitting string, seed int64, snaps []reactor.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(toExportData(splitting, seed, snaps))
}

func ExportJSONStdout(splitting string, seed int64, snaps []reactor.Snapshot) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(toExportData(splitting, seed, snaps))
}
