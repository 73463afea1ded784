// main is the sootsim CLI entry point, adapted from the teacher repo's
// cmd/dynsim cobra-based subcommand structure: a root command with run,
// list, export and presets subcommands, generalized from dynsim's
// model/integrator/controller selection to this solver's
// splitting/ensemble/process configuration (spec §6, §12 CLI batch
// runner).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sootsim/internal/config"
	"github.com/san-kum/sootsim/internal/gas"
	"github.com/san-kum/sootsim/internal/particle"
	"github.com/san-kum/sootsim/internal/reactor"
	"github.com/san-kum/sootsim/internal/store"
)

var (
	dataDir    string
	configFile string
	preset     string
	repeats    int
	live       bool

	yA4, yC2H2, yO2, yOH float64
	t0, p0               float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sootsim",
		Short: "coupled stochastic soot nanoparticle population-balance solver",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sootsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a coupled gas/particle simulation",
		RunE:  runReactor,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a named preset configuration")
	runCmd.Flags().IntVar(&repeats, "repeats", 1, "number of independent seeded replicates to run")
	runCmd.Flags().BoolVar(&live, "live", false, "print an ascii sparkline of temperature and particle count once the run completes")
	runCmd.Flags().Float64Var(&yA4, "y-a4", 0.05, "initial A4 (precursor) mass fraction")
	runCmd.Flags().Float64Var(&yC2H2, "y-c2h2", 0.05, "initial C2H2 (growth species) mass fraction")
	runCmd.Flags().Float64Var(&yO2, "y-o2", 0.15, "initial O2 mass fraction")
	runCmd.Flags().Float64Var(&yOH, "y-oh", 0.01, "initial OH mass fraction")
	runCmd.Flags().Float64Var(&t0, "t0", 1500, "initial temperature (K)")
	runCmd.Flags().Float64Var(&p0, "p0", 101325, "initial pressure (Pa)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run's manifest to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			if len(names) == 0 {
				fmt.Println("no presets available")
				return nil
			}
			fmt.Println("available presets:")
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func runReactor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("config") && !cmd.Flags().Changed("preset") && cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rcfg, err := cfg.ToReactorConfig()
	if err != nil {
		return err
	}

	seeds := make([]int64, repeats)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}

	if repeats > 1 {
		return runBatch(cfg, rcfg, seeds, st)
	}
	return runSingle(cfg, rcfg, st)
}

func runSingle(cfg *config.Config, rcfg reactor.Config, st *store.Store) error {
	g, err := newFlameGas(t0, p0, yA4, yC2H2, yO2, yOH)
	if err != nil {
		return err
	}

	r, err := reactor.Initialize(rcfg, g, nil)
	if err != nil {
		return err
	}

	fmt.Printf("running sootsim (splitting=%s, seed=%d)...\n", cfg.Splitting, cfg.Seed)
	start := time.Now()

	snaps, err := r.Run(cfg.Duration, cfg.Dt, cfg.OutputInterval)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if live {
		printSparkline(snaps)
	}

	runID, err := st.Save(cfg, snaps)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("snapshots: %d\n", len(snaps))
	if len(snaps) > 0 {
		last := snaps[len(snaps)-1]
		fmt.Printf("final: t=%.6g T=%.1f particles=%d number_density=%.4g mass_conc=%.4g\n",
			last.Time, last.T, last.NParticles, last.NumberDensity, last.MassConcentration)
	}
	for _, w := range r.Warnings() {
		fmt.Printf("warning: %s\n", w.String())
	}

	return nil
}

func runBatch(cfg *config.Config, rcfg reactor.Config, seeds []int64, st *store.Store) error {
	fmt.Printf("running %d replicates (splitting=%s)...\n", len(seeds), cfg.Splitting)

	if _, err := newFlameGas(t0, p0, yA4, yC2H2, yO2, yOH); err != nil {
		return err
	}
	newGas := func() gas.Capability {
		g, _ := newFlameGas(t0, p0, yA4, yC2H2, yO2, yOH)
		return g
	}

	start := time.Now()
	results := reactor.RunBatch(rcfg, seeds, newGas, func() []*particle.Particle { return nil },
		cfg.Duration, cfg.Dt, cfg.OutputInterval)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tRUN ID\tSNAPSHOTS\tERROR")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%d\t-\t-\t%v\n", res.Seed, res.Err)
			continue
		}
		runCfg := *cfg
		runCfg.Seed = res.Seed
		runID, err := st.Save(&runCfg, res.Snapshots)
		if err != nil {
			fmt.Fprintf(w, "%d\t-\t%d\t%v\n", res.Seed, len(res.Snapshots), err)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t-\n", res.Seed, runID, len(res.Snapshots))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("completed %d replicates in %v\n", len(seeds), elapsed)
	return nil
}

func printSparkline(snaps []reactor.Snapshot) {
	if len(snaps) == 0 {
		return
	}
	temps := make([]float64, len(snaps))
	particles := make([]float64, len(snaps))
	for i, s := range snaps {
		temps[i] = s.T
		particles[i] = float64(s.NParticles)
	}
	fmt.Println(asciigraph.Plot(temps, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("T (K)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(particles, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("particle count")))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tSPLITTING\tSNAPSHOTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n",
			run.ID, run.Timestamp.Format("2006-01-02 15:04:05"), run.Seed, run.Splitting, run.NumEvents)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
