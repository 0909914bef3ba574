package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tokasim/internal/config"
	"github.com/san-kum/tokasim/internal/materials"
	"github.com/san-kum/tokasim/internal/optim"
	"github.com/san-kum/tokasim/internal/reactor"
	"github.com/san-kum/tokasim/internal/solutions"
	"github.com/san-kum/tokasim/internal/storage"
	"github.com/san-kum/tokasim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt           float64
	maxTime      float64
	saveInterval float64

	// Flag overrides for individual config fields
	majorRadius   float64
	toroidalField float64
	plasmaCurrent float64
	initialTemp   float64
	density       float64

	// Plot
	series string

	// Optimizer
	method     string
	samples    int
	iterations int
	seed       int64
	dbPath     string
	outFile    string
	topN       int

	// Live view
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tokasim",
		Short: "tokamak fusion reactor simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tokasim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a time-dependent simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep (s)")
	runCmd.Flags().Float64Var(&maxTime, "time", 3600.0, "max simulation time (s)")
	runCmd.Flags().Float64Var(&saveInterval, "save-interval", 10.0, "history sampling interval (s)")
	runCmd.Flags().Float64Var(&majorRadius, "major-radius", 0, "override major radius (m)")
	runCmd.Flags().Float64Var(&toroidalField, "field", 0, "override toroidal field (T)")
	runCmd.Flags().Float64Var(&plasmaCurrent, "current", 0, "override plasma current (A)")
	runCmd.Flags().Float64Var(&initialTemp, "temperature", 0, "override initial temperature (K)")
	runCmd.Flags().Float64Var(&density, "density", 0, "override initial density (m^-3)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "temperature,q_factor,fusion_power,material_damage", "comma-separated columns to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run history as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list the material property table",
		RunE:  listMaterials,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "search for long-running configurations",
		RunE:  optimize,
	}
	optimizeCmd.Flags().StringVar(&method, "method", "random", "search method: random or spsa")
	optimizeCmd.Flags().IntVar(&samples, "samples", 100, "random search sample budget")
	optimizeCmd.Flags().IntVar(&iterations, "iterations", 50, "spsa iteration budget")
	optimizeCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	optimizeCmd.Flags().Float64Var(&maxTime, "time", 1260.0, "max simulation time per candidate (s)")
	optimizeCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep (s)")
	optimizeCmd.Flags().StringVar(&configFile, "config", "", "initial config for spsa (yaml)")
	optimizeCmd.Flags().StringVar(&preset, "preset", "", "initial preset for spsa")
	optimizeCmd.Flags().StringVar(&dbPath, "db", "", "solutions database path (sqlite)")
	optimizeCmd.Flags().StringVar(&outFile, "out", "", "write best config to file (yaml)")

	solutionsCmd := &cobra.Command{
		Use:   "solutions",
		Short: "show the best archived candidates",
		RunE:  listSolutions,
	}
	solutionsCmd.Flags().StringVar(&dbPath, "db", "solutions.db", "solutions database path (sqlite)")
	solutionsCmd.Flags().IntVar(&topN, "top", 10, "number of candidates to show")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live dashboard",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep (s)")
	liveCmd.Flags().Float64Var(&maxTime, "time", 3600.0, "max simulation time (s)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		materialsCmd, presetsCmd, optimizeCmd, solutionsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves --preset and --config into a reactor config.
func loadConfig(cmd *cobra.Command) (reactor.Config, error) {
	cfg := reactor.DefaultConfig()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q (have: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("major-radius") {
		cfg.MajorRadius = majorRadius
	}
	if cmd.Flags().Changed("field") {
		cfg.ToroidalField = toroidalField
	}
	if cmd.Flags().Changed("current") {
		cfg.PlasmaCurrent = plasmaCurrent
	}
	if cmd.Flags().Changed("temperature") {
		cfg.InitialTemperature = initialTemp
	}
	if cmd.Flags().Changed("density") {
		cfg.InitialDensity = density
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := reactor.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := sim.Run(ctx, reactor.RunOptions{
		MaxTime:      maxTime,
		Dt:           dt,
		SaveInterval: saveInterval,
	})
	if err != nil {
		return err
	}

	printStatus(cfg, result)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, reactor.RunOptions{MaxTime: maxTime, Dt: dt, SaveInterval: saveInterval}, result)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s (%d samples)\n", runID, len(result.History))
	return nil
}

// printStatus writes the sectioned status report for a finished run.
func printStatus(cfg reactor.Config, result *reactor.Result) {
	snap := result.Final
	stats := result.Stats

	rule := strings.Repeat("=", 72)
	fmt.Println(rule)
	fmt.Println("TOKAMAK REACTOR SIMULATOR - STATUS REPORT")
	fmt.Println(rule)

	fmt.Println("\n[PLASMA]")
	fmt.Printf("  Temperature:        %.2f MK\n", snap.Plasma.Temperature/1e6)
	fmt.Printf("  Density:            %.2f x 10^20 m^-3\n", snap.Plasma.Density/1e20)
	fmt.Printf("  Confinement time:   %.3f s\n", snap.Plasma.ConfinementTime)
	fmt.Printf("  Triple product:     %.2e m^-3 s K\n", snap.Plasma.TripleProduct)
	fmt.Printf("  Lawson criterion:   %s\n", metOrNot(snap.Plasma.MeetsLawson))

	fmt.Println("\n[MAGNETIC CONFINEMENT]")
	fmt.Printf("  Toroidal field:     %.2f T\n", snap.Magnetic.ToroidalField)
	fmt.Printf("  Plasma current:     %.1f MA\n", cfg.PlasmaCurrent/1e6)
	fmt.Printf("  Safety factor (q):  %.2f\n", snap.Magnetic.SafetyFactor)
	fmt.Printf("  Beta:               %.4f\n", snap.Magnetic.Beta)
	fmt.Printf("  Aspect ratio:       %.2f\n", snap.Geometry.AspectRatio)

	fmt.Println("\n[POWER BALANCE]")
	fmt.Printf("  Fusion power:       %s\n", humanize.SIWithDigits(snap.Power.FusionPower, 1, "W"))
	fmt.Printf("  Input power:        %s\n", humanize.SIWithDigits(snap.Power.InputPower, 1, "W"))
	fmt.Printf("  Thermal power:      %s\n", humanize.SIWithDigits(snap.Power.ThermalPower, 1, "W"))
	fmt.Printf("  Electrical output:  %s\n", humanize.SIWithDigits(snap.Power.ElectricalPower, 1, "W"))
	fmt.Printf("  Net power:          %s\n", humanize.SIWithDigits(snap.Power.NetPower, 1, "W"))
	fmt.Printf("  Q factor:           %s\n", formatQ(snap.Power.QFactor))
	fmt.Printf("  Breakeven:          %s\n", yesOrNo(snap.Power.Breakeven))
	fmt.Printf("  Ignition:           %s\n", yesOrNo(snap.Power.Ignition))

	fmt.Println("\n[NEUTRONICS]")
	fmt.Printf("  Neutron flux:       %.2e n/(m^2 s)\n", snap.Neutronics.NeutronFlux)
	fmt.Printf("  Wall loading:       %.2f MW/m^2\n", snap.Neutronics.WallLoading)
	fmt.Printf("  Tritium production: %.2e atoms/s\n", snap.Neutronics.TritiumProductionRate)
	fmt.Printf("  Breeding ratio:     %.3f\n", snap.Neutronics.BreedingRatio)
	fmt.Printf("  Damage rate:        %.2f DPA/year\n", snap.Neutronics.DPARate)

	fmt.Println("\n[MATERIALS & FUEL]")
	fmt.Printf("  First wall temp:    %.0f K\n", snap.FirstWallTemp)
	fmt.Printf("  Material damage:    %.3f DPA\n", snap.MaterialDamage)
	fmt.Printf("  Tritium inventory:  %.2e atoms\n", snap.TritiumInventory)
	fmt.Printf("  Deuterium inventory: %.2e atoms\n", snap.DeuteriumInventory)

	fmt.Println("\n[STATUS]")
	if snap.Failed {
		fmt.Printf("  FAILED at t = %.1f s (%.2f min)\n", snap.Time, snap.Time/60)
		fmt.Printf("  Failure cause: %s\n", snap.FailureCause)
	} else if snap.Operational {
		fmt.Println("  OPERATIONAL")
	} else {
		fmt.Println("  NOT OPERATIONAL")
	}
	for _, d := range snap.Errors() {
		fmt.Printf("  ✗ %s\n", d.Message)
	}
	for _, d := range snap.Warnings() {
		fmt.Printf("  ⚠ %s\n", d.Message)
	}

	fmt.Println("\n[OPERATION STATISTICS]")
	fmt.Printf("  Simulation time:    %.1f s (%.2f min)\n", stats.MaxOperationTime, stats.MaxOperationTime/60)
	fmt.Printf("  Average Q factor:   %.2f\n", stats.AverageQ)
	fmt.Printf("  Max Q factor:       %.2f\n", stats.MaxQ)
	fmt.Printf("  Total energy:       %s (%.2f MWh)\n",
		humanize.SIWithDigits(stats.TotalEnergy, 2, "J"), stats.TotalEnergy/3.6e9)
	if stats.CanRunIndefinitely {
		fmt.Println("  Max runtime:        INDEFINITE")
	} else {
		fmt.Printf("  Max runtime:        %.2f min\n", stats.RuntimeProjection/60)
	}
	fmt.Printf("  Limiting factor:    %s\n", stats.LimitingFactor)
	fmt.Println("\n" + rule)
}

func metOrNot(ok bool) string {
	if ok {
		return "MET"
	}
	return "NOT MET"
}

func yesOrNo(ok bool) string {
	if ok {
		return "YES"
	}
	return "NO"
}

func formatQ(q float64) string {
	if math.IsInf(q, 1) {
		return "infinite"
	}
	return fmt.Sprintf("%.2f", q)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIM TIME\tDT\tAVG Q\tENERGY\tSTATUS")
	for _, run := range runs {
		status := "ok"
		if run.Stats.Failed {
			status = "failed: " + run.Stats.FailureCause
		}
		fmt.Fprintf(w, "%s\t%s\t%.0fs\t%.1fs\t%.2f\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stats.MaxOperationTime,
			run.Dt,
			run.Stats.AverageQ,
			humanize.SIWithDigits(run.Stats.TotalEnergy, 1, "J"),
			status,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	header, rows, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(rows))

	for _, name := range strings.Split(series, ",") {
		name = strings.TrimSpace(name)
		data, ok := storage.Column(header, rows, name)
		if !ok {
			return fmt.Errorf("unknown series %q (have: %s)", name, strings.Join(header, ", "))
		}
		for i, v := range data {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				data[i] = 0
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportCSV(os.Stdout, args[0])
}

func listMaterials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tDENSITY\tK (W/mK)\tMAX TEMP\tTBR\tMAX DPA")
	for _, key := range materials.Names() {
		m, _ := materials.Lookup(key)
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.4g\t%.0f K\t%.1f\t%.0f\n",
			key, m.Name, m.Density, m.ThermalConductivity, m.MaxOperatingTemp, m.BreedingRatio, m.MaxDPA)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tR (m)\ta (m)\tB (T)\tI (MA)\tBLANKET")
	for _, name := range config.ListPresets() {
		cfg, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.1f\t%.1f\t%s\n",
			name, cfg.MajorRadius, cfg.MinorRadius, cfg.ToroidalField,
			cfg.PlasmaCurrent/1e6, cfg.BlanketMaterial)
	}
	return w.Flush()
}

func optimize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bounds := optim.DefaultBounds()
	objective := optim.DefaultObjective(reactor.RunOptions{
		MaxTime:      maxTime,
		Dt:           dt,
		SaveInterval: 10.0,
	})

	var (
		result *optim.SearchResult
		err    error
	)
	switch method {
	case "random":
		result, err = optim.NewRandomSearch(bounds, samples, seed).Search(ctx, objective)
	case "spsa":
		initial, cfgErr := loadConfig(cmd)
		if cfgErr != nil {
			return cfgErr
		}
		result, err = optim.NewSPSA(bounds, iterations, seed).Search(ctx, initial, objective)
	default:
		return fmt.Errorf("unknown method %q (want random or spsa)", method)
	}
	if err != nil && result == nil {
		return err
	}

	best := result.Best
	fmt.Printf("evaluated %d candidates (method=%s, seed=%d)\n", result.Iterations, method, seed)
	fmt.Printf("best score: %.2f\n", best.Score)
	fmt.Printf("operation time: %.1f s (%.2f min)\n", best.Stats.MaxOperationTime, best.Stats.MaxOperationTime/60)
	if best.Stats.Failed {
		fmt.Printf("failure cause: %s\n", best.Stats.FailureCause)
	}
	fmt.Printf("max Q: %.2f\n", best.Stats.MaxQ)

	if dbPath != "" {
		store := solutions.NewStore(dbPath)
		if err := store.Init(ctx); err != nil {
			return err
		}
		defer store.Close()
		for _, ev := range result.History {
			candidate := solutions.Candidate{
				ID:            uuid.NewString(),
				Method:        method,
				Score:         ev.Score,
				OperationTime: ev.Stats.MaxOperationTime,
				Failed:        ev.Stats.Failed,
				FailureCause:  ev.Stats.FailureCause,
				Config:        ev.Config,
			}
			if err := store.Save(ctx, candidate); err != nil {
				return err
			}
		}
		fmt.Printf("archived %d candidates to %s\n", len(result.History), dbPath)
	}

	if outFile != "" {
		if err := config.Save(outFile, best.Config); err != nil {
			return err
		}
		fmt.Printf("wrote best config to %s\n", outFile)
	}
	return nil
}

func listSolutions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store := solutions.NewStore(dbPath)
	if err := store.Init(ctx); err != nil {
		return err
	}
	defer store.Close()

	best, err := store.Best(ctx, topN)
	if err != nil {
		return err
	}
	if len(best) == 0 {
		fmt.Println("no candidates archived")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tSCORE\tOP TIME\tR (m)\tB (T)\tSTATUS")
	for _, c := range best {
		status := "ok"
		if c.Failed {
			status = "failed: " + c.FailureCause
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.0fs\t%.2f\t%.1f\t%s\n",
			c.ID[:8], c.Method, c.Score, c.OperationTime,
			c.Config.MajorRadius, c.Config.ToroidalField, status)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sim, err := reactor.New(cfg)
	if err != nil {
		return err
	}

	model := viz.NewModel(sim, dt, maxTime, frameRate)
	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}
