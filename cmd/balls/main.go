package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/balls/internal/analysis"
	"github.com/san-kum/balls/internal/automation"
	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/export"
	"github.com/san-kum/balls/internal/gui"
	"github.com/san-kum/balls/internal/optim"
	"github.com/san-kum/balls/internal/physics"
	"github.com/san-kum/balls/internal/sim"
	"github.com/san-kum/balls/internal/storage"
	"github.com/san-kum/balls/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	seed       int64
	entities   int
	gravityX   float64
	gravityY   float64
	tolerance  float64
	// run
	recordEvery int
	progress    float64
	// gui
	windowed bool
	// plot / analyze / export-svg
	entityIdx int
	frameIdx  int
	output    string
	braille   bool
	// bench / montecarlo
	benchRuns    int
	perturbation float64
	// sweep / search
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	gridParams []string
	metricName string
	save       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "balls",
		Short: "constraint-based particle simulator",
		RunE:  runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".balls", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep for headless and terminal runs")
	pf.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	pf.Int64Var(&seed, "seed", 0, "spawn seed")
	pf.IntVar(&entities, "entities", config.DefaultEntityCount, "number of entities")
	pf.Float64Var(&gravityX, "gx", 0, "gravity x")
	pf.Float64Var(&gravityY, "gy", config.DefaultGravityY, "gravity y")
	pf.Float64Var(&tolerance, "tolerance", -1, "containment tolerance past the boundary limit (default |g| + radius)")
	rootCmd.Flags().BoolVar(&windowed, "windowed", false, "open a window instead of fullscreen")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&windowed, "windowed", false, "open a window instead of fullscreen")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "store one frame out of every n ticks")
	runCmd.Flags().Float64Var(&progress, "progress", 0, "print a status line every n seconds of simulated time (0 disables)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&entityIdx, "entity", -1, "also draw the path of one entity")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the center of mass",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&entityIdx, "entity", -1, "analyze one entity instead of the center of mass")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored frame or an entity path to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (default last)")
	exportSVGCmd.Flags().IntVar(&entityIdx, "entity", -1, "draw the path of this entity instead of a frame")
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render the frame as the terminal view's braille dots")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the solver across population sizes",
		Args:  cobra.NoArgs,
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "concurrent runs per population size")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tENTITIES\tRADIUS\tGRAVITY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.1f\t(%.1f, %.1f)\n", name, p.Entity.Count, p.Entity.Radius, p.Gravity.X, p.Gravity.Y)
			}
			w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", true, "store each step as a run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run across evenly spaced values of one parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gravity_y", fmt.Sprintf("parameter to sweep %v", config.ParamNames))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 40, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run many seeds with jittered gravity and count escapes",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&benchRuns, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 2, "maximum gravity jitter per axis")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search for the parameters minimizing a metric",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	searchCmd.Flags().StringArrayVar(&gridParams, "grid", []string{"entities=25,50,100"}, "name=v1,v2,... (repeatable)")
	searchCmd.Flags().StringVar(&metricName, "metric", "max_overlap", "metric to minimize")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportSVGCmd, benchCmd, presetsCmd, scenarioCmd, sweepCmd, monteCarloCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("entities") {
		cfg.Entity.Count = entities
	}
	if flags.Changed("gx") {
		cfg.Gravity.X = gravityX
	}
	if flags.Changed("gy") {
		cfg.Gravity.Y = gravityY
	}
	if flags.Changed("windowed") {
		cfg.Window.Fullscreen = !windowed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	pop, boundary, resolver, err := cfg.World()
	if err != nil {
		return nil, err
	}
	return sim.New(pop, boundary, resolver), nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	app, err := gui.NewApp(cfg)
	if err != nil {
		return err
	}
	app.Run()
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	return viz.Run(s, cfg.Name, cfg.Dt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := &automation.Runner{Tolerance: tolerance}
	s, err := runner.Simulator(cfg)
	if err != nil {
		return err
	}
	if progress > 0 {
		s.AddObserver(sim.NewProgress(os.Stderr, progress, cfg.Duration))
	}

	simCfg := sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
		RecordEvery:   recordEvery,
	}

	fmt.Printf("running %s with %d entities...\n", cfg.Name, cfg.Entity.Count)
	start := time.Now()

	result, err := s.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := saveRun(st, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, frames: %d\n", result.StepsTaken, len(result.Frames))
	fmt.Println("\nmetrics:")
	for _, name := range []string{"kinetic_energy", "containment", "max_overlap"} {
		if val, ok := result.Metrics[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	return nil
}

func saveRun(st *storage.Store, cfg *config.Config, result *sim.Result) (string, error) {
	return st.Save(storage.RunMetadata{
		Preset:   cfg.Name,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Gravity:  [2]float64{cfg.Gravity.X, cfg.Gravity.Y},
		Boundary: storage.BoundaryMetadata{
			Center: [2]float64{cfg.Boundary.Center.X, cfg.Boundary.Center.Y},
			Radius: cfg.Boundary.Radius,
			Offset: cfg.Boundary.Offset,
		},
		Colors: storage.ColorMetadata{
			Background: cfg.Background,
			Entity:     cfg.Entity.Color,
			Boundary:   cfg.Boundary.Color,
		},
	}, result)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tENTITIES\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Entities,
			run.Frames,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, [][]float64, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	frames, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(frames) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, times, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(frames))

	xs, ys := analysis.CenterOfMass(frames)
	series := []struct {
		caption string
		data    []float64
	}{
		{"center of mass x", xs},
		{"center of mass y", ys},
		{"kinetic energy", analysis.Kinetic(frames)},
		{"mean distance from boundary center", analysis.Spread(frames, meta.Boundary.Center[0], meta.Boundary.Center[1])},
	}

	for _, s := range series {
		if len(s.data) < 2 {
			continue
		}
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if entityIdx >= 0 {
		if entityIdx >= meta.Entities {
			return fmt.Errorf("entity %d out of range (run has %d)", entityIdx, meta.Entities)
		}
		fmt.Printf("path of entity %d:\n", entityIdx)
		fmt.Println(analysis.TrajectoryToASCII(analysis.EntityTrajectory(frames, entityIdx), 60, 20))
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 4 {
		return fmt.Errorf("need at least 4 frames, have %d", len(frames))
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	var data []float64
	caption := "power spectrum (center of mass y)"
	if entityIdx >= 0 {
		if entityIdx >= meta.Entities {
			return fmt.Errorf("entity %d out of range (run has %d)", entityIdx, meta.Entities)
		}
		for _, p := range analysis.EntityTrajectory(frames, entityIdx) {
			data = append(data, p.Y)
		}
		caption = fmt.Sprintf("power spectrum (y%d)", entityIdx)
	} else {
		_, data = analysis.CenterOfMass(frames)
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(ps) >= 8 {
		plotData = ps[:len(ps)/2]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()

	sample := times[1] - times[0]
	freq := analysis.DominantFrequency(data, sample)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, times, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < len(frames[0])/2; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range frames {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range frames[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	if entityIdx >= 0 {
		if entityIdx >= meta.Entities {
			return fmt.Errorf("entity %d out of range (run has %d)", entityIdx, meta.Entities)
		}
		svg = export.TrajectoryToSVG(analysis.EntityTrajectory(frames, entityIdx), 800, 800, "#00ff88")
		if svg == "" {
			return fmt.Errorf("entity %d has fewer than 2 recorded positions", entityIdx)
		}
	} else {
		idx := frameIdx
		if idx < 0 {
			idx = len(frames) - 1
		}
		if idx >= len(frames) {
			return fmt.Errorf("frame %d out of range (run has %d)", idx, len(frames))
		}

		scene := export.SceneFromRun(meta, frames[idx])
		if braille {
			svg = export.SceneToBrailleSVG(scene, 80, 40, 4)
		} else {
			svg = export.SceneToSVG(scene)
		}
	}

	if output == "" {
		_, err = io.WriteString(os.Stdout, svg)
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, svg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func benchSolver(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if benchRuns < 1 {
		return fmt.Errorf("runs must be at least 1, got %d: %w", benchRuns, dynamo.ErrParameterBounds)
	}

	counts := []int{10, 50, 100, 200}

	fmt.Printf("benchmarking %s, %d concurrent runs per size\n\n", base.Name, benchRuns)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITIES\tSTEPS\tTIME\tSTEPS/SEC\tOVERLAPS")

	for _, n := range counts {
		cfg := *base
		cfg.Entity.Count = n

		var overlapping int
		build := func(s int64) (*sim.Simulator, error) {
			c := cfg
			c.Seed = s
			return newSimulator(&c)
		}

		start := time.Now()
		results, err := sim.NewEnsemble(build, benchRuns, cfg.Seed).Run(context.Background(), sim.Config{
			Dt:          cfg.Dt,
			Duration:    cfg.Duration,
			RecordEvery: int(cfg.Duration / cfg.Dt),
		})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		steps := 0
		for _, r := range results {
			steps += r.StepsTaken
			last := r.Frames[len(r.Frames)-1]
			pairs, _ := physics.Overlaps(physics.FromFrame(last, r.Radii))
			overlapping += pairs
		}

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.1f\n",
			n, steps, elapsed.Round(time.Millisecond), float64(steps)/elapsed.Seconds(), float64(overlapping)/float64(len(results)))
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	runner := &automation.Runner{Out: os.Stdout, Tolerance: tolerance}
	results, err := runner.RunScenario(context.Background(), scenario)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if save {
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tNAME\tSTEPS\tCONTAINMENT\tMAX OVERLAP\tRUN ID")
	for i, r := range results {
		runID := "-"
		if save {
			if runID, err = saveRun(st, r.Config, r.Result); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%.4f\t%s\n",
			i+1, r.Config.Name, r.Result.StepsTaken, r.Result.Metrics["containment"], r.Result.Metrics["max_overlap"], runID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runner := &automation.Runner{Out: os.Stderr, Tolerance: tolerance}
	results, err := runner.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:      base,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tKINETIC\tCONTAINMENT\tMAX OVERLAP\n", strings.ToUpper(sweepParam))
	energies := make([]float64, len(results))
	for i, r := range results {
		energies[i] = r.Metrics["kinetic_energy"]
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\n",
			r.ParamValue, r.Metrics["kinetic_energy"], r.Metrics["containment"], r.Metrics["max_overlap"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(energies) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(energies,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("mean kinetic energy vs "+sweepParam),
		))
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runner := &automation.Runner{Out: os.Stderr, Tolerance: tolerance}
	results, err := runner.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Base:         base,
		Perturbation: perturbation,
		NumTrials:    benchRuns,
		Seed:         base.Seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tGRAVITY\tCONTAINMENT\tMAX OVERLAP\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%s\t%.4f\t%.4f\t%v\n",
			r.TrialID, r.Seed, r.Gravity, r.Containment, r.MaxOverlap, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d, escaped: %d\n", stable, unstable)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(gridParams))
	ranges := make([][]float64, 0, len(gridParams))
	for _, spec := range gridParams {
		name, values, err := parseGrid(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	runner := &automation.Runner{Tolerance: tolerance}
	build := func(params map[string]float64) (*sim.Simulator, sim.Config, error) {
		cfg := *base
		for k, v := range params {
			if err := cfg.SetParam(k, v); err != nil {
				return nil, sim.Config{}, err
			}
		}
		s, err := runner.Simulator(&cfg)
		if err != nil {
			return nil, sim.Config{}, err
		}
		return s, sim.Config{
			Dt:            cfg.Dt,
			Duration:      cfg.Duration,
			ValidateState: true,
			RecordEvery:   math.MaxInt,
		}, nil
	}

	g := optim.NewGridSearch(names, ranges)
	fmt.Printf("searching %d combinations for minimum %s...\n", g.Size(), metricName)

	best, val, err := g.Search(context.Background(), build, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", metricName, val)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

// parseGrid reads "name=v1,v2,...".
func parseGrid(spec string) (string, []float64, error) {
	name, list, ok := strings.Cut(spec, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("grid %q: want name=v1,v2,...", spec)
	}
	var values []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("grid %q: %w", spec, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}
