package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/export"
	"github.com/san-kum/swarm/internal/gui"
	"github.com/san-kum/swarm/internal/integrators"
	"github.com/san-kum/swarm/internal/optim"
	"github.com/san-kum/swarm/internal/sim"
	"github.com/san-kum/swarm/internal/storage"
	"github.com/san-kum/swarm/internal/swarm"
	"github.com/san-kum/swarm/internal/viz"
)

var (
	dataDir    string
	debug      bool
	configFile string
	preset     string
	// Swarm parameters
	particles  int
	friction   float64
	strength   float64
	seed       int64
	integrator string
	tickRate   float64
	color      string
	pointSize  int
	width      int
	height     int
	// Headless runs
	path        string
	ticks       int
	sampleEvery int
	radius      float64
	runs        int
	jsonOut     bool
	// Views
	backend string
	theme   string
	// Exports
	outFile      string
	series       string
	particlesCSV bool
	// Sweeps
	grid   []string
	metric string
)

// swarmFlags are the flags that shape the simulation itself.
var swarmFlags = []string{"particles", "friction", "strength", "seed", "integrator", "tick-rate", "color", "size", "width", "height"}

func changedAny(cmd *cobra.Command, names []string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// main is the entry point for the swarm CLI; with no subcommand it opens the
// window.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logFile *os.File

	rootCmd := &cobra.Command{
		Use:   "swarm",
		Short: "particle swarm chasing the pointer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".swarm", "data directory")
	pf.BoolVar(&debug, "debug", false, "write debug log to logs/swarm.log")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&particles, "particles", swarm.DefaultParticleCount, "number of particles")
	pf.Float64Var(&friction, "friction", swarm.DefaultFriction, "velocity damping per tick, in (0, 1)")
	pf.Float64Var(&strength, "strength", swarm.DefaultStrength, "attractor strength")
	pf.Int64Var(&seed, "seed", 0, "spawn seed (0 = time based)")
	pf.StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	pf.Float64Var(&tickRate, "tick-rate", swarm.DefaultTickRate, "ticks per second")
	pf.StringVar(&color, "color", config.DefaultColor, "point colour (name or #rrggbb)")
	pf.IntVar(&pointSize, "size", config.DefaultPointSize, "point size in pixels")
	pf.IntVar(&width, "width", config.DefaultWidth, "viewport width")
	pf.IntVar(&height, "height", config.DefaultHeight, "viewport height")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the swarm in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", gui.DefaultBackend, fmt.Sprintf("window backend %v", gui.Backends()))
	rootCmd.Flags().AddFlagSet(guiCmd.Flags())

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the swarm in the terminal (mouse drives the attractor)",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless with a scripted pointer path",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&path, "path", config.DefaultPath, fmt.Sprintf("pointer path %v", sim.PathNames()))
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "metric sampling interval in ticks")
	runCmd.Flags().Float64Var(&radius, "radius", 0, "path radius (0 = a third of the shorter side)")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of seeds to run concurrently")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the whole run as JSON instead of saving it")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run metrics (or final particles) to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().BoolVar(&particlesCSV, "particles", false, "export the final particle state")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final swarm (or one metric) as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&series, "series", "", "plot this metric series instead of the particles")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark ticks per second across swarm sizes",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search parameters against a metric",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	sweepCmd.Flags().AddFlagSet(runCmd.Flags())
	sweepCmd.Flags().StringArrayVar(&grid, "grid", []string{"friction=0.9,0.95,0.98", "strength=0.1,0.3,0.6"}, fmt.Sprintf("name=v1,v2,... for any of %v", optim.ParamNames()))
	sweepCmd.Flags().StringVar(&metric, "metric", "spread", "metric to minimise")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd, benchCmd, sweepCmd)
	return rootCmd
}

// loadConfig resolves the configuration: defaults, then the preset, then
// the config file, then any flag given explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.ParticleCount = particles
	}
	if flags.Changed("friction") {
		cfg.Friction = friction
	}
	if flags.Changed("strength") {
		cfg.Strength = strength
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("tick-rate") {
		cfg.TickRate = tickRate
	}
	if flags.Changed("color") {
		cfg.Color = color
	}
	if flags.Changed("size") {
		cfg.PointSize = pointSize
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Lookup("path") != nil {
		if flags.Changed("path") {
			cfg.Run.Path = path
		}
		if flags.Changed("ticks") {
			cfg.Run.Ticks = ticks
		}
		if flags.Changed("sample-every") {
			cfg.Run.SampleEvery = sampleEvery
		}
		if flags.Changed("radius") {
			cfg.Run.Radius = radius
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runName() string {
	if preset != "" {
		return preset
	}
	return "swarm"
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(backend, cfg)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if preset == "" && configFile == "" && !changedAny(cmd, swarmFlags) {
		return viz.RunInteractive(saveCanvas)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}
	return viz.Run(m.WithTheme(theme).WithSave(saveCanvas))
}

func saveCanvas(c *viz.Canvas) (string, error) {
	name := fmt.Sprintf("swarm_%d.svg", time.Now().Unix())
	if err := os.WriteFile(name, []byte(export.CanvasToSVG(c, 4, swarm.White)), 0644); err != nil {
		return "", err
	}
	return name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return executeRun(ctx, cmd, cfg)
}

// resolveSeed turns seed 0 into a concrete time-based seed so the stored
// run can be replayed.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// executeRun runs headless and stores or prints the results. An interrupted
// single run still keeps its partial result before the error is returned.
func executeRun(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	cfg = cfg.Clone()
	cfg.Seed = resolveSeed(cfg.Seed)

	simCfg := sim.ConfigFrom(cfg)
	var results []*sim.Result
	var seeds []int64
	var interrupted error

	start := time.Now()
	if runs > 1 {
		e := sim.NewEnsemble(sim.SeededFactory(cfg), runs, cfg.Seed)
		fmt.Fprintf(cmd.ErrOrStderr(), "running %d swarms of %d particles...\n", runs, cfg.ParticleCount)
		var err error
		results, err = e.Run(ctx, simCfg)
		if err != nil {
			return err
		}
		seeds = e.Seeds()
	} else {
		s, err := sim.Build(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "running %d particles for %d ticks...\n", cfg.ParticleCount, cfg.Run.Ticks)
		result, err := s.Run(ctx, simCfg)
		if err != nil {
			if result == nil || ctx.Err() == nil {
				return err
			}
			interrupted = err
		}
		results, seeds = []*sim.Result{result}, []int64{cfg.Seed}
	}
	elapsed := time.Since(start)

	if jsonOut {
		for i, result := range results {
			c := cfg.Clone()
			c.Seed = seeds[i]
			if err := storage.ExportJSON(cmd.OutOrStdout(), runName(), c, result); err != nil {
				return err
			}
		}
		return reportInterrupted(cmd, results, cfg, interrupted)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if interrupted == nil {
		fmt.Printf("completed in %v\n", elapsed)
	}
	for i, result := range results {
		c := cfg.Clone()
		c.Seed = seeds[i]
		runID, err := st.Save(runName(), c, result)
		if err != nil {
			return err
		}

		fmt.Printf("\nrun id: %s\n", runID)
		fmt.Printf("ticks: %d\n", result.StepsTaken)
		for _, e := range result.Errors {
			fmt.Printf("  warning: %v\n", e)
		}
		fmt.Println("metrics:")
		for _, name := range storage.SortedKeys(result.Metrics) {
			fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
		}
	}

	return reportInterrupted(cmd, results, cfg, interrupted)
}

func reportInterrupted(cmd *cobra.Command, results []*sim.Result, cfg *config.Config, err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "interrupted after %d of %d ticks\n", results[0].StepsTaken, cfg.Run.Ticks)
	return err
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
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tTICKS\tPATH\tINTEG\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ParticleCount,
			run.Ticks,
			run.Path,
			run.Integrator,
			run.Seed,
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

	ticks, data, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(ticks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d, path: %s\n", meta.ParticleCount, meta.Path)
	fmt.Printf("samples: %d\n\n", len(ticks))

	for _, name := range storage.SortedKeys(data) {
		graph := asciigraph.Plot(data[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs tick", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if particlesCSV {
		ps, err := st.LoadParticles(runID)
		if err != nil {
			return err
		}
		if err := w.Write([]string{"x", "y", "vx", "vy"}); err != nil {
			return err
		}
		for _, p := range ps {
			row := []string{
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
				strconv.FormatFloat(p.VX, 'f', 6, 64),
				strconv.FormatFloat(p.VY, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	ticks, data, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(ticks) == 0 {
		return fmt.Errorf("no data to export")
	}

	names := storage.SortedKeys(data)
	if err := w.Write(append([]string{"tick"}, names...)); err != nil {
		return err
	}
	for i, tick := range ticks {
		row := []string{strconv.Itoa(tick)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(data[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var svg string
	if series != "" {
		_, data, err := st.LoadSeries(runID)
		if err != nil {
			return err
		}
		values, ok := data[series]
		if !ok {
			return fmt.Errorf("unknown series: %s (available: %v)", series, storage.SortedKeys(data))
		}
		svg = export.SeriesToSVG(values, 800, 300, "#00ff88")
	} else {
		ps, err := st.LoadParticles(runID)
		if err != nil {
			return err
		}
		rgb, err := config.ParseColor(meta.Color)
		if err != nil {
			rgb = swarm.White
		}
		points := make([]swarm.Point, len(ps))
		for i, p := range ps {
			points[i] = swarm.Point{X: p.X, Y: p.Y}
		}
		target := meta.Target
		view := swarm.Viewport(float64(meta.Width), float64(meta.Height))
		svg = export.SnapshotToSVG(points, view, rgb, meta.PointSize, &target)
	}

	if outFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tFRICTION\tSTRENGTH\tINTEG\tCOLOR\tPATH")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.2f\t%s\t%s\t%s\n",
			name, p.ParticleCount, p.Friction, p.Strength, p.Integrator, p.Color, p.Run.Path)
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	counts := []int{1000, 2000, 10000, 50000}
	const benchTicks = 300

	fmt.Printf("benchmarking %s integrator, %d ticks\n\n", base.Integrator, benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tTIME\tTICKS/SEC\tPARTICLE-STEPS/SEC")

	for _, n := range counts {
		cfg := base.Clone()
		cfg.ParticleCount = n
		cfg.Seed = 42

		driver, err := cfg.NewDriver(nil)
		if err != nil {
			return err
		}

		dt := 1 / cfg.TickRate
		start := time.Now()
		for i := 0; i < benchTicks; i++ {
			driver.Tick(dt)
		}
		elapsed := time.Since(start)

		tps := float64(benchTicks) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%v\t%.0f\t%.3g\n", n, elapsed, tps, tps*float64(n))
	}

	return w.Flush()
}

// parseGrid turns "name=v1,v2" flags into search axes.
func parseGrid(axes []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, axis := range axes {
		name, list, ok := strings.Cut(axis, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("invalid grid %q, want name=v1,v2", axis)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid grid %q: %w", axis, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func sweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if base.Seed == 0 {
		base.Seed = 42
	}

	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch(names, ranges)
	best, val, err := g.Search(ctx, base, metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metric))
	for _, tr := range g.Trials() {
		row := make([]string, 0, len(names)+1)
		for _, name := range names {
			row = append(row, strconv.FormatFloat(tr.Params[name], 'g', -1, 64))
		}
		if tr.Err != nil {
			row = append(row, "error: "+tr.Err.Error())
		} else {
			row = append(row, fmt.Sprintf("%.6f", tr.Value))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f at %v\n", metric, val, best)
	return nil
}
