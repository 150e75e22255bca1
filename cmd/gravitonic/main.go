package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/NotAF0e/Gravitonic/internal/automation"
	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/export"
	"github.com/NotAF0e/Gravitonic/internal/metrics"
	"github.com/NotAF0e/Gravitonic/internal/physics"
	"github.com/NotAF0e/Gravitonic/internal/sim"
	"github.com/NotAF0e/Gravitonic/internal/spawn"
	"github.com/NotAF0e/Gravitonic/internal/storage"
	"github.com/NotAF0e/Gravitonic/internal/viz"
)

var (
	dataDir   string
	verbosity int
	log       logr.Logger

	configFile   string
	preset       string
	scenarioFile string
	frames       int
	dt           float64
	subSteps     int
	seed         int64
	runs         int
	centerOn     bool
	arenaShape   string
	noSave       bool

	frameRate int
	theme     string
	emit      bool

	frameIndex int
	outFile    string
	svgWidth   int
	svgHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravitonic",
		Short: "verlet circle-particle toy",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = newLogger(verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu(log, frameRate, theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravitonic", "data directory")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")
	rootCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	rootCmd.Flags().StringVar(&theme, "theme", "gravitonic", fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of runs with consecutive seeds")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the run to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view; hold the left mouse button to spawn",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "gravitonic", fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	liveCmd.Flags().BoolVar(&emit, "emit", false, "keep the configured emitter running")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body count and kinetic energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&outFile, "svg", "", "also write the body-count series to this svg file")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its recorded frames as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded frames as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render a recorded frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().IntVar(&frameIndex, "frame", -1, "recorded frame position (-1 for the last)")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().IntVar(&svgWidth, "width", 960, "svg width")
	snapshotCmd.Flags().IntVar(&svgHeight, "height", 540, "svg height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the solver at increasing body counts",
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 60, "frames per body count")
	benchCmd.Flags().IntVar(&subSteps, "substeps", config.DefaultSubSteps, "sub-steps per frame")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, snapshotCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(v int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintln(os.Stderr, prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: v, LogTimestamp: v > 0})
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", fmt.Sprintf("preset %v", config.ListPresets()))
	cmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file path (yaml)")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sub-step duration")
	cmd.Flags().IntVar(&subSteps, "substeps", config.DefaultSubSteps, "sub-steps per frame")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().BoolVar(&centerOn, "center", false, "start with centre-seeking gravity")
	cmd.Flags().StringVar(&arenaShape, "arena", config.ShapeRect, "arena shape (rect|circle)")
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *automation.Scenario, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("substeps") {
		cfg.SubSteps = subSteps
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("center") {
		cfg.CenterGravity = centerOn
	}
	if flags.Changed("arena") {
		cfg.Arena.Shape = arenaShape
	}
	if flags.Changed("scenario") {
		cfg.Scenario = scenarioFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var scenario *automation.Scenario
	if cfg.Scenario != "" {
		s, err := automation.LoadScenario(cfg.Scenario)
		if err != nil {
			return nil, nil, err
		}
		scenario = s
	}
	return cfg, scenario, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s: %d frames x %d sub-steps, arena %v\n", cfg.Name, cfg.Frames, cfg.SubSteps, cfg.Boundary())
	start := time.Now()

	var results []*sim.Result
	if runs > 1 {
		results, err = sim.NewEnsemble(cfg, scenario, runs, cfg.Seed, log).Run(ctx)
		if err != nil {
			return err
		}
	} else {
		r, err := sim.New(cfg,
			sim.WithLogger(log),
			sim.WithScenario(scenario),
			sim.WithMetrics(metrics.Defaults(cfg.Dt, cfg.Boundary())...),
		)
		if err != nil {
			return err
		}
		result, err := r.Run(ctx)
		if result == nil {
			return err
		}
		if err != nil {
			// keep what ran so far; the error is reported below
			log.Error(err, "run stopped early", "frames", result.FramesRun)
		}
		results = []*sim.Result{result}
	}

	fmt.Printf("completed in %v\n", time.Since(start))

	st := storage.New(dataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tFRAMES\tBODIES\tKE\tMAX OVERLAP\tCONTAINED\tID")
	for i, result := range results {
		runSeed := cfg.Seed + int64(i)
		runID := "-"
		if !noSave {
			runID, err = st.Save(storage.RunMetadata{
				Name:     cfg.Name,
				Seed:     runSeed,
				Dt:       cfg.Dt,
				SubSteps: cfg.SubSteps,
				Arena:    cfg.Arena,
				Bodies:   int(result.Metrics["bodies"]),
			}, result)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%.0f\t%.1f\t%.3f\t%.2f\t%s\n",
			i, runSeed, result.FramesRun, result.Metrics["bodies"],
			result.Metrics["kinetic_energy"], result.Metrics["max_overlap"], result.Metrics["containment"], runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, result := range results {
		if len(result.Errors) > 0 {
			return result.Errors[0]
		}
	}
	return ctx.Err()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !emit {
		cfg.Spawn.Rate = 0
	}

	r, err := sim.New(cfg, sim.WithLogger(log), sim.WithScenario(scenario))
	if err != nil {
		return err
	}
	return viz.RunLive(viz.NewModel(r, cfg, frameRate).WithTheme(theme))
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFRAMES\tSUBSTEPS\tARENA\tBODIES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.SubSteps,
			run.Arena.Shape,
			run.Bodies,
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

	counts, energy, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(counts))

	fmt.Println(asciigraph.Plot(counts, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("NUMBER OF OBJECTS")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("kinetic energy")))

	if outFile != "" {
		svg := export.SeriesSVG(counts, 800, 300, "#00ff88")
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", outFile)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return export.WriteJSON(os.Stdout, *meta, frames)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteFrames(os.Stdout, frames)
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no recorded frames", runID)
	}

	idx := frameIndex
	if idx < 0 {
		idx = len(frames) - 1
	}
	if idx >= len(frames) {
		return fmt.Errorf("frame %d out of range (%d recorded)", idx, len(frames))
	}

	svg := export.SnapshotSVG(frames[idx].Bodies, meta.Arena.Boundary(), svgWidth, svgHeight)
	if outFile == "" {
		_, err := fmt.Println(svg)
		return err
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARENA\tGRAVITY\tRATE\tMAX BODIES\tRADIUS")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%v\t%s\t%d\t%d\t%.0f-%.0f\n",
			name,
			cfg.Boundary(),
			cfg.Settings().GravityModel().Name(),
			cfg.Spawn.Rate,
			cfg.Spawn.MaxBodies,
			cfg.Spawn.MinRadius,
			cfg.Spawn.MaxRadius,
		)
	}

	return w.Flush()
}

// benchSolver fills a circular arena with n bodies and times Advance.
func checkBench(frames, subSteps int) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	if subSteps <= 0 {
		return fmt.Errorf("sub-steps must be positive, got %d", subSteps)
	}
	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	if err := checkBench(frames, subSteps); err != nil {
		return err
	}
	cfg := config.GetPreset("arena")
	cfg.Spawn.MinRadius, cfg.Spawn.MaxRadius = 4, 6
	settings := cfg.Settings()

	fmt.Printf("benchmarking solver: %d frames x %d sub-steps\n\n", frames, subSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tFRAMES\tTIME\tMS/FRAME\tCONTACTS/FRAME")

	for _, n := range []int{50, 100, 250, 500, 1000} {
		solver := physics.NewSolver(physics.NewStore())
		sp := spawn.New(42, cfg.Spawn)
		if _, err := sp.Emit(solver.Store(), n, cfg.Arena.Center.R2(), cfg.Arena.Radius/2); err != nil {
			return err
		}

		contacts := 0
		start := time.Now()
		for i := 0; i < frames; i++ {
			if err := solver.Advance(cfg.Dt, subSteps, settings); err != nil {
				return err
			}
			contacts += solver.Contacts()
		}
		elapsed := time.Since(start)

		perFrame := float64(elapsed.Microseconds()) / 1000 / float64(frames)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.3f\t%d\n", n, frames, elapsed, perFrame, contacts/frames)
		log.V(1).Info("bench", "bodies", n, "elapsed", elapsed)
	}

	return w.Flush()
}
