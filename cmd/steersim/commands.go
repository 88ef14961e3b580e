package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/san-kum/steersim/internal/analysis"
	"github.com/san-kum/steersim/internal/automation"
	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/export"
	"github.com/san-kum/steersim/internal/gui"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/storage"
	"github.com/san-kum/steersim/internal/vec"
	"github.com/san-kum/steersim/internal/viz"
	"github.com/spf13/cobra"
)

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "semi_implicit", "integrator (euler, semi_implicit, verlet)")
	cmd.Flags().IntVar(&agents, "agents", config.DefaultAgents, "number of agents")
}

// resolveConfig builds the config of a scenario from the config file or
// preset, then applies the flags given on the command line.
func resolveConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(name, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s for %s (have %v)", preset, name, config.ListPresets(name))
		}
	default:
		cfg = config.DefaultConfig()
	}
	cfg.Scenario = name

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("agents") {
		cfg.Agents.Count = agents
	}
	return cfg, nil
}

// signalContext is cancelled on interrupt so a long run stops cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	run, err := registry.Build(cfg)
	if err != nil {
		return err
	}

	if watch {
		scene := viz.SceneOf(run)
		if run.Planar != nil {
			p := viz.NewPrinter[*vec.Vec2](os.Stdout, run.Name, scene, frameRate)
			p.Start()
			defer p.Stop()
			run.Planar.AddObserver(p)
		} else {
			p := viz.NewPrinter[*vec.Vec3](os.Stdout, run.Name, scene, frameRate)
			p.Start()
			defer p.Stop()
			run.Spatial.AddObserver(p)
		}
	} else {
		fmt.Printf("running %s simulation...\n", cfg.Scenario)
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := run.Execute(ctx)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", log.String("id", runID), log.String("dir", st.Dir(runID)))

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, agents: %d\n", result.StepsTaken, len(result.Agents))
	printValues("metrics", result.Metrics)
	return nil
}

func printValues(title string, values map[string]float64) {
	if len(values) == 0 {
		return
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(title + ":")
	for _, name := range names {
		fmt.Printf("  %-24s %.6f\n", name, values[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if _, err := registry.Build(cfg.Clone()); err != nil {
		return err
	}
	return viz.Run(func() (*scenario.Run, error) {
		return registry.Build(cfg.Clone())
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	return gui.Run(registry, cfg, withAudio, logger)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tAGENTS\tDURATION\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Agents),
			run.Duration,
			run.Dt,
			run.Integrator,
		)
	}

	return w.Flush()
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range registry.List() {
		fmt.Fprintf(w, "%s\t%s\n", name, registry.Describe(name))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets(args[0])
	if len(names) == 0 {
		return fmt.Errorf("no presets for %s", args[0])
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// agentIndices resolves the --agent flag against a result. Empty means all.
func agentIndices(result *sim.Result, name string) ([]int, error) {
	if name == "" {
		idx := make([]int, len(result.Agents))
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	i := result.AgentIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("no agent %s (have %v)", name, result.Agents)
	}
	return []int{i}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(result.Frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if _, ok := viz.Quantities[quantity]; !ok {
		names := make([]string, 0, len(viz.Quantities))
		for name := range viz.Quantities {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown quantity %s (have %v)", quantity, names)
	}

	idx, err := agentIndices(result, agentName)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(result.Frames))

	fmt.Println(viz.PlotAgents(result, quantity, idx, 80, 12))
	fmt.Println()
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.ExportJSONFile(outFile, meta, result); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", runID, outFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	// The scene is not recorded with the samples; rebuild it from the
	// config of the run.
	var scene viz.Scene
	if cfg, err := st.LoadConfig(runID); err != nil {
		logger.Warn("run config unreadable, exporting without scene", log.String("id", runID), log.Error(err))
	} else if run, err := registry.Build(cfg); err != nil {
		logger.Warn("scene rebuild failed", log.String("id", runID), log.Error(err))
	} else {
		scene = viz.SceneOf(run)
	}

	var svg string
	if braille {
		svg = export.CanvasToSVG(viz.RenderResult(result, scene, 100, 40), 4)
	} else {
		svg = export.TrajectorySVG(result, scene, 800, 600)
	}
	if svg == "" {
		return fmt.Errorf("nothing to render for %s", runID)
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	agent := 0
	if agentName != "" {
		if agent = result.AgentIndex(agentName); agent < 0 {
			return fmt.Errorf("no agent %s (have %v)", agentName, result.Agents)
		}
	}
	if len(result.Agents) == 0 {
		return fmt.Errorf("run %s has no agents", runID)
	}

	freqs, mags, err := analysis.HeadingSpectrum(result, agent)
	if err != nil {
		return err
	}
	osc, err := analysis.HeadingOscillation(result, agent, threshold)
	if err != nil {
		return err
	}

	fmt.Printf("heading spectrum: %s / %s\n\n", runID, result.Agents[agent])
	fmt.Println(viz.PlotSeries(mags, "amplitude (rad) vs frequency bin", 80, 15))
	fmt.Println()
	fmt.Printf("bins: %d, nyquist: %.3f hz\n", len(freqs), freqs[len(freqs)-1])
	fmt.Printf("dominant frequency: %.3f hz\n", osc.Frequency)
	if osc.Frequency > 0 {
		fmt.Printf("period: %.3f s\n", 1/osc.Frequency)
	}
	fmt.Printf("amplitude: %.4f rad\n", osc.Magnitude)
	if osc.Oscillating {
		fmt.Println("heading oscillates")
	} else {
		fmt.Println("heading is steady")
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := automation.NewRunner(registry, storage.New(dataDir), logger)
	fmt.Printf("running script %s (%d steps)\n", script.Name, len(script.Steps))
	results, err := runner.Run(ctx, script)
	for _, r := range results {
		switch {
		case r.Sweep != nil:
			fmt.Printf("step %d: %s sweep\n", r.Step, r.Scenario)
			for _, p := range r.Sweep {
				fmt.Printf("  value %.4f\n", p.Value)
				printValues("metrics", p.Metrics)
			}
		case r.RunID != "":
			fmt.Printf("step %d: %s saved as %s\n", r.Step, r.Scenario, r.RunID)
			printValues("metrics", r.Result.Metrics)
		default:
			fmt.Printf("step %d: %s\n", r.Step, r.Scenario)
			printValues("metrics", r.Result.Metrics)
		}
	}
	return err
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := automation.NewRunner(registry, nil, logger)
	fmt.Printf("running %d seeds of %s on %d workers...\n", ensembleRuns, cfg.Scenario, workers)
	summary, err := runner.RunEnsemble(ctx, cfg, ensembleRuns, workers)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX\tN")
	for _, name := range names {
		s := summary[name]
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\t%d\n", name, s.Mean, s.Std, s.Min, s.Max, s.N)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	g := &automation.GridSearch{Metric: tuneMetric}
	for _, p := range tuneParams {
		s, err := automation.ParseSweep(p)
		if err != nil {
			return fmt.Errorf("%w (parameters: %v)", err, automation.SweepParams())
		}
		g.Sweeps = append(g.Sweeps, s)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("searching %d parameters of %s for the lowest %s...\n", len(g.Sweeps), cfg.Scenario, g.Metric)
	best, err := automation.NewRunner(registry, nil, logger).RunSearch(ctx, cfg, g)
	if err != nil {
		return err
	}

	fmt.Printf("tried %d combinations\n", best.Tried)
	fmt.Printf("best %s: %.6f\n", g.Metric, best.Value)
	printValues("parameters", best.Params)
	return nil
}
