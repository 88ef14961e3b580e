package main

import (
	"fmt"
	"os"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logJSON  bool

	dt         float64
	duration   float64
	seed       int64
	integrator string
	agents     int
	configFile string
	preset     string

	watch     bool
	frameRate int

	quantity  string
	agentName string
	outFile   string
	braille   bool
	threshold float64

	withAudio bool

	ensembleRuns int
	workers      int

	tuneParams []string
	tuneMetric string
)

var (
	logger   log.Log            = log.Nop()
	registry *scenario.Registry = scenario.NewRegistry()
)

func main() {
	defaults, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "steersim",
		Short: "steering behavior simulation lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a command, pick a scenario from the menu.
			return viz.RunInteractive(registry)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaults.DataDir, "data directory ($STEERSIM_DATA)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error ($STEERSIM_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", defaults.LogJSON, "log as json ($STEERSIM_LOG_JSON)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the run in the terminal while it goes")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate of --watch")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "interactive terminal view of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [scenario]",
		Short: "window view of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runGUI,
	}
	addConfigFlags(guiCmd)
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the agent speeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		RunE:  listScenarios,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list the presets of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a quantity of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&quantity, "quantity", "speed", "quantity to plot")
	plotCmd.Flags().StringVar(&agentName, "agent", "", "plot one agent (default all)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the trajectories of a saved run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal canvas instead of vector paths")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "heading oscillation analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().StringVar(&agentName, "agent", "", "agent to analyze (default first)")
	spectrumCmd.Flags().Float64Var(&threshold, "threshold", 0.05, "magnitude above which a heading oscillates (rad)")

	batchCmd := &cobra.Command{
		Use:   "batch [script.yaml]",
		Short: "run a script of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run a scenario over many seeds and summarize its metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 16, "number of seeds")
	ensembleCmd.Flags().IntVar(&workers, "workers", defaults.Workers, "parallel runs ($STEERSIM_WORKERS)")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario]",
		Short: "grid search the parameters that minimize a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	addConfigFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", nil, "parameter range as name=min:max:steps (repeatable)")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "control_effort", "metric to minimize")
	_ = tuneCmd.MarkFlagRequired("param")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, scenariosCmd, presetsCmd,
		plotCmd, exportCmd, svgCmd, spectrumCmd, batchCmd, ensembleCmd, tuneCmd)

	err = rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	l, err := log.New(level, logJSON)
	if err != nil {
		return err
	}
	logger = l
	registry.SetLogger(l)
	return nil
}
