package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/experiment"
	"github.com/san-kum/lienard/internal/viz"
)

var (
	dataDir string
	verbose bool
	// Scene flags, applied over the config only when set.
	configFile   string
	variant      string
	speedOfLight float64
	dt           float64
	frames       int
	seed         int64
	stepFraction float64
	grid         string
	gridSize     int
	workers      int
	watch        string
	observerPos  string
	velocity     string
	thrust       string
	schedule     []string
	count        int
	radius       float64
	speed        float64
	charge       float64
	mass         float64
	appearAt     float64
	// run
	numRuns int
	// live
	theme string
	// probe
	probeAt []string
	// snapshot
	outFile string
	kind    string
	// sweep
	cMin, cMax float64
	sweepSteps int
	transient  int
	// search
	searchParams []string
	metricName   string
	maximize     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lienard",
		Short: "retarded fields of relativistic point charges",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(func(p chargeset.Preset) (viz.LiveModel, error) {
				cfg := config.DefaultConfig()
				cfg.Preset = string(p)
				exp := experiment.New(cfg, logger())
				if err := exp.Setup(nil); err != nil {
					return viz.LiveModel{}, err
				}
				return viz.NewLiveModel(exp.GetSimulator(), exp.Grid(), cfg.Dt), nil
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lienard", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scene and store its trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "run this many seeds concurrently and summarise instead of storing")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the watch-point field of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the watch-point field",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newStore().ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [preset]",
		Short: "list presets, or the variants of one preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	probeCmd := &cobra.Command{
		Use:   "probe [preset]",
		Short: "print the field at points after running a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  probeScene,
	}
	addSceneFlags(probeCmd)
	probeCmd.Flags().StringArrayVar(&probeAt, "at", []string{"0,5,0"}, "probe point x,y,z (repeatable)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "run a scene and write an SVG of the last frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotScene,
	}
	addSceneFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "snapshot.svg", "output file")
	snapshotCmd.Flags().StringVar(&kind, "kind", "field", "field, canvas or worldlines")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "watch-point |E| across a range of c",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScene,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&cMin, "c-min", 0.5, "smallest c")
	sweepCmd.Flags().Float64Var(&cMax, "c-max", 2, "largest c")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of c values")
	sweepCmd.Flags().IntVar(&transient, "transient", 60, "frames to settle before recording")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of scenes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	searchCmd := &cobra.Command{
		Use:   "search [preset]",
		Short: "grid search scene parameters for the best metric value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  searchScene,
	}
	addSceneFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&searchParams, "param", nil, fmt.Sprintf("name=v1,v2,... or name=lo:hi:n (repeatable) %v", config.Params))
	searchCmd.Flags().StringVar(&metricName, "metric", "e_intensity", "metric to optimise")
	searchCmd.Flags().BoolVar(&maximize, "max", false, "maximise instead of minimise")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, presetsCmd, probeCmd, snapshotCmd, sweepCmd, scenarioCmd, searchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&variant, "variant", "", "named variant of the preset")
	f.Float64Var(&speedOfLight, "c", config.DefaultC, "speed of light")
	f.Float64Var(&dt, "dt", config.DefaultDt, "observer seconds per frame")
	f.IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	f.Float64Var(&stepFraction, "step", config.DefaultStepFraction, "charge step as a fraction of c")
	f.StringVar(&grid, "grid", config.DefaultGrid, "probe grid: 2d, 3d, line or none")
	f.IntVar(&gridSize, "grid-size", 0, "grid extent (0 for the default)")
	f.IntVar(&workers, "workers", 0, "sampling goroutines (0 for one per CPU)")
	f.StringVar(&watch, "watch", "", "record the field at x,y,z every frame")
	f.StringVar(&observerPos, "observer", "", "observer start x,y,z")
	f.StringVar(&velocity, "velocity", "", "observer velocity x,y,z")
	f.StringVar(&thrust, "thrust", "", "observer thrust x,y,z")
	f.StringSliceVar(&schedule, "c-at", nil, "change c before a frame, frame:c (repeatable)")
	f.IntVar(&count, "count", 0, "number of charges (random, circle)")
	f.Float64Var(&radius, "radius", 0, "ring or separation radius")
	f.Float64Var(&speed, "speed", 0, "initial speed as a fraction of c")
	f.Float64Var(&charge, "charge", 0, "charge magnitude")
	f.Float64Var(&mass, "mass", 0, "charge mass")
	f.Float64Var(&appearAt, "appear-at", 0, "ct at which fixed charges appear")
}

func logger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
