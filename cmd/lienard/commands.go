package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lienard/internal/analysis"
	"github.com/san-kum/lienard/internal/automation"
	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/experiment"
	"github.com/san-kum/lienard/internal/export"
	"github.com/san-kum/lienard/internal/optim"
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/storage"
	"github.com/san-kum/lienard/internal/viz"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func newStore() *storage.Store { return storage.New(dataDir) }

func setup(cmd *cobra.Command, args []string) (*experiment.Experiment, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	exp := experiment.New(cfg, logger())
	if err := exp.Setup(nil); err != nil {
		return nil, err
	}
	return exp, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	if numRuns > 1 {
		return runEnsemble(cmd, args)
	}

	exp, err := setup(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	st := newStore()
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %d frames...\n", cfg.Preset, cfg.Frames)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	lines := storage.WorldLines(exp.GetSimulator().Charges())
	runID, err := st.Save(storage.NewMetadata(cfg, result), result, lines)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  rebuilds: %d\n", result.StepsTaken, result.Rebuilds)
	printMetrics(result.Metrics)
	fmt.Println()
	for _, line := range result.Info {
		fmt.Println(line)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	scene, err := experiment.Scene(cfg)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	results, err := sim.NewEnsemble(scene, cfg.C, numRuns, cfg.Seed).
		WithMetrics(registry.DefaultMetrics).
		WithLogger(logger()).
		Run(cmd.Context(), experiment.SimConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d runs from seed %d\n\n", cfg.Preset, numRuns, cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, name := range registry.ListMetrics() {
		values := make([]float64, len(results))
		for i, r := range results {
			values[i] = r.Metrics[name]
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\n", name,
			floats.Sum(values)/float64(len(values)), floats.Min(values), floats.Max(values))
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd, args)
	if err != nil {
		return err
	}
	m := viz.NewLiveModel(exp.GetSimulator(), exp.Grid(), exp.Config().Dt).WithTheme(theme)
	return viz.RunLive(m)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := newStore().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d runs in %s", len(runs), dataDir)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tC\tFRAMES\tDT\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3g\t%d\t%.4fs\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.C,
			run.Frames,
			run.Dt,
			run.Seed,
		)
	}
	return w.Flush()
}

// fieldSeries extracts per-frame series from a trace. Frames without a
// watch sample read as zero.
func fieldSeries(trace []sim.TracePoint) (e, b, ey []float64) {
	e = make([]float64, len(trace))
	b = make([]float64, len(trace))
	ey = make([]float64, len(trace))
	for i, tp := range trace {
		if tp.Field == nil {
			continue
		}
		e[i] = tp.Field.E.Magnitude()
		b[i] = tp.Field.B.Magnitude()
		ey[i] = tp.Field.E.Y
	}
	return e, b, ey
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := newStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(trace))

	gamma := make([]float64, len(trace))
	substeps := make([]float64, len(trace))
	for i, tp := range trace {
		gamma[i] = tp.Gamma
		substeps[i] = float64(tp.SubSteps)
	}

	type series struct {
		caption string
		data    []float64
	}
	plots := []series{
		{"observer gamma", gamma},
		{"charge sub-steps per frame", substeps},
	}
	if w := meta.Watch; w != nil {
		e, b, _ := fieldSeries(trace)
		at := fmt.Sprintf("(%g, %g, %g)", w[0], w[1], w[2])
		plots = append(plots, series{"|E| at " + at, e}, series{"|B| at " + at, b})
	}

	for _, s := range plots {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := newStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Watch == nil {
		return fmt.Errorf("run %s has no watch point", runID)
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	_, _, ey := fieldSeries(trace)
	rate := 1 / meta.Dt

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	spectrum := analysis.SpectrumOf(ey, rate)
	if len(spectrum.Power) > 1 {
		graph := asciigraph.Plot(spectrum.Power[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum of E.y"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq, err := analysis.DominantFrequency(ey, rate)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
		fmt.Printf("angular frequency over c: %.4f\n", 2*math.Pi*freq/meta.C)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		p, err := chargeset.ParsePreset(args[0])
		if err != nil {
			return err
		}
		variants := config.ListPresets(string(p))
		if len(variants) == 0 {
			fmt.Printf("no variants for preset: %s\n", p)
			return nil
		}
		fmt.Printf("variants for %s:\n", p)
		for _, v := range variants {
			fmt.Printf("  %s\n", v)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDESCRIPTION\tVARIANTS")
	for _, p := range chargeset.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\t%v\n", p, p.Description(), config.ListPresets(string(p)))
	}
	return w.Flush()
}

func probeScene(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd, args)
	if err != nil {
		return err
	}
	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}

	s := exp.GetSimulator()
	obs := s.Viewer().Position()
	fmt.Printf("%s after %d frames, observer at %v\n\n", exp.Config().Preset, s.Frame(), obs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINT\tSOURCES\tE\tB\tS")
	sampler := probe.Sampler{Workers: exp.Config().Workers}
	for _, at := range probeAt {
		v, err := parseVec3(at)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		sm := sampler.At(s.C(), s.Charges(), s.Viewer().Phase, v.Vector())
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%v\n", v.Vector(), sm.Sources, sm.E, sm.B, sm.S)
	}
	return w.Flush()
}

func snapshotScene(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd, args)
	if err != nil {
		return err
	}
	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}
	s := exp.GetSimulator()

	var svg string
	switch kind {
	case "field":
		pic := viz.Capture(s, exp.Grid(), probe.DefaultArrow())
		svg = export.FieldMapSVG(pic, viz.Viewport{Scale: 10}, 800, 800)
	case "canvas":
		pic := viz.Capture(s, exp.Grid(), probe.DefaultArrow())
		cv := viz.NewCanvas(100, 50)
		viz.DrawSlice(cv, viz.Viewport{Scale: viz.DefaultScale}, pic)
		svg = export.CanvasToSVG(cv, 4)
	case "worldlines":
		var portraits []*analysis.Portrait
		for _, line := range storage.WorldLines(s.Charges()) {
			portraits = append(portraits, analysis.SpacetimeDiagram(line, analysis.AxisX, line[len(line)-1].CT-100))
		}
		if len(portraits) == 0 {
			return fmt.Errorf("preset %s has no integrated world lines", exp.Config().Preset)
		}
		svg = export.PortraitsToSVG(portraits, 800, 800)
	default:
		return fmt.Errorf("unknown snapshot kind %q", kind)
	}

	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func sweepScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Watch == nil {
		w := config.Vec3{0, 5, 0}
		cfg.Watch = &w
	}
	scene, err := experiment.Scene(cfg)
	if err != nil {
		return err
	}

	points, err := analysis.SweepC(cmd.Context(), scene, cMin, cMax, sweepSteps, cfg.Watch.Vector(), cfg.Dt, transient, cfg.Frames, logger())
	if err != nil {
		return err
	}

	fmt.Println(analysis.SweepToASCII(points, 60, 20))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "C\tDISTINCT |E|\tMAX |E|")
	for _, p := range points {
		peak := 0.0
		if len(p.Values) > 0 {
			peak = floats.Max(p.Values)
		}
		fmt.Fprintf(w, "%.3f\t%d\t%.6g\n", p.Param, len(p.Values), peak)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", sc.Name, sc.Description)

	results, runErr := automation.RunScenario(cmd.Context(), sc, logger())

	st := newStore()
	if err := st.Init(); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tFRAMES\tMAX GAMMA\tRUN ID")
	for i, r := range results {
		runID := "-"
		if r.Step.Save {
			lines := storage.WorldLines(r.Experiment.GetSimulator().Charges())
			runID, err = st.Save(storage.NewMetadata(r.Experiment.Config(), r.Result), r.Result, lines)
			if err != nil {
				return err
			}
		}
		name := r.Step.Name
		if name == "" {
			name = fmt.Sprint(i + 1)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%s\n", name, r.Experiment.Config().Preset, r.Result.StepsTaken, r.Result.Metrics["max_gamma"], runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func searchScene(cmd *cobra.Command, args []string) error {
	if len(searchParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(searchParams))
	ranges := make([][]float64, 0, len(searchParams))
	for _, p := range searchParams {
		name, values, err := parseSearchParam(p)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	goal := optim.Minimize
	if maximize {
		goal = optim.Maximize
	}
	best, value, trials, err := optim.NewGridSearch(names, ranges, goal).
		WithLogger(logger()).
		Search(cmd.Context(), cfg, metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metricName))
	for _, tr := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[name])
		}
		if tr.Err != nil {
			fmt.Fprintf(w, "error: %v\n", tr.Err)
			continue
		}
		fmt.Fprintf(w, "%.6g\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("best"))
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	fmt.Printf("  %s = %.6g\n", metricName, value)
	return nil
}
