package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/metrics"
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/spacetime"
)

// DefaultLineSize is the number of probes on a "line" grid.
const DefaultLineSize = 200

type Registry struct {
	grids   map[string]func(size int) probe.Grid
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		grids:   make(map[string]func(int) probe.Grid),
		metrics: make(map[string]func() sim.Metric),
	}

	r.grids["2d"] = func(size int) probe.Grid {
		g, _ := probe.ParseGrid("2d", size)
		return g
	}
	r.grids["3d"] = func(size int) probe.Grid {
		g, _ := probe.ParseGrid("3d", size)
		return g
	}
	r.grids["line"] = func(size int) probe.Grid {
		if size <= 0 {
			size = DefaultLineSize
		}
		return probe.Line(spacetime.Vec3(0, 1, 0), spacetime.Vec3(0, 40, 0), size)
	}
	r.grids["none"] = func(int) probe.Grid { return probe.Grid{Name: "none"} }

	r.metrics["max_gamma"] = func() sim.Metric { return metrics.NewMaxGamma() }
	r.metrics["e_intensity"] = func() sim.Metric { return metrics.NewElectricIntensity() }
	r.metrics["substeps"] = func() sim.Metric { return metrics.NewSubSteps() }
	r.metrics["stability"] = func() sim.Metric { return metrics.NewStability(100) }

	return r
}

func (r *Registry) GetGrid(name string, size int) (probe.Grid, error) {
	fn, ok := r.grids[name]
	if !ok {
		return probe.Grid{}, fmt.Errorf("%w: unknown grid %q", dynamo.ErrParameterBounds, name)
	}
	return fn(size), nil
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListPresets() []string {
	presets := chargeset.ListPresets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = string(p)
	}
	return names
}

func (r *Registry) ListGrids() []string  { return sortedKeys(r.grids) }
func (r *Registry) ListMetrics() []string { return sortedKeys(r.metrics) }

func (r *Registry) DefaultMetrics() []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name]())
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
