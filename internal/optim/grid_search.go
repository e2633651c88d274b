package optim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/experiment"
)

// Goal selects whether a search minimises or maximises its metric.
type Goal int

const (
	Minimize Goal = iota
	Maximize
)

func (g Goal) better(a, b float64) bool {
	if g == Maximize {
		return a > b
	}
	return a < b
}

// GridSearch runs every combination of the given parameter values against a
// base configuration.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	goal       Goal
	logger     *slog.Logger
}

func NewGridSearch(params []string, ranges [][]float64, goal Goal) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, goal: goal, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (g *GridSearch) WithLogger(logger *slog.Logger) *GridSearch {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// Search returns the best parameters, their metric value and every trial in
// evaluation order. Points whose scene fails to build or run are recorded
// with their error and skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%w: %d params with %d ranges", dynamo.ErrParameterBounds, len(g.paramNames), len(g.ranges))
	}
	if _, err := experiment.NewRegistry().GetMetric(metricName); err != nil {
		return nil, 0, nil, err
	}

	best := math.Inf(1)
	if g.goal == Maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &best, &bestParams, &trials)
	if err != nil {
		return nil, 0, trials, err
	}
	if bestParams == nil {
		return nil, 0, trials, fmt.Errorf("no grid point completed")
	}
	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		val, err := g.evaluate(ctx, base, current, metricName)
		*trials = append(*trials, Trial{Params: current, Value: val, Err: err})
		if err != nil {
			g.logger.Debug("grid point failed", "params", current, "err", err)
			return nil
		}
		g.logger.Debug("grid point", "params", current, metricName, val)

		if *bestParams == nil || g.goal.better(val, *best) {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, best, bestParams, trials); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, base *config.Config, params map[string]float64, metricName string) (float64, error) {
	cfg := base.Clone()
	for k, v := range params {
		if err := cfg.SetParam(k, v); err != nil {
			return 0, err
		}
	}
	exp := experiment.New(cfg, nil)
	if err := exp.Setup(nil); err != nil {
		return 0, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}
	val, ok := result.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("metric %s not recorded", metricName)
	}
	return val, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
