package sim

import (
	"context"
	"log/slog"
	"sync"
)

// Ensemble runs one scene under several seeds concurrently. Each run owns
// its own Simulator, so nothing is shared between goroutines.
type Ensemble struct {
	scene     Scene
	c         float64
	numRuns   int
	seedStart int64
	metrics   func() []Metric
	logger    *slog.Logger
}

func NewEnsemble(scene Scene, c float64, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{scene: scene, c: c, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory for the metrics attached to every run.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) WithLogger(l *slog.Logger) *Ensemble {
	e.logger = l
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			scene := e.scene
			scene.Seed = e.seedStart + int64(idx)

			sim, err := New(scene, e.c, e.logger)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
