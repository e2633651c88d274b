package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	simulator *sim.Simulator
	grid      probe.Grid
	logger    *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   logger,
	}
}

// Scene converts the configuration into a buildable scene.
func Scene(cfg *config.Config) (sim.Scene, error) {
	p, err := chargeset.ParsePreset(cfg.Preset)
	if err != nil {
		return sim.Scene{}, err
	}
	scene := sim.Scene{
		Preset:       p,
		Options:      cfg.ChargeOptions(),
		Seed:         cfg.Seed,
		StepFraction: cfg.StepFraction,
		Velocity:     cfg.Observer.Velocity.Vector(),
		Thrust:       cfg.Observer.Acceleration.Vector(),
	}
	if cfg.Observer.Position != nil {
		pos := cfg.Observer.Position.Vector()
		scene.Observer = &pos
	}
	return scene, nil
}

// SimConfig converts the run section of the configuration.
func SimConfig(cfg *config.Config) sim.Config {
	out := sim.Config{Dt: cfg.Dt, Frames: cfg.Frames}
	for _, ch := range cfg.CSchedule {
		out.Schedule = append(out.Schedule, sim.CChange{Frame: ch.Frame, C: ch.C})
	}
	if cfg.Watch != nil {
		w := cfg.Watch.Vector()
		out.Watch = &w
	}
	return out
}

// Setup validates the configuration and builds the simulator. A nil metrics
// slice attaches the registry defaults.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	scene, err := Scene(e.cfg)
	if err != nil {
		return err
	}
	grid, err := e.registry.GetGrid(e.cfg.Grid, e.cfg.GridSize)
	if err != nil {
		return err
	}
	s, err := sim.New(scene, e.cfg.C, e.logger)
	if err != nil {
		return err
	}
	s.SetSampler(probe.Sampler{Workers: e.cfg.Workers})

	if metrics == nil {
		metrics = e.registry.DefaultMetrics()
	}
	for _, m := range metrics {
		s.AddMetric(m)
	}
	e.simulator = s
	e.grid = grid
	e.logger.Info("experiment ready", "preset", scene.Preset, "variant", e.cfg.Variant, "c", e.cfg.C, "grid", grid.Name, "probes", len(grid.Points))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, SimConfig(e.cfg))
}

// Snapshot samples the configured grid at the simulator's current frame.
func (e *Experiment) Snapshot() ([]probe.Sample, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Sample(e.grid), nil
}

func (e *Experiment) GetSimulator() *sim.Simulator { return e.simulator }
func (e *Experiment) Grid() probe.Grid             { return e.grid }
func (e *Experiment) Config() *config.Config       { return e.cfg }
