package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"strconv"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/spacetime"
)

// Scene names a preset and how to build it.
type Scene struct {
	Preset       chargeset.Preset
	Options      chargeset.Options
	Seed         int64
	StepFraction float64
	// Observer overrides the preset's starting point.
	Observer *spacetime.Vector3
	Velocity spacetime.Vector3
	Thrust   spacetime.Vector3
}

type Simulator struct {
	scene     Scene
	c         float64
	set       chargeset.ChargeSet
	viewer    Viewer
	frame     int
	rebuilds  int
	metrics   []Metric
	observers []Observer
	sampler   probe.Sampler
	logger    *slog.Logger
}

func New(scene Scene, c float64, logger *slog.Logger) (*Simulator, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Simulator{
		scene:     scene,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
	if err := s.build(c); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) C() float64                   { return s.c }
func (s *Simulator) Charges() chargeset.ChargeSet { return s.set }
func (s *Simulator) Viewer() *Viewer              { return &s.viewer }
func (s *Simulator) Scene() Scene                 { return s.scene }
func (s *Simulator) Frame() int                   { return s.frame }
func (s *Simulator) SetSampler(p probe.Sampler)   { s.sampler = p }

// Sources lists the charges visible from the viewer.
func (s *Simulator) Sources() []chargeset.Source {
	return s.set.Iter(s.c, s.viewer.Position())
}

// Sample evaluates the field on g as the viewer sees it.
func (s *Simulator) Sample(g probe.Grid) []probe.Sample {
	return s.sampler.Grid(s.c, s.set, s.viewer.Phase, g)
}

func (s *Simulator) build(c float64) error {
	opts := s.scene.Options
	opts.Rand = rand.New(rand.NewSource(s.scene.Seed))
	set, err := chargeset.Build(s.scene.Preset, c, opts)
	if err != nil {
		return err
	}
	if eom := chargeset.Dynamics(set); eom != nil && s.scene.StepFraction > 0 {
		eom.StepFraction = s.scene.StepFraction
	}
	start := s.scene.Preset.ObserverStart()
	if s.scene.Observer != nil {
		start = *s.scene.Observer
	}
	s.c = c
	s.set = set
	s.viewer = NewViewer(spacetime.FromCTV(0, start), s.scene.Velocity, s.scene.Thrust)
	s.logger.Debug("scene built", "preset", s.scene.Preset, "c", c, "observer", start.String())
	return nil
}

// Restart rebuilds the scene at the current speed of light.
func (s *Simulator) Restart() error {
	s.rebuilds++
	return s.build(s.c)
}

// SetPreset replaces the scene with another preset.
func (s *Simulator) SetPreset(p chargeset.Preset) error {
	s.scene.Preset = p
	s.scene.Observer = nil
	return s.Restart()
}

// SetC changes the speed of light. Raising c rescales velocities in place;
// lowering it invalidates the integrated history, so the scene is rebuilt.
// It reports whether a rebuild happened.
func (s *Simulator) SetC(c float64) (bool, error) {
	if !(c > 0) {
		return false, fmt.Errorf("%w: c must be positive, got %g", dynamo.ErrParameterBounds, c)
	}
	switch {
	case c > s.c:
		s.viewer.Phase.ChangeC(s.c, c)
		s.set.ChangeC(s.c, c)
		s.logger.Debug("c raised", "from", s.c, "to", c)
		s.c = c
		return false, nil
	case c < s.c:
		s.logger.Debug("c lowered, rebuilding", "from", s.c, "to", c)
		s.rebuilds++
		return true, s.build(c)
	}
	return false, nil
}

// Step advances the viewer by dt and lets the charges catch up with it.
func (s *Simulator) Step(dt float64) (Frame, error) {
	s.viewer.Tick(s.c, dt)
	if !s.viewer.Phase.IsValid() {
		return Frame{}, &dynamo.SimulationError{Frame: s.frame, CT: s.viewer.Position().CT, Wrapped: dynamo.ErrInvalidState}
	}

	before := s.subSteps()
	if err := s.set.Tick(s.c, s.viewer.Position()); err != nil {
		return Frame{}, &dynamo.SimulationError{Frame: s.frame, CT: s.viewer.Position().CT, Wrapped: err}
	}

	f := Frame{
		Index:    s.frame,
		C:        s.c,
		Observer: s.viewer.Phase,
		Sources:  s.Sources(),
		SubSteps: s.subSteps() - before,
		Charges:  s.set,
	}
	s.frame++

	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f, nil
}

func (s *Simulator) subSteps() int {
	if eom := chargeset.Dynamics(s.set); eom != nil {
		return eom.Steps()
	}
	return 0
}

func (s *Simulator) Info() []string {
	return append(s.viewer.Info(s.c), s.set.Info(s.c, s.viewer.Position())...)
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	schedule := append([]CChange(nil), cfg.Schedule...)
	sort.SliceStable(schedule, func(i, j int) bool { return schedule[i].Frame < schedule[j].Frame })

	result := &Result{
		Trace:   make([]TracePoint, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	next := 0
	rebuilds := s.rebuilds
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		for next < len(schedule) && schedule[next].Frame <= i {
			if _, err := s.SetC(schedule[next].C); err != nil {
				return result, err
			}
			next++
		}

		f, err := s.Step(cfg.Dt)
		if err != nil {
			var simErr *dynamo.SimulationError
			if errors.As(err, &simErr) {
				s.logger.Warn("frame failed", "frame", simErr.Frame, "ct", simErr.CT, "err", simErr.Wrapped)
			}
			return result, err
		}
		result.StepsTaken++
		result.Trace = append(result.Trace, s.trace(f, cfg))
	}

	result.Rebuilds = s.rebuilds - rebuilds
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Info = s.Info()
	return result, nil
}

func (s *Simulator) trace(f Frame, cfg Config) TracePoint {
	tp := TracePoint{
		Frame:    f.Index,
		T:        f.Observer.Position.CT / f.C,
		CT:       f.Observer.Position.CT,
		C:        f.C,
		Sources:  len(f.Sources),
		SubSteps: f.SubSteps,
		Gamma:    f.Observer.Gamma(),
	}
	if cfg.Watch != nil {
		sm := s.sampler.At(s.c, s.set, s.viewer.Phase, *cfg.Watch)
		tp.Field = &sm
	}
	return tp
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, cfg.Frames)
	}
	for _, ch := range cfg.Schedule {
		if !(ch.C > 0) {
			return fmt.Errorf("%w: scheduled c must be positive, got %g", dynamo.ErrParameterBounds, ch.C)
		}
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
