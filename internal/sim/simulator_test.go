package sim

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/spacetime"
)

func newSim(t *testing.T, p chargeset.Preset, c float64) *Simulator {
	t.Helper()
	s, err := New(Scene{Preset: p}, c, nil)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	return s
}

func TestSimulatorRun(t *testing.T) {
	s := newSim(t, chargeset.PresetStatic, 1)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Trace) != 10 {
		t.Errorf("expected 10 trace points, got %d", len(result.Trace))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	last := result.Trace[len(result.Trace)-1]
	if math.Abs(last.CT-1.0) > 1e-9 {
		t.Errorf("expected observer ct ~1.0, got %.6f", last.CT)
	}
	for _, tp := range result.Trace {
		if tp.Sources != 1 {
			t.Errorf("frame %d: expected 1 source, got %d", tp.Frame, tp.Sources)
		}
	}
	if len(result.Info) == 0 {
		t.Error("expected info lines")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := newSim(t, chargeset.PresetStatic, 1)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Frames: 10}},
		{"negative dt", Config{Dt: -0.1, Frames: 10}},
		{"zero frames", Config{Dt: 0.1, Frames: 0}},
		{"bad schedule", Config{Dt: 0.1, Frames: 10, Schedule: []CChange{{Frame: 1, C: 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestNewUnknownPreset(t *testing.T) {
	_, err := New(Scene{Preset: "nope"}, 1, nil)
	if !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(f Frame) {
	t.count++
	t.sum += float64(len(f.Sources))
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type testObserver struct{ frames []int }

func (o *testObserver) OnFrame(f Frame) { o.frames = append(o.frames, f.Index) }

func TestSimulatorMetrics(t *testing.T) {
	s := newSim(t, chargeset.PresetDipole, 1)

	metric := &testMetric{}
	obs := &testObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if v, ok := result.Metrics["test"]; !ok || v != 2 {
		t.Errorf("expected metric value 2, got %v (present=%v)", v, ok)
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if len(obs.frames) != 10 || obs.frames[9] != 9 {
		t.Errorf("unexpected observed frames %v", obs.frames)
	}
}

func TestSimulatorCatchUp(t *testing.T) {
	s := newSim(t, chargeset.PresetEom, 1)

	f, err := s.Step(0.5)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if f.SubSteps == 0 {
		t.Error("expected the charges to be integrated")
	}

	until := s.Viewer().Position()
	for i, ch := range chargeset.Dynamics(s.Charges()).Charges() {
		p := ch.Phase.Position
		if p.CT < until.CT && p.Sub(until).LorentzNorm2() < 0 {
			t.Errorf("charge %d still behind the observer: %v", i, p)
		}
	}
}

func TestSimulatorSetC(t *testing.T) {
	s := newSim(t, chargeset.PresetEom, 1)
	for i := 0; i < 3; i++ {
		if _, err := s.Step(0.5); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}
	eom := chargeset.Dynamics(s.Charges())
	u := eom.Charges()[0].Phase.Velocity
	ct := s.Viewer().Position().CT

	rebuilt, err := s.SetC(2)
	if err != nil || rebuilt {
		t.Fatalf("raising c: rebuilt=%v err=%v", rebuilt, err)
	}
	got := eom.Charges()[0].Phase.Velocity
	if math.Abs(got.X-u.X/2) > 1e-15 {
		t.Errorf("expected velocity %.6f, got %.6f", u.X/2, got.X)
	}
	if s.Viewer().Position().CT != ct {
		t.Error("raising c should keep the observer in place")
	}

	rebuilt, err = s.SetC(0.5)
	if err != nil || !rebuilt {
		t.Fatalf("lowering c: rebuilt=%v err=%v", rebuilt, err)
	}
	if s.C() != 0.5 {
		t.Errorf("expected c=0.5, got %v", s.C())
	}
	fresh := chargeset.Dynamics(s.Charges()).Charges()[0].Phase.Position
	if fresh.CT != -30 {
		t.Errorf("expected rebuilt charge at ct=-30, got %v", fresh.CT)
	}

	if _, err := s.SetC(-1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestSimulatorSchedule(t *testing.T) {
	s := newSim(t, chargeset.PresetLineOscillate, 1)

	cfg := Config{
		Dt:       0.1,
		Frames:   6,
		Schedule: []CChange{{Frame: 4, C: 1}, {Frame: 2, C: 2}},
	}
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []float64{1, 1, 2, 2, 1, 1}
	for i, tp := range result.Trace {
		if tp.C != want[i] {
			t.Errorf("frame %d: expected c=%v, got %v", i, want[i], tp.C)
		}
	}
	if result.Rebuilds != 1 {
		t.Errorf("expected 1 rebuild, got %d", result.Rebuilds)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	s := newSim(t, chargeset.PresetStatic, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, Config{Dt: 0.1, Frames: 10})
	if !errors.Is(err, dynamo.ErrContextCanceled) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestSimulatorWatch(t *testing.T) {
	s := newSim(t, chargeset.PresetStatic, 1)
	watch := spacetime.Vec3(0, 5, 0)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Frames: 3, Watch: &watch})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, tp := range result.Trace {
		if tp.Field == nil {
			t.Fatalf("frame %d: missing field sample", tp.Frame)
		}
		if math.Abs(tp.Field.E.Y-1.0/25) > 1e-12 {
			t.Errorf("frame %d: expected E.y=0.04, got %v", tp.Frame, tp.Field.E.Y)
		}
	}
}

func TestSimulatorRestart(t *testing.T) {
	s := newSim(t, chargeset.PresetStatic, 1)
	if _, err := s.Step(1); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if err := s.SetPreset(chargeset.PresetEom); err != nil {
		t.Fatalf("set preset: %v", err)
	}
	if s.Viewer().Position() != spacetime.Vec4(0, 0, 30, 0) {
		t.Errorf("expected observer reset to the preset start, got %v", s.Viewer().Position())
	}
	if len(s.Sources()) != 2 {
		t.Errorf("expected 2 sources, got %d", len(s.Sources()))
	}
}

func TestViewerThrust(t *testing.T) {
	v := NewViewer(spacetime.Vector4{}, spacetime.Vector3{}, spacetime.Vec3(0.1, 0, 0))
	v.Drag = 0
	for i := 0; i < 10; i++ {
		v.Tick(1, 1)
	}
	if v.Phase.Velocity.X <= 0 {
		t.Errorf("expected positive velocity, got %v", v.Phase.Velocity)
	}
	if !strings.HasPrefix(v.Info(1)[3], "observer gamma = 1.") {
		t.Errorf("unexpected info %q", v.Info(1)[3])
	}
}

func TestEnsemble(t *testing.T) {
	scene := Scene{Preset: chargeset.PresetRandom, Options: chargeset.Options{Count: 3, Charge: 0.1}}
	ens := NewEnsemble(scene, 1, 3, 42).WithMetrics(func() []Metric { return []Metric{&testMetric{}} })

	results, err := ens.Run(context.Background(), Config{Dt: 0.1, Frames: 3})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if len(r.Trace) != 3 {
			t.Errorf("run %d: expected 3 trace points, got %d", i, len(r.Trace))
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("run %d: missing metric", i)
		}
	}
}
