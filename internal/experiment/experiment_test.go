package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/dynamo"
)

func TestRegistryGrids(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"2d", 4, 0},
		{"3d", 2, 0},
		{"line", 10, 10},
		{"none", 0, 0},
	}
	for _, tt := range tests {
		g, err := r.GetGrid(tt.name, tt.size)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if tt.want > 0 && len(g.Points) != tt.want {
			t.Errorf("%s: expected %d points, got %d", tt.name, tt.want, len(g.Points))
		}
		if tt.name != "none" && len(g.Points) == 0 {
			t.Errorf("%s: expected probes", tt.name)
		}
	}

	if _, err := r.GetGrid("4d", 0); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestRegistryMetrics(t *testing.T) {
	r := NewRegistry()

	names := r.ListMetrics()
	if len(names) != 4 {
		t.Fatalf("expected 4 metrics, got %v", names)
	}
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			t.Fatal(err)
		}
		if m.Name() != name {
			t.Errorf("metric registered as %s reports %s", name, m.Name())
		}
	}
	if _, err := r.GetMetric("entropy"); err == nil {
		t.Error("expected error for unknown metric")
	}
	if len(r.ListPresets()) != len(chargeset.ListPresets()) {
		t.Error("registry presets should match chargeset presets")
	}
}

func TestScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Preset = "CIRCLE"
	cfg.Seed = 9
	pos := config.Vec3{1, 2, 3}
	cfg.Observer.Position = &pos
	cfg.Observer.Acceleration = config.Vec3{0, 0, 0.5}

	scene, err := Scene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if scene.Preset != chargeset.PresetCircle {
		t.Errorf("expected circle, got %s", scene.Preset)
	}
	if scene.Observer == nil || scene.Observer.Z != 3 {
		t.Errorf("unexpected observer %v", scene.Observer)
	}
	if scene.Thrust.Z != 0.5 || scene.Seed != 9 {
		t.Errorf("unexpected scene %+v", scene)
	}

	cfg.Preset = "nope"
	if _, err := Scene(cfg); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestSimConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CSchedule = []config.CChange{{Frame: 5, C: 2}}
	cfg.Watch = &config.Vec3{0, 5, 0}

	sc := SimConfig(cfg)
	if sc.Dt != cfg.Dt || sc.Frames != cfg.Frames {
		t.Errorf("unexpected sim config %+v", sc)
	}
	if len(sc.Schedule) != 1 || sc.Schedule[0].C != 2 {
		t.Errorf("unexpected schedule %v", sc.Schedule)
	}
	if sc.Watch == nil || sc.Watch.Y != 5 {
		t.Errorf("unexpected watch %v", sc.Watch)
	}
}

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Frames = 30
	cfg.Grid = "line"
	cfg.GridSize = 8
	cfg.Watch = &config.Vec3{0, 5, 0}

	exp := New(cfg, nil)
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.StepsTaken != 30 {
		t.Errorf("expected 30 steps, got %d", result.StepsTaken)
	}
	if _, ok := result.Metrics["e_intensity"]; !ok {
		t.Error("expected default metrics")
	}
	last := result.Trace[len(result.Trace)-1]
	if last.Field == nil || math.Abs(last.Field.E.Y-0.04) > 1e-9 {
		t.Errorf("expected Coulomb field 0.04 at watch point, got %+v", last.Field)
	}

	samples, err := exp.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 8 {
		t.Errorf("expected 8 samples, got %d", len(samples))
	}
}

func TestExperimentSetupInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.C = -1
	if err := New(cfg, nil).Setup(nil); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
