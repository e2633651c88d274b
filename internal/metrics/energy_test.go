package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/integrators"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/worldline"
)

func staticFrame(dist float64) sim.Frame {
	set := chargeset.NewStaticSet(chargeset.Fixed{Q: 1, Line: worldline.NewStatic(spacetime.Vector3{})})
	obs := integrators.NewPhaseSpace(spacetime.Vector3{}, spacetime.Vec4(0, 0, dist, 0))
	return sim.Frame{C: 1, Observer: obs, Sources: set.Iter(1, obs.Position), Charges: set}
}

func movingFrame(u float64) sim.Frame {
	return sim.Frame{
		C: 1,
		Sources: []chargeset.Source{
			{Q: 1, Retarded: worldline.Retarded{Velocity: spacetime.Vec3(u, 0, 0)}},
			{Q: -1, Retarded: worldline.Retarded{Velocity: spacetime.Vec3(0, u/2, 0)}},
		},
		SubSteps: 4,
	}
}

func TestElectricIntensity(t *testing.T) {
	m := NewElectricIntensity()

	m.Observe(staticFrame(2))
	want := math.Pow(1.0/4, 2)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected intensity %f, got %f", want, m.Value())
	}

	m.Observe(staticFrame(4))
	want = (math.Pow(1.0/4, 2) + math.Pow(1.0/16, 2)) / 2
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected mean intensity %f, got %f", want, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero intensity after reset")
	}
}

func TestMaxGamma(t *testing.T) {
	m := NewMaxGamma()
	if m.Value() != 1 {
		t.Errorf("expected 1 before any frame, got %f", m.Value())
	}

	m.Observe(movingFrame(1))
	m.Observe(movingFrame(0.5))
	if math.Abs(m.Value()-math.Sqrt(2)) > 1e-12 {
		t.Errorf("expected max gamma sqrt(2), got %f", m.Value())
	}

	m.Reset()
	m.Observe(sim.Frame{})
	if m.Value() != 1 {
		t.Errorf("expected 1 with no sources, got %f", m.Value())
	}
}

func TestSubSteps(t *testing.T) {
	m := NewSubSteps()
	m.Observe(movingFrame(0))
	m.Observe(sim.Frame{})
	if m.Value() != 2 {
		t.Errorf("expected mean 2, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		name   string
		frames []sim.Frame
		want   float64
	}{
		{"empty", nil, 1},
		{"slow", []sim.Frame{movingFrame(0.1), movingFrame(0.2)}, 1},
		{"one fast", []sim.Frame{movingFrame(0.1), movingFrame(50)}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStability(10)
			for _, f := range tt.frames {
				m.Observe(f)
			}
			if m.Value() != tt.want {
				t.Errorf("expected %f, got %f", tt.want, m.Value())
			}
		})
	}
}

func TestDefaultNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(seen))
	}
}
