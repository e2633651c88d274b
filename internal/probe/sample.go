package probe

import (
	"math"
	"runtime"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/integrators"
	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/worldline"
)

// Sample is the field at one measurement point in the observer's frame.
type Sample struct {
	// Point is the grid point in world coordinates.
	Point spacetime.Vector3
	// Event is where the point meets the observer's past light cone.
	Event spacetime.Vector4
	// Relative is Event seen from the observer, boosted to its rest frame.
	Relative spacetime.Vector4

	E, B, S spacetime.Vector3
	Sources int
}

// Visible reports whether any source contributed to the sample.
func (s Sample) Visible() bool { return s.Sources > 0 }

// Sampler evaluates fields over a grid. Workers <= 0 uses one goroutine per
// CPU.
type Sampler struct {
	Workers  int
	MinChunk int
}

// At samples a single world-frame point.
func (s Sampler) At(c float64, set chargeset.ChargeSet, obs integrators.PhaseSpace, p spacetime.Vector3) Sample {
	boost := spacetime.Lorentz(obs.Velocity)
	return sampleAt(c, set, obs, boost, p)
}

// Grid samples every point of g. The charge set must not be ticked while
// sampling is in progress.
func (s Sampler) Grid(c float64, set chargeset.ChargeSet, obs integrators.PhaseSpace, g Grid) []Sample {
	boost := spacetime.Lorentz(obs.Velocity)
	out := make([]Sample, len(g.Points))
	chunk := s.MinChunk
	if chunk <= 0 {
		chunk = 64
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	dynamo.ParallelFor(len(g.Points), chunk, workers, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = sampleAt(c, set, obs, boost, g.Points[i])
		}
	})
	return out
}

func sampleAt(c float64, set chargeset.ChargeSet, obs integrators.PhaseSpace, boost spacetime.Matrix, p spacetime.Vector3) Sample {
	r, _ := worldline.NewStatic(p).PastIntersection(c, obs.Position)
	ev := r.Position
	sm := Sample{
		Point:    p,
		Event:    ev,
		Relative: boost.MulVec4(ev.Sub(obs.Position)),
	}
	srcs := set.Iter(c, ev)
	if len(srcs) == 0 {
		return sm
	}
	fs := chargeset.Field(c, ev, srcs).Congruence(boost)
	sm.Sources = len(srcs)
	sm.E = fs.ElectricField(c)
	sm.B = fs.MagneticField()
	sm.S = spacetime.Poynting(sm.E, sm.B, c)
	return sm
}

// Arrow maps field magnitudes to drawable lengths: the magnitude times
// Factor, passed LogCount times through log(1+x).
type Arrow struct {
	Factor   float64
	LogCount int
}

func DefaultArrow() Arrow { return Arrow{Factor: 1, LogCount: 1} }

func (a Arrow) Length(v spacetime.Vector3) float64 {
	l := v.Magnitude() * a.Factor
	for i := 0; i < a.LogCount; i++ {
		l = math.Log1p(l)
	}
	return l
}

// MinVisible is the squared magnitude below which a field is not drawn.
const MinVisible = 1e-16
