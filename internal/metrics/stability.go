package metrics

import (
	"math"

	"github.com/san-kum/lienard/internal/sim"
)

// Stability is the fraction of frames in which every visible source is
// finite and slower than the gamma threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f sim.Frame) {
	s.samples++
	for _, src := range f.Sources {
		g := src.Velocity.Gamma()
		if math.IsNaN(g) || g > s.threshold || !src.Position.IsValid() {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Default returns the metrics attached to every run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewMaxGamma(),
		NewElectricIntensity(),
		NewSubSteps(),
		NewStability(100),
	}
}
