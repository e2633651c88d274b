package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lienard/internal/sim"
)

// MaxGamma is the largest Lorentz factor of any visible source.
type MaxGamma struct {
	name  string
	peaks []float64
}

func NewMaxGamma() *MaxGamma {
	return &MaxGamma{name: "max_gamma"}
}

func (m *MaxGamma) Name() string { return m.name }

func (m *MaxGamma) Observe(f sim.Frame) {
	if len(f.Sources) == 0 {
		return
	}
	gammas := make([]float64, len(f.Sources))
	for i, s := range f.Sources {
		gammas[i] = s.Velocity.Gamma()
	}
	m.peaks = append(m.peaks, floats.Max(gammas))
}

func (m *MaxGamma) Value() float64 {
	if len(m.peaks) == 0 {
		return 1
	}
	return floats.Max(m.peaks)
}

func (m *MaxGamma) Reset() {
	m.peaks = m.peaks[:0]
}
