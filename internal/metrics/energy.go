package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/spacetime"
)

// ElectricIntensity is the mean |E|^2 at the observer, in its rest frame.
type ElectricIntensity struct {
	name    string
	samples []float64
}

func NewElectricIntensity() *ElectricIntensity {
	return &ElectricIntensity{name: "e_intensity"}
}

func (e *ElectricIntensity) Name() string { return e.name }

func (e *ElectricIntensity) Observe(f sim.Frame) {
	e.samples = append(e.samples, ObserverField(f).Magnitude2())
}

func (e *ElectricIntensity) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return floats.Sum(e.samples) / float64(len(e.samples))
}

func (e *ElectricIntensity) Reset() {
	e.samples = e.samples[:0]
}

// ObserverField is the electric field at the observer in its rest frame.
func ObserverField(f sim.Frame) spacetime.Vector3 {
	obs := f.Observer
	fs := chargeset.Field(f.C, obs.Position, f.Sources).Congruence(spacetime.Lorentz(obs.Velocity))
	return fs.ElectricField(f.C)
}
