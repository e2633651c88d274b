package sim

import (
	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/integrators"
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/spacetime"
)

// Frame is the state of the scene after one frame has been advanced.
type Frame struct {
	Index    int
	C        float64
	Observer integrators.PhaseSpace
	Sources  []chargeset.Source
	SubSteps int
	Charges  chargeset.ChargeSet
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// CChange sets the speed of light to C before frame Frame is advanced.
type CChange struct {
	Frame int
	C     float64
}

type Config struct {
	Dt       float64
	Frames   int
	Schedule []CChange
	// Watch, if set, records the field at this world-frame point every frame.
	Watch *spacetime.Vector3
}

// TracePoint summarises one frame of a run.
type TracePoint struct {
	Frame    int
	T        float64
	CT       float64
	C        float64
	Sources  int
	SubSteps int
	Gamma    float64
	Field    *probe.Sample
}

type Result struct {
	Trace      []TracePoint
	Metrics    map[string]float64
	StepsTaken int
	Rebuilds   int
	Info       []string
}
