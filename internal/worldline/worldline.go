package worldline

import (
	"github.com/san-kum/lienard/internal/spacetime"
)

// Retarded is the state of a source at the event where it crosses an
// observer's past light cone. Velocity and Acceleration are covariant: the
// spatial parts of dx/dτ and du/dτ with τ measured in length units.
type Retarded struct {
	Position     spacetime.Vector4
	Velocity     spacetime.Vector3
	Acceleration spacetime.Vector3
}

type WorldLine interface {
	// PastIntersection returns the event on the world line that is light-like
	// separated from x and lies in its past.
	PastIntersection(c float64, x spacetime.Vector4) (Retarded, bool)

	worldLine()
}

// Static is a charge fixed at Pos for all time.
type Static struct {
	Pos spacetime.Vector3
}

func NewStatic(pos spacetime.Vector3) *Static {
	return &Static{Pos: pos}
}

func (s *Static) PastIntersection(_ float64, x spacetime.Vector4) (Retarded, bool) {
	ct := x.CT - x.Spatial().Sub(s.Pos).Magnitude()
	return Retarded{Position: spacetime.FromCTV(ct, s.Pos)}, true
}

func (*Static) worldLine() {}

// CutOff hides every event of Inner earlier than Appeared: the charge does
// not exist yet.
type CutOff struct {
	Inner    WorldLine
	Appeared float64
}

func NewCutOff(inner WorldLine, appeared float64) *CutOff {
	return &CutOff{Inner: inner, Appeared: appeared}
}

func (w *CutOff) PastIntersection(c float64, x spacetime.Vector4) (Retarded, bool) {
	r, ok := w.Inner.PastIntersection(c, x)
	if !ok || r.Position.CT < w.Appeared {
		return Retarded{}, false
	}
	return r, true
}

func (*CutOff) worldLine() {}
