// Package chargeset groups charges into the scenes the simulator renders and
// advances. A set answers two questions each frame: which retarded sources an
// observer event sees, and how far the dynamic charges must be integrated to
// keep up with the observer.
package chargeset

import (
	"fmt"

	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/worldline"
)

// Source is one charge as seen from an observer event.
type Source struct {
	Q float64
	worldline.Retarded
}

// ChargeSet is implemented by [StaticSet], [EomSet] and [Composite].
type ChargeSet interface {
	// Iter lists the sources whose world lines cross the past light cone of
	// x. Sources without an intersection are left out.
	Iter(c float64, x spacetime.Vector4) []Source

	// Tick integrates dynamic charges until none is causally behind until.
	Tick(c float64, until spacetime.Vector4) error

	// ChangeC rescales stored velocities for a new speed of light.
	ChangeC(oldC, newC float64)

	// Info describes each visible charge, one line per entry.
	Info(c float64, x spacetime.Vector4) []string

	chargeSet()
}

// Field sums the field-strength tensor of srcs at the event x.
func Field(c float64, x spacetime.Vector4, srcs []Source) spacetime.Matrix {
	fs := spacetime.Zero()
	for _, s := range srcs {
		l := s.Position.Sub(x).Spatial()
		fs = fs.Add(spacetime.FieldStrength(s.Q/c, l, s.Velocity, s.Acceleration))
	}
	return fs
}

// Fixed is a charge on a prescribed world line.
type Fixed struct {
	Q    float64
	Line worldline.WorldLine
}

// StaticSet holds charges whose motion is known in advance. Tick is a no-op.
type StaticSet struct {
	charges []Fixed
}

func NewStaticSet(charges ...Fixed) *StaticSet {
	return &StaticSet{charges: charges}
}

func (s *StaticSet) Len() int { return len(s.charges) }

func (s *StaticSet) Iter(c float64, x spacetime.Vector4) []Source {
	out := make([]Source, 0, len(s.charges))
	for _, ch := range s.charges {
		if r, ok := ch.Line.PastIntersection(c, x); ok {
			out = append(out, Source{Q: ch.Q, Retarded: r})
		}
	}
	return out
}

func (s *StaticSet) Tick(float64, spacetime.Vector4) error { return nil }

func (s *StaticSet) ChangeC(float64, float64) {}

func (s *StaticSet) Info(c float64, x spacetime.Vector4) []string {
	var lines []string
	for i, ch := range s.charges {
		r, ok := ch.Line.PastIntersection(c, x)
		if !ok {
			continue
		}
		lines = append(lines,
			fmt.Sprintf("fixed %d x = %v", i, r.Position),
			fmt.Sprintf("fixed %d gamma = %.3f", i, r.Velocity.Gamma()),
		)
	}
	return lines
}

func (*StaticSet) chargeSet() {}

// Composite combines prescribed charges with dynamic ones. The dynamic
// charges feel the fields of the prescribed ones but not the reverse.
type Composite struct {
	Fixed   *StaticSet
	Dynamic *EomSet
}

func NewComposite(fixed *StaticSet, dynamic *EomSet) *Composite {
	return &Composite{Fixed: fixed, Dynamic: dynamic}
}

func (s *Composite) Iter(c float64, x spacetime.Vector4) []Source {
	return append(s.Fixed.Iter(c, x), s.Dynamic.Iter(c, x)...)
}

func (s *Composite) Tick(c float64, until spacetime.Vector4) error {
	return s.Dynamic.tick(c, until, s.Fixed)
}

func (s *Composite) ChangeC(oldC, newC float64) {
	s.Dynamic.ChangeC(oldC, newC)
}

func (s *Composite) Info(c float64, x spacetime.Vector4) []string {
	return append(s.Fixed.Info(c, x), s.Dynamic.Info(c, x)...)
}

func (*Composite) chargeSet() {}

// Dynamics returns the integrated charges of set, or nil when it has none.
func Dynamics(set ChargeSet) *EomSet {
	switch s := set.(type) {
	case *EomSet:
		return s
	case *Composite:
		return s.Dynamic
	}
	return nil
}
