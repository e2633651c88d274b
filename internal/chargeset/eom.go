package chargeset

import (
	"fmt"

	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/integrators"
	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/worldline"
)

// DefaultStepFraction is the integration step in units of c.
const DefaultStepFraction = 0.01

// EomCharge is a charge moved by the fields of the others. Its phase space
// is the leading state; the world line holds every state it has passed.
type EomCharge struct {
	Mass   float64
	Charge float64
	Phase  integrators.PhaseSpace
	Line   *worldline.Discrete
}

// NewEomCharge places a charge at x moving with covariant velocity u. The
// charge is given a history at rest so that it is visible from the start.
func NewEomCharge(q, mass float64, x spacetime.Vector4, u spacetime.Vector3) *EomCharge {
	return &EomCharge{
		Mass:   mass,
		Charge: q,
		Phase:  integrators.NewPhaseSpace(u, x),
		Line:   worldline.NewDiscreteWithHistory(x),
	}
}

func (e *EomCharge) behind(until spacetime.Vector4) bool {
	p := e.Phase.Position
	return p.CT < until.CT && p.Sub(until).LorentzNorm2() < 0
}

// advance applies the Lorentz force of fs for one step, contracting the
// tensor with the four-velocity through the metric. The phase is committed
// only once the new position is recorded.
func (e *EomCharge) advance(fs spacetime.Matrix, ds float64) error {
	uu := spacetime.FromVelocity(e.Phase.Velocity)
	force := fs.MulVec4(spacetime.Eta().MulVec4(uu)).Scale(e.Charge / e.Mass)
	next := e.Phase
	next.TickInWorldFrame(ds, force.Spatial())
	if !next.IsValid() {
		return fmt.Errorf("%w: charge at %v", dynamo.ErrInvalidState, next.Position)
	}
	if err := e.Line.Push(next.Position); err != nil {
		return err
	}
	e.Phase = next
	return nil
}

// EomSet integrates interacting charges in causal order.
type EomSet struct {
	charges []*EomCharge

	// StepFraction sets the step ds = StepFraction * c.
	StepFraction float64

	// OnStep, when set, is called before charge i is advanced.
	OnStep func(i int, charges []*EomCharge)

	steps int
}

func NewEomSet(charges ...*EomCharge) *EomSet {
	return &EomSet{charges: charges, StepFraction: DefaultStepFraction}
}

func (s *EomSet) Charges() []*EomCharge { return s.charges }

// Steps is the number of sub-steps taken since construction.
func (s *EomSet) Steps() int { return s.steps }

func (s *EomSet) Iter(c float64, x spacetime.Vector4) []Source {
	out := make([]Source, 0, len(s.charges))
	for _, ch := range s.charges {
		if r, ok := ch.Line.PastIntersection(c, x); ok {
			out = append(out, Source{Q: ch.Charge, Retarded: r})
		}
	}
	return out
}

func (s *EomSet) Tick(c float64, until spacetime.Vector4) error {
	return s.tick(c, until, nil)
}

// tick advances the least advanced charge one step at a time. Every other
// charge has already recorded its history up to that charge's ct, so the
// retarded fields it needs are final.
func (s *EomSet) tick(c float64, until spacetime.Vector4, background *StaticSet) error {
	frac := s.StepFraction
	if frac <= 0 {
		frac = DefaultStepFraction
	}
	ds := frac * c

	for s.anyBehind(until) {
		i := s.earliest()
		x := s.charges[i].Phase.Position
		if s.OnStep != nil {
			s.OnStep(i, s.charges)
		}

		fs := s.fieldAt(c, i, x)
		if background != nil {
			fs = fs.Add(Field(c, x, background.Iter(c, x)))
		}
		if err := s.charges[i].advance(fs, ds); err != nil {
			return fmt.Errorf("advance charge %d: %w", i, err)
		}
		s.steps++
	}
	return nil
}

func (s *EomSet) anyBehind(until spacetime.Vector4) bool {
	for _, ch := range s.charges {
		if ch.behind(until) {
			return true
		}
	}
	return false
}

func (s *EomSet) earliest() int {
	best := 0
	for i, ch := range s.charges {
		if ch.Phase.Position.CT < s.charges[best].Phase.Position.CT {
			best = i
		}
	}
	return best
}

// fieldAt sums the fields of every charge but i at x.
func (s *EomSet) fieldAt(c float64, i int, x spacetime.Vector4) spacetime.Matrix {
	fs := spacetime.Zero()
	for j, ch := range s.charges {
		if j == i {
			continue
		}
		r, ok := ch.Line.PastIntersection(c, x)
		if !ok {
			continue
		}
		fs = fs.Add(spacetime.FieldStrength(ch.Charge/c, r.Position.Sub(x).Spatial(), r.Velocity, r.Acceleration))
	}
	return fs
}

func (s *EomSet) ChangeC(oldC, newC float64) {
	for _, ch := range s.charges {
		ch.Phase.ChangeC(oldC, newC)
	}
}

func (s *EomSet) Info(c float64, x spacetime.Vector4) []string {
	var lines []string
	for i, ch := range s.charges {
		r, ok := ch.Line.PastIntersection(c, x)
		if !ok {
			continue
		}
		lines = append(lines,
			fmt.Sprintf("charge %d x = %v", i, r.Position),
			fmt.Sprintf("charge %d gamma = %.3f", i, r.Velocity.Gamma()),
		)
	}
	return lines
}

func (*EomSet) chargeSet() {}
