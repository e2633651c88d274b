package integrators

import "github.com/san-kum/lienard/internal/spacetime"

// PhaseSpace is the leading state of a particle: the spatial part of its
// four-velocity (gamma * v / c) and its spacetime position.
type PhaseSpace struct {
	Velocity spacetime.Vector3
	Position spacetime.Vector4
}

func NewPhaseSpace(velocity spacetime.Vector3, position spacetime.Vector4) PhaseSpace {
	return PhaseSpace{Velocity: velocity, Position: position}
}

// Tick advances one semi-implicit Euler step of proper length ds. The
// acceleration is given in the particle's instantaneous rest frame and is
// boosted into the world frame before use. The position update uses the
// velocity from before the step.
func (p *PhaseSpace) Tick(ds float64, acceleration spacetime.Vector3) {
	boost := spacetime.Lorentz(p.Velocity.Neg())
	a := boost.MulVec4(spacetime.FromAcceleration(acceleration))
	p.advance(ds, a.Spatial())
}

// TickInWorldFrame is Tick for an acceleration already expressed in the
// world frame.
func (p *PhaseSpace) TickInWorldFrame(ds float64, acceleration spacetime.Vector3) {
	p.advance(ds, acceleration)
}

func (p *PhaseSpace) advance(ds float64, a spacetime.Vector3) {
	p.Position = p.Position.Add(spacetime.FromVelocity(p.Velocity).Scale(ds))
	p.Velocity = p.Velocity.Add(a.Scale(ds))
}

// ChangeC rescales the stored velocity so that the coordinate speed is kept
// when the speed of light changes from oldC to newC. Positions are untouched.
func (p *PhaseSpace) ChangeC(oldC, newC float64) {
	p.Velocity = p.Velocity.Scale(oldC / newC)
}

func (p PhaseSpace) Gamma() float64 { return p.Velocity.Gamma() }

func (p PhaseSpace) IsValid() bool {
	return p.Velocity.IsValid() && p.Position.IsValid()
}
