package sim

import (
	"github.com/san-kum/lienard/internal/integrators"
	"github.com/san-kum/lienard/internal/spacetime"
)

// DefaultDrag damps the observer's velocity each frame.
const DefaultDrag = 0.05

// Viewer is the observer the scene is rendered for. It accelerates with a
// constant rest-frame Thrust against a drag proportional to its velocity.
type Viewer struct {
	Phase  integrators.PhaseSpace
	Thrust spacetime.Vector3
	Drag   float64
}

func NewViewer(pos spacetime.Vector4, u, thrust spacetime.Vector3) Viewer {
	return Viewer{
		Phase:  integrators.NewPhaseSpace(u, pos),
		Thrust: thrust,
		Drag:   DefaultDrag,
	}
}

// Tick advances the viewer by dt of world time.
func (v *Viewer) Tick(c, dt float64) {
	a := v.Thrust.Sub(v.Phase.Velocity.Scale(v.Drag))
	v.Phase.Tick(dt*c, a)
}

func (v *Viewer) Position() spacetime.Vector4 { return v.Phase.Position }

// Boost takes world-frame vectors into the viewer's rest frame.
func (v *Viewer) Boost() spacetime.Matrix { return spacetime.Lorentz(v.Phase.Velocity) }

func (v *Viewer) Info(c float64) []string {
	u := v.Phase.Velocity
	return []string{
		"observer x = " + v.Phase.Position.String(),
		"observer u = " + u.String(),
		"observer v = " + u.Scale(c).String(),
		"observer gamma = " + formatFloat(u.Gamma()),
	}
}
