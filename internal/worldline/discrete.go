package worldline

import (
	"fmt"
	"math"

	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/spacetime"
)

// Discrete is a world line recorded sample by sample. Samples strictly
// increase in ct; between samples the motion is linear.
type Discrete struct {
	samples []spacetime.Vector4
}

func NewDiscrete() *Discrete {
	return &Discrete{}
}

// NewDiscreteWithHistory returns a world line at rest at x.Spatial() that
// extends far into the past, ending at x.
func NewDiscreteWithHistory(x spacetime.Vector4) *Discrete {
	d := &Discrete{samples: make([]spacetime.Vector4, 0, 64)}
	pos := x.Spatial()
	for _, back := range []float64{1e4, 1e3, 1e2, 1e1, 1} {
		d.samples = append(d.samples, spacetime.FromCTV(x.CT-back, pos))
	}
	d.samples = append(d.samples, x)
	return d
}

// Push appends x, which must be later than every stored sample.
func (d *Discrete) Push(x spacetime.Vector4) error {
	if !x.IsValid() {
		return fmt.Errorf("%w: sample %v", dynamo.ErrInvalidState, x)
	}
	if n := len(d.samples); n > 0 && x.CT <= d.samples[n-1].CT {
		return fmt.Errorf("%w: ct %g after %g", dynamo.ErrNonMonotonic, x.CT, d.samples[n-1].CT)
	}
	d.samples = append(d.samples, x)
	return nil
}

func (d *Discrete) Len() int { return len(d.samples) }

func (d *Discrete) At(i int) spacetime.Vector4 { return d.samples[i] }

func (d *Discrete) Last() (spacetime.Vector4, bool) {
	if len(d.samples) == 0 {
		return spacetime.Vector4{}, false
	}
	return d.samples[len(d.samples)-1], true
}

// Samples returns a copy of the recorded trajectory.
func (d *Discrete) Samples() []spacetime.Vector4 {
	out := make([]spacetime.Vector4, len(d.samples))
	copy(out, d.samples)
	return out
}

// PastIntersection finds the segment that crosses the past light cone of x
// by binary search and interpolates linearly within it. Velocity comes from
// the crossing segment, acceleration from it and the segment before.
func (d *Discrete) PastIntersection(_ float64, x spacetime.Vector4) (Retarded, bool) {
	n := len(d.samples)
	if n <= 2 {
		return Retarded{}, false
	}

	lo := 1
	if first := d.samples[lo]; first.CT >= x.CT || first.Sub(x).LorentzNorm2() > 0 {
		return Retarded{}, false
	}
	hi := n - 1
	if last := d.samples[hi]; last.CT < x.CT && last.Sub(x).LorentzNorm2() < 0 {
		return Retarded{}, false
	}

	// samples[lo] is inside the past cone, samples[hi] is not.
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		s := d.samples[mid]
		if s.CT >= x.CT || s.Sub(x).LorentzNorm2() >= 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	i := hi

	x0, x1, x2 := d.samples[i-2], d.samples[i-1], d.samples[i]
	seg := x2.Sub(x1)
	rel := x.Sub(x1)

	a := -seg.LorentzNorm2()
	b := -seg.LorentzDot(rel)
	c := -rel.LorentzNorm2()
	disc := b*b - a*c
	if disc < 0 {
		disc = 0
	}
	var lambda float64
	if den := b + math.Sqrt(disc); den != 0 {
		lambda = c / den
	}

	tau0 := math.Sqrt(-x1.Sub(x0).LorentzNorm2())
	tau1 := math.Sqrt(-seg.LorentzNorm2())
	if !(tau0 > 0 && tau1 > 0) {
		return Retarded{}, false
	}
	u0 := x1.Sub(x0).Spatial().Div(tau0)
	u1 := seg.Spatial().Div(tau1)

	return Retarded{
		Position:     x1.Scale(1 - lambda).Add(x2.Scale(lambda)),
		Velocity:     u1,
		Acceleration: u1.Sub(u0).Scale(2 / (tau0 + tau1)),
	}, true
}

func (*Discrete) worldLine() {}
