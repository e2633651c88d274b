package worldline

import (
	"fmt"
	"math"

	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/spacetime"
)

const (
	newtonIterations = 10
	newtonTolerance  = 1e-12
	bisectTolerance  = 1e-12
	minSlope         = 1e-8
	minDenominator   = 1e-12
)

// LineOscillate moves along a line through Center:
//
//	p(ct) = Center + Amplitude * sin(ω ct / c)
type LineOscillate struct {
	Center    spacetime.Vector3
	Amplitude spacetime.Vector3
	Omega     float64
}

// NewLineOscillate builds an oscillator with the given frequency (cycles per
// unit time). The peak speed |ω|·|Amplitude| must not exceed c.
func NewLineOscillate(center, amplitude spacetime.Vector3, frequency, c float64) (*LineOscillate, error) {
	omega := frequency * 2 * math.Pi
	if peak := math.Abs(omega) * amplitude.Magnitude(); peak > c {
		return nil, fmt.Errorf("%w: peak speed %g exceeds c=%g", dynamo.ErrSuperluminal, peak, c)
	}
	return &LineOscillate{Center: center, Amplitude: amplitude, Omega: omega}, nil
}

// PastIntersection returns Velocity and Acceleration per unit proper length,
// u = γβ and du/dτ, not per unit time.
func (w *LineOscillate) PastIntersection(c float64, x spacetime.Vector4) (Retarded, bool) {
	ct := w.retardedCT(c, x)
	k := w.Omega / c
	sin, cos := math.Sincos(k * ct)

	// beta = dp/d(ct), betaP = d(beta)/d(ct)
	beta := w.Amplitude.Scale(k * cos)
	betaP := w.Amplitude.Scale(-k * k * sin)
	den := 1 - beta.Magnitude2()
	if den < minDenominator {
		den = minDenominator
	}
	gamma := 1 / math.Sqrt(den)
	g3 := gamma * gamma * gamma

	u := beta.Scale(gamma)
	du := betaP.Scale(gamma).Add(beta.Scale(g3 * beta.Dot(betaP)))

	return Retarded{
		Position:     spacetime.FromCTV(ct, w.Center.Add(w.Amplitude.Scale(sin))),
		Velocity:     u,
		Acceleration: du.Scale(gamma),
	}, true
}

func (*LineOscillate) worldLine() {}

// residual is (ct - x.ct)^2 - |p(ct) - x|^2; it vanishes on the light cone,
// is negative inside the cone's spatial reach and positive far in the past.
func (w *LineOscillate) residual(c float64, x spacetime.Vector4, l spacetime.Vector3, ct float64) float64 {
	dt := ct - x.CT
	return dt*dt - l.Add(w.Amplitude.Scale(math.Sin(w.Omega*ct/c))).Magnitude2()
}

func (w *LineOscillate) retardedCT(c float64, x spacetime.Vector4) float64 {
	l := w.Center.Sub(x.Spatial())
	lLen := l.Magnitude()
	if lLen < 2*epsilon {
		return x.CT
	}

	k := w.Omega / c
	ct := x.CT - lLen - 2*w.Amplitude.Magnitude()
	for i := 0; i < newtonIterations; i++ {
		sin, cos := math.Sincos(k * ct)
		amp := l.Add(w.Amplitude.Scale(sin))
		dt := ct - x.CT
		f := dt*dt - amp.Magnitude2()
		if math.Abs(f) < newtonTolerance*lLen && dt <= 0 {
			return ct
		}
		fp := 2 * (dt - amp.Dot(w.Amplitude)*k*cos)
		if math.Abs(fp) < minSlope {
			break
		}
		ct -= f / fp
	}
	return w.bisect(c, x, l)
}

// bisect brackets the root below x.ct by doubling, then halves the bracket
// until the residual is small or the step no longer moves the estimate.
func (w *LineOscillate) bisect(c float64, x spacetime.Vector4, l spacetime.Vector3) float64 {
	hi := x.CT
	dt := 1.0
	for w.residual(c, x, l, hi-dt) < 0 {
		dt *= 2
	}
	for {
		dt *= 0.5
		mid := hi - dt
		if mid == hi {
			return mid
		}
		y := w.residual(c, x, l, mid)
		if math.Abs(y) <= bisectTolerance {
			return mid
		}
		if y < 0 {
			hi = mid
		}
	}
}

const epsilon = 2.220446049250313e-16
