package spacetime

import (
	"fmt"
	"math"
)

type Vector3 struct {
	X, Y, Z float64
}

type Vector4 struct {
	X, Y, Z, CT float64
}

var (
	XAxis = Vector3{1, 0, 0}
	YAxis = Vector3{0, 1, 0}
	ZAxis = Vector3{0, 0, 1}
)

func Vec3(x, y, z float64) Vector3 { return Vector3{x, y, z} }

func Vec4(x, y, z, ct float64) Vector4 { return Vector4{x, y, z, ct} }

func (a Vector3) Add(b Vector3) Vector3 { return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vector3) Sub(b Vector3) Vector3 { return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vector3) Scale(k float64) Vector3 { return Vector3{v.X * k, v.Y * k, v.Z * k} }
func (v Vector3) Div(k float64) Vector3 { return Vector3{v.X / k, v.Y / k, v.Z / k} }
func (v Vector3) Neg() Vector3            { return Vector3{-v.X, -v.Y, -v.Z} }

func (a Vector3) Dot(b Vector3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - b.Y*a.Z,
		a.Z*b.X - b.Z*a.X,
		a.X*b.Y - b.X*a.Y,
	}
}

func (v Vector3) Magnitude2() float64 { return v.Dot(v) }
func (v Vector3) Magnitude() float64  { return math.Sqrt(v.Magnitude2()) }

// Normalized divides by the magnitude. The zero vector yields NaNs; use
// SafeNormalized when the input may vanish.
func (v Vector3) Normalized() Vector3 { return v.Div(v.Magnitude()) }

// SafeNormalized returns the zero vector for inputs shorter than machine epsilon.
func (v Vector3) SafeNormalized() Vector3 {
	m := v.Magnitude()
	if m <= epsilon {
		return Vector3{}
	}
	return v.Div(m)
}

// Gamma treats v as the spatial part of a four-velocity (gamma * beta) and
// returns the matching time component sqrt(1 + |v|^2).
func (v Vector3) Gamma() float64 { return math.Sqrt(1 + v.Magnitude2()) }

func (v Vector3) IsValid() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// FromCTV builds an event at time ct and spatial position v.
func FromCTV(ct float64, v Vector3) Vector4 { return Vector4{v.X, v.Y, v.Z, ct} }

// FromVelocity builds a four-velocity from its spatial part u; the time
// component is the gamma factor.
func FromVelocity(u Vector3) Vector4 { return Vector4{u.X, u.Y, u.Z, u.Gamma()} }

// FromAcceleration builds a four-vector with zero time component, which is
// the form of a proper acceleration in the instantaneous rest frame.
func FromAcceleration(a Vector3) Vector4 { return Vector4{a.X, a.Y, a.Z, 0} }

func (a Vector4) Add(b Vector4) Vector4 {
	return Vector4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.CT + b.CT}
}

func (a Vector4) Sub(b Vector4) Vector4 {
	return Vector4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.CT - b.CT}
}

func (v Vector4) Scale(k float64) Vector4 { return Vector4{v.X * k, v.Y * k, v.Z * k, v.CT * k} }
func (v Vector4) Neg() Vector4            { return Vector4{-v.X, -v.Y, -v.Z, -v.CT} }

func (v Vector4) Spatial() Vector3 { return Vector3{v.X, v.Y, v.Z} }

func (v Vector4) LorentzNorm2() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z - v.CT*v.CT
}

func (a Vector4) LorentzDot(b Vector4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z - a.CT*b.CT
}

func (v Vector4) IsValid() bool {
	return v.Spatial().IsValid() && isFinite(v.CT)
}

func (v Vector4) String() string {
	return fmt.Sprintf("(%.2f; %.2f, %.2f, %.2f)", v.CT, v.X, v.Y, v.Z)
}

const epsilon = 2.220446049250313e-16

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
