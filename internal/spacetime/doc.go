// Package spacetime provides the vector and matrix algebra shared by the
// electrodynamics engine and its renderers.
//
//   - [Vector3]: spatial vector with Euclidean products
//   - [Vector4]: spacetime event or displacement (x, y, z, ct)
//   - [Matrix]: 4x4 real matrix used for Lorentz boosts, affine transforms
//     and the electromagnetic field-strength tensor
//
// The time component of a [Vector4] is always ct, a length. The speed of
// light only appears at the boundary, when a caller converts times or
// velocities into that representation.
//
// # Metric
//
// Lorentz products use the signature (+, +, +, -):
//
//	v.LorentzNorm2() == x*x + y*y + z*z - ct*ct
//
// A negative norm is time-like, zero is light-like, positive is space-like.
package spacetime
