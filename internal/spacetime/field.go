package spacetime

// FieldStrength is the Liénard–Wiechert field-strength tensor at an event,
// sourced by a charge on the event's past light cone.
//
//	q: charge divided by c
//	l: spatial displacement from the event to the retarded charge position
//	u: covariant velocity (spatial part of the four-velocity) at retarded time
//	a: covariant acceleration du/dτ at retarded time
//
// Displacements shorter than 2ε produce the zero tensor.
func FieldStrength(q float64, l, u, a Vector3) Matrix {
	lLen := l.Magnitude()
	if lLen < 2*epsilon {
		return Zero()
	}
	lHat := l.Div(lLen)
	uT := u.Gamma()
	aT := a.Dot(u) / uT

	lu := lHat.Dot(u)
	la := lHat.Dot(a)
	uT2 := uT * uT
	uT3 := uT2 * uT

	// Near-field terms carry 1/lLen, radiation terms carry a.
	coef := (aT + la - 1/lLen) / uT3
	fT := lHat.Scale((uT*(la-1/lLen) - aT*lu) / uT3).
		Add(u.Scale(coef)).
		Sub(a.Div(uT2))

	fXY := (lHat.X*a.Y-lHat.Y*a.X)/uT2 - (lHat.X*u.Y-lHat.Y*u.X)*coef
	fYZ := (lHat.Y*a.Z-lHat.Z*a.Y)/uT2 - (lHat.Y*u.Z-lHat.Z*u.Y)*coef
	fZX := (lHat.Z*a.X-lHat.X*a.Z)/uT2 - (lHat.Z*u.X-lHat.X*u.Z)*coef

	return NewMatrix(
		[4]float64{0, fXY, -fZX, fT.X},
		[4]float64{-fXY, 0, fYZ, fT.Y},
		[4]float64{fZX, -fYZ, 0, fT.Z},
		[4]float64{-fT.X, -fT.Y, -fT.Z, 0},
	).Scale(q / lLen)
}

// ElectricField reads the electric field from the time column of a field
// tensor. The tensor is built from q/c, so the column is multiplied by c.
func (m Matrix) ElectricField(c float64) Vector3 {
	return Vector3{m.Rows[0][3], m.Rows[1][3], m.Rows[2][3]}.Scale(c)
}

// MagneticField reads the antisymmetric spatial block of a field tensor.
func (m Matrix) MagneticField() Vector3 {
	return Vector3{
		m.Rows[1][2] - m.Rows[2][1],
		m.Rows[2][0] - m.Rows[0][2],
		m.Rows[0][1] - m.Rows[1][0],
	}
}

// Poynting is E x B scaled by c^2.
func Poynting(e, b Vector3, c float64) Vector3 {
	return e.Cross(b).Scale(c * c)
}
