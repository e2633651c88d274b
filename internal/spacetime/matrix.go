package spacetime

import "math"

// Matrix is a row-major 4x4 matrix. Index 3 is the time (or homogeneous)
// component.
type Matrix struct {
	Rows [4][4]float64
}

func NewMatrix(r0, r1, r2, r3 [4]float64) Matrix {
	return Matrix{Rows: [4][4]float64{r0, r1, r2, r3}}
}

func Ident() Matrix {
	return NewMatrix(
		[4]float64{1, 0, 0, 0},
		[4]float64{0, 1, 0, 0},
		[4]float64{0, 0, 1, 0},
		[4]float64{0, 0, 0, 1},
	)
}

func Zero() Matrix { return Matrix{} }

// Eta is the Minkowski metric diag(1, 1, 1, -1).
func Eta() Matrix {
	return NewMatrix(
		[4]float64{1, 0, 0, 0},
		[4]float64{0, 1, 0, 0},
		[4]float64{0, 0, 1, 0},
		[4]float64{0, 0, 0, -1},
	)
}

// Perspective is the gluPerspective projection; fovy is in radians.
func Perspective(fovy, aspect, near, far float64) Matrix {
	f := 1 / math.Tan(fovy/2)
	return NewMatrix(
		[4]float64{f / aspect, 0, 0, 0},
		[4]float64{0, f, 0, 0},
		[4]float64{0, 0, (far + near) / (near - far), (2 * far * near) / (near - far)},
		[4]float64{0, 0, -1, 0},
	)
}

func Translation(v Vector3) Matrix {
	return NewMatrix(
		[4]float64{1, 0, 0, v.X},
		[4]float64{0, 1, 0, v.Y},
		[4]float64{0, 0, 1, v.Z},
		[4]float64{0, 0, 0, 1},
	)
}

func Scaling(v Vector3) Matrix {
	return NewMatrix(
		[4]float64{v.X, 0, 0, 0},
		[4]float64{0, v.Y, 0, 0},
		[4]float64{0, 0, v.Z, 0},
		[4]float64{0, 0, 0, 1},
	)
}

func UniformScaling(k float64) Matrix { return Scaling(Vector3{k, k, k}) }

// Lorentz returns the symmetric boost that takes a particle with
// four-velocity FromVelocity(u) to rest:
//
//	Lorentz(u).MulVec4(FromVelocity(u)) == Vector4{0, 0, 0, 1}
//
// Lorentz(u.Neg()) is the inverse boost, from the rest frame back to the world.
func Lorentz(u Vector3) Matrix {
	x2, y2, z2 := u.X*u.X, u.Y*u.Y, u.Z*u.Z
	r := x2 + y2 + z2
	if r <= 0 {
		return Ident()
	}
	g := math.Sqrt(1 + r)
	xy := (g - 1) * u.X * u.Y / r
	yz := (g - 1) * u.Y * u.Z / r
	zx := (g - 1) * u.Z * u.X / r
	return NewMatrix(
		[4]float64{(g*x2 + y2 + z2) / r, xy, zx, -u.X},
		[4]float64{xy, (x2 + g*y2 + z2) / r, yz, -u.Y},
		[4]float64{zx, yz, (x2 + y2 + g*z2) / r, -u.Z},
		[4]float64{-u.X, -u.Y, -u.Z, g},
	)
}

func (m Matrix) Transposed() Matrix {
	var t Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t.Rows[r][c] = m.Rows[c][r]
		}
	}
	return t
}

func (m Matrix) Mul(n Matrix) Matrix {
	var t Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for i := 0; i < 4; i++ {
				sum += m.Rows[r][i] * n.Rows[i][c]
			}
			t.Rows[r][c] = sum
		}
	}
	return t
}

func (m Matrix) MulVec4(v Vector4) Vector4 {
	var t [4]float64
	for i, row := range m.Rows {
		t[i] = row[0]*v.X + row[1]*v.Y + row[2]*v.Z + row[3]*v.CT
	}
	return Vector4{t[0], t[1], t[2], t[3]}
}

// MulPoint applies m to v as an affine point (homogeneous coordinate 1) and
// drops the fourth row.
func (m Matrix) MulPoint(v Vector3) Vector3 {
	var t [3]float64
	for i := 0; i < 3; i++ {
		row := m.Rows[i]
		t[i] = row[0]*v.X + row[1]*v.Y + row[2]*v.Z + row[3]
	}
	return Vector3{t[0], t[1], t[2]}
}

// Project applies m to the homogeneous point v and divides by w. A zero w
// returns the undivided coordinates.
func (m Matrix) Project(v Vector3) Vector3 {
	p := m.MulVec4(Vector4{v.X, v.Y, v.Z, 1})
	if p.CT == 0 {
		return p.Spatial()
	}
	return p.Spatial().Div(p.CT)
}

func (m Matrix) Scale(k float64) Matrix {
	for r := range m.Rows {
		for c := range m.Rows[r] {
			m.Rows[r][c] *= k
		}
	}
	return m
}

func (m Matrix) Add(n Matrix) Matrix {
	for r := range m.Rows {
		for c := range m.Rows[r] {
			m.Rows[r][c] += n.Rows[r][c]
		}
	}
	return m
}

// Congruence returns l * m * transpose(l), the rule for carrying a rank-2
// tensor such as the field strength into the frame of the boost l.
func (m Matrix) Congruence(l Matrix) Matrix {
	return l.Mul(m).Mul(l.Transposed())
}
