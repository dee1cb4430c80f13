package math4d

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// DefaultMatEpsilon is the tolerance used by the matrix predicates.
	DefaultMatEpsilon = 1e-5

	// SingularThreshold is the determinant magnitude below which Inverse
	// treats a matrix as singular.
	SingularThreshold = 1e-10

	// AngleSkipThreshold is the angle magnitude below which composed
	// rotations skip a plane entirely.
	AngleSkipThreshold = 1e-8
)

// Mat4 is a 4x4 real linear map stored in column-major order.
// Element (row r, column c) lives at index c*4+r, so the flat array can be
// uploaded to a graphics pipeline as is.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Zero returns the zero matrix.
func Zero() Mat4 {
	return Mat4{}
}

// Diagonal returns s times the identity.
func Diagonal(s float64) Mat4 {
	return Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		0, 0, 0, s,
	}
}

// Scale creates a per-axis scaling matrix.
func Scale(sx, sy, sz, sw float64) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, sw,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Diagonal(s)
}

// FromColumns builds a matrix from its four columns.
func FromColumns(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}
}

// FromArray builds a matrix from a flat column-major buffer.
func FromArray(a [16]float64) Mat4 {
	return Mat4(a)
}

// planeRotation inserts a cos/sin block for the coordinate plane (a, b) into
// the identity: M[a][a]=c, M[a][b]=-s, M[b][a]=s, M[b][b]=c.
func planeRotation(a, b int, angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.Set(a, a, c)
	m.Set(a, b, -s)
	m.Set(b, a, s)
	m.Set(b, b, c)
	return m
}

// RotationXY creates a rotation in the XY plane (X toward Y).
func RotationXY(angle float64) Mat4 { return planeRotation(0, 1, angle) }

// RotationXZ creates a rotation in the XZ plane (X toward Z).
func RotationXZ(angle float64) Mat4 { return planeRotation(0, 2, angle) }

// RotationYZ creates a rotation in the YZ plane (Y toward Z).
func RotationYZ(angle float64) Mat4 { return planeRotation(1, 2, angle) }

// RotationXW creates a rotation in the XW plane (X toward W).
func RotationXW(angle float64) Mat4 { return planeRotation(0, 3, angle) }

// RotationYW creates a rotation in the YW plane (Y toward W).
func RotationYW(angle float64) Mat4 { return planeRotation(1, 3, angle) }

// RotationZW creates a rotation in the ZW plane (Z toward W).
func RotationZW(angle float64) Mat4 { return planeRotation(2, 3, angle) }

// RotationPlane creates a single-plane rotation for p.
func RotationPlane(p Plane, angle float64) Mat4 {
	a, b := p.Axes()
	return planeRotation(a, b, angle)
}

// RotationFromAngles composes the six plane rotations as the product
// XY·XZ·YZ·XW·YW·ZW. Applied to a vector, ZW acts first and XY last.
// Angles with magnitude below AngleSkipThreshold are skipped.
func RotationFromAngles(xy, xz, yz, xw, yw, zw float64) Mat4 {
	return RotationFromEuler6(Angles6{XY: xy, XZ: xz, YZ: yz, XW: xw, YW: yw, ZW: zw})
}

// RotationFromEuler6 is RotationFromAngles taking an angle set.
func RotationFromEuler6(angles Angles6) Mat4 {
	m := Identity()
	for i, angle := range angles.Array() {
		if math.Abs(angle) < AngleSkipThreshold {
			continue
		}
		m = m.Mul(RotationPlane(Plane(i), angle))
	}
	return m
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulScalar returns every element multiplied by s.
func (m Mat4) MulScalar(s float64) Mat4 {
	for i := range m {
		m[i] *= s
	}
	return m
}

// Add returns the element-wise sum a + b.
//
//nolint:st1016 // a+b naming convention is clearer for matrix operations
func (a Mat4) Add(b Mat4) Mat4 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns the element-wise difference a - b.
//
//nolint:st1016 // a-b naming convention is clearer for matrix operations
func (a Mat4) Sub(b Mat4) Mat4 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// TransposeInPlace transposes m.
func (m *Mat4) TransposeInPlace() {
	*m = m.Transpose()
}

// cofactors returns the twelve 2x2 sub-determinants shared by Determinant
// and Inverse. aCR names the element in column C, row R.
func (m Mat4) cofactors() (b [12]float64) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b[0] = a00*a11 - a01*a10
	b[1] = a00*a12 - a02*a10
	b[2] = a00*a13 - a03*a10
	b[3] = a01*a12 - a02*a11
	b[4] = a01*a13 - a03*a11
	b[5] = a02*a13 - a03*a12
	b[6] = a20*a31 - a21*a30
	b[7] = a20*a32 - a22*a30
	b[8] = a20*a33 - a23*a30
	b[9] = a21*a32 - a22*a31
	b[10] = a21*a33 - a23*a31
	b[11] = a22*a33 - a23*a32
	return b
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	b := m.cofactors()
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Inverse returns the inverse of the matrix using the adjugate.
// Returns identity if the matrix is singular (|det| < SingularThreshold).
func (m Mat4) Inverse() Mat4 {
	b := m.cofactors()
	det := b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
	if math.Abs(det) < SingularThreshold {
		return Identity()
	}
	invDet := 1.0 / det

	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	return Mat4{
		(a11*b[11] - a12*b[10] + a13*b[9]) * invDet,
		(a02*b[10] - a01*b[11] - a03*b[9]) * invDet,
		(a31*b[5] - a32*b[4] + a33*b[3]) * invDet,
		(a22*b[4] - a21*b[5] - a23*b[3]) * invDet,

		(a12*b[8] - a10*b[11] - a13*b[7]) * invDet,
		(a00*b[11] - a02*b[8] + a03*b[7]) * invDet,
		(a32*b[2] - a30*b[5] - a33*b[1]) * invDet,
		(a20*b[5] - a22*b[2] + a23*b[1]) * invDet,

		(a10*b[10] - a11*b[8] + a13*b[6]) * invDet,
		(a01*b[8] - a00*b[10] - a03*b[6]) * invDet,
		(a30*b[4] - a31*b[2] + a33*b[0]) * invDet,
		(a21*b[2] - a20*b[4] - a23*b[0]) * invDet,

		(a11*b[7] - a10*b[9] - a12*b[6]) * invDet,
		(a00*b[9] - a01*b[7] + a02*b[6]) * invDet,
		(a31*b[1] - a30*b[3] - a32*b[0]) * invDet,
		(a20*b[3] - a21*b[1] + a22*b[0]) * invDet,
	}
}

// IsOrthogonal reports whether M·Mᵀ equals the identity within eps.
func (m Mat4) IsOrthogonal(eps float64) bool {
	return m.Mul(m.Transpose()).IsIdentity(eps)
}

// IsIdentity reports whether the diagonal is 1 and every other element is 0,
// within eps.
func (m Mat4) IsIdentity(eps float64) bool {
	return m.ApproxEqual(Identity(), eps)
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}

// Column returns column c.
func (m Mat4) Column(c int) Vec4 {
	return Vec4{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]}
}

// SetColumn replaces column c.
func (m *Mat4) SetColumn(c int, v Vec4) {
	m[c*4], m[c*4+1], m[c*4+2], m[c*4+3] = v.X, v.Y, v.Z, v.W
}

// Row returns row r.
func (m Mat4) Row(r int) Vec4 {
	return Vec4{m[r], m[r+4], m[r+8], m[r+12]}
}

// SetRow replaces row r.
func (m *Mat4) SetRow(r int, v Vec4) {
	m[r], m[r+4], m[r+8], m[r+12] = v.X, v.Y, v.Z, v.W
}

// Array returns the flat column-major buffer.
func (m Mat4) Array() [16]float64 {
	return [16]float64(m)
}

// Float32s returns the column-major buffer narrowed to float32 for GPU upload.
func (m Mat4) Float32s() [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
