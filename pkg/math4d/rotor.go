package math4d

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// DefaultRotorEpsilon is the tolerance used by Rotor.IsNormalized.
	DefaultRotorEpsilon = 1e-5

	// degenerateMagnitude is the magnitude at or below which a rotor is
	// treated as zero by Normalize and Inverse.
	degenerateMagnitude = 1e-10

	// slerpLinearThreshold is the rotor dot product above which Slerp falls
	// back to Nlerp.
	slerpLinearThreshold = 0.9995
)

// Rotor is an element of the even subalgebra of Cl(4,0): a scalar, six
// bivector components and the pseudoscalar. Field order is the wire order
// (s, xy, xz, yz, xw, yw, zw, xyzw).
//
// The bivector fields are coefficients of e2e1, e3e1, e3e2, e4e1, e4e2 and
// e4e3, and XYZW is the coefficient of e1e2e3e4. With that basis a positive
// XY component turns +X toward +Y, matching RotationXY, and
//
//	a.Mul(b).Rotate(v) == a.Rotate(b.Rotate(v))
//	a.Mul(b).ToMatrix() == a.ToMatrix().Mul(b.ToMatrix())
//
// Only unit rotors encode rotations. Rotate and ToMatrix normalize first.
type Rotor struct {
	S    float64 // scalar
	XY   float64
	XZ   float64
	YZ   float64
	XW   float64
	YW   float64
	ZW   float64
	XYZW float64 // pseudoscalar
}

// IdentityRotor returns the rotor that leaves every vector unchanged.
func IdentityRotor() Rotor {
	return Rotor{S: 1}
}

// RotorFromArray builds a rotor from its wire form.
func RotorFromArray(a [8]float64) Rotor {
	return Rotor{a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7]}
}

// Array returns the components in wire order.
func (r Rotor) Array() [8]float64 {
	return [8]float64{r.S, r.XY, r.XZ, r.YZ, r.XW, r.YW, r.ZW, r.XYZW}
}

// RotorFromPlaneAngle returns the rotor for a rotation by angle in plane p,
// using the half-angle encoding S = cos(angle/2), p component = sin(angle/2).
// It rotates vectors exactly as RotationPlane(p, angle).
func RotorFromPlaneAngle(p Plane, angle float64) Rotor {
	s, c := math.Sincos(angle / 2)
	r := Rotor{S: c}
	switch p {
	case PlaneXY:
		r.XY = s
	case PlaneXZ:
		r.XZ = s
	case PlaneYZ:
		r.YZ = s
	case PlaneXW:
		r.XW = s
	case PlaneYW:
		r.YW = s
	case PlaneZW:
		r.ZW = s
	}
	return r
}

// RotorFromEuler6 composes the six plane rotors as XY·XZ·YZ·XW·YW·ZW, the same
// order as RotationFromAngles, so both represent the same rotation. Angles
// with magnitude below AngleSkipThreshold are skipped.
func RotorFromEuler6(xy, xz, yz, xw, yw, zw float64) Rotor {
	return RotorFromAngles(Angles6{XY: xy, XZ: xz, YZ: yz, XW: xw, YW: yw, ZW: zw})
}

// RotorFromAngles is RotorFromEuler6 taking an angle set.
func RotorFromAngles(angles Angles6) Rotor {
	r := IdentityRotor()
	for i, angle := range angles.Array() {
		if math.Abs(angle) < AngleSkipThreshold {
			continue
		}
		r = r.Mul(RotorFromPlaneAngle(Plane(i), angle))
	}
	return r
}

// Mul returns the geometric product a * b. The product is associative but not
// commutative; a.Mul(b) applies b first, then a.
//
//nolint:st1016 // a*b naming convention is clearer for the geometric product
func (a Rotor) Mul(b Rotor) Rotor {
	return Rotor{
		S: a.S*b.S - a.XY*b.XY - a.XZ*b.XZ - a.YZ*b.YZ -
			a.XW*b.XW - a.YW*b.YW - a.ZW*b.ZW + a.XYZW*b.XYZW,
		XY: a.S*b.XY + a.XY*b.S + a.XZ*b.YZ - a.YZ*b.XZ +
			a.XW*b.YW - a.YW*b.XW - a.ZW*b.XYZW - a.XYZW*b.ZW,
		XZ: a.S*b.XZ - a.XY*b.YZ + a.XZ*b.S + a.YZ*b.XY +
			a.XW*b.ZW + a.YW*b.XYZW - a.ZW*b.XW + a.XYZW*b.YW,
		YZ: a.S*b.YZ + a.XY*b.XZ - a.XZ*b.XY + a.YZ*b.S -
			a.XW*b.XYZW + a.YW*b.ZW - a.ZW*b.YW - a.XYZW*b.XW,
		XW: a.S*b.XW - a.XY*b.YW - a.XZ*b.ZW - a.YZ*b.XYZW +
			a.XW*b.S + a.YW*b.XY + a.ZW*b.XZ - a.XYZW*b.YZ,
		YW: a.S*b.YW + a.XY*b.XW + a.XZ*b.XYZW - a.YZ*b.ZW -
			a.XW*b.XY + a.YW*b.S + a.ZW*b.YZ + a.XYZW*b.XZ,
		ZW: a.S*b.ZW - a.XY*b.XYZW + a.XZ*b.XW + a.YZ*b.YW -
			a.XW*b.XZ - a.YW*b.YZ + a.ZW*b.S - a.XYZW*b.XY,
		XYZW: a.S*b.XYZW + a.XY*b.ZW - a.XZ*b.YW + a.YZ*b.XW +
			a.XW*b.YZ - a.YW*b.XZ + a.ZW*b.XY + a.XYZW*b.S,
	}
}

// Compose returns the rotor that applies first, then second.
func Compose(first, second Rotor) Rotor {
	return second.Mul(first)
}

// Reverse negates the bivector components. Grade 0 and grade 4 are unchanged.
func (r Rotor) Reverse() Rotor {
	return Rotor{r.S, -r.XY, -r.XZ, -r.YZ, -r.XW, -r.YW, -r.ZW, r.XYZW}
}

// Scale returns every component multiplied by s.
func (r Rotor) Scale(s float64) Rotor {
	return Rotor{r.S * s, r.XY * s, r.XZ * s, r.YZ * s, r.XW * s, r.YW * s, r.ZW * s, r.XYZW * s}
}

// Negate returns -r, which encodes the same rotation as r.
func (r Rotor) Negate() Rotor {
	return r.Scale(-1)
}

// Add returns the component-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for rotor operations
func (a Rotor) Add(b Rotor) Rotor {
	return Rotor{
		a.S + b.S, a.XY + b.XY, a.XZ + b.XZ, a.YZ + b.YZ,
		a.XW + b.XW, a.YW + b.YW, a.ZW + b.ZW, a.XYZW + b.XYZW,
	}
}

// Dot returns the Euclidean dot product of the eight components.
//
//nolint:st1016 // a·b naming convention is clearer for rotor operations
func (a Rotor) Dot(b Rotor) float64 {
	return a.S*b.S + a.XY*b.XY + a.XZ*b.XZ + a.YZ*b.YZ +
		a.XW*b.XW + a.YW*b.YW + a.ZW*b.ZW + a.XYZW*b.XYZW
}

// MagnitudeSq returns the sum of squares of all eight components.
func (r Rotor) MagnitudeSq() float64 {
	return r.Dot(r)
}

// Magnitude returns the Euclidean norm of the components.
func (r Rotor) Magnitude() float64 {
	return math.Sqrt(r.MagnitudeSq())
}

// Normalize returns r scaled to unit magnitude.
// A rotor with magnitude at or below 1e-10 normalizes to the identity.
func (r Rotor) Normalize() Rotor {
	mag := r.Magnitude()
	if mag <= degenerateMagnitude {
		return IdentityRotor()
	}
	return r.Scale(1 / mag)
}

// NormalizeInPlace normalizes r.
func (r *Rotor) NormalizeInPlace() {
	*r = r.Normalize()
}

// IsNormalized reports whether |MagnitudeSq - 1| < eps.
func (r Rotor) IsNormalized(eps float64) bool {
	return math.Abs(r.MagnitudeSq()-1) < eps
}

// Inverse returns Reverse()/MagnitudeSq(), or the identity for a degenerate
// rotor.
func (r Rotor) Inverse() Rotor {
	magSq := r.MagnitudeSq()
	if magSq <= degenerateMagnitude*degenerateMagnitude {
		return IdentityRotor()
	}
	return r.Reverse().Scale(1 / magSq)
}

// Rotate applies the rotation to v with the sandwich product R v R̃ on the
// normalized rotor. The result equals r.ToMatrix().MulVec4(v).
func (r Rotor) Rotate(v Vec4) Vec4 {
	n := r.Normalize()
	s, xy, xz, yz := n.S, n.XY, n.XZ, n.YZ
	xw, yw, zw, xyzw := n.XW, n.YW, n.ZW, n.XYZW

	// R v: a vector part and a trivector part.
	px := s*v.X - xy*v.Y - xz*v.Z - xw*v.W
	py := s*v.Y + xy*v.X - yz*v.Z - yw*v.W
	pz := s*v.Z + xz*v.X + yz*v.Y - zw*v.W
	pw := s*v.W + xw*v.X + yw*v.Y + zw*v.Z
	pxyz := xz*v.Y - xy*v.Z - yz*v.X + xyzw*v.W
	pxyw := xw*v.Y - xy*v.W - yw*v.X - xyzw*v.Z
	pxzw := xw*v.Z - xz*v.W - zw*v.X + xyzw*v.Y
	pyzw := yw*v.Z - yz*v.W - zw*v.Y - xyzw*v.X

	// (R v) R̃: the trivector part cancels, keep the vector part.
	return Vec4{
		X: s*px - xy*py - xz*pz - xw*pw - yz*pxyz - yw*pxyw - zw*pxzw + xyzw*pyzw,
		Y: s*py + xy*px - yz*pz - yw*pw + xz*pxyz + xw*pxyw - xyzw*pxzw - zw*pyzw,
		Z: s*pz + xz*px + yz*py - zw*pw - xy*pxyz + xyzw*pxyw + xw*pxzw + yw*pyzw,
		W: s*pw + xw*px + yw*py + zw*pz - xyzw*pxyz - xy*pxyw - xz*pxzw - yz*pyzw,
	}
}

// ToMatrix returns the orthogonal matrix of the normalized rotor. Column c is
// the image of basis vector c under Rotate.
func (r Rotor) ToMatrix() Mat4 {
	n := r.Normalize()
	s, xy, xz, yz := n.S, n.XY, n.XZ, n.YZ
	xw, yw, zw, xyzw := n.XW, n.YW, n.ZW, n.XYZW

	s2, xy2, xz2, yz2 := s*s, xy*xy, xz*xz, yz*yz
	xw2, yw2, zw2, xyzw2 := xw*xw, yw*yw, zw*zw, xyzw*xyzw

	var m Mat4

	m.Set(0, 0, s2-xy2-xz2-xw2+yz2+yw2+zw2-xyzw2)
	m.Set(1, 0, 2*(s*xy-xz*yz-xw*yw+zw*xyzw))
	m.Set(2, 0, 2*(s*xz+xy*yz-xw*zw-yw*xyzw))
	m.Set(3, 0, 2*(s*xw+xy*yw+xz*zw+yz*xyzw))

	m.Set(0, 1, 2*(-s*xy-xz*yz-xw*yw-zw*xyzw))
	m.Set(1, 1, s2-xy2+xz2+xw2-yz2-yw2+zw2-xyzw2)
	m.Set(2, 1, 2*(s*yz-xy*xz-yw*zw+xw*xyzw))
	m.Set(3, 1, 2*(s*yw-xy*xw+yz*zw-xz*xyzw))

	m.Set(0, 2, 2*(-s*xz+xy*yz-xw*zw+yw*xyzw))
	m.Set(1, 2, 2*(-s*yz-xy*xz-yw*zw-xw*xyzw))
	m.Set(2, 2, s2+xy2-xz2+xw2-yz2+yw2-zw2-xyzw2)
	m.Set(3, 2, 2*(s*zw-xz*xw-yz*yw+xy*xyzw))

	m.Set(0, 3, 2*(-s*xw+xy*yw+xz*zw-yz*xyzw))
	m.Set(1, 3, 2*(-s*yw-xy*xw+yz*zw+xz*xyzw))
	m.Set(2, 3, 2*(-s*zw-xz*xw-yz*yw-xy*xyzw))
	m.Set(3, 3, s2+xy2+xz2-xw2+yz2-yw2-zw2-xyzw2)

	return m
}

// Nlerp interpolates component-wise and normalizes the result.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Rotor) Nlerp(b Rotor, t float64) Rotor {
	return a.Add(b.Add(a.Negate()).Scale(t)).Normalize()
}

// Slerp interpolates along the shortest arc between a and b on the unit
// 7-sphere of rotors. Nearly parallel rotors fall back to Nlerp.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Rotor) Slerp(b Rotor, t float64) Rotor {
	d := a.Dot(b)
	if d < 0 {
		d = -d
		b = b.Negate()
	}
	if d > slerpLinearThreshold {
		return a.Nlerp(b, t)
	}

	theta := math.Acos(d)
	sinTheta := math.Sin(theta)
	w1 := math.Sin((1-t)*theta) / sinTheta
	w2 := math.Sin(t*theta) / sinTheta
	return a.Scale(w1).Add(b.Scale(w2))
}

// Slerp is a.Slerp(b, t).
func Slerp(a, b Rotor, t float64) Rotor {
	return a.Slerp(b, t)
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Rotor) ApproxEqual(b Rotor, eps float64) bool {
	x, y := a.Array(), b.Array()
	for i := range x {
		if !scalar.EqualWithinAbs(x[i], y[i], eps) {
			return false
		}
	}
	return true
}

// SameRotation reports whether a and b encode the same rotation, treating a
// rotor and its negation as equal.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Rotor) SameRotation(b Rotor, eps float64) bool {
	return a.ApproxEqual(b, eps) || a.ApproxEqual(b.Negate(), eps)
}

// Angle returns 2·acos(|S|) of the normalized rotor, the rotation angle of a
// simple (single-plane) rotation in [0, π].
func (r Rotor) Angle() float64 {
	return 2 * math.Acos(math.Min(1, math.Abs(r.Normalize().S)))
}
