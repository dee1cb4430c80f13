// Package math4d provides the 4D vector, matrix and rotor primitives for Tesser.
//
// Rotations are composed in the fixed plane order XY, XZ, YZ, XW, YW, ZW for
// both rotors and matrices. Swapping that order changes the result.
package math4d

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultVecEpsilon is the tolerance used by the vector predicates.
const DefaultVecEpsilon = 1e-6

// Vec4 represents a point or displacement in R⁴.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromArray creates a Vec4 from its wire form (x, y, z, w).
func V4FromArray(a [4]float64) Vec4 {
	return Vec4{a[0], a[1], a[2], a[3]}
}

// Splat returns a vector with every component set to s.
func Splat(s float64) Vec4 {
	return Vec4{s, s, s, s}
}

// Zero4 returns the zero vector.
func Zero4() Vec4 {
	return Vec4{}
}

// One4 returns (1, 1, 1, 1).
func One4() Vec4 {
	return Vec4{1, 1, 1, 1}
}

// UnitX returns (1, 0, 0, 0).
func UnitX() Vec4 { return Vec4{1, 0, 0, 0} }

// UnitY returns (0, 1, 0, 0).
func UnitY() Vec4 { return Vec4{0, 1, 0, 0} }

// UnitZ returns (0, 0, 1, 0).
func UnitZ() Vec4 { return Vec4{0, 0, 1, 0} }

// UnitW returns (0, 0, 0, 1).
func UnitW() Vec4 { return Vec4{0, 0, 0, 1} }

// Array returns the components in wire order (x, y, z, w).
func (v Vec4) Array() [4]float64 {
	return [4]float64{v.X, v.Y, v.Z, v.W}
}

// Add returns the vector sum a + b.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference a - b.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Mul returns the component-wise product a * b.
//
//nolint:st1016 // a*b naming convention is clearer for vector operations
func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

// Scale returns the scalar product v * s.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Div returns the scalar division v / s. The caller guards s == 0.
func (v Vec4) Div(s float64) Vec4 {
	return Vec4{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

// Negate returns the negated vector.
func (v Vec4) Negate() Vec4 {
	return Vec4{-v.X, -v.Y, -v.Z, -v.W}
}

// Dot returns the dot product a · b.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// LenSq returns the squared length (no sqrt).
func (v Vec4) LenSq() float64 {
	return v.Dot(v)
}

// Len returns the length.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector in the same direction.
// The zero vector normalizes to the zero vector.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l == 0 {
		return Vec4{}
	}
	return v.Div(l)
}

// Distance returns the distance between two points.
//
//nolint:st1016 // a,b naming convention is clearer for metric operations
func (a Vec4) Distance(b Vec4) float64 {
	return a.Sub(b).Len()
}

// DistanceSq returns the squared distance between two points.
//
//nolint:st1016 // a,b naming convention is clearer for metric operations
func (a Vec4) DistanceSq(b Vec4) float64 {
	return a.Sub(b).LenSq()
}

// Lerp returns a + (b-a)*t. t is not clamped, so values outside [0, 1]
// extrapolate along the line.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}

// Min returns the component-wise minimum.
//
//nolint:st1016 // a,b naming convention is clearer for vector operations
func (a Vec4) Min(b Vec4) Vec4 {
	return Vec4{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
		math.Min(a.W, b.W),
	}
}

// Max returns the component-wise maximum.
//
//nolint:st1016 // a,b naming convention is clearer for vector operations
func (a Vec4) Max(b Vec4) Vec4 {
	return Vec4{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
		math.Max(a.W, b.W),
	}
}

// Clamp limits every component to [lo, hi].
func (v Vec4) Clamp(lo, hi Vec4) Vec4 {
	return lo.Max(hi.Min(v))
}

// Abs returns the component-wise absolute value.
func (v Vec4) Abs() Vec4 {
	return Vec4{
		math.Abs(v.X),
		math.Abs(v.Y),
		math.Abs(v.Z),
		math.Abs(v.W),
	}
}

// ProjectOnto returns the projection of v onto b.
// Projecting onto the zero vector yields the zero vector.
func (v Vec4) ProjectOnto(b Vec4) Vec4 {
	d := b.Dot(b)
	if d == 0 {
		return Vec4{}
	}
	return b.Scale(v.Dot(b) / d)
}

// Reflect returns the reflection of v about the hyperplane with normal n.
// n must be unit length; other normals give a scaled, non-orthogonal result.
func (v Vec4) Reflect(n Vec4) Vec4 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// IsZero reports whether the length of v is below eps.
func (v Vec4) IsZero(eps float64) bool {
	return v.LenSq() < eps*eps
}

// IsNormalized reports whether v has unit length within eps.
func (v Vec4) IsNormalized(eps float64) bool {
	return math.Abs(v.LenSq()-1) < eps
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Vec4) ApproxEqual(b Vec4, eps float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, eps) &&
		scalar.EqualWithinAbs(a.Y, b.Y, eps) &&
		scalar.EqualWithinAbs(a.Z, b.Z, eps) &&
		scalar.EqualWithinAbs(a.W, b.W, eps)
}

// NormalSource draws standard normal deviates. distuv.Normal satisfies it.
type NormalSource interface {
	Rand() float64
}

// NewNormalSource returns a reproducible standard normal distribution seeded
// with seed.
func NewNormalSource(seed uint64) distuv.Normal {
	return distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// maxUnitDraws bounds the redraws RandomUnit makes on a degenerate sample.
const maxUnitDraws = 8

// RandomUnit returns a vector uniformly distributed on the unit 3-sphere
// using Marsaglia's method: four normal draws, normalized.
func RandomUnit(src NormalSource) Vec4 {
	for range maxUnitDraws {
		v := Vec4{src.Rand(), src.Rand(), src.Rand(), src.Rand()}
		if l := v.Len(); l > 0 {
			return v.Div(l)
		}
	}
	return UnitX()
}
