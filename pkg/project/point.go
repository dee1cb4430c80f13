package project

import "math"

// Point3 is a projected point in 3D space.
type Point3 struct {
	X, Y, Z float64
}

// P3 creates a new Point3.
func P3(x, y, z float64) Point3 {
	return Point3{x, y, z}
}

// Add returns a + b.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Point3) Add(b Point3) Point3 {
	return Point3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Point3) Sub(b Point3) Point3 {
	return Point3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns p * s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Point3) Dot(b Point3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
//
//nolint:st1016 // a×b naming convention is clearer for vector operations
func (a Point3) Cross(b Point3) Point3 {
	return Point3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length.
func (p Point3) Len() float64 {
	return math.Sqrt(p.Dot(p))
}

// Normalize returns a unit vector in the same direction, or zero.
func (p Point3) Normalize() Point3 {
	l := p.Len()
	if l == 0 {
		return Point3{}
	}
	return p.Scale(1 / l)
}

// Min returns the component-wise minimum.
//
//nolint:st1016 // a,b naming convention is clearer for vector operations
func (a Point3) Min(b Point3) Point3 {
	return Point3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
//
//nolint:st1016 // a,b naming convention is clearer for vector operations
func (a Point3) Max(b Point3) Point3 {
	return Point3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Array returns the components as (x, y, z).
func (p Point3) Array() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

// Float32s returns the components narrowed to float32.
func (p Point3) Float32s() [3]float32 {
	return [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
}
