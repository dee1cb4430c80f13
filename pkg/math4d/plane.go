package math4d

import "fmt"

// Plane identifies one of the six coordinate rotation planes of R⁴.
// The numeric order is the fixed composition order.
type Plane int

const (
	PlaneXY Plane = iota // 3D rotation around Z
	PlaneXZ              // 3D rotation around Y
	PlaneYZ              // 3D rotation around X
	PlaneXW
	PlaneYW
	PlaneZW
)

// AllPlanes lists the planes in composition order.
var AllPlanes = [6]Plane{PlaneXY, PlaneXZ, PlaneYZ, PlaneXW, PlaneYW, PlaneZW}

var planeAxes = [6][2]int{
	PlaneXY: {0, 1},
	PlaneXZ: {0, 2},
	PlaneYZ: {1, 2},
	PlaneXW: {0, 3},
	PlaneYW: {1, 3},
	PlaneZW: {2, 3},
}

var planeNames = [6]string{"XY", "XZ", "YZ", "XW", "YW", "ZW"}

// Axes returns the coordinate indices (a, b) spanned by the plane, a < b.
// A positive angle rotates axis a toward axis b.
func (p Plane) Axes() (a, b int) {
	ab := planeAxes[p]
	return ab[0], ab[1]
}

// String returns the plane name, e.g. "XW".
func (p Plane) String() string {
	if p < 0 || int(p) >= len(planeNames) {
		return fmt.Sprintf("Plane(%d)", int(p))
	}
	return planeNames[p]
}

// Angles6 holds one rotation angle (radians) per plane.
type Angles6 struct {
	XY, XZ, YZ, XW, YW, ZW float64
}

// Angles6FromArray builds an angle set from composition-ordered values.
func Angles6FromArray(a [6]float64) Angles6 {
	return Angles6{a[0], a[1], a[2], a[3], a[4], a[5]}
}

// Array returns the angles in composition order.
func (a Angles6) Array() [6]float64 {
	return [6]float64{a.XY, a.XZ, a.YZ, a.XW, a.YW, a.ZW}
}

// Get returns the angle for plane p.
func (a Angles6) Get(p Plane) float64 {
	return a.Array()[p]
}

// With returns a copy with the angle for plane p replaced.
func (a Angles6) With(p Plane, angle float64) Angles6 {
	arr := a.Array()
	arr[p] = angle
	return Angles6FromArray(arr)
}

// Add returns the per-plane sum.
//
//nolint:st1016 // a+b naming convention is clearer for angle sets
func (a Angles6) Add(b Angles6) Angles6 {
	return Angles6{a.XY + b.XY, a.XZ + b.XZ, a.YZ + b.YZ, a.XW + b.XW, a.YW + b.YW, a.ZW + b.ZW}
}

// Scale returns every angle multiplied by s.
func (a Angles6) Scale(s float64) Angles6 {
	return Angles6{a.XY * s, a.XZ * s, a.YZ * s, a.XW * s, a.YW * s, a.ZW * s}
}
