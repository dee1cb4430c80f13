package render

import (
	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/project"
)

// ClipPlane is a plane Normal·p + D = 0 in the projected 3D scene.
type ClipPlane struct {
	Normal project.Point3
	D      float64
}

// Normalize scales the plane equation so the normal has unit length.
func (p *ClipPlane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p ClipPlane) DistanceToPoint(point project.Point3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]ClipPlane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// (Gribb/Hartmann). The resulting planes have normals pointing inward.
func NewFrustumFromMatrix(m math4d.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	rows := [6]math4d.Vec4{
		FrustumLeft:   r3.Add(r0),
		FrustumRight:  r3.Sub(r0),
		FrustumBottom: r3.Add(r1),
		FrustumTop:    r3.Sub(r1),
		FrustumNear:   r3.Add(r2),
		FrustumFar:    r3.Sub(r2),
	}

	var f Frustum
	for i, r := range rows {
		f.Planes[i] = ClipPlane{Normal: project.P3(r.X, r.Y, r.Z), D: r.W}
		f.Planes[i].Normalize()
	}
	return f
}

// Frustum returns the current view frustum of the camera.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// Bounds3 is an axis-aligned box in the projected 3D scene.
type Bounds3 struct {
	Min, Max project.Point3
}

// BoundsOf returns the smallest box holding every point.
func BoundsOf(points ...project.Point3) Bounds3 {
	if len(points) == 0 {
		return Bounds3{}
	}
	b := Bounds3{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// ContainsPoint reports whether the point is inside the frustum.
func (f Frustum) ContainsPoint(p project.Point3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectBounds reports whether any part of the box may be visible.
// It tests the corner furthest along each plane normal, so it can return
// true for boxes just outside a frustum corner.
func (f Frustum) IntersectBounds(box Bounds3) bool {
	for i := range f.Planes {
		plane := f.Planes[i]
		pVertex := project.P3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere intersects the frustum.
func (f Frustum) IntersectsSphere(center project.Point3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
