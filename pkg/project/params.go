package project

import "github.com/taigrr/tesser/pkg/math4d"

// Params configures a projection.
type Params struct {
	Mode Mode

	// Distance is the viewer's distance along w for perspective.
	Distance float64
	// ViewerW shifts every point's w before perspective projection.
	ViewerW float64

	SliceW         float64
	SliceThickness float64
	SliceFade      bool

	ShearX, ShearY, ShearZ float64
}

// DefaultParams returns a perspective projection from w = 2.
func DefaultParams() Params {
	return Params{
		Mode:           ModePerspective,
		Distance:       2,
		SliceThickness: 0.25,
		SliceFade:      true,
		ShearX:         0.5,
		ShearY:         0.5,
		ShearZ:         0,
	}
}

// Project projects v with the configured mode.
func (p Params) Project(v math4d.Vec4) Result {
	var pt Point3
	switch p.Mode {
	case ModeStereographic:
		pt = Stereographic(v)
	case ModeOrthographic:
		pt = Orthographic(v)
	case ModeOblique:
		pt = Oblique(v, p.ShearX, p.ShearY, p.ShearZ)
	case ModeSlice:
		return Slice(v, p.SliceW, p.SliceThickness, p.SliceFade)
	default:
		v.W -= p.ViewerW
		pt = Perspective(v, p.Distance)
	}
	return Result{Point: pt, Alpha: 1, Visible: true}
}

// ProjectBatch projects every point into dst, which is grown as needed and
// returned.
func (p Params) ProjectBatch(dst []Result, points []math4d.Vec4) []Result {
	dst = dst[:0]
	for _, v := range points {
		dst = append(dst, p.Project(v))
	}
	return dst
}
