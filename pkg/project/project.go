// Package project maps 4D points into 3D space.
//
// Every projection is a pure function of its inputs. Singular configurations
// (a point at the viewer's w, or at the stereographic pole) map to a
// deterministic large value instead of Inf or NaN.
package project

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/taigrr/tesser/pkg/math4d"
)

const (
	// LargeValue replaces coordinates that would diverge at a singularity.
	LargeValue = 1e6

	// singularEpsilon is the denominator magnitude treated as zero.
	singularEpsilon = 1e-6
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("unknown projection mode")

// Mode selects a 4D to 3D projection.
type Mode int

const (
	ModePerspective Mode = iota
	ModeStereographic
	ModeOrthographic
	ModeOblique
	ModeSlice
	modeCount
)

var modeNames = [modeCount]string{"perspective", "stereographic", "orthographic", "oblique", "slice"}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the following mode, wrapping around after the last.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Modes returns every mode name in order.
func Modes() []string {
	return slices.Clone(modeNames[:])
}

// Result is a projected point with visibility information. Only slices
// produce invisible points or fractional alpha.
type Result struct {
	Point   Point3
	Alpha   float64
	Visible bool
}

// Perspective projects v toward a viewer on the w axis at the given
// distance: xyz * d/(d-w). Points at the viewer's w are pushed to LargeValue
// along their own xyz direction.
func Perspective(v math4d.Vec4, distance float64) Point3 {
	denom := distance - v.W
	if math.Abs(denom) < singularEpsilon {
		sign := 1.0
		if denom < 0 {
			sign = -1
		}
		return Point3{v.X, v.Y, v.Z}.Scale(sign * LargeValue)
	}
	return Point3{v.X, v.Y, v.Z}.Scale(distance / denom)
}

// Stereographic projects from the pole w=1 of the unit 3-sphere:
// xyz / (1-w). The pole itself maps to ±LargeValue on every axis, signed by
// x+y+z.
func Stereographic(v math4d.Vec4) Point3 {
	denom := 1 - v.W
	if math.Abs(denom) < singularEpsilon {
		s := LargeValue
		if v.X+v.Y+v.Z < 0 {
			s = -LargeValue
		}
		return Point3{s, s, s}
	}
	return Point3{v.X, v.Y, v.Z}.Scale(1 / denom)
}

// Orthographic drops the w coordinate.
func Orthographic(v math4d.Vec4) Point3 {
	return Point3{v.X, v.Y, v.Z}
}

// Oblique shears w into xyz: (x+sx·w, y+sy·w, z+sz·w).
func Oblique(v math4d.Vec4, shearX, shearY, shearZ float64) Point3 {
	return Point3{
		v.X + shearX*v.W,
		v.Y + shearY*v.W,
		v.Z + shearZ*v.W,
	}
}

// Slice keeps points within thickness of the hyperplane w = sliceW.
// With fade, alpha falls linearly from 1 on the hyperplane to 0 at the
// slab edge.
func Slice(v math4d.Vec4, sliceW, thickness float64, fade bool) Result {
	dist := math.Abs(v.W - sliceW)
	if dist > thickness {
		return Result{}
	}

	alpha := 1.0
	if fade && thickness > 0 {
		alpha = max(0, min(1, 1-dist/thickness))
	}
	return Result{
		Point:   Point3{v.X, v.Y, v.Z},
		Alpha:   alpha,
		Visible: true,
	}
}

// PerspectiveBatch applies Perspective to every point.
func PerspectiveBatch(points []math4d.Vec4, distance float64) []Point3 {
	out := make([]Point3, len(points))
	for i, p := range points {
		out[i] = Perspective(p, distance)
	}
	return out
}

// StereographicBatch applies Stereographic to every point.
func StereographicBatch(points []math4d.Vec4) []Point3 {
	out := make([]Point3, len(points))
	for i, p := range points {
		out[i] = Stereographic(p)
	}
	return out
}

// OrthographicBatch applies Orthographic to every point.
func OrthographicBatch(points []math4d.Vec4) []Point3 {
	out := make([]Point3, len(points))
	for i, p := range points {
		out[i] = Orthographic(p)
	}
	return out
}

// ToFloat32s perspective-projects points into a flat xyz buffer.
func ToFloat32s(points []math4d.Vec4, distance float64) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		q := Perspective(p, distance)
		out = append(out, float32(q.X), float32(q.Y), float32(q.Z))
	}
	return out
}
