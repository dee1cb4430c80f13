package project

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/tesser/pkg/math4d"
)

const eps = 1e-9

func near(a, b Point3) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestPerspective(t *testing.T) {
	tests := []struct {
		name     string
		v        math4d.Vec4
		distance float64
		want     Point3
	}{
		{"origin", math4d.Zero4(), 2, P3(0, 0, 0)},
		{"unit x at w=0", math4d.UnitX(), 2, P3(1, 0, 0)},
		{"scales with w", math4d.V4(1, 1, 1, 1), 2, P3(2, 2, 2)},
		{"negative w shrinks", math4d.V4(4, 0, 0, -2), 2, P3(2, 0, 0)},
		{"singular", math4d.V4(1, -2, 0, 2), 2, P3(LargeValue, -2*LargeValue, 0)},
		{"near singular behind", math4d.V4(1, 0, 0, 2+1e-7), 2, P3(-LargeValue, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Perspective(tc.v, tc.distance); !near(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStereographic(t *testing.T) {
	tests := []struct {
		name string
		v    math4d.Vec4
		want Point3
	}{
		{"origin", math4d.Zero4(), P3(0, 0, 0)},
		{"unit x", math4d.UnitX(), P3(1, 0, 0)},
		{"negative w", math4d.V4(1, 0, 0, -1), P3(0.5, 0, 0)},
		{"all components", math4d.V4(1, 2, 3, 0.75), P3(4, 8, 12)},
		{"north pole", math4d.UnitW(), P3(LargeValue, LargeValue, LargeValue)},
		{"pole negative sum", math4d.V4(-1, 0, 0, 1), P3(-LargeValue, -LargeValue, -LargeValue)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stereographic(tc.v); !near(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOrthographicOblique(t *testing.T) {
	v := math4d.V4(1, 2, 3, 4)
	if got := Orthographic(v); got != P3(1, 2, 3) {
		t.Errorf("Orthographic = %v", got)
	}
	if got := Oblique(v, 0.5, -0.25, 0); !near(got, P3(3, 1, 3)) {
		t.Errorf("Oblique = %v, want (3, 1, 3)", got)
	}

	flat := math4d.V4(1, 2, 3, 0)
	if Oblique(flat, 1, 1, 1) != Orthographic(flat) {
		t.Error("oblique at w=0 should match orthographic")
	}
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name      string
		w         float64
		fade      bool
		visible   bool
		wantAlpha float64
	}{
		{"on plane", 0.5, true, true, 1},
		{"half way", 0.75, true, true, 0.5},
		{"edge", 1.0, true, true, 0},
		{"outside", 1.01, true, false, 0},
		{"no fade", 0.75, false, true, 1},
		{"below", 0.25, true, true, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Slice(math4d.V4(1, 2, 3, tc.w), 0.5, 0.5, tc.fade)
			if r.Visible != tc.visible {
				t.Fatalf("Visible = %v, want %v", r.Visible, tc.visible)
			}
			if !r.Visible {
				return
			}
			if math.Abs(r.Alpha-tc.wantAlpha) > eps {
				t.Errorf("Alpha = %v, want %v", r.Alpha, tc.wantAlpha)
			}
			if r.Point != P3(1, 2, 3) {
				t.Errorf("Point = %v", r.Point)
			}
		})
	}

	if r := Slice(math4d.Zero4(), 0, 0, true); !r.Visible || r.Alpha != 1 {
		t.Errorf("zero-thickness slice through the point = %+v", r)
	}
}

func TestParseMode(t *testing.T) {
	for i, name := range Modes() {
		m, err := ParseMode(name)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", name, err)
		}
		if m != Mode(i) || m.String() != name {
			t.Errorf("ParseMode(%q) = %v", name, m)
		}
	}

	if m, err := ParseMode("  Stereographic "); err != nil || m != ModeStereographic {
		t.Errorf("case-insensitive parse = %v, %v", m, err)
	}

	_, err := ParseMode("fisheye")
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("got %v, want ErrUnknownMode", err)
	}

	if got := Mode(42).String(); got != "Mode(42)" {
		t.Errorf("String = %q", got)
	}
	if ModeSlice.Next() != ModePerspective {
		t.Error("Next should wrap around")
	}
}

func TestParamsProject(t *testing.T) {
	v := math4d.V4(1, 1, 1, 1)

	tests := []struct {
		name string
		p    Params
		want Result
	}{
		{"default perspective", DefaultParams(), Result{P3(2, 2, 2), 1, true}},
		{"viewer offset", Params{Mode: ModePerspective, Distance: 2, ViewerW: 1}, Result{P3(1, 1, 1), 1, true}},
		{"stereographic", Params{Mode: ModeStereographic}, Result{P3(LargeValue, LargeValue, LargeValue), 1, true}},
		{"orthographic", Params{Mode: ModeOrthographic}, Result{P3(1, 1, 1), 1, true}},
		{"oblique", Params{Mode: ModeOblique, ShearX: 1}, Result{P3(2, 1, 1), 1, true}},
		{"slice hidden", Params{Mode: ModeSlice, SliceThickness: 0.5}, Result{}},
		{"slice visible", Params{Mode: ModeSlice, SliceW: 1, SliceThickness: 0.5}, Result{P3(1, 1, 1), 1, true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.p.Project(v)
			if got.Visible != tc.want.Visible || !near(got.Point, tc.want.Point) || got.Alpha != tc.want.Alpha {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestBatches(t *testing.T) {
	points := []math4d.Vec4{math4d.UnitX(), math4d.V4(1, 1, 1, 1), math4d.V4(0, 0, 2, -1)}

	persp := PerspectiveBatch(points, 2)
	stereo := StereographicBatch(points)
	ortho := OrthographicBatch(points)
	flat := ToFloat32s(points, 2)
	results := DefaultParams().ProjectBatch(nil, points)

	if len(flat) != 3*len(points) || len(results) != len(points) {
		t.Fatalf("lengths: flat %d, results %d", len(flat), len(results))
	}
	for i, p := range points {
		if persp[i] != Perspective(p, 2) {
			t.Errorf("PerspectiveBatch[%d] = %v", i, persp[i])
		}
		if stereo[i] != Stereographic(p) {
			t.Errorf("StereographicBatch[%d] = %v", i, stereo[i])
		}
		if ortho[i] != Orthographic(p) {
			t.Errorf("OrthographicBatch[%d] = %v", i, ortho[i])
		}
		if f := persp[i].Float32s(); flat[3*i] != f[0] || flat[3*i+1] != f[1] || flat[3*i+2] != f[2] {
			t.Errorf("ToFloat32s[%d] = %v, want %v", i, flat[3*i:3*i+3], f)
		}
		if results[i].Point != persp[i] {
			t.Errorf("ProjectBatch[%d] = %v", i, results[i])
		}
	}

	// Reuses the destination buffer.
	reused := DefaultParams().ProjectBatch(results, points[:1])
	if len(reused) != 1 || &reused[0] != &results[0] {
		t.Error("ProjectBatch should reuse dst")
	}
}

func TestPoint3(t *testing.T) {
	a, b := P3(1, 2, 3), P3(4, 5, 6)

	if a.Add(b) != P3(5, 7, 9) || b.Sub(a) != P3(3, 3, 3) || a.Scale(2) != P3(2, 4, 6) {
		t.Error("arithmetic mismatch")
	}
	if a.Dot(b) != 32 {
		t.Errorf("Dot = %v", a.Dot(b))
	}
	if P3(1, 0, 0).Cross(P3(0, 1, 0)) != P3(0, 0, 1) {
		t.Error("x × y should be z")
	}
	if a.Min(P3(0, 5, 3)) != P3(0, 2, 3) || a.Max(P3(0, 5, 3)) != P3(1, 5, 3) {
		t.Error("Min/Max mismatch")
	}
	if l := P3(3, 4, 0).Normalize().Len(); math.Abs(l-1) > eps {
		t.Errorf("normalized length = %v", l)
	}
	if (Point3{}).Normalize() != (Point3{}) {
		t.Error("zero Normalize should be zero")
	}
	if a.Array() != [3]float64{1, 2, 3} {
		t.Errorf("Array = %v", a.Array())
	}
}
