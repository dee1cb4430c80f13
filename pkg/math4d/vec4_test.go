package math4d

import (
	"math"
	"testing"
)

func TestVec4Arithmetic(t *testing.T) {
	a := V4(1, 2, 3, 4)
	b := V4(5, 6, 7, 8)

	tests := []struct {
		name string
		got  Vec4
		want Vec4
	}{
		{"add", a.Add(b), V4(6, 8, 10, 12)},
		{"sub", b.Sub(a), V4(4, 4, 4, 4)},
		{"mul", a.Mul(b), V4(5, 12, 21, 32)},
		{"scale", a.Scale(2), V4(2, 4, 6, 8)},
		{"div", b.Div(2), V4(2.5, 3, 3.5, 4)},
		{"negate", a.Negate(), V4(-1, -2, -3, -4)},
		{"abs", V4(-1, 2, -3, 0).Abs(), V4(1, 2, 3, 0)},
		{"min", a.Min(V4(0, 3, 2, 5)), V4(0, 2, 2, 4)},
		{"max", a.Max(V4(0, 3, 2, 5)), V4(1, 3, 3, 5)},
		{"splat", Splat(7), V4(7, 7, 7, 7)},
		{"one", One4(), V4(1, 1, 1, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestVec4Metric(t *testing.T) {
	a := V4(1, 2, 3, 4)
	b := V4(5, 6, 7, 8)

	if got := a.Dot(b); got != 70 {
		t.Errorf("Dot = %v, want 70", got)
	}
	if got := a.LenSq(); got != 30 {
		t.Errorf("LenSq = %v, want 30", got)
	}
	if got := a.Len(); math.Abs(got-math.Sqrt(30)) > 1e-12 {
		t.Errorf("Len = %v, want %v", got, math.Sqrt(30))
	}
	if got := a.Distance(b); math.Abs(got-8) > 1e-12 {
		t.Errorf("Distance = %v, want 8", got)
	}
	if got := a.DistanceSq(b); got != 64 {
		t.Errorf("DistanceSq = %v, want 64", got)
	}
}

func TestVec4Normalize(t *testing.T) {
	v := V4(3, 0, 4, 0).Normalize()
	if !v.ApproxEqual(V4(0.6, 0, 0.8, 0), 1e-12) {
		t.Errorf("Normalize = %v, want (0.6, 0, 0.8, 0)", v)
	}
	if !v.IsNormalized(DefaultVecEpsilon) {
		t.Error("normalized vector should report IsNormalized")
	}

	if z := Zero4().Normalize(); z != Zero4() {
		t.Errorf("zero Normalize = %v, want zero vector", z)
	}
}

func TestVec4Predicates(t *testing.T) {
	tests := []struct {
		name       string
		v          Vec4
		zero, unit bool
	}{
		{"zero", Zero4(), true, false},
		{"tiny", V4(1e-7, 0, 0, 0), true, false},
		{"unit w", UnitW(), false, true},
		{"almost unit", V4(1+1e-8, 0, 0, 0), false, true},
		{"long", V4(1, 1, 1, 1), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.IsZero(DefaultVecEpsilon); got != tc.zero {
				t.Errorf("IsZero = %v, want %v", got, tc.zero)
			}
			if got := tc.v.IsNormalized(DefaultVecEpsilon); got != tc.unit {
				t.Errorf("IsNormalized = %v, want %v", got, tc.unit)
			}
		})
	}
}

func TestVec4LerpClamp(t *testing.T) {
	a := V4(0, 0, 0, 0)
	b := V4(2, 4, 6, 8)

	if got := a.Lerp(b, 0.5); got != V4(1, 2, 3, 4) {
		t.Errorf("Lerp(0.5) = %v", got)
	}
	// Not clamped.
	if got := a.Lerp(b, 2); got != V4(4, 8, 12, 16) {
		t.Errorf("Lerp(2) = %v", got)
	}

	got := V4(-5, 0.5, 5, 1).Clamp(Splat(0), Splat(1))
	if got != V4(0, 0.5, 1, 1) {
		t.Errorf("Clamp = %v", got)
	}
}

func TestVec4ProjectReflect(t *testing.T) {
	v := V4(3, 4, 0, 0)

	if got := v.ProjectOnto(UnitX().Scale(2)); !got.ApproxEqual(V4(3, 0, 0, 0), 1e-12) {
		t.Errorf("ProjectOnto = %v, want (3, 0, 0, 0)", got)
	}
	if got := v.ProjectOnto(Zero4()); got != Zero4() {
		t.Errorf("ProjectOnto(zero) = %v, want zero vector", got)
	}

	if got := v.Reflect(UnitY()); !got.ApproxEqual(V4(3, -4, 0, 0), 1e-12) {
		t.Errorf("Reflect = %v, want (3, -4, 0, 0)", got)
	}
	// Non-unit normals scale the reflected component.
	if got := v.Reflect(UnitY().Scale(2)); !got.ApproxEqual(V4(3, -28, 0, 0), 1e-12) {
		t.Errorf("Reflect(non-unit) = %v, want (3, -28, 0, 0)", got)
	}
}

func TestVec4ArrayRoundTrip(t *testing.T) {
	v := V4(1, -2, 3.5, -4.25)
	if got := V4FromArray(v.Array()); got != v {
		t.Errorf("got %v, want %v", got, v)
	}
	if a := v.Array(); a != [4]float64{1, -2, 3.5, -4.25} {
		t.Errorf("Array = %v", a)
	}
}

func TestRandomUnit(t *testing.T) {
	src := NewNormalSource(42)
	var sum Vec4
	const n = 2000
	for range n {
		v := RandomUnit(src)
		if !v.IsNormalized(1e-9) {
			t.Fatalf("RandomUnit length = %v, want 1", v.Len())
		}
		sum = sum.Add(v)
	}
	// The mean of a uniform distribution on S³ is the origin.
	if mean := sum.Div(n); mean.Len() > 0.1 {
		t.Errorf("mean = %v, want near origin", mean)
	}

	// Same seed, same sequence.
	a, b := NewNormalSource(7), NewNormalSource(7)
	for range 10 {
		if va, vb := RandomUnit(a), RandomUnit(b); va != vb {
			t.Fatalf("seeded sources diverged: %v != %v", va, vb)
		}
	}
}

type zeroSource struct{ draws int }

func (z *zeroSource) Rand() float64 {
	z.draws++
	return 0
}

func TestRandomUnitDegenerate(t *testing.T) {
	src := &zeroSource{}
	if got := RandomUnit(src); got != UnitX() {
		t.Errorf("got %v, want UnitX", got)
	}
	if src.draws != 4*maxUnitDraws {
		t.Errorf("draws = %d, want %d", src.draws, 4*maxUnitDraws)
	}
}
