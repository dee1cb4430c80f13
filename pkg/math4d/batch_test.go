package math4d

import (
	"context"
	"errors"
	"testing"
)

func randomVectors(n int, seed uint64) []Vec4 {
	src := NewNormalSource(seed)
	out := make([]Vec4, n)
	for i := range out {
		out[i] = Vec4{src.Rand(), src.Rand(), src.Rand(), src.Rand()}
	}
	return out
}

func TestTransformParallelMatchesScalar(t *testing.T) {
	src := randomVectors(10_000, 9)
	r := RotorFromEuler6(0.3, -0.7, 1.1, 0.2, 0.5, -1.4)

	tests := []struct {
		name  string
		chunk int
	}{
		{"default chunk", 0},
		{"small chunk", 7},
		{"uneven chunk", 333},
		{"single chunk", len(src)},
	}

	want := make([]Vec4, len(src))
	TransformAll(want, src, r.Rotate)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := make([]Vec4, len(src))
			if err := TransformParallel(context.Background(), got, src, r.Rotate, tc.chunk); err != nil {
				t.Fatalf("TransformParallel: %v", err)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestTransformParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := randomVectors(100, 1)
	dst := make([]Vec4, len(src))
	err := TransformParallel(ctx, dst, src, UnitX().Add, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestTransformInPlace(t *testing.T) {
	vs := []Vec4{UnitX(), UnitY(), UnitZ(), UnitW()}
	ScaleUniform(2).TransformAll(vs, vs)
	for i, v := range vs {
		if v.Len() != 2 {
			t.Errorf("vs[%d] = %v, want length 2", i, v)
		}
	}
}

func TestRotateAllMatchesMatrix(t *testing.T) {
	src := randomVectors(256, 3)
	r := RotorFromEuler6(1, 2, 3, 4, 5, 6)

	viaRotor := make([]Vec4, len(src))
	viaMatrix := make([]Vec4, len(src))
	r.RotateAll(viaRotor, src)
	r.ToMatrix().TransformAll(viaMatrix, src)

	for i := range src {
		if !viaRotor[i].ApproxEqual(viaMatrix[i], 1e-9) {
			t.Fatalf("element %d: rotor %v, matrix %v", i, viaRotor[i], viaMatrix[i])
		}
	}
}
