package math4d

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of vectors handed to one goroutine by
// TransformParallel when the caller passes a non-positive chunk size.
const DefaultChunkSize = 4096

// TransformAll writes f(src[i]) to dst[i] for every i in src.
// dst must be at least as long as src; dst and src may be the same slice.
func TransformAll(dst, src []Vec4, f func(Vec4) Vec4) {
	_ = dst[:len(src)]
	for i, v := range src {
		dst[i] = f(v)
	}
}

// TransformParallel is TransformAll split into chunks of the given size and
// run on at most GOMAXPROCS goroutines. Each element is computed exactly as
// TransformAll would, so the output is identical. Cancellation is checked
// before each chunk starts; the returned error is ctx.Err() in that case.
func TransformParallel(ctx context.Context, dst, src []Vec4, f func(Vec4) Vec4, chunk int) error {
	_ = dst[:len(src)]
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	if len(src) <= chunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		TransformAll(dst, src, f)
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < len(src); start += chunk {
		end := min(start+chunk, len(src))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			TransformAll(dst[start:end], src[start:end], f)
			return nil
		})
	}
	return g.Wait()
}

// RotateAll rotates every vector of src into dst.
func (r Rotor) RotateAll(dst, src []Vec4) {
	TransformAll(dst, src, r.Rotate)
}

// TransformAll multiplies every vector of src by m into dst.
func (m Mat4) TransformAll(dst, src []Vec4) {
	TransformAll(dst, src, m.MulVec4)
}
