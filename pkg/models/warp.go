package models

import (
	"math"

	"github.com/taigrr/tesser/pkg/math4d"
)

// warpEpsilon is the length below which WarpHypersphere treats a point as the
// origin.
const warpEpsilon = 1e-8

// WarpHypersphere pushes p radially onto the 3-sphere of the given radius.
// The origin maps to (radius, 0, 0, 0).
func WarpHypersphere(p math4d.Vec4, radius float64) math4d.Vec4 {
	l := p.Len()
	if l < warpEpsilon {
		return math4d.V4(radius, 0, 0, 0)
	}
	return p.Scale(radius / l)
}

// WarpHypersphereMesh applies WarpHypersphere to every vertex of m.
func WarpHypersphereMesh(m *Mesh, radius float64) {
	m.Warp(func(v math4d.Vec4) math4d.Vec4 {
		return WarpHypersphere(v, radius)
	})
}

// WarpHypertetra pulls p toward the nearest pentatope vertex with strength
// 1/(1+2d), where d is the distance to that vertex.
func WarpHypertetra(p math4d.Vec4) math4d.Vec4 {
	nearest := pentatopeVertices[0]
	best := p.DistanceSq(nearest)
	for _, v := range pentatopeVertices[1:] {
		if d := p.DistanceSq(v); d < best {
			nearest, best = v, d
		}
	}

	strength := 1 / (1 + 2*math.Sqrt(best))
	return p.Lerp(nearest, strength)
}

// WarpHypertetraMesh applies WarpHypertetra to every vertex of m.
func WarpHypertetraMesh(m *Mesh) {
	m.Warp(WarpHypertetra)
}
