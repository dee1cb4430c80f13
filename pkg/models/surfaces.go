package models

import (
	"math"

	"github.com/taigrr/tesser/pkg/math4d"
)

// KleinBottle samples the figure-eight Klein bottle lifted into 4D
//
//	((a + b cos v) cos u, (a + b cos v) sin u, b sin v cos(u/2), b sin v sin(u/2))
//
// with a = 2, b = 1 and u, v in [0, 2π) on a resolution × resolution grid.
// Closing the u circle flips v, so the seam edges join v to -v.
func KleinBottle(resolution int) *Mesh {
	resolution = clampResolution(resolution)
	const a, b = 2.0, 1.0

	m := NewMesh("klein-bottle")
	for iu := range resolution {
		u := 2 * math.Pi * float64(iu) / float64(resolution)
		sinU, cosU := math.Sincos(u)
		sinHalf, cosHalf := math.Sincos(u / 2)
		for iv := range resolution {
			sinV, cosV := math.Sincos(2 * math.Pi * float64(iv) / float64(resolution))
			r := a + b*cosV
			m.AddVertex(math4d.V4(r*cosU, r*sinU, b*sinV*cosHalf, b*sinV*sinHalf))
		}
	}

	for iu := range resolution {
		for iv := range resolution {
			i := iu*resolution + iv
			m.AddEdge(i, iu*resolution+(iv+1)%resolution)
			if iu+1 < resolution {
				m.AddEdge(i, (iu+1)*resolution+iv)
			} else {
				m.AddEdge(i, (resolution-iv)%resolution)
			}
		}
	}

	m.CalculateBounds()
	return m
}

// waveSource is one term of the Wave interference field.
type waveSource struct {
	freq, ampY, ampW float64
	phaseX, phaseZ   float64
}

var waveSources = [...]waveSource{
	{1.0, 0.5, 0.3, 0, 0},
	{2.3, 0.25, 0.15, math.Pi * 0.5, math.Pi * 0.25},
	{3.7, 0.125, 0.1, math.Pi * 0.75, math.Pi * 0.6},
}

// WaveExtent is the half-width of the Wave grid in x and z.
const WaveExtent = 2.0

// Wave samples an interference field over a resolution × resolution grid
// spanning [-WaveExtent, WaveExtent] in x and z. Each source adds
// ampY·sin(φx)·cos(φz) to y and ampW·cos(φx+φz) to w, where
// φ = freq·π·coord + phase.
func Wave(resolution int) *Mesh {
	resolution = clampResolution(resolution)
	step := 2 * WaveExtent / float64(resolution-1)

	m := NewMesh("wave")
	for ix := range resolution {
		x := -WaveExtent + float64(ix)*step
		for iz := range resolution {
			z := -WaveExtent + float64(iz)*step
			var y, w float64
			for _, s := range waveSources {
				phX := s.freq*x*math.Pi + s.phaseX
				phZ := s.freq*z*math.Pi + s.phaseZ
				y += s.ampY * math.Sin(phX) * math.Cos(phZ)
				w += s.ampW * math.Cos(phX+phZ)
			}
			m.AddVertex(math4d.V4(x, y, z, w))
		}
	}

	for ix := range resolution {
		for iz := range resolution {
			i := ix*resolution + iz
			if iz+1 < resolution {
				m.AddEdge(i, i+1)
			}
			if ix+1 < resolution {
				m.AddEdge(i, i+resolution)
			}
		}
	}

	m.CalculateBounds()
	return m
}

const (
	fractalSeed   uint32 = 0xDEADBEEF
	fractalWarmUp        = 64
)

// xorshift32 advances the chaos game's generator.
func xorshift32(s uint32) uint32 {
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	return s
}

// Fractal plays the chaos game on the pentatope: starting at the origin it
// repeatedly moves halfway toward a pseudo-randomly chosen vertex, keeping
// resolution² points after a short warm-up. The result is a 4D Sierpinski
// point cloud with no edges. The sequence is deterministic.
func Fractal(resolution int) *Mesh {
	resolution = clampResolution(resolution)
	n := resolution * resolution

	m := NewMesh("fractal")
	m.Vertices = make([]math4d.Vec4, 0, n)

	var p math4d.Vec4
	seed := fractalSeed
	next := func() math4d.Vec4 {
		seed = xorshift32(seed)
		return p.Lerp(pentatopeVertices[seed%uint32(len(pentatopeVertices))], 0.5)
	}
	for range fractalWarmUp {
		p = next()
	}
	for range n {
		p = next()
		m.AddVertex(p)
	}

	m.CalculateBounds()
	return m
}

// Crystal samples the 24 edges of the 16-cell with resolution points each
// (endpoints included) and adds the 16 vertices (±½, ±½, ±½, ±½) of its dual
// tesseract. Consecutive samples along an edge are joined, as are dual
// vertices that differ in one coordinate.
func Crystal(resolution int) *Mesh {
	resolution = clampResolution(resolution)
	cell := SixteenCell()

	m := NewMesh("crystal")
	for _, e := range cell.Edges {
		a, b := cell.Vertices[e[0]], cell.Vertices[e[1]]
		base := len(m.Vertices)
		for i := range resolution {
			m.AddVertex(a.Lerp(b, float64(i)/float64(resolution-1)))
			if i > 0 {
				m.AddEdge(base+i-1, base+i)
			}
		}
	}

	dual := Tesseract()
	base := len(m.Vertices)
	for _, v := range dual.Vertices {
		m.AddVertex(v.Scale(0.5))
	}
	for _, e := range dual.Edges {
		m.AddEdge(base+e[0], base+e[1])
	}

	m.CalculateBounds()
	return m
}
