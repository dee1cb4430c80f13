package models

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/taigrr/tesser/pkg/math4d"
)

// Resolution limits for the sampled manifolds.
const (
	MinResolution     = 4
	MaxResolution     = 256
	DefaultResolution = 12
)

// ErrUnknownShape is returned by ByName for unregistered shape names.
var ErrUnknownShape = errors.New("unknown shape")

// Tesseract returns the 4-cube with vertices at (±1, ±1, ±1, ±1).
// Vertex i has coordinate k positive when bit k of i is set; edges join
// vertices whose indices differ in exactly one bit.
func Tesseract() *Mesh {
	m := NewMesh("tesseract")
	for i := range 16 {
		m.AddVertex(math4d.V4(bitSign(i, 0), bitSign(i, 1), bitSign(i, 2), bitSign(i, 3)))
	}
	for i := range 16 {
		for bit := range 4 {
			if j := i ^ (1 << bit); j > i {
				m.AddEdge(i, j)
			}
		}
	}
	m.CalculateBounds()
	return m
}

func bitSign(i, bit int) float64 {
	if i&(1<<bit) != 0 {
		return 1
	}
	return -1
}

// Tetrahedron returns a regular tetrahedron with unit edges in the w = 0
// hyperplane, centered on the origin.
func Tetrahedron() *Mesh {
	h := math.Sqrt(2.0 / 3.0)
	r := 1 / math.Sqrt(3)

	m := NewMesh("tetrahedron")
	m.AddVertex(math4d.V4(0, 3*h/4, 0, 0))
	m.AddVertex(math4d.V4(0, -h/4, r, 0))
	m.AddVertex(math4d.V4(-r*math.Sqrt(3)/2, -h/4, -r/2, 0))
	m.AddVertex(math4d.V4(r*math.Sqrt(3)/2, -h/4, -r/2, 0))
	connectAll(m)
	m.CalculateBounds()
	return m
}

// Pentatope returns the regular 5-cell inscribed in the unit 3-sphere.
func Pentatope() *Mesh {
	k := 1 / math.Sqrt(5)
	verts := []math4d.Vec4{
		math4d.V4(1, 1, 1, -k),
		math4d.V4(1, -1, -1, -k),
		math4d.V4(-1, 1, -1, -k),
		math4d.V4(-1, -1, 1, -k),
		math4d.V4(0, 0, 0, 4*k),
	}

	m := NewMesh("pentatope")
	for _, v := range verts {
		m.AddVertex(v.Normalize())
	}
	connectAll(m)
	m.CalculateBounds()
	return m
}

var pentatopeVertices = Pentatope().Vertices

// PentatopeVertices returns the vertices of Pentatope.
func PentatopeVertices() []math4d.Vec4 {
	return slices.Clone(pentatopeVertices)
}

// SixteenCell returns the 16-cell: the eight unit axis vectors, each joined
// to every other except its antipode.
func SixteenCell() *Mesh {
	m := NewMesh("16-cell")
	for axis := range 4 {
		for _, s := range []float64{1, -1} {
			var a [4]float64
			a[axis] = s
			m.AddVertex(math4d.V4FromArray(a))
		}
	}
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			if m.Vertices[i].Add(m.Vertices[j]).IsZero(math4d.DefaultVecEpsilon) {
				continue
			}
			m.AddEdge(i, j)
		}
	}
	m.CalculateBounds()
	return m
}

// connectAll joins every pair of vertices.
func connectAll(m *Mesh) {
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			m.AddEdge(i, j)
		}
	}
}

func clampResolution(resolution int) int {
	return min(max(resolution, MinResolution), MaxResolution)
}

// Hypersphere samples the unit 3-sphere in Hopf coordinates
//
//	(cos ψ cos θ, cos ψ sin θ, sin ψ cos φ, sin ψ sin φ)
//
// with ψ in [0, π/2] and θ, φ in [0, 2π). Edges follow the θ and φ circles
// and the ψ meridians.
func Hypersphere(resolution int) *Mesh {
	resolution = clampResolution(resolution)
	psiSteps := max(resolution/2, 2)
	thetaSteps, phiSteps := resolution, resolution

	m := NewMesh("hypersphere")
	index := func(ip, it, iphi int) int {
		return (ip*thetaSteps+it)*phiSteps + iphi
	}

	for ip := range psiSteps {
		psi := math.Pi / 2 * float64(ip) / float64(psiSteps-1)
		sinPsi, cosPsi := math.Sincos(psi)
		for it := range thetaSteps {
			sinTheta, cosTheta := math.Sincos(2 * math.Pi * float64(it) / float64(thetaSteps))
			for iphi := range phiSteps {
				sinPhi, cosPhi := math.Sincos(2 * math.Pi * float64(iphi) / float64(phiSteps))
				m.AddVertex(math4d.V4(cosPsi*cosTheta, cosPsi*sinTheta, sinPsi*cosPhi, sinPsi*sinPhi))
			}
		}
	}

	for ip := range psiSteps {
		for it := range thetaSteps {
			for iphi := range phiSteps {
				i := index(ip, it, iphi)
				// The θ circle collapses at ψ = π/2 and the φ circle at ψ = 0.
				if ip < psiSteps-1 {
					m.AddEdge(i, index(ip, (it+1)%thetaSteps, iphi))
					m.AddEdge(i, index(ip+1, it, iphi))
				}
				if ip > 0 {
					m.AddEdge(i, index(ip, it, (iphi+1)%phiSteps))
				}
			}
		}
	}

	m.CalculateBounds()
	return m
}

// CliffordTorus samples the flat torus
//
//	(r cos u, r sin u, r cos v, r sin v), r = 1/√2
//
// on a resolution × resolution grid with wrap-around edges. It lies on the
// unit 3-sphere.
func CliffordTorus(resolution int) *Mesh {
	resolution = clampResolution(resolution)
	r := 1 / math.Sqrt2

	m := NewMesh("clifford-torus")
	for iu := range resolution {
		sinU, cosU := math.Sincos(2 * math.Pi * float64(iu) / float64(resolution))
		for iv := range resolution {
			sinV, cosV := math.Sincos(2 * math.Pi * float64(iv) / float64(resolution))
			m.AddVertex(math4d.V4(r*cosU, r*sinU, r*cosV, r*sinV))
		}
	}

	for iu := range resolution {
		for iv := range resolution {
			i := iu*resolution + iv
			m.AddEdge(i, ((iu+1)%resolution)*resolution+iv)
			m.AddEdge(i, iu*resolution+(iv+1)%resolution)
		}
	}

	m.CalculateBounds()
	return m
}

var generators = map[string]func(resolution int) *Mesh{
	"tesseract":      func(int) *Mesh { return Tesseract() },
	"tetrahedron":    func(int) *Mesh { return Tetrahedron() },
	"pentatope":      func(int) *Mesh { return Pentatope() },
	"16-cell":        func(int) *Mesh { return SixteenCell() },
	"hypersphere":    Hypersphere,
	"clifford-torus": CliffordTorus,
	"klein-bottle":   KleinBottle,
	"wave":           Wave,
	"fractal":        Fractal,
	"crystal":        Crystal,
}

// Names returns the registered shape names, sorted.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName generates the named shape. Resolution only affects sampled
// manifolds and is clamped to [MinResolution, MaxResolution].
func ByName(name string, resolution int) (*Mesh, error) {
	gen, ok := generators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownShape, name, strings.Join(Names(), ", "))
	}
	return gen(resolution), nil
}
