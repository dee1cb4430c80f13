// Package models provides the 4D wireframe meshes rendered and exported by
// Tesser: regular polytopes, sampled 3-manifolds and glTF interchange.
package models

import (
	"github.com/taigrr/tesser/pkg/math4d"
)

// Mesh is a 4D wireframe: vertices joined by straight edges.
type Mesh struct {
	Name     string
	Vertices []math4d.Vec4
	Edges    []Edge

	// Bounding box (calculated by generators and transforms)
	BoundsMin math4d.Vec4
	BoundsMax math4d.Vec4
}

// Edge joins two vertices by index into Mesh.Vertices.
type Edge [2]int

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math4d.Vec4, 0),
		Edges:    make([]Edge, 0),
	}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v math4d.Vec4) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddEdge joins vertices a and b.
func (m *Mesh) AddEdge(a, b int) {
	m.Edges = append(m.Edges, Edge{a, b})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math4d.Vec4 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math4d.Vec4 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the largest vertex distance from the origin.
func (m *Mesh) Radius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Len())
	}
	return r
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// Transform applies a linear map to all vertices.
func (m *Mesh) Transform(mat math4d.Mat4) {
	mat.TransformAll(m.Vertices, m.Vertices)
	m.CalculateBounds()
}

// Rotate applies a rotor to all vertices.
func (m *Mesh) Rotate(r math4d.Rotor) {
	r.RotateAll(m.Vertices, m.Vertices)
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it so the farthest
// vertex lies at radius.
func (m *Mesh) Normalize(radius float64) {
	if len(m.Vertices) == 0 {
		return
	}

	m.CalculateBounds()
	center := m.Center()
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Sub(center)
	}

	if r := m.Radius(); r > 0 {
		m.Transform(math4d.ScaleUniform(radius / r))
		return
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math4d.Vec4, len(m.Vertices)),
		Edges:     make([]Edge, len(m.Edges)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Edges, m.Edges)
	return clone
}

// SampleEdges returns resolution evenly spaced points along every edge,
// endpoints included. Shared vertices appear once per incident edge.
func (m *Mesh) SampleEdges(resolution int) []math4d.Vec4 {
	resolution = max(resolution, 2)

	points := make([]math4d.Vec4, 0, len(m.Edges)*resolution)
	for _, e := range m.Edges {
		a, b := m.Vertices[e[0]], m.Vertices[e[1]]
		for i := range resolution {
			t := float64(i) / float64(resolution-1)
			points = append(points, a.Lerp(b, t))
		}
	}
	return points
}

// Warp replaces every vertex with f(vertex).
func (m *Mesh) Warp(f func(math4d.Vec4) math4d.Vec4) {
	math4d.TransformAll(m.Vertices, m.Vertices, f)
	m.CalculateBounds()
}
