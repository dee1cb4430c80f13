package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/project"
)

// ErrEmptyMesh is returned when a mesh has nothing to export.
var ErrEmptyMesh = errors.New("mesh has no visible geometry")

// GLTFExporter projects 4D meshes to 3D and writes them as glTF line
// primitives, or point primitives for meshes without edges. Vertex colors carry the rotated w coordinate as a blue (low w)
// to red (high w) ramp.
type GLTFExporter struct {
	Params project.Params
	Rotor  math4d.Rotor
}

// NewGLTFExporter creates an exporter with the default projection and no
// rotation.
func NewGLTFExporter() *GLTFExporter {
	return &GLTFExporter{
		Params: project.DefaultParams(),
		Rotor:  math4d.IdentityRotor(),
	}
}

// Document builds a glTF document holding mesh as a single line primitive.
// Edges with an endpoint outside a slice projection are dropped. A mesh
// without edges becomes a point primitive of its visible vertices.
func (e *GLTFExporter) Document(mesh *Mesh) (*gltf.Document, error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}

	rotated := make([]math4d.Vec4, len(mesh.Vertices))
	e.Rotor.RotateAll(rotated, mesh.Vertices)
	projected := e.Params.ProjectBatch(nil, rotated)
	if len(mesh.Edges) == 0 {
		return pointDocument(mesh.Name, rotated, projected)
	}

	indices := make([]uint32, 0, 2*len(mesh.Edges))
	for _, edge := range mesh.Edges {
		if !projected[edge[0]].Visible || !projected[edge[1]].Visible {
			continue
		}
		indices = append(indices, uint32(edge[0]), uint32(edge[1]))
	}
	if len(indices) == 0 {
		return nil, ErrEmptyMesh
	}

	positions := make([][3]float32, len(projected))
	for i, p := range projected {
		positions[i] = p.Point.Float32s()
	}

	doc := gltf.NewDocument()
	posAccessor := modeler.WritePosition(doc, positions)
	colorAccessor := modeler.WriteColor(doc, wColors(rotated))
	indexAccessor := modeler.WriteIndices(doc, indices)

	doc.Meshes = []*gltf.Mesh{{
		Name: mesh.Name,
		Primitives: []*gltf.Primitive{{
			Mode:    gltf.PrimitiveLines,
			Indices: gltf.Index(indexAccessor),
			Attributes: map[string]int{
				gltf.POSITION: posAccessor,
				gltf.COLOR_0:  colorAccessor,
			},
		}},
	}}
	addMeshNode(doc, mesh.Name)

	return doc, nil
}

// pointDocument writes the visible vertices as a point primitive.
func pointDocument(name string, rotated []math4d.Vec4, projected []project.Result) (*gltf.Document, error) {
	all := wColors(rotated)
	var positions [][3]float32
	var colors [][3]uint8
	for i, p := range projected {
		if !p.Visible {
			continue
		}
		positions = append(positions, p.Point.Float32s())
		colors = append(colors, all[i])
	}
	if len(positions) == 0 {
		return nil, ErrEmptyMesh
	}

	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Mode: gltf.PrimitivePoints,
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.COLOR_0:  modeler.WriteColor(doc, colors),
			},
		}},
	}}
	addMeshNode(doc, name)
	return doc, nil
}

func addMeshNode(doc *gltf.Document, name string) {
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
}

// SaveGLB writes mesh to path as binary glTF.
func (e *GLTFExporter) SaveGLB(mesh *Mesh, path string) error {
	doc, err := e.Document(mesh)
	if err != nil {
		return fmt.Errorf("build gltf %q: %w", path, err)
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// wColors maps each vertex's w onto a blue to red ramp across the range of w.
func wColors(vertices []math4d.Vec4) [][3]uint8 {
	depths := WDepths(nil, vertices)
	colors := make([][3]uint8, len(vertices))
	for i, t := range depths {
		r, g, b := WRamp(t)
		colors[i] = [3]uint8{r, g, b}
	}
	return colors
}

// WDepths normalizes the w coordinate of each vertex to [0, 1] across the
// range of w in vertices, reusing dst when it has room. When every w is
// equal the depth is 0.5.
func WDepths(dst []float64, vertices []math4d.Vec4) []float64 {
	if cap(dst) < len(vertices) {
		dst = make([]float64, len(vertices))
	}
	dst = dst[:len(vertices)]

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		lo, hi = min(lo, v.W), max(hi, v.W)
	}
	for i, v := range vertices {
		t := 0.5
		if hi > lo {
			t = (v.W - lo) / (hi - lo)
		}
		dst[i] = t
	}
	return dst
}

// WRamp returns the color for normalized depth t in [0, 1]: blue at 0,
// through violet, to red at 1.
func WRamp(t float64) (r, g, b uint8) {
	t = max(0, min(1, t))
	return uint8(math.Round(255 * t)), 64, uint8(math.Round(255 * (1 - t)))
}

// LoadGLBLines reads the line primitives of a glTF/GLB file, as written by
// SaveGLB. Edges are returned as index pairs into the point slice.
func LoadGLBLines(path string) ([]project.Point3, []Edge, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	var points []project.Point3
	var edges []Edge
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveLines {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok || prim.Indices == nil {
				continue
			}

			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
			}

			base := len(points)
			points = append(points, positions...)
			for i := 0; i+1 < len(indices); i += 2 {
				edges = append(edges, Edge{base + indices[i], base + indices[i+1]})
			}
		}
	}

	if len(edges) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyMesh)
	}
	return points, edges, nil
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]project.Point3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]project.Point3, accessor.Count)
	for i := range result {
		offset := start + i*stride
		result[i] = project.P3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}
	return result, nil
}

// readIndices reads scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[start+i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		default:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorBytes returns the embedded buffer behind an accessor together with
// the first element offset and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.URI != "" && buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start = bufferView.ByteOffset + accessor.ByteOffset
	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	if accessor.Count > 0 {
		if end := start + (accessor.Count-1)*stride + elemSize; end > len(buffer.Data) {
			return nil, 0, 0, fmt.Errorf("accessor overruns buffer: %d > %d", end, len(buffer.Data))
		}
	}
	return buffer.Data, start, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
