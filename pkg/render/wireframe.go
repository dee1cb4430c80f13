package render

import (
	"context"
	"math"

	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/models"
	"github.com/taigrr/tesser/pkg/project"
)

// Wireframe renders rotated and projected 4D meshes as lines.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer

	// Params selects the 4D to 3D projection.
	Params project.Params
	// DepthColors colors each vertex by its rotated w; otherwise Color is used.
	DepthColors bool
	Color       Color
	// Background is the color faded toward for partially visible slice edges.
	Background Color

	// PointSize is the world-space size of the crosses drawn for meshes
	// without edges. Zero plots single pixels.
	PointSize float64

	rotated   []math4d.Vec4
	projected []project.Result
	depths    []float64
	colors    []Color
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera:      camera,
		fb:          fb,
		Params:      project.DefaultParams(),
		DepthColors: true,
		Color:       ColorWhite,
		Background:  ColorBlack,
		PointSize:   0.05,
	}
}

// Camera returns the camera used for the 3D to screen step.
func (w *Wireframe) Camera() *Camera {
	return w.camera
}

// DrawLine3D draws a line in 3D space and reports whether any of it
// reached the screen.
func (w *Wireframe) DrawLine3D(p1, p2 project.Point3, color Color) bool {
	return w.DrawLine3DGradient(p1, p2, color, color)
}

// DrawLine3DGradient draws a line in 3D space blending from c1 to c2.
// It returns false when an endpoint is outside the clip volume or the line
// misses the screen.
func (w *Wireframe) DrawLine3DGradient(p1, p2 project.Point3, c1, c2 Color) bool {
	// Project both endpoints
	x1, y1, _, ok1 := w.camera.toScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, ok2 := w.camera.toScreen(p2, w.fb.Width, w.fb.Height)
	if !ok1 || !ok2 {
		return false
	}

	t0, t1, ok := clipLine(x1, y1, x2, y2, -1, -1, float64(w.fb.Width), float64(w.fb.Height))
	if !ok {
		return false
	}
	dx, dy := x2-x1, y2-y1
	w.fb.DrawLineGradient(
		int(math.Round(x1+t0*dx)), int(math.Round(y1+t0*dy)),
		int(math.Round(x1+t1*dx)), int(math.Round(y1+t1*dy)),
		LerpColor(c1, c2, t0), LerpColor(c1, c2, t1),
	)
	return true
}

// clipLine clips the segment to the rectangle [xmin, xmax] x [ymin, ymax]
// with Liang-Barsky, returning the parameter range that survives.
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// DrawMesh rotates mesh by r, projects it to 3D with Params and draws every
// edge whose endpoints are both visible. Edges entirely outside the camera
// frustum are culled. A mesh without edges is drawn as points of PointSize.
// The mesh itself is left unchanged.
// Returns the number of edges (or points) that reached the screen.
func (w *Wireframe) DrawMesh(mesh *models.Mesh, r math4d.Rotor) int {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return 0
	}

	n := len(mesh.Vertices)
	w.rotated = growVec4(w.rotated, n)
	if n > math4d.DefaultChunkSize {
		// Background context never cancels, so there is no error to handle.
		_ = math4d.TransformParallel(context.Background(), w.rotated, mesh.Vertices, r.Rotate, 0)
	} else {
		r.RotateAll(w.rotated, mesh.Vertices)
	}
	w.projected = w.Params.ProjectBatch(w.projected, w.rotated)
	w.vertexColors()

	frustum := w.camera.Frustum()
	drawn := 0
	if len(mesh.Edges) == 0 {
		for i, p := range w.projected {
			if !p.Visible || !frustum.ContainsPoint(p.Point) {
				continue
			}
			if w.DrawPoint(p.Point, w.PointSize, LerpColor(w.Background, w.colors[i], p.Alpha)) {
				drawn++
			}
		}
		return drawn
	}
	for _, e := range mesh.Edges {
		a, b := w.projected[e[0]], w.projected[e[1]]
		if !a.Visible || !b.Visible {
			continue
		}
		if !frustum.IntersectBounds(BoundsOf(a.Point, b.Point)) {
			continue
		}
		ca := LerpColor(w.Background, w.colors[e[0]], a.Alpha)
		cb := LerpColor(w.Background, w.colors[e[1]], b.Alpha)
		if w.DrawLine3DGradient(a.Point, b.Point, ca, cb) {
			drawn++
		}
	}
	return drawn
}

// vertexColors fills w.colors for w.rotated.
func (w *Wireframe) vertexColors() {
	n := len(w.rotated)
	if cap(w.colors) < n {
		w.colors = make([]Color, n)
	}
	w.colors = w.colors[:n]

	if !w.DepthColors {
		for i := range w.colors {
			w.colors[i] = w.Color
		}
		return
	}

	w.depths = models.WDepths(w.depths, w.rotated)
	for i, t := range w.depths {
		w.colors[i] = WDepthColor(t)
	}
}

// WDepthColor returns the ramp color for normalized w depth t in [0, 1].
// It matches the vertex colors written by the glTF exporter.
func WDepthColor(t float64) Color {
	r, g, b := models.WRamp(t)
	return RGB(r, g, b)
}

func growVec4(s []math4d.Vec4, n int) []math4d.Vec4 {
	if cap(s) < n {
		return make([]math4d.Vec4, n)
	}
	return s[:n]
}

// DrawAxes draws the X, Y and Z axes from the origin in red, green and blue.
func (w *Wireframe) DrawAxes(length float64) {
	var origin project.Point3
	w.DrawLine3D(origin, project.P3(length, 0, 0), ColorRed)
	w.DrawLine3D(origin, project.P3(0, length, 0), ColorGreen)
	w.DrawLine3D(origin, project.P3(0, 0, length), ColorBlue)
}

// DrawPoint draws a point as a small cross, or a single pixel when size is
// zero. It reports whether anything reached the screen.
func (w *Wireframe) DrawPoint(pos project.Point3, size float64, color Color) bool {
	if size <= 0 {
		x, y, _, ok := w.camera.toScreen(pos, w.fb.Width, w.fb.Height)
		px, py := int(math.Round(x)), int(math.Round(y))
		if !ok || px < 0 || py < 0 || px >= w.fb.Width || py >= w.fb.Height {
			return false
		}
		w.fb.SetPixel(px, py, color)
		return true
	}

	h := size / 2
	drawn := w.DrawLine3D(pos.Sub(project.P3(h, 0, 0)), pos.Add(project.P3(h, 0, 0)), color)
	drawn = w.DrawLine3D(pos.Sub(project.P3(0, h, 0)), pos.Add(project.P3(0, h, 0)), color) || drawn
	drawn = w.DrawLine3D(pos.Sub(project.P3(0, 0, h)), pos.Add(project.P3(0, 0, h)), color) || drawn
	return drawn
}
