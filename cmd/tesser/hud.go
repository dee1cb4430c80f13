package main

import (
	"fmt"
	"math"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/project"
	"github.com/taigrr/tesser/pkg/render"
)

// HUD renders an overlay with shape info and the current orientation.
type HUD struct {
	label     string
	vertices  int
	edges     int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(label string, vertices, edges int) *HUD {
	return &HUD{
		label:    label,
		vertices: vertices,
		edges:    edges,
		fpsTime:  time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

var (
	hudBg    = render.RGB(0, 0, 0)
	hudStyle = uv.Style{Fg: render.RGB(230, 230, 230), Bg: hudBg}
	fpsStyle = uv.Style{Fg: render.RGB(80, 230, 120), Bg: hudBg}
	dimStyle = uv.Style{Fg: render.RGB(230, 200, 80), Bg: hudBg}
)

// Draw writes the HUD rows onto the first and last lines of scr.
func (h *HUD) Draw(scr uv.Screen, params project.Params, drawn int, angles math4d.Angles6) {
	bounds := scr.Bounds()
	width := bounds.Dx()
	top, bottom := bounds.Min.Y, bounds.Max.Y-1

	// Top left: FPS
	render.DrawText(scr, bounds.Min.X, top, fmt.Sprintf(" %.0f FPS ", h.fps), fpsStyle)

	// Top middle: shape
	title := " " + h.label + " "
	render.DrawText(scr, bounds.Min.X+max((width-len(title))/2, 0), top, title, hudStyle)

	// Top right: counts
	counts := fmt.Sprintf(" %d/%d edges, %d verts ", drawn, h.edges, h.vertices)
	if h.edges == 0 {
		counts = fmt.Sprintf(" %d/%d points ", drawn, h.vertices)
	}
	render.DrawText(scr, bounds.Min.X+max(width-len(counts), 0), top, counts, hudStyle)

	// Bottom: projection and angles
	render.DrawText(scr, bounds.Min.X, bottom, " "+projectionStatus(params)+" ", dimStyle)
	status := angleStatus(angles)
	render.DrawText(scr, bounds.Min.X+max(width-len(status), 0), bottom, status, hudStyle)
}

func projectionStatus(p project.Params) string {
	switch p.Mode {
	case project.ModePerspective:
		return fmt.Sprintf("%s d=%.2f w=%+.2f", p.Mode, p.Distance, p.ViewerW)
	case project.ModeSlice:
		return fmt.Sprintf("%s w=%+.2f ±%.2f", p.Mode, p.SliceW, p.SliceThickness)
	case project.ModeOblique:
		return fmt.Sprintf("%s shear=(%.2f, %.2f, %.2f)", p.Mode, p.ShearX, p.ShearY, p.ShearZ)
	default:
		return p.Mode.String()
	}
}

// angleStatus formats the plane angles in degrees, wrapped to [0, 360).
func angleStatus(a math4d.Angles6) string {
	s := ""
	for i, v := range a.Array() {
		deg := math.Mod(v*180/math.Pi, 360)
		if deg < 0 {
			deg += 360
		}
		s += fmt.Sprintf("%s %3.0f ", math4d.Plane(i), deg)
	}
	return s
}
