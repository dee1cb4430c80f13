package main

import (
	"math"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/models"
	"github.com/taigrr/tesser/pkg/project"
	"github.com/taigrr/tesser/pkg/render"
)

func newTestViewer(t *testing.T) *viewer {
	t.Helper()
	cfg := defaultConfig()
	cfg.SpinDeg = Rot6Deg{}
	sc, err := newScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return newViewer(cfg, sc, 40, 12)
}

func key(s string) uv.KeyPressEvent {
	r := []rune(s)[0]
	return uv.KeyPressEvent{Code: r, Text: s}
}

func TestRotationState(t *testing.T) {
	initial := math4d.Angles6{XY: 0.5}
	r := NewRotationState(60, initial, math4d.Angles6{ZW: 1})

	if got := r.Angles(); got != initial {
		t.Fatalf("got %+v, want %+v", got, initial)
	}

	r.Update(0.5)
	if got := r.Angles().ZW; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("spin: got zw %v, want 0.5", got)
	}

	r.ApplyImpulse(math4d.Angles6{XW: 0.1})
	for range 600 {
		r.Update(0)
	}
	if v := r.Planes[math4d.PlaneXW].Velocity; math.Abs(v) > 1e-3 {
		t.Errorf("velocity did not decay: %v", v)
	}
	if a := r.Angles().XW; a <= 0.1 {
		t.Errorf("impulse moved xw to %v, want > 0.1", a)
	}

	r.RandomImpulse(rand.New(rand.NewPCG(1, 2)), 1)
	r.Reset()
	if got := r.Angles(); got != initial {
		t.Errorf("after reset got %+v, want %+v", got, initial)
	}
	if !r.Rotor().SameRotation(math4d.RotorFromAngles(initial), 1e-9) {
		t.Error("rotor does not match initial angles")
	}
}

func TestViewerKeys(t *testing.T) {
	v := newTestViewer(t)

	if !v.handleKey(key("w")) {
		t.Fatal("w quit the viewer")
	}
	if got := v.torque.XY; got != -torqueStrength {
		t.Errorf("w torque = %v, want %v", got, -torqueStrength)
	}
	v.handleKeyRelease(uv.KeyReleaseEvent{Code: 'w', Text: "w"})
	if got := v.torque.XY; got != 0 {
		t.Errorf("after release torque = %v, want 0", got)
	}

	v.handleKey(key("l"))
	if got := v.torque.YW; got != torqueStrength {
		t.Errorf("l torque = %v, want %v", got, torqueStrength)
	}

	for range 4 {
		v.handleKey(key("p"))
	}
	if got := v.wireframe.Params.Mode; got != project.ModeSlice {
		t.Fatalf("mode after 4 presses = %v, want slice", got)
	}
	v.handleKey(key("["))
	if got := v.wireframe.Params.SliceW; math.Abs(got+sliceStep) > 1e-12 {
		t.Errorf("slice w = %v, want %v", got, -sliceStep)
	}
	v.handleKey(key("p"))
	if got := v.wireframe.Params.Mode; got != project.ModePerspective {
		t.Errorf("mode wrap = %v, want perspective", got)
	}

	v.handleKey(key("?"))
	if !v.showHUD {
		t.Error("? did not toggle the HUD")
	}

	if v.handleKey(uv.KeyPressEvent{Code: uv.KeyEscape}) {
		t.Error("escape did not quit")
	}
}

func TestViewerStep(t *testing.T) {
	v := newTestViewer(t)
	v.step(1.0 / 60)
	if v.drawn != v.scene.mesh.EdgeCount() {
		t.Errorf("drew %d edges, want %d", v.drawn, v.scene.mesh.EdgeCount())
	}

	v.resize(20, 5)
	if v.fb.Width != 20 || v.fb.Height != 10 {
		t.Errorf("framebuffer %dx%d, want 20x10", v.fb.Width, v.fb.Height)
	}
	v.step(1.0 / 60)
}

func TestHUDDraw(t *testing.T) {
	h := NewHUD("tesseract", 16, 32)
	scr := uv.NewScreenBuffer(80, 6)
	h.Draw(scr, project.DefaultParams(), 32, math4d.Angles6{})

	var bottom strings.Builder
	for x := range 12 {
		if c := scr.CellAt(x, 5); c != nil {
			bottom.WriteString(c.Content)
		}
	}
	if !strings.HasPrefix(bottom.String(), " perspective") {
		t.Errorf("bottom row starts %q, want perspective status", bottom.String())
	}
	if c := scr.CellAt(1, 0); c == nil || c.Content != "0" {
		t.Errorf("fps cell = %v, want 0", c)
	}
}

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.Export = filepath.Join(dir, "tesseract.glb")
	cfg.PNG = filepath.Join(dir, "tesseract.png")
	cfg.Width, cfg.Height = 64, 48

	if err := run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	points, edges, err := models.LoadGLBLines(cfg.Export)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if len(points) != 16 || len(edges) != 32 {
		t.Errorf("got %d points and %d edges, want 16 and 32", len(points), len(edges))
	}
}

func TestViewerAxes(t *testing.T) {
	hasRed := func(v *viewer) bool {
		for _, p := range v.fb.Pixels {
			if p == render.ColorRed {
				return true
			}
		}
		return false
	}

	v := newTestViewer(t)
	v.step(1.0 / 60)
	if hasRed(v) {
		t.Fatal("axes drawn before toggling")
	}

	v.handleKey(key("x"))
	if !v.showAxes {
		t.Fatal("x did not toggle the axes")
	}
	v.step(1.0 / 60)
	if !hasRed(v) {
		t.Error("x axis not drawn")
	}
}

func TestHUDDrawPoints(t *testing.T) {
	h := NewHUD("fractal", 36, 0)
	scr := uv.NewScreenBuffer(60, 3)
	h.Draw(scr, project.DefaultParams(), 30, math4d.Angles6{})

	var top strings.Builder
	for x := range 60 {
		if c := scr.CellAt(x, 0); c != nil {
			top.WriteString(c.Content)
		}
	}
	if !strings.Contains(top.String(), "30/36 points") {
		t.Errorf("top row %q, want point counts", top.String())
	}

	if n, unit := primitiveCount(models.Fractal(6)); n != 36 || unit != "points" {
		t.Errorf("primitiveCount = %d %s, want 36 points", n, unit)
	}
	if n, unit := primitiveCount(models.Tesseract()); n != 32 || unit != "edges" {
		t.Errorf("primitiveCount = %d %s, want 32 edges", n, unit)
	}
}
