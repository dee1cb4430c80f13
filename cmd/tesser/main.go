// tesser - Terminal 4D Polytope Viewer
// Rotate 4D polytopes with rotors and view their 3D projection in your terminal.
//
// Controls:
//
//	W/S         - Spin in the XY plane
//	A/D         - Spin in the XZ plane
//	Q/E         - Spin in the YZ plane
//	I/K         - Spin in the XW plane
//	J/L         - Spin in the YW plane
//	U/O         - Spin in the ZW plane
//	Space       - Apply random impulse
//	R           - Reset rotation
//	P           - Cycle projection mode
//	[ / ]       - Move the slice hyperplane (slice) or viewer W (perspective)
//	+/-         - Adjust zoom
//	X           - Toggle coordinate axes
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/models"
	"github.com/taigrr/tesser/pkg/project"
	"github.com/taigrr/tesser/pkg/render"
)

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// scene is everything needed to draw one frame.
type scene struct {
	mesh       *models.Mesh
	params     project.Params
	background render.Color
}

func newScene(cfg Config) (*scene, error) {
	mesh, err := cfg.Mesh()
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	bg, err := parseRGB(cfg.Background)
	if err != nil {
		return nil, err
	}
	return &scene{mesh: mesh, params: params, background: bg}, nil
}

func run(cfg Config) error {
	sc, err := newScene(cfg)
	if err != nil {
		return err
	}

	if cfg.Export != "" || cfg.PNG != "" {
		return runHeadless(cfg, sc)
	}
	return runInteractive(cfg, sc)
}

// runHeadless writes the configured outputs at the initial orientation.
func runHeadless(cfg Config, sc *scene) error {
	rotor := math4d.RotorFromAngles(cfg.AnglesDeg.Radians())

	if cfg.Export != "" {
		exporter := models.NewGLTFExporter()
		exporter.Params = sc.params
		exporter.Rotor = rotor
		if err := exporter.SaveGLB(sc.mesh, cfg.Export); err != nil {
			return fmt.Errorf("export %s: %w", cfg.Export, err)
		}
		fmt.Printf("Wrote %s (%d vertices, %d edges)\n", cfg.Export, sc.mesh.VertexCount(), sc.mesh.EdgeCount())
	}

	if cfg.PNG != "" {
		fb := render.NewFramebuffer(cfg.Width, cfg.Height)
		camera := render.NewCamera()
		camera.SetAspectRatio(float64(cfg.Width) / float64(cfg.Height))
		wf := render.NewWireframe(camera, fb)
		wf.Params = sc.params
		wf.Background = sc.background

		fb.Clear(sc.background)
		drawn := wf.DrawMesh(sc.mesh, rotor)
		if err := fb.SavePNG(cfg.PNG); err != nil {
			return err
		}
		total, unit := primitiveCount(sc.mesh)
		fmt.Printf("Wrote %s (%d of %d %s visible)\n", cfg.PNG, drawn, total, unit)
	}
	return nil
}

// primitiveCount returns what DrawMesh counts for mesh: edges, or points
// when the mesh has none.
func primitiveCount(mesh *models.Mesh) (int, string) {
	if mesh.EdgeCount() == 0 {
		return mesh.VertexCount(), "points"
	}
	return mesh.EdgeCount(), "edges"
}

// planeKeys maps a key to the plane it spins and the direction.
var planeKeys = []struct {
	neg, pos string
	plane    math4d.Plane
}{
	{"w", "s", math4d.PlaneXY},
	{"a", "d", math4d.PlaneXZ},
	{"q", "e", math4d.PlaneYZ},
	{"i", "k", math4d.PlaneXW},
	{"j", "l", math4d.PlaneYW},
	{"u", "o", math4d.PlaneZW},
}

const (
	torqueStrength = 3.0
	sliceStep      = 0.05
	zoomStep       = 0.5
	minZoom        = 1.5
	maxZoom        = 20.0
	axesLength     = 1.5
)

// viewer holds the interactive UI state (not library code).
type viewer struct {
	cfg      Config
	scene    *scene
	rotation *RotationState
	torque   math4d.Angles6
	rng      *rand.Rand

	fb        *render.Framebuffer
	camera    *render.Camera
	wireframe *render.Wireframe
	hud       *HUD
	showHUD   bool
	showAxes  bool
	drawn     int
}

func newViewer(cfg Config, sc *scene, width, height int) *viewer {
	fb := render.NewFramebuffer(width, height*2)
	camera := render.NewCamera()
	camera.SetDistance(4)
	camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))

	wf := render.NewWireframe(camera, fb)
	wf.Params = sc.params
	wf.Background = sc.background

	return &viewer{
		cfg:       cfg,
		scene:     sc,
		rotation:  NewRotationState(cfg.FPS, cfg.AnglesDeg.Radians(), cfg.SpinDeg.Radians()),
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		fb:        fb,
		camera:    camera,
		wireframe: wf,
		hud:       NewHUD(shapeLabel(cfg), sc.mesh.VertexCount(), sc.mesh.EdgeCount()),
	}
}

// resize matches the framebuffer to a terminal of width x height cells.
func (v *viewer) resize(width, height int) {
	v.fb.Resize(width, height*2)
	if v.fb.Height > 0 {
		v.camera.SetAspectRatio(float64(v.fb.Width) / float64(v.fb.Height))
	}
}

// handleKey applies a key press. It returns false when the viewer should quit.
func (v *viewer) handleKey(ev uv.KeyPressEvent) bool {
	for _, k := range planeKeys {
		switch {
		case ev.MatchString(k.neg):
			v.torque = v.torque.With(k.plane, -torqueStrength)
			return true
		case ev.MatchString(k.pos):
			v.torque = v.torque.With(k.plane, torqueStrength)
			return true
		}
	}

	params := &v.wireframe.Params
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return false
	case ev.MatchString("space"):
		v.rotation.RandomImpulse(v.rng, 1.5)
	case ev.MatchString("r"):
		v.rotation.Reset()
		v.torque = math4d.Angles6{}
		v.camera.SetDistance(4)
	case ev.MatchString("p"):
		params.Mode = params.Mode.Next()
	case ev.MatchString("["):
		v.nudgeW(params, -sliceStep)
	case ev.MatchString("]"):
		v.nudgeW(params, sliceStep)
	case ev.MatchString("+", "="):
		v.camera.Zoom(-zoomStep, minZoom, maxZoom)
	case ev.MatchString("-", "_"):
		v.camera.Zoom(zoomStep, minZoom, maxZoom)
	case ev.MatchString("x"):
		v.showAxes = !v.showAxes
	case ev.MatchString("?"), ev.MatchString("shift+/"):
		v.showHUD = !v.showHUD
	}
	return true
}

// nudgeW moves the slice hyperplane in slice mode and the viewer otherwise.
func (v *viewer) nudgeW(params *project.Params, delta float64) {
	if params.Mode == project.ModeSlice {
		params.SliceW += delta
		return
	}
	params.ViewerW += delta
}

func (v *viewer) handleKeyRelease(ev uv.KeyReleaseEvent) {
	for _, k := range planeKeys {
		if ev.MatchString(k.neg) || ev.MatchString(k.pos) {
			v.torque = v.torque.With(k.plane, 0)
		}
	}
}

// step advances the simulation by dt seconds and redraws the framebuffer.
func (v *viewer) step(dt float64) {
	// Apply input torque and decay it (key release events unreliable)
	v.rotation.ApplyImpulse(v.torque.Scale(dt))
	v.torque = v.torque.Scale(0.9)
	v.rotation.Update(dt)

	v.fb.Clear(v.scene.background)
	v.drawn = v.wireframe.DrawMesh(v.scene.mesh, v.rotation.Rotor())
	if v.showAxes {
		v.wireframe.DrawAxes(axesLength)
	}
}

func runInteractive(cfg Config, sc *scene) error {
	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	v := newViewer(cfg, sc, width, height)

	// Context for clean shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				v.resize(width, height)
			case uv.KeyPressEvent:
				if !v.handleKey(ev) {
					return nil
				}
			case uv.KeyReleaseEvent:
				v.handleKeyRelease(ev)
			}

		case now := <-ticker.C:
			dt := min(now.Sub(lastFrame).Seconds(), 0.1)
			lastFrame = now

			v.step(dt)

			// Display
			term.Draw(v.fb)
			v.hud.UpdateFPS()
			if v.showHUD {
				v.hud.Draw(term, v.wireframe.Params, v.drawn, v.rotation.Angles())
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// shapeLabel returns a display name for the configured shape.
func shapeLabel(cfg Config) string {
	if cfg.Warp == "" || cfg.Warp == "none" {
		return cfg.Shape
	}
	return cfg.Warp + " " + cfg.Shape
}
