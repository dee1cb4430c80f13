package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/models"
	"github.com/taigrr/tesser/pkg/project"
)

// Rot6Deg is a set of plane angles in degrees for JSON (friendlier than radians).
type Rot6Deg struct {
	XY float64 `json:"xy"`
	XZ float64 `json:"xz"`
	YZ float64 `json:"yz"`
	XW float64 `json:"xw"`
	YW float64 `json:"yw"`
	ZW float64 `json:"zw"`
}

// Radians converts to plane angles in radians.
func (r Rot6Deg) Radians() math4d.Angles6 {
	const k = math.Pi / 180
	return math4d.Angles6{
		XY: r.XY * k, XZ: r.XZ * k, YZ: r.YZ * k,
		XW: r.XW * k, YW: r.YW * k, ZW: r.ZW * k,
	}
}

// Config is the viewer configuration. It can be loaded from JSON with
// -config; flags given on the command line override file values.
type Config struct {
	Shape      string `json:"shape"`
	Resolution int    `json:"resolution,omitempty"`
	// Warp is "", "hypersphere" or "hypertetra".
	Warp string `json:"warp,omitempty"`

	Projection     string     `json:"projection"`
	Distance       float64    `json:"distance,omitempty"`
	ViewerW        float64    `json:"viewerW,omitempty"`
	SliceW         float64    `json:"sliceW,omitempty"`
	SliceThickness float64    `json:"sliceThickness,omitempty"`
	Shear          [3]float64 `json:"shear"`

	FPS        int    `json:"fps,omitempty"`
	Background string `json:"background,omitempty"` // "R,G,B"

	// AnglesDeg is the initial orientation.
	AnglesDeg Rot6Deg `json:"anglesDeg"`
	// SpinDeg is a constant angular velocity in degrees per second.
	SpinDeg Rot6Deg `json:"spinDeg"`

	// Headless outputs
	Export string `json:"export,omitempty"`
	PNG    string `json:"png,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func defaultConfig() Config {
	params := project.DefaultParams()
	return Config{
		Shape:          "tesseract",
		Resolution:     models.DefaultResolution,
		Projection:     params.Mode.String(),
		Distance:       params.Distance,
		SliceThickness: params.SliceThickness,
		Shear:          [3]float64{params.ShearX, params.ShearY, params.ShearZ},
		FPS:            60,
		Background:     "30,30,40",
		SpinDeg:        Rot6Deg{XW: 20, YW: 12},
		Width:          640,
		Height:         480,
	}
}

// loadConfig reads a JSON config on top of the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// validate fills zero values and rejects settings the viewer cannot use.
func (c *Config) validate() error {
	def := defaultConfig()
	if c.FPS <= 0 {
		c.FPS = def.FPS
	}
	if c.Distance == 0 {
		c.Distance = def.Distance
	}
	if c.SliceThickness <= 0 {
		c.SliceThickness = def.SliceThickness
	}
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}

	if _, err := project.ParseMode(c.Projection); err != nil {
		return err
	}
	if _, err := warpFunc(c.Warp); err != nil {
		return err
	}
	if _, err := parseRGB(c.Background); err != nil {
		return err
	}
	return nil
}

// Params returns the projection parameters.
func (c Config) Params() (project.Params, error) {
	mode, err := project.ParseMode(c.Projection)
	if err != nil {
		return project.Params{}, err
	}
	return project.Params{
		Mode:           mode,
		Distance:       c.Distance,
		ViewerW:        c.ViewerW,
		SliceW:         c.SliceW,
		SliceThickness: c.SliceThickness,
		SliceFade:      true,
		ShearX:         c.Shear[0],
		ShearY:         c.Shear[1],
		ShearZ:         c.Shear[2],
	}, nil
}

// Mesh generates, warps and normalizes the configured shape.
func (c Config) Mesh() (*models.Mesh, error) {
	mesh, err := models.ByName(c.Shape, c.Resolution)
	if err != nil {
		return nil, err
	}
	warp, err := warpFunc(c.Warp)
	if err != nil {
		return nil, err
	}
	if warp != nil {
		mesh.Warp(warp)
	}
	mesh.Normalize(1)
	return mesh, nil
}

var errUnknownWarp = errors.New("unknown warp")

func warpFunc(name string) (func(math4d.Vec4) math4d.Vec4, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "hypersphere":
		return func(v math4d.Vec4) math4d.Vec4 { return models.WarpHypersphere(v, 1) }, nil
	case "hypertetra":
		return models.WarpHypertetra, nil
	}
	return nil, fmt.Errorf("%w: %q (want none, hypersphere or hypertetra)", errUnknownWarp, name)
}

// parseRGB parses "R,G,B" with components in [0, 255].
func parseRGB(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("parse color %q: want R,G,B", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// newFlagSet binds the command line flags to cfg, using its current values
// as defaults.
func newFlagSet(cfg *Config, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("tesser", flag.ContinueOnError)
	fs.StringVar(configPath, "config", *configPath, "Path to JSON config file")
	fs.StringVar(&cfg.Shape, "shape", cfg.Shape, "Shape: "+strings.Join(models.Names(), ", "))
	fs.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "Sampling resolution for hypersphere and clifford-torus")
	fs.StringVar(&cfg.Warp, "warp", cfg.Warp, "Warp applied to the shape: none, hypersphere, hypertetra")
	fs.StringVar(&cfg.Projection, "projection", cfg.Projection, "Projection: "+strings.Join(project.Modes(), ", "))
	fs.Float64Var(&cfg.Distance, "distance", cfg.Distance, "Viewer distance along W for perspective projection")
	fs.Float64Var(&cfg.SliceW, "slice", cfg.SliceW, "W position of the slicing hyperplane")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Target FPS")
	fs.StringVar(&cfg.Background, "bg", cfg.Background, "Background color (R,G,B)")
	fs.StringVar(&cfg.Export, "export", cfg.Export, "Write the projected wireframe to a .glb file and exit")
	fs.StringVar(&cfg.PNG, "png", cfg.PNG, "Render one frame to a .png file and exit")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width for -png")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height for -png")
	return fs
}

// parseArgs parses args twice: once to find -config, then again on top of
// the loaded file so that explicit flags win.
func parseArgs(args []string) (Config, error) {
	var configPath string
	cfg := defaultConfig()
	fs := newFlagSet(&cfg, &configPath)
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		fs = newFlagSet(&cfg, &configPath)
		fs.Usage = func() { usage(fs) }
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}

	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "tesser - Terminal 4D Polytope Viewer\n\n")
	fmt.Fprintf(out, "Usage: tesser [options]\n\n")
	fmt.Fprintf(out, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nControls:\n")
	fmt.Fprintf(out, "  W/S A/D Q/E - Spin in the XY, XZ and YZ planes\n")
	fmt.Fprintf(out, "  I/K J/L U/O - Spin in the XW, YW and ZW planes\n")
	fmt.Fprintf(out, "  Space       - Random spin\n")
	fmt.Fprintf(out, "  R           - Reset rotation\n")
	fmt.Fprintf(out, "  P           - Cycle projection\n")
	fmt.Fprintf(out, "  [ ]         - Move the W slice or viewer\n")
	fmt.Fprintf(out, "  +/-         - Zoom\n")
	fmt.Fprintf(out, "  ?           - Toggle HUD overlay\n")
	fmt.Fprintf(out, "  Esc         - Quit\n")
}
