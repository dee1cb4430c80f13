package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/tesser/pkg/models"
	"github.com/taigrr/tesser/pkg/project"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tesser.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRot6DegRadians(t *testing.T) {
	r := Rot6Deg{XY: 90, XZ: 180, YZ: 30, XW: -45, YW: 0, ZW: 360}.Radians()
	tests := []struct {
		name      string
		got, want float64
	}{
		{"xy", r.XY, math.Pi / 2},
		{"xz", r.XZ, math.Pi},
		{"yz", r.YZ, math.Pi / 6},
		{"xw", r.XW, -math.Pi / 4},
		{"yw", r.YW, 0},
		{"zw", r.ZW, 2 * math.Pi},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg Config) {
				if cfg.Shape != "tesseract" || cfg.FPS != 60 || cfg.Projection != "perspective" {
					t.Errorf("got %+v", cfg)
				}
			},
		},
		{
			name: "flags",
			args: []string{"-shape", "pentatope", "-projection", "slice", "-fps", "30", "-slice", "0.5"},
			check: func(t *testing.T, cfg Config) {
				if cfg.Shape != "pentatope" || cfg.Projection != "slice" || cfg.FPS != 30 || cfg.SliceW != 0.5 {
					t.Errorf("got %+v", cfg)
				}
			},
		},
		{
			name: "zero fps falls back",
			args: []string{"-fps", "0"},
			check: func(t *testing.T, cfg Config) {
				if cfg.FPS != 60 {
					t.Errorf("got fps %d, want 60", cfg.FPS)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseArgs(tt.args)
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseArgsConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"shape": "16-cell",
		"projection": "stereographic",
		"fps": 24,
		"background": "1,2,3",
		"anglesDeg": {"xy": 90, "zw": 45}
	}`)

	cfg, err := parseArgs([]string{"-config", path, "-fps", "50"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.Shape != "16-cell" {
		t.Errorf("got shape %q, want 16-cell", cfg.Shape)
	}
	if cfg.Projection != "stereographic" {
		t.Errorf("got projection %q, want stereographic", cfg.Projection)
	}
	if cfg.FPS != 50 {
		t.Errorf("got fps %d, want flag value 50", cfg.FPS)
	}
	if cfg.Background != "1,2,3" {
		t.Errorf("got background %q, want 1,2,3", cfg.Background)
	}
	if got := cfg.AnglesDeg.Radians().XY; math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("got xy %v, want pi/2", got)
	}
	// Unset fields keep the defaults.
	if cfg.Distance != 2 {
		t.Errorf("got distance %v, want 2", cfg.Distance)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"unknown projection", []string{"-projection", "fisheye"}, project.ErrUnknownMode},
		{"unknown warp", []string{"-warp", "twist"}, errUnknownWarp},
		{"bad background", []string{"-bg", "1,2"}, nil},
		{"missing config", []string{"-config", "/nonexistent/tesser.json"}, os.ErrNotExist},
		{"malformed config", []string{"-config", writeConfig(t, "{")}, nil},
		{"extra arguments", []string{"model.glb"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("got %v, want %v", err, tt.target)
			}
		})
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]uint8
		wantErr bool
	}{
		{"30,30,40", [3]uint8{30, 30, 40}, false},
		{" 255, 0 ,7", [3]uint8{255, 0, 7}, false},
		{"256,0,0", [3]uint8{}, true},
		{"a,b,c", [3]uint8{}, true},
		{"1,2", [3]uint8{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseRGB(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("got err %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := [3]uint8{c.R, c.G, c.B}; got != tt.want || c.A != 255 {
				t.Errorf("got %v (alpha %d), want %v", got, c.A, tt.want)
			}
		})
	}
}

func TestConfigMesh(t *testing.T) {
	cfg := defaultConfig()
	mesh, err := cfg.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	if mesh.VertexCount() != 16 {
		t.Errorf("got %d vertices, want 16", mesh.VertexCount())
	}
	if r := mesh.Radius(); math.Abs(r-1) > 1e-9 {
		t.Errorf("got radius %v, want 1", r)
	}

	cfg.Shape = "pentatope"
	cfg.Warp = "hypertetra"
	if _, err := cfg.Mesh(); err != nil {
		t.Errorf("hypertetra pentatope: %v", err)
	}

	cfg.Shape = "klein-bottle"
	if _, err := cfg.Mesh(); !errors.Is(err, models.ErrUnknownShape) {
		t.Errorf("got %v, want ErrUnknownShape", err)
	}
}

func TestConfigParams(t *testing.T) {
	cfg := defaultConfig()
	cfg.Projection = "oblique"
	cfg.Shear = [3]float64{0.1, 0.2, 0.3}

	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.Mode != project.ModeOblique || p.ShearX != 0.1 || p.ShearY != 0.2 || p.ShearZ != 0.3 {
		t.Errorf("got %+v", p)
	}
}
