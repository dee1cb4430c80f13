package render

import (
	"math"

	"github.com/taigrr/tesser/pkg/math4d"
	"github.com/taigrr/tesser/pkg/project"
)

// Camera is a perspective camera orbiting a target in the projected 3D
// scene. View and projection are homogeneous 3D transforms stored as
// math4d.Mat4.
type Camera struct {
	// Orbit around Target
	Target   project.Point3
	Distance float64
	Yaw      float64 // Rotation around the Y axis
	Pitch    float64 // Elevation above the XZ plane

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math4d.Mat4
	projMatrix     math4d.Mat4
	viewProjMatrix math4d.Mat4
	viewDirty      bool
	projDirty      bool
}

// maxPitch keeps the orbit away from the poles where LookAt degenerates.
const maxPitch = math.Pi/2 - 0.01

// NewCamera creates a camera five units down +Z looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Distance:    5,
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		viewDirty:   true,
		projDirty:   true,
	}
}

// Position returns the camera position in world space.
func (c *Camera) Position() project.Point3 {
	sinYaw, cosYaw := math.Sincos(c.Yaw)
	sinPitch, cosPitch := math.Sincos(c.Pitch)
	offset := project.P3(sinYaw*cosPitch, sinPitch, cosYaw*cosPitch).Scale(c.Distance)
	return c.Target.Add(offset)
}

// SetDistance sets the orbit radius.
func (c *Camera) SetDistance(d float64) {
	c.Distance = d
	c.viewDirty = true
}

// Zoom changes the orbit radius by delta, clamped to [lo, hi].
func (c *Camera) Zoom(delta, lo, hi float64) {
	c.SetDistance(max(lo, min(hi, c.Distance+delta)))
}

// Orbit rotates the camera around the target by the given angles (radians).
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = max(-maxPitch, min(maxPitch, c.Pitch+deltaPitch))
	c.viewDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math4d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = LookAt(c.Position(), c.Target, project.P3(0, 1, 0))
		c.viewDirty = false
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.viewMatrix)
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math4d.Mat4 {
	if c.projDirty {
		c.projMatrix = Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
		c.viewProjMatrix = c.projMatrix.Mul(c.ViewMatrix())
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math4d.Mat4 {
	_ = c.ViewMatrix()
	_ = c.ProjectionMatrix()
	return c.viewProjMatrix
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(p project.Point3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	x, y, depth, ok := c.toScreen(p, screenWidth, screenHeight)
	if !ok {
		return 0, 0, 0, false
	}
	inside := x >= 0 && x <= float64(screenWidth) && y >= 0 && y <= float64(screenHeight)
	return x, y, depth, inside
}

// toScreen is WorldToScreen without the screen bounds test. ok is false for
// points behind the camera or outside the near/far range.
func (c *Camera) toScreen(p project.Point3, screenWidth, screenHeight int) (x, y, depth float64, ok bool) {
	// Transform to clip space
	clip := c.ViewProjectionMatrix().MulVec4(math4d.V4(p.X, p.Y, p.Z, 1))

	// Check if behind camera
	if clip.W <= 0 {
		return 0, 0, 0, false
	}

	// Perspective divide to NDC (-1 to 1)
	ndc := project.P3(clip.X/clip.W, clip.Y/clip.W, clip.Z/clip.W)
	if ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, true
}

// LookAt creates a right-handed view matrix looking from eye toward target.
func LookAt(eye, target, up project.Point3) math4d.Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := math4d.Identity()
	m.SetRow(0, math4d.V4(s.X, s.Y, s.Z, -s.Dot(eye)))
	m.SetRow(1, math4d.V4(u.X, u.Y, u.Z, -u.Dot(eye)))
	m.SetRow(2, math4d.V4(-f.X, -f.Y, -f.Z, f.Dot(eye)))
	return m
}

// Perspective creates an OpenGL-style perspective projection matrix.
// fov is the vertical field of view in radians.
func Perspective(fov, aspect, near, far float64) math4d.Mat4 {
	f := 1 / math.Tan(fov/2)
	nf := 1 / (near - far)

	var m math4d.Mat4
	m.Set(0, 0, f/aspect)
	m.Set(1, 1, f)
	m.Set(2, 2, (far+near)*nf)
	m.Set(2, 3, 2*far*near*nf)
	m.Set(3, 2, -1)
	return m
}
