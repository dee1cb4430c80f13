package main

import (
	"math/rand/v2"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/tesser/pkg/math4d"
)

// PlaneAxis tracks angle and velocity for one rotation plane with spring decay.
type PlaneAxis struct {
	Angle     float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewPlaneAxis creates an axis with a harmonica spring for smooth velocity decay.
func NewPlaneAxis(fps int) PlaneAxis {
	return PlaneAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to the angle and decays velocity toward 0.
func (a *PlaneAxis) Update() {
	a.Angle += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds one spring-damped axis per rotation plane plus a
// constant spin.
type RotationState struct {
	Planes [6]PlaneAxis
	// Spin is added every second regardless of the springs (radians/second).
	Spin    math4d.Angles6
	initial math4d.Angles6
	fps     int
}

// NewRotationState starts at the given orientation.
func NewRotationState(fps int, initial, spin math4d.Angles6) *RotationState {
	r := &RotationState{Spin: spin, initial: initial, fps: fps}
	r.Reset()
	return r
}

// Update advances every plane by one frame of dt seconds.
func (r *RotationState) Update(dt float64) {
	spin := r.Spin.Array()
	for i := range r.Planes {
		r.Planes[i].Angle += spin[i] * dt
		r.Planes[i].Update()
	}
}

// ApplyImpulse adds delta to the plane velocities.
func (r *RotationState) ApplyImpulse(delta math4d.Angles6) {
	for i, d := range delta.Array() {
		r.Planes[i].Velocity += d
	}
}

// RandomImpulse kicks every plane by a uniform amount in [-scale/2, scale/2).
func (r *RotationState) RandomImpulse(rng *rand.Rand, scale float64) {
	var delta [6]float64
	for i := range delta {
		delta[i] = (rng.Float64() - 0.5) * scale
	}
	r.ApplyImpulse(math4d.Angles6FromArray(delta))
}

// Reset returns to the initial orientation at rest.
func (r *RotationState) Reset() {
	start := r.initial.Array()
	for i := range r.Planes {
		r.Planes[i] = NewPlaneAxis(r.fps)
		r.Planes[i].Angle = start[i]
	}
}

// Angles returns the current plane angles.
func (r *RotationState) Angles() math4d.Angles6 {
	var a [6]float64
	for i, p := range r.Planes {
		a[i] = p.Angle
	}
	return math4d.Angles6FromArray(a)
}

// Rotor returns the current orientation.
func (r *RotationState) Rotor() math4d.Rotor {
	return math4d.RotorFromAngles(r.Angles())
}
