package main

import (
	"github.com/charmbracelet/harmonica"
)

// Orbit eases the camera around its target. Input moves the target angle;
// a critically damped spring pulls the current angle after it so drags and
// key taps glide instead of jumping.
type Orbit struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewOrbit creates an orbit spring stepped at fps.
func NewOrbit(fps int) *Orbit {
	return &Orbit{
		// Frequency 6.0 = quick but smooth, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Nudge moves the target angle by delta radians.
func (o *Orbit) Nudge(delta float64) {
	o.target += delta
}

// Step advances the spring one frame and returns how far the angle moved.
func (o *Orbit) Step() float64 {
	prev := o.pos
	o.pos, o.vel = o.spring.Update(o.pos, o.vel, o.target)
	return o.pos - prev
}

// Settled reports whether the angle has caught up with the target.
func (o *Orbit) Settled() bool {
	const eps = 1e-4
	d := o.target - o.pos
	return d < eps && d > -eps && o.vel < eps && o.vel > -eps
}
