package models

import (
	"math"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// Angle returns the rotation in radians covered in dt seconds.
func (a Animation) Angle(dt float64) float64 {
	return a.RPS * 2 * math.Pi * dt
}

// Animate returns m's matrix advanced by dt seconds of its animation.
// Models without an animation keep their matrix.
func Animate(m *Model, dt float64) (math3d.Mat4, error) {
	if m.Animation == nil || m.Animation.RPS == 0 || dt == 0 {
		return m.Matrix, nil
	}
	return Rotated(m, m.Animation.Axis, m.Animation.Angle(dt))
}
