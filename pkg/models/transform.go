package models

import (
	"fmt"
	"strings"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// ComposeRigid returns Translate(t) · Rotate(axis, angle) · Scale(s):
// the model is scaled first, then rotated, then translated. The order is
// fixed so repeated compositions give the same result.
func ComposeRigid(t, axis math3d.Vec3, angle float64, s math3d.Vec3) (math3d.Mat4, error) {
	r, err := math3d.RotateAxis(axis, angle)
	if err != nil {
		return math3d.Identity(), err
	}
	return math3d.Multiply(math3d.Translate(t), r, math3d.Scale(s)), nil
}

// RotateAboutPoint returns the rotation by angle radians around axis
// through center: Translate(center) · Rotate(axis, angle) · Translate(-center).
func RotateAboutPoint(center, axis math3d.Vec3, angle float64) (math3d.Mat4, error) {
	r, err := math3d.RotateAxis(axis, angle)
	if err != nil {
		return math3d.Identity(), err
	}
	return math3d.Multiply(math3d.Translate(center), r, math3d.Translate(center.Negate())), nil
}

// AxisVector maps "x", "y" or "z" to the matching unit axis.
func AxisVector(name string) (math3d.Vec3, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "x":
		return math3d.V3(1, 0, 0), nil
	case "y":
		return math3d.V3(0, 1, 0), nil
	case "z":
		return math3d.V3(0, 0, 1), nil
	}
	return math3d.Vec3{}, fmt.Errorf("%w: unknown axis %q", math3d.ErrInvalidAxis, name)
}

// Rotated returns m's matrix after a further rotation of angle radians
// about m's own center. The new rotation is applied after the
// accumulated transform.
func Rotated(m *Model, axis math3d.Vec3, angle float64) (math3d.Mat4, error) {
	r, err := RotateAboutPoint(m.Center, axis, angle)
	if err != nil {
		return m.Matrix, err
	}
	return r.Mul(m.Matrix), nil
}
