// Package render turns wireframe models into pixel-space line segments.
//
// A frame goes through a fixed chain: the model matrix, the camera's
// world-to-canonical-view-volume matrix, 3D clipping against the canonical
// frustum, projection onto the z=-1 plane, the perspective divide and the
// viewport mapping.
package render

import (
	"fmt"
	"math"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
)

// Clip holds the view window and clipping planes of a perspective camera,
// in view reference coordinates.
//
// Front and Back are read by magnitude, so both positive distances
// (front=1, back=10) and negative z values (front=-1, back=-10) describe
// the same frustum.
type Clip struct {
	UMin, UMax float64 // horizontal window bounds
	VMin, VMax float64 // vertical window bounds
	Front      float64 // near plane
	Back       float64 // far plane
}

// ClipFromSlice builds a Clip from [umin, umax, vmin, vmax, front, back].
func ClipFromSlice(s []float64) (Clip, error) {
	if len(s) != 6 {
		return Clip{}, fmt.Errorf("clip needs 6 values, got %d", len(s))
	}
	return Clip{UMin: s[0], UMax: s[1], VMin: s[2], VMax: s[3], Front: s[4], Back: s[5]}, nil
}

// Camera describes a perspective view by its eye point, target and up vector.
type Camera struct {
	PRP  math3d.Vec3 // projection reference point (eye)
	SRP  math3d.Vec3 // scene reference point (look-at target)
	VUP  math3d.Vec3 // view up
	Clip Clip
}

// NewCamera creates a camera at (0, 0, 5) looking at the origin with a
// 90 degree window and planes at 1 and 10.
func NewCamera() Camera {
	return Camera{
		PRP:  math3d.V3(0, 0, 5),
		SRP:  math3d.Zero3(),
		VUP:  math3d.Up(),
		Clip: Clip{UMin: -1, UMax: 1, VMin: -1, VMax: 1, Front: 1, Back: 10},
	}
}

// Near returns the distance from the eye to the front clipping plane.
func (c Camera) Near() float64 {
	return math.Abs(c.Clip.Front)
}

// Far returns the distance from the eye to the back clipping plane.
func (c Camera) Far() float64 {
	return math.Abs(c.Clip.Back)
}

// ZMin returns the z of the front plane inside the canonical view volume.
func (c Camera) ZMin() float64 {
	return -c.Near() / c.Far()
}

// Basis returns the orthonormal view axes: n points from SRP back to PRP,
// u is right and v is up.
func (c Camera) Basis() (u, v, n math3d.Vec3, err error) {
	n, err = c.PRP.Sub(c.SRP).Unit()
	if err != nil {
		return u, v, n, configError("PRP and SRP coincide", ErrDegenerateBasis)
	}
	u, err = c.VUP.Cross(n).Unit()
	if err != nil {
		return u, v, n, configError("VUP is parallel to the view direction", ErrDegenerateBasis)
	}
	v = n.Cross(u)
	return u, v, n, nil
}

// Validate checks the clip bounds and the view basis without building the
// matrix.
func (c Camera) Validate() error {
	near, far := c.Near(), c.Far()
	switch {
	case near < math3d.Epsilon:
		return configError("front plane at the eye", math3d.ErrDivideByZero)
	case far < math3d.Epsilon:
		return configError("back plane at the eye", math3d.ErrDivideByZero)
	case near >= far:
		return fmt.Errorf("%w: front plane (%g) must be closer than back plane (%g)", ErrConfiguration, near, far)
	}

	if err := checkSpan("u", c.Clip.UMin, c.Clip.UMax); err != nil {
		return err
	}
	if err := checkSpan("v", c.Clip.VMin, c.Clip.VMax); err != nil {
		return err
	}

	_, _, _, err := c.Basis()
	return err
}

func checkSpan(axis string, lo, hi float64) error {
	w := hi - lo
	if math.Abs(w) < math3d.Epsilon {
		return configError(axis+" window has zero width", math3d.ErrDivideByZero)
	}
	if w < 0 {
		return fmt.Errorf("%w: %smin (%g) must be less than %smax (%g)", ErrConfiguration, axis, lo, axis, hi)
	}
	return nil
}

// Matrix returns the transform from world coordinates into the canonical
// perspective view volume: the frustum with apex at the origin bounded by
// x = ±z, y = ±z and z ∈ [-1, ZMin()].
//
// The result is Scale · Shear · R · T: translate PRP to the origin, rotate
// (u, v, n) onto (x, y, z), shear the window center onto the z axis, then
// scale the window and back plane to the canonical bounds.
func (c Camera) Matrix() (math3d.Mat4, error) {
	if err := c.Validate(); err != nil {
		return math3d.Identity(), err
	}
	u, v, n, _ := c.Basis()
	near, far := c.Near(), c.Far()
	cl := c.Clip

	t := math3d.Translate(c.PRP.Negate())

	r := math3d.Mat4{
		u.X, u.Y, u.Z, 0,
		v.X, v.Y, v.Z, 0,
		n.X, n.Y, n.Z, 0,
		0, 0, 0, 1,
	}

	// PRP sits at the origin after T, so the direction of projection is
	// the window center itself.
	cw := math3d.V3((cl.UMin+cl.UMax)/2, (cl.VMin+cl.VMax)/2, -near)
	dop := cw
	sh := math3d.ShearXY(-dop.X/dop.Z, -dop.Y/dop.Z)

	s := math3d.Scale(math3d.V3(
		2*near/((cl.UMax-cl.UMin)*far),
		2*near/((cl.VMax-cl.VMin)*far),
		1/far,
	))

	return math3d.Multiply(s, sh, r, t), nil
}

// Translated returns the camera moved by d in world space. PRP and SRP
// move together, so the view direction is unchanged.
func (c Camera) Translated(d math3d.Vec3) Camera {
	c.PRP = c.PRP.Add(d)
	c.SRP = c.SRP.Add(d)
	return c
}

// MovedLocal returns the camera moved along its own view axes: du to the
// right, dv up and dn backwards (away from SRP).
func (c Camera) MovedLocal(du, dv, dn float64) (Camera, error) {
	u, v, n, err := c.Basis()
	if err != nil {
		return c, err
	}
	d := u.Scale(du).Add(v.Scale(dv)).Add(n.Scale(dn))
	return c.Translated(d), nil
}

// OrbitedAboutTarget returns the camera with PRP rotated by angle radians
// about SRP, around VUP. The target stays fixed.
func (c Camera) OrbitedAboutTarget(angle float64) (Camera, error) {
	m, err := models.RotateAboutPoint(c.SRP, c.VUP, angle)
	if err != nil {
		return c, configError("orbit", err)
	}
	c.PRP = m.MulPoint(c.PRP)
	return c, nil
}

// Turned returns the camera with SRP rotated by angle radians about PRP,
// around VUP: the eye stays put and looks left (positive) or right.
func (c Camera) Turned(angle float64) (Camera, error) {
	m, err := models.RotateAboutPoint(c.PRP, c.VUP, angle)
	if err != nil {
		return c, configError("turn", err)
	}
	c.SRP = m.MulPoint(c.SRP)
	return c, nil
}
