package render

import (
	"fmt"
	"math"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// MPer returns the matrix that projects canonical view volume points onto
// the z = -1 plane. It leaves x, y, z alone and sets w = -z for the
// perspective divide.
func MPer() math3d.Mat4 {
	return math3d.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, -1, 0,
	}
}

// ProjectToPlane applies MPer to v.
func ProjectToPlane(v math3d.Vec4) math3d.Vec4 {
	return MPer().MulVec4(v)
}

// PerspectiveDivide returns (x/w, y/w, z/w, 1). A w with magnitude below
// math3d.Epsilon means an unclipped point reached the divide; that is a
// pipeline bug reported as ErrPipelineInvariant.
func PerspectiveDivide(v math3d.Vec4) (math3d.Vec4, error) {
	if math.Abs(v.W) < math3d.Epsilon {
		return math3d.Vec4{}, fmt.Errorf("%w: w=%g at (%g, %g, %g): %w",
			ErrPipelineInvariant, v.W, v.X, v.Y, v.Z, math3d.ErrDivideByZero)
	}
	return math3d.Vec4{X: v.X / v.W, Y: v.Y / v.W, Z: v.Z / v.W, W: 1}, nil
}

// Viewport returns the matrix mapping normalized device coordinates
// [-1, 1]² to pixels of a width×height raster.
//
// The y scale is negative on purpose: NDC y grows upward while raster y
// grows downward, so NDC y=1 lands on row 0 and y=-1 on row height.
func Viewport(width, height int) math3d.Mat4 {
	w, h := float64(width), float64(height)
	return math3d.Mat4{
		w / 2, 0, 0, w / 2,
		0, -h / 2, 0, h / 2,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// ToViewport maps an NDC point to pixel coordinates:
// x = (x+1)·width/2, y = (1-y)·height/2.
func ToViewport(ndc math3d.Vec4, width, height int) (x, y float64) {
	p := Viewport(width, height).MulVec4(ndc)
	return p.X, p.Y
}
