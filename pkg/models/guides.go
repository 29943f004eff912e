package models

import (
	"fmt"
	"math"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// Grid builds a square grid on the XZ plane at height y, size units on a
// side with lines every step units.
func Grid(y, size, step float64) (Model, error) {
	if size <= 0 || step <= 0 || step > size {
		return Model{}, fmt.Errorf("%w: grid size %g step %g", ErrInvalidModel, size, step)
	}
	half := size / 2
	n := int(math.Floor(size/step+1e-9)) + 1

	m := NewModel("grid", KindGeneric)
	for i := range n {
		c := -half + float64(i)*step
		k := len(m.Vertices)
		m.Vertices = append(m.Vertices,
			math3d.V4(c, y, -half, 1), math3d.V4(c, y, half, 1), // along z
			math3d.V4(-half, y, c, 1), math3d.V4(half, y, c, 1), // along x
		)
		m.Edges = append(m.Edges, []int{k, k + 1}, []int{k + 2, k + 3})
	}
	m.CalculateBounds()
	m.Center = m.BoundsCenter()
	return m, nil
}

// Axes builds the three coordinate axes from the origin, length units long.
func Axes(length float64) (Model, error) {
	if length <= 0 {
		return Model{}, fmt.Errorf("%w: axes length %g", ErrInvalidModel, length)
	}
	m := NewModel("axes", KindGeneric)
	m.Vertices = []math3d.Vec4{
		math3d.V4(0, 0, 0, 1),
		math3d.V4(length, 0, 0, 1), // X axis
		math3d.V4(0, length, 0, 1), // Y axis
		math3d.V4(0, 0, length, 1), // Z axis
	}
	m.Edges = [][]int{{0, 1}, {0, 2}, {0, 3}}
	m.CalculateBounds()
	return m, nil
}

// Marker builds a small 3D cross at pos.
func Marker(pos math3d.Vec3, size float64) (Model, error) {
	if size <= 0 {
		return Model{}, fmt.Errorf("%w: marker size %g", ErrInvalidModel, size)
	}
	h := size / 2
	m := NewModel("marker", KindGeneric)
	m.Center = pos
	m.Vertices = []math3d.Vec4{
		math3d.V4(pos.X-h, pos.Y, pos.Z, 1), math3d.V4(pos.X+h, pos.Y, pos.Z, 1),
		math3d.V4(pos.X, pos.Y-h, pos.Z, 1), math3d.V4(pos.X, pos.Y+h, pos.Z, 1),
		math3d.V4(pos.X, pos.Y, pos.Z-h, 1), math3d.V4(pos.X, pos.Y, pos.Z+h, 1),
	}
	m.Edges = [][]int{{0, 1}, {2, 3}, {4, 5}}
	m.CalculateBounds()
	return m, nil
}
