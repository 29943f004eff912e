package models

import (
	"fmt"
	"math"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// Cube builds a box centered at center. Vertices 0-3 are the front face
// (+z) and 4-7 the back face, each ordered top-left, top-right,
// bottom-right, bottom-left.
func Cube(center math3d.Vec3, width, height, depth float64) (Model, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return Model{}, fmt.Errorf("%w: cube size %gx%gx%g", ErrInvalidModel, width, height, depth)
	}
	hw, hh, hd := width/2, height/2, depth/2

	m := NewModel("cube", KindCube)
	m.Center = center
	for _, sz := range [2]float64{1, -1} {
		z := center.Z + sz*hd
		m.Vertices = append(m.Vertices,
			math3d.V4(center.X-hw, center.Y+hh, z, 1),
			math3d.V4(center.X+hw, center.Y+hh, z, 1),
			math3d.V4(center.X+hw, center.Y-hh, z, 1),
			math3d.V4(center.X-hw, center.Y-hh, z, 1),
		)
	}
	m.Edges = [][]int{
		{0, 1, 2, 3, 0},
		{4, 5, 6, 7, 4},
		{0, 4},
		{1, 5},
		{2, 6},
		{3, 7},
	}
	m.CalculateBounds()
	return m, nil
}

// ring returns n points on a circle of radius r in the plane y, around
// the y axis through center, starting at +x and turning toward -z.
func ring(center math3d.Vec3, r, y float64, n int) []math3d.Vec4 {
	pts := make([]math3d.Vec4, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = math3d.V4(center.X+r*math.Cos(a), y, center.Z-r*math.Sin(a), 1)
	}
	return pts
}

// closedLoop returns indices first..first+n-1 followed by first.
func closedLoop(first, n int) []int {
	e := make([]int, 0, n+1)
	for i := range n {
		e = append(e, first+i)
	}
	return append(e, first)
}

// Cylinder builds an upright cylinder with the given number of sides:
// a top ring, a bottom ring and one vertical line per side.
func Cylinder(center math3d.Vec3, radius, height float64, sides int) (Model, error) {
	if radius <= 0 || height <= 0 {
		return Model{}, fmt.Errorf("%w: cylinder radius %g height %g", ErrInvalidModel, radius, height)
	}
	if sides < 3 {
		return Model{}, fmt.Errorf("%w: cylinder needs at least 3 sides, got %d", ErrInvalidModel, sides)
	}

	m := NewModel("cylinder", KindCylinder)
	m.Center = center
	m.Vertices = append(ring(center, radius, center.Y+height/2, sides),
		ring(center, radius, center.Y-height/2, sides)...)
	m.Edges = append(m.Edges, closedLoop(0, sides), closedLoop(sides, sides))
	for i := range sides {
		m.Edges = append(m.Edges, []int{i, sides + i})
	}
	m.CalculateBounds()
	return m, nil
}

// Cone builds an upright cone: a base ring at the bottom and one line from
// every base vertex to the apex at the top.
func Cone(center math3d.Vec3, radius, height float64, sides int) (Model, error) {
	if radius <= 0 || height <= 0 {
		return Model{}, fmt.Errorf("%w: cone radius %g height %g", ErrInvalidModel, radius, height)
	}
	if sides < 3 {
		return Model{}, fmt.Errorf("%w: cone needs at least 3 sides, got %d", ErrInvalidModel, sides)
	}

	m := NewModel("cone", KindCone)
	m.Center = center
	m.Vertices = ring(center, radius, center.Y-height/2, sides)
	apex := len(m.Vertices)
	m.Vertices = append(m.Vertices, math3d.V4(center.X, center.Y+height/2, center.Z, 1))

	m.Edges = append(m.Edges, closedLoop(0, sides))
	for i := range sides {
		m.Edges = append(m.Edges, []int{i, apex})
	}
	m.CalculateBounds()
	return m, nil
}

// Sphere builds a UV sphere: slices meridians running pole to pole and
// stacks-1 parallels between them.
func Sphere(center math3d.Vec3, radius float64, slices, stacks int) (Model, error) {
	if radius <= 0 {
		return Model{}, fmt.Errorf("%w: sphere radius %g", ErrInvalidModel, radius)
	}
	if slices < 3 || stacks < 2 {
		return Model{}, fmt.Errorf("%w: sphere needs at least 3 slices and 2 stacks, got %d and %d",
			ErrInvalidModel, slices, stacks)
	}

	m := NewModel("sphere", KindSphere)
	m.Center = center

	north := 0
	m.Vertices = append(m.Vertices, math3d.V4(center.X, center.Y+radius, center.Z, 1))
	for s := 1; s < stacks; s++ {
		phi := math.Pi * float64(s) / float64(stacks)
		m.Vertices = append(m.Vertices,
			ring(center, radius*math.Sin(phi), center.Y+radius*math.Cos(phi), slices)...)
	}
	south := len(m.Vertices)
	m.Vertices = append(m.Vertices, math3d.V4(center.X, center.Y-radius, center.Z, 1))

	// parallels
	for s := 1; s < stacks; s++ {
		m.Edges = append(m.Edges, closedLoop(1+(s-1)*slices, slices))
	}
	// meridians
	for j := range slices {
		e := []int{north}
		for s := 1; s < stacks; s++ {
			e = append(e, 1+(s-1)*slices+j)
		}
		m.Edges = append(m.Edges, append(e, south))
	}
	m.CalculateBounds()
	return m, nil
}
