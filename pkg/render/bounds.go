package render

import (
	"github.com/taigrr/wireframe/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Corners returns the 8 corners as homogeneous points.
func (b AABB) Corners() [8]math3d.Vec4 {
	return [8]math3d.Vec4{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z, W: 1},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z, W: 1},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z, W: 1},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z, W: 1},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z, W: 1},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z, W: 1},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z, W: 1},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z, W: 1},
	}
}

// BoxOutcode transforms the corners of b by m into the canonical view
// volume and returns the planes all of them lie outside of. A non-zero
// result means nothing inside the box can be visible.
func BoxOutcode(b AABB, m math3d.Mat4, zMin float64) Outcode {
	all := ^Outcode(0)
	for _, c := range b.Corners() {
		all &= ComputeOutcode(m.MulVec4(c), zMin)
		if all == 0 {
			break
		}
	}
	return all
}

// Bounded is implemented by meshes that know their local bounding box.
// The pipeline uses it to cull whole meshes before touching vertices.
type Bounded interface {
	// Bounds returns the box corners and whether they are current.
	Bounds() (min, max math3d.Vec3, ok bool)
}
