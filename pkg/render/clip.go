package render

import (
	"github.com/taigrr/wireframe/pkg/math3d"
)

// Outcode is a bitmask of the canonical view volume planes a point violates.
type Outcode uint8

// Outcode bits, one per frustum plane.
const (
	OutNear   Outcode = 1 << iota // z > zMin
	OutFar                        // z < -1
	OutTop                        // y > -z
	OutBottom                     // y < z
	OutRight                      // x > -z
	OutLeft                       // x < z
)

// ClipEpsilon is how far outside a plane a point may sit and still count as
// inside, so points on a boundary do not flicker between frames.
const ClipEpsilon = 1e-6

// maxClipPasses bounds the clipping loop: each pass settles one plane.
const maxClipPasses = 6

// Line is a segment between two homogeneous points in the canonical view
// volume.
type Line struct {
	P0, P1 math3d.Vec4
}

// clipPlane is a canonical frustum plane as a signed distance that is
// non-negative inside.
type clipPlane struct {
	code Outcode
	dist func(p math3d.Vec4, zMin float64) float64
}

// Planes are ordered from the highest bit down; clipping picks the first
// violated one.
var clipPlanes = [...]clipPlane{
	{OutLeft, func(p math3d.Vec4, _ float64) float64 { return p.X - p.Z }},
	{OutRight, func(p math3d.Vec4, _ float64) float64 { return -p.Z - p.X }},
	{OutBottom, func(p math3d.Vec4, _ float64) float64 { return p.Y - p.Z }},
	{OutTop, func(p math3d.Vec4, _ float64) float64 { return -p.Z - p.Y }},
	{OutFar, func(p math3d.Vec4, _ float64) float64 { return p.Z + 1 }},
	{OutNear, func(p math3d.Vec4, zMin float64) float64 { return zMin - p.Z }},
}

// ComputeOutcode returns the planes v lies outside of. Every violated plane
// sets its bit, so two points sharing a bit are on the outside of the same
// plane.
func ComputeOutcode(v math3d.Vec4, zMin float64) Outcode {
	var code Outcode
	for _, pl := range clipPlanes {
		if pl.dist(v, zMin) < -ClipEpsilon {
			code |= pl.code
		}
	}
	return code
}

// ClipLine clips l against the canonical view volume whose front plane is
// z = zMin. It returns the visible part with both endpoints inside, or
// false when nothing of the line is visible. A line already inside is
// returned unchanged.
func ClipLine(l Line, zMin float64) (Line, bool) {
	out0 := ComputeOutcode(l.P0, zMin)
	out1 := ComputeOutcode(l.P1, zMin)

	for pass := 0; ; pass++ {
		switch {
		case out0|out1 == 0:
			return l, true
		case out0&out1 != 0:
			return Line{}, false
		case pass == maxClipPasses:
			return Line{}, false
		}

		if out0 != 0 {
			p, ok := intersect(l.P0, l.P1, out0, zMin)
			if !ok {
				return Line{}, false
			}
			l.P0 = p
			out0 = ComputeOutcode(p, zMin)
		} else {
			p, ok := intersect(l.P1, l.P0, out1, zMin)
			if !ok {
				return Line{}, false
			}
			l.P1 = p
			out1 = ComputeOutcode(p, zMin)
		}
	}
}

// intersect moves the outside point a toward b until it meets the first
// plane named in code. It fails when the line runs parallel to that plane.
func intersect(a, b math3d.Vec4, code Outcode, zMin float64) (math3d.Vec4, bool) {
	for _, pl := range clipPlanes {
		if code&pl.code == 0 {
			continue
		}
		da := pl.dist(a, zMin)
		db := pl.dist(b, zMin)
		denom := da - db
		if denom > -math3d.Epsilon && denom < math3d.Epsilon {
			return a, false
		}
		t := da / denom
		t = max(0, min(1, t))
		return a.Lerp(b, t), true
	}
	return a, false
}
