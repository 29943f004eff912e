package render

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// WireMesh is a set of homogeneous vertices joined by polyline edges.
// Each edge is a list of vertex indices; consecutive indices form one line,
// and an edge whose last index equals its first is closed.
type WireMesh interface {
	VertexCount() int
	Vertex(i int) math3d.Vec4
	EdgeCount() int
	Edge(i int) []int
}

// Segment is a visible line in pixel coordinates, ready for a
// presentation surface.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Stats counts what happened to the lines of a frame.
type Stats struct {
	Meshes   int // meshes submitted
	Culled   int // meshes entirely outside one plane
	Lines    int // lines considered
	Visible  int // lines emitted as segments
	Rejected int // lines clipped away entirely
	Skipped  int // lines dropped by invariant or index errors
}

// Frame is the output of one render pass.
type Frame struct {
	Segments []Segment
	Stats    Stats
}

// Pipeline renders meshes for one camera and viewport. Build one per pass
// with NewPipeline; it is not safe for concurrent use.
type Pipeline struct {
	view     math3d.Mat4
	zMin     float64
	width    int
	height   int
	viewport math3d.Mat4

	verts []math3d.Vec4
	codes []Outcode
	frame Frame
}

// NewPipeline derives the camera matrix and viewport for a pass.
func NewPipeline(cam Camera, width, height int) (*Pipeline, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: viewport %dx%d", ErrConfiguration, width, height)
	}
	view, err := cam.Matrix()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		view:     view,
		zMin:     cam.ZMin(),
		width:    width,
		height:   height,
		viewport: Viewport(width, height),
	}, nil
}

// Reset clears the accumulated frame so the pipeline can be reused.
func (p *Pipeline) Reset() {
	p.frame.Segments = p.frame.Segments[:0]
	p.frame.Stats = Stats{}
}

// Frame returns the segments and statistics accumulated since the last
// Reset. The segment slice is reused by the next Reset; copy it to keep it.
func (p *Pipeline) Frame() Frame {
	return p.frame
}

// ProjectLine takes a line in the canonical view volume through clipping,
// projection, the perspective divide and the viewport mapping. It returns
// false when the line is invisible.
func (p *Pipeline) ProjectLine(l Line) (Segment, bool, error) {
	clipped, ok := ClipLine(l, p.zMin)
	if !ok {
		return Segment{}, false, nil
	}

	a, err := PerspectiveDivide(ProjectToPlane(clipped.P0))
	if err != nil {
		return Segment{}, false, err
	}
	b, err := PerspectiveDivide(ProjectToPlane(clipped.P1))
	if err != nil {
		return Segment{}, false, err
	}

	a = p.viewport.MulVec4(a)
	b = p.viewport.MulVec4(b)
	return Segment{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y}, true, nil
}

// DrawMesh transforms mesh by transform and then the camera matrix, and
// appends every visible line to the frame. Lines that break a pipeline
// invariant are logged and skipped so the rest of the frame still draws.
func (p *Pipeline) DrawMesh(mesh WireMesh, transform math3d.Mat4) {
	p.frame.Stats.Meshes++
	m := p.view.Mul(transform)

	if b, ok := mesh.(Bounded); ok {
		if lo, hi, ok := b.Bounds(); ok && BoxOutcode(NewAABB(lo, hi), m, p.zMin) != 0 {
			p.frame.Stats.Culled++
			return
		}
	}

	n := mesh.VertexCount()
	p.verts = p.verts[:0]
	p.codes = p.codes[:0]
	all := ^Outcode(0)
	for i := range n {
		v := m.MulVec4(mesh.Vertex(i))
		code := ComputeOutcode(v, p.zMin)
		p.verts = append(p.verts, v)
		p.codes = append(p.codes, code)
		all &= code
	}

	// Every vertex outside the same plane: nothing can be visible.
	if n > 0 && all != 0 {
		p.frame.Stats.Culled++
		return
	}

	for e := range mesh.EdgeCount() {
		edge := mesh.Edge(e)
		for k := 0; k+1 < len(edge); k++ {
			p.frame.Stats.Lines++
			i0, i1 := edge[k], edge[k+1]
			if i0 < 0 || i0 >= n || i1 < 0 || i1 >= n {
				p.frame.Stats.Skipped++
				Logger().Warn("edge index out of range",
					slog.Int("edge", e), slog.Int("from", i0), slog.Int("to", i1), slog.Int("vertices", n))
				continue
			}
			if p.codes[i0]&p.codes[i1] != 0 {
				p.frame.Stats.Rejected++
				continue
			}

			seg, ok, err := p.ProjectLine(Line{P0: p.verts[i0], P1: p.verts[i1]})
			switch {
			case err != nil:
				p.frame.Stats.Skipped++
				Logger().Warn("skipping edge", slog.Int("edge", e), slog.Any("err", err))
			case !ok:
				p.frame.Stats.Rejected++
			default:
				p.frame.Stats.Visible++
				p.frame.Segments = append(p.frame.Segments, seg)
			}
		}
	}
}

// Placed is a mesh together with the model matrix that places it in the
// world.
type Placed struct {
	Mesh      WireMesh
	Transform math3d.Mat4
}

// RenderModels runs one pass over meshes and returns the frame.
func RenderModels(cam Camera, width, height int, meshes ...Placed) (Frame, error) {
	p, err := NewPipeline(cam, width, height)
	if err != nil {
		return Frame{}, err
	}
	for _, m := range meshes {
		p.DrawMesh(m.Mesh, m.Transform)
	}
	f := p.Frame()
	Logger().Debug("frame rendered",
		slog.Int("meshes", f.Stats.Meshes),
		slog.Int("culled", f.Stats.Culled),
		slog.Int("lines", f.Stats.Lines),
		slog.Int("visible", f.Stats.Visible),
		slog.Int("rejected", f.Stats.Rejected),
		slog.Int("skipped", f.Stats.Skipped))
	return f, nil
}
