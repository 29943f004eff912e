package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
)

func TestPipelineScenarioCube(t *testing.T) {
	cube, err := models.Cube(math3d.Zero3(), 2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	f, err := RenderModels(scenarioCamera(), 500, 500, Placed{Mesh: &cube, Transform: cube.Matrix})
	if err != nil {
		t.Fatal(err)
	}

	if f.Stats.Lines != 12 || f.Stats.Visible != 12 {
		t.Errorf("stats = %+v, want 12 visible lines", f.Stats)
	}
	if f.Stats.Rejected != 0 || f.Stats.Skipped != 0 || f.Stats.Culled != 0 {
		t.Errorf("stats = %+v, want nothing rejected", f.Stats)
	}
	for i, s := range f.Segments {
		for _, c := range [...]float64{s.X0, s.Y0, s.X1, s.Y1} {
			if c < 0 || c > 500 {
				t.Errorf("segment %d = %+v leaves the viewport", i, s)
			}
		}
	}

	// first line starts at the front top-left corner
	if s := f.Segments[0]; math.Abs(s.X0-187.5) > testEps || math.Abs(s.Y0-187.5) > testEps {
		t.Errorf("first segment starts at (%g, %g), want (187.5, 187.5)", s.X0, s.Y0)
	}
}

func TestPipelineCullsMeshOutsideOnePlane(t *testing.T) {
	// behind the camera
	cube, err := models.Cube(math3d.V3(0, 0, 20), 2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	p, err := NewPipeline(NewCamera(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	p.DrawMesh(&cube, cube.Matrix)

	f := p.Frame()
	if f.Stats.Culled != 1 || len(f.Segments) != 0 {
		t.Errorf("stats = %+v, want the mesh culled", f.Stats)
	}
}

func TestPipelinePartiallyVisible(t *testing.T) {
	// a line from inside the frustum to behind the eye
	m, err := models.NewGeneric("ray", []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(0, 0, 8),
	}, [][]int{{0, 1}})
	if err != nil {
		t.Fatal(err)
	}

	p, err := NewPipeline(NewCamera(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	p.DrawMesh(&m, m.Matrix)

	f := p.Frame()
	if f.Stats.Visible != 1 {
		t.Fatalf("stats = %+v, want one visible line", f.Stats)
	}
	// a line along the view axis collapses to the center
	s := f.Segments[0]
	if s.X0 != 50 || s.Y0 != 50 || s.X1 != 50 || s.Y1 != 50 {
		t.Errorf("segment = %+v, want the viewport center", s)
	}
}

func TestPipelineSkipsBadIndex(t *testing.T) {
	mesh := &badMesh{}
	p, err := NewPipeline(NewCamera(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	p.DrawMesh(mesh, math3d.Identity())

	f := p.Frame()
	if f.Stats.Skipped != 1 || f.Stats.Visible != 1 {
		t.Errorf("stats = %+v, want one skipped and one visible", f.Stats)
	}
}

func TestPipelineReset(t *testing.T) {
	cube, _ := models.Cube(math3d.Zero3(), 2, 2, 2)
	p, err := NewPipeline(NewCamera(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	p.DrawMesh(&cube, cube.Matrix)
	p.Reset()

	if f := p.Frame(); len(f.Segments) != 0 || f.Stats != (Stats{}) {
		t.Errorf("after Reset frame = %+v", f)
	}
}

func TestNewPipelineErrors(t *testing.T) {
	if _, err := NewPipeline(NewCamera(), 0, 10); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero width err = %v, want ErrConfiguration", err)
	}

	c := NewCamera()
	c.VUP = math3d.V3(0, 0, 1)
	if _, err := NewPipeline(c, 10, 10); !errors.Is(err, ErrDegenerateBasis) {
		t.Errorf("parallel VUP err = %v, want ErrDegenerateBasis", err)
	}
}

// badMesh has one good line and one line pointing past its vertices.
type badMesh struct{}

func (badMesh) VertexCount() int { return 2 }

func (badMesh) Vertex(i int) math3d.Vec4 {
	return [...]math3d.Vec4{math3d.V4(-1, 0, 0, 1), math3d.V4(1, 0, 0, 1)}[i]
}

func (badMesh) EdgeCount() int { return 2 }

func (badMesh) Edge(i int) []int {
	return [][]int{{0, 1}, {1, 5}}[i]
}

func BenchmarkRenderCube(b *testing.B) {
	cube, _ := models.Cube(math3d.Zero3(), 2, 2, 2)
	p, err := NewPipeline(NewCamera(), 320, 240)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		p.Reset()
		p.DrawMesh(&cube, cube.Matrix)
	}
}

func BenchmarkRenderSphere(b *testing.B) {
	sphere, _ := models.Sphere(math3d.Zero3(), 1.5, 32, 16)
	p, err := NewPipeline(NewCamera(), 320, 240)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		p.Reset()
		p.DrawMesh(&sphere, sphere.Matrix)
	}
}

func TestPipelineIgnoresStaleBounds(t *testing.T) {
	m := models.NewModel("stale", models.KindGeneric)
	m.Vertices = []math3d.Vec4{math3d.V4(-1, 0, 0, 1), math3d.V4(1, 0, 0, 1)}
	m.Edges = [][]int{{0, 1}}
	// set by hand, never calculated: behind the eye
	m.BoundsMin = math3d.V3(0, 0, 20)
	m.BoundsMax = math3d.V3(1, 1, 21)

	p, err := NewPipeline(NewCamera(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	p.DrawMesh(&m, m.Matrix)

	if f := p.Frame(); f.Stats.Culled != 0 || f.Stats.Visible != 1 {
		t.Errorf("stats = %+v, want the line drawn", f.Stats)
	}
}
