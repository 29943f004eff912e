package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/wireframe/pkg/math3d"
)

func TestPrimitiveCounts(t *testing.T) {
	c := math3d.V3(1, 2, 3)

	tests := []struct {
		name      string
		build     func() (Model, error)
		kind      Kind
		vertices  int
		edges     int
		lineCount int
	}{
		{"cube", func() (Model, error) { return Cube(c, 2, 2, 2) }, KindCube, 8, 6, 12},
		{"cylinder", func() (Model, error) { return Cylinder(c, 1, 2, 8) }, KindCylinder, 16, 10, 24},
		{"cone", func() (Model, error) { return Cone(c, 1, 2, 6) }, KindCone, 7, 7, 12},
		// 2 poles + 3 rings of 8; 3 parallels + 8 meridians of 4 lines
		{"sphere", func() (Model, error) { return Sphere(c, 1, 8, 4) }, KindSphere, 26, 11, 56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if m.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", m.Kind, tt.kind)
			}
			if len(m.Vertices) != tt.vertices {
				t.Errorf("vertices = %d, want %d", len(m.Vertices), tt.vertices)
			}
			if len(m.Edges) != tt.edges {
				t.Errorf("edges = %d, want %d", len(m.Edges), tt.edges)
			}
			if m.LineCount() != tt.lineCount {
				t.Errorf("lines = %d, want %d", m.LineCount(), tt.lineCount)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !m.Center.ApproxEqual(c, 1e-12) {
				t.Errorf("center = %v, want %v", m.Center, c)
			}
		})
	}
}

func TestCubeLayout(t *testing.T) {
	m, err := Cube(math3d.Zero3(), 2, 4, 6)
	if err != nil {
		t.Fatal(err)
	}

	// front top-left and back bottom-right
	if got := m.Vertices[0]; got != math3d.V4(-1, 2, 3, 1) {
		t.Errorf("vertex 0 = %v", got)
	}
	if got := m.Vertices[6]; got != math3d.V4(1, -2, -3, 1) {
		t.Errorf("vertex 6 = %v", got)
	}
	if !m.BoundsMin.ApproxEqual(math3d.V3(-1, -2, -3), 1e-12) ||
		!m.BoundsMax.ApproxEqual(math3d.V3(1, 2, 3), 1e-12) {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
}

func TestSphereOnSurface(t *testing.T) {
	c := math3d.V3(0, 1, 0)
	m, err := Sphere(c, 2, 12, 6)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		if d := v.Vec3().Sub(c).Len(); math.Abs(d-2) > 1e-9 {
			t.Errorf("vertex %d at distance %g, want 2", i, d)
		}
	}
}

func TestPrimitiveErrors(t *testing.T) {
	o := math3d.Zero3()

	tests := []struct {
		name  string
		build func() (Model, error)
	}{
		{"cube zero width", func() (Model, error) { return Cube(o, 0, 1, 1) }},
		{"cylinder two sides", func() (Model, error) { return Cylinder(o, 1, 1, 2) }},
		{"cylinder negative radius", func() (Model, error) { return Cylinder(o, -1, 1, 8) }},
		{"cone zero height", func() (Model, error) { return Cone(o, 1, 0, 8) }},
		{"sphere one stack", func() (Model, error) { return Sphere(o, 1, 8, 1) }},
		{"sphere two slices", func() (Model, error) { return Sphere(o, 1, 2, 4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if !errors.Is(err, ErrInvalidModel) {
				t.Errorf("err = %v, want ErrInvalidModel", err)
			}
		})
	}
}
