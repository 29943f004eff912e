package models

import (
	"errors"
	"testing"

	"github.com/taigrr/wireframe/pkg/math3d"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindGeneric, false},
		{"generic", KindGeneric, false},
		{"Cube", KindCube, false},
		{"cylinder", KindCylinder, false},
		{"SPHERE", KindSphere, false},
		{"cone", KindCone, false},
		{"mesh", KindMesh, false},
		{"torus", KindGeneric, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidModel) {
				t.Errorf("err = %v, want ErrInvalidModel", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewGeneric(t *testing.T) {
	pts := []math3d.Vec3{
		math3d.V3(-1, 0, 0),
		math3d.V3(1, 0, 0),
		math3d.V3(1, 2, 0),
	}
	m, err := NewGeneric("tri", pts, [][]int{{0, 1, 2, 0}})
	if err != nil {
		t.Fatalf("NewGeneric: %v", err)
	}

	if m.Kind != KindGeneric {
		t.Errorf("kind = %v, want generic", m.Kind)
	}
	if !m.Center.ApproxEqual(math3d.V3(0, 1, 0), 1e-12) {
		t.Errorf("center = %v, want (0, 1, 0)", m.Center)
	}
	if m.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", m.LineCount())
	}
	if m.Vertex(2).W != 1 {
		t.Errorf("vertex w = %g, want 1", m.Vertex(2).W)
	}
	if m.Matrix != math3d.Identity() {
		t.Error("new model should start with identity transform")
	}
}

func TestValidate(t *testing.T) {
	pts := []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0)}

	tests := []struct {
		name  string
		edges [][]int
	}{
		{"index past end", [][]int{{0, 2}}},
		{"negative index", [][]int{{-1, 0}}},
		{"single index", [][]int{{0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeneric("bad", pts, tt.edges)
			if !errors.Is(err, ErrInvalidModel) {
				t.Errorf("err = %v, want ErrInvalidModel", err)
			}
		})
	}

	t.Run("zero animation axis", func(t *testing.T) {
		m, err := NewGeneric("spin", pts, [][]int{{0, 1}})
		if err != nil {
			t.Fatal(err)
		}
		m.Animation = &Animation{RPS: 1}
		err = m.Validate()
		if !errors.Is(err, ErrInvalidModel) || !errors.Is(err, math3d.ErrInvalidAxis) {
			t.Errorf("err = %v, want ErrInvalidModel and ErrInvalidAxis", err)
		}
	})
}

func TestCloneIsDeep(t *testing.T) {
	m, err := Cube(math3d.Zero3(), 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	m.Animation = &Animation{Axis: math3d.Up(), RPS: 1}

	c := m.Clone()
	c.Vertices[0].X = 99
	c.Edges[0][0] = 7
	c.Animation.RPS = 5

	if m.Vertices[0].X == 99 {
		t.Error("clone shares vertices")
	}
	if m.Edges[0][0] == 7 {
		t.Error("clone shares edges")
	}
	if m.Animation.RPS != 1 {
		t.Error("clone shares animation")
	}
}
