package models

import (
	"errors"
	"testing"

	"github.com/taigrr/wireframe/pkg/math3d"
)

func TestGrid(t *testing.T) {
	m, err := Grid(-1, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	// 5 lines each way
	if m.EdgeCount() != 10 || m.VertexCount() != 20 {
		t.Errorf("grid has %d edges and %d vertices, want 10 and 20", m.EdgeCount(), m.VertexCount())
	}
	if !m.BoundsMin.ApproxEqual(math3d.V3(-2, -1, -2), 1e-12) || !m.BoundsMax.ApproxEqual(math3d.V3(2, -1, 2), 1e-12) {
		t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}

	if _, err := Grid(0, 1, 2); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("step > size err = %v", err)
	}
}

func TestAxesAndMarker(t *testing.T) {
	a, err := Axes(2)
	if err != nil {
		t.Fatal(err)
	}
	if a.LineCount() != 3 || a.Vertex(2) != math3d.V4(0, 2, 0, 1) {
		t.Errorf("axes = %+v", a)
	}

	p := math3d.V3(1, 2, 3)
	mk, err := Marker(p, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if mk.BoundsCenter() != p || mk.LineCount() != 3 {
		t.Errorf("marker center %v lines %d", mk.BoundsCenter(), mk.LineCount())
	}

	if _, err := Axes(0); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Axes(0) err = %v", err)
	}
	if _, err := Marker(p, -1); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Marker(-1) err = %v", err)
	}
}
