// Package models holds wireframe models, the generators for primitive
// shapes and the transforms that place and animate them.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/wireframe/pkg/math3d"
)

// ErrInvalidModel is returned for models whose geometry cannot be drawn:
// bad edge indices, too few segments, non-positive sizes.
var ErrInvalidModel = errors.New("models: invalid model")

// Kind tags how a model's geometry was produced.
type Kind int

const (
	KindGeneric  Kind = iota // explicit vertices and edges
	KindCube                 // Cube
	KindCylinder             // Cylinder
	KindSphere               // Sphere
	KindCone                 // Cone
	KindMesh                 // triangles imported from glTF
)

var kindNames = [...]string{
	KindGeneric:  "generic",
	KindCube:     "cube",
	KindCylinder: "cylinder",
	KindSphere:   "sphere",
	KindCone:     "cone",
	KindMesh:     "mesh",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a scene type name to a Kind. The empty string is generic.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindGeneric, nil
	}
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return KindGeneric, fmt.Errorf("%w: unknown model type %q", ErrInvalidModel, s)
}

// Animation spins a model about its center.
type Animation struct {
	Axis math3d.Vec3 // rotation axis
	RPS  float64     // revolutions per second
}

// Model is a wireframe: homogeneous vertices, polyline edges and the
// accumulated transform applied before the camera.
type Model struct {
	Name     string
	Kind     Kind
	Vertices []math3d.Vec4
	Edges    [][]int

	// Center is the pivot for self-rotation and animation.
	Center    math3d.Vec3
	Animation *Animation

	// Matrix is the accumulated model transform.
	Matrix math3d.Mat4

	// Bounding box of the untransformed vertices
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	boundsValid bool
}

// NewModel creates an empty model with an identity transform.
func NewModel(name string, kind Kind) Model {
	return Model{
		Name:   name,
		Kind:   kind,
		Matrix: math3d.Identity(),
	}
}

// NewGeneric builds a model from explicit points and edges. The center
// defaults to the middle of the bounding box.
func NewGeneric(name string, points []math3d.Vec3, edges [][]int) (Model, error) {
	m := NewModel(name, KindGeneric)
	m.Vertices = make([]math3d.Vec4, len(points))
	for i, p := range points {
		m.Vertices[i] = p.Point()
	}
	m.Edges = cloneEdges(edges)
	m.CalculateBounds()
	m.Center = m.BoundsCenter()
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// CalculateBounds computes the axis-aligned bounding box of the vertices.
// Call it again after editing Vertices.
func (m *Model) CalculateBounds() {
	m.boundsValid = len(m.Vertices) > 0
	if !m.boundsValid {
		return
	}

	m.BoundsMin = m.Vertices[0].Vec3()
	m.BoundsMax = m.Vertices[0].Vec3()

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Vec3())
		m.BoundsMax = m.BoundsMax.Max(v.Vec3())
	}
}

// Bounds returns the bounding box and whether CalculateBounds has computed
// it.
func (m *Model) Bounds() (min, max math3d.Vec3, ok bool) {
	return m.BoundsMin, m.BoundsMax, m.boundsValid
}

// BoundsCenter returns the center of the bounding box.
func (m *Model) BoundsCenter() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Validate checks that every edge has at least two indices and that every
// index names a vertex.
func (m *Model) Validate() error {
	n := len(m.Vertices)
	for i, e := range m.Edges {
		if len(e) < 2 {
			return fmt.Errorf("%w: %s edge %d has %d indices", ErrInvalidModel, m.Name, i, len(e))
		}
		for _, idx := range e {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: %s edge %d references vertex %d of %d", ErrInvalidModel, m.Name, i, idx, n)
			}
		}
	}
	if m.Animation != nil && m.Animation.Axis.Len() < math3d.Epsilon {
		return fmt.Errorf("%w: %s animation axis: %w", ErrInvalidModel, m.Name, math3d.ErrInvalidAxis)
	}
	return nil
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int {
	return len(m.Vertices)
}

// Vertex returns vertex i.
func (m *Model) Vertex(i int) math3d.Vec4 {
	return m.Vertices[i]
}

// EdgeCount returns the number of polyline edges.
func (m *Model) EdgeCount() int {
	return len(m.Edges)
}

// Edge returns the vertex indices of edge i.
func (m *Model) Edge(i int) []int {
	return m.Edges[i]
}

// LineCount returns the number of individual lines across all edges.
func (m *Model) LineCount() int {
	n := 0
	for _, e := range m.Edges {
		if len(e) > 1 {
			n += len(e) - 1
		}
	}
	return n
}

// Clone creates a deep copy of the model.
func (m *Model) Clone() Model {
	clone := *m
	clone.Vertices = make([]math3d.Vec4, len(m.Vertices))
	copy(clone.Vertices, m.Vertices)
	clone.Edges = cloneEdges(m.Edges)
	if m.Animation != nil {
		a := *m.Animation
		clone.Animation = &a
	}
	return clone
}

func cloneEdges(edges [][]int) [][]int {
	out := make([][]int, len(edges))
	for i, e := range edges {
		out[i] = append([]int(nil), e...)
	}
	return out
}
