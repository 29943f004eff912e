package models

import (
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

// quadDocument builds a document with one quad made of two triangles that
// share the 0-2 diagonal.
func quadDocument() *gltf.Document {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	var buf []byte
	for _, p := range positions {
		for _, f := range p {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	posLen := len(buf)
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(buf), Data: buf}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(buf) - posLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), Count: len(positions), Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: gltf.Index(1), Count: len(indices), Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
	}
}

func TestProcessMeshDedupesSharedEdges(t *testing.T) {
	doc := quadDocument()
	m := NewModel("quad", KindMesh)
	edges := newEdgeSet()

	if err := processMesh(doc, doc.Meshes[0], &m, edges); err != nil {
		t.Fatalf("processMesh: %v", err)
	}

	if got := len(m.Vertices); got != 4 {
		t.Errorf("vertices = %d, want 4", got)
	}
	// 2 triangles = 6 sides, the diagonal counted once
	if got := len(edges.edges); got != 5 {
		t.Errorf("edges = %d, want 5", got)
	}
	if m.Vertices[2].X != 1 || m.Vertices[2].Y != 1 || m.Vertices[2].W != 1 {
		t.Errorf("vertex 2 = %v, want (1, 1, 0, 1)", m.Vertices[2])
	}
}

func TestProcessMeshIndexOutOfRange(t *testing.T) {
	doc := quadDocument()
	doc.Accessors[0].Count = 2 // indices now reference missing positions

	m := NewModel("quad", KindMesh)
	err := processMesh(doc, doc.Meshes[0], &m, newEdgeSet())
	if !errors.Is(err, ErrInvalidModel) {
		t.Errorf("err = %v, want ErrInvalidModel", err)
	}
}

func TestProcessMeshMalformedBuffers(t *testing.T) {
	tests := []struct {
		name   string
		modify func(doc *gltf.Document)
	}{
		{"missing buffer view", func(doc *gltf.Document) { doc.Accessors[0].BufferView = gltf.Index(7) }},
		{"no buffer views", func(doc *gltf.Document) { doc.BufferViews = nil }},
		{"missing buffer", func(doc *gltf.Document) { doc.BufferViews[0].Buffer = 3 }},
		{"view past buffer", func(doc *gltf.Document) { doc.BufferViews[1].ByteLength += 4 }},
		{"accessor past view", func(doc *gltf.Document) { doc.Accessors[1].ByteOffset = 4 }},
		{"negative count", func(doc *gltf.Document) { doc.Accessors[0].Count = -1 }},
		{"missing indices accessor", func(doc *gltf.Document) { doc.Meshes[0].Primitives[0].Indices = gltf.Index(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := quadDocument()
			tt.modify(doc)

			m := NewModel("quad", KindMesh)
			err := processMesh(doc, doc.Meshes[0], &m, newEdgeSet())
			if !errors.Is(err, ErrInvalidModel) {
				t.Errorf("err = %v, want ErrInvalidModel", err)
			}
		})
	}
}

func TestLoadGLBMalformedFile(t *testing.T) {
	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(7), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
		},
		Meshes: []*gltf.Mesh{{
			Name: "broken",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
			}},
		}},
	}
	path := filepath.Join(t.TempDir(), "broken.gltf")
	if err := gltf.Save(doc, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := LoadGLB(path)
	if !errors.Is(err, ErrInvalidModel) {
		t.Errorf("err = %v, want ErrInvalidModel", err)
	}
}

func TestEdgeSetOrder(t *testing.T) {
	s := newEdgeSet()
	s.add(2, 1)
	s.add(1, 2)
	s.add(3, 3)
	s.add(0, 3)

	if len(s.edges) != 2 {
		t.Fatalf("edges = %v, want 2 entries", s.edges)
	}
	if s.edges[0][0] != 2 || s.edges[0][1] != 1 {
		t.Errorf("first edge = %v, want [2 1]", s.edges[0])
	}
}
