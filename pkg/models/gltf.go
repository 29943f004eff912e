package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/wireframe/pkg/math3d"
)

// edgeKey is an undirected vertex pair with a < b.
type edgeKey struct{ a, b int }

// edgeSet collects undirected edges in first-seen order.
type edgeSet struct {
	seen  map[edgeKey]struct{}
	edges [][]int
}

func newEdgeSet() *edgeSet {
	return &edgeSet{seen: make(map[edgeKey]struct{})}
}

func (s *edgeSet) add(a, b int) {
	if a == b {
		return
	}
	k := edgeKey{min(a, b), max(a, b)}
	if _, ok := s.seen[k]; ok {
		return
	}
	s.seen[k] = struct{}{}
	s.edges = append(s.edges, []int{a, b})
}

// LoadGLB loads a glTF or GLB file as a wireframe. Every triangle of every
// triangle primitive contributes its three sides; sides shared between
// triangles are drawn once.
func LoadGLB(path string) (Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Model{}, fmt.Errorf("open gltf: %w", err)
	}

	m := NewModel(filepath.Base(path), KindMesh)
	edges := newEdgeSet()

	for _, gm := range doc.Meshes {
		if err := processMesh(doc, gm, &m, edges); err != nil {
			return Model{}, fmt.Errorf("process mesh %q: %w", gm.Name, err)
		}
	}
	if len(m.Vertices) == 0 {
		return Model{}, fmt.Errorf("%w: %s has no triangle geometry", ErrInvalidModel, path)
	}

	m.Edges = edges.edges
	m.CalculateBounds()
	m.Center = m.BoundsCenter()
	return m, nil
}

// processMesh appends the positions and triangle sides of a glTF mesh.
func processMesh(doc *gltf.Document, gm *gltf.Mesh, m *Model, edges *edgeSet) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// lines and points carry no faces
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(m.Vertices)
		for _, p := range positions {
			m.Vertices = append(m.Vertices, p.Point())
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			for _, idx := range [3]int{a, b, c} {
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("%w: index %d of %d positions", ErrInvalidModel, idx, len(positions))
				}
			}
			edges.add(base+a, base+b)
			edges.add(base+b, base+c)
			edges.add(base+c, base+a)
		}
	}
	return nil
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrInvalidModel, accessorIdx, len(doc.Accessors))
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := start + i*stride
		if off+12 > len(data) {
			return nil, fmt.Errorf("%w: accessor reads past end of buffer view", ErrInvalidModel)
		}
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// readIndices reads unsigned scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrInvalidModel, accessorIdx, len(doc.Accessors))
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := start + i*stride
		if off+size > len(data) {
			return nil, fmt.Errorf("%w: accessor reads past end of buffer view", ErrInvalidModel)
		}
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorBytes resolves the buffer view behind accessor and returns its
// bytes with the first element's offset into them and the element stride.
// Reads through the returned slice cannot leave the view.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("%w: accessor has no buffer view", ErrInvalidModel)
	}
	if accessor.Count < 0 || accessor.ByteOffset < 0 {
		return nil, 0, 0, fmt.Errorf("%w: accessor count %d offset %d", ErrInvalidModel, accessor.Count, accessor.ByteOffset)
	}

	viewIdx := *accessor.BufferView
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) || doc.BufferViews[viewIdx] == nil {
		return nil, 0, 0, fmt.Errorf("%w: buffer view %d of %d", ErrInvalidModel, viewIdx, len(doc.BufferViews))
	}
	bufferView := doc.BufferViews[viewIdx]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) || doc.Buffers[bufferView.Buffer] == nil {
		return nil, 0, 0, fmt.Errorf("%w: buffer %d of %d", ErrInvalidModel, bufferView.Buffer, len(doc.Buffers))
	}
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("%w: buffer has no data", ErrInvalidModel)
	}

	lo, hi := bufferView.ByteOffset, bufferView.ByteOffset+bufferView.ByteLength
	if lo < 0 || bufferView.ByteLength < 0 || hi > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("%w: buffer view [%d, %d) outside %d byte buffer", ErrInvalidModel, lo, hi, len(buffer.Data))
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if stride < elemSize {
		return nil, 0, 0, fmt.Errorf("%w: stride %d below element size %d", ErrInvalidModel, stride, elemSize)
	}
	return buffer.Data[lo:hi], accessor.ByteOffset, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
