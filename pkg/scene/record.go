package scene

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
)

// Record is the JSON form of a scene.
//
//	{
//	  "camera": {"prp": [0,0,5], "srp": [0,0,0], "vup": [0,1,0], "clip": [-1,1,-1,1,1,10]},
//	  "models": [{"type": "cube", "center": [0,0,0], "width": 2, "height": 2, "depth": 2}]
//	}
//
// "view" is accepted as an alias for "camera".
type Record struct {
	Camera *CameraRecord `json:"camera,omitempty"`
	View   *CameraRecord `json:"view,omitempty"`
	Models []ModelRecord `json:"models"`

	// dir resolves relative mesh paths; set by Load.
	dir string
}

// CameraRecord is the JSON form of a camera.
type CameraRecord struct {
	PRP  []float64 `json:"prp"`
	SRP  []float64 `json:"srp"`
	VUP  []float64 `json:"vup"`
	Clip []float64 `json:"clip"`
}

// ModelRecord is the JSON form of a model. Which fields apply depends on
// Type.
type ModelRecord struct {
	Name      string           `json:"name,omitempty"`
	Type      string           `json:"type,omitempty"`
	Vertices  [][]float64      `json:"vertices,omitempty"`
	Edges     [][]int          `json:"edges,omitempty"`
	Center    []float64        `json:"center,omitempty"`
	Animation *AnimationRecord `json:"animation,omitempty"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Sides  int     `json:"sides,omitempty"`
	Slices int     `json:"slices,omitempty"`
	Stacks int     `json:"stacks,omitempty"`
	Path   string  `json:"path,omitempty"`
}

// AnimationRecord describes a spin. Axis is either a letter ("x", "y",
// "z") or a 3-vector.
type AnimationRecord struct {
	Axis json.RawMessage `json:"axis"`
	RPS  float64         `json:"rps"`
}

// Defaults for primitives whose segment counts are omitted.
const (
	defaultSides  = 16
	defaultSlices = 16
	defaultStacks = 8
)

// Parse decodes a JSON scene.
func Parse(data []byte) (*Scene, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidScene, err)
	}
	return FromRecord(rec)
}

// Load reads and parses a JSON scene file. Mesh paths are resolved
// relative to the file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidScene, filepath.Base(path), err)
	}
	rec.dir = filepath.Dir(path)

	s, err := FromRecord(rec)
	if err != nil {
		return nil, err
	}
	render.Logger().Info("scene loaded", slog.String("path", path), slog.Int("models", len(s.models)))
	return s, nil
}

// FromRecord validates rec and builds a scene from it.
func FromRecord(rec Record) (*Scene, error) {
	cr := rec.Camera
	if cr == nil {
		cr = rec.View
	}
	if cr == nil {
		return nil, fmt.Errorf("%w: missing camera", ErrInvalidScene)
	}
	cam, err := cr.camera()
	if err != nil {
		return nil, err
	}

	ms := make([]models.Model, 0, len(rec.Models))
	for i, mr := range rec.Models {
		m, err := mr.model(rec.dir)
		if err != nil {
			return nil, fmt.Errorf("%w: model %d: %w", ErrInvalidScene, i, err)
		}
		if mr.Name != "" {
			m.Name = mr.Name
		} else if m.Name == "" {
			m.Name = fmt.Sprintf("%s-%d", m.Kind, i)
		}
		ms = append(ms, m)
	}

	return New(cam, ms...), nil
}

func (cr *CameraRecord) camera() (render.Camera, error) {
	prp, err := vec3(cr.PRP, "prp")
	if err != nil {
		return render.Camera{}, err
	}
	srp, err := vec3(cr.SRP, "srp")
	if err != nil {
		return render.Camera{}, err
	}
	vup, err := vec3(cr.VUP, "vup")
	if err != nil {
		return render.Camera{}, err
	}
	clip, err := render.ClipFromSlice(cr.Clip)
	if err != nil {
		return render.Camera{}, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	cam := render.Camera{PRP: prp, SRP: srp, VUP: vup, Clip: clip}
	if err := cam.Validate(); err != nil {
		return render.Camera{}, fmt.Errorf("%w: camera: %w", ErrInvalidScene, err)
	}
	return cam, nil
}

func (mr *ModelRecord) model(dir string) (models.Model, error) {
	kind, err := models.ParseKind(mr.Type)
	if err != nil {
		return models.Model{}, err
	}

	center := math3d.Zero3()
	if mr.Center != nil {
		if center, err = vec3(mr.Center, "center"); err != nil {
			return models.Model{}, err
		}
	}

	var m models.Model
	switch kind {
	case models.KindGeneric:
		m, err = mr.generic()
	case models.KindCube:
		m, err = models.Cube(center, mr.Width, mr.Height, mr.Depth)
	case models.KindCylinder:
		m, err = models.Cylinder(center, mr.Radius, mr.Height, orDefault(mr.Sides, defaultSides))
	case models.KindCone:
		m, err = models.Cone(center, mr.Radius, mr.Height, orDefault(mr.Sides, defaultSides))
	case models.KindSphere:
		m, err = models.Sphere(center, mr.Radius,
			orDefault(mr.Slices, defaultSlices), orDefault(mr.Stacks, defaultStacks))
	case models.KindMesh:
		m, err = mr.mesh(dir)
	}
	if err != nil {
		return models.Model{}, err
	}

	// An explicit center overrides the computed pivot of generic and mesh
	// models.
	if mr.Center != nil {
		m.Center = center
	}

	if mr.Animation != nil {
		a, err := mr.Animation.animation()
		if err != nil {
			return models.Model{}, err
		}
		m.Animation = &a
	}
	if err := m.Validate(); err != nil {
		return models.Model{}, err
	}
	return m, nil
}

func (mr *ModelRecord) generic() (models.Model, error) {
	if len(mr.Vertices) == 0 {
		return models.Model{}, fmt.Errorf("%w: no vertices", ErrInvalidScene)
	}
	pts := make([]math3d.Vec3, len(mr.Vertices))
	for i, v := range mr.Vertices {
		p, err := vec3(v, fmt.Sprintf("vertex %d", i))
		if err != nil {
			return models.Model{}, err
		}
		pts[i] = p
	}
	return models.NewGeneric(mr.Name, pts, mr.Edges)
}

func (mr *ModelRecord) mesh(dir string) (models.Model, error) {
	if mr.Path == "" {
		return models.Model{}, fmt.Errorf("%w: mesh without path", ErrInvalidScene)
	}
	path := mr.Path
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	return models.LoadGLB(path)
}

func (ar *AnimationRecord) animation() (models.Animation, error) {
	var axis math3d.Vec3
	var name string
	var vec []float64
	switch {
	case json.Unmarshal(ar.Axis, &name) == nil:
		a, err := models.AxisVector(name)
		if err != nil {
			return models.Animation{}, err
		}
		axis = a
	case json.Unmarshal(ar.Axis, &vec) == nil:
		a, err := vec3(vec, "animation axis")
		if err != nil {
			return models.Animation{}, err
		}
		axis = a
	default:
		return models.Animation{}, fmt.Errorf("%w: animation axis must be a letter or a 3-vector", ErrInvalidScene)
	}

	unit, err := axis.Unit()
	if err != nil {
		return models.Animation{}, fmt.Errorf("%w: animation axis: %w", ErrInvalidScene, math3d.ErrInvalidAxis)
	}
	return models.Animation{Axis: unit, RPS: ar.RPS}, nil
}

func vec3(v []float64, what string) (math3d.Vec3, error) {
	if len(v) != 3 {
		return math3d.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidScene, what, len(v))
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}
