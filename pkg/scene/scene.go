// Package scene holds a camera and its models, applies commands to them and
// renders frames from consistent snapshots.
//
// All methods on *Scene are safe for concurrent use: an input goroutine can
// issue commands while a frame loop calls Advance.
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
)

// ErrInvalidScene is returned for scene input that cannot be loaded:
// malformed JSON, missing fields, bad indices or an unusable camera.
var ErrInvalidScene = errors.New("scene: invalid scene")

// Default render target size.
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// Scene is a camera and an ordered list of models.
type Scene struct {
	mu     sync.Mutex
	camera render.Camera
	models []models.Model
	width  int
	height int
}

// New creates a scene holding copies of ms.
func New(cam render.Camera, ms ...models.Model) *Scene {
	return &Scene{
		camera: cam,
		models: cloneModels(ms),
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// WithViewport sets the render target size and returns s.
func (s *Scene) WithViewport(width, height int) *Scene {
	s.SetViewport(width, height)
	return s
}

// SetViewport sets the render target size.
func (s *Scene) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Viewport returns the render target size.
func (s *Scene) Viewport() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Camera returns the current camera.
func (s *Scene) Camera() render.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

// Models returns deep copies of the models.
func (s *Scene) Models() []models.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneModels(s.models)
}

// Len returns the number of models.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.models)
}

// Snapshot returns an independent deep copy of the scene.
func (s *Scene) Snapshot() *Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Scene) snapshotLocked() *Scene {
	return &Scene{
		camera: s.camera,
		models: cloneModels(s.models),
		width:  s.width,
		height: s.height,
	}
}

// Replace swaps in the camera and models of other. The viewport of s is
// kept. A scene that failed to load never reaches Replace, so the current
// scene stays active on load errors.
func (s *Scene) Replace(other *Scene) {
	snap := other.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = snap.camera
	s.models = snap.models
	render.Logger().Info("scene replaced")
}

// Render draws the current state without advancing time.
func (s *Scene) Render() (render.Frame, error) {
	return s.Snapshot().render()
}

// Advance moves every animated model forward by deltaMs milliseconds and
// renders the result. If any model fails to animate, no model moves.
func (s *Scene) Advance(deltaMs float64) (render.Frame, error) {
	s.mu.Lock()
	dt := deltaMs / 1000
	mats := make([]math3d.Mat4, len(s.models))
	for i := range s.models {
		mat, err := models.Animate(&s.models[i], dt)
		if err != nil {
			s.mu.Unlock()
			return render.Frame{}, fmt.Errorf("animate %s: %w", s.models[i].Name, err)
		}
		mats[i] = mat
	}
	for i := range s.models {
		s.models[i].Matrix = mats[i]
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	return snap.render()
}

// render runs one pass. It is only called on snapshots.
func (s *Scene) render() (render.Frame, error) {
	placed := make([]render.Placed, len(s.models))
	for i := range s.models {
		placed[i] = render.Placed{Mesh: &s.models[i], Transform: s.models[i].Matrix}
	}
	return render.RenderModels(s.camera, s.width, s.height, placed...)
}

func cloneModels(ms []models.Model) []models.Model {
	out := make([]models.Model, len(ms))
	for i := range ms {
		out[i] = ms[i].Clone()
	}
	return out
}

// model returns a pointer to model i. Callers hold s.mu.
func (s *Scene) model(i int) (*models.Model, error) {
	if i < 0 || i >= len(s.models) {
		return nil, fmt.Errorf("%w: model index %d out of range [0, %d)", ErrInvalidScene, i, len(s.models))
	}
	return &s.models[i], nil
}

// setCamera validates c and stores it. Callers hold s.mu.
func (s *Scene) setCamera(c render.Camera) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.camera = c
	return nil
}

var _ render.WireMesh = (*models.Model)(nil)
