package scene

import (
	"fmt"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
)

// Each command runs under the scene lock, so a render pass sees either all
// of it or none of it. A failing command leaves the scene unchanged.

// TranslateCamera moves PRP and SRP together by (dx, dy, dz) in world space.
func (s *Scene) TranslateCamera(dx, dy, dz float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCamera(s.camera.Translated(math3d.V3(dx, dy, dz)))
}

// MoveCamera moves the camera along its own axes: du right, dv up and dn
// backwards.
func (s *Scene) MoveCamera(du, dv, dn float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.camera.MovedLocal(du, dv, dn)
	if err != nil {
		return err
	}
	return s.setCamera(c)
}

// RotateCameraAboutTarget orbits PRP around SRP by angle radians about VUP.
func (s *Scene) RotateCameraAboutTarget(angle float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.camera.OrbitedAboutTarget(angle)
	if err != nil {
		return err
	}
	return s.setCamera(c)
}

// TurnCamera swings SRP around PRP by angle radians about VUP.
func (s *Scene) TurnCamera(angle float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.camera.Turned(angle)
	if err != nil {
		return err
	}
	return s.setCamera(c)
}

// RotateModel rotates model i by angle radians about axis through the
// model's center.
func (s *Scene) RotateModel(i int, axis math3d.Vec3, angle float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(i)
	if err != nil {
		return err
	}
	mat, err := models.Rotated(m, axis, angle)
	if err != nil {
		return fmt.Errorf("rotate %s: %w", m.Name, err)
	}
	m.Matrix = mat
	return nil
}

// SetAnimation makes model i spin about axis at rps revolutions per
// second. An rps of zero stops it.
func (s *Scene) SetAnimation(i int, axis math3d.Vec3, rps float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.model(i)
	if err != nil {
		return err
	}
	if rps == 0 {
		m.Animation = nil
		return nil
	}
	unit, err := axis.Unit()
	if err != nil {
		return fmt.Errorf("animate %s: %w", m.Name, math3d.ErrInvalidAxis)
	}
	m.Animation = &models.Animation{Axis: unit, RPS: rps}
	return nil
}

// SetCamera replaces the camera after validating it.
func (s *Scene) SetCamera(c render.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCamera(c)
}

// Add appends a model and returns its index.
func (s *Scene) Add(m models.Model) (int, error) {
	if err := m.Validate(); err != nil {
		return -1, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m.Clone())
	return len(s.models) - 1, nil
}
