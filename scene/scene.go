// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene holds the transform state of the two rotating cubes.
//
// A State owns the view, model and projection matrices and a rotation
// accumulator. Update derives both objects' model-view matrices from a
// shared base transform and advances the rotation. Reshape recomputes the
// projection when the configured Trigger fires.
package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/plasma/vecmath"
)

// Errors returned by scene.
var (
	ErrInvalidConfig  = errors.New("scene: invalid config")
	ErrInvalidTrigger = errors.New("scene: invalid projection trigger")
)

// ObjectCount is the number of objects whose transforms are derived.
const ObjectCount = 2

// Config describes the camera, the shared model transform and the
// per-object offsets.
type Config struct {
	FieldOfView      float32      `yaml:"field_of_view"     toml:"field_of_view"`
	Near             float32      `yaml:"near"              toml:"near"`
	Far              float32      `yaml:"far"               toml:"far"`
	RotationDelta    float32      `yaml:"rotation_delta"    toml:"rotation_delta"`
	Eye              vecmath.Vec3 `yaml:"eye"               toml:"eye"`
	Center           vecmath.Vec3 `yaml:"center"            toml:"center"`
	Up               vecmath.Vec3 `yaml:"up"                toml:"up"`
	ModelTranslation vecmath.Vec3 `yaml:"model_translation" toml:"model_translation"`
	PrimaryOffset    vecmath.Vec3 `yaml:"primary_offset"    toml:"primary_offset"`
	SecondaryOffset  vecmath.Vec3 `yaml:"secondary_offset"  toml:"secondary_offset"`
	Trigger          Trigger      `yaml:"trigger"           toml:"trigger"`
}

// DefaultConfig returns the camera and object placement of the plasma demo.
func DefaultConfig() Config {
	return Config{
		FieldOfView:      65,
		Near:             0.1,
		Far:              100,
		RotationDelta:    2,
		Eye:              vecmath.V3(0, 0, 0),
		Center:           vecmath.V3(0, 0, 1),
		Up:               vecmath.V3(0, 1, 1),
		ModelTranslation: vecmath.V3(0, 0, 7),
		PrimaryOffset:    vecmath.V3(0, 0, 1.5),
		SecondaryOffset:  vecmath.V3(0, 0, -1.5),
		Trigger:          TriggerOrientation,
	}
}

// Validate checks the projection parameters and the look-at frame.
func (c Config) Validate() error {
	if c.FieldOfView <= 0 || c.FieldOfView >= 180 {
		return fmt.Errorf("%w: field of view %v outside (0, 180)", ErrInvalidConfig, c.FieldOfView)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalidConfig, c.Near, c.Far)
	}
	forward := c.Center.Sub(c.Eye)
	if vecmath.IsZero(forward.Len()) {
		return fmt.Errorf("%w: eye and center coincide", ErrInvalidConfig)
	}
	if vecmath.IsZero(c.Up.Cross(forward).Len()) {
		return fmt.Errorf("%w: up is parallel to the view direction", ErrInvalidConfig)
	}
	if c.Trigger != TriggerOrientation && c.Trigger != TriggerAspect {
		return fmt.Errorf("%w: %d", ErrInvalidTrigger, int(c.Trigger))
	}
	return nil
}

// State is the per-renderer transform state. It is not safe for
// concurrent use.
type State struct {
	cfg Config

	aspect      float32
	orientation Orientation
	reshaped    bool

	rotation      float32
	projection    vecmath.Mat4
	view          vecmath.Mat4
	model         vecmath.Mat4
	modelViewBase vecmath.Mat4
}

// New returns a State with the view and model fixed from cfg and an
// identity projection. cfg is not validated; see Config.Validate.
func New(cfg Config) *State {
	return &State{
		cfg:           cfg,
		projection:    vecmath.Ident4(),
		view:          vecmath.LookAt(cfg.Eye, cfg.Center, cfg.Up),
		model:         vecmath.Translation(cfg.ModelTranslation),
		modelViewBase: vecmath.Ident4(),
	}
}

// Update returns the model-view matrices for this frame and then advances
// the rotation by RotationDelta degrees.
func (s *State) Update() [ObjectCount]vecmath.Mat4 {
	ry := vecmath.Rotate(s.rotation, vecmath.V3(0, 1, 0))
	s.modelViewBase = s.view.Mul(s.model.Mul(ry))

	rxyz := vecmath.Rotate(s.rotation, vecmath.V3(1, 1, 1))
	out := [ObjectCount]vecmath.Mat4{
		s.modelViewBase.Mul(vecmath.Translation(s.cfg.PrimaryOffset).Mul(rxyz)),
		s.modelViewBase.Mul(vecmath.Translation(s.cfg.SecondaryOffset).Mul(rxyz)),
	}

	s.rotation += s.cfg.RotationDelta
	return out
}

// Reshape reports whether the projection was recomputed for a drawable of
// the given size. A zero or negative dimension is ignored.
func (s *State) Reshape(width, height int, orientation Orientation) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	aspect := math32.Abs(float32(width) / float32(height))

	changed := !s.reshaped || orientation != s.orientation
	if s.cfg.Trigger == TriggerAspect && !vecmath.IsEqual(aspect, s.aspect) {
		changed = true
	}
	if !changed {
		return false
	}

	s.reshaped = true
	s.orientation = orientation
	s.aspect = aspect
	s.projection = vecmath.PerspectiveFov(s.cfg.FieldOfView, aspect, s.cfg.Near, s.cfg.Far)
	return true
}

// Projection returns the current projection matrix.
func (s *State) Projection() vecmath.Mat4 { return s.projection }

// View returns the look-at matrix.
func (s *State) View() vecmath.Mat4 { return s.view }

// Model returns the shared model translation.
func (s *State) Model() vecmath.Mat4 { return s.model }

// ModelViewBase returns the base transform computed by the last Update.
func (s *State) ModelViewBase() vecmath.Mat4 { return s.modelViewBase }

// Rotation returns the rotation in degrees the next Update will use.
func (s *State) Rotation() float32 { return s.rotation }

// Aspect returns the aspect ratio of the last applied reshape.
func (s *State) Aspect() float32 { return s.aspect }

// Orientation returns the orientation of the last applied reshape.
func (s *State) Orientation() Orientation { return s.orientation }

// FieldOfView returns the vertical field of view in degrees.
func (s *State) FieldOfView() float32 { return s.cfg.FieldOfView }
