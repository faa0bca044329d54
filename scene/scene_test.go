// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"testing"

	"github.com/gogpu/plasma/vecmath"
)

const tol = 1e-4

func TestNewState(t *testing.T) {
	s := New(DefaultConfig())
	if !s.Projection().Equal(vecmath.Ident4()) {
		t.Errorf("initial projection = %v, want identity", s.Projection())
	}
	if s.Rotation() != 0 {
		t.Errorf("initial rotation = %v", s.Rotation())
	}
	if got := s.Model().Col(3); got != vecmath.V4(0, 0, 7, 1) {
		t.Errorf("model translation = %v", got)
	}
	// Eye at origin: the view has no translation.
	if got := s.View().Col(3); got != vecmath.V4(0, 0, 0, 1) {
		t.Errorf("view translation = %v", got)
	}
}

func TestUpdateFirstFrame(t *testing.T) {
	s := New(DefaultConfig())
	mv := s.Update()

	// Zero rotation: only translations remain.
	want := [ObjectCount]vecmath.Vec4{
		vecmath.V4(0, 0, 8.5, 1),
		vecmath.V4(0, 0, 5.5, 1),
	}
	for i := range mv {
		origin := mv[i].MulVec(vecmath.V4(0, 0, 0, 1))
		if !origin.ApproxEqual(want[i], tol) {
			t.Errorf("object %d origin = %v, want %v", i, origin, want[i])
		}
	}
	if s.Rotation() != 2 {
		t.Errorf("rotation after update = %v, want 2", s.Rotation())
	}
}

func TestUpdateComposition(t *testing.T) {
	cfg := DefaultConfig()
	s := New(cfg)
	s.Update()
	s.Update()
	mv := s.Update() // rotation 4

	view := vecmath.LookAt(cfg.Eye, cfg.Center, cfg.Up)
	base := view.Mul(vecmath.Translate(0, 0, 7).Mul(vecmath.Rotate(4, vecmath.V3(0, 1, 0))))
	rxyz := vecmath.Rotate(4, vecmath.V3(1, 1, 1))

	want0 := base.Mul(vecmath.Translate(0, 0, 1.5).Mul(rxyz))
	want1 := base.Mul(vecmath.Translate(0, 0, -1.5).Mul(rxyz))
	if !mv[0].ApproxEqual(want0, tol) {
		t.Errorf("object 0 =\n%v want\n%v", mv[0], want0)
	}
	if !mv[1].ApproxEqual(want1, tol) {
		t.Errorf("object 1 =\n%v want\n%v", mv[1], want1)
	}
	if !s.ModelViewBase().ApproxEqual(base, tol) {
		t.Error("ModelViewBase does not match the composed base")
	}
	if s.Rotation() != 6 {
		t.Errorf("rotation = %v, want 6", s.Rotation())
	}
}

func TestReshapeOrientationTrigger(t *testing.T) {
	s := New(DefaultConfig())

	steps := []struct {
		name        string
		w, h        int
		orientation Orientation
		want        bool
		aspect      float32
	}{
		{"first reshape applies", 640, 480, OrientationLandscapeLeft, true, 640.0 / 480},
		{"same orientation ignored", 800, 400, OrientationLandscapeLeft, false, 640.0 / 480},
		{"zero width skipped", 0, 480, OrientationPortrait, false, 640.0 / 480},
		{"zero height skipped", 480, 0, OrientationPortrait, false, 640.0 / 480},
		{"orientation change applies", 480, 640, OrientationPortrait, true, 480.0 / 640},
	}
	for _, st := range steps {
		if got := s.Reshape(st.w, st.h, st.orientation); got != st.want {
			t.Errorf("%s: Reshape = %v, want %v", st.name, got, st.want)
		}
		if !vecmath.IsEqualEps(s.Aspect(), st.aspect, 1e-6) {
			t.Errorf("%s: aspect = %v, want %v", st.name, s.Aspect(), st.aspect)
		}
	}

	want := vecmath.PerspectiveFov(65, 480.0/640, 0.1, 100)
	if !s.Projection().ApproxEqual(want, tol) {
		t.Errorf("projection =\n%v want\n%v", s.Projection(), want)
	}
}

func TestReshapeAspectTrigger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trigger = TriggerAspect
	s := New(cfg)

	if !s.Reshape(640, 480, OrientationLandscapeLeft) {
		t.Fatal("first reshape not applied")
	}
	if s.Reshape(1280, 960, OrientationLandscapeLeft) {
		t.Error("same aspect recomputed")
	}
	if !s.Reshape(800, 400, OrientationLandscapeLeft) {
		t.Error("aspect change not applied")
	}
	if s.Aspect() != 2 {
		t.Errorf("aspect = %v, want 2", s.Aspect())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"default", func(*Config) {}, nil},
		{"zero fov", func(c *Config) { c.FieldOfView = 0 }, ErrInvalidConfig},
		{"far before near", func(c *Config) { c.Far = 0.05 }, ErrInvalidConfig},
		{"eye on center", func(c *Config) { c.Center = c.Eye }, ErrInvalidConfig},
		{"up along view", func(c *Config) { c.Up = vecmath.V3(0, 0, 2) }, ErrInvalidConfig},
		{"bad trigger", func(c *Config) { c.Trigger = 7 }, ErrInvalidTrigger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTriggerText(t *testing.T) {
	for _, tr := range []Trigger{TriggerOrientation, TriggerAspect} {
		b, err := tr.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", tr, err)
		}
		var got Trigger
		if err := got.UnmarshalText(b); err != nil || got != tr {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, got, err)
		}
	}
	var tr Trigger
	if err := tr.UnmarshalText([]byte("sideways")); !errors.Is(err, ErrInvalidTrigger) {
		t.Errorf("UnmarshalText(sideways) = %v", err)
	}
}

func TestOrientationFor(t *testing.T) {
	tests := []struct {
		w, h int
		want Orientation
	}{
		{640, 480, OrientationLandscapeLeft},
		{480, 640, OrientationPortrait},
		{500, 500, OrientationPortrait},
		{0, 100, OrientationUnknown},
	}
	for _, tt := range tests {
		if got := OrientationFor(tt.w, tt.h); got != tt.want {
			t.Errorf("OrientationFor(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
	if !OrientationLandscapeRight.IsLandscape() || OrientationPortrait.IsLandscape() {
		t.Error("IsLandscape mismatch")
	}
}
