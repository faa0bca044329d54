// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import "fmt"

// Orientation is the host's interface orientation.
type Orientation int

const (
	OrientationUnknown Orientation = iota
	OrientationPortrait
	OrientationPortraitUpsideDown
	OrientationLandscapeLeft
	OrientationLandscapeRight
)

var orientationNames = [...]string{
	OrientationUnknown:            "unknown",
	OrientationPortrait:           "portrait",
	OrientationPortraitUpsideDown: "portrait-upside-down",
	OrientationLandscapeLeft:      "landscape-left",
	OrientationLandscapeRight:     "landscape-right",
}

// String returns the orientation name.
func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return "invalid"
	}
	return orientationNames[o]
}

// IsLandscape reports whether o is one of the landscape orientations.
func (o Orientation) IsLandscape() bool {
	return o == OrientationLandscapeLeft || o == OrientationLandscapeRight
}

// OrientationFor derives an orientation from a drawable size for hosts
// without an orientation signal.
func OrientationFor(width, height int) Orientation {
	switch {
	case width <= 0 || height <= 0:
		return OrientationUnknown
	case width > height:
		return OrientationLandscapeLeft
	default:
		return OrientationPortrait
	}
}

// Trigger selects when Reshape recomputes the projection.
type Trigger int

const (
	// TriggerOrientation recomputes only when the orientation changes.
	TriggerOrientation Trigger = iota
	// TriggerAspect also recomputes when the aspect ratio changes.
	TriggerAspect
)

// String returns the trigger name used in config files.
func (t Trigger) String() string {
	switch t {
	case TriggerOrientation:
		return "orientation"
	case TriggerAspect:
		return "aspect"
	default:
		return "invalid"
	}
}

// ParseTrigger is the inverse of Trigger.String. The empty string selects
// TriggerOrientation.
func ParseTrigger(s string) (Trigger, error) {
	switch s {
	case "", "orientation":
		return TriggerOrientation, nil
	case "aspect":
		return TriggerAspect, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrigger, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Trigger) MarshalText() ([]byte, error) {
	if t != TriggerOrientation && t != TriggerAspect {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrigger, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Trigger) UnmarshalText(b []byte) error {
	v, err := ParseTrigger(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
