// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package anim drives the plasma shader parameters.
//
// A ParamBlock is a bounded triangle-wave oscillator. Each call to Update
// steps the value by Delta in the current direction and reverses the
// direction once a bound is reached. The bound check happens after the
// step, so the value may pass Min or Max by up to one Delta before it
// turns around.
package anim

import (
	"math"

	"github.com/gogpu/plasma/vecmath"
)

// ParamBlock is one oscillating parameter.
type ParamBlock struct {
	Value float32 `yaml:"value" toml:"value"`
	Delta float32 `yaml:"delta" toml:"delta"`
	Min   float32 `yaml:"min"   toml:"min"`
	Max   float32 `yaml:"max"   toml:"max"`
	Sign  float32 `yaml:"sign"  toml:"sign"`
}

// Update advances the block by one step and returns the new value.
func (p *ParamBlock) Update() float32 {
	p.Value += p.Sign * p.Delta
	if p.Value >= p.Max {
		p.Sign = -1
	} else if p.Value <= p.Min {
		p.Sign = 1
	}
	return p.Value
}

// Valid reports whether the block can oscillate.
func (p ParamBlock) Valid() bool {
	return p.Delta > 0 && p.Min < p.Max && (p.Sign == 1 || p.Sign == -1)
}

// DefaultTime returns the time block of the plasma effect.
func DefaultTime() ParamBlock {
	return ParamBlock{Value: 0, Delta: 0.08, Min: 0, Max: 12 * math.Pi, Sign: 1}
}

// DefaultScale returns the scale block of the plasma effect.
func DefaultScale() ParamBlock {
	return ParamBlock{Value: 1, Delta: 0.125, Min: 1, Max: 32, Sign: 1}
}

// Plasma is the time and scale pair fed to one object's fragment stage.
type Plasma struct {
	Time  ParamBlock `yaml:"time"  toml:"time"`
	Scale ParamBlock `yaml:"scale" toml:"scale"`
}

// DefaultPlasma returns a Plasma built from DefaultTime and DefaultScale.
func DefaultPlasma() Plasma {
	return Plasma{Time: DefaultTime(), Scale: DefaultScale()}
}

// Update steps both blocks and returns (time, scale).
func (p *Plasma) Update() vecmath.Vec2 {
	return vecmath.V2(p.Time.Update(), p.Scale.Update())
}
