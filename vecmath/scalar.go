// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vecmath

import "github.com/chewxy/math32"

// Epsilon is the float32 machine epsilon (2^-23).
const Epsilon float32 = 1.0 / (1 << 23)

// radiansPerDegree converts degrees to radians.
const radiansPerDegree = math32.Pi / 180

// Radians converts an angle in degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * radiansPerDegree
}

// Degrees converts an angle in radians to degrees.
func Degrees(radians float32) float32 {
	return radians / radiansPerDegree
}

// IsZero reports whether |v| < Epsilon.
func IsZero(v float32) bool {
	return IsZeroEps(v, Epsilon)
}

// IsZeroEps reports whether |v| < eps.
func IsZeroEps(v, eps float32) bool {
	return math32.Abs(v) < eps
}

// IsEqual reports whether a and b differ by less than Epsilon.
func IsEqual(a, b float32) bool {
	return IsZeroEps(a-b, Epsilon)
}

// IsEqualEps reports whether a and b differ by less than eps.
func IsEqualEps(a, b, eps float32) bool {
	return IsZeroEps(a-b, eps)
}

// cosSinDegrees returns the cosine and sine of an angle in degrees.
func cosSinDegrees(degrees float32) (c, s float32) {
	a := Radians(degrees)
	return math32.Cos(a), math32.Sin(a)
}
