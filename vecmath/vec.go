// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vecmath

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 is a 2-component float32 vector.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience constructor for Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// At returns component i. It panics if i is not 0 or 1.
func (v Vec2) At(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic(fmt.Sprintf("vecmath: Vec2 index %d out of range", i))
}

// Set assigns component i. It panics if i is not 0 or 1.
func (v *Vec2) Set(i int, x float32) {
	switch i {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		panic(fmt.Sprintf("vecmath: Vec2 index %d out of range", i))
	}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float32 { return v.X*w.X + v.Y*w.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. A vector shorter than Epsilon
// is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Equal reports whether v and w are component-wise equal within Epsilon.
func (v Vec2) Equal(w Vec2) bool {
	return IsEqual(v.X, w.X) && IsEqual(v.Y, w.Y)
}

// ApproxEqual reports whether v and w are component-wise equal within eps.
func (v Vec2) ApproxEqual(w Vec2, eps float32) bool {
	return IsEqualEps(v.X, w.X, eps) && IsEqualEps(v.Y, w.Y, eps)
}

// Vec3 is a 3-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience constructor for Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// At returns component i. It panics if i is outside [0, 3).
func (v Vec3) At(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("vecmath: Vec3 index %d out of range", i))
}

// Set assigns component i. It panics if i is outside [0, 3).
func (v *Vec3) Set(i int, x float32) {
	switch i {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	case 2:
		v.Z = x
	default:
		panic(fmt.Sprintf("vecmath: Vec3 index %d out of range", i))
	}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Mul returns v scaled by s.
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the right-handed cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. A vector shorter than Epsilon
// is returned unchanged, so the zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Equal reports whether v and w are component-wise equal within Epsilon.
func (v Vec3) Equal(w Vec3) bool {
	return IsEqual(v.X, w.X) && IsEqual(v.Y, w.Y) && IsEqual(v.Z, w.Z)
}

// ApproxEqual reports whether v and w are component-wise equal within eps.
func (v Vec3) ApproxEqual(w Vec3, eps float32) bool {
	return IsEqualEps(v.X, w.X, eps) && IsEqualEps(v.Y, w.Y, eps) && IsEqualEps(v.Z, w.Z, eps)
}

// Vec4 returns v extended with the given w component.
func (v Vec3) Vec4(w float32) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

// Vec4 is a 4-component float32 vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience constructor for Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// At returns component i. It panics if i is outside [0, 4).
func (v Vec4) At(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	case 3:
		return v.W
	}
	panic(fmt.Sprintf("vecmath: Vec4 index %d out of range", i))
}

// Set assigns component i. It panics if i is outside [0, 4).
func (v *Vec4) Set(i int, x float32) {
	switch i {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	case 2:
		v.Z = x
	case 3:
		v.W = x
	default:
		panic(fmt.Sprintf("vecmath: Vec4 index %d out of range", i))
	}
}

// Add returns v + w.
func (v Vec4) Add(w Vec4) Vec4 { return Vec4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W} }

// Sub returns v - w.
func (v Vec4) Sub(w Vec4) Vec4 { return Vec4{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.W - w.W} }

// Mul returns v scaled by s.
func (v Vec4) Mul(s float32) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }

// Neg returns -v.
func (v Vec4) Neg() Vec4 { return Vec4{-v.X, -v.Y, -v.Z, -v.W} }

// Dot returns the dot product of v and w.
func (v Vec4) Dot(w Vec4) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z + v.W*w.W }

// Len returns the Euclidean length of v.
func (v Vec4) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. A vector shorter than Epsilon
// is returned unchanged.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return Vec4{v.X / l, v.Y / l, v.Z / l, v.W / l}
}

// Vec3 drops the W component.
func (v Vec4) Vec3() Vec3 { return Vec3{v.X, v.Y, v.Z} }

// Equal reports whether v and w are component-wise equal within Epsilon.
func (v Vec4) Equal(w Vec4) bool {
	return IsEqual(v.X, w.X) && IsEqual(v.Y, w.Y) && IsEqual(v.Z, w.Z) && IsEqual(v.W, w.W)
}

// ApproxEqual reports whether v and w are component-wise equal within eps.
func (v Vec4) ApproxEqual(w Vec4, eps float32) bool {
	return IsEqualEps(v.X, w.X, eps) && IsEqualEps(v.Y, w.Y, eps) &&
		IsEqualEps(v.Z, w.Z, eps) && IsEqualEps(v.W, w.W, eps)
}
