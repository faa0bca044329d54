// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vecmath

import "github.com/chewxy/math32"

// Translation returns the identity with its last column set to (t, 1).
func Translation(t Vec3) Mat4 {
	m := Ident4()
	m.SetCol(3, t.Vec4(1))
	return m
}

// Translate is Translation with scalar arguments.
func Translate(x, y, z float32) Mat4 { return Translation(Vec3{x, y, z}) }

// Scaling returns a diagonal scale matrix.
func Scaling(s Vec3) Mat4 {
	m := Ident4()
	m[Index4(0, 0)] = s.X
	m[Index4(1, 1)] = s.Y
	m[Index4(2, 2)] = s.Z
	return m
}

// Rotate returns the rotation of degrees around axis.
//
// The axis is normalized first. A zero axis stays zero after normalization
// and yields diag(c, c, c, 1), which is not a rotation.
func Rotate(degrees float32, axis Vec3) Mat4 {
	u := axis.Normalize()
	c, s := cosSinDegrees(degrees)
	k := 1 - c

	v := u.Mul(s)
	w := u.Mul(k)

	return Mat4FromCols(
		Vec4{w.X*u.X + c, w.X*u.Y + v.Z, w.X*u.Z - v.Y, 0},
		Vec4{w.X*u.Y - v.Z, w.Y*u.Y + c, w.Y*u.Z + v.X, 0},
		Vec4{w.X*u.Z + v.Y, w.Y*u.Z - v.X, w.Z*u.Z + c, 0},
		Vec4{0, 0, 0, 1},
	)
}

// RotateXYZ is Rotate with scalar axis components.
func RotateXYZ(degrees, x, y, z float32) Mat4 { return Rotate(degrees, Vec3{x, y, z}) }

// depthTerms returns R.z and S.z for a [0,1] depth range.
func depthTerms(near, far float32) (zScale, zOffset float32) {
	zScale = far / (far - near)
	return zScale, -near * zScale
}

func perspective(xScale, yScale, near, far float32) Mat4 {
	zScale, zOffset := depthTerms(near, far)
	return Mat4FromCols(
		Vec4{xScale, 0, 0, 0},
		Vec4{0, yScale, 0, 0},
		Vec4{0, 0, zScale, 1},
		Vec4{0, 0, zOffset, 0},
	)
}

// Perspective returns a projection for a near plane of the given size.
func Perspective(width, height, near, far float32) Mat4 {
	return perspective(2*near/width, 2*near/height, near, far)
}

// PerspectiveFov returns a projection from a vertical field of view in
// degrees and a width/height aspect ratio.
func PerspectiveFov(fovY, aspect, near, far float32) Mat4 {
	yScale := 1 / math32.Tan(Radians(fovY)*0.5)
	return perspective(yScale/aspect, yScale, near, far)
}

// PerspectiveFovSize is PerspectiveFov with the aspect taken from a viewport.
func PerspectiveFovSize(fovY, width, height, near, far float32) Mat4 {
	return PerspectiveFov(fovY, width/height, near, far)
}

// LookAt returns a view matrix for an eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	n := center.Sub(eye).Normalize()
	u := up.Cross(n).Normalize()
	v := n.Cross(u).Normalize()
	e := eye.Neg()

	return Mat4FromCols(
		Vec4{u.X, v.X, n.X, 0},
		Vec4{u.Y, v.Y, n.Y, 0},
		Vec4{u.Z, v.Z, n.Z, 0},
		Vec4{u.Dot(e), v.Dot(e), n.Dot(e), 1},
	)
}

// Ortho returns a centered orthographic projection.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	return Mat4FromCols(
		Vec4{2 / (right - left), 0, 0, 0},
		Vec4{0, 2 / (top - bottom), 0, 0},
		Vec4{0, 0, 1 / (far - near), 0},
		Vec4{0, 0, -near / (far - near), 1},
	)
}

// OrthoOffCenter returns an orthographic projection that also moves the
// midpoint of the bounds to the origin.
func OrthoOffCenter(left, right, bottom, top, near, far float32) Mat4 {
	m := Ortho(left, right, bottom, top, near, far)
	m[Index4(0, 3)] = -(left + right) / (right - left)
	m[Index4(1, 3)] = -(top + bottom) / (top - bottom)
	return m
}

// FrustumFov returns a perspective frustum from horizontal and vertical
// fields of view in degrees.
func FrustumFov(fovH, fovV, near, far float32) Mat4 {
	return perspective(
		1/math32.Tan(Radians(fovH)*0.5),
		1/math32.Tan(Radians(fovV)*0.5),
		near, far)
}

// Frustum returns a centered perspective frustum for the given near-plane
// bounds.
func Frustum(left, right, bottom, top, near, far float32) Mat4 {
	return perspective(2*near/(right-left), 2*near/(top-bottom), near, far)
}

// FrustumOffCenter is Frustum with the bounds' midpoint shifted onto the
// view axis.
func FrustumOffCenter(left, right, bottom, top, near, far float32) Mat4 {
	m := Frustum(left, right, bottom, top, near, far)
	m[Index4(0, 2)] = -(right + left) / (right - left)
	m[Index4(1, 2)] = -(top + bottom) / (top - bottom)
	return m
}
