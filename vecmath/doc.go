// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vecmath provides the float32 vector and matrix kernel used to
// build per-frame transforms for the GPU.
//
// # Storage
//
// Matrices are stored column-major in fixed-size arrays. Element (row, col)
// of an NxN matrix lives at index row + col*N; [Index2], [Index3] and
// [Index4] are the only places that encode this mapping, and every builder in
// this package relies on it. The layout matches what WGSL and Metal expect
// for mat4x4<f32>, so a [Mat4] can be copied into a uniform buffer as-is.
//
// # Conventions
//
// Angles are given in degrees. Projection builders follow the left-handed,
// depth-in-[0,1] convention: +Z points into the screen and the near plane
// maps to depth 0.
//
// Comparisons never use exact float equality. [IsZero] and [IsEqual] use
// float32 machine epsilon; the *Eps variants take an explicit tolerance.
package vecmath
