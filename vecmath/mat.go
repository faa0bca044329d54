// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vecmath

import (
	"fmt"
	"strings"
)

// Index2 maps (row, col) to the flat index of a column-major 2x2 matrix.
func Index2(row, col int) int { return row + col*2 }

// Index3 maps (row, col) to the flat index of a column-major 3x3 matrix.
func Index3(row, col int) int { return row + col*3 }

// Index4 maps (row, col) to the flat index of a column-major 4x4 matrix.
func Index4(row, col int) int { return row + col*4 }

func checkIndex(n, row, col int) {
	if row < 0 || row >= n || col < 0 || col >= n {
		panic(fmt.Sprintf("vecmath: Mat%d element (%d, %d) out of range", n, row, col))
	}
}

// Mat2 is a column-major 2x2 matrix. The zero value is the zero matrix,
// not the identity; start transforms from Ident2.
type Mat2 [4]float32

// Ident2 returns the 2x2 identity matrix.
func Ident2() Mat2 { return Mat2{1, 0, 0, 1} }

// Mat2FromCols builds a matrix from its two columns.
func Mat2FromCols(c0, c1 Vec2) Mat2 {
	return Mat2{c0.X, c0.Y, c1.X, c1.Y}
}

// At returns element (row, col).
func (m Mat2) At(row, col int) float32 {
	checkIndex(2, row, col)
	return m[Index2(row, col)]
}

// Set assigns element (row, col).
func (m *Mat2) Set(row, col int, v float32) {
	checkIndex(2, row, col)
	m[Index2(row, col)] = v
}

// Col returns column i.
func (m Mat2) Col(i int) Vec2 {
	checkIndex(2, 0, i)
	return Vec2{m[i*2], m[i*2+1]}
}

// Det returns a00*a11 - a01*a10.
func (m Mat2) Det() float32 {
	return m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
}

// MulVec returns m * v.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m[Index2(0, 0)]*v.X + m[Index2(0, 1)]*v.Y,
		Y: m[Index2(1, 0)]*v.X + m[Index2(1, 1)]*v.Y,
	}
}

// Mul returns m * n.
func (m Mat2) Mul(n Mat2) Mat2 {
	var r Mat2
	for col := 0; col < 2; col++ {
		for row := 0; row < 2; row++ {
			var sum float32
			for k := 0; k < 2; k++ {
				sum += m[Index2(row, k)] * n[Index2(k, col)]
			}
			r[Index2(row, col)] = sum
		}
	}
	return r
}

// Transpose returns the transpose of m.
func (m Mat2) Transpose() Mat2 {
	return Mat2{m[0], m[2], m[1], m[3]}
}

// Equal reports whether all elements are equal within Epsilon.
func (m Mat2) Equal(n Mat2) bool { return m.ApproxEqual(n, Epsilon) }

// ApproxEqual reports whether all elements are equal within eps.
func (m Mat2) ApproxEqual(n Mat2, eps float32) bool {
	for i := range m {
		if !IsEqualEps(m[i], n[i], eps) {
			return false
		}
	}
	return true
}

// String formats the matrix row by row.
func (m Mat2) String() string { return formatMatrix(m[:], 2) }

// Mat3 is a column-major 3x3 matrix. The zero value is the zero matrix,
// not the identity; start transforms from Ident3.
type Mat3 [9]float32

// Ident3 returns the 3x3 identity matrix.
func Ident3() Mat3 { return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1} }

// Mat3FromCols builds a matrix from its three columns.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{c0.X, c0.Y, c0.Z, c1.X, c1.Y, c1.Z, c2.X, c2.Y, c2.Z}
}

// At returns element (row, col).
func (m Mat3) At(row, col int) float32 {
	checkIndex(3, row, col)
	return m[Index3(row, col)]
}

// Set assigns element (row, col).
func (m *Mat3) Set(row, col int, v float32) {
	checkIndex(3, row, col)
	m[Index3(row, col)] = v
}

// Col returns column i.
func (m Mat3) Col(i int) Vec3 {
	checkIndex(3, 0, i)
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Det returns the determinant by cofactor expansion along the first row.
func (m Mat3) Det() float32 {
	a00, a01, a02 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	a10, a11, a12 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	a20, a21, a22 := m.At(2, 0), m.At(2, 1), m.At(2, 2)
	return a00*(a11*a22-a12*a21) -
		a01*(a10*a22-a12*a20) +
		a02*(a10*a21-a11*a20)
}

// MulVec returns m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[Index3(0, 0)]*v.X + m[Index3(0, 1)]*v.Y + m[Index3(0, 2)]*v.Z,
		Y: m[Index3(1, 0)]*v.X + m[Index3(1, 1)]*v.Y + m[Index3(1, 2)]*v.Z,
		Z: m[Index3(2, 0)]*v.X + m[Index3(2, 1)]*v.Y + m[Index3(2, 2)]*v.Z,
	}
}

// Mul returns m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[Index3(row, k)] * n[Index3(k, col)]
			}
			r[Index3(row, col)] = sum
		}
	}
	return r
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			r[Index3(col, row)] = m[Index3(row, col)]
		}
	}
	return r
}

// Equal reports whether all elements are equal within Epsilon.
func (m Mat3) Equal(n Mat3) bool { return m.ApproxEqual(n, Epsilon) }

// ApproxEqual reports whether all elements are equal within eps.
func (m Mat3) ApproxEqual(n Mat3, eps float32) bool {
	for i := range m {
		if !IsEqualEps(m[i], n[i], eps) {
			return false
		}
	}
	return true
}

// String formats the matrix row by row.
func (m Mat3) String() string { return formatMatrix(m[:], 3) }

// Mat4 is a column-major 4x4 matrix. Columns are conventionally named
// P, Q, R (basis) and S (translation). The zero value is the zero matrix,
// not the identity; start transforms from Ident4.
type Mat4 [16]float32

// Ident4 returns the 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromCols builds a matrix from its columns P, Q, R, S.
func Mat4FromCols(p, q, r, s Vec4) Mat4 {
	return Mat4{
		p.X, p.Y, p.Z, p.W,
		q.X, q.Y, q.Z, q.W,
		r.X, r.Y, r.Z, r.W,
		s.X, s.Y, s.Z, s.W,
	}
}

// At returns element (row, col).
func (m Mat4) At(row, col int) float32 {
	checkIndex(4, row, col)
	return m[Index4(row, col)]
}

// Set assigns element (row, col).
func (m *Mat4) Set(row, col int, v float32) {
	checkIndex(4, row, col)
	m[Index4(row, col)] = v
}

// Col returns column i.
func (m Mat4) Col(i int) Vec4 {
	checkIndex(4, 0, i)
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// SetCol replaces column i.
func (m *Mat4) SetCol(i int, v Vec4) {
	checkIndex(4, 0, i)
	m[i*4], m[i*4+1], m[i*4+2], m[i*4+3] = v.X, v.Y, v.Z, v.W
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[Index4(row, k)] * n[Index4(k, col)]
			}
			r[Index4(row, col)] = sum
		}
	}
	return r
}

// MulVec returns m * v.
func (m Mat4) MulVec(v Vec4) Vec4 {
	var r Vec4
	for row := 0; row < 4; row++ {
		r.Set(row, m[Index4(row, 0)]*v.X+m[Index4(row, 1)]*v.Y+
			m[Index4(row, 2)]*v.Z+m[Index4(row, 3)]*v.W)
	}
	return r
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[Index4(col, row)] = m[Index4(row, col)]
		}
	}
	return r
}

// Upper3 returns the upper-left 3x3 block.
func (m Mat4) Upper3() Mat3 {
	return Mat3FromCols(m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3())
}

// Equal reports whether all elements are equal within Epsilon.
func (m Mat4) Equal(n Mat4) bool { return m.ApproxEqual(n, Epsilon) }

// ApproxEqual reports whether all elements are equal within eps.
func (m Mat4) ApproxEqual(n Mat4, eps float32) bool {
	for i := range m {
		if !IsEqualEps(m[i], n[i], eps) {
			return false
		}
	}
	return true
}

// String formats the matrix row by row.
func (m Mat4) String() string { return formatMatrix(m[:], 4) }

// formatMatrix prints an n x n column-major matrix one row per line.
func formatMatrix(data []float32, n int) string {
	var b strings.Builder
	b.WriteString("[\n")
	for row := 0; row < n; row++ {
		b.WriteString("   ")
		for col := 0; col < n; col++ {
			fmt.Fprintf(&b, "% .3f", data[row+col*n])
			if col != n-1 {
				b.WriteString(", ")
			}
		}
		if row == n-1 {
			b.WriteString(" ]")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
