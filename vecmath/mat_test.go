// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vecmath

import (
	"strings"
	"testing"
)

func TestIndexMapping(t *testing.T) {
	m := Mat4FromCols(V4(0, 1, 2, 3), V4(4, 5, 6, 7), V4(8, 9, 10, 11), V4(12, 13, 14, 15))
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			want := float32(row + col*4)
			if got := m.At(row, col); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", row, col, got, want)
			}
		}
	}
	if Index2(1, 1) != 3 || Index3(2, 1) != 5 || Index4(3, 3) != 15 {
		t.Error("index mapping is not column-major")
	}
}

func TestZeroValueIsNotIdentity(t *testing.T) {
	z2, z3, z4 := Mat2{}, Mat3{}, Mat4{}
	i2, i3, i4 := Ident2(), Ident3(), Ident4()

	tests := []struct {
		name  string
		n     int
		zero  []float32
		ident []float32
	}{
		{"Mat2", 2, z2[:], i2[:]},
		{"Mat3", 3, z3[:], i3[:]},
		{"Mat4", 4, z4[:], i4[:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, v := range tt.zero {
				if v != 0 {
					t.Errorf("zero value element %d = %v, want 0", i, v)
				}
			}
			for i, v := range tt.ident {
				want := float32(0)
				if i%tt.n == i/tt.n {
					want = 1
				}
				if v != want {
					t.Errorf("identity element %d = %v, want %v", i, v, want)
				}
			}
		})
	}
	if z4.Equal(i4) {
		t.Error("Mat4{} equals Ident4()")
	}
	if got := z4.Mul(Mat4FromCols(V4(1, 2, 3, 4), V4(5, 6, 7, 8), V4(9, 10, 11, 12), V4(13, 14, 15, 16))); got != z4 {
		t.Errorf("Mat4{}.Mul(m) = %v, want the zero matrix", got)
	}
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		want float32
	}{
		{"identity", Ident3(), 1},
		{"zero row", Mat3FromCols(V3(0, 1, 2), V3(0, 3, 4), V3(0, 5, 6)), 0},
		{"scale", Mat3FromCols(V3(2, 0, 0), V3(0, 3, 0), V3(0, 0, 4)), 24},
		{"swap rows", Mat3FromCols(V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, 1)), -1},
		{"general", Mat3FromCols(V3(6, 4, 2), V3(1, -2, 8), V3(1, 5, 7)), -306},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Det(); !IsEqualEps(got, tt.want, 1e-4) {
				t.Errorf("Det() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := Ident2().Det(); got != 1 {
		t.Errorf("Ident2().Det() = %v", got)
	}
	if got := Mat2FromCols(V2(1, 3), V2(2, 4)).Det(); got != -2 {
		t.Errorf("Mat2.Det() = %v, want -2", got)
	}
}

func TestMat4Mul(t *testing.T) {
	a := Translate(1, 2, 3)
	b := Scaling(V3(2, 2, 2))

	if got := a.Mul(Ident4()); !got.Equal(a) {
		t.Errorf("A*I = %v", got)
	}
	if got := Ident4().Mul(a); !got.Equal(a) {
		t.Errorf("I*A = %v", got)
	}

	// Scale first, then translate.
	p := a.Mul(b).MulVec(V4(1, 1, 1, 1))
	if !p.Equal(V4(3, 4, 5, 1)) {
		t.Errorf("(T*S)*p = %v, want (3,4,5,1)", p)
	}
	p = b.Mul(a).MulVec(V4(1, 1, 1, 1))
	if !p.Equal(V4(4, 6, 8, 1)) {
		t.Errorf("(S*T)*p = %v, want (4,6,8,1)", p)
	}
}

func TestTranspose(t *testing.T) {
	m := Mat4FromCols(V4(0, 1, 2, 3), V4(4, 5, 6, 7), V4(8, 9, 10, 11), V4(12, 13, 14, 15))
	tr := m.Transpose()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if tr.At(row, col) != m.At(col, row) {
				t.Fatalf("Transpose mismatch at (%d, %d)", row, col)
			}
		}
	}
	if !tr.Transpose().Equal(m) {
		t.Error("Transpose is not an involution")
	}
	m3 := Mat3FromCols(V3(1, 2, 3), V3(4, 5, 6), V3(7, 8, 10))
	if !IsEqualEps(m3.Transpose().Det(), m3.Det(), 1e-4) {
		t.Error("det(M^T) != det(M)")
	}
}

func TestUpper3(t *testing.T) {
	m := Translate(5, 6, 7).Mul(Scaling(V3(2, 3, 4)))
	want := Mat3FromCols(V3(2, 0, 0), V3(0, 3, 0), V3(0, 0, 4))
	if got := m.Upper3(); !got.Equal(want) {
		t.Errorf("Upper3() = %v, want %v", got, want)
	}
}

func TestMatString(t *testing.T) {
	s := Ident4().String()
	if strings.Count(s, "\n") != 5 {
		t.Errorf("String() has %d lines:\n%s", strings.Count(s, "\n"), s)
	}
	if !strings.Contains(s, " 1.000,  0.000,  0.000,  0.000") {
		t.Errorf("String() first row unexpected:\n%s", s)
	}
}

func TestMatIndexOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("At(4, 0) did not panic")
		}
	}()
	Ident4().At(4, 0)
}
