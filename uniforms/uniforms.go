// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package uniforms defines the per-frame uniform data of the two plasma
// objects and its byte layout inside one ring slot.
//
// A slot holds a vertex block followed by a fragment block:
//
//	offset 0                 vertex[0]  vertex[1]
//	offset VertexBlockSize   fragment[0] fragment[1]
//
// Strides may be padded for backends that require aligned binding offsets.
package uniforms

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/plasma/vecmath"
)

// ObjectCount is the number of objects drawn per frame.
const ObjectCount = 2

// Unpadded sizes of the uniform structs in bytes.
const (
	VertexSize   = 2 * 16 * 4
	FragmentSize = 3 * 4
)

// Fragment kinds select the plasma variant in the shader.
const (
	KindPrimary   uint32 = 1
	KindSecondary uint32 = 2
)

// Errors returned by uniforms.
var (
	ErrInvalidLayout = errors.New("uniforms: invalid layout")
	ErrShortBuffer   = errors.New("uniforms: destination too small")
)

// Vertex is the vertex-stage uniform of one object.
type Vertex struct {
	ModelView  vecmath.Mat4
	Projection vecmath.Mat4
}

// Fragment is the fragment-stage uniform of one object.
type Fragment struct {
	Time  float32
	Scale float32
	Kind  uint32
}

// Frame is everything written into one slot.
type Frame struct {
	Vertex   [ObjectCount]Vertex
	Fragment [ObjectCount]Fragment
}

// NewFrame returns a Frame with identity matrices and the default kinds.
func NewFrame() Frame {
	var f Frame
	for i := range f.Vertex {
		f.Vertex[i] = Vertex{ModelView: vecmath.Ident4(), Projection: vecmath.Ident4()}
	}
	f.Fragment[0].Kind = KindPrimary
	f.Fragment[1].Kind = KindSecondary
	return f
}

// SetProjection copies p into every object's vertex uniform.
func (f *Frame) SetProjection(p vecmath.Mat4) {
	for i := range f.Vertex {
		f.Vertex[i].Projection = p
	}
}

// Layout is the placement of a Frame inside a slot.
type Layout struct {
	VertexStride   uint64
	FragmentStride uint64
}

// Packed returns the tightly packed layout.
func Packed() Layout {
	return Layout{VertexStride: VertexSize, FragmentStride: FragmentSize}
}

// Aligned returns a layout with both strides rounded up to align.
func Aligned(align uint64) Layout {
	return Layout{
		VertexStride:   alignUp(VertexSize, align),
		FragmentStride: alignUp(FragmentSize, align),
	}
}

func alignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// Validate checks that each stride fits its struct and is 4-byte aligned.
func (l Layout) Validate() error {
	if l.VertexStride < VertexSize || l.VertexStride%4 != 0 {
		return fmt.Errorf("%w: vertex stride %d", ErrInvalidLayout, l.VertexStride)
	}
	if l.FragmentStride < FragmentSize || l.FragmentStride%4 != 0 {
		return fmt.Errorf("%w: fragment stride %d", ErrInvalidLayout, l.FragmentStride)
	}
	return nil
}

// VertexBlockSize is the size of all vertex uniforms in a slot.
func (l Layout) VertexBlockSize() uint64 { return ObjectCount * l.VertexStride }

// FragmentBlockSize is the size of all fragment uniforms in a slot.
func (l Layout) FragmentBlockSize() uint64 { return ObjectCount * l.FragmentStride }

// SlotSize is the number of bytes one frame occupies.
func (l Layout) SlotSize() uint64 { return l.VertexBlockSize() + l.FragmentBlockSize() }

// Offsets returns the byte offsets of object i's vertex and fragment
// uniforms within a slot.
func (l Layout) Offsets(i int) (vertex, fragment uint64) {
	return uint64(i) * l.VertexStride, l.VertexBlockSize() + uint64(i)*l.FragmentStride
}

// Encode writes f into dst using little-endian float32 and uint32 values.
// Padding bytes are zeroed. dst must hold at least SlotSize bytes.
func (l Layout) Encode(dst []byte, f *Frame) error {
	size := l.SlotSize()
	if uint64(len(dst)) < size {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(dst), size)
	}
	clear(dst[:size])

	for i := range f.Vertex {
		vo, fo := l.Offsets(i)
		putMat4(dst[vo:], &f.Vertex[i].ModelView)
		putMat4(dst[vo+64:], &f.Vertex[i].Projection)

		fr := f.Fragment[i]
		binary.LittleEndian.PutUint32(dst[fo:], math.Float32bits(fr.Time))
		binary.LittleEndian.PutUint32(dst[fo+4:], math.Float32bits(fr.Scale))
		binary.LittleEndian.PutUint32(dst[fo+8:], fr.Kind)
	}
	return nil
}

// Bytes returns a newly allocated encoding of f.
func (l Layout) Bytes(f *Frame) []byte {
	b := make([]byte, l.SlotSize())
	_ = l.Encode(b, f)
	return b
}

func putMat4(dst []byte, m *vecmath.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
