// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cube provides the static geometry of the plasma cube.
package cube

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/plasma/vecmath"
)

// DefaultSize is the half-extent of the rendered cube.
const DefaultSize = 0.75

// Counts of the indexed geometry and of the expanded vertex stream.
const (
	CornerCount = 24
	IndexCount  = 36
	VertexCount = IndexCount
)

// Interleaved vertex layout: position, normal, texcoord.
const (
	PositionOffset = 0
	NormalOffset   = 3 * 4
	TexCoordOffset = 6 * 4
	VertexStride   = 8 * 4
)

// corners lists each cube corner once per face that uses it, as a sign
// pattern applied to the size.
var corners = [CornerCount]vecmath.Vec3{
	{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 1},
}

var normals = [CornerCount]vecmath.Vec3{
	{X: 0, Y: 0, Z: -1}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: -1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: -1},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
	{X: 0, Y: 0, Z: 1},
}

var texCoords = [CornerCount]vecmath.Vec2{
	{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
	{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	{X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0},
	{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
	{X: 1, Y: 0}, {X: 0, Y: 0},
	{X: 1, Y: 1}, {X: 0, Y: 1},
	{X: 0, Y: 0}, {X: 1, Y: 0},
	{X: 0, Y: 1}, {X: 1, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 0},
	{X: 0, Y: 1},
}

var indices = [IndexCount]uint32{
	11, 5, 2,
	8, 11, 2,
	14, 10, 7,
	12, 14, 7,
	19, 15, 13,
	17, 19, 13,
	4, 18, 16,
	1, 4, 16,
	21, 23, 3,
	3, 9, 21,
	6, 0, 22,
	20, 6, 22,
}

// Vertex is one corner of a face.
type Vertex struct {
	Position vecmath.Vec3
	Normal   vecmath.Vec3
	TexCoord vecmath.Vec2
}

// Positions returns the 24 corner positions for a cube of half-extent size.
func Positions(size vecmath.Vec3) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, CornerCount)
	for i, c := range corners {
		out[i] = vecmath.V3(c.X*size.X, c.Y*size.Y, c.Z*size.Z)
	}
	return out
}

// Normals returns the face normal of each corner.
func Normals() []vecmath.Vec3 { return append([]vecmath.Vec3(nil), normals[:]...) }

// TexCoords returns the texture coordinate of each corner.
func TexCoords() []vecmath.Vec2 { return append([]vecmath.Vec2(nil), texCoords[:]...) }

// Indices returns the 12 triangles as corner indices.
func Indices() []uint32 { return append([]uint32(nil), indices[:]...) }

// Vertices expands the indexed geometry into a non-indexed triangle list
// of VertexCount vertices.
func Vertices(size float32) []Vertex {
	pos := Positions(vecmath.V3(size, size, size))
	out := make([]Vertex, IndexCount)
	for i, idx := range indices {
		out[i] = Vertex{Position: pos[idx], Normal: normals[idx], TexCoord: texCoords[idx]}
	}
	return out
}

// Bytes returns Vertices(size) packed little-endian with VertexStride.
func Bytes(size float32) []byte {
	verts := Vertices(size)
	b := make([]byte, len(verts)*VertexStride)
	for i, v := range verts {
		o := i * VertexStride
		put := func(off int, f float32) {
			binary.LittleEndian.PutUint32(b[o+off:], math.Float32bits(f))
		}
		put(PositionOffset, v.Position.X)
		put(PositionOffset+4, v.Position.Y)
		put(PositionOffset+8, v.Position.Z)
		put(NormalOffset, v.Normal.X)
		put(NormalOffset+4, v.Normal.Y)
		put(NormalOffset+8, v.Normal.Z)
		put(TexCoordOffset, v.TexCoord.X)
		put(TexCoordOffset+4, v.TexCoord.Y)
	}
	return b
}
