// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"encoding/binary"
	"math"

	"github.com/tessera3d/tessera/math32"
)

// Vertex is one mesh vertex as laid out in a vertex buffer:
// position, normal, texture coordinate and RGBA color.
type Vertex struct {
	Position math32.Vector3
	Normal   math32.Vector3
	TexCoord math32.Vector2
	Color    math32.Vector4
}

// VertexSize is the size in bytes of an encoded [Vertex].
const VertexSize = 12 * 4

// White is the default vertex color.
var White = math32.Vec4(1, 1, 1, 1)

// appendVertex appends the little-endian float32 encoding of v.
func appendVertex(b []byte, v *Vertex) []byte {
	for _, f := range [12]float32{
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Normal.X, v.Normal.Y, v.Normal.Z,
		v.TexCoord.X, v.TexCoord.Y,
		v.Color.X, v.Color.Y, v.Color.Z, v.Color.W,
	} {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

// DecodeVertex decodes a vertex encoded in a vertex buffer.
func DecodeVertex(b []byte) Vertex {
	var f [12]float32
	for i := range f {
		f[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return Vertex{
		Position: math32.Vec3(f[0], f[1], f[2]),
		Normal:   math32.Vec3(f[3], f[4], f[5]),
		TexCoord: math32.Vec2(f[6], f[7]),
		Color:    math32.Vec4(f[8], f[9], f[10], f[11]),
	}
}

func encodeIndices(idx []uint32) []byte {
	b := make([]byte, 0, 4*len(idx))
	for _, i := range idx {
		b = binary.LittleEndian.AppendUint32(b, i)
	}
	return b
}
