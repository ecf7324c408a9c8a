// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box3 is an axis-aligned 3D bounding box given by its minimum
// and maximum corners. An empty box has Max < Min on some axis.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3 returns a new [Box3] from the given minimum and maximum x, y, and z coordinates.
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{Vec3(x0, y0, z0), Vec3(x1, y1, z1)}
}

// B3Empty returns an empty [Box3] that any point expands.
func B3Empty() Box3 {
	return Box3{Min: Vector3Scalar(Infinity), Max: Vector3Scalar(-Infinity)}
}

// B3FromPoints returns the smallest [Box3] containing all of the given points.
func B3FromPoints(points ...Vector3) Box3 {
	bx := B3Empty()
	for _, p := range points {
		bx.ExpandByPoint(p)
	}
	return bx
}

// SetEmpty resets the box to [B3Empty].
func (b *Box3) SetEmpty() {
	*b = B3Empty()
}

// IsEmpty returns true if Max < Min on any axis.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandByPoint grows the box to include the point.
func (b *Box3) ExpandByPoint(p Vector3) {
	b.Min.SetMin(p)
	b.Max.SetMax(p)
}

// ExpandByBox grows the box to include the other box.
func (b *Box3) ExpandByBox(o Box3) {
	b.ExpandByPoint(o.Min)
	b.ExpandByPoint(o.Max)
}

// ExpandByScalar pads the box by s on every side.
func (b *Box3) ExpandByScalar(s float32) {
	b.Min.SetSubScalar(s)
	b.Max.SetAddScalar(s)
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size returns Max - Min.
func (b Box3) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether p is inside the box, boundary included.
func (b Box3) ContainsPoint(p Vector3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether o lies entirely inside the box.
func (b Box3) ContainsBox(o Box3) bool {
	return b.ContainsPoint(o.Min) && b.ContainsPoint(o.Max)
}

// IntersectsBox reports whether the two boxes overlap, touching included.
func (b Box3) IntersectsBox(o Box3) bool {
	return o.Max.X >= b.Min.X && o.Min.X <= b.Max.X &&
		o.Max.Y >= b.Min.Y && o.Min.Y <= b.Max.Y &&
		o.Max.Z >= b.Min.Z && o.Min.Z <= b.Max.Z
}

// MulMatrix4 transforms the box by m and returns the axis-aligned box
// spanning the result. For each output axis the smaller and larger of
// the two scaled corner components are summed per input axis.
func (b Box3) MulMatrix4(m *Matrix4) Box3 {
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}
	var mn, mx [3]float32
	for row := 0; row < 3; row++ {
		mn[row] = m[12+row]
		mx[row] = m[12+row]
		for col := 0; col < 3; col++ {
			e := m[col*4+row]
			a, c := e*lo[col], e*hi[col]
			mn[row] += Min(a, c)
			mx[row] += Max(a, c)
		}
	}
	return Box3{Vec3(mn[0], mn[1], mn[2]), Vec3(mx[0], mx[1], mx[2])}
}
