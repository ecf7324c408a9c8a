// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Normal returns the normal of the triangle a, b, c using
// counter-clockwise winding, or the zero vector for a degenerate triangle.
func Normal(a, b, c Vector3) Vector3 {
	nv := c.Sub(b).Cross(a.Sub(b))
	lenSq := nv.LengthSquared()
	if lenSq > 0 {
		return nv.MulScalar(1 / Sqrt(lenSq))
	}
	return Vector3{}
}

// TriangleArea returns the area of the triangle a, b, c.
func TriangleArea(a, b, c Vector3) float32 {
	return c.Sub(b).Cross(a.Sub(b)).Length() * 0.5
}

// TetrahedronVolume returns the unsigned volume of the tetrahedron a, b, c, d.
func TetrahedronVolume(a, b, c, d Vector3) float32 {
	return Abs(b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a))) / 6
}
