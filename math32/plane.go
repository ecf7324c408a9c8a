// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Plane represents a plane in 3D space by its normal vector and a constant offset.
// When the normal vector is the unit vector the offset is the distance from the origin.
type Plane struct {
	Norm Vector3
	Off  float32
}

// NewPlane creates and returns a new plane from a normal vector and a offset.
func NewPlane(normal Vector3, offset float32) Plane {
	return Plane{normal, offset}
}

// SetDims sets this plane normal from the specified vector components and the offset.
func (p *Plane) SetDims(x, y, z, w float32) {
	p.Norm.Set(x, y, z)
	p.Off = w
}

// SetFromCoplanarPoints sets this plane from three coplanar points.
func (p *Plane) SetFromCoplanarPoints(a, b, c Vector3) {
	p.Norm = Normal(a, b, c)
	p.Off = -p.Norm.Dot(a)
}

// Normalize normalizes this plane normal vector and adjusts the offset.
// Note: will lead to a divide by zero if the plane is invalid.
func (p *Plane) Normalize() {
	invLen := 1 / p.Norm.Length()
	p.Norm = p.Norm.MulScalar(invLen)
	p.Off *= invLen
}

// DistanceToPoint returns the signed distance of the specified point to this plane.
func (p Plane) DistanceToPoint(point Vector3) float32 {
	return p.Norm.Dot(point) + p.Off
}
