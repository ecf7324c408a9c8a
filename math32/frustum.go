// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Frustum represents a frustum as 6 planes with normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix creates and returns a Frustum based on the provided
// view-projection matrix.
func NewFrustumFromMatrix(m *Matrix4) *Frustum {
	f := new(Frustum)
	f.SetFromMatrix(m)
	return f
}

// SetFromMatrix sets the frustum's planes based on the specified view-projection Matrix4.
func (f *Frustum) SetFromMatrix(m *Matrix4) {
	me0, me1, me2, me3 := m[0], m[1], m[2], m[3]
	me4, me5, me6, me7 := m[4], m[5], m[6], m[7]
	me8, me9, me10, me11 := m[8], m[9], m[10], m[11]
	me12, me13, me14, me15 := m[12], m[13], m[14], m[15]

	f.Planes[0].SetDims(me3-me0, me7-me4, me11-me8, me15-me12)
	f.Planes[1].SetDims(me3+me0, me7+me4, me11+me8, me15+me12)
	f.Planes[2].SetDims(me3+me1, me7+me5, me11+me9, me15+me13)
	f.Planes[3].SetDims(me3-me1, me7-me5, me11-me9, me15-me13)
	f.Planes[4].SetDims(me3-me2, me7-me6, me11-me10, me15-me14)
	f.Planes[5].SetDims(me3+me2, me7+me6, me11+me10, me15+me14)

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
}

// IntersectsBox determines whether the specified box is intersecting the frustum.
// The test is conservative: boxes near frustum corners may report true.
func (f *Frustum) IntersectsBox(box Box3) bool {
	var p Vector3
	for _, plane := range f.Planes {
		// positive vertex: the box corner furthest along the plane normal
		if plane.Norm.X > 0 {
			p.X = box.Max.X
		} else {
			p.X = box.Min.X
		}
		if plane.Norm.Y > 0 {
			p.Y = box.Max.Y
		} else {
			p.Y = box.Min.Y
		}
		if plane.Norm.Z > 0 {
			p.Z = box.Max.Z
		} else {
			p.Z = box.Min.Z
		}
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint determines whether the frustum contains the specified point.
func (f *Frustum) ContainsPoint(point Vector3) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(point) < 0 {
			return false
		}
	}
	return true
}
