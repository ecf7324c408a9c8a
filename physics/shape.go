// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/tessera3d/tessera/math32"
)

// Shape is a collision proxy spanning a set of vertex bodies.
// A shape does not own its bodies; they must outlive it.
type Shape interface {
	Proxy

	// Vertices returns the bodies spanned by the shape.
	Vertices() []*Body

	// UpdateBBox recomputes the bounding box from the vertex positions.
	UpdateBBox()
}

// TriangleShape spans three vertex bodies.
type TriangleShape struct {
	V    [3]*Body
	bbox math32.Box3
}

// NewTriangleShape returns a triangle over the given bodies,
// with its bounding box computed.
func NewTriangleShape(a, b, c *Body) *TriangleShape {
	ts := &TriangleShape{V: [3]*Body{a, b, c}}
	ts.UpdateBBox()
	return ts
}

func (ts *TriangleShape) Vertices() []*Body { return ts.V[:] }

func (ts *TriangleShape) BBox() math32.Box3 { return ts.bbox }

func (ts *TriangleShape) UpdateBBox() {
	ts.bbox = bodiesBBox(ts.V[:])
}

// Normal returns the unit normal of the triangle, by counter-clockwise winding.
func (ts *TriangleShape) Normal() math32.Vector3 {
	return math32.Normal(ts.V[0].Position(), ts.V[1].Position(), ts.V[2].Position())
}

// TetrahedronShape spans four vertex bodies.
type TetrahedronShape struct {
	V    [4]*Body
	bbox math32.Box3
}

// NewTetrahedronShape returns a tetrahedron over the given bodies,
// with its bounding box computed.
func NewTetrahedronShape(a, b, c, d *Body) *TetrahedronShape {
	ts := &TetrahedronShape{V: [4]*Body{a, b, c, d}}
	ts.UpdateBBox()
	return ts
}

func (ts *TetrahedronShape) Vertices() []*Body { return ts.V[:] }

func (ts *TetrahedronShape) BBox() math32.Box3 { return ts.bbox }

func (ts *TetrahedronShape) UpdateBBox() {
	ts.bbox = bodiesBBox(ts.V[:])
}

// Volume returns the unsigned volume of the tetrahedron.
func (ts *TetrahedronShape) Volume() float32 {
	return math32.TetrahedronVolume(ts.V[0].Position(), ts.V[1].Position(), ts.V[2].Position(), ts.V[3].Position())
}

func bodiesBBox(bs []*Body) math32.Box3 {
	bb := math32.B3Empty()
	for _, b := range bs {
		bb.ExpandByPoint(b.Position())
	}
	return bb
}
