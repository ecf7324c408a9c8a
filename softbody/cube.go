// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softbody

import (
	"fmt"

	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/render"
)

// CubeParams configures [NewCube].
type CubeParams struct {

	// edge length
	Size float32

	// compliance of the center anchors; 0 is rigid
	Softness float32

	Position math32.Vector3
	Rotation math32.Quat

	VertexMass float32
	CenterMass float32
}

// DefaultCubeParams returns a unit cube.
func DefaultCubeParams() CubeParams {
	return CubeParams{
		Size:       1,
		Softness:   0.001,
		Rotation:   math32.QuatIdentity(),
		VertexMass: 1,
		CenterMass: 1,
	}
}

func (p *CubeParams) validate() error {
	switch {
	case p.Size <= 0:
		return fmt.Errorf("%w: cube size %g", ErrInvalidParams, p.Size)
	case p.Softness < 0:
		return fmt.Errorf("%w: negative softness %g", ErrInvalidParams, p.Softness)
	}
	return nil
}

// Corners are indexed x + 2y + 4z over the unit cube.
var (
	cubeTetrahedra = [5][4]int{
		{0, 3, 5, 6}, {1, 0, 3, 5}, {2, 0, 3, 6}, {4, 0, 5, 6}, {7, 3, 5, 6},
	}

	cubeEdges = [12][2]int{
		{0, 1}, {2, 3}, {4, 5}, {6, 7},
		{0, 2}, {1, 3}, {4, 6}, {5, 7},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	// face quads, counter-clockwise seen from outside
	cubeQuads = [6][4]int{
		{0, 4, 6, 2}, // -X
		{1, 3, 7, 5}, // +X
		{0, 1, 5, 4}, // -Y
		{2, 6, 7, 3}, // +Y
		{0, 2, 3, 1}, // -Z
		{4, 5, 7, 6}, // +Z
	}
)

// Cube is eight corner bodies tied to a center body by ball sockets,
// with five tetrahedron shapes filling its volume.
//
// Unlike the cloth and sphere, its mesh is not three vertices per shape:
// it draws the six faces of the box as 12 triangles (36 vertices), since
// the tetrahedra are interior and would not show its surface.
type Cube struct {
	*Simple
	Params CubeParams

	faces []face
}

// NewCube builds a cube in w. Clock may be nil.
func NewCube(w *physics.World, clock Clock, params CubeParams) (*Cube, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.Rotation.IsNil() {
		params.Rotation = math32.QuatIdentity()
	}
	cb := &Cube{Simple: newSimple(w, clock), Params: params}
	cb.buildMesh = cb.newMesh
	if err := cb.build(); err != nil {
		cb.Destroy()
		return nil, err
	}
	return cb, nil
}

func cubeCorner(i int) math32.Vector3 {
	return math32.Vec3(float32(i&1)-0.5, float32(i>>1&1)-0.5, float32(i>>2&1)-0.5)
}

func (cb *Cube) build() error {
	p := &cb.Params
	for i := range 8 {
		cb.AddVertex(p.Position.Add(cubeCorner(i).MulScalar(p.Size).MulQuat(p.Rotation)), p.VertexMass)
	}
	cb.createCenter(p.Position, p.CenterMass, p.CenterMass*p.Size*p.Size/6)
	cb.Center.SetOrientation(p.Rotation)
	for _, v := range cb.Vertices {
		if err := addBallSocket(cb.SoftBody, cb.Center, v, p.Softness); err != nil {
			return err
		}
	}
	v := cb.Vertices
	for _, t := range cubeTetrahedra {
		if err := cb.AddShape(physics.NewTetrahedronShape(v[t[0]], v[t[1]], v[t[2]], v[t[3]])); err != nil {
			return err
		}
	}
	uv := [4]math32.Vector2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	for _, q := range cubeQuads {
		cb.faces = append(cb.faces,
			face{v: [3]int{q[0], q[1], q[2]}, uv: [3]math32.Vector2{uv[0], uv[1], uv[2]}},
			face{v: [3]int{q[0], q[2], q[3]}, uv: [3]math32.Vector2{uv[0], uv[2], uv[3]}})
	}
	return nil
}

var cubeOrder = [3]int{0, 1, 2}

func (cb *Cube) newMesh(res *render.Resources) (*render.Mesh, error) {
	return cb.newFaceMesh(res, "cube", cb.faces, cubeOrder)
}

// UpdateMesh refreshes the mesh positions and normals.
func (cb *Cube) UpdateMesh(cmd render.CommandList) error {
	return cb.refreshMesh(cmd, cb.faces, cubeOrder, false)
}

// DebugDraw draws the twelve cube edges, the anchors and the center.
func (cb *Cube) DebugDraw(dd render.DebugDrawer) {
	if cb.IsDestroyed() {
		return
	}
	for _, e := range cubeEdges {
		dd.DrawSegment(cb.lerped(e[0]), cb.lerped(e[1]))
	}
	cb.drawConstraints(dd)
}

// Triangles returns the number of surface triangles.
func (cb *Cube) Triangles() int { return len(cb.faces) }
