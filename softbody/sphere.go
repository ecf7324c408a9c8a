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

// SphereParams configures [NewSphere].
type SphereParams struct {

	// icosahedron subdivision levels
	Subdivisions int

	Radius float32

	// compliance of the center anchors; 0 is rigid
	Softness float32

	Position math32.Vector3
	Rotation math32.Quat

	VertexMass float32
	CenterMass float32
}

// DefaultSphereParams returns a twice subdivided unit-diameter sphere.
func DefaultSphereParams() SphereParams {
	return SphereParams{
		Subdivisions: 2,
		Radius:       0.5,
		Softness:     0.002,
		Rotation:     math32.QuatIdentity(),
		VertexMass:   1,
		CenterMass:   1,
	}
}

func (p *SphereParams) validate() error {
	switch {
	case p.Subdivisions < 0:
		return fmt.Errorf("%w: negative subdivisions %d", ErrInvalidParams, p.Subdivisions)
	case p.Radius <= 0:
		return fmt.Errorf("%w: sphere radius %g", ErrInvalidParams, p.Radius)
	case p.Softness < 0:
		return fmt.Errorf("%w: negative softness %g", ErrInvalidParams, p.Softness)
	}
	return nil
}

// Sphere is a subdivided icosahedron of vertex bodies, each held
// to a center body by a ball socket.
type Sphere struct {
	*Simple
	Params SphereParams

	faces []face
}

// NewSphere builds a sphere in w. Clock may be nil.
func NewSphere(w *physics.World, clock Clock, params SphereParams) (*Sphere, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.Rotation.IsNil() {
		params.Rotation = math32.QuatIdentity()
	}
	sp := &Sphere{Simple: newSimple(w, clock), Params: params}
	sp.buildMesh = sp.newMesh
	if err := sp.build(); err != nil {
		sp.Destroy()
		return nil, err
	}
	return sp, nil
}

func (sp *Sphere) build() error {
	p := &sp.Params
	pts, tris := icosphere(p.Subdivisions)
	wd := newWelder(1e-5)
	index := make([]int, len(pts))
	for i, u := range pts {
		index[i] = wd.weld(u, func() int {
			sp.AddVertex(p.Position.Add(u.MulScalar(p.Radius).MulQuat(p.Rotation)), p.VertexMass)
			return len(sp.Vertices) - 1
		})
	}
	sp.faces = make([]face, len(tris))
	for i, t := range tris {
		sp.faces[i].v = [3]int{index[t[0]], index[t[1]], index[t[2]]}
	}

	sp.createCenter(p.Position, p.CenterMass, 0.4*p.CenterMass*p.Radius*p.Radius)
	sp.Center.SetOrientation(p.Rotation)
	for _, v := range sp.Vertices {
		if err := addBallSocket(sp.SoftBody, sp.Center, v, p.Softness); err != nil {
			return err
		}
	}
	for _, f := range sp.faces {
		v := sp.Vertices
		if err := sp.AddShape(physics.NewTriangleShape(v[f.v[0]], v[f.v[1]], v[f.v[2]])); err != nil {
			return err
		}
	}
	return nil
}

// poleEpsilon is the squared distance from the y axis below which
// a unit direction has no defined longitude.
const poleEpsilon = 1e-6

// updateUVs sets spherical texture coordinates from the interpolated
// vertex directions in the center frame. Triangles crossing the
// longitude seam are unwrapped, and pole vertices take the mean
// longitude of the rest of their triangle.
func (sp *Sphere) updateUVs() {
	cp, rot := sp.LerpedCenter()
	inv := rot.Inverse()
	for fi := range sp.faces {
		f := &sp.faces[fi]
		var pole [3]bool
		var lo, hi float32 = 2, -1
		for k := range 3 {
			d := sp.lerped(f.v[k]).Sub(cp).MulQuat(inv).Normal()
			u := 0.5 + math32.Atan2(d.Z, d.X)/(2*math32.Pi)
			v := 0.5 - math32.Asin(math32.Clamp(d.Y, -1, 1))/math32.Pi
			f.uv[k] = math32.Vec2(u, v)
			pole[k] = d.X*d.X+d.Z*d.Z < poleEpsilon
			if !pole[k] {
				lo, hi = min(lo, u), max(hi, u)
			}
		}
		if hi-lo > 0.5 {
			for k := range 3 {
				if !pole[k] && f.uv[k].X < 0.5 {
					f.uv[k].X += 1
				}
			}
		}
		var sum float32
		n := 0
		for k := range 3 {
			if !pole[k] {
				sum += f.uv[k].X
				n++
			}
		}
		if n == 0 {
			continue
		}
		for k := range 3 {
			if pole[k] {
				f.uv[k].X = sum / float32(n)
			}
		}
	}
}

// sphereOrder flips the clockwise face table to counter-clockwise.
var sphereOrder = [3]int{0, 2, 1}

func (sp *Sphere) newMesh(res *render.Resources) (*render.Mesh, error) {
	sp.updateUVs()
	return sp.newFaceMesh(res, "sphere", sp.faces, sphereOrder)
}

// UpdateMesh refreshes the mesh positions, normals and
// texture coordinates.
func (sp *Sphere) UpdateMesh(cmd render.CommandList) error {
	if sp.IsActive() && sp.HasMesh() {
		sp.updateUVs()
	}
	return sp.refreshMesh(cmd, sp.faces, sphereOrder, true)
}

// DebugDraw draws the triangles, anchors and center.
func (sp *Sphere) DebugDraw(dd render.DebugDrawer) { sp.debugDraw(dd) }

// Triangles returns the number of sphere triangles.
func (sp *Sphere) Triangles() int { return len(sp.faces) }
