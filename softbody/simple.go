// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softbody

import (
	"fmt"

	"github.com/tessera3d/tessera/base/errors"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/render"
)

// Simple is the state shared by all soft bodies: the physics soft
// body, the center body, a two-sample position history per vertex
// for interpolating between fixed steps, and the lazily built mesh.
type Simple struct {
	*physics.SoftBody

	// Center is the body with real inertia that anchors the structure.
	Center *physics.Body

	clock      Clock
	history    [][2]math32.Vector3 // previous, current
	hasHistory []bool

	// center pose at the same two captures
	centerPos [2]math32.Vector3
	centerRot [2]math32.Quat
	hasCenter bool

	mesh      *render.Mesh
	buildMesh func(res *render.Resources) (*render.Mesh, error)
	destroyed bool
}

func newSimple(w *physics.World, clock Clock) *Simple {
	s := &Simple{SoftBody: physics.NewSoftBody(w), clock: clock}
	s.OnPostStep = s.capture
	return s
}

// Base returns s.
func (s *Simple) Base() *Simple { return s }

// createCenter adds the center body at pos.
func (s *Simple) createCenter(pos math32.Vector3, mass, inertia float32) {
	s.Center = s.World().CreateRigidBody()
	s.Center.SetPosition(pos)
	s.Center.SetMassInertia(math32.Vector3Scalar(inertia), mass)
}

// Fraction returns how far the clock is between the last fixed
// step and the next one, in [0,1].
func (s *Simple) Fraction() float32 {
	if s.clock == nil || s.clock.FixedStep() <= 0 {
		return 1
	}
	return math32.Clamp(float32(s.clock.FixedAccumulator()/s.clock.FixedStep()), 0, 1)
}

// capture shifts the vertex positions into the history.
func (s *Simple) capture(dt float32) {
	if len(s.history) != len(s.Vertices) {
		s.history = make([][2]math32.Vector3, len(s.Vertices))
		s.hasHistory = make([]bool, len(s.Vertices))
	}
	for i, v := range s.Vertices {
		p := v.Position()
		if !s.hasHistory[i] {
			s.history[i] = [2]math32.Vector3{p, p}
			s.hasHistory[i] = true
			continue
		}
		s.history[i][0] = s.history[i][1]
		s.history[i][1] = p
	}
	if s.Center == nil {
		return
	}
	cp, cr := s.Center.Position(), s.Center.Orientation()
	if !s.hasCenter {
		s.centerPos = [2]math32.Vector3{cp, cp}
		s.centerRot = [2]math32.Quat{cr, cr}
		s.hasCenter = true
		return
	}
	s.centerPos = [2]math32.Vector3{s.centerPos[1], cp}
	s.centerRot = [2]math32.Quat{s.centerRot[1], cr}
}

// History returns the previous and current captured positions of
// vertex i, and false if none were captured yet.
func (s *Simple) History(i int) (prev, curr math32.Vector3, ok bool) {
	if i < 0 || i >= len(s.hasHistory) || !s.hasHistory[i] {
		return
	}
	return s.history[i][0], s.history[i][1], true
}

// LerpedVertexPos returns the position of vertex i interpolated
// between its last two captures by [Simple.Fraction]. The raw body
// position is returned while inactive or before the first capture.
func (s *Simple) LerpedVertexPos(i int) (math32.Vector3, error) {
	if i < 0 || i >= len(s.Vertices) {
		return math32.Vector3{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.Vertices))
	}
	prev, curr, ok := s.History(i)
	if !ok || !s.IsActive() {
		return s.Vertices[i].Position(), nil
	}
	if prev == curr {
		return curr, nil
	}
	return prev.Lerp(curr, s.Fraction()), nil
}

// LerpedCenter returns the center position and orientation
// interpolated between their last two captures, like the vertices.
func (s *Simple) LerpedCenter() (math32.Vector3, math32.Quat) {
	if !s.hasCenter || !s.IsActive() {
		return s.Center.Position(), s.Center.Orientation()
	}
	t := s.Fraction()
	return s.centerPos[0].Lerp(s.centerPos[1], t), s.centerRot[0].Slerp(s.centerRot[1], t)
}

func (s *Simple) lerped(i int) math32.Vector3 {
	p, _ := s.LerpedVertexPos(i)
	return p
}

// IsActive returns whether the body is alive and simulated.
func (s *Simple) IsActive() bool {
	return !s.destroyed && s.SoftBody.IsActive()
}

// IsDestroyed returns whether [Simple.Destroy] has been called.
func (s *Simple) IsDestroyed() bool { return s.destroyed }

// Mesh returns the render mesh, building it on first use.
// The mesh is never rebuilt; use UpdateMesh to refresh it.
func (s *Simple) Mesh(res *render.Resources) (*render.Mesh, error) {
	if s.destroyed {
		return nil, ErrDestroyed
	}
	if s.mesh != nil {
		return s.mesh, nil
	}
	ms, err := s.buildMesh(res)
	if err != nil {
		return nil, err
	}
	s.mesh = ms
	return ms, nil
}

// HasMesh returns whether the mesh has been built.
func (s *Simple) HasMesh() bool { return s.mesh != nil }

// meshVertices returns three vertices per face, in the given corner
// order, at the interpolated vertex positions.
func (s *Simple) meshVertices(faces []face, order [3]int) []render.Vertex {
	verts := make([]render.Vertex, 0, 3*len(faces))
	for _, f := range faces {
		var p [3]math32.Vector3
		for k, o := range order {
			p[k] = s.lerped(f.v[o])
		}
		n := math32.Normal(p[0], p[1], p[2])
		for k, o := range order {
			verts = append(verts, render.Vertex{Position: p[k], Normal: n, TexCoord: f.uv[o], Color: render.White})
		}
	}
	return verts
}

// newFaceMesh creates a mesh with unshared vertices for the faces.
func (s *Simple) newFaceMesh(res *render.Resources, name string, faces []face, order [3]int) (*render.Mesh, error) {
	verts := s.meshVertices(faces, order)
	idx := make([]uint32, len(verts))
	for i := range idx {
		idx[i] = uint32(i)
	}
	return render.NewMesh(res.Device, name, verts, idx, res.DefaultMaterial)
}

// refreshMesh writes the interpolated positions and normals of the
// faces into the mesh, keeping vertex colors, and texture coordinates
// unless setUV, then records the upload into cl.
func (s *Simple) refreshMesh(cl render.CommandList, faces []face, order [3]int, setUV bool) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if !s.IsActive() {
		return nil
	}
	if s.mesh == nil {
		return ErrNoMesh
	}
	for i, nv := range s.meshVertices(faces, order) {
		v, err := s.mesh.Vertex(i)
		if err != nil {
			return err
		}
		v.Position = nv.Position
		v.Normal = nv.Normal
		if setUV {
			v.TexCoord = nv.TexCoord
		}
		if err := s.mesh.SetVertexValue(i, v); err != nil {
			return err
		}
	}
	return s.mesh.UpdateVertexBuffer(cl)
}

// debugDraw draws the shape edges at interpolated positions, every
// constraint between its anchors, and the center as a point.
func (s *Simple) debugDraw(dd render.DebugDrawer) {
	if s.destroyed {
		return
	}
	idx := make(map[*physics.Body]int, len(s.Vertices))
	for i, v := range s.Vertices {
		idx[v] = i
	}
	for _, sh := range s.Shapes {
		vs := sh.Vertices()
		if len(vs) != 3 {
			continue
		}
		for k := range 3 {
			dd.DrawSegment(s.lerped(idx[vs[k]]), s.lerped(idx[vs[(k+1)%3]]))
		}
	}
	s.drawConstraints(dd)
}

func (s *Simple) drawConstraints(dd render.DebugDrawer) {
	for _, c := range s.Constraints {
		a, b := c.Anchors()
		dd.DrawSegment(a, b)
	}
	if s.Center != nil {
		cp, _ := s.LerpedCenter()
		dd.DrawPoint(cp)
	}
}

// Destroy releases the vertex bodies, constraints and shapes, then
// removes the center from the world and destroys the mesh.
// It is safe to call more than once.
func (s *Simple) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.SoftBody.Destroy()
	if s.Center != nil && s.World().HasBody(s.Center) {
		errors.Log(s.World().Remove(s.Center))
	}
	if s.mesh != nil {
		s.mesh.Destroy()
	}
	s.history = nil
	s.hasHistory = nil
	s.hasCenter = false
}
