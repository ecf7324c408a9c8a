// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package components

import (
	"log/slog"

	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/render"
	"github.com/tessera3d/tessera/scene"
	"github.com/tessera3d/tessera/softbody"
)

// SoftBodyBuilder creates a soft body in the world at the given pose.
type SoftBodyBuilder func(w *physics.World, clock softbody.Clock, pos math32.Vector3, rot math32.Quat) (softbody.SoftBody, error)

// SoftBodyRenderer owns a soft body built on Init, and draws its
// mesh every frame while the body is active.
type SoftBodyRenderer struct {
	scene.ComponentBase

	Build SoftBodyBuilder

	// Material overrides the mesh material when set.
	Material *render.Material

	// DebugDraw also draws the structure to the debug drawer.
	DebugDraw bool

	// Body is the soft body, nil if the build failed.
	Body softbody.SoftBody
}

// NewCloth returns a renderer for a cloth centered on the entity.
func NewCloth(params softbody.ClothParams) *SoftBodyRenderer {
	return &SoftBodyRenderer{Build: func(w *physics.World, clock softbody.Clock, pos math32.Vector3, rot math32.Quat) (softbody.SoftBody, error) {
		p := params
		p.Position = pos.Add(p.Position)
		p.Rotation = rot.Mul(orIdentity(p.Rotation))
		return softbody.NewCloth(w, clock, p)
	}}
}

// NewSphere returns a renderer for a sphere centered on the entity.
func NewSphere(params softbody.SphereParams) *SoftBodyRenderer {
	return &SoftBodyRenderer{Build: func(w *physics.World, clock softbody.Clock, pos math32.Vector3, rot math32.Quat) (softbody.SoftBody, error) {
		p := params
		p.Position = pos.Add(p.Position)
		p.Rotation = rot.Mul(orIdentity(p.Rotation))
		return softbody.NewSphere(w, clock, p)
	}}
}

// NewCube returns a renderer for a cube centered on the entity.
func NewCube(params softbody.CubeParams) *SoftBodyRenderer {
	return &SoftBodyRenderer{Build: func(w *physics.World, clock softbody.Clock, pos math32.Vector3, rot math32.Quat) (softbody.SoftBody, error) {
		p := params
		p.Position = pos.Add(p.Position)
		p.Rotation = rot.Mul(orIdentity(p.Rotation))
		return softbody.NewCube(w, clock, p)
	}}
}

func orIdentity(q math32.Quat) math32.Quat {
	if q.IsNil() {
		return math32.QuatIdentity()
	}
	return q
}

func (sr *SoftBodyRenderer) Init() {
	sc := sr.Scene()
	e := sr.Entity()
	// the scene is the clock, so that a later Manager.SetActive still reaches the body
	sb, err := sr.Build(sc.World, sc, e.Position, e.Rotation)
	if err != nil {
		slog.Error("components: soft body", "entity", e, "err", err)
		return
	}
	sr.Body = sb
}

// FixedUpdate keeps the entity at the soft body center.
func (sr *SoftBodyRenderer) FixedUpdate(t *scene.Time) {
	if sr.Body == nil || !sr.Body.IsActive() {
		return
	}
	c := sr.Body.Base().Center
	e := sr.Entity()
	e.Position = c.Position()
	e.Rotation = c.Orientation()
}

func (sr *SoftBodyRenderer) Draw(dc *scene.DrawContext) {
	if sr.Body == nil || !sr.Body.IsActive() {
		return
	}
	ms, err := sr.Body.Mesh(dc.Scene.Resources)
	if err != nil {
		slog.Error("components: soft body mesh", "entity", sr.Entity(), "err", err)
		return
	}
	if err := sr.Body.UpdateMesh(dc.Commands); err != nil {
		slog.Error("components: soft body mesh update", "entity", sr.Entity(), "err", err)
		return
	}
	// vertices are in world space
	dc.Scene.Batch.QueueMesh(ms, sr.Material, *math32.Identity4())
	if sr.DebugDraw && dc.Debug != nil {
		sr.Body.DebugDraw(dc.Debug)
	}
}

func (sr *SoftBodyRenderer) Dispose() {
	if sr.Body != nil {
		sr.Body.Destroy()
	}
}
