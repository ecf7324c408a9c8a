// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softbody builds deformable bodies (cloth, sphere, cube) out of
// point-mass bodies and constraints in a [physics.World], and derives
// their render meshes from the interpolated solver state.
package softbody

import (
	"errors"
	"math"

	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/render"
)

var (
	ErrIndexOutOfRange = errors.New("softbody: vertex index out of range")
	ErrDestroyed       = errors.New("softbody: soft body has been destroyed")
	ErrInvalidParams   = errors.New("softbody: invalid parameters")
	ErrNoMesh          = errors.New("softbody: mesh has not been created")
)

// Clock reports how far the fixed-step loop is into the next step.
type Clock interface {

	// FixedAccumulator is the time accumulated since the last fixed step.
	FixedAccumulator() float64

	// FixedStep is the duration of one fixed step.
	FixedStep() float64
}

// SoftBody is implemented by [Cloth], [Sphere] and [Cube].
type SoftBody interface {

	// Mesh returns the render mesh, creating it on first use.
	Mesh(res *render.Resources) (*render.Mesh, error)

	// UpdateMesh rewrites the mesh vertices from the interpolated
	// vertex positions and records the upload into cl.
	// It does nothing while the body is inactive.
	UpdateMesh(cl render.CommandList) error

	// DebugDraw emits the shape edges, the constraints and the center.
	DebugDraw(dd render.DebugDrawer)

	// Destroy releases the physics objects and the mesh.
	Destroy()

	// IsActive returns whether the body is alive and simulated.
	IsActive() bool

	// Base returns the shared state of the soft body.
	Base() *Simple
}

// welder merges points that fall in the same cell of a
// quantization grid, giving each distinct point one index.
type welder struct {
	quantum float64
	index   map[[3]int64]int
}

func newWelder(quantum float32) *welder {
	return &welder{quantum: float64(quantum), index: make(map[[3]int64]int)}
}

func (wd *welder) key(p math32.Vector3) [3]int64 {
	q := func(x float32) int64 { return int64(math.Round(float64(x) / wd.quantum)) }
	return [3]int64{q(p.X), q(p.Y), q(p.Z)}
}

// weld returns the index of p, calling add to create it if p is new.
func (wd *welder) weld(p math32.Vector3, add func() int) int {
	k := wd.key(p)
	if i, ok := wd.index[k]; ok {
		return i
	}
	i := add()
	wd.index[k] = i
	return i
}

// face is one render triangle over three vertex bodies.
type face struct {
	v  [3]int
	uv [3]math32.Vector2
}

func addSpring(sb *physics.SoftBody, a, b *physics.Body, softness float32) error {
	sc, err := sb.World().CreateSpring(a, b)
	if err != nil {
		return err
	}
	sc.Softness = softness
	sb.AddConstraint(sc)
	return nil
}

func addBallSocket(sb *physics.SoftBody, center, v *physics.Body, softness float32) error {
	bs, err := sb.World().CreateBallSocket(center, v)
	if err != nil {
		return err
	}
	bs.Softness = softness
	sb.AddConstraint(bs)
	return nil
}

var (
	_ SoftBody = (*Cloth)(nil)
	_ SoftBody = (*Sphere)(nil)
	_ SoftBody = (*Cube)(nil)
)
