// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"errors"
	"log/slog"

	"github.com/tessera3d/tessera/math32"
)

// SoftBody is the physics side of a deformable body: a set of
// point-mass vertex bodies held together by constraints, with
// shapes registered in the broad phase. It owns everything it
// creates and releases it all in [SoftBody.Destroy].
type SoftBody struct {

	// Vertices are the point-mass bodies, in creation order.
	Vertices []*Body

	// Constraints are the links created by the soft body.
	Constraints []Constraint

	// Shapes are the collision proxies over the vertices.
	Shapes []Shape

	// OnPostStep is called after every world step while the
	// soft body is active.
	OnPostStep func(dt float32)

	world     *World
	hook      PostStepHandle
	destroyed bool
}

// NewSoftBody returns an empty soft body in the given world,
// hooked into its post-step.
func NewSoftBody(w *World) *SoftBody {
	sb := &SoftBody{world: w}
	sb.hook = w.AddPostStep(sb.postStep)
	return sb
}

// World returns the world of the soft body.
func (sb *SoftBody) World() *World { return sb.world }

// AddVertex creates a point-mass body at pos and tracks it.
func (sb *SoftBody) AddVertex(pos math32.Vector3, mass float32) *Body {
	b := sb.world.CreateRigidBody()
	b.SetPosition(pos)
	b.SetPointMass(mass)
	sb.Vertices = append(sb.Vertices, b)
	return b
}

// AddConstraint tracks a constraint created in the soft body's world,
// so that it is removed on destroy.
func (sb *SoftBody) AddConstraint(c Constraint) {
	sb.Constraints = append(sb.Constraints, c)
}

// AddShape registers the shape in the broad phase and tracks it.
func (sb *SoftBody) AddShape(s Shape) error {
	if err := sb.world.BroadPhase.AddProxy(s); err != nil {
		return err
	}
	sb.Shapes = append(sb.Shapes, s)
	return nil
}

// IsActive returns whether the soft body is alive and
// at least one of its vertices is simulated.
func (sb *SoftBody) IsActive() bool {
	if sb.destroyed {
		return false
	}
	for _, v := range sb.Vertices {
		if v.IsActive() {
			return true
		}
	}
	return false
}

// SetActive activates or deactivates all vertex bodies.
func (sb *SoftBody) SetActive(active bool) {
	for _, v := range sb.Vertices {
		v.SetActive(active)
	}
}

// IsDestroyed returns whether [SoftBody.Destroy] has been called.
func (sb *SoftBody) IsDestroyed() bool { return sb.destroyed }

func (sb *SoftBody) postStep(dt float32) {
	if sb.OnPostStep != nil && sb.IsActive() {
		sb.OnPostStep(dt)
	}
}

// Destroy removes the shapes from the broad phase, then the constraints
// and the vertex bodies from the world, and unhooks the post-step.
// It is safe to call more than once.
func (sb *SoftBody) Destroy() {
	if sb.destroyed {
		return
	}
	sb.destroyed = true
	w := sb.world
	w.RemovePostStep(sb.hook)
	var errs []error
	for _, s := range sb.Shapes {
		errs = append(errs, w.BroadPhase.RemoveProxy(s))
	}
	for _, c := range sb.Constraints {
		// vertex removal may already have dropped it
		if err := w.RemoveConstraint(c); err != nil && !errors.Is(err, ErrConstraintNotInWorld) {
			errs = append(errs, err)
		}
	}
	for _, v := range sb.Vertices {
		if w.HasBody(v) {
			errs = append(errs, w.Remove(v))
		}
	}
	if err := errors.Join(errs...); err != nil {
		slog.Error("physics: soft body destroy", "err", err)
	}
	sb.Shapes = nil
	sb.Constraints = nil
	sb.Vertices = nil
}
