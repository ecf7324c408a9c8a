// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics is a small rigid body world with spring and
// ball-socket constraints, solved by substepped position based
// dynamics, on which soft bodies are built.
package physics

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/tessera3d/tessera/math32"
)

var (
	ErrBodyNotInWorld       = errors.New("physics: body is not in this world")
	ErrSameBody             = errors.New("physics: constraint needs two different bodies")
	ErrConstraintNotInWorld = errors.New("physics: constraint is not in this world")
	ErrDuplicateProxy       = errors.New("physics: proxy already registered")
	ErrProxyNotFound        = errors.New("physics: proxy not registered")
)

// Floor is an infinite horizontal plane that dynamic bodies rest on.
type Floor struct {

	// Height is the Y coordinate of the plane.
	Height float32

	// Friction in [0,1] is the fraction of the tangential motion
	// removed from a body while it touches the floor.
	Friction float32
}

// PostStepHandle identifies a hook added with [World.AddPostStep].
type PostStepHandle int

type postStep struct {
	handle PostStepHandle
	fn     func(dt float32)
}

// World owns bodies and constraints and steps them.
// It is not safe for concurrent use.
type World struct {

	// Gravity is the acceleration applied to bodies affected by gravity.
	Gravity math32.Vector3

	// Substeps is the number of solver substeps per [World.Step].
	Substeps int

	// Damping is the velocity multiplier applied over one step (1 = none).
	Damping float32

	// Floor, if non-nil, is collided against after each substep.
	Floor *Floor

	// BroadPhase holds the collision proxies of the world.
	BroadPhase *BroadPhase

	bodies      []*Body
	constraints []Constraint
	postSteps   []postStep
	nextID      uint64
	nextHook    PostStepHandle
	steps       int
}

// NewWorld returns a new world with earth gravity and 8 substeps.
func NewWorld() *World {
	return &World{
		Gravity:    math32.Vec3(0, -9.81, 0),
		Substeps:   8,
		Damping:    1,
		BroadPhase: NewBroadPhase(0.05),
	}
}

// CreateRigidBody adds a new dynamic body at the origin
// with unit mass.
func (w *World) CreateRigidBody() *Body {
	w.nextID++
	b := newBody(w, w.nextID)
	w.bodies = append(w.bodies, b)
	return b
}

// HasBody returns whether the body is in the world.
func (w *World) HasBody(b *Body) bool {
	return b != nil && b.world == w
}

// Bodies returns the bodies of the world in creation order.
func (w *World) Bodies() []*Body {
	return slices.Clone(w.bodies)
}

// Remove removes the body and every constraint attached to it.
func (w *World) Remove(b *Body) error {
	if !w.HasBody(b) {
		return ErrBodyNotInWorld
	}
	w.bodies = slices.DeleteFunc(w.bodies, func(o *Body) bool { return o == b })
	w.constraints = slices.DeleteFunc(w.constraints, func(c Constraint) bool {
		ba, bb := c.Bodies()
		return ba == b || bb == b
	})
	b.world = nil
	return nil
}

func (w *World) checkPair(a, b *Body) error {
	if a == b {
		return ErrSameBody
	}
	if !w.HasBody(a) || !w.HasBody(b) {
		return ErrBodyNotInWorld
	}
	return nil
}

// CreateSpring adds a spring between a and b, initialized
// with anchors at the body centers.
func (w *World) CreateSpring(a, b *Body) (*SpringConstraint, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	sc := &SpringConstraint{constraintBase: constraintBase{bodyA: a, bodyB: b}}
	sc.Initialize(a.Position(), b.Position())
	w.constraints = append(w.constraints, sc)
	return sc, nil
}

// CreateBallSocket adds a ball-socket between a and b,
// initialized with its anchor at the center of b.
func (w *World) CreateBallSocket(a, b *Body) (*BallSocket, error) {
	if err := w.checkPair(a, b); err != nil {
		return nil, err
	}
	bs := &BallSocket{constraintBase: constraintBase{bodyA: a, bodyB: b}}
	bs.Initialize(b.Position())
	w.constraints = append(w.constraints, bs)
	return bs, nil
}

// RemoveConstraint removes the constraint from the world.
func (w *World) RemoveConstraint(c Constraint) error {
	i := slices.Index(w.constraints, c)
	if i < 0 {
		return ErrConstraintNotInWorld
	}
	w.constraints = slices.Delete(w.constraints, i, i+1)
	return nil
}

// Constraints returns the constraints of the world in creation order.
func (w *World) Constraints() []Constraint {
	return slices.Clone(w.constraints)
}

// AddPostStep adds a hook that is called at the end of every
// [World.Step], after all substeps and bounding box updates.
// Hooks run in the order they were added.
func (w *World) AddPostStep(fn func(dt float32)) PostStepHandle {
	w.nextHook++
	w.postSteps = append(w.postSteps, postStep{handle: w.nextHook, fn: fn})
	return w.nextHook
}

// RemovePostStep removes the hook with the given handle.
func (w *World) RemovePostStep(h PostStepHandle) {
	w.postSteps = slices.DeleteFunc(w.postSteps, func(ps postStep) bool { return ps.handle == h })
}

// Steps returns the number of completed calls to [World.Step].
func (w *World) Steps() int { return w.steps }

// Step advances the world by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	n := max(w.Substeps, 1)
	h := dt / float32(n)
	damp := float32(1)
	if w.Damping > 0 && w.Damping < 1 {
		damp = 1 - (1-w.Damping)/float32(n)
	}
	for range n {
		for _, b := range w.bodies {
			b.integrate(h, w.Gravity, damp)
		}
		// forward then backward, so that the sweep is symmetric and
		// rigid constraints sharing a body do not pump energy into it
		for _, c := range w.constraints {
			c.solve(h)
		}
		for i := len(w.constraints) - 1; i >= 0; i-- {
			w.constraints[i].solve(h)
		}
		if w.Floor != nil {
			w.collideFloor()
		}
		for _, b := range w.bodies {
			b.deriveVelocity(h)
		}
	}
	w.BroadPhase.update()
	w.steps++
	// hooks may remove themselves or others
	for _, ps := range slices.Clone(w.postSteps) {
		if w.hasPostStep(ps.handle) {
			ps.fn(dt)
		}
	}
	slog.Debug("physics: step", "dt", dt, "bodies", len(w.bodies), "constraints", len(w.constraints))
}

func (w *World) hasPostStep(h PostStepHandle) bool {
	return slices.ContainsFunc(w.postSteps, func(ps postStep) bool { return ps.handle == h })
}

func (w *World) collideFloor() {
	fl := w.Floor
	for _, b := range w.bodies {
		if !b.dynamic() || b.state.Pos.Y >= fl.Height {
			continue
		}
		b.state.Pos.Y = fl.Height
		b.corrected = true
		if fl.Friction > 0 {
			f := math32.Clamp(fl.Friction, 0, 1)
			b.state.Pos.X -= (b.state.Pos.X - b.prevPos.X) * f
			b.state.Pos.Z -= (b.state.Pos.Z - b.prevPos.Z) * f
		}
	}
}
