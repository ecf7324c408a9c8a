// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package components provides the standard [scene.Component] types:
// physics bodies, model, soft body and sprite renderers, lights and
// audio sources.
package components

import (
	"github.com/tessera3d/tessera/base/errors"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/scene"
)

// Rigidbody moves its entity with a body in the scene's physics world.
// The body is created at the entity pose on Init and the entity pose
// follows the body after every world step.
type Rigidbody struct {
	scene.ComponentBase

	// Mass of the body; 0 makes a static body.
	Mass float32

	// Inertia is the diagonal inertia tensor; zero uses that of a
	// unit cube of the given mass.
	Inertia math32.Vector3

	Kinematic bool

	// NoGravity excludes the body from world gravity.
	NoGravity bool

	// Body is the physics body, valid between Init and Dispose.
	Body *physics.Body

	hook physics.PostStepHandle
}

// NewRigidbody returns a dynamic body of the given mass.
func NewRigidbody(mass float32) *Rigidbody {
	return &Rigidbody{Mass: mass}
}

func (rb *Rigidbody) Init() {
	e := rb.Entity()
	w := rb.Scene().World
	rb.Body = w.CreateRigidBody()
	rb.Body.SetPosition(e.Position)
	rb.Body.SetOrientation(e.Rotation)
	rb.Body.Kinematic = rb.Kinematic
	rb.Body.AffectedByGravity = !rb.NoGravity
	rb.Body.Tag = e
	inertia := rb.Inertia
	if inertia.IsZero() {
		inertia = math32.Vector3Scalar(rb.Mass / 6)
	}
	rb.Body.SetMassInertia(inertia, rb.Mass)
	rb.hook = w.AddPostStep(rb.sync)
}

// sync copies the body pose to the entity.
func (rb *Rigidbody) sync(dt float32) {
	e := rb.Entity()
	e.Position = rb.Body.Position()
	e.Rotation = rb.Body.Orientation()
}

func (rb *Rigidbody) Dispose() {
	if rb.Body == nil {
		return
	}
	w := rb.Body.World()
	w.RemovePostStep(rb.hook)
	if w.HasBody(rb.Body) {
		errors.Log(w.Remove(rb.Body))
	}
	rb.Body = nil
}
