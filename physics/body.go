// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"fmt"

	"github.com/tessera3d/tessera/math32"
)

// Body is a rigid body in a [World]. Bodies are created with
// [World.CreateRigidBody] and are owned by the world until removed.
type Body struct {

	// ID is unique within the world that created the body.
	ID uint64

	// AffectedByGravity is whether world gravity accelerates the body.
	AffectedByGravity bool

	// Kinematic bodies move only by their velocity and are not
	// pushed by constraints or gravity.
	Kinematic bool

	// Tag is free-form user data.
	Tag any

	state State

	// state at the start of the current substep
	prevPos  math32.Vector3
	prevQuat math32.Quat

	// whether a constraint or the floor moved the body this substep
	corrected bool

	mass       float32
	invMass    float32
	invInertia math32.Vector3 // diagonal, body frame

	active bool
	world  *World
}

func newBody(w *World, id uint64) *Body {
	b := &Body{ID: id, AffectedByGravity: true, active: true, world: w}
	b.state.Defaults()
	b.prevQuat = b.state.Quat
	b.SetMassInertia(math32.Vector3Scalar(1.0/6.0), 1)
	return b
}

func (b *Body) String() string {
	return fmt.Sprintf("Body(%d)", b.ID)
}

// World returns the world the body belongs to,
// or nil once it has been removed.
func (b *Body) World() *World { return b.world }

// Position returns the position of the body's center of mass.
func (b *Body) Position() math32.Vector3 { return b.state.Pos }

// SetPosition teleports the body without inducing velocity.
func (b *Body) SetPosition(pos math32.Vector3) {
	b.state.Pos = pos
	b.prevPos = pos
}

// Orientation returns the rotation of the body.
func (b *Body) Orientation() math32.Quat { return b.state.Quat }

// SetOrientation sets the rotation of the body without inducing
// angular velocity.
func (b *Body) SetOrientation(q math32.Quat) {
	q.Normalize()
	b.state.Quat = q
	b.prevQuat = q
}

func (b *Body) Velocity() math32.Vector3 { return b.state.LinVel }

func (b *Body) SetVelocity(v math32.Vector3) { b.state.LinVel = v }

func (b *Body) AngularVelocity() math32.Vector3 { return b.state.AngVel }

func (b *Body) SetAngularVelocity(v math32.Vector3) {
	if b.IsPointMass() {
		return
	}
	b.state.AngVel = v
}

// State returns a copy of the full physical state.
func (b *Body) State() State { return b.state }

// SetMassInertia sets the mass and the diagonal of the inertia
// tensor in the body frame. A mass <= 0 makes the body static.
// Inertia components <= 0 lock rotation about that axis.
func (b *Body) SetMassInertia(inertia math32.Vector3, mass float32) {
	b.mass = mass
	b.invMass = 0
	if mass > 0 {
		b.invMass = 1 / mass
	}
	inv := func(i float32) float32 {
		if i <= 0 {
			return 0
		}
		return 1 / i
	}
	b.invInertia = math32.Vec3(inv(inertia.X), inv(inertia.Y), inv(inertia.Z))
}

// SetPointMass makes the body a particle of the given mass:
// zero inverse inertia, so constraints never rotate it.
func (b *Body) SetPointMass(mass float32) {
	b.SetMassInertia(math32.Vector3{}, mass)
	b.state.AngVel = math32.Vector3{}
}

// Mass returns the mass of the body (<= 0 for static bodies).
func (b *Body) Mass() float32 { return b.mass }

// IsPointMass returns whether the body has no rotational response.
func (b *Body) IsPointMass() bool { return b.invInertia.IsZero() }

// IsStatic returns whether the body never moves.
func (b *Body) IsStatic() bool { return b.invMass == 0 && !b.Kinematic }

// IsActive returns whether the body is simulated.
func (b *Body) IsActive() bool { return b.active }

// SetActive enables or disables simulation of the body.
// Inactive bodies keep their state and act as static.
func (b *Body) SetActive(active bool) {
	b.active = active
	if !active {
		b.state.LinVel = math32.Vector3{}
		b.state.AngVel = math32.Vector3{}
	}
}

// effInvMass is the inverse mass seen by constraints.
func (b *Body) effInvMass() float32 {
	if b.Kinematic || !b.active {
		return 0
	}
	return b.invMass
}

func (b *Body) dynamic() bool {
	return b.active && !b.Kinematic && b.invMass > 0
}

// invInertiaWorld multiplies v by the world-space inverse inertia tensor.
func (b *Body) invInertiaWorld(v math32.Vector3) math32.Vector3 {
	if b.IsPointMass() || b.Kinematic || !b.active {
		return math32.Vector3{}
	}
	q := b.state.Quat
	local := v.MulQuat(q.Inverse()).Mul(b.invInertia)
	return local.MulQuat(q)
}

// generalizedInvMass returns the inverse mass of the body at world
// offset r from its center for a correction along unit direction n.
func (b *Body) generalizedInvMass(r, n math32.Vector3) float32 {
	rn := r.Cross(n)
	return b.effInvMass() + rn.Dot(b.invInertiaWorld(rn))
}

// applyCorrection applies positional impulse p at world offset r.
func (b *Body) applyCorrection(p, r math32.Vector3) {
	im := b.effInvMass()
	if im == 0 {
		return
	}
	b.corrected = true
	b.state.Pos.SetAdd(p.MulScalar(im))
	if dr := b.invInertiaWorld(r.Cross(p)); !dr.IsZero() {
		b.state.addRotation(dr)
	}
}

// integrate advances velocity and position by h.
func (b *Body) integrate(h float32, gravity math32.Vector3, damping float32) {
	b.prevPos = b.state.Pos
	b.prevQuat = b.state.Quat
	b.corrected = false
	if !b.active {
		return
	}
	if b.dynamic() && b.AffectedByGravity {
		b.state.LinVel.SetAdd(gravity.MulScalar(h))
	}
	if b.dynamic() {
		b.state.LinVel = b.state.LinVel.MulScalar(damping)
		b.state.AngVel = b.state.AngVel.MulScalar(damping)
	}
	if b.invMass == 0 && !b.Kinematic {
		return
	}
	b.state.StepByLinVel(h)
	if !b.IsPointMass() || b.Kinematic {
		b.state.StepByAngVel(h)
	}
}

// deriveVelocity recomputes velocities from the substep displacement
// of a corrected body. Uncorrected bodies keep their integrated
// velocities, which are exact for free motion.
func (b *Body) deriveVelocity(h float32) {
	if !b.dynamic() || !b.corrected {
		return
	}
	b.state.LinVel = b.state.Pos.Sub(b.prevPos).DivScalar(h)
	if b.IsPointMass() {
		return
	}
	dq := b.state.Quat.Mul(b.prevQuat.Inverse())
	w := math32.Vec3(dq.X, dq.Y, dq.Z).MulScalar(2 / h)
	if dq.W < 0 {
		w = w.Negate()
	}
	b.state.AngVel = w
}

// localPoint converts a world point to the body frame.
func (b *Body) localPoint(p math32.Vector3) math32.Vector3 {
	return p.Sub(b.state.Pos).MulQuat(b.state.Quat.Inverse())
}

// worldOffset converts a body-frame point to a world offset from the center.
func (b *Body) worldOffset(local math32.Vector3) math32.Vector3 {
	return local.MulQuat(b.state.Quat)
}
