// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/tessera3d/tessera/math32"
)

// Constraint links two bodies of a [World]. Constraints are solved
// positionally once per substep, with their Softness used as the
// compliance (inverse stiffness) of the link.
type Constraint interface {

	// Bodies returns the two linked bodies.
	Bodies() (a, b *Body)

	// Anchors returns the current world-space anchor points on each body.
	Anchors() (a, b math32.Vector3)

	// solve applies one positional correction over substep h.
	solve(h float32)
}

// constraintBase holds the fields shared by all constraints.
type constraintBase struct {
	bodyA, bodyB *Body

	// anchors in each body frame
	localA, localB math32.Vector3

	// Softness is the compliance of the constraint: 0 is rigid,
	// larger values let it stretch under load.
	Softness float32
}

func (cb *constraintBase) Bodies() (a, b *Body) {
	return cb.bodyA, cb.bodyB
}

func (cb *constraintBase) Anchors() (a, b math32.Vector3) {
	return cb.bodyA.Position().Add(cb.bodyA.worldOffset(cb.localA)),
		cb.bodyB.Position().Add(cb.bodyB.worldOffset(cb.localB))
}

// correct moves the anchors of the two bodies toward each other by
// the vector corr (from anchor A toward anchor B), with compliance
// scaled by the substep, following extended position based dynamics.
func (cb *constraintBase) correct(corr math32.Vector3, h float32) {
	c := corr.Length()
	if c < 1.0e-9 {
		return
	}
	n := corr.DivScalar(c)
	ra := cb.bodyA.worldOffset(cb.localA)
	rb := cb.bodyB.worldOffset(cb.localB)
	w := cb.bodyA.generalizedInvMass(ra, n) + cb.bodyB.generalizedInvMass(rb, n)
	if w == 0 {
		return
	}
	alpha := cb.Softness / (h * h)
	p := n.MulScalar(c / (w + alpha))
	cb.bodyA.applyCorrection(p, ra)
	cb.bodyB.applyCorrection(p.Negate(), rb)
}

// SpringConstraint keeps the distance between two anchor points at
// its RestLength.
type SpringConstraint struct {
	constraintBase

	// RestLength is the target distance between the anchors.
	RestLength float32
}

// Initialize sets the world-space anchors on each body and takes the
// current distance between them as the rest length.
func (sc *SpringConstraint) Initialize(anchorA, anchorB math32.Vector3) {
	sc.localA = sc.bodyA.localPoint(anchorA)
	sc.localB = sc.bodyB.localPoint(anchorB)
	sc.RestLength = anchorA.DistanceTo(anchorB)
}

func (sc *SpringConstraint) solve(h float32) {
	pa, pb := sc.Anchors()
	d := pb.Sub(pa)
	dist := d.Length()
	if dist < 1.0e-9 {
		return
	}
	sc.correct(d.MulScalar((dist-sc.RestLength)/dist), h)
}

// BallSocket pins a point on each body together,
// leaving rotation about it free.
type BallSocket struct {
	constraintBase
}

// Initialize sets the world-space point that both bodies share.
func (bs *BallSocket) Initialize(anchor math32.Vector3) {
	bs.localA = bs.bodyA.localPoint(anchor)
	bs.localB = bs.bodyB.localPoint(anchor)
}

func (bs *BallSocket) solve(h float32) {
	pa, pb := bs.Anchors()
	bs.correct(pb.Sub(pa), h)
}
