// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/tessera3d/tessera/math32"
)

// State contains the basic physical state of a body:
// position, orientation and their velocities.
type State struct {

	// position of center of mass of object
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat

	// linear velocity
	LinVel math32.Vector3

	// angular velocity, in world space
	AngVel math32.Vector3
}

// Defaults sets defaults only if current values are nil
func (ps *State) Defaults() {
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// AngMotionMax is maximum angular motion that can be taken per update
const AngMotionMax = math.Pi / 4

// StepByAngVel steps the Quat rotation from angular velocity
func (ps *State) StepByAngVel(step float32) {
	ang := ps.AngVel.Length()
	if ang < 1.0e-8 {
		return
	}
	// limit the angular motion
	if ang*step > AngMotionMax {
		ang = AngMotionMax / step
	}
	dq := math32.NewQuatAxisAngle(ps.AngVel, ang*step)
	ps.Quat = dq.Mul(ps.Quat)
	ps.Quat.Normalize()
}

// StepByLinVel steps the Pos from the linear velocity
func (ps *State) StepByLinVel(step float32) {
	ps.Pos.SetAdd(ps.LinVel.MulScalar(step))
}

// addRotation rotates the orientation by the small world-space
// rotation vector dr, whose length is the angle. A single correction
// turns at most AngMotionMax.
func (ps *State) addRotation(dr math32.Vector3) {
	ang := dr.Length()
	if !(ang > 1.0e-12) { // also false for NaN
		return
	}
	ang = min(ang, AngMotionMax)
	ps.Quat = math32.NewQuatAxisAngle(dr, ang).Mul(ps.Quat)
	ps.Quat.Normalize()
}
