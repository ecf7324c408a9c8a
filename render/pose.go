// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/tessera3d/tessera/math32"
)

// Pose holds the position, orientation and scale of an object.
type Pose struct {

	// position of center of element
	Pos math32.Vector3

	// scale
	Scale math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat
}

// NewPose returns an identity pose at the given position.
func NewPose(pos math32.Vector3) Pose {
	ps := Pose{Pos: pos}
	ps.Defaults()
	return ps
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsZero() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// Matrix returns the transform matrix based on position, quaternion and scale.
func (ps Pose) Matrix() math32.Matrix4 {
	ps.Defaults()
	var m math32.Matrix4
	m.SetTransform(ps.Pos, ps.Quat, ps.Scale)
	return m
}

// LerpPose interpolates between poses a and b: linearly for
// position and scale, spherically for rotation.
func LerpPose(a, b Pose, t float32) Pose {
	a.Defaults()
	b.Defaults()
	return Pose{
		Pos:   a.Pos.Lerp(b.Pos, t),
		Scale: a.Scale.Lerp(b.Scale, t),
		Quat:  a.Quat.Slerp(b.Quat, t),
	}
}
