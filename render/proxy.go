// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/tessera3d/tessera/math32"
)

// ProxyOwner is the object a [RenderProxy] draws, typically an entity.
type ProxyOwner interface {

	// IsValid returns whether the owner is alive.
	IsValid() bool

	// Pose returns the current world pose of the owner.
	Pose() Pose
}

// RenderProxy is the per-owner bookkeeping of an instanced renderer:
// the owner pose history, its bounds and its culling state.
type RenderProxy struct {
	Owner ProxyOwner

	// LocalBox is the bounding box in the owner frame.
	LocalBox math32.Box3

	// WorldBox is LocalBox transformed by the last drawn pose.
	WorldBox math32.Box3

	// Culled is whether the proxy was outside the frustum on the last draw.
	Culled bool

	prev, curr Pose
	hasHistory bool
}

// NewRenderProxy returns a proxy for owner with the given local bounds.
func NewRenderProxy(owner ProxyOwner, localBox math32.Box3) *RenderProxy {
	return &RenderProxy{Owner: owner, LocalBox: localBox}
}

// Capture shifts the owner's current pose into the two-sample history.
// The first capture fills both samples.
func (rp *RenderProxy) Capture() {
	ps := rp.Owner.Pose()
	if !rp.hasHistory {
		rp.prev = ps
		rp.curr = ps
		rp.hasHistory = true
		return
	}
	rp.prev = rp.curr
	rp.curr = ps
}

// Interpolated returns the pose between the last two captures at
// fraction alpha, or the owner's pose if nothing was captured yet.
func (rp *RenderProxy) Interpolated(alpha float32) Pose {
	if !rp.hasHistory {
		return rp.Owner.Pose()
	}
	return LerpPose(rp.prev, rp.curr, math32.Clamp(alpha, 0, 1))
}
