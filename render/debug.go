// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/tessera3d/tessera/math32"
)

// DebugDrawer receives debug geometry in world space.
type DebugDrawer interface {
	DrawSegment(a, b math32.Vector3)
	DrawPoint(p math32.Vector3)
}

// SegmentRecorder is a [DebugDrawer] that stores what it is given.
type SegmentRecorder struct {
	Segments [][2]math32.Vector3
	Points   []math32.Vector3
}

func (sr *SegmentRecorder) DrawSegment(a, b math32.Vector3) {
	sr.Segments = append(sr.Segments, [2]math32.Vector3{a, b})
}

func (sr *SegmentRecorder) DrawPoint(p math32.Vector3) {
	sr.Points = append(sr.Points, p)
}

// Reset clears the recorded geometry.
func (sr *SegmentRecorder) Reset() {
	sr.Segments = sr.Segments[:0]
	sr.Points = sr.Points[:0]
}
