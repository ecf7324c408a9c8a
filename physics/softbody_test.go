// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera3d/tessera/math32"
)

func TestSoftBodyLifecycle(t *testing.T) {
	w := NewWorld()
	sb := NewSoftBody(w)
	a := sb.AddVertex(math32.Vec3(0, 1, 0), 1)
	b := sb.AddVertex(math32.Vec3(1, 1, 0), 1)
	c := sb.AddVertex(math32.Vec3(0, 1, 1), 1)
	for _, pair := range [][2]*Body{{a, b}, {b, c}, {c, a}} {
		sc, err := w.CreateSpring(pair[0], pair[1])
		require.NoError(t, err)
		sb.AddConstraint(sc)
	}
	require.NoError(t, sb.AddShape(NewTriangleShape(a, b, c)))
	assert.True(t, a.IsPointMass())

	calls := 0
	sb.OnPostStep = func(dt float32) { calls++ }
	w.Step(1.0 / 60)
	assert.Equal(t, 1, calls)
	assert.True(t, sb.IsActive())

	sb.SetActive(false)
	w.Step(1.0 / 60)
	assert.Equal(t, 1, calls)
	assert.False(t, sb.IsActive())

	sb.Destroy()
	assert.True(t, sb.IsDestroyed())
	assert.Empty(t, w.Bodies())
	assert.Empty(t, w.Constraints())
	assert.Equal(t, 0, w.BroadPhase.Len())
	sb.Destroy()
	w.Step(1.0 / 60)
	assert.Equal(t, 1, calls)
}
