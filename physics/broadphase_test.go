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

func TestBroadPhase(t *testing.T) {
	w := NewWorld()
	mk := func(x float32) *TriangleShape {
		a := w.CreateRigidBody()
		a.SetPosition(math32.Vec3(x, 0, 0))
		b := w.CreateRigidBody()
		b.SetPosition(math32.Vec3(x+1, 0, 0))
		c := w.CreateRigidBody()
		c.SetPosition(math32.Vec3(x, 1, 0))
		return NewTriangleShape(a, b, c)
	}
	t1, t2 := mk(0), mk(10)
	bp := w.BroadPhase
	require.NoError(t, bp.AddProxy(t1))
	require.NoError(t, bp.AddProxy(t2))
	assert.ErrorIs(t, bp.AddProxy(t1), ErrDuplicateProxy)
	assert.Equal(t, 2, bp.Len())

	var hits []Proxy
	bp.Query(math32.B3(-1, -1, -1, 2, 2, 2), func(p Proxy) bool {
		hits = append(hits, p)
		return true
	})
	assert.Equal(t, []Proxy{t1}, hits)

	// small moves stay inside the fat box
	t1.V[0].SetPosition(math32.Vec3(0.01, 0, 0))
	t1.UpdateBBox()
	assert.False(t, bp.UpdateProxy(t1))
	t1.V[0].SetPosition(math32.Vec3(-5, 0, 0))
	t1.UpdateBBox()
	assert.True(t, bp.UpdateProxy(t1))

	require.NoError(t, bp.RemoveProxy(t1))
	assert.ErrorIs(t, bp.RemoveProxy(t1), ErrProxyNotFound)
	assert.False(t, bp.Has(t1))
	assert.Equal(t, 1, bp.Len())
}

func TestShapes(t *testing.T) {
	w := NewWorld()
	pts := []math32.Vector3{{}, math32.Vector3X, math32.Vector3Y, math32.Vector3Z}
	bs := make([]*Body, 4)
	for i, p := range pts {
		bs[i] = w.CreateRigidBody()
		bs[i].SetPosition(p)
	}
	tri := NewTriangleShape(bs[0], bs[1], bs[2])
	assert.Equal(t, math32.Vector3Z, tri.Normal())
	assert.Equal(t, math32.B3(0, 0, 0, 1, 1, 0), tri.BBox())
	tet := NewTetrahedronShape(bs[0], bs[1], bs[2], bs[3])
	assert.InDelta(t, 1.0/6, tet.Volume(), 1e-6)
	assert.Len(t, tet.Vertices(), 4)
}
