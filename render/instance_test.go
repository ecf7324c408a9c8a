// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/render"
	"github.com/tessera3d/tessera/render/headless"
)

func TestProxyBookkeeping(t *testing.T) {
	dev := headless.NewDevice()
	mr := render.NewMultiInstanceRenderer(render.NewModel("quad", quadMesh(t, dev)))
	p := render.NewRenderProxy(newOwner(0, 0, 0), math32.Box3{})
	assert.True(t, mr.TryAddProxy(p))
	assert.False(t, mr.TryAddProxy(p))
	assert.ErrorIs(t, mr.AddProxy(p), render.ErrDuplicateProxy)
	// empty local box takes the model bounds
	assert.Equal(t, mr.Model.BBox(), p.LocalBox)

	dead := &owner{valid: false}
	assert.False(t, mr.TryAddProxy(render.NewRenderProxy(dead, math32.Box3{})))
	assert.ErrorIs(t, mr.AddProxy(render.NewRenderProxy(nil, math32.Box3{})), render.ErrInvalidOwner)
	assert.ErrorIs(t, mr.AddProxy(nil), render.ErrInvalidOwner)

	assert.Equal(t, []*render.RenderProxy{p}, mr.Proxies())
	assert.True(t, mr.TryRemoveProxy(p))
	assert.False(t, mr.TryRemoveProxy(p))
	assert.ErrorIs(t, mr.RemoveProxy(p), render.ErrProxyNotFound)
}

func TestDrawCullsAndInterpolates(t *testing.T) {
	dev := headless.NewDevice()
	mr := render.NewMultiInstanceRenderer(render.NewModel("quad", quadMesh(t, dev)))
	near := newOwner(0, 0, 0)
	far := newOwner(100, 0, 0)
	gone := newOwner(0, 1, 0)
	pn := render.NewRenderProxy(near, math32.Box3{})
	pf := render.NewRenderProxy(far, math32.Box3{})
	pg := render.NewRenderProxy(gone, math32.Box3{})
	require.NoError(t, mr.AddProxy(pn))
	require.NoError(t, mr.AddProxy(pf))
	require.NoError(t, mr.AddProxy(pg))
	gone.valid = false

	pn.Capture()
	near.pose.Pos = math32.Vec3(2, 0, 0)
	pn.Capture()

	cam := render.NewCamera()
	batch := render.NewBatchRenderer()
	visible := mr.Draw(cam, 0.5, batch)
	assert.Equal(t, 1, visible)
	assert.False(t, pn.Culled)
	assert.True(t, pf.Culled)
	assert.True(t, pg.Culled)
	require.Len(t, mr.Renderables[0].Transforms, 1)
	assert.InDelta(t, 1, mr.Renderables[0].Transforms[0].Translation().X, 1e-5)
	assert.InDelta(t, 1.5, pn.WorldBox.Max.X, 1e-5)

	cl := dev.NewCommandList()
	st, err := batch.Flush(cl)
	require.NoError(t, err)
	assert.Equal(t, render.Stats{DrawCalls: 1, Instances: 1, Triangles: 2}, st)
	require.NoError(t, dev.Submit(cl))
	require.Len(t, dev.LastFrame, 1)
	assert.Equal(t, "quad", dev.LastFrame[0].Name)
	assert.Equal(t, 0, batch.Len())

	// all culled: nothing queued
	cam.Pose.Pos = math32.Vec3(0, 0, -500)
	cam.LookAt(math32.Vec3(0, 0, -1000), math32.Vector3Y)
	assert.Equal(t, 0, mr.Draw(cam, 1, batch))
	assert.Equal(t, 0, batch.Len())
}

func TestBatchSkipsDestroyedMesh(t *testing.T) {
	dev := headless.NewDevice()
	live := quadMesh(t, dev)
	dead := quadMesh(t, dev)
	dead.Destroy()
	batch := render.NewBatchRenderer()
	batch.QueueMesh(dead, nil, *math32.Identity4())
	batch.QueueMesh(live, nil, *math32.Identity4())
	batch.QueueMesh(live, nil, *math32.Identity4())
	cl := dev.NewCommandList()
	st, err := batch.Flush(cl)
	assert.ErrorIs(t, err, render.ErrDestroyed)
	assert.Equal(t, 2, st.DrawCalls)
	assert.Equal(t, 4, st.Triangles)
	assert.Equal(t, st, batch.Last)
	require.NoError(t, dev.Submit(cl))
	assert.Equal(t, 2, dev.DrawCalls)
}
