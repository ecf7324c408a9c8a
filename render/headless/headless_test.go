// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera3d/tessera/render"
)

func TestSubmitAppliesInOrder(t *testing.T) {
	dv := NewDevice()
	b, err := dv.CreateBuffer(render.VertexBuffer, 4)
	require.NoError(t, err)
	ib, err := dv.CreateBuffer(render.IndexBuffer, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, dv.LiveBuffers())
	assert.Contains(t, b.(*Buffer).Label, "vertex-")

	cl := dv.NewCommandList()
	require.NoError(t, cl.UpdateBuffer(b, 0, []byte{1, 2, 3, 4}))
	require.NoError(t, cl.UpdateBuffer(b, 2, []byte{9}))
	require.NoError(t, cl.DrawIndexed(render.DrawCall{Name: "tri", Vertices: b, Indices: ib, IndexCount: 3}))
	assert.Error(t, cl.UpdateBuffer(b, 3, []byte{1, 2}))
	assert.Error(t, cl.DrawIndexed(render.DrawCall{Name: "big", Vertices: b, Indices: ib, IndexCount: 6}))
	assert.Equal(t, 3, cl.(*CommandList).Len())

	// not applied until submit
	assert.Equal(t, []byte{0, 0, 0, 0}, b.(*Buffer).Bytes())
	require.NoError(t, dv.Submit(cl))
	assert.Equal(t, []byte{1, 2, 9, 4}, b.(*Buffer).Bytes())
	assert.Equal(t, 1, dv.Frames)
	assert.Equal(t, 1, dv.DrawCalls)
	require.Len(t, dv.LastFrame, 1)
	assert.Equal(t, "tri", dv.LastFrame[0].Name)
}

func TestDestroyedAndForeign(t *testing.T) {
	dv := NewDevice()
	b, err := dv.CreateBuffer(render.VertexBuffer, 4)
	require.NoError(t, err)
	cl := dv.NewCommandList()
	require.NoError(t, cl.UpdateBuffer(b, 0, []byte{1}))
	b.Destroy()
	assert.True(t, b.IsDestroyed())
	assert.Equal(t, 0, dv.LiveBuffers())
	assert.ErrorIs(t, dv.Submit(cl), render.ErrDestroyed)
	assert.ErrorIs(t, dv.NewCommandList().UpdateBuffer(b, 0, nil), render.ErrDestroyed)

	other := NewDevice()
	ob, err := other.CreateBuffer(render.IndexBuffer, 4)
	require.NoError(t, err)
	assert.ErrorIs(t, dv.NewCommandList().UpdateBuffer(ob, 0, nil), ErrForeignBuffer)
	assert.ErrorIs(t, dv.Submit(other.NewCommandList()), ErrForeignBuffer)

	dv.MaxBufferSize = 2
	_, err = dv.CreateBuffer(render.VertexBuffer, 3)
	assert.Error(t, err)
}
