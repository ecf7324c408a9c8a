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

type owner struct {
	pose  render.Pose
	valid bool
}

func (o *owner) IsValid() bool     { return o.valid }
func (o *owner) Pose() render.Pose { return o.pose }

func newOwner(x, y, z float32) *owner {
	return &owner{pose: render.NewPose(math32.Vec3(x, y, z)), valid: true}
}

func quadMesh(t *testing.T, dev render.Device) *render.Mesh {
	t.Helper()
	verts := []render.Vertex{
		{Position: math32.Vec3(-0.5, -0.5, 0), Color: render.White},
		{Position: math32.Vec3(0.5, -0.5, 0), Color: render.White},
		{Position: math32.Vec3(0.5, 0.5, 0), Color: render.White},
		{Position: math32.Vec3(-0.5, 0.5, 0), Color: render.White},
	}
	ms, err := render.NewMesh(dev, "quad", verts, []uint32{0, 1, 2, 0, 2, 3}, nil)
	require.NoError(t, err)
	return ms
}

func TestMeshLifecycle(t *testing.T) {
	dev := headless.NewDevice()
	ms := quadMesh(t, dev)
	assert.Equal(t, 4, ms.VertexCount())
	assert.Equal(t, 6, ms.IndexCount())
	assert.Equal(t, math32.B3(-0.5, -0.5, 0, 0.5, 0.5, 0), ms.BBox())
	assert.True(t, ms.NeedsUpload())
	assert.Equal(t, 2, dev.LiveBuffers())

	v, err := ms.Vertex(2)
	require.NoError(t, err)
	v.Position = math32.Vec3(1, 2, 3)
	v.TexCoord = math32.Vec2(0.25, 0.75)
	require.NoError(t, ms.SetVertexValue(2, v))
	assert.ErrorIs(t, ms.SetVertexValue(9, v), render.ErrOutOfRange)

	cl := dev.NewCommandList()
	require.NoError(t, ms.UpdateVertexBuffer(cl))
	require.NoError(t, dev.Submit(cl))
	assert.False(t, ms.NeedsUpload())

	ms.Destroy()
	assert.True(t, ms.IsDestroyed())
	assert.Equal(t, 0, ms.VertexCount())
	_, err = ms.Vertex(0)
	assert.ErrorIs(t, err, render.ErrDestroyed)
	assert.ErrorIs(t, ms.SetVertexValue(0, v), render.ErrDestroyed)
	assert.ErrorIs(t, ms.UpdateVertexBuffer(dev.NewCommandList()), render.ErrDestroyed)
	assert.Equal(t, 0, dev.LiveBuffers())
	ms.Destroy()
}

func TestMeshUploadBytes(t *testing.T) {
	dev := headless.NewDevice()
	var vb render.Buffer
	cd := &countingDevice{Device: dev, created: func(b render.Buffer) {
		if b.Usage() == render.VertexBuffer {
			vb = b
		}
	}}
	ms := quadMesh(t, cd)
	want := render.Vertex{Position: math32.Vec3(7, 8, 9), Normal: math32.Vector3Z, TexCoord: math32.Vec2(0.5, 1), Color: math32.Vec4(1, 0, 0, 1)}
	require.NoError(t, ms.SetVertexValue(1, want))
	cl := dev.NewCommandList()
	require.NoError(t, ms.UpdateVertexBuffer(cl))
	require.NoError(t, dev.Submit(cl))
	data := vb.(*headless.Buffer).Bytes()
	assert.Equal(t, want, render.DecodeVertex(data[render.VertexSize:]))
}

type countingDevice struct {
	*headless.Device
	created func(b render.Buffer)
}

func (pd *countingDevice) CreateBuffer(usage render.BufferUsage, size int) (render.Buffer, error) {
	b, err := pd.Device.CreateBuffer(usage, size)
	if err == nil {
		pd.created(b)
	}
	return b, err
}

func TestNewMeshErrors(t *testing.T) {
	dev := headless.NewDevice()
	_, err := render.NewMesh(dev, "bad", []render.Vertex{{}}, []uint32{0, 1, 2}, nil)
	assert.ErrorIs(t, err, render.ErrOutOfRange)
	_, err = render.NewMesh(dev, "bad", []render.Vertex{{}}, []uint32{0, 0}, nil)
	assert.Error(t, err)
	dev.MaxBufferSize = 8
	_, err = render.NewMesh(dev, "big", make([]render.Vertex, 3), []uint32{0, 1, 2}, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, dev.LiveBuffers())
}

func TestCamera(t *testing.T) {
	cam := render.NewCamera()
	assert.InDelta(t, 0, cam.Forward().X, 1e-5)
	assert.InDelta(t, -1, cam.Forward().Z, 1e-5)
	ndc, ok := cam.Project(math32.Vector3{})
	require.True(t, ok)
	assert.InDelta(t, 0, ndc.X, 1e-5)
	assert.InDelta(t, 0, ndc.Y, 1e-5)
	_, ok = cam.Project(math32.Vec3(0, 0, 20))
	assert.False(t, ok)

	right, ok := cam.Project(math32.Vec3(1, 0, 0))
	require.True(t, ok)
	assert.Greater(t, right.X, float32(0))

	cam.Pose.Pos = math32.Vec3(10, 0, 0)
	cam.LookAtOrigin()
	assert.InDelta(t, -1, cam.Forward().X, 1e-4)
	assert.True(t, cam.Frustum.ContainsPoint(math32.Vector3{}))
	assert.False(t, cam.Frustum.ContainsPoint(math32.Vec3(20, 0, 0)))

	cam.Ortho = true
	cam.UpdateMatrix()
	assert.True(t, cam.Frustum.ContainsPoint(math32.Vector3{}))
}

func TestLerpPose(t *testing.T) {
	a := render.NewPose(math32.Vec3(0, 0, 0))
	b := render.NewPose(math32.Vec3(2, 4, 0))
	b.Quat = math32.NewQuatAxisAngle(math32.Vector3Y, math32.DegToRad(90))
	assert.Equal(t, a, render.LerpPose(a, b, 0))
	assert.Equal(t, b, render.LerpPose(a, b, 1))
	mid := render.LerpPose(a, b, 0.5)
	assert.Equal(t, math32.Vec3(1, 2, 0), mid.Pos)
}

func TestResourcesLights(t *testing.T) {
	rs := render.NewResources(headless.NewDevice())
	assert.Equal(t, render.DefaultEffect, rs.DefaultMaterial.Effect)
	assert.Same(t, rs.DefaultTexture, rs.DefaultMaterial.Texture)
	sun := render.NewDirLight(math32.Vec3(1, 1, 1), 1, math32.Vec3(0, 1, 1))
	require.NoError(t, rs.AddLight("sun", sun))
	assert.Error(t, rs.AddLight("sun", sun))
	require.NoError(t, rs.AddLight("amb", render.NewAmbientLight(math32.Vec3(1, 1, 1), 0.2)))
	lt, ok := rs.Light("sun")
	require.True(t, ok)
	assert.True(t, lt.AsLightBase().On)
	assert.Len(t, rs.Lights(), 2)
	assert.True(t, rs.RemoveLight("sun"))
	assert.False(t, rs.RemoveLight("sun"))
	assert.Len(t, rs.Lights(), 1)

	pl := render.NewPointLight(math32.Vec3(1, 1, 1), 1, math32.Vector3{})
	assert.Equal(t, float32(1), pl.Attenuation(0))
	assert.Less(t, pl.Attenuation(5), pl.Attenuation(1))
}

func TestSegmentRecorder(t *testing.T) {
	var sr render.SegmentRecorder
	var dd render.DebugDrawer = &sr
	dd.DrawSegment(math32.Vector3{}, math32.Vector3X)
	dd.DrawPoint(math32.Vector3Y)
	assert.Len(t, sr.Segments, 1)
	assert.Equal(t, []math32.Vector3{math32.Vector3Y}, sr.Points)
	sr.Reset()
	assert.Empty(t, sr.Segments)
	assert.Empty(t, sr.Points)
}
