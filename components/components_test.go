// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package components_test

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera3d/tessera/components"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/render"
	"github.com/tessera3d/tessera/render/headless"
	"github.com/tessera3d/tessera/scene"
	"github.com/tessera3d/tessera/softbody"
)

func newScene(t *testing.T) (*scene.Scene, *headless.Device) {
	t.Helper()
	dev := headless.NewDevice()
	sc := scene.New(t.Name(), dev)
	sc.Init()
	return sc, dev
}

func addEntity(t *testing.T, sc *scene.Scene, pos math32.Vector3, cs ...scene.Component) *scene.Entity {
	t.Helper()
	e := scene.NewEntity("")
	e.Position = pos
	for _, c := range cs {
		require.NoError(t, e.AddComponent(c))
	}
	require.NoError(t, sc.AddEntity(e))
	return e
}

func quadModel(t *testing.T, dev render.Device) *render.Model {
	t.Helper()
	verts := []render.Vertex{
		{Position: math32.Vec3(-0.5, -0.5, 0)},
		{Position: math32.Vec3(0.5, -0.5, 0)},
		{Position: math32.Vec3(0.5, 0.5, 0)},
		{Position: math32.Vec3(-0.5, 0.5, 0)},
	}
	ms, err := render.NewMesh(dev, "quad", verts, []uint32{0, 1, 2, 0, 2, 3}, nil)
	require.NoError(t, err)
	return render.NewModel("quad", ms)
}

func TestRigidbody(t *testing.T) {
	sc, _ := newScene(t)
	rb := components.NewRigidbody(1)
	e := addEntity(t, sc, math32.Vec3(0, 5, 0), rb)
	require.NotNil(t, rb.Body)
	assert.Equal(t, e.Position, rb.Body.Position())

	sc.FixedUpdate(sc.Time)
	assert.Less(t, e.Position.Y, float32(5))
	assert.Equal(t, rb.Body.Position(), e.Position)

	static := components.NewRigidbody(0)
	se := addEntity(t, sc, math32.Vec3(0, 1, 0), static)
	sc.FixedUpdate(sc.Time)
	assert.Equal(t, math32.Vec3(0, 1, 0), se.Position)

	require.NoError(t, sc.RemoveEntity(e))
	require.NoError(t, sc.RemoveEntity(se))
	assert.Empty(t, sc.World.Bodies())
	// no hook left to touch the removed entities
	sc.FixedUpdate(sc.Time)
}

func TestModelRenderer(t *testing.T) {
	sc, dev := newScene(t)
	model := quadModel(t, dev)
	a := components.NewModelRenderer(model)
	b := components.NewModelRenderer(model)
	far := components.NewModelRenderer(model)
	ea := addEntity(t, sc, math32.Vec3(0, 0, 0), a)
	addEntity(t, sc, math32.Vec3(1, 0, 0), b)
	addEntity(t, sc, math32.Vec3(500, 0, 0), far)

	mr := sc.InstanceRenderer(model)
	assert.Len(t, mr.Proxies(), 3)

	st, err := sc.Draw(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, st.DrawCalls)
	assert.Equal(t, 2, st.Instances)
	assert.True(t, far.Proxy.Culled)
	assert.Equal(t, 1, dev.Frames)

	require.NoError(t, sc.RemoveEntity(ea))
	assert.Len(t, mr.Proxies(), 2)

	sc.Dispose()
	assert.True(t, model.Meshes[0].IsDestroyed())
}

func TestSoftBodyRenderer(t *testing.T) {
	sc, dev := newScene(t)
	p := softbody.DefaultClothParams()
	p.Width, p.Height = 3, 3
	cloth := components.NewCloth(p)
	cloth.DebugDraw = true
	e := addEntity(t, sc, math32.Vec3(0, 4, 0), cloth)
	require.NotNil(t, cloth.Body)
	base := cloth.Body.Base()
	assert.InDelta(t, 4, base.Center.Position().Y, 1e-5)

	sc.FixedUpdate(sc.Time)
	assert.Equal(t, base.Center.Position(), e.Position)

	var rec render.SegmentRecorder
	st, err := sc.Draw(&rec)
	require.NoError(t, err)
	assert.Equal(t, 1, st.DrawCalls)
	assert.Equal(t, 18, st.Triangles)
	assert.NotEmpty(t, rec.Segments)
	assert.Equal(t, 1, dev.DrawCalls)

	require.NoError(t, sc.RemoveEntity(e))
	assert.Empty(t, sc.World.Bodies())
	assert.False(t, cloth.Body.IsActive())

	bad := softbody.DefaultCubeParams()
	bad.Size = 0
	cube := components.NewCube(bad)
	addEntity(t, sc, math32.Vector3{}, cube)
	assert.Nil(t, cube.Body)
	st, err = sc.Draw(nil)
	require.NoError(t, err)
	assert.Zero(t, st.DrawCalls)
}

func TestSoftBodyFollowsManagerClock(t *testing.T) {
	// initialized on its own clock, then activated
	sc, _ := newScene(t)
	cloth := components.NewCloth(softbody.DefaultClothParams())
	addEntity(t, sc, math32.Vector3{}, cloth)
	require.NotNil(t, cloth.Body)

	m := scene.NewManager(0.25)
	m.SetActive(sc)
	m.Time.Advance(0.125)
	assert.InDelta(t, 0.5, cloth.Body.Base().Fraction(), 1e-6)
	m.Time.Advance(0.0625)
	assert.InDelta(t, 0.75, cloth.Body.Base().Fraction(), 1e-6)
}

func TestSoftBodyShapes(t *testing.T) {
	sc, _ := newScene(t)
	sp := components.NewSphere(softbody.DefaultSphereParams())
	cb := components.NewCube(softbody.DefaultCubeParams())
	addEntity(t, sc, math32.Vec3(-1, 0, 0), sp)
	addEntity(t, sc, math32.Vec3(1, 0, 0), cb)
	require.NotNil(t, sp.Body)
	require.NotNil(t, cb.Body)
	assertVector3(t, math32.Vec3(-1, 0, 0), sp.Body.Base().Center.Position())
	assertVector3(t, math32.Vec3(1, 0, 0), cb.Body.Base().Center.Position())

	st, err := sc.Draw(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, st.DrawCalls)
	assert.Equal(t, 320+12, st.Triangles)
}

func TestLight(t *testing.T) {
	sc, _ := newScene(t)
	pl := render.NewPointLight(math32.Vec3(1, 1, 1), 1, math32.Vector3{})
	lc := components.NewLight("lamp", pl)
	e := addEntity(t, sc, math32.Vec3(0, 3, 0), lc)
	got, ok := sc.Resources.Light("lamp")
	require.True(t, ok)
	assert.Same(t, pl, got)
	assert.Equal(t, math32.Vec3(0, 3, 0), pl.Pos)

	e.Position = math32.Vec3(1, 2, 3)
	sc.Update(sc.Time)
	assert.Equal(t, e.Position, pl.Pos)

	// duplicate names are logged and not registered
	dup := components.NewLight("lamp", render.NewAmbientLight(math32.Vec3(1, 1, 1), 0.2))
	de := addEntity(t, sc, math32.Vector3{}, dup)
	assert.Len(t, sc.Resources.Lights(), 1)
	require.NoError(t, sc.RemoveEntity(de))
	assert.Len(t, sc.Resources.Lights(), 1)

	require.NoError(t, sc.RemoveEntity(e))
	assert.Empty(t, sc.Resources.Lights())
}

func TestSprite(t *testing.T) {
	sc, _ := newScene(t)
	sp := components.NewSprite(nil, math32.Vec2(2, 1))
	e := addEntity(t, sc, math32.Vec3(0, 1, 0), sp)
	st, err := sc.Draw(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Triangles)

	ms, err := sp.Mesh(sc.Resources)
	require.NoError(t, err)
	assert.Same(t, sc.Resources.DefaultTexture, ms.Material.Texture)
	m := sp.Transform(sc.Camera)
	assertVector3(t, e.Position, m.Translation())

	require.NoError(t, sc.RemoveEntity(e))
	assert.True(t, ms.IsDestroyed())
}

func TestAudioSource(t *testing.T) {
	sc, _ := newScene(t)
	sc.Camera.Pose.Pos = math32.Vec3(0, 0, 10)
	near := components.NewAudioSource(beep.Silence(-1), 10)
	far := components.NewAudioSource(beep.Silence(-1), 10)
	addEntity(t, sc, math32.Vec3(0, 0, 5), near)
	fe := addEntity(t, sc, math32.Vec3(0, 0, -20), far)
	assert.Equal(t, 2, sc.Audio.Len())
	assert.InDelta(t, 0.5, near.Gain(), 1e-6)
	assert.Zero(t, far.Gain())

	near.Pause()
	assert.True(t, near.IsPaused())
	near.Play()
	assert.False(t, near.IsPaused())
	assert.Equal(t, 2, sc.Audio.Len())

	require.NoError(t, sc.RemoveEntity(fe))
	sc.Audio.Pump(0.1)
	assert.Equal(t, 1, sc.Audio.Len())
}

func assertVector3(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}
