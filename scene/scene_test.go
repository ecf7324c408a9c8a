// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene_test

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera3d/tessera/render"
	"github.com/tessera3d/tessera/render/headless"
	"github.com/tessera3d/tessera/scene"
)

// recorder records its lifecycle calls into a shared log.
type recorder struct {
	scene.ComponentBase
	name string
	log  *[]string
}

func (p *recorder) Init()                      { *p.log = append(*p.log, p.name+":init") }
func (p *recorder) Update(t *scene.Time)       { *p.log = append(*p.log, p.name+":update") }
func (p *recorder) AfterUpdate(t *scene.Time)  { *p.log = append(*p.log, p.name+":after") }
func (p *recorder) FixedUpdate(t *scene.Time)  { *p.log = append(*p.log, p.name+":fixed") }
func (p *recorder) Draw(dc *scene.DrawContext) { *p.log = append(*p.log, p.name+":draw") }
func (p *recorder) Dispose()                   { *p.log = append(*p.log, p.name+":dispose") }

// lateRecorder is a recorder of a distinct component type.
type lateRecorder struct{ recorder }

// spawner adds a lateRecorder to its entity on its first update.
type spawner struct {
	scene.ComponentBase
	late *lateRecorder
}

func (sp *spawner) Update(t *scene.Time) {
	if !scene.HasComponent[*lateRecorder](sp.Entity()) {
		_ = sp.Entity().AddComponent(sp.late)
	}
}

// other is a second component type.
type other struct {
	scene.ComponentBase
	disposed int
}

func (o *other) Dispose() { o.disposed++ }

func TestTimeFixedSteps(t *testing.T) {
	tm := scene.NewTime(0.25)
	tm.Advance(0.6)
	assert.True(t, tm.StepFixed())
	assert.True(t, tm.StepFixed())
	assert.False(t, tm.StepFixed())
	assert.Equal(t, uint64(2), tm.FixedFrame)
	assert.InDelta(t, 0.1, tm.FixedAccumulator(), 1e-9)
	assert.InDelta(t, 0.4, tm.Alpha(), 1e-6)

	tm.Advance(-1)
	assert.Zero(t, tm.Delta)
	tm.Advance(0.9)
	assert.Equal(t, 4, tm.Discard())
	assert.Less(t, tm.FixedAccumulator(), 0.25)
	assert.Equal(t, uint64(3), tm.Frame)
	assert.InDelta(t, 1.5, tm.Total, 1e-9)

	assert.Equal(t, scene.DefaultFixedStep, scene.NewTime(0).FixedStep())
}

func TestComponentLifecycle(t *testing.T) {
	var log []string
	e := scene.NewEntity("e")
	require.NoError(t, e.AddComponent(&recorder{name: "early", log: &log}))
	e.Update(nil)
	assert.Empty(t, log, "no update before init")

	e.Init()
	e.Init()
	assert.Equal(t, []string{"early:init"}, log)

	log = nil
	late := &lateRecorder{recorder{name: "late", log: &log}}
	require.NoError(t, e.AddComponent(late))
	assert.Equal(t, []string{"late:init"}, log)
	assert.True(t, late.IsInitialized())
	assert.Same(t, e, late.Entity())
	e.Init()
	assert.Equal(t, []string{"late:init"}, log)

	log = nil
	e.Update(nil)
	e.Draw(nil)
	assert.Equal(t, []string{"early:update", "late:update", "early:draw", "late:draw"}, log)
}

func TestComponentAddedDuringUpdate(t *testing.T) {
	var log []string
	e := scene.NewEntity("e")
	late := &lateRecorder{recorder{name: "late", log: &log}}
	require.NoError(t, e.AddComponent(&spawner{late: late}))
	e.Init()

	// the pass that adds it only initializes it
	e.Update(nil)
	assert.Equal(t, []string{"late:init"}, log)
	e.Update(nil)
	e.Draw(nil)
	assert.Equal(t, []string{"late:init", "late:update", "late:draw"}, log)
}

func TestComponentLookup(t *testing.T) {
	var log []string
	e := scene.NewEntity("e")
	p := &recorder{name: "p", log: &log}
	require.NoError(t, e.AddComponent(p))
	assert.ErrorIs(t, e.AddComponent(&recorder{log: &log}), scene.ErrDuplicateComponent)
	assert.ErrorIs(t, e.AddComponent(nil), scene.ErrNilComponent)
	assert.ErrorIs(t, scene.NewEntity("f").AddComponent(p), scene.ErrComponentAttached)

	got, err := scene.GetComponent[*recorder](e)
	require.NoError(t, err)
	assert.Same(t, p, got)
	assert.True(t, scene.HasComponent[*recorder](e))

	_, err = scene.GetComponent[*other](e)
	var nf *scene.ComponentNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Same(t, e, nf.Entity)
	_, ok := scene.TryGetComponent[*other](e)
	assert.False(t, ok)

	require.NoError(t, scene.RemoveComponent[*recorder](e))
	assert.Equal(t, []string{"p:dispose"}, log)
	assert.False(t, scene.HasComponent[*recorder](e))
	assert.ErrorAs(t, scene.RemoveComponent[*recorder](e), &nf)
}

func TestEntityDispose(t *testing.T) {
	var log []string
	e := scene.NewEntity("e")
	o := &other{}
	require.NoError(t, e.AddComponent(&recorder{name: "p", log: &log}))
	require.NoError(t, e.AddComponent(o))
	e.Init()
	e.Dispose()
	e.Dispose()
	assert.Equal(t, []string{"p:init", "p:dispose"}, log)
	assert.Equal(t, 1, o.disposed)
	assert.False(t, e.IsValid())
	assert.Empty(t, e.Components())
	assert.ErrorIs(t, e.AddComponent(&other{}), scene.ErrDisposed)
}

func TestSceneEntities(t *testing.T) {
	sc := scene.New("test", headless.NewDevice())
	a, b := scene.NewEntity("box"), scene.NewEntity("ball")
	c := scene.NewEntity("box")
	for _, e := range []*scene.Entity{a, b, c} {
		require.NoError(t, sc.AddEntity(e))
	}
	assert.ErrorIs(t, sc.AddEntity(a), scene.ErrDuplicateEntity)
	assert.Same(t, sc, a.Scene())

	got, ok := sc.Entity(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, []*scene.Entity{a, c}, sc.FindByTag("box"))

	require.NoError(t, sc.RemoveEntity(a))
	assert.True(t, a.IsDisposed())
	assert.Nil(t, a.Scene())
	assert.ErrorIs(t, sc.RemoveEntity(a), scene.ErrEntityNotFound)
	assert.Equal(t, []*scene.Entity{b, c}, sc.Entities())

	// entities added after Init are initialized on add
	sc.Init()
	assert.True(t, b.IsInitialized())
	d := scene.NewEntity("late")
	require.NoError(t, sc.AddEntity(d))
	assert.True(t, d.IsInitialized())

	sc.Dispose()
	assert.True(t, b.IsDisposed())
	assert.Empty(t, sc.Entities())
	assert.ErrorIs(t, sc.AddEntity(scene.NewEntity("x")), scene.ErrDisposed)
	_, err := sc.Draw(nil)
	assert.ErrorIs(t, err, scene.ErrDisposed)
}

func TestLoopTick(t *testing.T) {
	dev := headless.NewDevice()
	m := scene.NewManager(0.25)
	sc := scene.New("loop", dev)
	var log []string
	e := scene.NewEntity("e")
	require.NoError(t, e.AddComponent(&recorder{name: "p", log: &log}))
	require.NoError(t, sc.AddEntity(e))
	m.SetActive(sc)
	assert.Same(t, m.Time, sc.Time)

	lp := scene.NewLoop(m)
	lp.MaxFixedSteps = 2
	frames := 0
	lp.OnFrame = func(st render.Stats) { frames++ }

	log = nil
	steps, err := lp.Tick(0.25)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)
	assert.Equal(t, []string{"p:update", "p:after", "p:fixed", "p:draw"}, log)
	assert.Equal(t, 1, sc.World.Steps())
	assert.Equal(t, 1, dev.Frames)

	steps, err = lp.Tick(1)
	require.NoError(t, err)
	assert.Equal(t, 2, steps)
	assert.Less(t, m.Time.FixedAccumulator(), 0.25)
	assert.Equal(t, 3, sc.World.Steps())
	assert.Equal(t, 2, frames)

	steps, err = lp.Tick(0.1)
	require.NoError(t, err)
	assert.Zero(t, steps)
}

func TestLoopRun(t *testing.T) {
	m := scene.NewManager(0.25)
	m.SetActive(scene.New("run", headless.NewDevice()))
	lp := scene.NewLoop(m)
	n := 0
	lp.Run(func() bool {
		n++
		return n > 3
	})
	assert.Equal(t, uint64(3), m.Time.Frame)
}

func TestManagerSwitch(t *testing.T) {
	var log []string
	m := scene.NewManager(0)
	a := scene.New("a", headless.NewDevice())
	ea := scene.NewEntity("ea")
	require.NoError(t, ea.AddComponent(&recorder{name: "a", log: &log}))
	require.NoError(t, a.AddEntity(ea))
	m.SetActive(a)
	m.SetActive(a)
	b := scene.New("b", headless.NewDevice())
	m.SetActive(b)
	assert.Equal(t, []string{"a:init", "a:dispose"}, log)
	assert.True(t, a.IsDisposed())
	assert.True(t, b.IsInitialized())
	assert.Same(t, b, m.Active())
	m.Close()
	assert.True(t, b.IsDisposed())
	assert.Nil(t, m.Active())
}

func TestAudioPump(t *testing.T) {
	au := scene.NewAudio(beep.SampleRate(1000))
	var got int
	au.Sink = func(samples [][2]float64) { got += len(samples) }
	au.Play(beep.Silence(-1))
	assert.Equal(t, 1, au.Len())
	au.Pump(0.5)
	assert.Equal(t, 500, got)
	assert.Equal(t, 500, au.Streamed)
	au.Clear()
	assert.Zero(t, au.Len())
}
