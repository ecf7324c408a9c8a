// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/generators"
	"github.com/tessera3d/tessera/base/errors"
	"github.com/tessera3d/tessera/components"
	"github.com/tessera3d/tessera/config"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/render"
	"github.com/tessera3d/tessera/render/headless"
	"github.com/tessera3d/tessera/render/termdraw"
	"github.com/tessera3d/tessera/scene"
	"github.com/tessera3d/tessera/softbody"
)

type demo struct {
	cfg     *config.Config
	dev     *headless.Device
	manager *scene.Manager
	loop    *scene.Loop
	scene   *scene.Scene

	bodies []*components.SoftBodyRenderer

	// reloads carries configs from the watcher goroutine to the loop.
	reloads chan *config.Config
	stats   render.Stats
}

func newDemo(cfg *config.Config, debug bool) (*demo, error) {
	d := &demo{
		cfg:     cfg,
		dev:     headless.NewDevice(),
		manager: scene.NewManager(cfg.Time.FixedStep),
		reloads: make(chan *config.Config, 1),
	}
	sc, err := d.buildScene(debug)
	if err != nil {
		return nil, err
	}
	d.scene = sc
	d.manager.SetActive(sc)
	d.loop = scene.NewLoop(d.manager)
	d.loop.MaxFixedSteps = cfg.Time.MaxFixedSteps
	d.loop.OnFrame = func(st render.Stats) { d.stats = st }
	return d, nil
}

func (d *demo) buildScene(debug bool) (*scene.Scene, error) {
	cfg := d.cfg
	sc := scene.New("softdemo", d.dev)

	w := sc.World
	w.Gravity = cfg.Physics.Gravity
	w.Substeps = cfg.Physics.Substeps
	w.Damping = cfg.Physics.Damping
	if cfg.Physics.Floor {
		w.Floor = &physics.Floor{Height: cfg.Physics.FloorHeight, Friction: 0.5}
	}

	cam := sc.Camera
	cam.FOV = cfg.Window.FOV
	cam.Aspect = float32(cfg.Window.Width) / float32(cfg.Window.Height)
	cam.Pose.Pos = math32.Vec3(0, 6, 14)
	cam.LookAt(math32.Vec3(0, 2, 0), math32.Vector3Y)

	uv, err := softbody.ParseUVMode(cfg.Cloth.UV)
	if err != nil {
		return nil, err
	}
	cp := softbody.DefaultClothParams()
	cp.Width, cp.Height = cfg.Cloth.Width, cfg.Cloth.Height
	cp.Spacing = cfg.Cloth.Spacing
	cp.Softness = cfg.Cloth.Softness
	cp.DynamicCenter = cfg.Cloth.DynamicCenter
	cp.UV = uv

	sp := softbody.DefaultSphereParams()
	sp.Subdivisions = cfg.Sphere.Subdivisions
	sp.Radius = cfg.Sphere.Radius
	sp.Softness = cfg.Sphere.Softness

	cb := softbody.DefaultCubeParams()
	cb.Size = cfg.Cube.Size
	cb.Softness = cfg.Cube.Softness

	for _, s := range []struct {
		tag string
		pos math32.Vector3
		sr  *components.SoftBodyRenderer
	}{
		{"cloth", cfg.Cloth.Position, components.NewCloth(cp)},
		{"sphere", cfg.Sphere.Position, components.NewSphere(sp)},
		{"cube", cfg.Cube.Position, components.NewCube(cb)},
	} {
		s.sr.DebugDraw = debug
		if err := d.add(sc, s.tag, s.pos, s.sr); err != nil {
			return nil, err
		}
		d.bodies = append(d.bodies, s.sr)
	}

	floor, err := planeModel(sc.Resources, 20)
	if err != nil {
		return nil, err
	}
	err = d.add(sc, "floor", math32.Vec3(0, cfg.Physics.FloorHeight, 0),
		components.NewRigidbody(0), components.NewModelRenderer(floor))
	if err != nil {
		return nil, err
	}

	// lights have fixed tags and no resources, so adding them only fails on a bug here
	errors.Must(d.add(sc, "sun", math32.Vec3(3, 10, 5),
		components.NewLight("sun", render.NewDirLight(math32.Vec3(1, 1, 1), 1, math32.Vector3{}))))
	errors.Must(d.add(sc, "ambient", math32.Vector3{},
		components.NewLight("ambient", render.NewAmbientLight(math32.Vec3(1, 1, 1), 0.2))))

	hum, err := generators.SineTone(sc.Audio.SampleRate, 110)
	if err != nil {
		return nil, err
	}
	src := components.NewAudioSource(hum, 30)
	src.Volume = 0.2
	marker := components.NewSprite(nil, math32.Vec2(0.5, 0.5))
	return sc, d.add(sc, "marker", math32.Vec3(0, 8, 0), src, marker)
}

func (d *demo) add(sc *scene.Scene, tag string, pos math32.Vector3, cs ...scene.Component) error {
	e := scene.NewEntity(tag)
	e.Position = pos
	for _, c := range cs {
		if err := e.AddComponent(c); err != nil {
			return err
		}
	}
	return sc.AddEntity(e)
}

// planeModel returns a square on the XZ plane facing +Y.
func planeModel(res *render.Resources, size float32) (*render.Model, error) {
	h := size / 2
	n := math32.Vector3Y
	verts := []render.Vertex{
		{Position: math32.Vec3(-h, 0, -h), Normal: n, TexCoord: math32.Vec2(0, 0), Color: render.White},
		{Position: math32.Vec3(-h, 0, h), Normal: n, TexCoord: math32.Vec2(0, 1), Color: render.White},
		{Position: math32.Vec3(h, 0, h), Normal: n, TexCoord: math32.Vec2(1, 1), Color: render.White},
		{Position: math32.Vec3(h, 0, -h), Normal: n, TexCoord: math32.Vec2(1, 0), Color: render.White},
	}
	ms, err := render.NewMesh(res.Device, "floor", verts, []uint32{0, 1, 2, 0, 2, 3}, res.DefaultMaterial)
	if err != nil {
		return nil, err
	}
	return render.NewModel("floor", ms), nil
}

// reload is called by the config watcher from its own goroutine.
func (d *demo) reload(cfg *config.Config) {
	select {
	case d.reloads <- cfg:
	default:
		slog.Debug("softdemo: reload already pending")
	}
}

// applyReloads sets the constraint softness of the soft bodies
// from the latest reloaded config, if any.
func (d *demo) applyReloads() {
	var cfg *config.Config
	select {
	case cfg = <-d.reloads:
	default:
		return
	}
	softness := []float32{cfg.Cloth.Softness, cfg.Sphere.Softness, cfg.Cube.Softness}
	for i, sr := range d.bodies {
		if sr.Body == nil {
			continue
		}
		setSoftness(sr.Body.Base().Constraints, softness[i])
	}
	d.cfg = cfg
	slog.Info("softdemo: reloaded softness", "cloth", softness[0], "sphere", softness[1], "cube", softness[2])
}

func setSoftness(cs []physics.Constraint, softness float32) {
	for _, c := range cs {
		switch c := c.(type) {
		case *physics.SpringConstraint:
			c.Softness = softness
		case *physics.BallSocket:
			c.Softness = softness
		}
	}
}

func (d *demo) tick(dt float64) {
	d.applyReloads()
	if _, err := d.loop.Tick(dt); err != nil {
		slog.Warn("softdemo: frame", "frame", d.manager.Time.Frame, "err", err)
	}
}

// runHeadless runs frames at the fixed step on the headless device.
func (d *demo) runHeadless(frames int) error {
	start := time.Now()
	for range frames {
		d.tick(d.cfg.Time.FixedStep)
	}
	slog.Info("softdemo: done", "frames", frames, "elapsed", time.Since(start),
		"draws", d.dev.DrawCalls, "last", d.stats.String())
	for _, e := range d.scene.Entities() {
		slog.Debug("softdemo: entity", "entity", e, "pos", e.Position)
	}
	return nil
}

// runTerminal shows the debug geometry in the terminal until
// Escape, q or Ctrl-C is pressed.
func (d *demo) runTerminal() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	dw := termdraw.New(screen, d.scene.Camera)
	d.loop.Debug = dw
	var quit atomic.Bool
	go func() {
		for !quit.Load() {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					quit.Store(true)
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	const frame = time.Second / 30
	d.loop.OnFrame = func(st render.Stats) {
		d.stats = st
		dw.DrawText(0, 0, fmt.Sprintf("frame %d  %s  (q to quit)", d.manager.Time.Frame, st))
		screen.Show()
		screen.Clear()
	}
	last := time.Now()
	for !quit.Load() {
		now := time.Now()
		d.tick(now.Sub(last).Seconds())
		last = now
		if rest := frame - time.Since(now); rest > 0 {
			time.Sleep(rest)
		}
	}
	return nil
}

func (d *demo) close() {
	d.manager.Close()
	if n := d.dev.LiveBuffers(); n > 0 {
		slog.Warn("softdemo: buffers left after close", "buffers", n)
	}
}
