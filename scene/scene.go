// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the entity/component scene graph and the
// game loop that drives its update, fixed update and draw passes.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/tessera3d/tessera/base/ordmap"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/render"
)

// Scene owns a set of entities together with the physics world,
// the render resources and the camera they share.
type Scene struct {
	Name string

	World     *physics.World
	Resources *render.Resources
	Camera    *render.Camera
	Batch     *render.BatchRenderer
	Audio     *Audio

	// Time is the clock of the loop driving the scene.
	Time *Time

	entities    ordmap.Map[uuid.UUID, *Entity]
	renderers   ordmap.Map[*render.Model, *render.MultiInstanceRenderer]
	initialized bool
	disposed    bool
}

// New returns an empty scene rendering to dev.
func New(name string, dev render.Device) *Scene {
	return &Scene{
		Name:      name,
		World:     physics.NewWorld(),
		Resources: render.NewResources(dev),
		Camera:    render.NewCamera(),
		Batch:     render.NewBatchRenderer(),
		Audio:     NewAudio(DefaultSampleRate),
		Time:      NewTime(DefaultFixedStep),
	}
}

// FixedAccumulator returns the unconsumed time of the scene's current
// clock. Together with [Scene.FixedStep] it lets the scene stand in for
// its clock in code that must follow a [Manager] swapping sc.Time in
// after construction.
func (sc *Scene) FixedAccumulator() float64 { return sc.Time.FixedAccumulator() }

// FixedStep returns the fixed step of the scene's current clock.
func (sc *Scene) FixedStep() float64 { return sc.Time.FixedStep() }

// IsInitialized returns whether Init has run.
func (sc *Scene) IsInitialized() bool { return sc.initialized }

// IsDisposed returns whether Dispose has run.
func (sc *Scene) IsDisposed() bool { return sc.disposed }

// AddEntity adds the entity, initializing it if the scene
// is already initialized.
func (sc *Scene) AddEntity(e *Entity) error {
	switch {
	case sc.disposed:
		return fmt.Errorf("add entity %s to scene %q: %w", e, sc.Name, ErrDisposed)
	case e.disposed:
		return fmt.Errorf("add entity %s: %w", e, ErrDisposed)
	case e.scene != nil || sc.entities.Has(e.ID):
		return fmt.Errorf("add entity %s: %w", e, ErrDuplicateEntity)
	}
	e.scene = sc
	sc.entities.Add(e.ID, e)
	if sc.initialized {
		e.Init()
	}
	return nil
}

// RemoveEntity removes and disposes the entity.
func (sc *Scene) RemoveEntity(e *Entity) error {
	if e.scene != sc || !sc.entities.DeleteKey(e.ID) {
		return fmt.Errorf("remove entity %s: %w", e, ErrEntityNotFound)
	}
	e.Dispose()
	e.scene = nil
	return nil
}

// Entity returns the entity with the given id.
func (sc *Scene) Entity(id uuid.UUID) (*Entity, bool) {
	return sc.entities.ValueByKeyTry(id)
}

// Entities returns the entities in the order they were added.
func (sc *Scene) Entities() []*Entity {
	return sc.entities.Values()
}

// FindByTag returns the entities with the given tag.
func (sc *Scene) FindByTag(tag string) []*Entity {
	var es []*Entity
	for _, e := range sc.entities.Order {
		if e.Value.Tag == tag {
			es = append(es, e.Value)
		}
	}
	return es
}

// InstanceRenderer returns the instanced renderer of the model,
// creating it on first use. The scene destroys the model on Dispose.
func (sc *Scene) InstanceRenderer(model *render.Model) *render.MultiInstanceRenderer {
	if mr, ok := sc.renderers.ValueByKeyTry(model); ok {
		return mr
	}
	mr := render.NewMultiInstanceRenderer(model)
	sc.renderers.Add(model, mr)
	return mr
}

// Init initializes every entity. Entities added later are
// initialized as they are added.
func (sc *Scene) Init() {
	if sc.initialized || sc.disposed {
		return
	}
	sc.initialized = true
	for _, e := range sc.Entities() {
		e.Init()
	}
}

// Update runs the variable-rate update of every entity and
// streams the frame's audio.
func (sc *Scene) Update(t *Time) {
	for _, e := range sc.Entities() {
		if !e.disposed {
			e.Update(t)
		}
	}
	sc.Audio.Pump(t.Delta)
}

// AfterUpdate runs after Update for every entity.
func (sc *Scene) AfterUpdate(t *Time) {
	for _, e := range sc.Entities() {
		if !e.disposed {
			e.AfterUpdate(t)
		}
	}
}

// FixedUpdate steps the physics world by one fixed step, which
// runs the post-step hooks, then runs the entities' fixed updates.
func (sc *Scene) FixedUpdate(t *Time) {
	sc.World.Step(float32(t.FixedStep()))
	for _, e := range sc.Entities() {
		if !e.disposed {
			e.FixedUpdate(t)
		}
	}
}

// Draw records a frame: entities draw first (updating and queueing
// their own meshes), then the instanced renderers queue the visible
// instances, and the batch is flushed into one command list and
// submitted. Failed draws are reported in the error without
// stopping the frame.
func (sc *Scene) Draw(debug render.DebugDrawer) (render.Stats, error) {
	if sc.disposed {
		return render.Stats{}, ErrDisposed
	}
	sc.Camera.UpdateMatrix()
	dc := &DrawContext{
		Scene:    sc,
		Commands: sc.Resources.Device.NewCommandList(),
		Alpha:    sc.Time.Alpha(),
		Debug:    debug,
	}
	for _, e := range sc.Entities() {
		if !e.disposed {
			e.Draw(dc)
		}
	}
	for _, mr := range sc.renderers.Values() {
		mr.Draw(sc.Camera, dc.Alpha, sc.Batch)
	}
	st, ferr := sc.Batch.Flush(dc.Commands)
	serr := sc.Resources.Device.Submit(dc.Commands)
	if serr != nil {
		slog.Error("scene: submit", "scene", sc.Name, "err", serr)
	}
	return st, errors.Join(ferr, serr)
}

// Dispose disposes every entity, last added first, then the models
// of the instanced renderers, and stops the audio.
func (sc *Scene) Dispose() {
	if sc.disposed {
		return
	}
	sc.disposed = true
	es := sc.Entities()
	slices.Reverse(es)
	for _, e := range es {
		e.Dispose()
		e.scene = nil
	}
	sc.entities.Reset()
	for _, md := range sc.renderers.Keys() {
		md.Destroy()
	}
	sc.renderers.Reset()
	sc.Audio.Clear()
}
