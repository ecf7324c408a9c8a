// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/tessera3d/tessera/render"
)

// Component is a unit of behavior attached to an [Entity]. At most one
// component of each concrete type can be attached to an entity.
//
// Init runs exactly once, when the entity initializes or, for a
// component added to an already initialized entity, when it is added.
// The per-frame methods are called only after Init. Dispose is called
// once, when the component is removed or its entity is disposed.
// Embed [ComponentBase] to get no-op defaults.
type Component interface {

	// AsComponentBase returns the embedded [ComponentBase].
	AsComponentBase() *ComponentBase

	Init()

	// Update runs once per frame with the variable frame time.
	Update(t *Time)

	// AfterUpdate runs after every entity has been updated.
	AfterUpdate(t *Time)

	// FixedUpdate runs once per fixed step, after the physics step.
	FixedUpdate(t *Time)

	Draw(dc *DrawContext)

	Dispose()
}

// ComponentBase is the embedded base of every [Component].
type ComponentBase struct {
	entity      *Entity
	initialized bool
	disposed    bool
}

func (cb *ComponentBase) AsComponentBase() *ComponentBase { return cb }

// Entity returns the entity the component is attached to,
// or nil if it has not been added to one.
func (cb *ComponentBase) Entity() *Entity { return cb.entity }

// Scene returns the scene of the entity, or nil.
func (cb *ComponentBase) Scene() *Scene {
	if cb.entity == nil {
		return nil
	}
	return cb.entity.scene
}

// IsInitialized returns whether Init has run.
func (cb *ComponentBase) IsInitialized() bool { return cb.initialized }

// IsDisposed returns whether Dispose has run.
func (cb *ComponentBase) IsDisposed() bool { return cb.disposed }

func (cb *ComponentBase) Init()                {}
func (cb *ComponentBase) Update(t *Time)       {}
func (cb *ComponentBase) AfterUpdate(t *Time)  {}
func (cb *ComponentBase) FixedUpdate(t *Time)  {}
func (cb *ComponentBase) Draw(dc *DrawContext) {}
func (cb *ComponentBase) Dispose()             {}

// DrawContext is passed to [Component.Draw].
type DrawContext struct {
	Scene *Scene

	// Commands records the GPU work of the frame. It is only
	// valid during the draw.
	Commands render.CommandList

	// Alpha is the interpolation fraction between fixed steps.
	Alpha float32

	// Debug receives debug geometry; nil when debug drawing is off.
	Debug render.DebugDrawer
}
