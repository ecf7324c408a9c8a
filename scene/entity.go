// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"github.com/tessera3d/tessera/base/ordmap"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/render"
)

var (
	ErrDuplicateComponent = errors.New("scene: entity already has a component of this type")
	ErrComponentAttached  = errors.New("scene: component is already attached to an entity")
	ErrNilComponent       = errors.New("scene: nil component")
	ErrDisposed           = errors.New("scene: disposed")
	ErrDuplicateEntity    = errors.New("scene: entity already added")
	ErrEntityNotFound     = errors.New("scene: entity not found")
)

// ComponentNotFoundError is returned when an entity has no
// component of the requested type.
type ComponentNotFoundError struct {
	Entity *Entity
	Kind   reflect.Type
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("scene: entity %s has no %v component", e.Entity, e.Kind)
}

// Entity is an object in a [Scene]: a transform plus a set of
// components keyed by their concrete type.
type Entity struct {

	// ID is stable for the lifetime of the entity.
	ID uuid.UUID

	// Tag is a free-form label used by [Scene.FindByTag].
	Tag string

	Position math32.Vector3
	Scale    math32.Vector3
	Rotation math32.Quat

	components  ordmap.Map[reflect.Type, Component]
	scene       *Scene
	initialized bool
	disposed    bool
}

// NewEntity returns a new entity at the origin with unit scale.
func NewEntity(tag string) *Entity {
	return &Entity{
		ID:       uuid.New(),
		Tag:      tag,
		Scale:    math32.Vec3(1, 1, 1),
		Rotation: math32.QuatIdentity(),
	}
}

func (e *Entity) String() string {
	if e.Tag == "" {
		return e.ID.String()
	}
	return e.Tag + "#" + e.ID.String()[:8]
}

// Scene returns the scene the entity was added to, or nil.
func (e *Entity) Scene() *Scene { return e.scene }

// IsInitialized returns whether Init has run.
func (e *Entity) IsInitialized() bool { return e.initialized }

// IsDisposed returns whether Dispose has run.
func (e *Entity) IsDisposed() bool { return e.disposed }

// IsValid returns whether the entity is alive.
func (e *Entity) IsValid() bool { return e != nil && !e.disposed }

// Pose returns the transform of the entity.
func (e *Entity) Pose() render.Pose {
	return render.Pose{Pos: e.Position, Scale: e.Scale, Quat: e.Rotation}
}

// Matrix returns the model matrix of the entity.
func (e *Entity) Matrix() math32.Matrix4 { return e.Pose().Matrix() }

// AddComponent attaches c to the entity. If the entity is already
// initialized, c is initialized immediately.
func (e *Entity) AddComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	if e.disposed {
		return fmt.Errorf("add component to %s: %w", e, ErrDisposed)
	}
	kind := reflect.TypeOf(c)
	if e.components.Has(kind) {
		return fmt.Errorf("add %v to %s: %w", kind, e, ErrDuplicateComponent)
	}
	cb := c.AsComponentBase()
	if cb.entity != nil {
		return fmt.Errorf("add %v to %s: %w", kind, e, ErrComponentAttached)
	}
	cb.entity = e
	e.components.Add(kind, c)
	if e.initialized {
		initComponent(c)
	}
	return nil
}

func initComponent(c Component) {
	cb := c.AsComponentBase()
	if cb.initialized || cb.disposed {
		return
	}
	cb.initialized = true
	c.Init()
}

func disposeComponent(c Component) {
	cb := c.AsComponentBase()
	if cb.disposed {
		return
	}
	cb.disposed = true
	c.Dispose()
}

// GetComponent returns the component of type T, or a
// [*ComponentNotFoundError].
func GetComponent[T Component](e *Entity) (T, error) {
	c, ok := TryGetComponent[T](e)
	if !ok {
		return c, &ComponentNotFoundError{Entity: e, Kind: reflect.TypeFor[T]()}
	}
	return c, nil
}

// TryGetComponent returns the component of type T and whether it exists.
func TryGetComponent[T Component](e *Entity) (T, bool) {
	var zero T
	c, ok := e.components.ValueByKeyTry(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	return c.(T), true
}

// HasComponent returns whether the entity has a component of type T.
func HasComponent[T Component](e *Entity) bool {
	return e.components.Has(reflect.TypeFor[T]())
}

// RemoveComponent detaches and disposes the component of type T.
func RemoveComponent[T Component](e *Entity) error {
	kind := reflect.TypeFor[T]()
	c, ok := e.components.ValueByKeyTry(kind)
	if !ok {
		return &ComponentNotFoundError{Entity: e, Kind: kind}
	}
	e.components.DeleteKey(kind)
	disposeComponent(c)
	return nil
}

// Components returns the components in the order they were added.
func (e *Entity) Components() []Component {
	return e.components.Values()
}

// Init initializes the entity and all of its components.
// Only the first call has an effect.
func (e *Entity) Init() {
	if e.initialized || e.disposed {
		return
	}
	e.initialized = true
	for _, c := range e.Components() {
		initComponent(c)
	}
}

// each calls fn for the initialized components, over a snapshot
// so that fn can add or remove components.
func (e *Entity) each(fn func(c Component)) {
	for _, c := range e.Components() {
		cb := c.AsComponentBase()
		if cb.initialized && !cb.disposed {
			fn(c)
		}
	}
}

func (e *Entity) Update(t *Time)       { e.each(func(c Component) { c.Update(t) }) }
func (e *Entity) AfterUpdate(t *Time)  { e.each(func(c Component) { c.AfterUpdate(t) }) }
func (e *Entity) FixedUpdate(t *Time)  { e.each(func(c Component) { c.FixedUpdate(t) }) }
func (e *Entity) Draw(dc *DrawContext) { e.each(func(c Component) { c.Draw(dc) }) }

// Dispose disposes all components, last added first, and
// invalidates the entity. It is safe to call more than once.
func (e *Entity) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	cs := e.Components()
	slices.Reverse(cs)
	for _, c := range cs {
		disposeComponent(c)
	}
	e.components.Reset()
}
