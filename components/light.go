// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package components

import (
	"log/slog"

	"github.com/tessera3d/tessera/render"
	"github.com/tessera3d/tessera/scene"
)

// Light registers a light with the scene resources while attached.
// Directional and point lights follow the entity position.
type Light struct {
	scene.ComponentBase

	// Name is unique among the lights of a scene.
	Name string

	Light render.Light

	added bool
}

// NewLight returns a light component.
func NewLight(name string, lt render.Light) *Light {
	return &Light{Name: name, Light: lt}
}

func (lc *Light) Init() {
	lc.follow()
	if err := lc.Scene().Resources.AddLight(lc.Name, lc.Light); err != nil {
		slog.Warn("components: light", "entity", lc.Entity(), "err", err)
		return
	}
	lc.added = true
}

func (lc *Light) Update(t *scene.Time) { lc.follow() }

func (lc *Light) follow() {
	pos := lc.Entity().Position
	switch lt := lc.Light.(type) {
	case *render.DirLight:
		lt.Pos = pos
	case *render.PointLight:
		lt.Pos = pos
	}
}

func (lc *Light) Dispose() {
	if lc.added {
		lc.Scene().Resources.RemoveLight(lc.Name)
	}
}
