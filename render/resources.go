// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/tessera3d/tessera/base/ordmap"
)

// DefaultEffect is the name of the effect used by the default material.
const DefaultEffect = "basic"

// Resources is the set of render resources shared by a scene:
// the device, placeholder texture and material, and the lights.
// It is passed explicitly to whatever needs it.
type Resources struct {
	Device Device

	// DefaultTexture is a 1x1 white texture.
	DefaultTexture *Texture

	// DefaultMaterial uses the default texture and effect.
	DefaultMaterial *Material

	// DefaultEffect is the effect name of the default material.
	DefaultEffect string

	lights ordmap.Map[string, Light]
}

// NewResources returns resources for the given device.
func NewResources(dev Device) *Resources {
	tex := NewSolidTexture("default", 255, 255, 255, 255)
	return &Resources{
		Device:          dev,
		DefaultTexture:  tex,
		DefaultMaterial: NewMaterial("default", tex, DefaultEffect),
		DefaultEffect:   DefaultEffect,
	}
}

// AddLight adds the light under the given unique name.
func (rs *Resources) AddLight(name string, lt Light) error {
	if rs.lights.Has(name) {
		return fmt.Errorf("render: light %q already exists", name)
	}
	rs.lights.Add(name, lt)
	return nil
}

// RemoveLight removes the named light, returning whether it existed.
func (rs *Resources) RemoveLight(name string) bool {
	return rs.lights.DeleteKey(name)
}

// Light returns the named light.
func (rs *Resources) Light(name string) (Light, bool) {
	return rs.lights.ValueByKeyTry(name)
}

// Lights returns the lights in the order added.
func (rs *Resources) Lights() []Light {
	return rs.lights.Values()
}
