// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/tessera3d/tessera/math32"
)

// Light represents a light that illuminates a scene.
// Lights are stored in [Resources] and not within the entities.
type Light interface {

	// AsLightBase returns the common light fields.
	AsLightBase() *LightBase
}

// LightBase provides the base implementation for Light interface
type LightBase struct {

	// whether light is on or off
	On bool

	// color of the light, in linear RGB
	Color math32.Vector3
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// AmbientLight provides diffuse uniform lighting.
// Typically only one of these.
type AmbientLight struct {
	LightBase
}

// NewAmbientLight returns an ambient light of the given color and intensity.
func NewAmbientLight(color math32.Vector3, intensity float32) *AmbientLight {
	return &AmbientLight{LightBase{On: true, Color: color.MulScalar(intensity)}}
}

// DirLight is directional light, which is assumed to project light toward
// the origin based on its position, with no attenuation, like the Sun.
type DirLight struct {
	LightBase

	// Pos is the direction the light comes from.
	Pos math32.Vector3
}

// NewDirLight returns a directional light coming from pos.
func NewDirLight(color math32.Vector3, intensity float32, pos math32.Vector3) *DirLight {
	return &DirLight{LightBase{On: true, Color: color.MulScalar(intensity)}, pos}
}

// ViewDir returns the direction toward the light in view space.
func (dl *DirLight) ViewDir(viewMat *math32.Matrix4) math32.Vector3 {
	return math32.Vector4FromVector3(dl.Pos, 0).MulMatrix4(viewMat).PerspDiv().Normal()
}

// PointLight is an omnidirectional light with a position
// and associated decay factors.
type PointLight struct {
	LightBase

	// position of light in world coordinates
	Pos math32.Vector3

	// Distance linear decay factor
	LinearDecay float32

	// Distance quadratic decay factor
	QuadraticDecay float32
}

// NewPointLight returns a point light at pos with unit linear decay.
func NewPointLight(color math32.Vector3, intensity float32, pos math32.Vector3) *PointLight {
	return &PointLight{LightBase: LightBase{On: true, Color: color.MulScalar(intensity)}, Pos: pos, LinearDecay: 1}
}

// Attenuation returns the light falloff at distance d.
func (pl *PointLight) Attenuation(d float32) float32 {
	return 1 / (1 + pl.LinearDecay*d + pl.QuadraticDecay*d*d)
}
