// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/tessera3d/tessera/math32"
)

// Texture is an RGBA image used by materials.
type Texture struct {
	Name   string
	Width  int
	Height int

	// Pixels holds Width*Height RGBA bytes, row major.
	Pixels []byte
}

// NewSolidTexture returns a 1x1 texture of the given color.
func NewSolidTexture(name string, r, g, b, a byte) *Texture {
	return &Texture{Name: name, Width: 1, Height: 1, Pixels: []byte{r, g, b, a}}
}

// Material defines how geometry is shaded.
type Material struct {
	Name string

	// Color multiplies the texture and vertex colors.
	Color math32.Vector4

	// Texture is sampled with the vertex texture coordinates.
	Texture *Texture

	// Effect names the shader program used by the backend.
	Effect string

	// CullBack enables back-face culling; counter-clockwise
	// triangles are front facing.
	CullBack bool
}

// NewMaterial returns a white, back-face culled material with the
// given texture and effect.
func NewMaterial(name string, tex *Texture, effect string) *Material {
	return &Material{Name: name, Color: White, Texture: tex, Effect: effect, CullBack: true}
}
