// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/tessera3d/tessera/math32"
)

// Model is a set of meshes drawn together.
type Model struct {
	Name   string
	Meshes []*Mesh

	// Materials overrides the mesh materials by index; nil
	// entries (or a short list) fall back to the mesh material.
	Materials []*Material
}

// NewModel returns a model of the given meshes.
func NewModel(name string, meshes ...*Mesh) *Model {
	return &Model{Name: name, Meshes: meshes}
}

// MaterialFor returns the material used for mesh i.
func (md *Model) MaterialFor(i int) *Material {
	if i < len(md.Materials) && md.Materials[i] != nil {
		return md.Materials[i]
	}
	return md.Meshes[i].Material
}

// BBox returns the union of the mesh bounding boxes.
func (md *Model) BBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, ms := range md.Meshes {
		bb.ExpandByBox(ms.BBox())
	}
	return bb
}

// Destroy destroys all meshes of the model.
func (md *Model) Destroy() {
	for _, ms := range md.Meshes {
		ms.Destroy()
	}
}

// Renderable is a mesh and material with the instance transforms
// to draw it with this frame.
type Renderable struct {
	Mesh       *Mesh
	Material   *Material
	Transforms []math32.Matrix4
}
