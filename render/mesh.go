// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/tessera3d/tessera/math32"
)

// Mesh is indexed triangle geometry with its GPU buffers.
// The CPU copy of the vertices is authoritative: changes made with
// [Mesh.SetVertexValue] reach the GPU on [Mesh.UpdateVertexBuffer].
// A mesh owns its buffers and releases them in [Mesh.Destroy].
type Mesh struct {

	// Name is used for debugging and draw call labels.
	Name string

	// Material is the default material for drawing the mesh.
	Material *Material

	vertices []Vertex
	indices  []uint32
	vbuf     Buffer
	ibuf     Buffer

	vertsDirty   bool
	indexPending bool
	destroyed    bool
}

// NewMesh creates a mesh on the given device. Every index must
// refer to a vertex, and the index count must be a multiple of 3.
// The vertices and indices are copied.
func NewMesh(dev Device, name string, vertices []Vertex, indices []uint32, mat *Material) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("render.NewMesh %s: index count %d is not a multiple of 3", name, len(indices))
	}
	for _, i := range indices {
		if int(i) >= len(vertices) {
			return nil, fmt.Errorf("render.NewMesh %s: index %d >= vertex count %d: %w", name, i, len(vertices), ErrOutOfRange)
		}
	}
	vbuf, err := dev.CreateBuffer(VertexBuffer, len(vertices)*VertexSize)
	if err != nil {
		return nil, fmt.Errorf("render.NewMesh %s: %w", name, err)
	}
	ibuf, err := dev.CreateBuffer(IndexBuffer, len(indices)*4)
	if err != nil {
		vbuf.Destroy()
		return nil, fmt.Errorf("render.NewMesh %s: %w", name, err)
	}
	return &Mesh{
		Name:         name,
		Material:     mat,
		vertices:     append([]Vertex(nil), vertices...),
		indices:      append([]uint32(nil), indices...),
		vbuf:         vbuf,
		ibuf:         ibuf,
		vertsDirty:   true,
		indexPending: true,
	}, nil
}

// VertexCount returns the number of vertices, or 0 once destroyed.
func (ms *Mesh) VertexCount() int {
	if ms.destroyed {
		return 0
	}
	return len(ms.vertices)
}

// IndexCount returns the number of indices, or 0 once destroyed.
func (ms *Mesh) IndexCount() int {
	if ms.destroyed {
		return 0
	}
	return len(ms.indices)
}

// Vertex returns the vertex at index i.
func (ms *Mesh) Vertex(i int) (Vertex, error) {
	if ms.destroyed {
		return Vertex{}, ErrDestroyed
	}
	if i < 0 || i >= len(ms.vertices) {
		return Vertex{}, ErrOutOfRange
	}
	return ms.vertices[i], nil
}

// Indices returns a copy of the index list.
func (ms *Mesh) Indices() ([]uint32, error) {
	if ms.destroyed {
		return nil, ErrDestroyed
	}
	return append([]uint32(nil), ms.indices...), nil
}

// SetVertexValue replaces the vertex at index i.
func (ms *Mesh) SetVertexValue(i int, v Vertex) error {
	if ms.destroyed {
		return ErrDestroyed
	}
	if i < 0 || i >= len(ms.vertices) {
		return ErrOutOfRange
	}
	ms.vertices[i] = v
	ms.vertsDirty = true
	return nil
}

// NeedsUpload returns whether CPU-side changes have not yet been
// written to the GPU.
func (ms *Mesh) NeedsUpload() bool {
	return !ms.destroyed && (ms.vertsDirty || ms.indexPending)
}

// UpdateVertexBuffer records the upload of the vertex data
// (and, the first time, the index data) into cl.
func (ms *Mesh) UpdateVertexBuffer(cl CommandList) error {
	if ms.destroyed {
		return ErrDestroyed
	}
	if ms.indexPending {
		if err := cl.UpdateBuffer(ms.ibuf, 0, encodeIndices(ms.indices)); err != nil {
			return fmt.Errorf("render: upload indices of %s: %w", ms.Name, err)
		}
		ms.indexPending = false
	}
	b := make([]byte, 0, len(ms.vertices)*VertexSize)
	for i := range ms.vertices {
		b = appendVertex(b, &ms.vertices[i])
	}
	if err := cl.UpdateBuffer(ms.vbuf, 0, b); err != nil {
		return fmt.Errorf("render: upload vertices of %s: %w", ms.Name, err)
	}
	ms.vertsDirty = false
	return nil
}

// BBox returns the bounding box of the vertex positions.
func (ms *Mesh) BBox() math32.Box3 {
	bb := math32.B3Empty()
	if ms.destroyed {
		return bb
	}
	for i := range ms.vertices {
		bb.ExpandByPoint(ms.vertices[i].Position)
	}
	return bb
}

// drawCall returns the draw call for the mesh with the given instances.
func (ms *Mesh) drawCall(mat *Material, instances []math32.Matrix4) DrawCall {
	if mat == nil {
		mat = ms.Material
	}
	return DrawCall{
		Name:       ms.Name,
		Vertices:   ms.vbuf,
		Indices:    ms.ibuf,
		IndexCount: len(ms.indices),
		Material:   mat,
		Instances:  instances,
	}
}

// Destroy releases the GPU buffers. It is safe to call more than once.
func (ms *Mesh) Destroy() {
	if ms.destroyed {
		return
	}
	ms.destroyed = true
	ms.vbuf.Destroy()
	ms.ibuf.Destroy()
	ms.vertices = nil
	ms.indices = nil
}

// IsDestroyed returns whether [Mesh.Destroy] has been called.
func (ms *Mesh) IsDestroyed() bool { return ms.destroyed }
