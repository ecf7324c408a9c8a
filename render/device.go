// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render holds the renderer-facing side of the engine:
// meshes, materials, cameras, the instanced and batched renderers,
// and the narrow backend contract ([Device]) they submit to.
package render

import (
	"errors"

	"github.com/tessera3d/tessera/math32"
)

var (
	ErrDestroyed      = errors.New("render: resource has been destroyed")
	ErrDuplicateProxy = errors.New("render: proxy already added")
	ErrProxyNotFound  = errors.New("render: proxy not found")
	ErrInvalidOwner   = errors.New("render: proxy has no valid owner")
	ErrOutOfRange     = errors.New("render: index out of range")
)

// BufferUsage is how a GPU buffer is used.
type BufferUsage int32

const (
	VertexBuffer BufferUsage = iota
	IndexBuffer
	InstanceBuffer
)

func (u BufferUsage) String() string {
	switch u {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	case InstanceBuffer:
		return "instance"
	}
	return "unknown"
}

// Device is the rendering backend: it creates buffers and
// executes command lists.
type Device interface {

	// CreateBuffer allocates a buffer of size bytes.
	CreateBuffer(usage BufferUsage, size int) (Buffer, error)

	// NewCommandList returns an empty command list for one frame.
	NewCommandList() CommandList

	// Submit executes the commands recorded in cl.
	Submit(cl CommandList) error
}

// Buffer is a GPU buffer owned by whoever created it.
type Buffer interface {
	Size() int
	Usage() BufferUsage
	Destroy()
	IsDestroyed() bool
}

// CommandList records work for one frame. It is borrowed for the
// frame and must not be retained after [Device.Submit].
type CommandList interface {

	// UpdateBuffer writes data into buf starting at offset bytes.
	UpdateBuffer(buf Buffer, offset int, data []byte) error

	// DrawIndexed draws indexed triangles, once per instance transform.
	DrawIndexed(dc DrawCall) error
}

// DrawCall is one indexed, instanced draw.
type DrawCall struct {
	Name       string
	Vertices   Buffer
	Indices    Buffer
	IndexCount int
	Material   *Material
	Instances  []math32.Matrix4
}

// Triangles returns the total number of triangles drawn.
func (dc *DrawCall) Triangles() int {
	return dc.IndexCount / 3 * len(dc.Instances)
}
