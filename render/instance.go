// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"slices"

	"github.com/tessera3d/tessera/math32"
)

// MultiInstanceRenderer draws one [Model] once per registered
// [RenderProxy], frustum culled and with interpolated transforms.
type MultiInstanceRenderer struct {
	Model *Model

	// Renderables has one entry per model mesh.
	Renderables []*Renderable

	proxies []*RenderProxy
}

// NewMultiInstanceRenderer returns a renderer for the given model.
func NewMultiInstanceRenderer(model *Model) *MultiInstanceRenderer {
	mr := &MultiInstanceRenderer{Model: model}
	for i, ms := range model.Meshes {
		mr.Renderables = append(mr.Renderables, &Renderable{Mesh: ms, Material: model.MaterialFor(i)})
	}
	return mr
}

// TryAddProxy adds the proxy, returning false if it is already
// added or has no valid owner. A proxy with an empty LocalBox
// gets the model bounds.
func (mr *MultiInstanceRenderer) TryAddProxy(p *RenderProxy) bool {
	return mr.AddProxy(p) == nil
}

// AddProxy is [MultiInstanceRenderer.TryAddProxy] with an error
// wrapping [ErrDuplicateProxy] or [ErrInvalidOwner].
func (mr *MultiInstanceRenderer) AddProxy(p *RenderProxy) error {
	if p == nil || p.Owner == nil || !p.Owner.IsValid() {
		return fmt.Errorf("render: add proxy to %s: %w", mr.Model.Name, ErrInvalidOwner)
	}
	if slices.Contains(mr.proxies, p) {
		return fmt.Errorf("render: add proxy to %s: %w", mr.Model.Name, ErrDuplicateProxy)
	}
	if p.LocalBox.IsEmpty() || p.LocalBox.Size().IsZero() {
		p.LocalBox = mr.Model.BBox()
	}
	mr.proxies = append(mr.proxies, p)
	return nil
}

// TryRemoveProxy removes the proxy, returning false if it was not added.
func (mr *MultiInstanceRenderer) TryRemoveProxy(p *RenderProxy) bool {
	i := slices.Index(mr.proxies, p)
	if i < 0 {
		return false
	}
	mr.proxies = slices.Delete(mr.proxies, i, i+1)
	return true
}

// RemoveProxy is [MultiInstanceRenderer.TryRemoveProxy] with an
// error wrapping [ErrProxyNotFound].
func (mr *MultiInstanceRenderer) RemoveProxy(p *RenderProxy) error {
	if !mr.TryRemoveProxy(p) {
		return fmt.Errorf("render: remove proxy from %s: %w", mr.Model.Name, ErrProxyNotFound)
	}
	return nil
}

// Proxies returns the registered proxies in the order added.
func (mr *MultiInstanceRenderer) Proxies() []*RenderProxy {
	return slices.Clone(mr.proxies)
}

// Draw updates the world bounds of every proxy, culls them against
// the camera frustum, writes the interpolated transforms of the
// visible ones into the renderables and queues those into batch.
// It returns the number of visible proxies.
func (mr *MultiInstanceRenderer) Draw(cam *Camera, alpha float32, batch *BatchRenderer) int {
	n := len(mr.proxies)
	for _, r := range mr.Renderables {
		if cap(r.Transforms) < n {
			r.Transforms = make([]math32.Matrix4, 0, n)
		}
		r.Transforms = r.Transforms[:0]
	}
	visible := 0
	for _, p := range mr.proxies {
		if !p.Owner.IsValid() {
			p.Culled = true
			continue
		}
		m := p.Interpolated(alpha).Matrix()
		p.WorldBox = p.LocalBox.MulMatrix4(&m)
		p.Culled = cam != nil && cam.Frustum != nil && !cam.Frustum.IntersectsBox(p.WorldBox)
		if p.Culled {
			continue
		}
		visible++
		for _, r := range mr.Renderables {
			r.Transforms = append(r.Transforms, m)
		}
	}
	if visible == 0 {
		return 0
	}
	for _, r := range mr.Renderables {
		batch.Queue(r)
	}
	return visible
}
