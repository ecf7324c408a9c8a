// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package components

import (
	"log/slog"

	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/render"
	"github.com/tessera3d/tessera/scene"
)

// ModelRenderer draws its entity as an instance of a model through
// the scene's instanced renderer for that model.
type ModelRenderer struct {
	scene.ComponentBase

	Model *render.Model

	// Bounds is the local bounding box used for culling;
	// empty uses the model bounds.
	Bounds math32.Box3

	// Proxy is registered with the renderer while initialized.
	Proxy *render.RenderProxy

	renderer *render.MultiInstanceRenderer
}

// NewModelRenderer returns a renderer for the model.
func NewModelRenderer(model *render.Model) *ModelRenderer {
	return &ModelRenderer{Model: model}
}

func (mr *ModelRenderer) Init() {
	mr.renderer = mr.Scene().InstanceRenderer(mr.Model)
	mr.Proxy = render.NewRenderProxy(mr.Entity(), mr.Bounds)
	if err := mr.renderer.AddProxy(mr.Proxy); err != nil {
		slog.Warn("components: model renderer", "entity", mr.Entity(), "err", err)
		return
	}
	mr.Proxy.Capture()
}

// FixedUpdate records the entity pose after the physics step.
func (mr *ModelRenderer) FixedUpdate(t *scene.Time) {
	mr.Proxy.Capture()
}

func (mr *ModelRenderer) Dispose() {
	if mr.renderer != nil {
		mr.renderer.TryRemoveProxy(mr.Proxy)
	}
}
