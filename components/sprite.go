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

// Sprite draws a textured quad at the entity position that always
// faces the camera.
type Sprite struct {
	scene.ComponentBase

	// Texture defaults to the scene's default texture.
	Texture *render.Texture

	// Size of the quad in world units.
	Size math32.Vector2

	Color math32.Vector4

	mesh *render.Mesh
}

// NewSprite returns a sprite of the given size.
func NewSprite(tex *render.Texture, size math32.Vector2) *Sprite {
	return &Sprite{Texture: tex, Size: size, Color: render.White}
}

// Mesh returns the quad mesh, creating it on first use.
func (sp *Sprite) Mesh(res *render.Resources) (*render.Mesh, error) {
	if sp.mesh != nil {
		return sp.mesh, nil
	}
	tex := sp.Texture
	if tex == nil {
		tex = res.DefaultTexture
	}
	mat := render.NewMaterial("sprite", tex, res.DefaultEffect)
	mat.Color = sp.Color
	mat.CullBack = false
	n := math32.Vector3Z
	verts := []render.Vertex{
		{Position: math32.Vec3(-0.5, -0.5, 0), Normal: n, TexCoord: math32.Vec2(0, 1), Color: sp.Color},
		{Position: math32.Vec3(0.5, -0.5, 0), Normal: n, TexCoord: math32.Vec2(1, 1), Color: sp.Color},
		{Position: math32.Vec3(0.5, 0.5, 0), Normal: n, TexCoord: math32.Vec2(1, 0), Color: sp.Color},
		{Position: math32.Vec3(-0.5, 0.5, 0), Normal: n, TexCoord: math32.Vec2(0, 0), Color: sp.Color},
	}
	ms, err := render.NewMesh(res.Device, "sprite", verts, []uint32{0, 1, 2, 0, 2, 3}, mat)
	if err != nil {
		return nil, err
	}
	sp.mesh = ms
	return ms, nil
}

// Transform returns the model matrix facing the camera.
func (sp *Sprite) Transform(cam *render.Camera) math32.Matrix4 {
	e := sp.Entity()
	var m math32.Matrix4
	m.SetTransform(e.Position, cam.Billboard(), math32.Vec3(sp.Size.X*e.Scale.X, sp.Size.Y*e.Scale.Y, 1))
	return m
}

func (sp *Sprite) Draw(dc *scene.DrawContext) {
	ms, err := sp.Mesh(dc.Scene.Resources)
	if err != nil {
		slog.Error("components: sprite", "entity", sp.Entity(), "err", err)
		return
	}
	dc.Scene.Batch.QueueMesh(ms, nil, sp.Transform(dc.Scene.Camera))
}

func (sp *Sprite) Dispose() {
	if sp.mesh != nil {
		sp.mesh.Destroy()
		sp.mesh = nil
	}
}
