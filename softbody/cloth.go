// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softbody

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/physics"
	"github.com/tessera3d/tessera/render"
)

// UVMode selects how cloth texture coordinates are generated.
type UVMode int32

const (
	// UVNormalized maps the cloth extent onto [0,1] in both directions.
	UVNormalized UVMode = iota

	// UVGrid uses the local x and z coordinates directly.
	UVGrid
)

func (m UVMode) String() string {
	switch m {
	case UVNormalized:
		return "normalized"
	case UVGrid:
		return "grid"
	}
	return fmt.Sprintf("UVMode(%d)", int32(m))
}

// ParseUVMode returns the mode with the given name.
func ParseUVMode(s string) (UVMode, error) {
	switch strings.ToLower(s) {
	case "normalized", "":
		return UVNormalized, nil
	case "grid":
		return UVGrid, nil
	}
	return UVNormalized, fmt.Errorf("%w: unknown uv mode %q", ErrInvalidParams, s)
}

// ClothParams configures [NewCloth].
type ClothParams struct {

	// number of cells along x and z
	Width, Height int

	// cell size along x and z
	Spacing math32.Vector2

	// compliance of the springs and anchors; 0 is rigid
	Softness float32

	// anchor the center to several vertices so that
	// it follows the cloth; otherwise it holds one vertex
	DynamicCenter bool

	UV UVMode

	Position math32.Vector3
	Rotation math32.Quat

	VertexMass float32
	CenterMass float32
}

// DefaultClothParams returns an 8x8 cloth with quarter-unit cells.
func DefaultClothParams() ClothParams {
	return ClothParams{
		Width:         8,
		Height:        8,
		Spacing:       math32.Vec2(0.25, 0.25),
		Softness:      0.0005,
		DynamicCenter: true,
		Rotation:      math32.QuatIdentity(),
		VertexMass:    1,
		CenterMass:    1,
	}
}

func (p *ClothParams) validate() error {
	switch {
	case p.Width < 1 || p.Height < 1:
		return fmt.Errorf("%w: cloth size %dx%d", ErrInvalidParams, p.Width, p.Height)
	case p.Spacing.X <= 0 || p.Spacing.Y <= 0:
		return fmt.Errorf("%w: cloth spacing %v", ErrInvalidParams, p.Spacing)
	case p.Softness < 0:
		return fmt.Errorf("%w: negative softness %g", ErrInvalidParams, p.Softness)
	}
	return nil
}

// Cloth is a rectangular grid of vertex bodies linked by springs
// along every triangle edge, with triangle shapes for collision.
type Cloth struct {
	*Simple
	Params ClothParams

	faces []face
}

// NewCloth builds a cloth in w. Clock may be nil, in which case
// the mesh always shows the latest step.
func NewCloth(w *physics.World, clock Clock, params ClothParams) (*Cloth, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.Rotation.IsNil() {
		params.Rotation = math32.QuatIdentity()
	}
	cl := &Cloth{Simple: newSimple(w, clock), Params: params}
	cl.buildMesh = cl.newMesh
	if err := cl.build(); err != nil {
		cl.Destroy()
		return nil, err
	}
	return cl, nil
}

func (cl *Cloth) local(i, j int) math32.Vector3 {
	p := &cl.Params
	return math32.Vec3((float32(i)-float32(p.Width)/2)*p.Spacing.X, 0, (float32(j)-float32(p.Height)/2)*p.Spacing.Y)
}

// cellTriangles returns the two triangles of cell (i, j) as
// grid corners, alternating the diagonal in a checkerboard.
func cellTriangles(i, j int) [2][3][2]int {
	c00, c10, c01, c11 := [2]int{i, j}, [2]int{i + 1, j}, [2]int{i, j + 1}, [2]int{i + 1, j + 1}
	if (i+j)%2 == 0 {
		return [2][3][2]int{{c00, c01, c11}, {c00, c11, c10}}
	}
	return [2][3][2]int{{c00, c01, c10}, {c10, c01, c11}}
}

func (cl *Cloth) build() error {
	p := &cl.Params
	wd := newWelder(min(p.Spacing.X, p.Spacing.Y) / 1000)
	locals := []math32.Vector3{}
	vertex := func(c [2]int) int {
		lp := cl.local(c[0], c[1])
		return wd.weld(lp, func() int {
			cl.AddVertex(p.Position.Add(lp.MulQuat(p.Rotation)), p.VertexMass)
			locals = append(locals, lp)
			return len(cl.Vertices) - 1
		})
	}
	for j := range p.Height {
		for i := range p.Width {
			for _, tri := range cellTriangles(i, j) {
				var f face
				for k, c := range tri {
					f.v[k] = vertex(c)
				}
				cl.faces = append(cl.faces, f)
			}
		}
	}
	cl.setUVs(locals)

	type edge [2]int
	seen := map[edge]bool{}
	for _, f := range cl.faces {
		for k := range 3 {
			a, b := f.v[k], f.v[(k+1)%3]
			e := edge{min(a, b), max(a, b)}
			if seen[e] {
				continue
			}
			seen[e] = true
			if err := addSpring(cl.SoftBody, cl.Vertices[e[0]], cl.Vertices[e[1]], p.Softness); err != nil {
				return err
			}
		}
	}

	var center math32.Vector3
	for _, v := range cl.Vertices {
		center.SetAdd(v.Position())
	}
	center = center.DivScalar(float32(len(cl.Vertices)))
	cl.createCenter(center, p.CenterMass, p.CenterMass/6)
	cl.Center.SetOrientation(p.Rotation)
	for _, i := range cl.nearest(center, cl.anchorCount()) {
		if err := addBallSocket(cl.SoftBody, cl.Center, cl.Vertices[i], p.Softness); err != nil {
			return err
		}
	}

	for _, f := range cl.faces {
		v := cl.Vertices
		if err := cl.AddShape(physics.NewTriangleShape(v[f.v[0]], v[f.v[1]], v[f.v[2]])); err != nil {
			return err
		}
	}
	return nil
}

// anchorCount is the number of vertices closest to the center of the
// grid: 4 around a center cell, 1 on a center vertex, 2 on an edge.
func (cl *Cloth) anchorCount() int {
	if !cl.Params.DynamicCenter {
		return 1
	}
	ow, oh := cl.Params.Width%2 == 1, cl.Params.Height%2 == 1
	switch {
	case ow && oh:
		return 4
	case !ow && !oh:
		return 1
	}
	return 2
}

// nearest returns the indexes of the n vertices closest to p,
// breaking ties by index.
func (cl *Cloth) nearest(p math32.Vector3, n int) []int {
	idx := make([]int, len(cl.Vertices))
	dist := make([]float32, len(cl.Vertices))
	for i, v := range cl.Vertices {
		idx[i] = i
		dist[i] = v.Position().DistanceToSquared(p)
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case dist[a] < dist[b]:
			return -1
		case dist[a] > dist[b]:
			return 1
		}
		return a - b
	})
	return idx[:min(n, len(idx))]
}

func (cl *Cloth) setUVs(locals []math32.Vector3) {
	bb := math32.B3FromPoints(locals...)
	size := bb.Size()
	uv := func(lp math32.Vector3) math32.Vector2 {
		if cl.Params.UV == UVGrid {
			return math32.Vec2(lp.X, lp.Z)
		}
		return math32.Vec2((lp.X-bb.Min.X)/size.X, 1-(lp.Z-bb.Min.Z)/size.Z)
	}
	for fi := range cl.faces {
		f := &cl.faces[fi]
		for k := range 3 {
			f.uv[k] = uv(locals[f.v[k]])
		}
	}
}

var clothOrder = [3]int{0, 1, 2}

func (cl *Cloth) newMesh(res *render.Resources) (*render.Mesh, error) {
	return cl.newFaceMesh(res, "cloth", cl.faces, clothOrder)
}

// UpdateMesh refreshes the mesh positions and normals.
func (cl *Cloth) UpdateMesh(cmd render.CommandList) error {
	return cl.refreshMesh(cmd, cl.faces, clothOrder, false)
}

// DebugDraw draws the triangles, springs, anchors and center.
func (cl *Cloth) DebugDraw(dd render.DebugDrawer) { cl.debugDraw(dd) }

// Triangles returns the number of cloth triangles.
func (cl *Cloth) Triangles() int { return len(cl.faces) }
