// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package termdraw draws debug geometry into a terminal through tcell.
package termdraw

import (
	"github.com/gdamore/tcell/v2"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/render"
)

// Drawer is a [render.DebugDrawer] that projects world geometry through
// a camera and rasterizes it onto the cells of a [tcell.Screen].
type Drawer struct {
	Screen tcell.Screen
	Camera *render.Camera

	// Style is used for all cells drawn.
	Style tcell.Style

	// SegmentRune and PointRune are the characters drawn.
	SegmentRune rune
	PointRune   rune
}

// New returns a drawer for the given screen and camera.
func New(s tcell.Screen, cam *render.Camera) *Drawer {
	return &Drawer{
		Screen:      s,
		Camera:      cam,
		Style:       tcell.StyleDefault.Foreground(tcell.ColorLightGreen),
		SegmentRune: '.',
		PointRune:   'o',
	}
}

// Cell returns the screen cell of the world point p, and false
// if p is behind the camera.
func (dw *Drawer) Cell(p math32.Vector3) (x, y int, ok bool) {
	ndc, ok := dw.Camera.Project(p)
	if !ok {
		return 0, 0, false
	}
	w, h := dw.Screen.Size()
	x = int(math32.Floor((ndc.X + 1) * 0.5 * float32(w)))
	y = int(math32.Floor((1 - ndc.Y) * 0.5 * float32(h)))
	return x, y, true
}

func (dw *Drawer) set(x, y int, r rune) {
	w, h := dw.Screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	dw.Screen.SetContent(x, y, r, nil, dw.Style)
}

// DrawSegment draws the segment a-b with Bresenham's algorithm.
// Segments with an endpoint behind the camera are skipped.
func (dw *Drawer) DrawSegment(a, b math32.Vector3) {
	x0, y0, ok0 := dw.Cell(a)
	x1, y1, ok1 := dw.Cell(b)
	if !ok0 || !ok1 {
		return
	}
	w, h := dw.Screen.Size()
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	// nearly degenerate projections explode
	if dx-dy > 8*(w+h) {
		return
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		dw.set(x0, y0, dw.SegmentRune)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawPoint draws a single cell at p.
func (dw *Drawer) DrawPoint(p math32.Vector3) {
	if x, y, ok := dw.Cell(p); ok {
		dw.set(x, y, dw.PointRune)
	}
}

// DrawText writes s starting at cell x, y, for status lines.
func (dw *Drawer) DrawText(x, y int, s string) {
	for _, r := range s {
		dw.set(x, y, r)
		x++
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
