// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termdraw

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/render"
)

func newDrawer(t *testing.T) *Drawer {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(20, 10)
	return New(s, render.NewCamera())
}

func cell(dw *Drawer, x, y int) rune {
	r, _, _, _ := dw.Screen.GetContent(x, y)
	return r
}

func blank(r rune) bool {
	return r == ' ' || r == 0
}

func countDrawn(dw *Drawer) int {
	n := 0
	w, h := dw.Screen.Size()
	for y := range h {
		for x := range w {
			if !blank(cell(dw, x, y)) {
				n++
			}
		}
	}
	return n
}

func TestDrawPoint(t *testing.T) {
	dw := newDrawer(t)
	x, y, ok := dw.Cell(math32.Vector3{})
	require.True(t, ok)
	assert.Equal(t, 10, x)
	assert.Equal(t, 5, y)
	dw.DrawPoint(math32.Vector3{})
	assert.Equal(t, 'o', cell(dw, 10, 5))
	assert.Equal(t, 1, countDrawn(dw))
}

func TestDrawSegment(t *testing.T) {
	dw := newDrawer(t)
	dw.DrawSegment(math32.Vec3(-1, 0, 0), math32.Vec3(1, 0, 0))
	assert.Equal(t, '.', cell(dw, 10, 5))
	assert.Equal(t, '.', cell(dw, 8, 5))
	assert.True(t, blank(cell(dw, 0, 5)))
	assert.True(t, blank(cell(dw, 10, 4)))
	assert.Greater(t, countDrawn(dw), 3)
}

func TestBehindCameraSkipped(t *testing.T) {
	dw := newDrawer(t)
	dw.DrawPoint(math32.Vec3(0, 0, 20))
	dw.DrawSegment(math32.Vec3(0, 0, 20), math32.Vector3{})
	assert.Equal(t, 0, countDrawn(dw))
}

func TestDrawText(t *testing.T) {
	dw := newDrawer(t)
	dw.DrawText(18, 0, "abc")
	assert.Equal(t, 'a', cell(dw, 18, 0))
	assert.Equal(t, 'b', cell(dw, 19, 0))
	assert.Equal(t, 2, countDrawn(dw))
}
