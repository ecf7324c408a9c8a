// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softbody

import (
	"github.com/tessera3d/tessera/math32"
)

// icosahedron faces, clockwise seen from outside.
var icosaFaces = [20][3]int{
	{0, 5, 11}, {0, 1, 5}, {0, 7, 1}, {0, 10, 7}, {0, 11, 10},
	{1, 9, 5}, {5, 4, 11}, {11, 2, 10}, {10, 6, 7}, {7, 8, 1},
	{3, 4, 9}, {3, 2, 4}, {3, 6, 2}, {3, 8, 6}, {3, 9, 8},
	{4, 5, 9}, {2, 11, 4}, {6, 10, 2}, {8, 7, 6}, {9, 1, 8},
}

func icosahedron() []math32.Vector3 {
	t := (1 + math32.Sqrt(5)) / 2
	pts := []math32.Vector3{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}
	for i := range pts {
		pts[i] = pts[i].Normal()
	}
	return pts
}

// icosphere returns the unit sphere points and triangles of an
// icosahedron subdivided n times, sharing midpoints between faces.
func icosphere(n int) ([]math32.Vector3, [][3]int) {
	pts := icosahedron()
	tris := make([][3]int, len(icosaFaces))
	for i, f := range icosaFaces {
		tris[i] = f
	}
	for range n {
		mids := map[[2]int]int{}
		mid := func(a, b int) int {
			k := [2]int{min(a, b), max(a, b)}
			if i, ok := mids[k]; ok {
				return i
			}
			pts = append(pts, pts[a].Add(pts[b]).Normal())
			mids[k] = len(pts) - 1
			return len(pts) - 1
		}
		next := make([][3]int, 0, 4*len(tris))
		for _, t := range tris {
			ab, bc, ca := mid(t[0], t[1]), mid(t[1], t[2]), mid(t[2], t[0])
			next = append(next,
				[3]int{t[0], ab, ca}, [3]int{t[1], bc, ab},
				[3]int{t[2], ca, bc}, [3]int{ab, bc, ca})
		}
		tris = next
	}
	return pts, tris
}
