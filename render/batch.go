// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tessera3d/tessera/math32"
)

// Stats counts the work done by one [BatchRenderer.Flush].
type Stats struct {
	DrawCalls int
	Instances int
	Triangles int
}

// Add adds other to the stats.
func (st *Stats) Add(other Stats) {
	st.DrawCalls += other.DrawCalls
	st.Instances += other.Instances
	st.Triangles += other.Triangles
}

func (st Stats) String() string {
	return fmt.Sprintf("draws: %d instances: %d triangles: %d", st.DrawCalls, st.Instances, st.Triangles)
}

// BatchRenderer collects the renderables of a frame and
// records them into a command list in the order queued.
type BatchRenderer struct {
	queue []*Renderable

	// Last holds the stats of the most recent flush.
	Last Stats
}

// NewBatchRenderer returns an empty batch renderer.
func NewBatchRenderer() *BatchRenderer {
	return &BatchRenderer{}
}

// Queue adds the renderable to the current frame.
func (br *BatchRenderer) Queue(r *Renderable) {
	br.queue = append(br.queue, r)
}

// QueueMesh adds a single instance of the mesh with the given
// transform. A nil material uses the mesh material.
func (br *BatchRenderer) QueueMesh(ms *Mesh, mat *Material, transform math32.Matrix4) {
	br.Queue(&Renderable{Mesh: ms, Material: mat, Transforms: []math32.Matrix4{transform}})
}

// Len returns the number of queued renderables.
func (br *BatchRenderer) Len() int { return len(br.queue) }

// Flush records one instanced draw per queued renderable into cl,
// uploading meshes that have pending changes first, and empties the
// queue. Renderables whose mesh was destroyed are skipped and reported
// in the returned error, which never stops the rest of the batch.
func (br *BatchRenderer) Flush(cl CommandList) (Stats, error) {
	var st Stats
	var errs []error
	for _, r := range br.queue {
		if len(r.Transforms) == 0 {
			continue
		}
		if r.Mesh == nil || r.Mesh.IsDestroyed() {
			errs = append(errs, fmt.Errorf("render: flush: %w", ErrDestroyed))
			continue
		}
		if r.Mesh.NeedsUpload() {
			if err := r.Mesh.UpdateVertexBuffer(cl); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		dc := r.Mesh.drawCall(r.Material, slices.Clone(r.Transforms))
		if err := cl.DrawIndexed(dc); err != nil {
			errs = append(errs, fmt.Errorf("render: draw %s: %w", dc.Name, err))
			continue
		}
		st.DrawCalls++
		st.Instances += len(dc.Instances)
		st.Triangles += dc.Triangles()
	}
	clear(br.queue)
	br.queue = br.queue[:0]
	br.Last = st
	err := errors.Join(errs...)
	if err != nil {
		slog.Warn("render: batch flush", "err", err)
	}
	return st, err
}
