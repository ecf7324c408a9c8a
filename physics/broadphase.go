// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/tessera3d/tessera/base/ordmap"
	"github.com/tessera3d/tessera/math32"
)

// Proxy is anything with a bounding box that can be
// registered in a [BroadPhase].
type Proxy interface {
	BBox() math32.Box3
}

// BroadPhase is the set of collision proxies of a world.
// Each proxy is stored with a fattened box, which is only
// refreshed when the tight box escapes it.
type BroadPhase struct {

	// Margin is added on every side of a proxy box when it is
	// (re)inserted.
	Margin float32

	proxies ordmap.Map[Proxy, math32.Box3]
}

// NewBroadPhase returns an empty broad phase with the given margin.
func NewBroadPhase(margin float32) *BroadPhase {
	return &BroadPhase{Margin: margin}
}

func (bp *BroadPhase) fatBox(p Proxy) math32.Box3 {
	bb := p.BBox()
	bb.ExpandByScalar(bp.Margin)
	return bb
}

// AddProxy registers the given proxy.
func (bp *BroadPhase) AddProxy(p Proxy) error {
	if bp.proxies.Has(p) {
		return ErrDuplicateProxy
	}
	bp.proxies.Add(p, bp.fatBox(p))
	return nil
}

// RemoveProxy unregisters the given proxy.
func (bp *BroadPhase) RemoveProxy(p Proxy) error {
	if !bp.proxies.DeleteKey(p) {
		return ErrProxyNotFound
	}
	return nil
}

// UpdateProxy refreshes the stored box of the proxy if its current
// box is no longer contained in it, returning whether it was refreshed.
func (bp *BroadPhase) UpdateProxy(p Proxy) bool {
	fat, ok := bp.proxies.ValueByKeyTry(p)
	if !ok || fat.ContainsBox(p.BBox()) {
		return false
	}
	bp.proxies.Add(p, bp.fatBox(p))
	return true
}

// Has returns whether the proxy is registered.
func (bp *BroadPhase) Has(p Proxy) bool {
	return bp.proxies.Has(p)
}

// Len returns the number of registered proxies.
func (bp *BroadPhase) Len() int {
	return bp.proxies.Len()
}

// Query calls fn, in registration order, for every proxy whose stored
// box intersects box, until fn returns false.
func (bp *BroadPhase) Query(box math32.Box3, fn func(p Proxy) bool) {
	for _, kv := range bp.proxies.Order {
		if kv.Value.IntersectsBox(box) {
			if !fn(kv.Key) {
				return
			}
		}
	}
}

// update refreshes all proxies that can recompute their own box.
func (bp *BroadPhase) update() {
	for _, kv := range bp.proxies.Order {
		if s, ok := kv.Key.(Shape); ok {
			s.UpdateBBox()
		}
	}
	for _, p := range bp.proxies.Keys() {
		bp.UpdateProxy(p)
	}
}
