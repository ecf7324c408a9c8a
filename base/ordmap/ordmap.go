// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap provides a generic map that remembers insertion order.
//
// Entities keep their components in one and scenes their entities, so
// every lifecycle pass visits items in the order they were added.
// Lookup and append are O(1); deletion shifts the tail and reindexes it.
// The zero value is ready to use.
package ordmap

import "slices"

// KeyValue is one entry of a [Map].
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered map. Order holds the entries and
// Map indexes into Order by key; both may be read directly but
// must only be changed through the methods.
type Map[K comparable, V any] struct {
	Order []KeyValue[K, V]
	Map   map[K]int
}

// New returns an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{Map: map[K]int{}}
}

// Reset removes all entries.
func (om *Map[K, V]) Reset() {
	om.Order, om.Map = nil, nil
}

// Add stores val under key. An existing key keeps its position
// and has its value replaced; a new key goes to the end.
func (om *Map[K, V]) Add(key K, val V) {
	if om.Map == nil {
		om.Map = map[K]int{}
	}
	kv := KeyValue[K, V]{Key: key, Value: val}
	if i, ok := om.Map[key]; ok {
		om.Order[i] = kv
		return
	}
	om.Map[key] = len(om.Order)
	om.Order = append(om.Order, kv)
}

// ValueByKeyTry returns the value for key and whether it was present.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if i, ok := om.Map[key]; ok {
		return om.Order[i].Value, true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (om *Map[K, V]) Has(key K) bool {
	_, ok := om.Map[key]
	return ok
}

// Len returns the number of entries; it is 0 for a nil map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// DeleteKey removes key, reporting whether it was present.
func (om *Map[K, V]) DeleteKey(key K) bool {
	at, ok := om.Map[key]
	if !ok {
		return false
	}
	delete(om.Map, key)
	om.Order = slices.Delete(om.Order, at, at+1)
	for i := at; i < len(om.Order); i++ {
		om.Map[om.Order[i].Key] = i
	}
	return true
}

// Keys returns the keys in insertion order.
func (om *Map[K, V]) Keys() []K {
	ks := make([]K, len(om.Order))
	for i := range om.Order {
		ks[i] = om.Order[i].Key
	}
	return ks
}

// Values returns a copy of the values in insertion order,
// so callers may mutate the map while ranging over the result.
func (om *Map[K, V]) Values() []V {
	vs := make([]V, len(om.Order))
	for i := range om.Order {
		vs[i] = om.Order[i].Value
	}
	return vs
}
