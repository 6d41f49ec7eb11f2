package dualmap

import "iter"

// Item is one (k1, k2, v) triple, used for literal construction and binary
// snapshots.
type Item[K1 comparable, K2 comparable, V any] struct {
	Key   K1 `json:"key"`
	Alt   K2 `json:"alt"`
	Value V  `json:"value"`
}

// Of builds a map from a literal list of items. Capacity is pre-sized to the
// item count and every item goes through the normal insertion path, so the
// result is indistinguishable from New followed by repeated Insert calls; an
// empty call yields an empty map. Later items replace earlier ones on key
// collision, per the Insert replacement policy.
func Of[K1 comparable, K2 comparable, V any](items ...Item[K1, K2, V]) *DualKeyMap[K1, K2, V] {
	m := NewWithCapacity[K1, K2, V](len(items))
	for _, it := range items {
		m.Insert(it.Key, it.Alt, it.Value)
	}
	return m
}

// FromMap builds a map from a flat primary-table snapshot, e.g. one produced
// by deserialization. Each entry is replayed through Insert, so the reverse
// index is derived correctly even though it was never supplied.
func FromMap[K1 comparable, K2 comparable, V any](flat map[K1]Entry[K2, V]) *DualKeyMap[K1, K2, V] {
	m := NewWithCapacity[K1, K2, V](len(flat))
	for k1, e := range flat {
		m.Insert(k1, e.Alt, e.Value)
	}
	return m
}

// Collect gathers an iterator of (k1, Entry{k2, v}) pairs, such as another
// map's All, into a new map.
func Collect[K1 comparable, K2 comparable, V any](seq iter.Seq2[K1, Entry[K2, V]]) *DualKeyMap[K1, K2, V] {
	m := New[K1, K2, V]()
	for k1, e := range seq {
		m.Insert(k1, e.Alt, e.Value)
	}
	return m
}
