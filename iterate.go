package dualmap

import "iter"

// Entry is the exported (secondary key, value) pair yielded by iteration and
// used for flat-table construction and the JSON representation.
type Entry[K2 comparable, V any] struct {
	Alt   K2 `json:"alt"`
	Value V  `json:"value"`
}

// All returns an iterator over every stored element as (k1, Entry{k2, v})
// pairs, in unspecified order. Each call starts a fresh pass. The map must
// not be mutated while a pass is in progress.
func (m *DualKeyMap[K1, K2, V]) All() iter.Seq2[K1, Entry[K2, V]] {
	return func(yield func(K1, Entry[K2, V]) bool) {
		for k1, e := range m.primary {
			if !yield(k1, Entry[K2, V]{Alt: e.alt, Value: e.val}) {
				return
			}
		}
	}
}

// Drain returns a consuming iterator: every yielded element is removed from
// both tables as it is produced. A completed pass leaves the map empty; an
// abandoned pass leaves exactly the elements that were not yielded.
func (m *DualKeyMap[K1, K2, V]) Drain() iter.Seq2[K1, Entry[K2, V]] {
	return func(yield func(K1, Entry[K2, V]) bool) {
		for k1, e := range m.primary {
			delete(m.primary, k1)
			delete(m.secondary, e.alt)
			if !yield(k1, Entry[K2, V]{Alt: e.alt, Value: e.val}) {
				return
			}
		}
	}
}

// Keys returns a slice of all primary keys, in unspecified order.
func (m *DualKeyMap[K1, K2, V]) Keys() []K1 {
	keys := make([]K1, 0, len(m.primary))
	for k1 := range m.primary {
		keys = append(keys, k1)
	}
	return keys
}

// AltKeys returns a slice of all secondary keys, in unspecified order.
func (m *DualKeyMap[K1, K2, V]) AltKeys() []K2 {
	keys := make([]K2, 0, len(m.secondary))
	for k2 := range m.secondary {
		keys = append(keys, k2)
	}
	return keys
}

// Values returns a slice of all stored values, in unspecified order.
func (m *DualKeyMap[K1, K2, V]) Values() []V {
	vals := make([]V, 0, len(m.primary))
	for _, e := range m.primary {
		vals = append(vals, e.val)
	}
	return vals
}
