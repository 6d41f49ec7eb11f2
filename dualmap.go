package dualmap

// entry is the (K2, V) pair stored in the primary table.
//
// Entries are heap-allocated and never relocated after insertion, so a
// pointer into e.val handed out by GetMut/GetMutAlt stays valid until the
// element is removed or replaced.
type entry[K2 comparable, V any] struct {
	alt K2
	val V
}

// DualKeyMap is an associative container addressable by either of two
// independent key types.
//
// Internally it maintains two tables: a primary table mapping K1 to the
// (K2, V) pair, which owns all values, and a secondary table mapping K2 back
// to K1, which is a pure reverse index. Every mutating operation updates
// both tables together, so after any public call returns they describe the
// same set of (k1, k2) pairs with no orphaned entries on either side. K1
// values are unique across the primary table and K2 values are unique
// across the secondary table.
//
// Lookups by K1 are a single map access; lookups by K2 chain through the
// secondary table and cost two accesses.
//
// A DualKeyMap is not safe for concurrent use. Like a plain Go map, callers
// that share one across goroutines must serialize all access externally and
// treat every method as a critical section.
type DualKeyMap[K1 comparable, K2 comparable, V any] struct {
	primary   map[K1]*entry[K2, V]
	secondary map[K2]K1
}

// New creates an empty DualKeyMap.
func New[K1 comparable, K2 comparable, V any]() *DualKeyMap[K1, K2, V] {
	return &DualKeyMap[K1, K2, V]{
		primary:   make(map[K1]*entry[K2, V]),
		secondary: make(map[K2]K1),
	}
}

// NewWithCapacity creates an empty DualKeyMap with both backing tables
// pre-sized for at least n elements.
func NewWithCapacity[K1 comparable, K2 comparable, V any](n int) *DualKeyMap[K1, K2, V] {
	return &DualKeyMap[K1, K2, V]{
		primary:   make(map[K1]*entry[K2, V], n),
		secondary: make(map[K2]K1, n),
	}
}

// Insert stores the element (k1, k2, v).
//
// Insert replaces any element previously stored under either key: the
// element stored under k1 is removed together with its secondary entry, and
// the element whose secondary key is k2 is removed together with its primary
// entry. Both key-uniqueness invariants therefore hold after every Insert;
// no stale reverse-index entries are left behind when a key pair is rebound.
func (m *DualKeyMap[K1, K2, V]) Insert(k1 K1, k2 K2, v V) {
	if old, ok := m.primary[k1]; ok {
		delete(m.secondary, old.alt)
	}
	if owner, ok := m.secondary[k2]; ok && owner != k1 {
		delete(m.primary, owner)
	}

	m.primary[k1] = &entry[K2, V]{alt: k2, val: v}
	m.secondary[k2] = k1
}

// Get returns the value stored under the primary key k1.
func (m *DualKeyMap[K1, K2, V]) Get(k1 K1) (V, bool) {
	if e, ok := m.primary[k1]; ok {
		return e.val, true
	}
	var zero V
	return zero, false
}

// GetAlt returns the value whose secondary key is k2, resolved via the
// reverse index and then the primary table.
func (m *DualKeyMap[K1, K2, V]) GetAlt(k2 K2) (V, bool) {
	var zero V
	k1, ok := m.secondary[k2]
	if !ok {
		return zero, false
	}
	// A dangling reverse-index entry cannot occur while the invariant
	// holds, but a miss here is reported as not-found rather than a panic.
	e, ok := m.primary[k1]
	if !ok {
		return zero, false
	}
	return e.val, true
}

// GetMut returns a pointer to the value stored under k1 for in-place
// mutation. The pointer stays valid until that element is removed or
// replaced; it must not be retained across such mutations.
func (m *DualKeyMap[K1, K2, V]) GetMut(k1 K1) (*V, bool) {
	if e, ok := m.primary[k1]; ok {
		return &e.val, true
	}
	return nil, false
}

// GetMutAlt returns a pointer to the value whose secondary key is k2. The
// same validity contract as GetMut applies.
func (m *DualKeyMap[K1, K2, V]) GetMutAlt(k2 K2) (*V, bool) {
	k1, ok := m.secondary[k2]
	if !ok {
		return nil, false
	}
	e, ok := m.primary[k1]
	if !ok {
		return nil, false
	}
	return &e.val, true
}

// Contains reports whether an element is stored under the primary key k1.
func (m *DualKeyMap[K1, K2, V]) Contains(k1 K1) bool {
	_, ok := m.primary[k1]
	return ok
}

// ContainsAlt reports whether an element is stored under the secondary key
// k2. Only the reverse index is consulted.
func (m *DualKeyMap[K1, K2, V]) ContainsAlt(k2 K2) bool {
	_, ok := m.secondary[k2]
	return ok
}

// Remove removes the element stored under k1 and returns its value. The
// corresponding reverse-index entry is removed in the same step. Removing an
// absent key returns the zero value and false and leaves the map unchanged.
func (m *DualKeyMap[K1, K2, V]) Remove(k1 K1) (V, bool) {
	e, ok := m.primary[k1]
	if !ok {
		var zero V
		return zero, false
	}
	delete(m.primary, k1)
	delete(m.secondary, e.alt)
	return e.val, true
}

// RemoveAlt removes the element whose secondary key is k2 and returns its
// value. The reverse-index entry is removed first; the recovered k1 is then
// removed from the primary table. A dangling reverse-index entry is cleaned
// up and reported as not-found.
func (m *DualKeyMap[K1, K2, V]) RemoveAlt(k2 K2) (V, bool) {
	var zero V
	k1, ok := m.secondary[k2]
	if !ok {
		return zero, false
	}
	delete(m.secondary, k2)
	e, ok := m.primary[k1]
	if !ok {
		return zero, false
	}
	delete(m.primary, k1)
	return e.val, true
}

// Len returns the number of elements currently stored.
func (m *DualKeyMap[K1, K2, V]) Len() int {
	return len(m.primary)
}

// Clear removes all elements from both tables.
func (m *DualKeyMap[K1, K2, V]) Clear() {
	m.primary = make(map[K1]*entry[K2, V])
	m.secondary = make(map[K2]K1)
}
