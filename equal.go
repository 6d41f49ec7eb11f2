package dualmap

// Equal reports whether a and b contain the same set of (k1, (k2, v))
// triples. Only the primary tables are compared: the reverse index is
// derived state, always reconstructible from the primary table, and carries
// no independent information.
//
// Equal is a package function rather than a method so that V can be
// constrained to comparable without imposing that bound on the type itself;
// use EqualFunc for value types that are not comparable.
func Equal[K1 comparable, K2 comparable, V comparable](a, b *DualKeyMap[K1, K2, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[K1 comparable, K2 comparable, V any](a, b *DualKeyMap[K1, K2, V], eq func(V, V) bool) bool {
	if len(a.primary) != len(b.primary) {
		return false
	}
	for k1, ea := range a.primary {
		eb, ok := b.primary[k1]
		if !ok || ea.alt != eb.alt || !eq(ea.val, eb.val) {
			return false
		}
	}
	return true
}
