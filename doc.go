// Package dualmap provides a generic associative container addressable by
// either of two independent key types.
//
// A DualKeyMap is like a map, but every element carries two keys - a primary
// key K1 and a secondary key K2 - and can be looked up, mutated or removed
// through either one. Callers who would otherwise maintain two maps by hand
// and keep them in sync get a single structure whose internal tables cannot
// drift apart.
//
// # Quick start
//
//	m := dualmap.New[int, string, string]()
//	m.Insert(1, "One", "Ein")
//	m.Insert(2, "Two", "Zwei")
//
//	v, _ := m.Get(1)         // "Ein"
//	v, _ = m.GetAlt("Two")   // "Zwei"
//	m.Remove(1)
//
// Literal construction pre-sizes capacity and goes through the normal
// insertion path:
//
//	m := dualmap.Of(
//		dualmap.Item[int, string, string]{Key: 1, Alt: "One", Value: "Ein"},
//		dualmap.Item[int, string, string]{Key: 2, Alt: "Two", Value: "Zwei"},
//	)
//
// # Storage model
//
// Internally the structure keeps a primary table K1 -> (K2, V) that owns all
// values, and a secondary table K2 -> K1 that is a pure reverse index. The
// two tables always describe the same set of key pairs; equality,
// iteration and serialization operate on the primary table only, since the
// reverse index carries no independent information. Lookups by K2 cost one
// extra table access.
//
// # Serialization
//
// MarshalJSON/UnmarshalJSON expose the map as a flat JSON object keyed by
// K1. Save and Load write self-describing binary snapshots with a pluggable
// codec, optional LZ4/zstd payload compression, and CRC32 integrity
// checking. Both forms encode only the primary table and rebuild the reverse
// index by replaying insertion on decode.
//
// # Concurrency
//
// A DualKeyMap has no internal locking and is not safe for concurrent use,
// exactly like a plain Go map. Callers sharing one across goroutines must
// serialize all access externally, treating every method (reads included,
// when any writer is present) as a critical section.
package dualmap
