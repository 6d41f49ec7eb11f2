package dualmap

import "github.com/hupe1980/dualmap/codec"

// MarshalJSON encodes the map as a JSON object mapping each primary key to
// its {"alt": k2, "value": v} pair. Only the primary table is encoded; the
// reverse index is derived state and is never serialized.
//
// K1 becomes a JSON object key, so it must be a string or integer kind or
// implement encoding.TextMarshaler. Other key types surface the codec's
// marshal error. Binary snapshots (Save/Load) carry no such restriction.
func (m *DualKeyMap[K1, K2, V]) MarshalJSON() ([]byte, error) {
	flat := make(map[K1]Entry[K2, V], len(m.primary))
	for k1, e := range m.primary {
		flat[k1] = Entry[K2, V]{Alt: e.alt, Value: e.val}
	}
	return codec.Default.Marshal(flat)
}

// UnmarshalJSON decodes the flat primary-table representation produced by
// MarshalJSON and replays every entry through Insert, reconstructing the
// reverse index. Malformed input returns the decode error and leaves the
// receiver untouched. A JSON null is a no-op, per the encoding/json
// convention.
func (m *DualKeyMap[K1, K2, V]) UnmarshalJSON(data []byte) error {
	var flat map[K1]Entry[K2, V]
	if err := codec.Default.Unmarshal(data, &flat); err != nil {
		return err
	}
	if flat == nil {
		// The document was null: decoding leaves the map nil without an
		// error, and the receiver must not be clobbered.
		return nil
	}

	m.primary = make(map[K1]*entry[K2, V], len(flat))
	m.secondary = make(map[K2]K1, len(flat))
	for k1, e := range flat {
		m.Insert(k1, e.Alt, e.Value)
	}

	return nil
}
