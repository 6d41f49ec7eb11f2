package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It is the most portable, lowest-dependency option. Arbitrary key and value
// types follow encoding/json's rules: funcs, channels and complex numbers
// are not supported, and map keys must be string/integer kinds or implement
// encoding.TextMarshaler.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured explicitly.
//
// This only affects newly written data. Existing snapshots are
// self-describing and are opened by selecting their recorded codec by name.
var Default Codec = GoJSON{}
