package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It is the most portable option and produces byte-for-byte the schema
// the dashboard expects. Use it when minimizing dependencies matters
// more than encoding speed.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// MarshalIndent encodes the value to indented JSON, matching the layout
// of traces written by earlier tooling.
func (JSON) MarshalIndent(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

// Default is the default codec used by the library.
//
// Both built-in codecs emit identical JSON; the default trades the
// stdlib encoder for a faster one.
var Default Codec = GoJSON{}
