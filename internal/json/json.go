// Package json wraps the JSON backend used by the corpus codec. All
// encoding in this module goes through this package so the backend can
// be swapped in one place.
package json

import (
	"encoding/json"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Standard-library-compatible settings, except field matching must be
// case-sensitive: the wire format distinguishes the "T" discriminant
// key from the lowercase "t" type-name key.
var backend = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// RawMessage is a raw encoded JSON value.
type RawMessage = json.RawMessage

// Marshal encodes v as compact JSON.
func Marshal(v any) ([]byte, error) {
	return backend.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return backend.Unmarshal(data, v)
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return backend.NewEncoder(w)
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return backend.NewDecoder(r)
}

// Valid reports whether data is well-formed JSON.
func Valid(data []byte) bool {
	return backend.Valid(data)
}
