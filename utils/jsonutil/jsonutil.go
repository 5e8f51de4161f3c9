// Package jsonutil implements JSON helpers for overlaying flat JSON
// documents over typed prototypes. The generation pipeline uses it to apply
// design token files on top of built-in defaults.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Serialize encodes v as JSON.
func Serialize(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize value: %w", err)
	}
	return data, nil
}

// Clone deep-copies v through a JSON round trip. Only state visible to JSON
// is carried over.
func Clone[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("unable to clone value: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("unable to clone value: %w", err)
	}
	return out, nil
}

// Deserialize returns a copy of prototype with fields overridden by the flat
// JSON object in data. Fields absent from data keep prototype values and the
// prototype itself is never modified. Unknown fields are rejected for struct
// targets.
func Deserialize[T any](prototype T, data []byte) (T, error) {
	// Decoding into a shared prototype would write through its pointer and
	// reference fields, so the overlay target is always a private copy.
	out, err := Clone(prototype)
	if err != nil {
		return out, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, fmt.Errorf("unable to deserialize value: %w", err)
	}
	return out, nil
}
