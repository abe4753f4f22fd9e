// Package model holds the shared building blocks of the domain models.
//
// Each resource lives in its own sub-package (post, category) with
// its entity type and its request payloads (DTOs).
package model

import "encoding/json"

// Optional is a JSON field that distinguishes three states:
//
//   - absent:  the key was not in the payload (Set == false)
//   - null:    the key was present with a JSON null (Set && Null)
//   - value:   the key was present with a value (Present())
//
// Use it as a non-pointer struct field; encoding/json only calls
// UnmarshalJSON when the key appears in the document.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}

	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON implements json.Marshaler. Absent and null both encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field carried a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
