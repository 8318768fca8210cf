package mealdb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeField extracts the named top-level field of an API envelope as a
// non-empty list. Absent, null, "" and [] all map to ErrNoResults.
func decodeField[T any](body []byte, name string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	raw, ok := envelope[name]
	if !ok || isBlank(raw) {
		return nil, fmt.Errorf("%w: field %q is empty", ErrNoResults, name)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrDecode, name, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: field %q is empty", ErrNoResults, name)
	}
	return items, nil
}

func isBlank(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) == 0 || bytes.Equal(v, []byte("null")) || bytes.Equal(v, []byte(`""`))
}

// first returns the leading element of a list produced by decodeField.
func first[T any](items []T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	out := items[0]
	return &out, nil
}

// project maps every element to one string attribute, preserving order.
func project[T any](items []T, err error, attr func(T) string) ([]string, error) {
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = attr(item)
	}
	return out, nil
}
