package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const envelopeKey = "value"

// Unwrap strips exactly one {"value": ...} envelope. Bare values, arrays
// and objects without a "value" key are returned unchanged.
func Unwrap(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return raw
	}
	if inner, ok := fields[envelopeKey]; ok {
		return inner
	}
	return raw
}

// isNull reports whether raw carries no value.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeInto unmarshals an already unwrapped payload into v. An absent or
// null payload leaves v untouched.
func decodeInto(method, path string, raw json.RawMessage, v any) error {
	if isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// decodeList accepts either a bare array or an object that is not a list.
// The latter yields an empty slice, matching how the backend reports
// "nothing to show" on some list endpoints.
func decodeList[T any](method, path string, raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if isNull(trimmed) || trimmed[0] != '[' {
		return []T{}, nil
	}
	var out []T
	if err := decodeInto(method, path, trimmed, &out); err != nil {
		return nil, err
	}
	return out, nil
}
