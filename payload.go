// payload.go — helpers for the opaque extra_data payload.
package traceback

import (
	"bytes"
	"reflect"
)

// cloneValue deep-copies the JSON-shaped containers a payload is usually
// built from. Other values are returned as-is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case map[string]string:
		if t == nil {
			return t
		}
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	case []string:
		if t == nil {
			return t
		}
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// isNilPayload reports whether v is nil or a typed nil that encodes as JSON
// null.
func isNilPayload(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// payloadEqual compares two payloads by canonical JSON (map keys sorted).
// Payloads that cannot be encoded fall back to reflect.DeepEqual.
func payloadEqual(a, b any) bool {
	ab, errA := jsonAPI.Marshal(a)
	bb, errB := jsonAPI.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ab, bb)
}
