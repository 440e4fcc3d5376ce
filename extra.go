// extra.go — typed access to the extra_data payload.
//
// WithExtraData accepts any value, and Parse hands payloads back in their
// generic JSON shape (map[string]any, []any, float64, ...). ExtraAs bridges
// the two: it returns the payload as T, either directly when the stored
// dynamic type is T or by re-decoding its JSON form into T.
//
// Usage
//
//	type queryInfo struct {
//		Query   string `json:"query"`
//		Attempt int    `json:"attempt"`
//	}
//
//	info, ok := traceback.ExtraAs[queryInfo](err)
package traceback

import "fmt"

// ExtraAs returns the payload of e as T. It reports false when e is nil,
// carries no payload, or the payload does not decode into T.
func ExtraAs[T any](e *Error) (T, bool) {
	v, err := extraAs[T](e)
	return v, err == nil
}

// MustExtraAs is ExtraAs that panics when the payload cannot be returned as
// T. It is meant for tests and for code where a missing payload is a bug.
func MustExtraAs[T any](e *Error) T {
	v, err := extraAs[T](e)
	if err != nil {
		panic(err)
	}
	return v
}

func extraAs[T any](e *Error) (T, error) {
	var zero T
	payload, ok := e.ExtraData()
	if !ok {
		return zero, fmt.Errorf("traceback.ExtraAs[%T]: no extra_data", zero)
	}
	if tv, ok := payload.(T); ok {
		return tv, nil
	}
	b, err := jsonAPI.Marshal(payload)
	if err != nil {
		return zero, fmt.Errorf("traceback.ExtraAs[%T]: %w", zero, err)
	}
	var out T
	if err := decodeAPI.Unmarshal(b, &out); err != nil {
		return zero, fmt.Errorf("traceback.ExtraAs[%T]: wrong payload shape (%T): %w", zero, payload, err)
	}
	return out, nil
}
