// kinds.go — the failure kinds the traceback core can report itself.
//
// Intent:
//   - Two kinds only: a caller passed a bad Location, or a payload could not
//     be serialized. Everything else in the core is total.
//   - Kinds are stringly-typed so they read well in logs.
//   - Errors returned by the core match their sentinel with errors.Is and
//     expose the underlying encoder/decoder error via Unwrap.
package traceback

import "fmt"

// Kind classifies a failure produced by this package.
type Kind string

const (
	InvalidLocation     Kind = "invalid_location"
	SerializationFailed Kind = "serialization_failed"
)

var (
	// ErrInvalidLocation matches errors from New/Extend/Parse given a
	// negative line number.
	ErrInvalidLocation = &KindError{Kind: InvalidLocation}
	// ErrSerializationFailed matches errors from Structured/MarshalJSON/Parse
	// when a payload or document cannot be encoded or decoded.
	ErrSerializationFailed = &KindError{Kind: SerializationFailed}
)

// KindError is the concrete error returned by this package.
type KindError struct {
	Kind Kind
	Op   string // operation that failed, e.g. "new", "extend", "structured"
	Err  error  // underlying cause, may be nil
}

func (e *KindError) Error() string {
	msg := "traceback"
	if e.Op != "" {
		msg += " " + e.Op
	}
	msg += ": " + string(e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *KindError) Unwrap() error { return e.Err }

// Is matches any *KindError of the same Kind, so errors.Is(err,
// ErrInvalidLocation) holds regardless of Op and Err.
func (e *KindError) Is(target error) bool {
	t, ok := target.(*KindError)
	return ok && t.Kind == e.Kind
}

func invalidLocation(op string, loc Location) error {
	return &KindError{
		Kind: InvalidLocation,
		Op:   op,
		Err:  fmt.Errorf("line %d is negative (%s)", loc.Line, loc.File),
	}
}

func serializationFailed(op string, err error) error {
	return &KindError{Kind: SerializationFailed, Op: op, Err: err}
}
