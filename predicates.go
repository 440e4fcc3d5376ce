// predicates.go — stdlib-aligned helpers for inspecting traceback failures.
//
// All helpers use errors.As / errors.Is, so they see through fmt.Errorf("%w")
// wrapping and errors.Join.
package traceback

import "errors"

// KindOf returns the Kind of the first *KindError in err's chain, or "".
func KindOf(err error) Kind {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return ""
}

// IsInvalidLocation reports whether err is an InvalidLocation failure.
func IsInvalidLocation(err error) bool { return errors.Is(err, ErrInvalidLocation) }

// IsSerializationFailed reports whether err is a SerializationFailed failure.
func IsSerializationFailed(err error) bool { return errors.Is(err, ErrSerializationFailed) }

// From returns the first *Error in err's chain, or nil.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
