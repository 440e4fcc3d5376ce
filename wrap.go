// wrap.go — helpers that start or continue a traceback at the caller's site.
//
// These are the Go counterparts of "trace here" call sites: they capture the
// caller's Location with runtime.Callers, which is always valid, so they
// never fail.
package traceback

// Trace starts a new traceback at the caller's location.
func Trace(msg string) *Error {
	e, _ := defaultRecorder.New(msg, callerLocation(1))
	return e
}

// Wrap continues err's traceback at the caller's location.
//   - nil → nil
//   - err is an *Error → that traceback extended with msg; an empty msg
//     repeats the previous headline
//   - any other error, including one that merely wraps or joins an *Error →
//     a new traceback with msg, extra_data {"error": err.Error()}, and err as
//     its cause, so nothing in err is lost and errors.Is/As still reach it
func Wrap(err error, msg string) *Error {
	return wrapAt(err, msg, callerLocation(1))
}

// WrapSkip is Wrap for helpers: skip counts additional frames above the
// caller.
func WrapSkip(err error, msg string, skip int) *Error {
	if skip < 0 {
		skip = 0
	}
	return wrapAt(err, msg, callerLocation(skip+1))
}

func wrapAt(err error, msg string, loc Location) *Error {
	if err == nil {
		return nil
	}
	if tb, ok := err.(*Error); ok && tb.Len() > 0 {
		if msg == "" {
			msg = tb.Last().Message
		}
		n, _ := defaultRecorder.Extend(tb, msg, loc)
		return n
	}
	n, _ := defaultRecorder.New(msg, loc)
	n.extra = map[string]any{"error": err.Error()}
	n.hasExtra = true
	n.cause = err
	return n
}
