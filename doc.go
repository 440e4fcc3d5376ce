// doc.go — package documentation for xgx-traceback
//
// Package traceback provides an error value that accumulates a traceback as
// it propagates. Each propagation point appends a Frame (message, caller
// supplied Location, timestamp), and the value can carry environment
// metadata and one structured payload. It is designed to be:
//   - Explicit at call sites (locations are arguments, not magic)
//   - Interoperable with the stdlib (errors.Is/As, fmt.Formatter)
//   - Stable in output (text and JSON layouts are a contract for log tooling)
//
// # Building a Traceback
//
//	err, _ := traceback.New("db timeout", traceback.At("db.go", 42))
//	err = err.WithExtraData(map[string]any{"query": "select 1"}).
//	           WithProject("billing")
//	err, _ = err.Extend("handler failed", traceback.At("handler.go", 10))
//
// New fails only on a negative line (ErrInvalidLocation); so does Extend.
// Trace and Wrap capture the caller's location themselves and never fail:
//
//	if err := load(); err != nil {
//		return traceback.Wrap(err, "loading config")
//	}
//
// # Values, Not References
//
// Extend and every With* method return a NEW *Error and leave the receiver
// untouched:
//
//	base := traceback.Trace("boom")
//	next, _ := base.Extend("caller", traceback.Here())
//	base.Len() // still 1
//	next.Len() // 2
//
// Payloads are deep-copied on attach and on read, so mutating the map you
// passed in (or got back) does not leak into the error.
//
// # Ordering & Time
//
// Frames are stored oldest first. Timestamps are UTC and never decrease along
// the chain: if the clock reads earlier than the last frame (clock skew), the
// new frame takes the last frame's timestamp. Use NewRecorder(WithClock(c))
// to supply your own k8s.io/utils/clock.PassiveClock.
//
// # Metadata & Payload
//
//   - WithProject / WithComputerName / WithUsername / WithMeta set string
//     fields. Overwrites replace the value in place; empty strings are kept.
//   - WithExtraData replaces the payload (last write wins, no merge).
//
// # Text Format
//
//	%v, %s  → headline: the most recent frame's message (same as Error())
//	%+v     → RenderText()
//
//	db.go:42: db timeout
//	handler.go:10: handler failed
//	error: handler failed
//	project=billing
//	extra_data={"query":"select 1"}
//
// # JSON Format
//
// MarshalJSON / Structured produce, in this key order: "frames" (objects with
// "message", "file", "line", "timestamp"), "extra_data" (null when absent),
// "project", "computer_name", "username" (each only when set), and
// "metadata" (caller-defined keys in insertion order, only when any). Parse
// reverses it; Parse(MarshalJSON(e)) is Equal to e.
//
// # Finding Tracebacks
//
// Walk visits an error graph (fmt.Errorf %w chains and errors.Join trees);
// Collect returns every *Error in it. ExtraAs[T] reads the payload back as a
// concrete type, re-decoding it when it came from Parse:
//
//	for _, tb := range traceback.Collect(err) {
//		info, ok := traceback.ExtraAs[queryInfo](tb)
//		...
//	}
//
// # Failure Kinds
//
//   - InvalidLocation: negative line passed to New/Extend or found by Parse.
//   - SerializationFailed: payload JSON cannot represent (channels, funcs,
//     NaN), or a malformed document given to Parse.
//
// Match them with errors.Is(err, ErrInvalidLocation) or KindOf(err).
package traceback
