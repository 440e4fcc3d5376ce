// error.go — the traceback error value and its read accessors.
//
// Design tenets:
//   - Interop-first: *Error implements error and Unwrap, so errors.Is/As work.
//   - Explicit locations: callers pass a Location; capture helpers are optional.
//   - Non-mutating ergonomics: Extend and every With* builder return a new value.
//   - Stable output: the text and JSON renderings are a published contract.
//
// See doc.go for the rendering and serialization formats.
package traceback

import (
	"strconv"
	"time"
)

// Location is a source position supplied by the caller. Line must be
// non-negative; File may be any string, including empty.
type Location struct {
	File string
	Line int
}

// At is shorthand for Location{File: file, Line: line}.
func At(file string, line int) Location {
	return Location{File: file, Line: line}
}

// Valid reports whether l satisfies the location contract.
func (l Location) Valid() bool { return l.Line >= 0 }

// String renders l as "file:line".
func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line)
}

// Frame is one point where an error was observed or propagated. Frames are
// values; nothing in this package modifies a Frame after creation.
type Frame struct {
	Message   string
	Location  Location
	Timestamp time.Time
}

// Equal reports whether f and o carry the same message, location and instant.
func (f Frame) Equal(o Frame) bool {
	return f.Message == o.Message && f.Location == o.Location && f.Timestamp.Equal(o.Timestamp)
}

// Error is an error occurrence: an ordered, never-empty frame chain (oldest
// first) plus optional metadata and an optional structured payload.
//
// All methods treat the receiver as immutable. Builders and Extend return a
// fresh *Error, so a value may be shared across goroutines and earlier
// holders never observe later changes.
type Error struct {
	frames   []Frame
	extra    any
	hasExtra bool
	meta     fields
	cause    error
}

// Error returns the headline: the message of the most recent frame.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Last().Message
}

// Unwrap returns the foreign error this traceback was started from, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Frames returns a copy of the frame chain, oldest first.
func (e *Error) Frames() []Frame {
	if e == nil {
		return nil
	}
	out := make([]Frame, len(e.frames))
	copy(out, e.frames)
	return out
}

// Len returns the number of frames.
func (e *Error) Len() int {
	if e == nil {
		return 0
	}
	return len(e.frames)
}

// First returns the original failure frame.
func (e *Error) First() Frame {
	if e.Len() == 0 {
		return Frame{}
	}
	return e.frames[0]
}

// Last returns the most recent propagation frame.
func (e *Error) Last() Frame {
	if e.Len() == 0 {
		return Frame{}
	}
	return e.frames[len(e.frames)-1]
}

// ExtraData returns a deep copy of the payload and whether one is attached.
func (e *Error) ExtraData() (any, bool) {
	if e == nil || !e.hasExtra {
		return nil, false
	}
	return cloneValue(e.extra), true
}

// Project returns the project metadata field.
func (e *Error) Project() (string, bool) { return e.Meta(KeyProject) }

// ComputerName returns the computer_name metadata field.
func (e *Error) ComputerName() (string, bool) { return e.Meta(KeyComputerName) }

// Username returns the username metadata field.
func (e *Error) Username() (string, bool) { return e.Meta(KeyUsername) }

// Meta returns the metadata field stored under key.
func (e *Error) Meta(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	return e.meta.get(key)
}

// Metadata returns a copy of all metadata fields. Nil when none are set.
func (e *Error) Metadata() map[string]string {
	if e == nil {
		return nil
	}
	return e.meta.toMap()
}

// Equal reports structural equality: frames, payload and metadata. Payloads
// compare by their canonical JSON form, so a payload survives a JSON round
// trip as equal. The wrapped cause is not compared.
func (e *Error) Equal(o *Error) bool {
	if e == nil || o == nil {
		return e == o
	}
	if len(e.frames) != len(o.frames) {
		return false
	}
	for i := range e.frames {
		if !e.frames[i].Equal(o.frames[i]) {
			return false
		}
	}
	if e.hasExtra != o.hasExtra || !payloadEqual(e.extra, o.extra) {
		return false
	}
	return e.meta.equal(o.meta)
}

// clone returns a shallow copy whose slices no longer alias the receiver's.
func (e *Error) clone() *Error {
	n := *e
	n.frames = make([]Frame, len(e.frames))
	copy(n.frames, e.frames)
	n.meta = e.meta.clone()
	return &n
}

var _ error = (*Error)(nil)
