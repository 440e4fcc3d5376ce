// construct.go — creating and extending traceback errors.
//
// Scope:
//   - Recorder owns the time source; package-level New/Extend use a default
//     Recorder backed by the real clock.
//   - Every operation is copy-on-write: the input *Error is never modified.
//   - Timestamps never go backwards within one error: a clock reading older
//     than the last frame is clamped to the last frame's time.
package traceback

import (
	"time"

	"k8s.io/utils/clock"
)

// Recorder stamps frames with times from its clock.
type Recorder struct {
	clock clock.PassiveClock
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock sets the time source. A nil clock is ignored.
func WithClock(c clock.PassiveClock) Option {
	return func(r *Recorder) {
		if c != nil {
			r.clock = c
		}
	}
}

// NewRecorder returns a Recorder using the real clock unless overridden.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{clock: clock.RealClock{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

var defaultRecorder = NewRecorder()

// now returns the clock reading in UTC with the monotonic reading stripped,
// so frames compare and serialize by wall time only.
func (r *Recorder) now() time.Time {
	return r.clock.Now().UTC()
}

// New creates an Error holding a single frame for msg at loc.
// A negative loc.Line yields an InvalidLocation error and a nil *Error.
func (r *Recorder) New(msg string, loc Location) (*Error, error) {
	if !loc.Valid() {
		return nil, invalidLocation("new", loc)
	}
	return &Error{
		frames: []Frame{{Message: msg, Location: loc, Timestamp: r.now()}},
	}, nil
}

// Extend returns a copy of e with a frame for msg at loc appended. Payload,
// metadata and cause carry over unchanged. Extending a nil *Error is
// equivalent to New.
func (r *Recorder) Extend(e *Error, msg string, loc Location) (*Error, error) {
	if !loc.Valid() {
		return nil, invalidLocation("extend", loc)
	}
	if e.Len() == 0 {
		return r.New(msg, loc)
	}
	ts := r.now()
	if last := e.Last().Timestamp; ts.Before(last) {
		ts = last
	}
	n := *e
	n.frames = make([]Frame, len(e.frames), len(e.frames)+1)
	copy(n.frames, e.frames)
	n.frames = append(n.frames, Frame{Message: msg, Location: loc, Timestamp: ts})
	n.meta = e.meta.clone()
	return &n, nil
}

// New creates an Error using the default Recorder.
func New(msg string, loc Location) (*Error, error) {
	return defaultRecorder.New(msg, loc)
}

// Extend appends a propagation frame using the default Recorder.
//
// Example:
//
//	if err != nil {
//		return err.Extend("loading config", traceback.Here())
//	}
func (e *Error) Extend(msg string, loc Location) (*Error, error) {
	return defaultRecorder.Extend(e, msg, loc)
}

// -----------------------------------------------------------------------------
// Builders (copy-on-write)
// -----------------------------------------------------------------------------

// WithExtraData returns a copy of e carrying payload, replacing any previous
// payload. Maps and slices are deep-copied. A nil payload, including a typed
// nil map, slice or pointer, clears it.
func (e *Error) WithExtraData(payload any) *Error {
	if e == nil {
		return nil
	}
	n := e.clone()
	if isNilPayload(payload) {
		n.extra, n.hasExtra = nil, false
		return n
	}
	n.extra = cloneValue(payload)
	n.hasExtra = true
	return n
}

// WithProject returns a copy of e with the project field set.
func (e *Error) WithProject(name string) *Error { return e.WithMeta(KeyProject, name) }

// WithComputerName returns a copy of e with the computer_name field set.
func (e *Error) WithComputerName(name string) *Error { return e.WithMeta(KeyComputerName, name) }

// WithUsername returns a copy of e with the username field set.
func (e *Error) WithUsername(name string) *Error { return e.WithMeta(KeyUsername, name) }

// WithMeta returns a copy of e with metadata key set to val. Empty values are
// stored as given; there is no way to unset a key.
func (e *Error) WithMeta(key, val string) *Error {
	if e == nil {
		return nil
	}
	n := e.clone()
	n.meta = e.meta.with(key, val)
	return n
}
