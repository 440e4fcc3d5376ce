// caller.go — optional call-site capture.
//
// The core never captures locations on its own; New and Extend take a
// Location argument. These helpers exist for callers that want the
// file:line of their own call site without spelling it out.
//
// Skip model (runtime.Callers semantics):
//
//	user code → Here → callerLocation → runtime.Callers
//
// callerLocation adds +2 for runtime.Callers and itself, so skip=0 names the
// function that called callerLocation's caller.
package traceback

import "runtime"

// Here returns the Location of its caller.
func Here() Location {
	return callerLocation(1)
}

// Caller returns the Location skip frames above its caller; Caller(0) is
// equivalent to Here().
func Caller(skip int) Location {
	if skip < 0 {
		skip = 0
	}
	return callerLocation(skip + 1)
}

// callerLocation resolves one frame via CallersFrames so inlined calls report
// the right file and line. An unresolvable frame yields the zero Location,
// which is still valid.
func callerLocation(skip int) Location {
	var pc [1]uintptr
	if runtime.Callers(skip+2, pc[:]) == 0 {
		return Location{}
	}
	fr, _ := runtime.CallersFrames(pc[:]).Next()
	return Location{File: fr.File, Line: fr.Line}
}
