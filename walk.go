// walk.go — finding traceback errors inside arbitrary error graphs.
//
// A traceback may sit anywhere in an error tree: wrapped by fmt.Errorf("%w"),
// combined with errors.Join, or kept as the cause of another traceback.
// Walk follows both unwrap forms, Unwrap() error and Unwrap() []error.
//
// Each node is visited once. Identity is the pointer for pointer-typed
// errors and the value itself for comparable ones; values that are neither
// cannot be deduplicated and are simply visited. The walk ends after
// maxVisits nodes, which only a pathological graph reaches.
package traceback

import "reflect"

const maxVisits = 1 << 20

type nodeKey struct {
	typ reflect.Type
	ptr uintptr
}

// keyOf returns the identity of err and whether it has one.
func keyOf(err error) (any, bool) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Pointer {
		return nodeKey{typ: v.Type(), ptr: v.Pointer()}, true
	}
	if v.Comparable() {
		return err, true
	}
	return nil, false
}

// children appends the errors err wraps to pending in reverse, so the
// leftmost child is popped first.
func children(pending []error, err error) []error {
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		kids := u.Unwrap()
		for i := len(kids) - 1; i >= 0; i-- {
			if kids[i] != nil {
				pending = append(pending, kids[i])
			}
		}
	case interface{ Unwrap() error }:
		if c := u.Unwrap(); c != nil {
			pending = append(pending, c)
		}
	}
	return pending
}

// Walk visits every distinct error in err's unwrap graph in pre-order,
// left to right. It stops as soon as visit returns false. A nil err is a
// no-op.
func Walk(err error, visit func(error) bool) {
	if err == nil || visit == nil {
		return
	}
	seen := make(map[any]struct{})
	pending := []error{err}
	for visited := 0; len(pending) > 0 && visited < maxVisits; {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if k, ok := keyOf(cur); ok {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		visited++
		if !visit(cur) {
			return
		}
		pending = children(pending, cur)
	}
}

// Collect returns every traceback in err's graph, outermost first. A
// traceback's own cause is searched too, so a foreign error that itself wraps
// a traceback is found.
func Collect(err error) []*Error {
	var out []*Error
	Walk(err, func(e error) bool {
		if tb, ok := e.(*Error); ok && tb != nil {
			out = append(out, tb)
		}
		return true
	})
	return out
}
