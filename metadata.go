// metadata.go — ordered, copy-on-write metadata for traceback errors.
//
// Design:
//   • Internal representation: []field in insertion order (deterministic output).
//   • Overwrite keeps the key's original position; there are no duplicate keys.
//   • Builders never touch a published slice; they work on a fresh copy.
//   • Public view for callers: copy-on-read map[string]string.
package traceback

// Well-known metadata keys. They render first, in this order, and serialize
// as top-level JSON keys.
const (
	KeyProject      = "project"
	KeyComputerName = "computer_name"
	KeyUsername     = "username"
)

var wellKnownKeys = [...]string{KeyProject, KeyComputerName, KeyUsername}

func isWellKnown(key string) bool {
	for _, k := range wellKnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

type field struct {
	key string
	val string
}

// fields is treated as immutable once attached to an Error.
type fields []field

func (fs fields) index(key string) int {
	for i, f := range fs {
		if f.key == key {
			return i
		}
	}
	return -1
}

func (fs fields) get(key string) (string, bool) {
	if i := fs.index(key); i >= 0 {
		return fs[i].val, true
	}
	return "", false
}

// with returns a NEW slice with key set to val.
func (fs fields) with(key, val string) fields {
	if i := fs.index(key); i >= 0 {
		out := fs.clone()
		out[i].val = val
		return out
	}
	out := make(fields, len(fs), len(fs)+1)
	copy(out, fs)
	return append(out, field{key: key, val: val})
}

func (fs fields) clone() fields {
	if len(fs) == 0 {
		return nil
	}
	out := make(fields, len(fs))
	copy(out, fs)
	return out
}

// ordered returns the fields in rendering order: well-known keys first, then
// the rest by insertion order.
func (fs fields) ordered() fields {
	if len(fs) == 0 {
		return nil
	}
	out := make(fields, 0, len(fs))
	for _, k := range wellKnownKeys {
		if v, ok := fs.get(k); ok {
			out = append(out, field{key: k, val: v})
		}
	}
	for _, f := range fs {
		if !isWellKnown(f.key) {
			out = append(out, f)
		}
	}
	return out
}

// custom returns only the caller-defined keys, in insertion order.
func (fs fields) custom() fields {
	var out fields
	for _, f := range fs {
		if !isWellKnown(f.key) {
			out = append(out, f)
		}
	}
	return out
}

func (fs fields) toMap() map[string]string {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]string, len(fs))
	for _, f := range fs {
		m[f.key] = f.val
	}
	return m
}

// equal compares key sets and values; insertion order does not matter.
func (fs fields) equal(o fields) bool {
	if len(fs) != len(o) {
		return false
	}
	for _, f := range fs {
		v, ok := o.get(f.key)
		if !ok || v != f.val {
			return false
		}
	}
	return true
}
