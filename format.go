// format.go — text rendering for traceback errors.
//
// Behavior:
//
//   %s, %v   → headline (Error()): the most recent frame's message.
//   %+v      → RenderText, multi-line:
//                db.go:42: db timeout
//                handler.go:10: handler failed
//                error: handler failed
//                project=billing computer_name=ci-7 username=svc request_id=r-1
//                extra_data={"query":"select 1"}
//   %q       → quoted headline.
//
// Frames print oldest first. The metadata line and the extra_data line are
// omitted when empty. Metadata keys and values are quoted when they contain
// spaces, quotes, '=' or non-printable characters.
package traceback

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// RenderText returns the multi-line human-readable form of e.
func (e *Error) RenderText() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Error) writeText(w io.Writer) {
	if e == nil {
		_, _ = io.WriteString(w, "<nil>")
		return
	}
	// ignore write errors in formatting paths
	for _, f := range e.frames {
		_, _ = fmt.Fprintf(w, "%s:%d: %s\n", f.Location.File, f.Location.Line, f.Message)
	}
	_, _ = io.WriteString(w, "error: "+e.Error())

	if meta := e.meta.ordered(); len(meta) > 0 {
		_, _ = io.WriteString(w, "\n")
		for i, f := range meta {
			if i > 0 {
				_, _ = io.WriteString(w, " ")
			}
			_, _ = io.WriteString(w, quoteIfNeeded(f.key)+"="+quoteIfNeeded(f.val))
		}
	}

	if e.hasExtra {
		b, err := jsonAPI.Marshal(e.extra)
		if err != nil {
			_, _ = fmt.Fprintf(w, "\nextra_data=!%v", err)
		} else {
			_, _ = io.WriteString(w, "\nextra_data=")
			_, _ = w.Write(b)
		}
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}
	return s
}

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			e.writeText(s)
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = io.WriteString(s, e.Error())
	}
}

var _ fmt.Formatter = (*Error)(nil)
