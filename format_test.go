package traceback

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// containsInOrder reports whether all needles appear in haystack in order.
func containsInOrder(haystack string, needles ...string) bool {
	pos := 0
	for _, n := range needles {
		i := strings.Index(haystack[pos:], n)
		if i < 0 {
			return false
		}
		pos += i + len(n)
	}
	return true
}

func mustNew(t *testing.T, msg string, loc Location) *Error {
	t.Helper()
	e, err := New(msg, loc)
	if err != nil {
		t.Fatalf("New(%q, %v): %v", msg, loc, err)
	}
	return e
}

func mustExtend(t *testing.T, e *Error, msg string, loc Location) *Error {
	t.Helper()
	n, err := e.Extend(msg, loc)
	if err != nil {
		t.Fatalf("Extend(%q, %v): %v", msg, loc, err)
	}
	return n
}

func TestRenderText_Scenario(t *testing.T) {
	t.Parallel()

	e := mustNew(t, "db timeout", At("db.rs", 42))
	e = mustExtend(t, e, "handler failed", At("handler.rs", 10))

	got := e.RenderText()
	want := "db.rs:42: db timeout\nhandler.rs:10: handler failed\nerror: handler failed"
	if got != want {
		t.Fatalf("RenderText:\n%s\nwant:\n%s", got, want)
	}
	if e.Error() != "handler failed" {
		t.Fatalf("Error() = %q, want headline", e.Error())
	}
}

func TestRenderText_MetadataAndExtra(t *testing.T) {
	t.Parallel()

	e := mustNew(t, "boom", At("a.go", 1)).
		WithMeta("request_id", "r-1").
		WithUsername("svc").
		WithExtraData(map[string]any{"b": 2, "a": "x"}).
		WithProject("billing").
		WithComputerName("ci 7")

	got := e.RenderText()
	want := "a.go:1: boom\n" +
		"error: boom\n" +
		`project=billing computer_name="ci 7" username=svc request_id=r-1` + "\n" +
		`extra_data={"a":"x","b":2}`
	if got != want {
		t.Fatalf("RenderText:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderText_Quoting(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"plain":    "plain",
		"":         `""`,
		"a b":      `"a b"`,
		`say "hi"`: `"say \"hi\""`,
		"k=v":      `"k=v"`,
		"tab\tx":   `"tab\tx"`,
		"ünïcode":  "ünïcode",
	} {
		if got := quoteIfNeeded(in); got != want {
			t.Errorf("quoteIfNeeded(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestRenderText_QuotesMetadataKeys(t *testing.T) {
	t.Parallel()

	e := mustNew(t, "boom", At("a.go", 1)).
		WithMeta("a b", "v").
		WithMeta("k=x", "w").
		WithMeta("", "empty key")

	lines := strings.Split(e.RenderText(), "\n")
	want := `"a b"=v "k=x"=w ""="empty key"`
	if got := lines[len(lines)-1]; got != want {
		t.Fatalf("metadata line = %s, want %s", got, want)
	}
}

func TestRenderText_UnencodablePayload(t *testing.T) {
	t.Parallel()

	e := mustNew(t, "boom", At("a.go", 1)).WithExtraData(math.NaN())
	got := e.RenderText()
	if !strings.Contains(got, "\nextra_data=!") {
		t.Fatalf("expected a marked encoding failure, got:\n%s", got)
	}
}

func TestFormatVerbs(t *testing.T) {
	t.Parallel()

	e := mustNew(t, "db timeout", At("db.go", 42))
	e = mustExtend(t, e, `handler "x" failed`, At("handler.go", 10)).WithProject("p")

	if got := fmt.Sprintf("%v", e); got != `handler "x" failed` {
		t.Fatalf("%%v = %q", got)
	}
	if got := fmt.Sprintf("%s", e); got != `handler "x" failed` {
		t.Fatalf("%%s = %q", got)
	}
	if got := fmt.Sprintf("%q", e); got != `"handler \"x\" failed"` {
		t.Fatalf("%%q = %q", got)
	}

	verbose := fmt.Sprintf("%+v", e)
	if verbose != e.RenderText() {
		t.Fatalf("%%+v must equal RenderText:\n%s", verbose)
	}
	if !containsInOrder(verbose, "db.go:42:", "handler.go:10:", "error: handler", "project=p") {
		t.Fatalf("verbose order wrong:\n%s", verbose)
	}

	wrapped := fmt.Errorf("request: %w", e)
	if got := wrapped.Error(); got != `request: handler "x" failed` {
		t.Fatalf("wrapped Error() = %q", got)
	}
}

func TestFormat_Nil(t *testing.T) {
	t.Parallel()

	var e *Error
	if got := fmt.Sprintf("%+v", e); got != "<nil>" {
		t.Fatalf("%%+v on nil = %q", got)
	}
	if got := e.RenderText(); got != "<nil>" {
		t.Fatalf("RenderText on nil = %q", got)
	}
}
