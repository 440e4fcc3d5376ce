// integration_test.go — cross-package flows: layered propagation, environment
// metadata, file sink delivery and reading the files back.
package traceback_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	clocktesting "k8s.io/utils/clock/testing"

	traceback "github.com/xgx-io/xgx-traceback"
	"github.com/xgx-io/xgx-traceback/envmeta"
	"github.com/xgx-io/xgx-traceback/sink"
)

// layered simulates repository → service → handler propagation.
type layered struct {
	rec *traceback.Recorder
	clk *clocktesting.FakeClock
}

func (l layered) repo() error {
	e, err := l.rec.New("db timeout", traceback.At("repo.go", 42))
	if err != nil {
		return err
	}
	return e.WithExtraData(map[string]any{"query": "select * from invoices", "attempt": 3})
}

func (l layered) service() error {
	err := l.repo()
	l.clk.Step(2 * time.Millisecond)
	tb := traceback.From(err)
	if tb == nil {
		return err
	}
	next, xerr := l.rec.Extend(tb, "load invoices", traceback.At("service.go", 17))
	if xerr != nil {
		return xerr
	}
	return fmt.Errorf("service: %w", next)
}

func (l layered) handler() *traceback.Error {
	err := l.service()
	l.clk.Step(time.Millisecond)
	tb, xerr := l.rec.Extend(traceback.From(err), "GET /invoices failed", traceback.At("handler.go", 88))
	if xerr != nil {
		panic(xerr)
	}
	return tb.WithMeta("request_id", "req-7")
}

func TestIntegration_LayeredPropagationToFile(t *testing.T) {
	t.Setenv("TRACEBACK_PROJECT", "billing")
	t.Setenv("COMPUTERNAME", "build-agent 3")
	t.Setenv("USERNAME", "svc")

	start := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	clk := clocktesting.NewFakeClock(start)
	l := layered{rec: traceback.NewRecorder(traceback.WithClock(clk)), clk: clk}

	tb := l.handler()
	if tb.Len() != 3 {
		t.Fatalf("frames = %d, want 3:\n%+v", tb.Len(), tb)
	}
	if got := tb.First().Message; got != "db timeout" {
		t.Fatalf("origin = %q", got)
	}
	if got := tb.Error(); got != "GET /invoices failed" {
		t.Fatalf("headline = %q", got)
	}
	if d := tb.Last().Timestamp.Sub(tb.First().Timestamp); d != 3*time.Millisecond {
		t.Fatalf("elapsed = %v, want 3ms", d)
	}

	tb, err := envmeta.FromEnvironment(tb)
	if err != nil {
		t.Fatal(err)
	}
	text := tb.RenderText()
	for _, want := range []string{
		"repo.go:42: db timeout\n",
		"service.go:17: load invoices\n",
		"handler.go:88: GET /invoices failed\n",
		"error: GET /invoices failed\n",
		`project=billing computer_name="build-agent 3" username=svc request_id=req-7`,
		`extra_data={"attempt":3,"query":"select * from invoices"}`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("RenderText missing %q:\n%s", want, text)
		}
	}

	dir := t.TempDir()
	fs := sink.NewFileSink(sink.Config{Dir: dir}, sink.WithFileClock(clk))
	if err := sink.Report(context.Background(), fs, fmt.Errorf("request: %w", tb)); err != nil {
		t.Fatal(err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one file, got %v (%v)", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	back, err := traceback.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !tb.Equal(back) {
		t.Fatalf("file round trip mismatch:\n%+v\n---\n%+v", tb, back)
	}
	if id, _ := back.Meta("request_id"); id != "req-7" {
		t.Fatalf("request_id = %q", id)
	}
}

func TestIntegration_ForeignCausePreserved(t *testing.T) {
	t.Parallel()

	read := func() error { return fmt.Errorf("open config: %w", os.ErrNotExist) }
	tb := traceback.Wrap(read(), "load settings")
	tb = traceback.Wrap(tb, "startup")

	if !errors.Is(tb, os.ErrNotExist) {
		t.Fatalf("errors.Is must reach the foreign cause")
	}
	if tb.Len() != 2 {
		t.Fatalf("frames = %d, want 2", tb.Len())
	}
	extra, ok := traceback.ExtraAs[map[string]string](tb)
	if !ok || extra["error"] != "open config: file does not exist" {
		t.Fatalf("extra_data = %v, %v", extra, ok)
	}

	// the foreign cause is not part of the document
	data, err := tb.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	back, err := traceback.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !tb.Equal(back) || back.Unwrap() != nil {
		t.Fatalf("parsed value must equal the original without its cause")
	}
}

func TestIntegration_ConcurrentDerivation(t *testing.T) {
	t.Parallel()

	base := traceback.Trace("shared origin").WithExtraData(map[string]any{"n": 0})
	const N = 32

	var wg sync.WaitGroup
	out := make([]*traceback.Error, N)
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := traceback.Wrap(base, fmt.Sprintf("worker %d", i))
			out[i] = e.WithExtraData(map[string]any{"n": i}).WithMeta("worker", fmt.Sprint(i))
		}()
	}
	wg.Wait()

	for i, e := range out {
		if e.Len() != 2 || e.Error() != fmt.Sprintf("worker %d", i) {
			t.Fatalf("worker %d: unexpected value:\n%+v", i, e)
		}
	}
	if base.Len() != 1 || len(base.Metadata()) != 0 {
		t.Fatalf("base mutated:\n%+v", base)
	}
	if v, _ := traceback.ExtraAs[map[string]any](base); v["n"] != 0 {
		t.Fatalf("base payload mutated: %v", v)
	}
}

func TestIntegration_ReportJoinedFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs := sink.NewFileSink(sink.Config{Dir: dir, Pretty: true})

	err := errors.Join(
		traceback.Wrap(io.ErrUnexpectedEOF, "decode body"),
		fmt.Errorf("retry: %w", traceback.Trace("backend unavailable")),
	)
	if rerr := sink.Report(context.Background(), fs, err); rerr != nil {
		t.Fatal(rerr)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*.json"))
	if len(files) != 2 {
		t.Fatalf("expected two files, got %v", files)
	}
}
