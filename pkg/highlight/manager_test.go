package highlight

import (
	"sync"
	"testing"
	"time"
)

// countingHighlighter records every Highlight call instead of rendering.
type countingHighlighter struct {
	mu    sync.Mutex
	calls []string
}

func (c *countingHighlighter) Highlight(code, hint string) Result {
	c.mu.Lock()
	c.calls = append(c.calls, code)
	c.mu.Unlock()
	return Result{Markup: code, Language: hint}
}

type resultCollector struct {
	mu      sync.Mutex
	results []Result
}

func (rc *resultCollector) sink(res Result) {
	rc.mu.Lock()
	rc.results = append(rc.results, res)
	rc.mu.Unlock()
}

func (rc *resultCollector) snapshot() []Result {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]Result, len(rc.results))
	copy(out, rc.results)
	return out
}

const testDelay = 20 * time.Millisecond

// settle waits long enough for any pending debounce window to elapse.
func settle() { time.Sleep(5 * testDelay) }

func TestDebounceCoalescing(t *testing.T) {
	h := &countingHighlighter{}
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)
	defer m.Destroy()

	m.UpdateDebounced("one", "a.go")
	m.UpdateDebounced("two", "b.py")
	m.UpdateDebounced("three", "c.rs")
	settle()

	got := rc.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one sink invocation, got %d", len(got))
	}
	if got[0].Markup != "three" {
		t.Fatalf("expected latest arguments to win, got %q", got[0].Markup)
	}
	if got[0].Language != "rust" {
		t.Fatalf("expected hint resolved from latest name, got %q", got[0].Language)
	}
}

func TestImmediateCancelsPending(t *testing.T) {
	h := &countingHighlighter{}
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)
	defer m.Destroy()

	m.UpdateDebounced("stale", "a.go")
	m.UpdateImmediate("fresh", "a.go")
	settle()

	got := rc.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected one sink invocation, got %d", len(got))
	}
	if got[0].Markup != "fresh" {
		t.Fatalf("stale debounced result delivered: %q", got[0].Markup)
	}
}

func TestImmediateIsSynchronous(t *testing.T) {
	h := &countingHighlighter{}
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)
	defer m.Destroy()

	m.UpdateImmediate("now", "a.go")
	if got := rc.snapshot(); len(got) != 1 || got[0].Markup != "now" {
		t.Fatalf("immediate update must push before returning, got %v", got)
	}
}

func TestSetFileNameDoesNotRecompute(t *testing.T) {
	h := &countingHighlighter{}
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)
	defer m.Destroy()

	m.SetFileName("later.py")
	settle()
	if got := rc.snapshot(); len(got) != 0 {
		t.Fatalf("SetFileName must not trigger a recomputation, got %d results", len(got))
	}
}

func TestSetFileNameAppliesToPendingUpdate(t *testing.T) {
	h := &countingHighlighter{}
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)
	defer m.Destroy()

	m.UpdateDebounced("code", "")
	m.SetFileName("script.py")
	settle()

	got := rc.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected one sink invocation, got %d", len(got))
	}
	if got[0].Language != "python" {
		t.Fatalf("pending update should use the updated name, got %q", got[0].Language)
	}
}

func TestDestroyCancelsAndSilences(t *testing.T) {
	h := &countingHighlighter{}
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)

	m.UpdateDebounced("pending", "a.go")
	m.Destroy()
	settle()
	if got := rc.snapshot(); len(got) != 0 {
		t.Fatalf("destroyed manager delivered %d results", len(got))
	}

	// All further calls are no-ops and must not panic or resurrect timers.
	m.UpdateDebounced("again", "a.go")
	m.UpdateImmediate("again", "a.go")
	m.SetFileName("b.py")
	m.Destroy()
	settle()
	if got := rc.snapshot(); len(got) != 0 {
		t.Fatalf("calls after Destroy produced %d results", len(got))
	}
}

// gatedHighlighter blocks Highlight calls for one code value until released,
// so tests can interleave updates with an in-flight computation.
type gatedHighlighter struct {
	block   string
	entered chan struct{}
	release chan struct{}
}

func newGatedHighlighter(block string) *gatedHighlighter {
	return &gatedHighlighter{
		block:   block,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (g *gatedHighlighter) Highlight(code, hint string) Result {
	if code == g.block {
		g.entered <- struct{}{}
		<-g.release
	}
	return Result{Markup: code, Language: hint}
}

func TestImmediateSupersedesInFlightDebounce(t *testing.T) {
	h := newGatedHighlighter("stale")
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)
	defer m.Destroy()

	m.UpdateDebounced("stale", "a.go")
	// Wait for the debounce window to elapse and the computation to start.
	<-h.entered
	m.UpdateImmediate("fresh", "a.go")
	close(h.release)
	settle()

	got := rc.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected one sink invocation, got %d", len(got))
	}
	if got[0].Markup != "fresh" {
		t.Fatalf("superseded in-flight result was delivered: %v", got)
	}
}

func TestDestroySilencesInFlightDebounce(t *testing.T) {
	h := newGatedHighlighter("stale")
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)

	m.UpdateDebounced("stale", "a.go")
	<-h.entered
	m.Destroy()
	close(h.release)
	settle()

	if got := rc.snapshot(); len(got) != 0 {
		t.Fatalf("destroyed manager delivered %d in-flight results", len(got))
	}
}

func TestDestroySilencesInFlightImmediate(t *testing.T) {
	h := newGatedHighlighter("stale")
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)

	done := make(chan struct{})
	go func() {
		m.UpdateImmediate("stale", "a.go")
		close(done)
	}()
	<-h.entered
	m.Destroy()
	close(h.release)
	<-done

	if got := rc.snapshot(); len(got) != 0 {
		t.Fatalf("immediate update delivered %d results after Destroy", len(got))
	}
}

func TestDebouncedAfterWindowRunsAgain(t *testing.T) {
	h := &countingHighlighter{}
	rc := &resultCollector{}
	m := NewManager(h, rc.sink, testDelay)
	defer m.Destroy()

	m.UpdateDebounced("first", "a.go")
	settle()
	m.UpdateDebounced("second", "a.go")
	settle()

	got := rc.snapshot()
	if len(got) != 2 {
		t.Fatalf("expected two sink invocations across two windows, got %d", len(got))
	}
	if got[0].Markup != "first" || got[1].Markup != "second" {
		t.Fatalf("unexpected delivery order: %v", got)
	}
}
