package highlight

import (
	"sync"
	"time"

	"example.com/litepad/pkg/lang"
)

// Highlighter is the rendering dependency of a Manager. *Engine satisfies it.
type Highlighter interface {
	Highlight(code, hint string) Result
}

// Sink receives highlight results pushed by a Manager.
type Sink func(Result)

// DefaultDelay is the debounce window for live-typing updates.
const DefaultDelay = 300 * time.Millisecond

// Manager schedules highlight recomputation. Immediate updates run
// synchronously; debounced updates coalesce into one recomputation per delay
// window, always using the latest recorded arguments. A manager owns at most
// one live timer; scheduling always cancels the previous one first.
type Manager struct {
	mu        sync.Mutex
	engine    Highlighter
	sink      Sink
	delay     time.Duration
	timer     *time.Timer
	seq       int64 // bumped whenever a pending computation is superseded
	pendCode  string
	fileName  string
	destroyed bool
}

// NewManager wires an engine to a sink. A non-positive delay selects
// DefaultDelay.
func NewManager(engine Highlighter, sink Sink, delay time.Duration) *Manager {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Manager{engine: engine, sink: sink, delay: delay}
}

// UpdateImmediate cancels any pending debounced computation, highlights
// synchronously and pushes the result. Used for discrete events such as a
// file open.
func (m *Manager) UpdateImmediate(code, name string) {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return
	}
	m.supersedeLocked()
	seq := m.seq
	m.fileName = name
	engine := m.engine
	m.mu.Unlock()

	m.deliver(seq, engine.Highlight(code, lang.Resolve(name)))
}

// UpdateDebounced records the latest arguments and (re)starts the delay
// timer. Only the final call of a burst produces a sink invocation.
func (m *Manager) UpdateDebounced(code, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.supersedeLocked()
	m.pendCode = code
	m.fileName = name
	seq := m.seq
	m.timer = time.AfterFunc(m.delay, func() { m.fire(seq) })
}

// SetFileName updates the language-hint context without forcing a
// recomputation. A pending debounced update picks up the new name.
func (m *Manager) SetFileName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.fileName = name
}

// Destroy cancels any outstanding timer and releases the sink. Further calls
// on the manager are no-ops.
func (m *Manager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.supersedeLocked()
	m.sink = nil
}

// fire runs when a debounce window elapses. A stale sequence means the
// computation was superseded after the timer was already in flight; such
// results are discarded, never delivered.
func (m *Manager) fire(seq int64) {
	m.mu.Lock()
	if m.destroyed || seq != m.seq {
		m.mu.Unlock()
		return
	}
	code, name := m.pendCode, m.fileName
	engine := m.engine
	m.timer = nil
	m.mu.Unlock()

	m.deliver(seq, engine.Highlight(code, lang.Resolve(name)))
}

// deliver pushes a computed result to the sink only if it is still current.
// Currency is re-checked after the computation: a supersession or Destroy
// that happened while the highlight was running discards the result.
func (m *Manager) deliver(seq int64, res Result) {
	m.mu.Lock()
	if m.destroyed || seq != m.seq {
		m.mu.Unlock()
		return
	}
	sink := m.sink
	m.mu.Unlock()
	if sink != nil {
		sink(res)
	}
}

// supersedeLocked stops the pending timer, if any, and invalidates any timer
// callback already in flight. Callers must hold mu.
func (m *Manager) supersedeLocked() {
	m.seq++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
