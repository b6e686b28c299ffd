package player

import (
	"sync"

	"github.com/poliorcetics/seven-families/internal/catalog"
)

// Call is one recorded Mock method call.
type Call struct {
	Op   string // "SetClip", "Play", "Pause", "Stop", "Mute" or "Unmute"
	Clip catalog.Clip
}

// Mock is a test double for Player.
type Mock struct {
	mu         sync.Mutex
	state      State
	clip       catalog.Clip
	calls      []Call
	onFinished func()
	closed     bool
	muted      bool
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped}
}

func (m *Mock) record(op string) {
	m.calls = append(m.calls, Call{Op: op, Clip: m.clip})
}

func (m *Mock) SetClip(clip catalog.Clip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clip = clip
	m.state = Stopped
	m.record("SetClip")
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Playing
	m.record("Play")
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
	m.record("Pause")
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Stopped
	m.record("Stop")
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Clip() catalog.Clip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clip
}

func (m *Mock) OnFinished(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFinished = fn
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	if muted {
		m.record("Mute")
	} else {
		m.record("Unmute")
	}
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = Stopped
	return nil
}

// Test helpers

// Calls returns every recorded call in order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// PlayedClips returns the clip selected at each Play call.
func (m *Mock) PlayedClips() []catalog.Clip {
	m.mu.Lock()
	defer m.mu.Unlock()
	var clips []catalog.Clip
	for _, c := range m.calls {
		if c.Op == "Play" {
			clips = append(clips, c.Clip)
		}
	}
	return clips
}

// Count returns how many times op was called.
func (m *Mock) Count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SimulateFinished ends the current clip and runs the OnFinished callback
// on the calling goroutine.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	m.state = Stopped
	fn := m.onFinished
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}
