// Package countdown provides a pausable, resumable one-shot timer and a
// display ticker that runs alongside it.
package countdown

import (
	"math"
	"sync"
	"time"
)

// MaxDuration is the longest delay a timer accepts. Longer durations are
// clamped.
const MaxDuration = time.Duration(math.MaxUint32) * time.Millisecond

// Clamp bounds d to [0, MaxDuration].
func Clamp(d time.Duration) time.Duration {
	return min(max(d, 0), MaxDuration)
}

// Timer fires a callback once after a delay, unless paused or stopped first.
//
// State machine:
//
//	┌─────────┐  Pause   ┌────────┐
//	│ Running │ ───────▶ │ Paused │
//	└─────────┘ ◀─────── └────────┘
//	   │  │      Resume       │
//	   │  │ fire              │ Stop
//	   │  ▼                   ▼
//	   │ ┌───────┐       ┌─────────┐
//	   │ │ Fired │       │ Stopped │
//	   │ └───────┘       └─────────┘
//	   └──────── Stop ───────▲
//
// Each scheduling bumps a generation counter. A callback scheduled under an
// older generation returns without calling onFire, so once Pause or Stop has
// returned no stale callback can fire.
type Timer struct {
	mu        sync.Mutex
	duration  time.Duration // as configured, upper bound for remaining
	remaining time.Duration
	start     time.Time
	pending   *time.Timer
	gen       uint64
	running   bool
	stopped   bool
	fired     bool
}

// Start creates a timer and schedules onFire after d.
func Start(d time.Duration, onFire func()) *Timer {
	d = Clamp(d)
	t := &Timer{
		duration:  d,
		remaining: d,
	}
	t.mu.Lock()
	t.scheduleLocked(onFire)
	t.mu.Unlock()
	return t
}

func (t *Timer) scheduleLocked(onFire func()) {
	t.gen++
	gen := t.gen
	t.start = time.Now()
	t.running = true
	t.pending = time.AfterFunc(t.remaining, func() {
		t.mu.Lock()
		if t.gen != gen || !t.running {
			t.mu.Unlock()
			return
		}
		t.running = false
		t.fired = true
		t.remaining = 0
		t.pending = nil
		t.mu.Unlock()

		if onFire != nil {
			onFire()
		}
	})
}

// cancelLocked cancels the pending callback and freezes the remaining time.
func (t *Timer) cancelLocked() {
	if !t.running {
		return
	}
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.gen++
	t.running = false

	elapsed := time.Since(t.start)
	t.remaining = min(max(t.remaining-elapsed, 0), t.duration)
}

// Pause cancels the pending callback and returns the remaining time.
// Pausing a timer that is not running returns the stored remaining time.
func (t *Timer) Pause() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	return t.remaining
}

// Resume schedules onFire for the time left at the last Pause and reports
// whether anything was scheduled. It is a no-op on a running, fired or
// stopped timer.
func (t *Timer) Resume(onFire func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running || t.stopped || t.fired {
		return false
	}
	t.scheduleLocked(onFire)
	return true
}

// Stop cancels the timer for good and returns the remaining time.
func (t *Timer) Stop() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.stopped = true
	return t.remaining
}

// Remaining returns the time left. While running, elapsed time is deducted.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return t.remaining
	}
	return max(t.remaining-time.Since(t.start), 0)
}

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Running reports whether a callback is pending.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
