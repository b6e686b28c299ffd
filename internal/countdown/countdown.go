package countdown

import (
	"sync"
	"time"
)

// TickInterval is the period of the display ticker.
const TickInterval = time.Second

// Countdown pairs a Timer with a once-per-second display ticker.
//
// The ticker only feeds a visible countdown; the Timer's onFire is the one
// and only signal that the delay has elapsed. Both are started, paused,
// resumed and stopped together.
type Countdown struct {
	timer  *Timer
	onFire func()
	onTick func()

	mu      sync.Mutex
	tickGen uint64
	quit    chan struct{}
}

// New starts a countdown of d. onTick is called every TickInterval while
// running; onFire is called once when d has elapsed.
func New(d time.Duration, onFire, onTick func()) *Countdown {
	c := &Countdown{onFire: onFire, onTick: onTick}
	c.timer = Start(d, c.fire)
	c.startTicker()
	return c
}

func (c *Countdown) fire() {
	c.stopTicker()
	if c.onFire != nil {
		c.onFire()
	}
}

func (c *Countdown) startTicker() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tickGen++
	gen := c.tickGen
	quit := make(chan struct{})
	c.quit = quit

	go func() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.mu.Lock()
				stale := c.tickGen != gen
				c.mu.Unlock()
				if stale {
					return
				}
				if c.onTick != nil {
					c.onTick()
				}
			case <-quit:
				return
			}
		}
	}()
}

func (c *Countdown) stopTicker() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quit == nil {
		return
	}
	c.tickGen++
	close(c.quit)
	c.quit = nil
}

// Pause freezes both the timer and the ticker and returns the time left.
func (c *Countdown) Pause() time.Duration {
	c.stopTicker()
	return c.timer.Pause()
}

// Resume restarts the timer with the time left and restarts the ticker.
// It reports false, doing nothing, unless the countdown is paused. A
// countdown that fired before Pause stays fired.
func (c *Countdown) Resume() bool {
	if !c.timer.Resume(c.fire) {
		return false
	}
	c.startTicker()
	return true
}

// Stop cancels the countdown for good and returns the time left.
func (c *Countdown) Stop() time.Duration {
	c.stopTicker()
	return c.timer.Stop()
}

// Remaining returns the exact time left on the timer.
func (c *Countdown) Remaining() time.Duration {
	return c.timer.Remaining()
}
