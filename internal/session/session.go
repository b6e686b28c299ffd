// Package session runs one game: it waits for audio permission, then plays
// a family clip and an item clip for every drawn item, separated by a
// countdown, until the pool is empty.
//
// All events are applied one at a time under a single mutex. Timer and
// audio callbacks never touch the state directly; they Post events that
// Run feeds back through Handle.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/countdown"
	"github.com/poliorcetics/seven-families/internal/pool"
)

// Audio is the clip player driven by the session. Failures are the
// player's business; the session assumes every call succeeds.
type Audio interface {
	SetClip(clip catalog.Clip)
	Play()
	Pause()
}

// Display receives the time left before the next item, once per second.
// It is called with the session locked and must not call back into it.
type Display interface {
	ShowRemaining(d time.Duration)
}

const (
	DefaultDuration    = 20 * time.Second
	DefaultMinDuration = 3 * time.Second
	DefaultMaxDuration = 60 * time.Second

	queueSize = 32
)

// Bounds limits the configurable delay between two items.
type Bounds struct {
	Min time.Duration
	Max time.Duration
}

// DefaultBounds returns the 3 to 60 second range.
func DefaultBounds() Bounds {
	return Bounds{Min: DefaultMinDuration, Max: DefaultMaxDuration}
}

func (b Bounds) normalized() Bounds {
	if b.Min <= 0 || b.Max < b.Min {
		return DefaultBounds()
	}
	return b
}

// Clamp bounds d to [Min, Max].
func (b Bounds) Clamp(d time.Duration) time.Duration {
	return min(max(d, b.Min), b.Max)
}

// ClampSeconds bounds a whole number of seconds to [Min, Max].
func (b Bounds) ClampSeconds(n int) time.Duration {
	lo := int(b.Min / time.Second)
	hi := int(b.Max / time.Second)
	if n <= lo {
		return b.Min
	}
	if n >= hi {
		return b.Max
	}
	return time.Duration(n) * time.Second
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	Duration time.Duration
	Bounds   Bounds
	Audio    Audio
	Display  Display
	Logger   *zerolog.Logger // nil discards
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	ID        string
	Kind      Kind
	Item      catalog.Item
	HasItem   bool
	Phase     Phase
	Remaining time.Duration
	Duration  time.Duration
	ItemsLeft int
	Closed    bool
}

// Session is one run of the game.
type Session struct {
	mu       sync.Mutex
	id       string
	state    State
	duration time.Duration
	bounds   Bounds
	pool     *pool.Pool
	audio    Audio
	display  Display
	logger   zerolog.Logger

	cd    *countdown.Countdown
	token uint64

	events chan Event
	done   chan struct{}
	closed bool

	subs []*Subscription // guarded by mu
}

// New creates a session in AwaitingPermission over p.
func New(p *pool.Pool, opts Options) *Session {
	bounds := opts.Bounds.normalized()
	d := opts.Duration
	if d == 0 {
		d = DefaultDuration
	}
	d = bounds.Clamp(d)

	if p == nil {
		p = pool.New(nil, nil)
	}
	audio := opts.Audio
	if audio == nil {
		audio = nopAudio{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	id := uuid.NewString()

	s := &Session{
		id:       id,
		state:    AwaitingPermission{Duration: d},
		duration: d,
		bounds:   bounds,
		pool:     p,
		audio:    audio,
		display:  opts.Display,
		logger:   logger.With().Str("session", id).Logger(),
		events:   make(chan Event, queueSize),
		done:     make(chan struct{}),
	}
	s.logger.Info().Int("items", p.Len()).Dur("duration", d).Msg("created")
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Duration returns the configured delay between items.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Bounds returns the allowed range for the delay between items.
func (s *Session) Bounds() Bounds {
	return s.bounds
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	item, phase, ok := currentItem(s.state)
	return Snapshot{
		ID:        s.id,
		Kind:      s.state.Kind(),
		Item:      item,
		HasItem:   ok,
		Phase:     phase,
		Remaining: remaining(s.state),
		Duration:  s.duration,
		ItemsLeft: s.pool.Len(),
		Closed:    s.closed,
	}
}

// Subscribe returns a new subscription. Subscribing to a closed session
// returns a subscription whose Done channel is already closed, and a
// finished session one whose Finished channel is.
func (s *Session) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := newSubscription()
	if s.state.Kind().IsTerminal() {
		sub.finish()
	}
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Done is closed once the session has been abandoned or closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Post queues ev for Run. It blocks while the queue is full and returns
// false if the session is closed.
func (s *Session) Post(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// Run applies queued events until ctx is cancelled or the session closes.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case ev := <-s.events:
			s.Handle(ev)
		}
	}
}

// Handle applies ev synchronously and reports whether it caused a
// transition. Events the current state does not accept are ignored.
func (s *Session) Handle(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	prev := s.state.Kind()
	if !s.applyLocked(ev) {
		if _, tick := ev.(Tick); !tick {
			s.logger.Debug().Str("event", ev.eventName()).Stringer("state", prev).Msg("ignored")
		}
		return false
	}

	switch ev.(type) {
	case Tick:
		return true
	case ReturnToSelection:
		s.logger.Info().Stringer("from", prev).Msg("returned to selection")
		s.closeLocked()
		return true
	}

	snap := s.snapshotLocked()
	s.logger.Info().Str("event", ev.eventName()).Stringer("from", prev).Stringer("to", snap.Kind).Msg("transition")
	s.broadcast(func(sub *Subscription) {
		sub.sendState(StateChange{Previous: prev, Current: snap})
		if snap.Kind.IsTerminal() {
			sub.finish()
		}
	})
	return true
}

func (s *Session) applyLocked(ev Event) bool {
	switch ev := ev.(type) {
	case PermissionGranted:
		if _, ok := s.state.(AwaitingPermission); !ok {
			return false
		}
		s.drawLocked()

	case ClipFinished:
		st, ok := s.state.(Playing)
		if !ok {
			return false
		}
		if st.Phase == PhaseCategory {
			s.state = Playing{Item: st.Item, Phase: PhaseItem}
			s.audio.SetClip(st.Item.ItemClip)
			s.audio.Play()
			return true
		}
		if s.pool.IsEmpty() {
			s.state = Finished{}
			return true
		}
		s.startCountdownLocked()

	case CountdownElapsed:
		if !s.fresh(ev.token) {
			return false
		}
		return s.advanceLocked()

	case NextRequested:
		return s.advanceLocked()

	case PauseRequested:
		switch st := s.state.(type) {
		case Playing:
			s.audio.Pause()
			s.state = PlayingPaused(st)
		case Waiting:
			rem := s.cd.Pause()
			s.state = WaitingPaused{Remaining: rem}
			s.showRemainingLocked(rem)
		default:
			return false
		}

	case ResumeRequested:
		switch st := s.state.(type) {
		case PlayingPaused:
			s.state = Playing(st)
			s.audio.Play()
		case WaitingPaused:
			s.state = Waiting(st)
			// A countdown that fired just before the pause has nothing
			// left to schedule, and its elapsed event was dropped.
			if !s.cd.Resume() {
				return s.advanceLocked()
			}
			s.showRemainingLocked(st.Remaining)
		default:
			return false
		}

	case DurationChanged:
		if !s.state.Kind().CanChangeDuration() {
			return false
		}
		s.duration = s.bounds.ClampSeconds(ev.Seconds)
		if _, ok := s.state.(AwaitingPermission); ok {
			s.state = AwaitingPermission{Duration: s.duration}
		}

	case Tick:
		st, ok := s.state.(Waiting)
		if !ok || !s.fresh(ev.token) {
			return false
		}
		st.Remaining = max(st.Remaining-countdown.TickInterval, 0)
		s.state = st
		s.showRemainingLocked(st.Remaining)

	case ReturnToSelection:
		return true

	default:
		return false
	}
	return true
}

// fresh reports whether a timer event belongs to the live countdown.
func (s *Session) fresh(token uint64) bool {
	return token == 0 || token == s.token
}

func (s *Session) advanceLocked() bool {
	if _, ok := s.state.(Waiting); !ok {
		return false
	}
	s.stopCountdownLocked()
	s.drawLocked()
	return true
}

func (s *Session) drawLocked() {
	item, ok := s.pool.DrawOne()
	if !ok {
		s.state = Finished{}
		return
	}
	s.state = Playing{Item: item, Phase: PhaseCategory}
	s.audio.SetClip(item.CategoryClip)
	s.audio.Play()
}

func (s *Session) startCountdownLocked() {
	s.token++
	token := s.token
	s.cd = countdown.New(s.duration,
		func() { s.Post(CountdownElapsed{token: token}) },
		func() { s.Post(Tick{token: token}) },
	)
	s.state = Waiting{Remaining: s.duration}
	s.showRemainingLocked(s.duration)
}

func (s *Session) stopCountdownLocked() {
	if s.cd != nil {
		s.cd.Stop()
		s.cd = nil
	}
	s.token++
}

func (s *Session) showRemainingLocked(d time.Duration) {
	if s.display != nil {
		s.display.ShowRemaining(d)
	}
	s.broadcast(func(sub *Subscription) {
		sub.sendCountdown(CountdownChange{Remaining: d})
	})
}

func (s *Session) broadcast(send func(*Subscription)) {
	for _, sub := range s.subs {
		send(sub)
	}
}

// Close abandons the session without an event, as ReturnToSelection does.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.logger.Info().Stringer("state", s.state.Kind()).Msg("closed")
	s.closeLocked()
	return nil
}

func (s *Session) closeLocked() {
	s.stopCountdownLocked()
	s.audio.Pause()
	s.closed = true
	close(s.done)

	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
}

type nopAudio struct{}

func (nopAudio) SetClip(catalog.Clip) {}
func (nopAudio) Play()                {}
func (nopAudio) Pause()               {}
