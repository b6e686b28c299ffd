package session

const eventBufferSize = 16

// Subscription provides event channels for a session observer.
type Subscription struct {
	StateChanged <-chan StateChange
	Countdown    <-chan CountdownChange
	Done         <-chan struct{}
	// Finished is closed when the session reaches Finished. Unlike a
	// StateChange it cannot be dropped.
	Finished <-chan struct{}

	stateCh     chan StateChange
	countdownCh chan CountdownChange
	doneCh      chan struct{}
	finishedCh  chan struct{}
	finished    bool
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:     make(chan StateChange, eventBufferSize),
		countdownCh: make(chan CountdownChange, eventBufferSize),
		doneCh:      make(chan struct{}),
		finishedCh:  make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.Countdown = s.countdownCh
	s.Done = s.doneCh
	s.Finished = s.finishedCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) finish() {
	if !s.finished {
		s.finished = true
		close(s.finishedCh)
	}
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendCountdown sends a countdown event (non-blocking).
func (s *Subscription) sendCountdown(e CountdownChange) {
	select {
	case s.countdownCh <- e:
	default:
	}
}
