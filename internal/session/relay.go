package session

import "sync"

// Notifier is the part of a clip player that reports finished clips.
type Notifier interface {
	OnFinished(fn func())
}

// Relay forwards a player's finished notifications to whichever session
// is live. The player callback is wired once; sessions come and go.
type Relay struct {
	mu     sync.Mutex
	target *Session
}

// NewRelay wires p's finished callback to the relay.
func NewRelay(p Notifier) *Relay {
	r := &Relay{}
	p.OnFinished(r.clipFinished)
	return r
}

// Attach makes s the receiver of ClipFinished. A nil s detaches.
func (r *Relay) Attach(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = s
}

func (r *Relay) clipFinished() {
	r.mu.Lock()
	s := r.target
	r.mu.Unlock()
	if s != nil {
		s.Post(ClipFinished{})
	}
}
