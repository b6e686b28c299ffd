package player

import (
	"sync"
	"time"

	"github.com/poliorcetics/seven-families/internal/catalog"
)

// DefaultSilentClip is how long Silent pretends a clip lasts.
const DefaultSilentClip = 1500 * time.Millisecond

// Silent is a player without sound: every clip "plays" for a fixed length
// and then reports finished, so a game can run without an audio device.
type Silent struct {
	mu         sync.Mutex
	length     time.Duration
	state      State
	clip       catalog.Clip
	timer      *time.Timer
	gen        uint64
	onFinished func()
	muted      bool
}

// NewSilent creates a silent player whose clips last length. A
// non-positive length selects DefaultSilentClip.
func NewSilent(length time.Duration) *Silent {
	if length <= 0 {
		length = DefaultSilentClip
	}
	return &Silent{length: length}
}

func (s *Silent) OnFinished(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFinished = fn
}

func (s *Silent) SetClip(clip catalog.Clip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.clip = clip
}

func (s *Silent) Clip() catalog.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clip
}

func (s *Silent) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	if s.clip == "" {
		return
	}
	s.gen++
	gen := s.gen
	s.state = Playing
	s.timer = time.AfterFunc(s.length, func() {
		s.mu.Lock()
		if s.gen != gen || s.state != Playing {
			s.mu.Unlock()
			return
		}
		s.state = Stopped
		s.timer = nil
		fn := s.onFinished
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

func (s *Silent) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Playing {
		return
	}
	s.cancelLocked()
	s.state = Paused
}

func (s *Silent) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Silent) stopLocked() {
	s.cancelLocked()
	s.state = Stopped
}

func (s *Silent) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Silent) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetMuted only records the flag: there is nothing to hear.
func (s *Silent) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *Silent) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Silent) Close() error {
	s.Stop()
	return nil
}
