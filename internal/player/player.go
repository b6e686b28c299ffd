// Package player plays the short audio clips of the game.
//
// Player drives the sound card through beep. Silent stands in when audio is
// disabled or unavailable, and Mock records calls for tests.
package player

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/poliorcetics/seven-families/internal/catalog"
)

// SampleRate is the speaker rate. Clips at other rates are resampled.
const SampleRate = beep.SampleRate(44100)

// Player plays clips from an assets directory through the speaker.
type Player struct {
	mu         sync.Mutex
	assetsDir  string
	logger     zerolog.Logger
	state      State
	clip       catalog.Clip
	stream     beep.StreamSeekCloser
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	gen        uint64
	onFinished func()

	volumeLevel float64
	muted       bool
}

// New opens the speaker. Clip paths are resolved against assetsDir.
func New(assetsDir string, logger zerolog.Logger) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Player{
		assetsDir:   assetsDir,
		logger:      logger.With().Str("component", "player").Logger(),
		state:       Stopped,
		volumeLevel: 1,
	}, nil
}

// OnFinished registers the end-of-clip callback.
func (p *Player) OnFinished(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinished = fn
}

// SetClip selects the clip for the next Play and stops the current one.
func (p *Player) SetClip(clip catalog.Clip) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.clip = clip
}

// Clip returns the selected clip.
func (p *Player) Clip() catalog.Clip {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clip
}

// Play starts the selected clip from the beginning.
//
// A clip that cannot be loaded is logged and reported as finished right
// away, so whoever waits on it is not stuck.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if p.clip == "" {
		return
	}

	p.gen++
	gen := p.gen
	p.state = Playing

	path := filepath.Join(p.assetsDir, string(p.clip))
	stream, format, err := openClip(path)
	if err != nil {
		p.logger.Error().Err(err).Str("clip", string(p.clip)).Msg("load clip")
		go p.finished(gen)
		return
	}

	var s beep.Streamer = stream
	if format.SampleRate != SampleRate {
		s = beep.Resample(4, format.SampleRate, SampleRate, stream)
	}
	p.stream = stream
	p.ctrl = &beep.Ctrl{Streamer: s}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}

	// The callback runs on the speaker goroutine with the speaker locked.
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		go p.finished(gen)
	})))
}

func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	if p.gen != gen || p.state != Playing {
		p.mu.Unlock()
		return
	}
	p.releaseLocked()
	p.state = Stopped
	fn := p.onFinished
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Pause freezes the current clip.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing {
		return
	}
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
	p.state = Paused
}

// Stop halts playback and releases the clip.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.state == Stopped {
		return
	}
	p.gen++
	speaker.Clear()
	p.releaseLocked()
	p.state = Stopped
}

func (p *Player) releaseLocked() {
	if p.stream != nil {
		if err := p.stream.Close(); err != nil {
			p.logger.Warn().Err(err).Str("clip", string(p.clip)).Msg("close clip")
		}
		p.stream = nil
	}
	p.ctrl = nil
	p.volume = nil
}

// State returns the playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close stops playback and shuts the speaker down.
func (p *Player) Close() error {
	p.Stop()
	speaker.Close()
	return nil
}
