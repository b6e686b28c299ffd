package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// silenceFloor is the beep volume for level 0. The base is 2, so it is
// about 60 dB down.
const silenceFloor = -10

// SetVolume sets the clip volume from the audio.volume level, clamped to
// [0, 1]. It applies to the clip playing now.
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = min(max(level, 0), 1)
	p.applyGainLocked()
}

// Volume returns the level set by SetVolume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

// SetMuted silences clips, the current one included. The game keeps
// running and the volume level is kept for unmuting.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.applyGainLocked()
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// applyGainLocked pushes the level and mute flag to the live stream.
func (p *Player) applyGainLocked() {
	if p.volume == nil {
		return
	}
	speaker.Lock()
	p.volume.Volume = levelToVolume(p.volumeLevel)
	p.volume.Silent = p.muted
	speaker.Unlock()
}

// levelToVolume maps a linear 0..1 level to beep's base-2 exponent.
func levelToVolume(level float64) float64 {
	switch {
	case level <= 0:
		return silenceFloor
	case level >= 1:
		return 0
	}
	return max(math.Log2(level), silenceFloor)
}
