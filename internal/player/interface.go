package player

import "github.com/poliorcetics/seven-families/internal/catalog"

// Interface is a long-lived clip player. The clip is swapped with SetClip
// and Play always starts it from the beginning.
type Interface interface {
	SetClip(clip catalog.Clip)
	Play()
	Pause()
	Stop()
	State() State
	Clip() catalog.Clip
	// OnFinished registers the callback run when a clip plays to its end.
	// It is meant to be wired once; the callback runs on its own goroutine.
	OnFinished(fn func())
	// SetMuted silences every clip until unmuted, the playing one included.
	SetMuted(muted bool)
	Muted() bool
	Close() error
}

var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Silent)(nil)
	_ Interface = (*Mock)(nil)
)
