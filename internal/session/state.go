package session

import (
	"time"

	"github.com/poliorcetics/seven-families/internal/catalog"
)

// Kind identifies the variant of a State.
//
// The session moves through its states as follows:
//
//	┌────────────────────┐ PermissionGranted ┌─────────────────┐
//	│ AwaitingPermission │ ────────────────▶ │ Playing(cat)    │◀──────┐
//	└────────────────────┘                   └─────────────────┘       │
//	                                           │ ClipFinished          │
//	                                           ▼                       │
//	                                         ┌─────────────────┐       │
//	                                         │ Playing(item)   │       │
//	                                         └─────────────────┘       │
//	                                           │ ClipFinished          │ CountdownElapsed
//	                                           ▼                       │ NextRequested
//	                                         ┌─────────────────┐       │
//	                                         │ Waiting         │ ──────┘
//	                                         └─────────────────┘
//
// Playing and Waiting pause into PlayingPaused and WaitingPaused and resume
// back. Any draw from an empty pool lands in Finished instead of Playing.
type Kind int

const (
	KindAwaitingPermission Kind = iota
	KindPlaying
	KindPlayingPaused
	KindWaiting
	KindWaitingPaused
	KindFinished
)

// String returns the state name for logs.
func (k Kind) String() string {
	switch k {
	case KindAwaitingPermission:
		return "AwaitingPermission"
	case KindPlaying:
		return "Playing"
	case KindPlayingPaused:
		return "PlayingPaused"
	case KindWaiting:
		return "Waiting"
	case KindWaitingPaused:
		return "WaitingPaused"
	case KindFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// CanPause returns true if the state accepts PauseRequested.
func (k Kind) CanPause() bool {
	return k == KindPlaying || k == KindWaiting
}

// CanResume returns true if the state accepts ResumeRequested.
func (k Kind) CanResume() bool {
	return k == KindPlayingPaused || k == KindWaitingPaused
}

// CanChangeDuration returns true if the state accepts DurationChanged.
func (k Kind) CanChangeDuration() bool {
	return k == KindAwaitingPermission || k == KindPlayingPaused || k == KindWaitingPaused
}

// IsTerminal returns true once no gameplay transition can happen.
func (k Kind) IsTerminal() bool {
	return k == KindFinished
}

// Phase tells which of the two clips of an item is playing.
type Phase int

const (
	// PhaseCategory plays the clip shared by every item of the family.
	PhaseCategory Phase = iota
	// PhaseItem plays the clip naming the item.
	PhaseItem
)

func (p Phase) String() string {
	if p == PhaseItem {
		return "item"
	}
	return "category"
}

// State is one of AwaitingPermission, Playing, PlayingPaused, Waiting,
// WaitingPaused or Finished.
type State interface {
	Kind() Kind
}

// AwaitingPermission waits for the user to allow audio playback.
type AwaitingPermission struct {
	Duration time.Duration
}

// Playing has an audio clip of Item in flight.
type Playing struct {
	Item  catalog.Item
	Phase Phase
}

// PlayingPaused is Playing with the clip paused.
type PlayingPaused struct {
	Item  catalog.Item
	Phase Phase
}

// Waiting counts down to the next draw.
type Waiting struct {
	Remaining time.Duration
}

// WaitingPaused is Waiting with the countdown frozen.
type WaitingPaused struct {
	Remaining time.Duration
}

// Finished is reached when a draw finds the pool empty.
type Finished struct{}

func (AwaitingPermission) Kind() Kind { return KindAwaitingPermission }
func (Playing) Kind() Kind            { return KindPlaying }
func (PlayingPaused) Kind() Kind      { return KindPlayingPaused }
func (Waiting) Kind() Kind            { return KindWaiting }
func (WaitingPaused) Kind() Kind      { return KindWaitingPaused }
func (Finished) Kind() Kind           { return KindFinished }

// currentItem returns the item attached to st, if any.
func currentItem(st State) (catalog.Item, Phase, bool) {
	switch st := st.(type) {
	case Playing:
		return st.Item, st.Phase, true
	case PlayingPaused:
		return st.Item, st.Phase, true
	default:
		return catalog.Item{}, PhaseCategory, false
	}
}

// remaining returns the countdown value attached to st, if any.
func remaining(st State) time.Duration {
	switch st := st.(type) {
	case Waiting:
		return st.Remaining
	case WaitingPaused:
		return st.Remaining
	default:
		return 0
	}
}
