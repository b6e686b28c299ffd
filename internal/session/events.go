package session

import (
	"fmt"
	"time"
)

// Event is an input to the session. Events that the current state does not
// define a transition for are ignored.
type Event interface {
	eventName() string
}

// PermissionGranted starts the game.
type PermissionGranted struct{}

// ClipFinished reports that the current audio clip reached its end.
type ClipFinished struct{}

// CountdownElapsed reports that the delay between two items is over.
// Events posted by the session's own countdown carry a token; a zero token
// is always accepted.
type CountdownElapsed struct {
	token uint64
}

// NextRequested skips the rest of the countdown.
type NextRequested struct{}

// PauseRequested pauses audio or the countdown.
type PauseRequested struct{}

// ResumeRequested undoes PauseRequested.
type ResumeRequested struct{}

// DurationChanged sets the delay between items, in seconds. The value is
// clamped into the session bounds.
type DurationChanged struct {
	Seconds int
}

// Tick refreshes the visible countdown once per second while waiting.
type Tick struct {
	token uint64
}

// ReturnToSelection abandons the session.
type ReturnToSelection struct{}

func (PermissionGranted) eventName() string { return "PermissionGranted" }
func (ClipFinished) eventName() string      { return "ClipFinished" }
func (CountdownElapsed) eventName() string  { return "CountdownElapsed" }
func (NextRequested) eventName() string     { return "NextRequested" }
func (PauseRequested) eventName() string    { return "PauseRequested" }
func (ResumeRequested) eventName() string   { return "ResumeRequested" }
func (e DurationChanged) eventName() string { return fmt.Sprintf("DurationChanged(%d)", e.Seconds) }
func (Tick) eventName() string              { return "Tick" }
func (ReturnToSelection) eventName() string { return "ReturnToSelection" }

// StateChange is emitted after every transition.
type StateChange struct {
	Previous Kind
	Current  Snapshot
}

// CountdownChange is emitted on every countdown tick.
type CountdownChange struct {
	Remaining time.Duration
}
