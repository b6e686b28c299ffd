package player

// State is the clip player state.
//
//	┌──────────┐      Play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │◀─┐
//	└──────────┘                 └──────────┘  │
//	     ▲   ▲                      │     │    │ Play
//	     │   │  clip ended          │     │    │ (restarts clip)
//	     │   └──────────────────────┘     │    │
//	     │                          Pause │    │
//	     │ Stop                           ▼    │
//	     │                           ┌──────────┐
//	     └───────────────────────────│  Paused  │
//	                                 └──────────┘
//
// There is no mid-clip resume: Play from Paused restarts the clip.
// SetClip stops whatever is playing.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a clip is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}
