package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/poliorcetics/seven-families/internal/session"
)

// SessionMessage is implemented by messages forwarded from a session
// subscription. ID lets the model drop messages of an older game.
type SessionMessage interface {
	tea.Msg
	SessionID() string
}

// SessionStateMsg reports a state transition.
type SessionStateMsg struct {
	ID     string
	Change session.StateChange
}

func (m SessionStateMsg) SessionID() string { return m.ID }

// SessionCountdownMsg reports the time left before the next item.
type SessionCountdownMsg struct {
	ID        string
	Remaining time.Duration
}

func (m SessionCountdownMsg) SessionID() string { return m.ID }

// SessionClosedMsg is sent once the session has been closed.
type SessionClosedMsg struct {
	ID string
}

func (m SessionClosedMsg) SessionID() string { return m.ID }
