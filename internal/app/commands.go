package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/poliorcetics/seven-families/internal/errmsg"
	"github.com/poliorcetics/seven-families/internal/notify"
	"github.com/poliorcetics/seven-families/internal/session"
)

// WatchSession waits for the next event of sub and converts it to a tea.Msg.
func WatchSession(id string, sub *session.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return SessionStateMsg{ID: id, Change: e}
		case e := <-sub.Countdown:
			return SessionCountdownMsg{ID: id, Remaining: e.Remaining}
		case <-sub.Done:
			return SessionClosedMsg{ID: id}
		}
	}
}

// runSession feeds timer and audio events back into s until ctx is done
// or the session closes.
func runSession(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		s.Run(ctx)
		return nil
	}
}

func notifyCmd(n notify.Notifier, notif notify.Notification, logger zerolog.Logger) tea.Cmd {
	return func() tea.Msg {
		if _, err := n.Notify(notif); err != nil {
			logger.Warn().Err(err).Msg(string(errmsg.OpNotify))
		}
		return nil
	}
}
