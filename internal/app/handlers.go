package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/keymap"
	"github.com/poliorcetics/seven-families/internal/notify"
	"github.com/poliorcetics/seven-families/internal/pool"
	"github.com/poliorcetics/seven-families/internal/session"
)

const msgNoFamily = "Choisis au moins une famille."

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		// Any key closes the help, quit keys still quit.
		m.showHelp = false
		if !m.keys.Quits(key) {
			return m, nil
		}
	}

	action := m.keys.Resolve(m.keyContext(), key)
	if m.screen == ScreenGame {
		return m.handleGameKey(action)
	}
	return m.handleSelectionKey(action)
}

func (m Model) keyContext() string {
	if m.screen == ScreenGame {
		return keymap.ContextGame
	}
	return keymap.ContextSelection
}

func (m Model) handleGlobal(action keymap.Action) (bool, tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionQuit:
		m.endGame()
		return true, m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		return true, m, nil
	}
	return false, m, nil
}

func (m Model) handleSelectionKey(action keymap.Action) (tea.Model, tea.Cmd) {
	if ok, next, cmd := m.handleGlobal(action); ok {
		return next, cmd
	}

	switch action {
	case keymap.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case keymap.ActionMoveDown:
		if m.cursor < len(m.families)-1 {
			m.cursor++
		}
	case keymap.ActionToggle:
		if len(m.families) > 0 {
			id := m.families[m.cursor].ID
			m.selected[id] = !m.selected[id]
			m.status = ""
		}
	case keymap.ActionSelectAll:
		for _, cat := range m.families {
			m.selected[cat.ID] = true
		}
		m.status = ""
	case keymap.ActionSelectNone:
		clear(m.selected)
	case keymap.ActionStartGame:
		return m.startGame()
	}
	return m, nil
}

func (m Model) handleGameKey(action keymap.Action) (tea.Model, tea.Cmd) {
	if ok, next, cmd := m.handleGlobal(action); ok {
		return next, cmd
	}
	if m.session == nil {
		return m, nil
	}

	kind := m.snap.Kind
	switch action {
	case keymap.ActionGrantPermission:
		if kind.IsTerminal() {
			m.endGame()
			return m, nil
		}
		m.apply(session.PermissionGranted{})
	case keymap.ActionPlayPause:
		switch {
		case kind.CanPause():
			m.apply(session.PauseRequested{})
		case kind.CanResume():
			m.apply(session.ResumeRequested{})
		}
	case keymap.ActionNext:
		m.apply(session.NextRequested{})
	case keymap.ActionDurationDown:
		m.changeDuration(-1)
	case keymap.ActionDurationUp:
		m.changeDuration(+1)
	case keymap.ActionMute:
		muted := !m.player.Muted()
		m.player.SetMuted(muted)
		m.logger.Info().Bool("muted", muted).Msg("sound toggled")
	case keymap.ActionBackToSelection:
		m.endGame()
	}
	return m, nil
}

// apply hands ev to the session and refreshes the snapshot right away so
// the next key press sees the new state.
func (m *Model) apply(ev session.Event) {
	m.session.Handle(ev)
	m.setSnapshot(m.session.Snapshot())
}

func (m *Model) setSnapshot(snap session.Snapshot) {
	m.snap = snap
	if snap.HasItem {
		m.last = snap.Item
	}
}

func (m *Model) changeDuration(delta int) {
	if !m.snap.Kind.CanChangeDuration() {
		return
	}
	secs := int(m.snap.Duration/time.Second) + delta
	m.apply(session.DurationChanged{Seconds: secs})
	m.duration = m.snap.Duration
}

func (m Model) startGame() (tea.Model, tea.Cmd) {
	ids := m.Selected()
	if len(ids) == 0 {
		m.status = msgNoFamily
		return m, nil
	}

	p := pool.FromSelection(m.catalog, ids, m.shuffler)
	s := session.New(p, session.Options{
		Duration: m.duration,
		Bounds:   m.bounds,
		Audio:    m.player,
		Logger:   &m.logger,
	})
	ctx, cancel := context.WithCancel(context.Background())

	m.relay.Attach(s)
	if m.mediaKeys != nil {
		m.mediaKeys.Attach(s)
	}
	m.session = s
	m.sub = s.Subscribe()
	m.cancel = cancel
	m.snap = s.Snapshot()
	m.last = catalog.Item{}
	m.total = p.Len()
	m.playing = nil
	for _, id := range ids {
		if cat, ok := m.catalog.Category(id); ok {
			m.playing = append(m.playing, cat.Name)
		}
	}
	m.screen = ScreenGame
	m.status = ""

	m.logger.Info().Str("session", s.ID()).Int("families", len(ids)).Int("items", m.total).Msg("game started")
	return m, tea.Batch(runSession(ctx, s), WatchSession(s.ID(), m.sub))
}

// endGame closes the running session and goes back to the selection.
func (m *Model) endGame() {
	if m.session != nil {
		m.session.Handle(session.ReturnToSelection{})
		m.relay.Attach(nil)
		if m.mediaKeys != nil {
			m.mediaKeys.Attach(nil)
		}
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.session = nil
	m.sub = nil
	m.cancel = nil
	m.snap = session.Snapshot{}
	m.screen = ScreenSelection
}

func (m Model) handleSessionMsg(msg SessionMessage) (tea.Model, tea.Cmd) {
	if m.session == nil || msg.SessionID() != m.session.ID() {
		return m, nil
	}

	switch msg := msg.(type) {
	case SessionStateMsg:
		m.setSnapshot(msg.Change.Current)
		cmd := WatchSession(msg.ID, m.sub)
		if msg.Change.Current.Kind == session.KindFinished && msg.Change.Previous != session.KindFinished {
			n := notify.GameFinished(m.playing, m.total)
			return m, tea.Batch(cmd, notifyCmd(m.notifier, n, m.logger))
		}
		return m, cmd
	case SessionCountdownMsg:
		m.snap.Remaining = msg.Remaining
		return m, WatchSession(msg.ID, m.sub)
	case SessionClosedMsg:
		return m, nil
	}
	return m, nil
}
