package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/icons"
	"github.com/poliorcetics/seven-families/internal/keymap"
	"github.com/poliorcetics/seven-families/internal/session"
	"github.com/poliorcetics/seven-families/internal/ui/styles"
)

const (
	title    = "Les 7 familles"
	barWidth = 30
	minWidth = 20
)

// View renders the application UI.
func (m Model) View() string {
	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.screen == ScreenGame:
		body = m.renderGame()
	default:
		body = m.renderSelection()
	}

	panel := styles.PanelStyle(m.screen == ScreenGame && m.snap.Kind.CanPause()).Render(body)
	if m.Width == 0 || m.Height == 0 {
		return panel
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.truncate(panel))
}

// truncate cuts every line to the terminal width.
func (m Model) truncate(s string) string {
	if m.Width < minWidth {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.Width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSelection() string {
	s := styles.T().S()
	var b strings.Builder

	b.WriteString(styles.Banner(title))
	b.WriteString("\n\n")
	b.WriteString(s.Title.Render("Choisis les familles"))
	b.WriteString("\n\n")

	for i, cat := range m.families {
		box := s.Muted.Render(icons.Checkbox(false))
		if m.selected[cat.ID] {
			box = s.Checked.Render(icons.Checkbox(true))
		}
		name := lipgloss.NewStyle().Foreground(styles.FamilyColor(i, len(m.families))).Render(cat.Name)
		line := fmt.Sprintf("%s %s %s", box, name, s.Subtle.Render(fmt.Sprintf("(%d)", len(cat.Items))))
		if i == m.cursor {
			line = s.Cursor.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("Temps entre deux phrases : %s", formatSeconds(m.duration))))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.hints(keymap.ActionStartGame, keymap.ActionToggle, keymap.ActionHelp, keymap.ActionQuit))
	return b.String()
}

func (m Model) renderGame() string {
	s := styles.T().S()
	snap := m.snap
	var b strings.Builder

	b.WriteString(styles.Banner(title))
	b.WriteString("\n\n")

	switch snap.Kind {
	case session.KindAwaitingPermission:
		b.WriteString(s.Title.Render("Lancer la partie"))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("%d phrases à écouter", m.total)))
		b.WriteString("\n\n")
		b.WriteString(m.renderDuration())

	case session.KindPlaying, session.KindPlayingPaused:
		b.WriteString(m.renderItem())
		if snap.Kind == session.KindPlayingPaused {
			b.WriteString("\n")
			b.WriteString(s.Warning.Render(icons.Paused() + "Pause"))
		}

	case session.KindWaiting, session.KindWaitingPaused:
		b.WriteString(m.renderItem())
		b.WriteString("\n\n")
		b.WriteString(icons.Timer() + fmt.Sprintf("Phrase suivante dans %s", formatSeconds(snap.Remaining)))
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(ratio(snap.Remaining, snap.Duration)))
		if snap.Kind == session.KindWaitingPaused {
			b.WriteString("\n")
			b.WriteString(s.Warning.Render(icons.Paused() + "Pause"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.renderDuration())

	case session.KindFinished:
		b.WriteString(s.Success.Render(icons.Finished() + "Jeu terminé !"))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("%d phrases écoutées", m.total)))
	}

	if m.player.Muted() {
		b.WriteString("\n")
		b.WriteString(s.Warning.Render("Son coupé"))
	}
	b.WriteString("\n\n")
	if snap.Kind != session.KindAwaitingPermission {
		b.WriteString(s.Subtle.Render(fmt.Sprintf("Phrase %d / %d", m.total-snap.ItemsLeft, m.total)))
		b.WriteString("\n")
	}
	b.WriteString(m.gameHints())
	return b.String()
}

// renderItem shows the family being announced, then the item. While
// waiting, the last item stays on screen dimmed.
func (m Model) renderItem() string {
	s := styles.T().S()
	item := m.last
	if item.ID == "" {
		return ""
	}
	family := string(item.Category)
	if cat, ok := m.catalog.Category(item.Category); ok {
		family = cat.Name
	}

	if !m.snap.HasItem {
		return s.Muted.Render(family + " · " + item.Name)
	}
	announce := m.familyStyle(item.Category).Render(icons.Playing() + family)
	if m.snap.Phase == session.PhaseCategory {
		return announce
	}
	return announce + s.Muted.Render(" · ") + s.Item.Render(item.Name)
}

// familyStyle colors a family the way the selection list does.
func (m Model) familyStyle(id catalog.CategoryID) lipgloss.Style {
	s := styles.T().S()
	for i, cat := range m.families {
		if cat.ID == id {
			return s.Family.Foreground(styles.FamilyColor(i, len(m.families)))
		}
	}
	return s.Family
}

func (m Model) renderDuration() string {
	s := styles.T().S()
	d := m.snap.Duration
	span := m.bounds.Max - m.bounds.Min
	label := fmt.Sprintf("Temps entre deux phrases : %s", formatSeconds(d))
	return s.Muted.Render(label) + "\n" + m.bar.ViewAs(ratio(d-m.bounds.Min, span))
}

func (m Model) gameHints() string {
	switch m.snap.Kind {
	case session.KindAwaitingPermission:
		return m.hints(keymap.ActionGrantPermission, keymap.ActionDurationDown, keymap.ActionDurationUp, keymap.ActionBackToSelection)
	case session.KindFinished:
		return m.hints(keymap.ActionBackToSelection)
	default:
		return m.hints(keymap.ActionPlayPause, keymap.ActionNext, keymap.ActionMute, keymap.ActionBackToSelection)
	}
}

// hints renders "key description" pairs for the given actions.
func (m Model) hints(actions ...keymap.Action) string {
	s := styles.T().S()
	var parts []string
	for _, a := range actions {
		keys := m.keys.KeysFor(m.keyContext(), a)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, s.Key.Render(keyName(keys[0]))+" "+s.Muted.Render(describe(a)))
	}
	return strings.Join(parts, s.Subtle.Render("  ·  "))
}

func (m Model) renderHelp() string {
	s := styles.T().S()
	ctx := m.keyContext()

	var b strings.Builder
	b.WriteString(s.Title.Render("Aide"))
	b.WriteString("\n\n")
	for _, binding := range keymap.ForScreen(ctx) {
		names := make([]string, len(binding.Keys))
		for i, k := range binding.Keys {
			names[i] = keyName(k)
		}
		fmt.Fprintf(&b, "%s  %s\n", s.Key.Render(fmt.Sprintf("%-14s", strings.Join(names, ", "))), binding.Description)
	}
	b.WriteString("\n")
	b.WriteString(s.Subtle.Render("Appuie sur une touche pour fermer"))
	return b.String()
}

func describe(a keymap.Action) string {
	for _, b := range keymap.All {
		if b.Action == a {
			return b.Description
		}
	}
	return string(a)
}

func keyName(k string) string {
	switch k {
	case " ":
		return "espace"
	case "enter":
		return "entrée"
	case "esc":
		return "échap"
	}
	return k
}

// formatSeconds rounds up so a countdown never shows 0 s before firing.
func formatSeconds(d time.Duration) string {
	secs := (d + time.Second - 1) / time.Second
	return fmt.Sprintf("%d s", max(secs, 0))
}

func ratio(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return min(max(float64(part)/float64(whole), 0), 1)
}
