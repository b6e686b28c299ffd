// Package styles holds the colors and lipgloss styles of the interface.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Primary   lipgloss.Color // title, current family
	Secondary lipgloss.Color // countdown, gradient end

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color // checked families, game over
	Error   lipgloss.Color
	Warning lipgloss.Color // paused

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Family  lipgloss.Style // family being announced
	Item    lipgloss.Style // item being announced
	Cursor  lipgloss.Style
	Checked lipgloss.Style
	Key     lipgloss.Style // key names in help lines
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#f472b6"),
	Secondary: lipgloss.Color("#38bdf8"),

	FgBase:   lipgloss.Color("#e0e0e0"),
	FgMuted:  lipgloss.Color("#9a9a9a"),
	FgSubtle: lipgloss.Color("#5f5f5f"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#5f5f5f"),
	BorderFocus: lipgloss.Color("#f472b6"),

	Success: lipgloss.Color("#4ade80"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#fbbf24"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Family: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Item: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Checked: lipgloss.NewStyle().Foreground(t.Success),
		Key:     lipgloss.NewStyle().Foreground(t.Secondary),
		Success: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
