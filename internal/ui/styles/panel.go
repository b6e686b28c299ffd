package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered box used for both screens. The game
// panel is drawn focused while a clip or countdown is active.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 3)
}
