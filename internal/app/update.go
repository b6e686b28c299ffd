package app

import tea "github.com/charmbracelet/bubbletea"

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionMessage:
		return m.handleSessionMsg(msg)
	}
	return m, nil
}
