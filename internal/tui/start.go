package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Start runs the interactive UI until the user quits.
func Start(deps Deps) error {
	model := NewModel(deps)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
