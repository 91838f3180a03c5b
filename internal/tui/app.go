package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the report browser and blocks until the user quits.
func Run(store QueryStore) error {
	p := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
