package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive offer-sheet session and blocks until the
// user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
