package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 2
	footerHeight = 3
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	botStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n%s",
		titleStyle.Render("Court Chat"),
		m.viewport.View(),
		m.statusLine(),
		m.textinput.View(),
	)
}

func (m Model) statusLine() string {
	n := m.conv.Pending()
	switch {
	case n == 1:
		return m.spinner.View() + statusStyle.Render(" Waiting for a reply...")
	case n > 1:
		return m.spinner.View() + statusStyle.Render(fmt.Sprintf(" Waiting for %d replies...", n))
	}
	return statusStyle.Render(" ")
}
