package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var footer string
	switch {
	case m.err != nil:
		footer = errorStyle.Render("Error: " + m.err.Error())
	case m.loading:
		footer = statusStyle.Render("loading...")
	default:
		footer = statusStyle.Render(m.status)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.treatments.View()),
		panelStyle.Render(m.viewSelected()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("adhere · "+m.subjectID),
		body,
		footer,
		m.help.View(m.keys),
	)
}

func (m Model) viewSelected() string {
	entry, ok := m.treatments.Selected()
	if !ok {
		return "Nothing to show yet."
	}
	title := entry.Treatment.Type
	if entry.Treatment.Label != "" {
		title = entry.Treatment.Label + " (" + entry.Treatment.Type + ")"
	}
	return m.renderer.Summary(title, entry.Summary)
}
