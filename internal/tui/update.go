package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/adhere/internal/tui/components/treatments"
)

// listWidth is the share of the screen given to the treatment list.
const listWidth = 36

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.treatments.SetSize(listWidth, max(msg.Height-4, 1))
		return m, nil

	case overviewMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			m.treatments.SetEntries(msg.entries)
		}
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		state := "taken"
		if !msg.checkin.CheckedIn {
			state = "not taken"
		}
		m.status = fmt.Sprintf("%s marked %s for %s", msg.checkin.TreatmentType, state, msg.checkin.Day)
		m.err = nil
		return m, m.load()

	case treatments.ToggleMsg:
		return m, m.toggle(msg.Type)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.status = ""
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.treatments, cmd = m.treatments.Update(msg)
	return m, cmd
}
