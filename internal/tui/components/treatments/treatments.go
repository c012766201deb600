package treatments

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/adhere/internal/tracker"
)

// ToggleMsg asks the parent model to flip today's check-in for Type.
type ToggleMsg struct {
	Type string
}

type Item struct {
	Entry tracker.TreatmentSummary
}

func (i Item) Title() string {
	if i.Entry.Treatment.Label != "" {
		return i.Entry.Treatment.Label
	}
	return i.Entry.Treatment.Type
}

func (i Item) Description() string {
	s := i.Entry.Summary
	return fmt.Sprintf("%s | streak %d | %d%%", i.Entry.Treatment.Kind, s.Streak, s.AdherenceRate)
}

func (i Item) FilterValue() string { return i.Entry.Treatment.Type }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t/space", "toggle today"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []tracker.TreatmentSummary, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Treatments"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	l.SetShowStatusBar(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func toItems(entries []tracker.TreatmentSummary) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

// SetEntries replaces the items, keeping the cursor where it was when possible.
func (m *Model) SetEntries(entries []tracker.TreatmentSummary) {
	idx := m.list.Index()
	m.list.SetItems(toItems(entries))
	if idx < len(entries) {
		m.list.Select(idx)
	}
}

// Selected returns the highlighted entry.
func (m Model) Selected() (tracker.TreatmentSummary, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return tracker.TreatmentSummary{}, false
	}
	return i.Entry, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Toggle) {
			if e, ok := m.Selected(); ok {
				t := e.Treatment.Type
				return m, func() tea.Msg { return ToggleMsg{Type: t} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No active treatments.\n  Add one with 'adhere treatment add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
