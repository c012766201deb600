// Package tui is the interactive dashboard for one subject's treatments.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/adhere/internal/models"
	"github.com/julianstephens/adhere/internal/render"
	"github.com/julianstephens/adhere/internal/tracker"
	"github.com/julianstephens/adhere/internal/tui/components/treatments"
)

const requestTimeout = 5 * time.Second

// Service is the part of tracker.Service the dashboard drives.
type Service interface {
	Overview(ctx context.Context, subjectID string) ([]tracker.TreatmentSummary, error)
	ToggleToday(ctx context.Context, subjectID, treatmentType string) (models.Checkin, error)
}

type overviewMsg struct {
	entries []tracker.TreatmentSummary
	err     error
}

type toggledMsg struct {
	checkin models.Checkin
	err     error
}

type Model struct {
	svc       Service
	subjectID string
	renderer  *render.Renderer

	keys       KeyMap
	help       help.Model
	treatments treatments.Model

	entries  []tracker.TreatmentSummary
	status   string
	err      error
	loading  bool
	quitting bool
	width    int
	height   int
}

func NewModel(svc Service, subjectID string, r *render.Renderer) Model {
	return Model{
		svc:        svc,
		subjectID:  subjectID,
		renderer:   r,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		treatments: treatments.New(nil, 0, 0),
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	svc, subject := m.svc, m.subjectID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entries, err := svc.Overview(ctx, subject)
		return overviewMsg{entries: entries, err: err}
	}
}

func (m Model) toggle(treatmentType string) tea.Cmd {
	svc, subject := m.svc, m.subjectID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		c, err := svc.ToggleToday(ctx, subject, treatmentType)
		return toggledMsg{checkin: c, err: err}
	}
}

// Run starts the dashboard on the alternate screen.
func Run(svc Service, subjectID string, r *render.Renderer) error {
	_, err := tea.NewProgram(NewModel(svc, subjectID, r), tea.WithAltScreen()).Run()
	return err
}
