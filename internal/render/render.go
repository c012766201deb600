// Package render draws adherence summaries for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/julianstephens/adhere/internal/adherence"
)

type glyphs struct {
	taken, missed, noData, future, pad string
}

var (
	plainGlyphs = glyphs{taken: "#", missed: ".", noData: "?", future: " ", pad: " "}
	colorGlyphs = glyphs{taken: "■", missed: "■", noData: "□", future: "·", pad: " "}
)

// Renderer formats summaries. The zero value is not usable; use New or Auto.
type Renderer struct {
	plain  bool
	glyphs glyphs

	taken   lipgloss.Style
	missed  lipgloss.Style
	noData  lipgloss.Style
	future  lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	title   lipgloss.Style
	streak  lipgloss.Style
	percent lipgloss.Style
}

// New returns a renderer writing to w. Plain output uses ASCII glyphs and no styling.
func New(w io.Writer, plain bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if plain {
		lr.SetColorProfile(termenv.Ascii)
	}
	r := &Renderer{
		plain:   plain,
		glyphs:  colorGlyphs,
		taken:   lr.NewStyle().Foreground(lipgloss.Color("42")),
		missed:  lr.NewStyle().Foreground(lipgloss.Color("160")),
		noData:  lr.NewStyle().Foreground(lipgloss.Color("240")),
		future:  lr.NewStyle().Foreground(lipgloss.Color("238")),
		header:  lr.NewStyle().Foreground(lipgloss.Color("245")),
		label:   lr.NewStyle().Foreground(lipgloss.Color("240")),
		title:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		streak:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		percent: lr.NewStyle().Bold(true),
	}
	if plain {
		bare := lr.NewStyle()
		r.glyphs = plainGlyphs
		r.taken, r.missed, r.noData, r.future = bare, bare, bare, bare
		r.header, r.label, r.title, r.streak, r.percent = bare, bare, bare, bare, bare
	}
	return r
}

// Auto picks plain output when w is not a colour-capable terminal.
func Auto(w io.Writer) *Renderer {
	return New(w, lipgloss.NewRenderer(w).ColorProfile() == termenv.Ascii)
}

func (r *Renderer) Plain() bool { return r.plain }

func (r *Renderer) Title(s string) string {
	return r.title.Render(s)
}

// Status is the one-line streak and rate summary.
func (r *Renderer) Status(s adherence.Summary) string {
	days := "days"
	if s.Streak == 1 {
		days = "day"
	}
	return fmt.Sprintf("streak %s %s  longest %d  adherence %s (%d of %d days)",
		r.streak.Render(fmt.Sprintf("%d", s.Streak)), days,
		s.LongestStreak,
		r.percent.Render(fmt.Sprintf("%d%%", s.AdherenceRate)),
		s.TakenDays, s.WindowDays)
}

// Heatmap renders one row per week under a weekday header. Each row is
// labelled with the date of its first column.
func (r *Renderer) Heatmap(g adherence.Grid) string {
	if len(g.Weeks) == 0 {
		return ""
	}
	var b strings.Builder

	labelWidth := len("Jan 02") + 1
	head := make([]string, 7)
	for i, c := range g.Weeks[0] {
		head[i] = c.Date.Weekday().String()[:2]
	}
	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(r.header.Render(strings.Join(head, " ")))
	b.WriteByte('\n')

	for _, w := range g.Weeks {
		b.WriteString(r.label.Render(w[0].Date.Time(time.UTC).Format("Jan 02")))
		b.WriteByte(' ')
		cells := make([]string, 7)
		for i, c := range w {
			cells[i] = r.cell(c)
		}
		// Glyphs sit under the first letter of each weekday
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) cell(c adherence.Cell) string {
	if c.Placeholder {
		return r.glyphs.pad
	}
	switch c.State {
	case adherence.CellTaken:
		return r.taken.Render(r.glyphs.taken)
	case adherence.CellMissed:
		return r.missed.Render(r.glyphs.missed)
	case adherence.CellNoData:
		return r.noData.Render(r.glyphs.noData)
	default:
		return r.future.Render(r.glyphs.future)
	}
}

// Legend explains the heatmap glyphs. The no-data entry is shown only when
// the grid distinguishes it.
func (r *Renderer) Legend(withNoData bool) string {
	parts := []string{
		r.taken.Render(r.glyphs.taken) + " taken",
		r.missed.Render(r.glyphs.missed) + " missed",
	}
	if withNoData {
		parts = append(parts, r.noData.Render(r.glyphs.noData)+" no data")
	}
	return r.label.Render(strings.Join(parts, "   "))
}

// Summary renders a titled block: status line, heatmap and legend.
func (r *Renderer) Summary(title string, s adherence.Summary) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(r.Title(title))
		b.WriteByte('\n')
	}
	b.WriteString(r.Status(s))
	b.WriteString("\n\n")
	b.WriteString(r.Heatmap(s.Grid))
	b.WriteByte('\n')
	b.WriteString(r.Legend(hasNoData(s.Grid)))
	b.WriteByte('\n')
	return b.String()
}

func hasNoData(g adherence.Grid) bool {
	for _, c := range g.Cells() {
		if c.State == adherence.CellNoData {
			return true
		}
	}
	return false
}
