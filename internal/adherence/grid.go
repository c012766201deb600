package adherence

import (
	"fmt"
	"strings"
	"time"
)

// CellState is the rendered status of one calendar day.
type CellState int

const (
	CellMissed CellState = iota
	CellTaken
	CellFuture
	// CellNoData is a past day with no record at all. It is only emitted
	// when Options.DistinguishNoData is set; otherwise such days are Missed.
	CellNoData
)

func (s CellState) String() string {
	switch s {
	case CellTaken:
		return "taken"
	case CellMissed:
		return "missed"
	case CellFuture:
		return "future"
	case CellNoData:
		return "no_data"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CellState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "taken":
		*s = CellTaken
	case "missed":
		*s = CellMissed
	case "future":
		*s = CellFuture
	case "no_data":
		*s = CellNoData
	default:
		return fmt.Errorf("unknown cell state %q", b)
	}
	return nil
}

// Cell is one day in the calendar grid. Placeholder cells pad the first
// week so that columns line up by weekday; they are not real window days
// and carry the date they stand in for.
type Cell struct {
	Date        Date      `json:"date"`
	State       CellState `json:"state"`
	Placeholder bool      `json:"placeholder,omitempty"`
}

// Week is one row of the grid.
type Week [7]Cell

// Grid is the rolling calendar heatmap. Start and End bound the real window
// days; End is always today. With AlignToWindow the last cell is today. With
// a weekday WeekStart the last row is filled out past today with
// CellFuture cells, so the last cell can be after End.
type Grid struct {
	Weeks []Week `json:"weeks"`
	Start Date   `json:"start"`
	End   Date   `json:"end"`
}

// Cells flattens the grid in row order.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, len(g.Weeks)*7)
	for _, w := range g.Weeks {
		cells = append(cells, w[:]...)
	}
	return cells
}

// WeekStart selects the weekday each grid row begins on. The zero value,
// AlignToWindow, starts rows on the first day of the window so the grid
// never needs padding.
type WeekStart int

const AlignToWindow WeekStart = 0

// StartOn returns a WeekStart that begins every row on wd.
func StartOn(wd time.Weekday) WeekStart {
	return WeekStart(int(wd) + 1)
}

// Weekday returns the configured weekday, or false for AlignToWindow.
func (w WeekStart) Weekday() (time.Weekday, bool) {
	if w <= 0 || w > 7 {
		return 0, false
	}
	return time.Weekday(int(w) - 1), true
}

func (w WeekStart) String() string {
	if wd, ok := w.Weekday(); ok {
		return strings.ToLower(wd.String())
	}
	return "window"
}

// ParseWeekStart accepts a weekday name ("monday", "mon") or "window".
func ParseWeekStart(s string) (WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "window":
		return AlignToWindow, nil
	case "sun", "sunday":
		return StartOn(time.Sunday), nil
	case "mon", "monday":
		return StartOn(time.Monday), nil
	case "tue", "tuesday":
		return StartOn(time.Tuesday), nil
	case "wed", "wednesday":
		return StartOn(time.Wednesday), nil
	case "thu", "thursday":
		return StartOn(time.Thursday), nil
	case "fri", "friday":
		return StartOn(time.Friday), nil
	case "sat", "saturday":
		return StartOn(time.Saturday), nil
	}
	return AlignToWindow, fmt.Errorf("invalid week start: %s", s)
}

// WindowStart returns the first day of a window of windowDays ending on
// today.
func WindowStart(today Date, windowDays int) Date {
	return today.AddDays(-(windowDays - 1))
}

// BuildCalendarGrid lays out the windowDays days ending on today as rows of
// seven cells. windowDays must be a positive multiple of 7.
func BuildCalendarGrid(records Records, today Date, windowDays int, weekStart WeekStart) (Grid, error) {
	return BuildCalendarGridWithOptions(records, today, Options{
		WindowDays: windowDays,
		WeekStart:  weekStart,
	})
}

// BuildCalendarGridWithOptions is BuildCalendarGrid with the full option
// set.
func BuildCalendarGridWithOptions(records Records, today Date, opts Options) (Grid, error) {
	if err := ValidateWindow(opts.WindowDays, true); err != nil {
		return Grid{}, err
	}

	start := WindowStart(today, opts.WindowDays)

	lead := 0
	if wd, ok := opts.WeekStart.Weekday(); ok {
		lead = (int(start.Weekday()) - int(wd) + 7) % 7
	}

	total := lead + opts.WindowDays
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]Cell, 0, total)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{
			Date:        start.AddDays(i - lead),
			State:       CellFuture,
			Placeholder: true,
		})
	}
	for d := start; len(cells) < total; d = d.AddDays(1) {
		cells = append(cells, Cell{Date: d, State: cellState(records, d, today, opts.DistinguishNoData)})
	}

	weeks := make([]Week, total/7)
	for i := range weeks {
		copy(weeks[i][:], cells[i*7:(i+1)*7])
	}

	return Grid{Weeks: weeks, Start: start, End: today}, nil
}

func cellState(records Records, d, today Date, distinguishNoData bool) CellState {
	if d.After(today) {
		return CellFuture
	}
	switch {
	case distinguishNoData && !records.Has(d):
		return CellNoData
	case records.Taken(d):
		return CellTaken
	default:
		return CellMissed
	}
}
