package adherence

import (
	"errors"
	"testing"
	"time"
)

func TestBuildCalendarGrid_FullWeek(t *testing.T) {
	today := MustParseDate("2025-06-10") // Tuesday
	records := Records{}
	for d := MustParseDate("2025-06-04"); !d.After(today); d = d.AddDays(1) {
		records[d] = true
	}

	grid, err := BuildCalendarGrid(records, today, 7, AlignToWindow)
	if err != nil {
		t.Fatalf("BuildCalendarGrid() error = %v", err)
	}
	if len(grid.Weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(grid.Weeks))
	}
	for i, c := range grid.Weeks[0] {
		if c.State != CellTaken {
			t.Errorf("cell %d (%s) state = %v, want taken", i, c.Date, c.State)
		}
	}
	last := grid.Weeks[0][6]
	if !last.Date.Equal(today) {
		t.Errorf("last cell date = %s, want %s", last.Date, today)
	}
	if !grid.Start.Equal(MustParseDate("2025-06-04")) {
		t.Errorf("grid start = %s, want 2025-06-04", grid.Start)
	}
}

func TestBuildCalendarGrid_NoRecords(t *testing.T) {
	today := MustParseDate("2025-06-10")
	grid, err := BuildCalendarGrid(nil, today, 7, AlignToWindow)
	if err != nil {
		t.Fatalf("BuildCalendarGrid() error = %v", err)
	}
	for _, c := range grid.Cells() {
		if c.State != CellMissed {
			t.Errorf("cell %s state = %v, want missed", c.Date, c.State)
		}
	}
}

func TestBuildCalendarGrid_DefaultWindow(t *testing.T) {
	today := MustParseDate("2025-06-10")
	grid, err := BuildCalendarGrid(Records{}, today, 84, AlignToWindow)
	if err != nil {
		t.Fatalf("BuildCalendarGrid() error = %v", err)
	}
	if len(grid.Weeks) != 12 {
		t.Errorf("expected 12 weeks, got %d", len(grid.Weeks))
	}
	cells := grid.Cells()
	if len(cells)%7 != 0 {
		t.Errorf("cell count %d is not a multiple of 7", len(cells))
	}
	if !cells[len(cells)-1].Date.Equal(today) {
		t.Errorf("last cell = %s, want %s", cells[len(cells)-1].Date, today)
	}
	if got := cells[0].Date.DaysUntil(today); got != 83 {
		t.Errorf("first cell is %d days before today, want 83", got)
	}
}

func TestBuildCalendarGrid_WeekdayAlignment(t *testing.T) {
	today := MustParseDate("2025-06-10") // Tuesday; a 7 day window starts on Wednesday 06-04
	records := recordsOf(map[string]bool{
		"2025-06-04": true,
		"2025-06-10": true,
	})

	grid, err := BuildCalendarGrid(records, today, 7, StartOn(time.Monday))
	if err != nil {
		t.Fatalf("BuildCalendarGrid() error = %v", err)
	}
	if len(grid.Weeks) != 2 {
		t.Fatalf("expected 2 weeks with padding, got %d", len(grid.Weeks))
	}

	for _, w := range grid.Weeks {
		if w[0].Date.Weekday() != time.Monday {
			t.Errorf("row starts on %s, want Monday", w[0].Date.Weekday())
		}
	}

	first := grid.Weeks[0]
	// Monday 06-02 and Tuesday 06-03 pad the first row.
	for i := 0; i < 2; i++ {
		if !first[i].Placeholder || first[i].State != CellFuture {
			t.Errorf("cell %d = %+v, want future placeholder", i, first[i])
		}
	}
	if first[2].Placeholder || first[2].State != CellTaken {
		t.Errorf("first window day = %+v, want taken", first[2])
	}

	second := grid.Weeks[1]
	if !second[1].Date.Equal(today) || second[1].State != CellTaken {
		t.Errorf("today cell = %+v, want taken on %s", second[1], today)
	}
	for i := 2; i < 7; i++ {
		if !second[i].Date.After(today) || second[i].State != CellFuture || second[i].Placeholder {
			t.Errorf("cell after today = %+v, want real future day", second[i])
		}
	}
	if !grid.End.Equal(today) || !grid.Start.Equal(MustParseDate("2025-06-04")) {
		t.Errorf("grid bounds = %s..%s, want 2025-06-04..%s", grid.Start, grid.End, today)
	}
}

func TestBuildCalendarGrid_AlignedStartNeedsNoPadding(t *testing.T) {
	today := MustParseDate("2025-06-15") // Sunday; window of 14 starts on Monday 06-02
	grid, err := BuildCalendarGrid(Records{}, today, 14, StartOn(time.Monday))
	if err != nil {
		t.Fatalf("BuildCalendarGrid() error = %v", err)
	}
	if len(grid.Weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(grid.Weeks))
	}
	for _, c := range grid.Cells() {
		if c.Placeholder {
			t.Errorf("unexpected placeholder at %s", c.Date)
		}
	}
	cells := grid.Cells()
	if !cells[len(cells)-1].Date.Equal(today) {
		t.Errorf("last cell = %s, want %s", cells[len(cells)-1].Date, today)
	}
}

func TestBuildCalendarGrid_FutureRecordsStayFuture(t *testing.T) {
	today := MustParseDate("2025-06-10")
	records := recordsOf(map[string]bool{
		"2025-06-11": true,
		"2025-06-12": false,
		"2025-06-13": true,
	})

	for ws := AlignToWindow; ws <= StartOn(time.Saturday); ws++ {
		grid, err := BuildCalendarGrid(records, today, 28, ws)
		if err != nil {
			t.Fatalf("BuildCalendarGrid(%s) error = %v", ws, err)
		}
		cells := grid.Cells()
		if len(cells)%7 != 0 {
			t.Errorf("week start %s: %d cells is not a multiple of 7", ws, len(cells))
		}
		windowCells := 0
		for _, c := range cells {
			if c.Date.After(today) && c.State != CellFuture {
				t.Errorf("week start %s: cell %s after today has state %v", ws, c.Date, c.State)
			}
			if !c.Placeholder && !c.Date.After(today) {
				windowCells++
			}
		}
		if windowCells != 28 {
			t.Errorf("week start %s: %d real window days, want 28", ws, windowCells)
		}
	}
}

func TestBuildCalendarGrid_DistinguishNoData(t *testing.T) {
	today := MustParseDate("2025-06-10")
	records := recordsOf(map[string]bool{
		"2025-06-09": false,
		"2025-06-10": true,
	})

	grid, err := BuildCalendarGridWithOptions(records, today, Options{WindowDays: 7, DistinguishNoData: true})
	if err != nil {
		t.Fatalf("BuildCalendarGridWithOptions() error = %v", err)
	}
	cells := grid.Cells()
	want := []CellState{CellNoData, CellNoData, CellNoData, CellNoData, CellNoData, CellMissed, CellTaken}
	for i, c := range cells {
		if c.State != want[i] {
			t.Errorf("cell %s state = %v, want %v", c.Date, c.State, want[i])
		}
	}
}

func TestBuildCalendarGrid_InvalidWindow(t *testing.T) {
	today := MustParseDate("2025-06-10")
	for _, window := range []int{0, -7, 10} {
		_, err := BuildCalendarGrid(Records{}, today, window, AlignToWindow)
		if !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("BuildCalendarGrid(window=%d) error = %v, want ErrInvalidWindow", window, err)
		}
	}
}

func TestParseWeekStart(t *testing.T) {
	tests := []struct {
		input   string
		want    WeekStart
		wantErr bool
	}{
		{input: "", want: AlignToWindow},
		{input: "window", want: AlignToWindow},
		{input: "Monday", want: StartOn(time.Monday)},
		{input: "sun", want: StartOn(time.Sunday)},
		{input: " sat ", want: StartOn(time.Saturday)},
		{input: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekStart(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekStart(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekStart(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
