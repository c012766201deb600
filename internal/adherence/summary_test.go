package adherence

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestComputeAdherenceRate(t *testing.T) {
	today := MustParseDate("2025-06-10")

	tests := []struct {
		name    string
		records Records
		window  int
		want    int
	}{
		{
			name: "every day taken",
			records: recordsOf(map[string]bool{
				"2025-06-04": true, "2025-06-05": true, "2025-06-06": true, "2025-06-07": true,
				"2025-06-08": true, "2025-06-09": true, "2025-06-10": true,
			}),
			window: 7,
			want:   100,
		},
		{
			name:    "no records",
			records: Records{},
			window:  7,
			want:    0,
		},
		{
			name: "explicit misses stay in the denominator",
			records: recordsOf(map[string]bool{
				"2025-06-09": false,
				"2025-06-10": true,
			}),
			window: 7,
			want:   14, // 1/7 = 14.28
		},
		{
			name: "rounds half up",
			records: recordsOf(map[string]bool{
				"2025-06-10": true,
			}),
			window: 8,
			want:   13, // 1/8 = 12.5
		},
		{
			name: "records outside the window are ignored",
			records: recordsOf(map[string]bool{
				"2025-06-03": true,
				"2025-06-11": true,
				"2025-06-10": true,
			}),
			window: 7,
			want:   14,
		},
		{
			name: "six of seven",
			records: recordsOf(map[string]bool{
				"2025-06-04": true, "2025-06-05": true, "2025-06-06": true,
				"2025-06-08": true, "2025-06-09": true, "2025-06-10": true,
			}),
			window: 7,
			want:   86, // 85.71
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeAdherenceRate(tt.records, today, tt.window)
			if err != nil {
				t.Fatalf("ComputeAdherenceRate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeAdherenceRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeAdherenceRate_InvalidWindow(t *testing.T) {
	for _, window := range []int{0, -1} {
		if _, err := ComputeAdherenceRate(Records{}, MustParseDate("2025-06-10"), window); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("ComputeAdherenceRate(window=%d) error = %v, want ErrInvalidWindow", window, err)
		}
	}
}

func TestComputeAdherenceRate_Monotonic(t *testing.T) {
	today := MustParseDate("2025-06-10")
	records := Records{}
	prev := 0
	// Add taken days in a scrambled order and check the rate never drops.
	for _, offset := range []int{5, 0, 27, 13, 1, 2, 20, 8, 3, 26} {
		records[today.AddDays(-offset)] = true
		rate, err := ComputeAdherenceRate(records, today, 28)
		if err != nil {
			t.Fatalf("ComputeAdherenceRate() error = %v", err)
		}
		if rate < prev {
			t.Fatalf("rate dropped from %d to %d after adding offset %d", prev, rate, offset)
		}
		if rate < 0 || rate > 100 {
			t.Fatalf("rate %d out of range", rate)
		}
		prev = rate
	}
}

func TestSummarize(t *testing.T) {
	today := MustParseDate("2025-06-10")
	records := recordsOf(map[string]bool{
		"2025-06-01": true,
		"2025-06-02": true,
		"2025-06-03": true,
		"2025-06-04": true,
		"2025-06-08": true,
		"2025-06-09": true,
		"2025-06-10": true,
	})

	summary, err := Summarize(records, today, Options{WindowDays: 14, WeekStart: StartOn(time.Monday)})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Streak != 3 {
		t.Errorf("Streak = %d, want 3", summary.Streak)
	}
	if summary.LongestStreak != 4 {
		t.Errorf("LongestStreak = %d, want 4", summary.LongestStreak)
	}
	if summary.TakenDays != 7 {
		t.Errorf("TakenDays = %d, want 7", summary.TakenDays)
	}
	if summary.AdherenceRate != 50 {
		t.Errorf("AdherenceRate = %d, want 50", summary.AdherenceRate)
	}
	if !summary.Grid.End.Equal(today) {
		t.Errorf("Grid.End = %s, want %s", summary.Grid.End, today)
	}
	if summary.WindowDays != 14 {
		t.Errorf("WindowDays = %d, want 14", summary.WindowDays)
	}

	again, err := Summarize(records, today, Options{WindowDays: 14, WeekStart: StartOn(time.Monday)})
	if err != nil {
		t.Fatalf("Summarize() second call error = %v", err)
	}
	if !reflect.DeepEqual(summary, again) {
		t.Error("Summarize() is not idempotent")
	}
}

func TestSummarize_RequiresWindow(t *testing.T) {
	_, err := Summarize(Records{}, MustParseDate("2025-06-10"), Options{})
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Summarize() with no window error = %v, want ErrInvalidWindow", err)
	}
}

func TestSummary_JSON(t *testing.T) {
	today := MustParseDate("2025-06-10")
	summary, err := Summarize(recordsOf(map[string]bool{"2025-06-10": true}), today, Options{WindowDays: 7})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	b, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded struct {
		Today        string `json:"today"`
		Streak       int    `json:"streak"`
		CalendarGrid struct {
			Weeks [][]struct {
				Date  string `json:"date"`
				State string `json:"state"`
			} `json:"weeks"`
		} `json:"calendar_grid"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.Today != "2025-06-10" {
		t.Errorf("today = %q, want 2025-06-10", decoded.Today)
	}
	last := decoded.CalendarGrid.Weeks[0][6]
	if last.Date != "2025-06-10" || last.State != "taken" {
		t.Errorf("last cell = %+v, want taken on 2025-06-10", last)
	}
}

func TestSummary_JSONRoundTrip(t *testing.T) {
	summary, err := Summarize(
		recordsOf(map[string]bool{"2025-06-09": true, "2025-06-10": true, "2025-06-05": false}),
		MustParseDate("2025-06-10"),
		Options{WindowDays: 14, WeekStart: StartOn(time.Monday), DistinguishNoData: true},
	)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	b, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded Summary
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	again, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(again) != string(b) {
		t.Errorf("round trip changed the summary:\n got %s\nwant %s", again, b)
	}
	if decoded.Streak != 2 || !decoded.Today.Equal(summary.Today) {
		t.Errorf("decoded = streak %d today %s", decoded.Streak, decoded.Today)
	}
}

func TestCellState_UnmarshalTextRejectsUnknown(t *testing.T) {
	var s CellState
	if err := s.UnmarshalText([]byte("skipped")); err == nil {
		t.Error("UnmarshalText(skipped) should fail")
	}
}
