package adherence

// Options configures a summary.
type Options struct {
	// WindowDays is the trailing window length in days. It has no default
	// here; callers pass constants.DefaultWindowDays when unset.
	WindowDays int
	WeekStart  WeekStart
	// DistinguishNoData renders unrecorded past days as CellNoData instead
	// of CellMissed. Both count as not taken.
	DistinguishNoData bool
}

// Summary is the derived adherence view for one subject/treatment pair.
type Summary struct {
	Today         Date `json:"today"`
	Streak        int  `json:"streak"`
	LongestStreak int  `json:"longest_streak"`
	Grid          Grid `json:"calendar_grid"`
	AdherenceRate int  `json:"adherence_rate"`
	TakenDays     int  `json:"taken_days"`
	WindowDays    int  `json:"window_days"`
}

// ComputeAdherenceRate returns the percentage of taken days in the
// windowDays days ending on today, rounded half-up.
func ComputeAdherenceRate(records Records, today Date, windowDays int) (int, error) {
	if err := ValidateWindow(windowDays, false); err != nil {
		return 0, err
	}
	return percent(takenInWindow(records, today, windowDays), windowDays), nil
}

// Summarize computes streak, grid and rate in one pass over the options.
func Summarize(records Records, today Date, opts Options) (Summary, error) {
	grid, err := BuildCalendarGridWithOptions(records, today, opts)
	if err != nil {
		return Summary{}, err
	}
	taken := takenInWindow(records, today, opts.WindowDays)
	return Summary{
		Today:         today,
		Streak:        ComputeStreak(records, today),
		LongestStreak: LongestStreak(records),
		Grid:          grid,
		AdherenceRate: percent(taken, opts.WindowDays),
		TakenDays:     taken,
		WindowDays:    opts.WindowDays,
	}, nil
}

func takenInWindow(records Records, today Date, windowDays int) int {
	taken := 0
	for d := WindowStart(today, windowDays); !d.After(today); d = d.AddDays(1) {
		if records.Taken(d) {
			taken++
		}
	}
	return taken
}

// percent rounds half-up without going through floating point.
func percent(part, whole int) int {
	return (200*part + whole) / (2 * whole)
}
