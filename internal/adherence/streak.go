package adherence

import "sort"

// ComputeStreak returns the number of consecutive taken days ending on
// today. A missing or negative record for today yields 0; there is no
// grace period for a day that is still in progress.
func ComputeStreak(records Records, today Date) int {
	streak := 0
	for d := today; records.Taken(d); d = d.AddDays(-1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive taken days anywhere
// in the record set.
func LongestStreak(records Records) int {
	taken := make([]Date, 0, len(records))
	for d, ok := range records {
		if ok {
			taken = append(taken, d)
		}
	}
	if len(taken) == 0 {
		return 0
	}
	sort.Slice(taken, func(i, j int) bool { return taken[i].Before(taken[j]) })

	longest, run := 1, 1
	for i := 1; i < len(taken); i++ {
		if taken[i-1].DaysUntil(taken[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
