package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/adhere/internal/adherence"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns now converted to the specified timezone.
func NowInTimezone(now time.Time, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return now.In(loc), nil
}

// TodayIn returns the calendar day that now falls on in the given timezone.
// "Today" for a subject is always their local day, not the server's.
func TodayIn(now time.Time, timezone string) (adherence.Date, error) {
	local, err := NowInTimezone(now, timezone)
	if err != nil {
		return adherence.Date{}, err
	}
	return adherence.DateOf(local), nil
}

// ResolveDay interprets a user-supplied day relative to today. It accepts
// "", "today", "yesterday" and YYYY-MM-DD.
func ResolveDay(arg string, today adherence.Date) (adherence.Date, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return adherence.ParseDate(strings.TrimSpace(arg))
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
