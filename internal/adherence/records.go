package adherence

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow is returned when the window length is not positive,
	// or, for calendar grids, not a whole number of weeks.
	ErrInvalidWindow = errors.New("invalid adherence window")
	// ErrMalformedRecord marks a stored row whose date cannot be parsed.
	ErrMalformedRecord = errors.New("malformed check-in record")
)

// MalformedRecordError describes a single dropped row.
type MalformedRecordError struct {
	Index int
	Date  string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d: date %q: %v", e.Index, e.Date, e.Err)
}

func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

// CheckinRecord is one day's self-reported status for a treatment.
type CheckinRecord struct {
	Date      Date
	CheckedIn bool
}

// RawRecord is a check-in as it comes out of storage, before its date has
// been validated.
type RawRecord struct {
	Date      string
	CheckedIn bool
}

// Records maps a day to whether the treatment was taken. A day missing from
// the map was never recorded.
type Records map[Date]bool

// NewRecords builds a record set. When the list holds more than one record
// for a date, the last one wins.
func NewRecords(list []CheckinRecord) Records {
	records := make(Records, len(list))
	for _, r := range list {
		if r.Date.IsZero() {
			continue
		}
		records[r.Date] = r.CheckedIn
	}
	return records
}

// ParseRecords validates raw rows and builds a record set from the valid
// ones. Rows with unparseable dates are skipped and reported; they never
// fail the whole set. Duplicates resolve last-wins, as in NewRecords.
func ParseRecords(raw []RawRecord) (Records, []error) {
	records := make(Records, len(raw))
	var dropped []error
	for i, r := range raw {
		d, err := ParseDate(r.Date)
		if err != nil {
			dropped = append(dropped, &MalformedRecordError{Index: i, Date: r.Date, Err: err})
			continue
		}
		records[d] = r.CheckedIn
	}
	return records, dropped
}

// Taken reports whether d has a positive check-in.
func (r Records) Taken(d Date) bool {
	return r[d]
}

// Has reports whether d has any record, positive or not.
func (r Records) Has(d Date) bool {
	_, ok := r[d]
	return ok
}

// ValidateWindow checks a window length. With requireWeeks the window must
// also be a whole number of weeks.
func ValidateWindow(windowDays int, requireWeeks bool) error {
	if windowDays <= 0 {
		return fmt.Errorf("%w: window must be positive, got %d", ErrInvalidWindow, windowDays)
	}
	if requireWeeks && windowDays%7 != 0 {
		return fmt.Errorf("%w: window must be a multiple of 7, got %d", ErrInvalidWindow, windowDays)
	}
	return nil
}
