package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/constants"
)

// Checkin represents a single day's self-report for a subject's treatment.
// At most one row exists per (SubjectID, TreatmentType, Day).
type Checkin struct {
	ID            string    `json:"id" db:"id"`
	SubjectID     string    `json:"subject_id" db:"subject_id"`
	TreatmentType string    `json:"treatment_type" db:"treatment_type"`
	Day           string    `json:"day" db:"day"` // YYYY-MM-DD format
	CheckedIn     bool      `json:"checked_in" db:"checked_in"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Checkin) Validate() error {
	if c.SubjectID == "" {
		return fmt.Errorf("check-in subject id cannot be empty")
	}
	if c.TreatmentType == "" {
		return fmt.Errorf("check-in treatment type cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, c.Day); err != nil {
		return fmt.Errorf("invalid day format (expected YYYY-MM-DD): %w", err)
	}
	return nil
}

// ToRaw converts the row into the engine's unvalidated record shape.
func (c Checkin) ToRaw() adherence.RawRecord {
	return adherence.RawRecord{Date: c.Day, CheckedIn: c.CheckedIn}
}

// RawRecords converts a list of rows, preserving order.
func RawRecords(checkins []Checkin) []adherence.RawRecord {
	raw := make([]adherence.RawRecord, len(checkins))
	for i, c := range checkins {
		raw[i] = c.ToRaw()
	}
	return raw
}
