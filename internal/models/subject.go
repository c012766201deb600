package models

import (
	"fmt"
	"strings"
	"time"
)

// reservedIDChars may not appear in subject ids or treatment types. They
// separate cache key parts or are glob syntax in cache key patterns.
const reservedIDChars = " /:*?[]\\"

// Subject is a patient whose treatments are tracked
type Subject struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Timezone  string     `json:"timezone" db:"timezone"` // IANA name, or "Local"/empty to use the configured default
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func (s *Subject) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("subject id cannot be empty")
	}
	if strings.ContainsAny(s.ID, reservedIDChars) {
		return fmt.Errorf("subject id %q must not contain any of %q", s.ID, reservedIDChars)
	}
	if s.Timezone != "" && s.Timezone != "Local" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
		}
	}
	return nil
}
