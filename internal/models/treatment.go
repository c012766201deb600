package models

import (
	"fmt"
	"strings"
	"time"
)

// TreatmentKind is the closed set of treatment shapes the tracker knows about.
type TreatmentKind string

const (
	TreatmentDailyPill TreatmentKind = "daily-pill"
	TreatmentInjection TreatmentKind = "injection"
	TreatmentTopical   TreatmentKind = "topical"
)

// ParseTreatmentKind accepts the canonical kind names.
func ParseTreatmentKind(s string) (TreatmentKind, error) {
	switch k := TreatmentKind(strings.ToLower(strings.TrimSpace(s))); k {
	case TreatmentDailyPill, TreatmentInjection, TreatmentTopical:
		return k, nil
	case "":
		return TreatmentDailyPill, nil
	default:
		return "", fmt.Errorf("unknown treatment kind %q (expected daily-pill, injection or topical)", s)
	}
}

// Treatment is one treatment type a subject checks in against.
// Type is the key used by check-ins (e.g. "weight-loss", "hair-loss").
type Treatment struct {
	SubjectID  string        `json:"subject_id" db:"subject_id"`
	Type       string        `json:"type" db:"treatment_type"`
	Label      string        `json:"label" db:"label"`
	Kind       TreatmentKind `json:"kind" db:"kind"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	ArchivedAt *time.Time    `json:"archived_at,omitempty" db:"archived_at"`
}

func (t *Treatment) Validate() error {
	if strings.TrimSpace(t.SubjectID) == "" {
		return fmt.Errorf("treatment subject id cannot be empty")
	}
	if strings.TrimSpace(t.Type) == "" {
		return fmt.Errorf("treatment type cannot be empty")
	}
	if strings.ContainsAny(t.Type, reservedIDChars) {
		return fmt.Errorf("treatment type %q must not contain any of %q", t.Type, reservedIDChars)
	}
	if _, err := ParseTreatmentKind(string(t.Kind)); err != nil {
		return err
	}
	return nil
}

// DisplayName returns the label, falling back to the type key.
func (t *Treatment) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Type
}
