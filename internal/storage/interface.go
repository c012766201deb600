package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/julianstephens/adhere/internal/models"
)

var (
	// ErrNotFound is returned when a subject, treatment or check-in does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when adding a subject or treatment whose key is taken.
	ErrAlreadyExists = errors.New("already exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Subjects
	AddSubject(ctx context.Context, subject models.Subject) error
	GetSubject(ctx context.Context, id string) (models.Subject, error)
	GetAllSubjects(ctx context.Context) ([]models.Subject, error)

	// Treatments
	AddTreatment(ctx context.Context, treatment models.Treatment) error
	GetTreatment(ctx context.Context, subjectID, treatmentType string) (models.Treatment, error)
	GetTreatments(ctx context.Context, subjectID string, includeArchived bool) ([]models.Treatment, error)
	ArchiveTreatment(ctx context.Context, subjectID, treatmentType string) error

	// Check-ins
	// UpsertCheckin creates or updates the single row for (subject, treatment, day)
	// and returns the stored row.
	UpsertCheckin(ctx context.Context, checkin models.Checkin) (models.Checkin, error)
	GetCheckin(ctx context.Context, subjectID, treatmentType, day string) (models.Checkin, error)
	// GetCheckins returns every row for the pair, ordered by day.
	GetCheckins(ctx context.Context, subjectID, treatmentType string) ([]models.Checkin, error)
	// GetCheckinsInRange returns rows with startDay <= day <= endDay, ordered by day.
	GetCheckinsInRange(ctx context.Context, subjectID, treatmentType, startDay, endDay string) ([]models.Checkin, error)

	// ResetSubject deletes every check-in the subject has recorded and
	// returns the number of rows removed.
	ResetSubject(ctx context.Context, subjectID string) (int64, error)

	// Utils
	GetConfigPath() string
}

// DBProvider exposes the underlying connection for health checks and
// direct queries.
type DBProvider interface {
	Provider
	GetDB() *sql.DB
}
