package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/adhere/internal/models"
	"github.com/julianstephens/adhere/internal/storage"
)

func (s *Store) AddTreatment(ctx context.Context, treatment models.Treatment) error {
	if _, err := s.GetSubject(ctx, treatment.SubjectID); err != nil {
		return err
	}
	if treatment.Kind == "" {
		treatment.Kind = models.TreatmentDailyPill
	}
	if treatment.CreatedAt.IsZero() {
		treatment.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO treatments (subject_id, treatment_type, label, kind, created_at, archived_at)
		VALUES (:subject_id, :treatment_type, :label, :kind, :created_at, :archived_at)
		ON CONFLICT (subject_id, treatment_type) DO NOTHING`, treatment)
	if err != nil {
		return fmt.Errorf("failed to add treatment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add treatment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("treatment %q for subject %q: %w", treatment.Type, treatment.SubjectID, storage.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetTreatment(ctx context.Context, subjectID, treatmentType string) (models.Treatment, error) {
	var treatment models.Treatment
	err := s.db.GetContext(ctx, &treatment, `
		SELECT subject_id, treatment_type, label, kind, created_at, archived_at
		FROM treatments WHERE subject_id = ? AND treatment_type = ?`, subjectID, treatmentType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Treatment{}, fmt.Errorf("treatment %q for subject %q: %w", treatmentType, subjectID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Treatment{}, fmt.Errorf("failed to get treatment: %w", err)
	}
	return treatment, nil
}

func (s *Store) GetTreatments(ctx context.Context, subjectID string, includeArchived bool) ([]models.Treatment, error) {
	query := `
		SELECT subject_id, treatment_type, label, kind, created_at, archived_at
		FROM treatments WHERE subject_id = ?`
	if !includeArchived {
		query += ` AND archived_at IS NULL`
	}
	query += ` ORDER BY treatment_type`

	treatments := []models.Treatment{}
	if err := s.db.SelectContext(ctx, &treatments, query, subjectID); err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}

func (s *Store) ArchiveTreatment(ctx context.Context, subjectID, treatmentType string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE treatments SET archived_at = ?
		WHERE subject_id = ? AND treatment_type = ? AND archived_at IS NULL`,
		time.Now().UTC(), subjectID, treatmentType)
	if err != nil {
		return fmt.Errorf("failed to archive treatment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to archive treatment: %w", err)
	}
	if n == 0 {
		// Either missing or already archived; only the former is an error
		if _, err := s.GetTreatment(ctx, subjectID, treatmentType); err != nil {
			return err
		}
	}
	return nil
}
