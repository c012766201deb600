package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/adhere/internal/models"
	"github.com/julianstephens/adhere/internal/storage"
)

const checkinColumns = `id, subject_id, treatment_type, day, checked_in, created_at, updated_at`

func (s *Store) UpsertCheckin(ctx context.Context, checkin models.Checkin) (models.Checkin, error) {
	if err := checkin.Validate(); err != nil {
		return models.Checkin{}, err
	}
	now := time.Now().UTC()
	if checkin.ID == "" {
		checkin.ID = uuid.New().String()
	}
	checkin.CreatedAt = now
	checkin.UpdatedAt = now

	// The original id and created_at survive a status change
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO checkins (`+checkinColumns+`)
		VALUES (:id, :subject_id, :treatment_type, :day, :checked_in, :created_at, :updated_at)
		ON CONFLICT (subject_id, treatment_type, day) DO UPDATE SET
			checked_in = excluded.checked_in,
			updated_at = excluded.updated_at`, checkin)
	if err != nil {
		return models.Checkin{}, fmt.Errorf("failed to upsert check-in: %w", err)
	}

	return s.GetCheckin(ctx, checkin.SubjectID, checkin.TreatmentType, checkin.Day)
}

func (s *Store) GetCheckin(ctx context.Context, subjectID, treatmentType, day string) (models.Checkin, error) {
	var checkin models.Checkin
	err := s.db.GetContext(ctx, &checkin, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE subject_id = ? AND treatment_type = ? AND day = ?`, subjectID, treatmentType, day)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Checkin{}, fmt.Errorf("check-in %s/%s/%s: %w", subjectID, treatmentType, day, storage.ErrNotFound)
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("failed to get check-in: %w", err)
	}
	return checkin, nil
}

func (s *Store) GetCheckins(ctx context.Context, subjectID, treatmentType string) ([]models.Checkin, error) {
	checkins := []models.Checkin{}
	err := s.db.SelectContext(ctx, &checkins, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE subject_id = ? AND treatment_type = ?
		ORDER BY day`, subjectID, treatmentType)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkins, nil
}

func (s *Store) GetCheckinsInRange(ctx context.Context, subjectID, treatmentType, startDay, endDay string) ([]models.Checkin, error) {
	checkins := []models.Checkin{}
	err := s.db.SelectContext(ctx, &checkins, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE subject_id = ? AND treatment_type = ? AND day >= ? AND day <= ?
		ORDER BY day`, subjectID, treatmentType, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkins, nil
}

func (s *Store) ResetSubject(ctx context.Context, subjectID string) (int64, error) {
	if _, err := s.GetSubject(ctx, subjectID); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM checkins WHERE subject_id = ?`, subjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset subject: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to reset subject: %w", err)
	}
	return n, nil
}
