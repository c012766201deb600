package postgres

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

const (
	subjectColumns   = `id, name, timezone, created_at, deleted_at`
	treatmentColumns = `subject_id, treatment_type, label, kind, created_at, archived_at`
	checkinColumns   = `id, subject_id, treatment_type, day, checked_in, created_at, updated_at`
)

func rowsAffected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to %s: %w", op, err)
	}
	return n, nil
}

func (s *Store) AddSubject(ctx context.Context, subject models.Subject) error {
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO subjects (`+subjectColumns+`)
		VALUES (:id, :name, :timezone, :created_at, :deleted_at)
		ON CONFLICT (id) DO NOTHING`, subject)
	if err != nil {
		return fmt.Errorf("failed to add subject: %w", err)
	}
	n, err := rowsAffected(res, "add subject")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("subject %q: %w", subject.ID, storage.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetSubject(ctx context.Context, id string) (models.Subject, error) {
	var subject models.Subject
	err := s.db.GetContext(ctx, &subject, `
		SELECT `+subjectColumns+` FROM subjects WHERE id = $1 AND deleted_at IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subject{}, fmt.Errorf("subject %q: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Subject{}, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

func (s *Store) GetAllSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects := []models.Subject{}
	if err := s.db.SelectContext(ctx, &subjects, `
		SELECT `+subjectColumns+` FROM subjects WHERE deleted_at IS NULL ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

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
		INSERT INTO treatments (`+treatmentColumns+`)
		VALUES (:subject_id, :treatment_type, :label, :kind, :created_at, :archived_at)
		ON CONFLICT (subject_id, treatment_type) DO NOTHING`, treatment)
	if err != nil {
		return fmt.Errorf("failed to add treatment: %w", err)
	}
	n, err := rowsAffected(res, "add treatment")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("treatment %q for subject %q: %w", treatment.Type, treatment.SubjectID, storage.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetTreatment(ctx context.Context, subjectID, treatmentType string) (models.Treatment, error) {
	var treatment models.Treatment
	err := s.db.GetContext(ctx, &treatment, `
		SELECT `+treatmentColumns+` FROM treatments
		WHERE subject_id = $1 AND treatment_type = $2`, subjectID, treatmentType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Treatment{}, fmt.Errorf("treatment %q for subject %q: %w", treatmentType, subjectID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Treatment{}, fmt.Errorf("failed to get treatment: %w", err)
	}
	return treatment, nil
}

func (s *Store) GetTreatments(ctx context.Context, subjectID string, includeArchived bool) ([]models.Treatment, error) {
	treatments := []models.Treatment{}
	err := s.db.SelectContext(ctx, &treatments, `
		SELECT `+treatmentColumns+` FROM treatments
		WHERE subject_id = $1 AND ($2 OR archived_at IS NULL)
		ORDER BY treatment_type`, subjectID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}

func (s *Store) ArchiveTreatment(ctx context.Context, subjectID, treatmentType string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE treatments SET archived_at = $1
		WHERE subject_id = $2 AND treatment_type = $3 AND archived_at IS NULL`,
		time.Now().UTC(), subjectID, treatmentType)
	if err != nil {
		return fmt.Errorf("failed to archive treatment: %w", err)
	}
	n, err := rowsAffected(res, "archive treatment")
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.GetTreatment(ctx, subjectID, treatmentType); err != nil {
			return err
		}
	}
	return nil
}

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

	var stored models.Checkin
	query, args, err := s.db.BindNamed(`
		INSERT INTO checkins (`+checkinColumns+`)
		VALUES (:id, :subject_id, :treatment_type, :day, :checked_in, :created_at, :updated_at)
		ON CONFLICT (subject_id, treatment_type, day) DO UPDATE SET
			checked_in = EXCLUDED.checked_in,
			updated_at = EXCLUDED.updated_at
		RETURNING `+checkinColumns, checkin)
	if err != nil {
		return models.Checkin{}, fmt.Errorf("failed to bind check-in: %w", err)
	}
	if err := s.db.GetContext(ctx, &stored, query, args...); err != nil {
		return models.Checkin{}, fmt.Errorf("failed to upsert check-in: %w", err)
	}
	return stored, nil
}

func (s *Store) GetCheckin(ctx context.Context, subjectID, treatmentType, day string) (models.Checkin, error) {
	var checkin models.Checkin
	err := s.db.GetContext(ctx, &checkin, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE subject_id = $1 AND treatment_type = $2 AND day = $3`, subjectID, treatmentType, day)
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
	if err := s.db.SelectContext(ctx, &checkins, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE subject_id = $1 AND treatment_type = $2
		ORDER BY day`, subjectID, treatmentType); err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkins, nil
}

func (s *Store) GetCheckinsInRange(ctx context.Context, subjectID, treatmentType, startDay, endDay string) ([]models.Checkin, error) {
	checkins := []models.Checkin{}
	if err := s.db.SelectContext(ctx, &checkins, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE subject_id = $1 AND treatment_type = $2 AND day BETWEEN $3 AND $4
		ORDER BY day`, subjectID, treatmentType, startDay, endDay); err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkins, nil
}

func (s *Store) ResetSubject(ctx context.Context, subjectID string) (int64, error) {
	if _, err := s.GetSubject(ctx, subjectID); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM checkins WHERE subject_id = $1`, subjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset subject: %w", err)
	}
	return rowsAffected(res, "reset subject")
}
