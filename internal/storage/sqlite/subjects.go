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

func (s *Store) AddSubject(ctx context.Context, subject models.Subject) error {
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO subjects (id, name, timezone, created_at, deleted_at)
		VALUES (:id, :name, :timezone, :created_at, :deleted_at)
		ON CONFLICT (id) DO NOTHING`, subject)
	if err != nil {
		return fmt.Errorf("failed to add subject: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add subject: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("subject %q: %w", subject.ID, storage.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetSubject(ctx context.Context, id string) (models.Subject, error) {
	var subject models.Subject
	err := s.db.GetContext(ctx, &subject, `
		SELECT id, name, timezone, created_at, deleted_at
		FROM subjects WHERE id = ? AND deleted_at IS NULL`, id)
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
	err := s.db.SelectContext(ctx, &subjects, `
		SELECT id, name, timezone, created_at, deleted_at
		FROM subjects WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}
