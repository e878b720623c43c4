package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

type PGSubmissionStore struct {
	DB *sqlx.DB
}

func (s *PGSubmissionStore) Create(ctx context.Context, sub *models.Submission) error {
	err := s.DB.GetContext(ctx, sub, `
		INSERT INTO submissions (user_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, role, content, created_at
	`, sub.UserID, sub.Role, sub.Content)
	return errors.Annotatef(err, "insert submission for user %d", sub.UserID)
}
