package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

const formColumns = `id, user_id, form_type, form_data, status, created_at, notes`

type PGFormStore struct {
	DB *sqlx.DB
}

func (s *PGFormStore) SaveDraft(ctx context.Context, f *models.FormSubmission) error {
	f.Status = models.FormDraft
	err := s.DB.GetContext(ctx, f, `
		INSERT INTO form_submissions (user_id, form_type, form_data, status)
		VALUES ($1, $2, $3, 'draft')
		ON CONFLICT (user_id, form_type, status) WHERE status = 'draft'
		DO UPDATE SET form_data = EXCLUDED.form_data, created_at = CURRENT_TIMESTAMP
		RETURNING `+formColumns,
		f.UserID, f.FormType, f.FormData)
	return errors.Annotatef(err, "save draft %q for user %d", f.FormType, f.UserID)
}

func (s *PGFormStore) Insert(ctx context.Context, f *models.FormSubmission) error {
	err := s.DB.GetContext(ctx, f, `
		INSERT INTO form_submissions (user_id, form_type, form_data, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+formColumns,
		f.UserID, f.FormType, f.FormData, f.Status)
	return errors.Annotatef(err, "insert %q form for user %d", f.FormType, f.UserID)
}

func (s *PGFormStore) LatestDraft(ctx context.Context, userID int64, formType string) (*models.FormSubmission, error) {
	var f models.FormSubmission
	err := s.DB.GetContext(ctx, &f, `
		SELECT `+formColumns+`
		FROM form_submissions
		WHERE user_id=$1 AND form_type=$2 AND status=$3
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, formType, models.FormDraft)
	if err != nil {
		return nil, notFound(err, "draft %q for user %d", formType, userID)
	}
	return &f, nil
}

func (s *PGFormStore) Get(ctx context.Context, id int64) (*models.FormSubmission, error) {
	var f models.FormSubmission
	err := s.DB.GetContext(ctx, &f, `SELECT `+formColumns+` FROM form_submissions WHERE id=$1`, id)
	if err != nil {
		return nil, notFound(err, "form %d", id)
	}
	return &f, nil
}

func (s *PGFormStore) Update(ctx context.Context, id int64, formData string, status models.FormStatus) (*models.FormSubmission, error) {
	var f models.FormSubmission
	err := s.DB.GetContext(ctx, &f, `
		UPDATE form_submissions
		SET form_data=$1, status=$2
		WHERE id=$3
		RETURNING `+formColumns,
		formData, status, id)
	if err != nil {
		return nil, notFound(err, "form %d", id)
	}
	return &f, nil
}

func (s *PGFormStore) Delete(ctx context.Context, id int64) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM form_submissions WHERE id=$1`, id)
	return errors.Annotatef(err, "delete form %d", id)
}

func (s *PGFormStore) ListByType(ctx context.Context, formType string) ([]models.FormListing, error) {
	forms := []models.FormListing{}
	err := s.DB.SelectContext(ctx, &forms, `
		SELECT f.id, f.user_id, f.form_type, f.form_data, f.status, f.created_at, f.notes,
		       u.first_name, u.last_name, u.email, u.role
		FROM form_submissions f
		JOIN users u ON f.user_id = u.id
		WHERE f.form_type = $1
		ORDER BY f.created_at DESC
	`, formType)
	if err != nil {
		return nil, errors.Annotatef(err, "list %q forms", formType)
	}
	return forms, nil
}

func (s *PGFormStore) ListByUsers(ctx context.Context, userIDs ...int64) ([]models.FormSubmission, error) {
	forms := []models.FormSubmission{}
	if len(userIDs) == 0 {
		return forms, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+formColumns+` FROM form_submissions WHERE user_id IN (?) ORDER BY created_at DESC`,
		userIDs)
	if err != nil {
		return nil, errors.Trace(err)
	}

	if err := s.DB.SelectContext(ctx, &forms, s.DB.Rebind(query), args...); err != nil {
		return nil, errors.Annotate(err, "list forms by user")
	}
	return forms, nil
}

// AppendNote adds note as a new line of the form's notes.
func (s *PGFormStore) AppendNote(ctx context.Context, id int64, note string) (*models.FormSubmission, error) {
	var f models.FormSubmission
	err := s.DB.GetContext(ctx, &f, `
		UPDATE form_submissions
		SET notes = CASE
			WHEN notes IS NULL OR notes = '' THEN $1
			ELSE notes || chr(10) || $1
		END
		WHERE id=$2
		RETURNING `+formColumns,
		note, id)
	if err != nil {
		return nil, notFound(err, "form %d", id)
	}
	return &f, nil
}
