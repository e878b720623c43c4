// Package store holds the parameterised SQL for every table the API touches.
// Each method runs exactly one statement against the shared pool.
package store

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

type UserStore interface {
	// FindByEmailAndRole returns the user with exactly this email and role, or
	// an error satisfying errors.Is(err, errors.NotFound).
	FindByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	// Create fails with errors.AlreadyExists when the email is taken for the role.
	Create(ctx context.Context, u *models.User) error
	// CountCreatedBy counts rows of the given role whose created_by is creatorID.
	CountCreatedBy(ctx context.Context, creatorID int64, role models.Role) (int, error)
	// Update overwrites first_name, last_name, email, role and status. It fails
	// with errors.AlreadyExists when that moves the user onto a taken email/role.
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	// ListCreatedBy returns user-role rows created by any of creatorIDs.
	ListCreatedBy(ctx context.Context, creatorIDs ...int64) ([]models.User, error)
}

type FormStore interface {
	// SaveDraft inserts the draft or overwrites the existing draft for the
	// same (user_id, form_type), refreshing created_at.
	SaveDraft(ctx context.Context, f *models.FormSubmission) error
	// Insert always adds a new row.
	Insert(ctx context.Context, f *models.FormSubmission) error
	LatestDraft(ctx context.Context, userID int64, formType string) (*models.FormSubmission, error)
	Get(ctx context.Context, id int64) (*models.FormSubmission, error)
	Update(ctx context.Context, id int64, formData string, status models.FormStatus) (*models.FormSubmission, error)
	Delete(ctx context.Context, id int64) error
	ListByType(ctx context.Context, formType string) ([]models.FormListing, error)
	// ListByUsers returns the forms of every given user, newest first.
	ListByUsers(ctx context.Context, userIDs ...int64) ([]models.FormSubmission, error)
	AppendNote(ctx context.Context, id int64, note string) (*models.FormSubmission, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, s *models.Submission) error
}

// Stores bundles the per-table stores over one pool.
type Stores struct {
	Users       UserStore
	Forms       FormStore
	Submissions SubmissionStore
}

func New(db *sqlx.DB) *Stores {
	return &Stores{
		Users:       &PGUserStore{DB: db},
		Forms:       &PGFormStore{DB: db},
		Submissions: &PGSubmissionStore{DB: db},
	}
}

// notFound maps sql.ErrNoRows to a NotFound error and annotates anything else.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundf(format, args...)
	}
	return errors.Annotatef(err, format, args...)
}

const pgUniqueViolation = "23505"

// alreadyExists maps a unique violation to an AlreadyExists error and
// annotates anything else.
func alreadyExists(err error, format string, args ...any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return errors.AlreadyExistsf(format, args...)
	}
	return errors.Annotatef(err, format, args...)
}
