package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

const userColumns = `id, first_name, last_name, email, password, role, created_by, status`

type PGUserStore struct {
	DB *sqlx.DB
}

func (s *PGUserStore) FindByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `
		SELECT `+userColumns+`
		FROM users
		WHERE email=$1 AND role=$2
	`, email, role)
	if err != nil {
		return nil, notFound(err, "user %q with role %q", email, role)
	}
	return &u, nil
}

func (s *PGUserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	if err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return &u, nil
}

func (s *PGUserStore) Create(ctx context.Context, u *models.User) error {
	if u.Status == nil {
		status := models.StatusActive
		u.Status = &status
	}
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password, role, created_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, u.FirstName, u.LastName, u.Email, u.Password, u.Role, u.CreatedBy, u.Status).
		Scan(&u.ID)
	if err != nil {
		return alreadyExists(err, "user %q with role %q", u.Email, u.Role)
	}
	return nil
}

func (s *PGUserStore) CountCreatedBy(ctx context.Context, creatorID int64, role models.Role) (int, error) {
	var n int
	err := s.DB.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM users WHERE created_by=$1 AND role=$2`, creatorID, role)
	return n, errors.Annotatef(err, "count users created by %d", creatorID)
}

func (s *PGUserStore) Update(ctx context.Context, u *models.User) error {
	err := s.DB.GetContext(ctx, u, `
		UPDATE users
		SET first_name=$1, last_name=$2, email=$3, role=$4, status=$5
		WHERE id=$6
		RETURNING `+userColumns,
		u.FirstName, u.LastName, u.Email, u.Role, u.Status, u.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundf("user %d", u.ID)
	}
	if err != nil {
		return alreadyExists(err, "user %q with role %q", u.Email, u.Role)
	}
	return nil
}

// Delete removes the user row only; form submissions owned by the user stay.
func (s *PGUserStore) Delete(ctx context.Context, id int64) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	return errors.Annotatef(err, "delete user %d", id)
}

func (s *PGUserStore) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users WHERE role=$1 ORDER BY id`, role)
	if err != nil {
		return nil, errors.Annotatef(err, "list %s users", role)
	}
	return users, nil
}

func (s *PGUserStore) ListCreatedBy(ctx context.Context, creatorIDs ...int64) ([]models.User, error) {
	users := []models.User{}
	if len(creatorIDs) == 0 {
		return users, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+userColumns+` FROM users WHERE role=? AND created_by IN (?) ORDER BY id`,
		models.RoleUser, creatorIDs)
	if err != nil {
		return nil, errors.Trace(err)
	}

	if err := s.DB.SelectContext(ctx, &users, s.DB.Rebind(query), args...); err != nil {
		return nil, errors.Annotate(err, "list users by creator")
	}
	return users, nil
}
