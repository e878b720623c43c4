package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

type UserStore struct{ mock.Mock }

func (m *UserStore) FindByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserStore) CountCreatedBy(ctx context.Context, creatorID int64, role models.Role) (int, error) {
	args := m.Called(ctx, creatorID, role)
	return args.Int(0), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserStore) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserStore) ListCreatedBy(ctx context.Context, creatorIDs ...int64) ([]models.User, error) {
	args := m.Called(ctx, creatorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
