package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

type FormStore struct{ mock.Mock }

func (m *FormStore) SaveDraft(ctx context.Context, f *models.FormSubmission) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FormStore) Insert(ctx context.Context, f *models.FormSubmission) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FormStore) LatestDraft(ctx context.Context, userID int64, formType string) (*models.FormSubmission, error) {
	return m.form(m.Called(ctx, userID, formType))
}

func (m *FormStore) Get(ctx context.Context, id int64) (*models.FormSubmission, error) {
	return m.form(m.Called(ctx, id))
}

func (m *FormStore) Update(ctx context.Context, id int64, formData string, status models.FormStatus) (*models.FormSubmission, error) {
	return m.form(m.Called(ctx, id, formData, status))
}

func (m *FormStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *FormStore) ListByType(ctx context.Context, formType string) ([]models.FormListing, error) {
	args := m.Called(ctx, formType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormListing), args.Error(1)
}

func (m *FormStore) ListByUsers(ctx context.Context, userIDs ...int64) ([]models.FormSubmission, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormSubmission), args.Error(1)
}

func (m *FormStore) AppendNote(ctx context.Context, id int64, note string) (*models.FormSubmission, error) {
	return m.form(m.Called(ctx, id, note))
}

func (m *FormStore) form(args mock.Arguments) (*models.FormSubmission, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FormSubmission), args.Error(1)
}
