package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

type SubmissionStore struct{ mock.Mock }

func (m *SubmissionStore) Create(ctx context.Context, s *models.Submission) error {
	return m.Called(ctx, s).Error(0)
}
