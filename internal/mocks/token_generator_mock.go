package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/vaughan-dsouza/epiqbilling/internal/models"
)

type TokenGenerator struct{ mock.Mock }

func (m *TokenGenerator) Generate(u *models.User) (string, int64, error) {
	args := m.Called(u)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}
