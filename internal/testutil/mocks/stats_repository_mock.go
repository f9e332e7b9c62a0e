package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordgroups/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context, playerID string) (*models.UserStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

func (m *MockStatsRepository) Save(ctx context.Context, playerID string, stats models.UserStats) error {
	args := m.Called(ctx, playerID, stats)
	return args.Error(0)
}
