package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordgroups/internal/models"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Save(ctx context.Context, playerID string, rec models.GameHistoryRecord) error {
	args := m.Called(ctx, playerID, rec)
	return args.Error(0)
}

func (m *MockHistoryRepository) Get(ctx context.Context, playerID, dateKey string) (*models.GameHistoryRecord, error) {
	args := m.Called(ctx, playerID, dateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameHistoryRecord), args.Error(1)
}

func (m *MockHistoryRepository) List(ctx context.Context, playerID string, filter models.HistoryFilter) ([]models.GameHistoryRecord, error) {
	args := m.Called(ctx, playerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameHistoryRecord), args.Error(1)
}

func (m *MockHistoryRepository) Count(ctx context.Context, playerID string) (int, error) {
	args := m.Called(ctx, playerID)
	return args.Int(0), args.Error(1)
}
