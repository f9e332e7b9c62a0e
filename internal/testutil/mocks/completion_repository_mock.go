package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordgroups/internal/models"
)

// MockCompletionRepository is a mock implementation of repository.CompletionRepository
type MockCompletionRepository struct {
	mock.Mock
}

func (m *MockCompletionRepository) SaveCompletion(ctx context.Context, playerID string, rec models.GameHistoryRecord, stats models.UserStats) error {
	args := m.Called(ctx, playerID, rec, stats)
	return args.Error(0)
}
