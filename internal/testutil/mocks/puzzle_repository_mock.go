package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordgroups/internal/models"
)

// MockPuzzleRepository is a mock implementation of repository.PuzzleRepository
type MockPuzzleRepository struct {
	mock.Mock
}

func (m *MockPuzzleRepository) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) GetByDate(ctx context.Context, dateKey string) (*models.Puzzle, error) {
	args := m.Called(ctx, dateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) Insert(ctx context.Context, p models.Puzzle) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockPuzzleRepository) Update(ctx context.Context, p models.Puzzle) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPuzzleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPuzzleRepository) IncrementPlayed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPuzzleRepository) IncrementSolved(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
