package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordgroups/internal/models"
)

// MockSnapshotStore is a mock implementation of repository.SnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(ctx context.Context, deviceID, dateKey string, snap models.GameSnapshot) error {
	args := m.Called(ctx, deviceID, dateKey, snap)
	return args.Error(0)
}

func (m *MockSnapshotStore) Load(ctx context.Context, deviceID, dateKey string) (*models.GameSnapshot, error) {
	args := m.Called(ctx, deviceID, dateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameSnapshot), args.Error(1)
}
