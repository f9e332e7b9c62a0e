// Package memory provides in-memory repository implementations, useful for
// tests and for running without a database on disk.
package memory

import (
	"context"
	"sync"

	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
)

type snapshotKey struct {
	deviceID string
	dateKey  string
}

type snapshotStore struct {
	mu    sync.RWMutex
	snaps map[snapshotKey]models.GameSnapshot
}

// NewSnapshotStore creates an in-memory SnapshotStore.
func NewSnapshotStore() repository.SnapshotStore {
	return &snapshotStore{snaps: make(map[snapshotKey]models.GameSnapshot)}
}

func (s *snapshotStore) Save(_ context.Context, deviceID, dateKey string, snap models.GameSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snapshotKey{deviceID, dateKey}] = snap
	return nil
}

func (s *snapshotStore) Load(_ context.Context, deviceID, dateKey string) (*models.GameSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[snapshotKey{deviceID, dateKey}]
	if !ok {
		return nil, nil
	}
	out := snap
	return &out, nil
}
