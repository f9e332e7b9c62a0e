package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
)

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a SnapshotStore backed by the device_sessions table.
func NewSnapshotRepository(db *sql.DB) repository.SnapshotStore {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Save(ctx context.Context, deviceID, dateKey string, snap models.GameSnapshot) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("saving snapshot: device_id=%s, date_key=%s", deviceID, dateKey)

	data, err := json.Marshal(snap)
	if err != nil {
		log.Error("failed to encode snapshot: %v", err)
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO device_sessions (device_id, date_key, snapshot, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(device_id, date_key) DO UPDATE SET
    snapshot = excluded.snapshot,
    updated_at = CURRENT_TIMESTAMP
`, deviceID, dateKey, data)
	if err != nil {
		log.Error("failed to save snapshot: %v", err)
	}
	return err
}

func (r *snapshotRepository) Load(ctx context.Context, deviceID, dateKey string) (*models.GameSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("loading snapshot: device_id=%s, date_key=%s", deviceID, dateKey)

	var data []byte
	err := r.db.QueryRowContext(ctx, `
SELECT snapshot
FROM device_sessions
WHERE device_id = ? AND date_key = ?
`, deviceID, dateKey).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no snapshot found: device_id=%s, date_key=%s", deviceID, dateKey)
			return nil, nil
		}
		log.Error("failed to load snapshot: %v", err)
		return nil, err
	}

	var snap models.GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A snapshot we cannot decode is as good as no snapshot.
		log.Warn("discarding undecodable snapshot: device_id=%s, date_key=%s: %v", deviceID, dateKey, err)
		return nil, nil
	}
	return &snap, nil
}
