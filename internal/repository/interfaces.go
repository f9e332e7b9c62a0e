package repository

import (
	"context"

	"github.com/vytor/wordgroups/internal/models"
)

// PuzzleRepository handles puzzle data access, including the best-effort
// played/solved aggregate counters.
type PuzzleRepository interface {
	Get(ctx context.Context, id string) (*models.Puzzle, error)
	GetByDate(ctx context.Context, dateKey string) (*models.Puzzle, error)
	List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error)
	Insert(ctx context.Context, p models.Puzzle) (string, error)
	Update(ctx context.Context, p models.Puzzle) error
	Delete(ctx context.Context, id string) error
	IncrementPlayed(ctx context.Context, id string) error
	IncrementSolved(ctx context.Context, id string) error
}

// SnapshotStore is the local persistence tier: full session snapshots keyed
// by device and puzzle date, overwritten on every mutating transition.
// Load returns (nil, nil) when no usable snapshot exists; a stored snapshot
// that fails to decode counts as absent.
type SnapshotStore interface {
	Save(ctx context.Context, deviceID, dateKey string, snap models.GameSnapshot) error
	Load(ctx context.Context, deviceID, dateKey string) (*models.GameSnapshot, error)
}

// HistoryRepository is the remote persistence tier: completed-game records
// keyed by player and puzzle date. Save overwrites (last write wins).
type HistoryRepository interface {
	Save(ctx context.Context, playerID string, rec models.GameHistoryRecord) error
	Get(ctx context.Context, playerID, dateKey string) (*models.GameHistoryRecord, error)
	List(ctx context.Context, playerID string, filter models.HistoryFilter) ([]models.GameHistoryRecord, error)
	Count(ctx context.Context, playerID string) (int, error)
}

// StatsRepository stores the durable per-player lifetime stats snapshot.
// Get returns (nil, nil) for players with no record yet.
type StatsRepository interface {
	Get(ctx context.Context, playerID string) (*models.UserStats, error)
	Save(ctx context.Context, playerID string, stats models.UserStats) error
}

// CompletionRepository writes a finished game's history record and the
// player's updated stats together, so the remote tier never holds one
// without the other.
type CompletionRepository interface {
	SaveCompletion(ctx context.Context, playerID string, rec models.GameHistoryRecord, stats models.UserStats) error
}
