package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
)

type completionRepository struct {
	db *sql.DB
}

// NewCompletionRepository creates a new CompletionRepository implementation
func NewCompletionRepository(db *sql.DB) repository.CompletionRepository {
	return &completionRepository{db: db}
}

// SaveCompletion writes the history record and the folded stats in one
// transaction: either both land or neither does.
func (r *completionRepository) SaveCompletion(ctx context.Context, playerID string, rec models.GameHistoryRecord, stats models.UserStats) error {
	log := logger.FromContext(ctx).WithPrefix("completion_repo")
	log.Debug("saving completion: player_id=%s, date_key=%s, won=%t", playerID, rec.PuzzleDate, rec.Won)

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := upsertHistoryRecord(ctx, tx, playerID, rec); err != nil {
			return err
		}
		return upsertStats(ctx, tx, playerID, stats)
	})
	if err != nil {
		log.Error("failed to save completion: %v", err)
	}
	return err
}
