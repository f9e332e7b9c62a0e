package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
)

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository implementation
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Save(ctx context.Context, playerID string, rec models.GameHistoryRecord) error {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("saving history record: player_id=%s, date_key=%s, won=%t", playerID, rec.PuzzleDate, rec.Won)

	err := upsertHistoryRecord(ctx, r.db, playerID, rec)
	if err != nil {
		log.Error("failed to save history record: %v", err)
	}
	return err
}

func upsertHistoryRecord(ctx context.Context, ex execer, playerID string, rec models.GameHistoryRecord) error {
	solvedGroups, err := json.Marshal(rec.SolvedGroups)
	if err != nil {
		return err
	}
	attempts, err := json.Marshal(rec.AttemptHistory)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
INSERT INTO game_history (player_id, date_key, puzzle_id, won, mistakes, solved_groups, attempt_history, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(player_id, date_key) DO UPDATE SET
    puzzle_id = excluded.puzzle_id,
    won = excluded.won,
    mistakes = excluded.mistakes,
    solved_groups = excluded.solved_groups,
    attempt_history = excluded.attempt_history,
    completed_at = excluded.completed_at
`, playerID, rec.PuzzleDate, rec.PuzzleID, rec.Won, rec.Mistakes, solvedGroups, attempts, rec.CompletedAt)
	return err
}

func (r *historyRepository) scanRecord(scan func(dest ...any) error) (*models.GameHistoryRecord, error) {
	var rec models.GameHistoryRecord
	var solvedGroups, attempts []byte
	if err := scan(&rec.PuzzleID, &rec.PuzzleDate, &rec.Won, &rec.Mistakes, &solvedGroups, &attempts, &rec.CompletedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(solvedGroups, &rec.SolvedGroups); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attempts, &rec.AttemptHistory); err != nil {
		return nil, err
	}
	rec.Completed = true
	return &rec, nil
}

func (r *historyRepository) Get(ctx context.Context, playerID, dateKey string) (*models.GameHistoryRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("getting history record: player_id=%s, date_key=%s", playerID, dateKey)

	row := r.db.QueryRowContext(ctx, `
SELECT puzzle_id, date_key, won, mistakes, solved_groups, attempt_history, completed_at
FROM game_history
WHERE player_id = ? AND date_key = ?
`, playerID, dateKey)
	rec, err := r.scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no history record: player_id=%s, date_key=%s", playerID, dateKey)
			return nil, nil
		}
		log.Error("failed to get history record: %v", err)
		return nil, err
	}
	return rec, nil
}

func (r *historyRepository) List(ctx context.Context, playerID string, filter models.HistoryFilter) ([]models.GameHistoryRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("listing history: player_id=%s, limit=%d, offset=%d", playerID, filter.Limit, filter.Offset)

	query := sqlBuilder.Select(
		"puzzle_id", "date_key", "won", "mistakes", "solved_groups", "attempt_history", "completed_at",
	).From("game_history").
		Where(squirrel.Eq{"player_id": playerID}).
		OrderBy("date_key DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, err
	}
	defer rows.Close()
	var records []models.GameHistoryRecord
	for rows.Next() {
		rec, err := r.scanRecord(rows.Scan)
		if err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		records = append(records, *rec)
	}
	log.Debug("found %d history records", len(records))
	return records, rows.Err()
}

func (r *historyRepository) Count(ctx context.Context, playerID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("counting history: player_id=%s", playerID)

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM game_history
WHERE player_id = ?
`, playerID).Scan(&count)
	if err != nil {
		log.Error("failed to count history: %v", err)
		return 0, err
	}
	return count, nil
}
