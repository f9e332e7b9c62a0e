package worker

import (
	"context"

	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
	"github.com/vytor/wordgroups/internal/stats"
)

// SnapshotSaveJob persists a mid-game snapshot for a device. Failures are
// logged and swallowed by the pool; the next game transition enqueues a
// fresh snapshot.
type SnapshotSaveJob struct {
	Snapshots repository.SnapshotStore
	DeviceID  string
	DateKey   string
	Snapshot  models.GameSnapshot
}

func (j *SnapshotSaveJob) Name() string { return "snapshot_save" }

func (j *SnapshotSaveJob) Run(ctx context.Context) error {
	return j.Snapshots.Save(ctx, j.DeviceID, j.DateKey, j.Snapshot)
}

// CompletionSyncJob runs once when a game reaches a terminal state. It bumps
// the puzzle counters and, for signed-in players, writes the durable history
// record and the folded lifetime stats in one atomic completion write.
type CompletionSyncJob struct {
	Puzzles     repository.PuzzleRepository
	StatsRepo   repository.StatsRepository
	Completions repository.CompletionRepository

	PlayerID string
	Record   models.GameHistoryRecord
}

func (j *CompletionSyncJob) Name() string { return "completion_sync" }

func (j *CompletionSyncJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"puzzle_id": j.Record.PuzzleID,
		"date_key":  j.Record.PuzzleDate,
	})

	// Puzzle counters are best effort: a failed bump never blocks the
	// player-facing writes below.
	if err := j.Puzzles.IncrementPlayed(ctx, j.Record.PuzzleID); err != nil {
		log.Warn("failed to bump times_played: %v", err)
	}
	if j.Record.Won {
		if err := j.Puzzles.IncrementSolved(ctx, j.Record.PuzzleID); err != nil {
			log.Warn("failed to bump times_solved: %v", err)
		}
	}

	// Anonymous players get no durable record.
	if j.PlayerID == "" {
		log.Debug("anonymous completion, skipping history and stats")
		return nil
	}

	current, err := j.StatsRepo.Get(ctx, j.PlayerID)
	if err != nil {
		log.Error("failed to load stats: %v", err)
		return err
	}
	if current == nil {
		initial := stats.Initial()
		current = &initial
	}
	updated := stats.Apply(*current, stats.GameResult{
		Won:      j.Record.Won,
		Mistakes: j.Record.Mistakes,
		DateKey:  j.Record.PuzzleDate,
	})
	if err := j.Completions.SaveCompletion(ctx, j.PlayerID, j.Record, updated); err != nil {
		log.Error("failed to save completion: %v", err)
		return err
	}
	log.Info("completion synced: won=%t, mistakes=%d", j.Record.Won, j.Record.Mistakes)
	return nil
}
