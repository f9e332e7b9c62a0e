package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context, playerID string) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting stats: player_id=%s", playerID)

	var s models.UserStats
	err := r.db.QueryRowContext(ctx, `
SELECT total_games, total_wins, total_losses, win_rate, average_mistakes,
       perfect_games, current_streak, longest_streak, last_game_date
FROM user_stats
WHERE player_id = ?
`, playerID).Scan(&s.TotalGames, &s.TotalWins, &s.TotalLosses, &s.WinRate, &s.AverageMistakes,
		&s.PerfectGames, &s.CurrentStreak, &s.LongestStreak, &s.LastGameDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no stats record: player_id=%s", playerID)
			return nil, nil
		}
		log.Error("failed to get stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) Save(ctx context.Context, playerID string, stats models.UserStats) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("saving stats: player_id=%s, total_games=%d, current_streak=%d", playerID, stats.TotalGames, stats.CurrentStreak)

	err := upsertStats(ctx, r.db, playerID, stats)
	if err != nil {
		log.Error("failed to save stats: %v", err)
	}
	return err
}

func upsertStats(ctx context.Context, ex execer, playerID string, stats models.UserStats) error {
	_, err := ex.ExecContext(ctx, `
INSERT INTO user_stats (
    player_id, total_games, total_wins, total_losses, win_rate, average_mistakes,
    perfect_games, current_streak, longest_streak, last_game_date, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(player_id) DO UPDATE SET
    total_games = excluded.total_games,
    total_wins = excluded.total_wins,
    total_losses = excluded.total_losses,
    win_rate = excluded.win_rate,
    average_mistakes = excluded.average_mistakes,
    perfect_games = excluded.perfect_games,
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_game_date = excluded.last_game_date,
    updated_at = CURRENT_TIMESTAMP
`, playerID, stats.TotalGames, stats.TotalWins, stats.TotalLosses, stats.WinRate, stats.AverageMistakes,
		stats.PerfectGames, stats.CurrentStreak, stats.LongestStreak, stats.LastGameDate)
	return err
}
