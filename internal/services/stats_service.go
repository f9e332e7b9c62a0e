package services

import (
	"context"

	"github.com/vytor/wordgroups/internal/errors"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
	"github.com/vytor/wordgroups/internal/stats"
)

// StatsService handles player statistics and game history
type StatsService interface {
	GetStats(ctx context.Context, playerID string) (*models.UserStats, error)
	GetProfileStats(ctx context.Context, playerID string) (*models.ProfileStats, error)
	ListHistory(ctx context.Context, playerID string, filter models.HistoryFilter) ([]models.GameHistoryRecord, int, error)
}

type statsService struct {
	statsRepo   repository.StatsRepository
	historyRepo repository.HistoryRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, historyRepo repository.HistoryRepository) StatsService {
	return &statsService{statsRepo: statsRepo, historyRepo: historyRepo}
}

func (s *statsService) GetStats(ctx context.Context, playerID string) (*models.UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats: player_id=%s", playerID)

	current, err := s.statsRepo.Get(ctx, playerID)
	if err != nil {
		log.Error("failed to get stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if current == nil {
		initial := stats.Initial()
		return &initial, nil
	}
	return current, nil
}

// GetProfileStats rebuilds lifetime stats from the full game history, which
// also yields the per-difficulty solve tally the incremental record lacks.
func (s *statsService) GetProfileStats(ctx context.Context, playerID string) (*models.ProfileStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile stats: player_id=%s", playerID)

	total, err := s.historyRepo.Count(ctx, playerID)
	if err != nil {
		log.Error("failed to count history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	history, err := s.historyRepo.List(ctx, playerID, models.HistoryFilter{Limit: total})
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	profile := stats.Recompute(history)
	return &profile, nil
}

func (s *statsService) ListHistory(ctx context.Context, playerID string, filter models.HistoryFilter) ([]models.GameHistoryRecord, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing history: player_id=%s, limit=%d, offset=%d", playerID, filter.Limit, filter.Offset)

	records, err := s.historyRepo.List(ctx, playerID, filter)
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.historyRepo.Count(ctx, playerID)
	if err != nil {
		log.Error("failed to count history: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return records, total, nil
}
