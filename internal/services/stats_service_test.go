package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/testutil/mocks"
)

func TestGetStatsNoRecordYet(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	historyRepo := new(mocks.MockHistoryRepository)
	svc := NewStatsService(statsRepo, historyRepo)

	statsRepo.On("Get", mock.Anything, "player-1").Return(nil, nil)

	got, err := svc.GetStats(context.Background(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalGames)
	assert.Empty(t, got.LastGameDate)
}

func TestGetStatsExisting(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	historyRepo := new(mocks.MockHistoryRepository)
	svc := NewStatsService(statsRepo, historyRepo)

	existing := models.UserStats{TotalGames: 7, TotalWins: 5, CurrentStreak: 3}
	statsRepo.On("Get", mock.Anything, "player-1").Return(&existing, nil)

	got, err := svc.GetStats(context.Background(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, &existing, got)
}

func TestGetProfileStatsRecomputesFromHistory(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	historyRepo := new(mocks.MockHistoryRepository)
	svc := NewStatsService(statsRepo, historyRepo)

	history := []models.GameHistoryRecord{
		{PuzzleDate: "2026-03-11", Won: true, Mistakes: 0, SolvedGroups: []models.SolvedGroup{
			{Difficulty: 0}, {Difficulty: 1}, {Difficulty: 2}, {Difficulty: 3},
		}},
		{PuzzleDate: "2026-03-10", Won: false, Mistakes: 4, SolvedGroups: []models.SolvedGroup{
			{Difficulty: 0},
		}},
	}
	historyRepo.On("Count", mock.Anything, "player-1").Return(2, nil)
	historyRepo.On("List", mock.Anything, "player-1", models.HistoryFilter{Limit: 2}).Return(history, nil)

	got, err := svc.GetProfileStats(context.Background(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalGames)
	assert.Equal(t, 1, got.TotalWins)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, [4]int{2, 1, 1, 1}, got.SolvedByDifficulty)
}

func TestListHistory(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepository)
	historyRepo := new(mocks.MockHistoryRepository)
	svc := NewStatsService(statsRepo, historyRepo)

	records := []models.GameHistoryRecord{{PuzzleDate: "2026-03-14"}}
	historyRepo.On("List", mock.Anything, "player-1", models.HistoryFilter{Limit: 10}).Return(records, nil)
	historyRepo.On("Count", mock.Anything, "player-1").Return(25, nil)

	got, total, err := svc.ListHistory(context.Background(), "player-1", models.HistoryFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 25, total)
}
