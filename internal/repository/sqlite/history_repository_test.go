package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/testutil"
)

func testHistoryRecord(dateKey string, won bool) models.GameHistoryRecord {
	return models.GameHistoryRecord{
		PuzzleID:   "puzzle-" + dateKey,
		PuzzleDate: dateKey,
		Completed:  true,
		Won:        won,
		Mistakes:   2,
		SolvedGroups: []models.SolvedGroup{
			{Category: "Fruits", Difficulty: 0, Words: []string{"APPLE", "PEAR", "PLUM", "FIG"}},
		},
		AttemptHistory: []models.Attempt{
			{Categories: []int{0, 0, 0, 0}},
			{Categories: []int{1, 1, 2, 2}},
		},
		CompletedAt: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
	}
}

func TestHistoryRepositorySaveGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	rec := testHistoryRecord("2026-03-14", true)
	require.NoError(t, repo.Save(ctx, "player-1", rec))

	got, err := repo.Get(ctx, "player-1", "2026-03-14")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.PuzzleID, got.PuzzleID)
	assert.True(t, got.Won)
	assert.True(t, got.Completed)
	assert.Equal(t, rec.SolvedGroups, got.SolvedGroups)
	assert.Equal(t, rec.AttemptHistory, got.AttemptHistory)
	assert.True(t, got.CompletedAt.Equal(rec.CompletedAt))
}

func TestHistoryRepositoryAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	repo := NewHistoryRepository(db)

	got, err := repo.Get(context.Background(), "player-1", "2026-03-14")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryRepositorySaveOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "player-1", testHistoryRecord("2026-03-14", false)))
	require.NoError(t, repo.Save(ctx, "player-1", testHistoryRecord("2026-03-14", true)))

	got, err := repo.Get(ctx, "player-1", "2026-03-14")
	require.NoError(t, err)
	assert.True(t, got.Won, "last write wins")

	count, err := repo.Count(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHistoryRepositoryListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	for _, day := range []string{"2026-03-12", "2026-03-14", "2026-03-13"} {
		require.NoError(t, repo.Save(ctx, "player-1", testHistoryRecord(day, true)))
	}
	require.NoError(t, repo.Save(ctx, "player-2", testHistoryRecord("2026-03-14", false)))

	records, err := repo.List(ctx, "player-1", models.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-03-14", records[0].PuzzleDate)
	assert.Equal(t, "2026-03-12", records[2].PuzzleDate)

	page, err := repo.List(ctx, "player-1", models.HistoryFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2026-03-13", page[0].PuzzleDate)

	count, err := repo.Count(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
