package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/wordgroups/internal/models"
)

func TestIsConsecutiveDay(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		current string
		want    bool
	}{
		{"no previous game", "", "2026-03-14", true},
		{"same day", "2026-03-14", "2026-03-14", true},
		{"next day", "2026-03-14", "2026-03-15", true},
		{"two day gap", "2026-03-14", "2026-03-16", false},
		{"across month boundary", "2026-02-28", "2026-03-01", true},
		{"unparseable last", "not-a-date", "2026-03-14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConsecutiveDay(tt.last, tt.current))
		})
	}
}

func TestApply(t *testing.T) {
	s := Initial()

	s = Apply(s, GameResult{Won: true, Mistakes: 0, DateKey: "2026-03-10"})
	assert.Equal(t, 1, s.TotalGames)
	assert.Equal(t, 1, s.TotalWins)
	assert.Equal(t, 1, s.PerfectGames)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.InDelta(t, 100.0, s.WinRate, 0.001)
	assert.Equal(t, "2026-03-10", s.LastGameDate)

	// Next-day win extends the streak.
	s = Apply(s, GameResult{Won: true, Mistakes: 2, DateKey: "2026-03-11"})
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.InDelta(t, 1.0, s.AverageMistakes, 0.001)

	// A loss resets the current streak but not the longest.
	s = Apply(s, GameResult{Won: false, Mistakes: 4, DateKey: "2026-03-12"})
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 1, s.TotalLosses)
	assert.InDelta(t, 66.666, s.WinRate, 0.01)
	assert.Equal(t, "2026-03-12", s.LastGameDate, "losses still move the last game date")

	// Day-after-loss win continues from zero: streak restarts at one.
	s = Apply(s, GameResult{Won: true, Mistakes: 1, DateKey: "2026-03-13"})
	assert.Equal(t, 1, s.CurrentStreak)

	// A gap breaks adjacency; the win still restarts the streak at one.
	s = Apply(s, GameResult{Won: true, Mistakes: 0, DateKey: "2026-03-20"})
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 2, s.PerfectGames)
	assert.Equal(t, 5, s.TotalGames)
	assert.InDelta(t, 1.4, s.AverageMistakes, 0.001)
}

func TestApplyStreakSurvivesSameDayGame(t *testing.T) {
	s := Apply(Initial(), GameResult{Won: true, Mistakes: 0, DateKey: "2026-03-10"})
	s = Apply(s, GameResult{Won: true, Mistakes: 1, DateKey: "2026-03-10"})
	assert.Equal(t, 2, s.CurrentStreak)
}

func TestRecompute(t *testing.T) {
	history := []models.GameHistoryRecord{
		// Newest first, the order a history listing returns.
		{PuzzleDate: "2026-03-12", Won: true, Mistakes: 1, SolvedGroups: []models.SolvedGroup{
			{Difficulty: 0}, {Difficulty: 1}, {Difficulty: 2}, {Difficulty: 3},
		}},
		{PuzzleDate: "2026-03-11", Won: false, Mistakes: 4, SolvedGroups: []models.SolvedGroup{
			{Difficulty: 0}, {Difficulty: 1},
		}},
		{PuzzleDate: "2026-03-10", Won: true, Mistakes: 0, SolvedGroups: []models.SolvedGroup{
			{Difficulty: 0}, {Difficulty: 1}, {Difficulty: 2}, {Difficulty: 3},
		}},
	}

	got := Recompute(history)

	assert.Equal(t, 3, got.TotalGames)
	assert.Equal(t, 2, got.TotalWins)
	assert.Equal(t, 1, got.TotalLosses)
	assert.Equal(t, 1, got.PerfectGames)
	assert.Equal(t, 1, got.CurrentStreak, "loss on the 11th reset the streak")
	assert.Equal(t, 1, got.LongestStreak)
	assert.Equal(t, "2026-03-12", got.LastGameDate)
	assert.Equal(t, [4]int{3, 3, 2, 2}, got.SolvedByDifficulty)
	assert.InDelta(t, 66.666, got.WinRate, 0.01)
}

func TestRecomputeEmptyHistory(t *testing.T) {
	got := Recompute(nil)
	assert.Equal(t, Initial(), got.UserStats)
	assert.Equal(t, [4]int{}, got.SolvedByDifficulty)
}
