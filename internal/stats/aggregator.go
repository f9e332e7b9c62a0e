package stats

import (
	"sort"
	"time"

	"github.com/vytor/wordgroups/internal/models"
)

// GameResult is the input to one incremental stats update.
type GameResult struct {
	Won      bool
	Mistakes int
	DateKey  string // YYYY-MM-DD
}

// Initial returns the stats record for a player with no completed games.
func Initial() models.UserStats {
	return models.UserStats{}
}

// IsConsecutiveDay reports whether current falls on the same calendar day
// as last, or on the day immediately after. An empty last (no games yet)
// counts as consecutive so a first win starts a streak.
func IsConsecutiveDay(last, current string) bool {
	if last == "" {
		return true
	}
	lastDay, err := time.Parse("2006-01-02", last)
	if err != nil {
		return false
	}
	currentDay, err := time.Parse("2006-01-02", current)
	if err != nil {
		return false
	}
	diff := currentDay.Sub(lastDay)
	return diff <= 24*time.Hour
}

// Apply folds one completed game into the stats record. Called exactly once
// per completed game.
//
// Streaks use calendar-day adjacency: a win extends the streak only when it
// lands on the same day as, or the day after, the previous completed game.
func Apply(s models.UserStats, r GameResult) models.UserStats {
	totalGamesOld := s.TotalGames
	s.TotalGames++
	if r.Won {
		s.TotalWins++
	} else {
		s.TotalLosses++
	}

	// Running weighted mean; exact for small integer mistake counts.
	s.AverageMistakes = (s.AverageMistakes*float64(totalGamesOld) + float64(r.Mistakes)) / float64(s.TotalGames)

	if r.Won && r.Mistakes == 0 {
		s.PerfectGames++
	}

	if r.Won {
		if IsConsecutiveDay(s.LastGameDate, r.DateKey) {
			s.CurrentStreak++
		} else {
			s.CurrentStreak = 1
		}
		if s.CurrentStreak > s.LongestStreak {
			s.LongestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}

	s.WinRate = float64(s.TotalWins) / float64(s.TotalGames) * 100
	s.LastGameDate = r.DateKey
	return s
}

// Recompute rebuilds lifetime stats from the full history. Records are
// folded through Apply in ascending date order, so both update paths share
// one streak definition, and solved groups are tallied per difficulty rank.
func Recompute(history []models.GameHistoryRecord) models.ProfileStats {
	ordered := append([]models.GameHistoryRecord(nil), history...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].PuzzleDate < ordered[j].PuzzleDate
	})

	out := models.ProfileStats{UserStats: Initial()}
	for _, rec := range ordered {
		out.UserStats = Apply(out.UserStats, GameResult{
			Won:      rec.Won,
			Mistakes: rec.Mistakes,
			DateKey:  rec.PuzzleDate,
		})
		for _, g := range rec.SolvedGroups {
			if g.Difficulty >= 0 && g.Difficulty < len(out.SolvedByDifficulty) {
				out.SolvedByDifficulty[g.Difficulty]++
			}
		}
	}
	return out
}
