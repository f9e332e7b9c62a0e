package models

// UserStats is the durable lifetime record for one player, updated
// incrementally once per completed game.
type UserStats struct {
	TotalGames      int     `json:"totalGames"`
	TotalWins       int     `json:"totalWins"`
	TotalLosses     int     `json:"totalLosses"`
	WinRate         float64 `json:"winRate"`
	AverageMistakes float64 `json:"averageMistakes"`
	PerfectGames    int     `json:"perfectGames"`
	CurrentStreak   int     `json:"currentStreak"`
	LongestStreak   int     `json:"longestStreak"`
	LastGameDate    string  `json:"lastGameDate,omitempty"` // YYYY-MM-DD, empty when no games yet
}

// ProfileStats is the detailed profile view: recomputed lifetime stats plus
// a per-difficulty tally of solved groups across all history.
type ProfileStats struct {
	UserStats
	SolvedByDifficulty [4]int `json:"solvedByDifficulty"`
}
