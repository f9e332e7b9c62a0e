package models

import "time"

// SolvedGroup is a theme promoted to solved state. The slice of solved
// groups on a session is append-only and ordered by time of solving.
type SolvedGroup struct {
	Category   string   `json:"category"`
	Difficulty int      `json:"difficulty"`
	Words      []string `json:"words"`
}

// Attempt records one submission: the difficulty rank of each selected
// word, in selection order. Consumers sort for display.
type Attempt struct {
	Categories []int `json:"categories"`
}

// GameSnapshot is the persisted shape of a play session. Selected words are
// deliberately absent: selection is ephemeral and never stored.
type GameSnapshot struct {
	Mistakes       int           `json:"mistakes"`
	SolvedGroups   []SolvedGroup `json:"solvedGroups"`
	AttemptHistory []Attempt     `json:"attemptHistory"`
	Words          []string      `json:"words"`
}

// GameHistoryRecord is the remote completed-game record, immutable once
// written, one per (player, puzzle date).
type GameHistoryRecord struct {
	PuzzleID       string        `json:"puzzleId"`
	PuzzleDate     string        `json:"puzzleDate"` // YYYY-MM-DD
	Completed      bool          `json:"completed"`
	Won            bool          `json:"won"`
	Mistakes       int           `json:"mistakes"`
	SolvedGroups   []SolvedGroup `json:"solvedGroups"`
	AttemptHistory []Attempt     `json:"attemptHistory"`
	CompletedAt    time.Time     `json:"completedAt"`
}

// HistoryFilter narrows history listings; records come back newest first.
type HistoryFilter struct {
	Limit  int
	Offset int
}
