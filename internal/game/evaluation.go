package game

import "github.com/vytor/wordgroups/internal/models"

// MaxMistakes is the mistake budget for a session.
const MaxMistakes = 4

// UnknownCategory is the sentinel rank for a word that is not part of the
// puzzle. It never appears for words drawn from the session's own pool, but
// the accessor must stay total for callers holding stale selections.
const UnknownCategory = -1

// CategoryOf returns the difficulty rank of the category containing word,
// or UnknownCategory when the word is not in the solution.
func CategoryOf(solution models.Solution, word string) int {
	for _, cat := range solution {
		for _, w := range cat.Theme.Words {
			if w == word {
				return cat.Theme.Difficulty
			}
		}
	}
	return UnknownCategory
}

// IsExactMatch reports whether every word of the theme is in the selection.
// With both sides holding exactly four distinct words this is set equality.
func IsExactMatch(selected []string, theme models.PuzzleTheme) bool {
	for _, w := range theme.Words {
		if !contains(selected, w) {
			return false
		}
	}
	return true
}

// FindMatchingTheme scans the categories in authored order and returns the
// first whose word set equals the selection. Categories are disjoint, so at
// most one can match a four-word selection; the stable order keeps behavior
// deterministic even against malformed puzzle data.
func FindMatchingTheme(selected []string, solution models.Solution) (string, *models.PuzzleTheme) {
	for _, cat := range solution {
		if IsExactMatch(selected, cat.Theme) {
			theme := cat.Theme
			return cat.Name, &theme
		}
	}
	return "", nil
}

// IsOneAway reports whether exactly three of the four submitted words share
// a category and the fourth belongs to a single other one. Any other rank
// distribution (4, 2-2, 2-1-1) is not one away.
func IsOneAway(categories []int) bool {
	counts := make(map[int]int, len(categories))
	for _, c := range categories {
		counts[c]++
	}
	var has3, has1 bool
	for _, n := range counts {
		switch n {
		case 3:
			has3 = true
		case 1:
			has1 = true
		}
	}
	return has3 && has1
}

// IsWon reports whether all four groups have been solved.
func IsWon(solvedGroups []models.SolvedGroup) bool {
	return len(solvedGroups) == 4
}

// IsLost reports whether the mistake budget is exhausted.
func IsLost(mistakes, maxMistakes int) bool {
	return mistakes >= maxMistakes
}

func contains(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
