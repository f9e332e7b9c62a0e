package game

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vytor/wordgroups/internal/models"
)

// difficultyGlyphs maps ranks 0..3 to the share-card squares.
var difficultyGlyphs = [...]string{"\U0001F7E8", "\U0001F7E9", "\U0001F7E6", "\U0001F7EA"}

// unknownGlyph stands in for a rank outside 0..3; it should never show up
// for well-formed puzzles.
const unknownGlyph = "⬜"

// ShareText renders the copyable result card: a date header, the win or
// loss summary, then one emoji line per attempt with ranks sorted ascending
// and a check mark on correct guesses.
func ShareText(date time.Time, won bool, mistakes int, attempts []models.Attempt) string {
	header := fmt.Sprintf("Connections %s", date.UTC().Format("02.01.2006"))

	var summary string
	if won {
		summary = fmt.Sprintf("Solved with %d mistakes", mistakes)
	} else {
		summary = fmt.Sprintf("Not solved (%d/%d mistakes)", mistakes, MaxMistakes)
	}

	lines := make([]string, 0, len(attempts))
	for _, attempt := range attempts {
		sorted := append([]int(nil), attempt.Categories...)
		sort.Ints(sorted)

		var sb strings.Builder
		for _, rank := range sorted {
			sb.WriteString(glyphFor(rank))
		}
		if isUniform(attempt.Categories) {
			sb.WriteString(" ✓")
		}
		lines = append(lines, sb.String())
	}

	return header + "\n" + summary + "\n\n" + strings.Join(lines, "\n")
}

func glyphFor(rank int) string {
	if rank >= 0 && rank < len(difficultyGlyphs) {
		return difficultyGlyphs[rank]
	}
	return unknownGlyph
}

func isUniform(categories []int) bool {
	if len(categories) == 0 {
		return false
	}
	for _, c := range categories {
		if c != categories[0] {
			return false
		}
	}
	return true
}
