package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordgroups/internal/models"
)

func testPuzzle() *models.Puzzle {
	return &models.Puzzle{
		ID:       "puzzle-1",
		Title:    "Test Puzzle",
		Date:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Solution: testSolution(),
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func selectWords(t *testing.T, s *Session, words ...string) {
	t.Helper()
	for _, w := range words {
		require.True(t, s.Toggle(w), "expected to select %q", w)
	}
}

func TestNewSession(t *testing.T) {
	s := New(testPuzzle(), testRNG())

	assert.Equal(t, StatusInProgress, s.Status())
	assert.Len(t, s.Words(), 16)
	assert.Empty(t, s.Selected())
	assert.Empty(t, s.SolvedGroups())
	assert.Zero(t, s.Mistakes())
	assert.ElementsMatch(t, testPuzzle().Solution.AllWords(), s.Words())
}

func TestSessionWin(t *testing.T) {
	s := New(testPuzzle(), testRNG())

	groups := [][]string{
		{"APPLE", "PEAR", "PLUM", "FIG"},
		{"RED", "BLUE", "GREEN", "PINK"},
		{"IRON", "GOLD", "ZINC", "LEAD"},
		{"NILE", "AMAZON", "VOLGA", "RHINE"},
	}
	for i, words := range groups {
		selectWords(t, s, words...)
		res := s.Submit()
		require.True(t, res.Applied)
		assert.True(t, res.Correct)
		require.NotNil(t, res.Solved)
		assert.ElementsMatch(t, words, res.Solved.Words)
		assert.Len(t, s.SolvedGroups(), i+1)
		assert.Empty(t, s.Selected(), "selection clears after submit")

		// Solved words move to the front of the display order.
		assert.ElementsMatch(t, words, s.Words()[:4])
	}

	assert.Equal(t, StatusWon, s.Status())
	assert.Zero(t, s.Mistakes())
	assert.Len(t, s.Attempts(), 4)

	// Terminal: nothing moves anymore.
	assert.False(t, s.Toggle("APPLE"))
	res := s.Submit()
	assert.False(t, res.Applied)
}

func TestSessionMistakesAndLoss(t *testing.T) {
	s := New(testPuzzle(), testRNG())

	wrong := []string{"APPLE", "PEAR", "PLUM", "RED"} // three fruits and a color
	for i := 1; i <= MaxMistakes; i++ {
		selectWords(t, s, wrong...)
		res := s.Submit()
		require.True(t, res.Applied)
		assert.False(t, res.Correct)
		assert.True(t, res.OneAway)
		assert.Equal(t, i, s.Mistakes())
	}

	assert.Equal(t, StatusLost, s.Status())
	assert.Len(t, s.Attempts(), MaxMistakes)
	assert.Equal(t, []int{0, 0, 0, 1}, s.Attempts()[0].Categories)

	assert.False(t, s.Toggle("GOLD"))
}

func TestSessionSubmitGuards(t *testing.T) {
	s := New(testPuzzle(), testRNG())

	res := s.Submit()
	assert.False(t, res.Applied, "empty selection is rejected")
	assert.Empty(t, s.Attempts())

	selectWords(t, s, "APPLE", "PEAR")
	res = s.Submit()
	assert.False(t, res.Applied, "partial selection is rejected")
	assert.Len(t, s.Selected(), 2, "rejected submit keeps the selection")
}

func TestSessionToggleGuards(t *testing.T) {
	s := New(testPuzzle(), testRNG())

	assert.False(t, s.Toggle("BANANA"), "unknown word")

	selectWords(t, s, "APPLE", "PEAR", "PLUM", "FIG")
	assert.False(t, s.Toggle("RED"), "selection already full")

	// Toggling a selected word deselects it.
	assert.True(t, s.Toggle("FIG"))
	assert.Len(t, s.Selected(), 3)
	assert.True(t, s.Toggle("FIG"))

	require.True(t, s.Submit().Correct)
	assert.False(t, s.Toggle("APPLE"), "solved word")
}

func TestSessionDeselectAll(t *testing.T) {
	s := New(testPuzzle(), testRNG())
	selectWords(t, s, "APPLE", "RED", "IRON")
	s.DeselectAll()
	assert.Empty(t, s.Selected())
}

func TestSessionShuffleKeepsSolvedPrefix(t *testing.T) {
	s := New(testPuzzle(), testRNG())
	selectWords(t, s, "APPLE", "PEAR", "PLUM", "FIG")
	require.True(t, s.Submit().Correct)

	before := s.Words()
	s.Shuffle(testRNG())
	after := s.Words()

	assert.Equal(t, before[:4], after[:4], "solved words keep their position")
	assert.ElementsMatch(t, before[4:], after[4:])
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	puzzle := testPuzzle()
	s := New(puzzle, testRNG())

	selectWords(t, s, "APPLE", "PEAR", "PLUM", "FIG")
	require.True(t, s.Submit().Correct)
	selectWords(t, s, "RED", "BLUE", "GREEN", "NILE")
	require.False(t, s.Submit().Correct)

	snap := s.Snapshot()
	restored, err := Restore(puzzle, snap)
	require.NoError(t, err)

	assert.Equal(t, s.Words(), restored.Words())
	assert.Equal(t, s.SolvedGroups(), restored.SolvedGroups())
	assert.Equal(t, s.Mistakes(), restored.Mistakes())
	assert.Equal(t, s.Attempts(), restored.Attempts())
	assert.Empty(t, restored.Selected(), "selection is not persisted")
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	puzzle := testPuzzle()
	good := New(puzzle, testRNG()).Snapshot()

	t.Run("foreign word set", func(t *testing.T) {
		snap := good
		snap.Words = append([]string(nil), good.Words...)
		snap.Words[0] = "BANANA"
		_, err := Restore(puzzle, snap)
		assert.Error(t, err)
	})

	t.Run("impossible mistake count", func(t *testing.T) {
		snap := good
		snap.Mistakes = MaxMistakes + 1
		_, err := Restore(puzzle, snap)
		assert.Error(t, err)
	})
}

func TestFromHistory(t *testing.T) {
	puzzle := testPuzzle()
	rec := models.GameHistoryRecord{
		PuzzleID:   puzzle.ID,
		PuzzleDate: "2026-03-14",
		Completed:  true,
		Won:        true,
		Mistakes:   1,
		SolvedGroups: []models.SolvedGroup{
			{Category: "Metals", Difficulty: 2, Words: []string{"IRON", "GOLD", "ZINC", "LEAD"}},
			{Category: "Fruits", Difficulty: 0, Words: []string{"APPLE", "PEAR", "PLUM", "FIG"}},
		},
		AttemptHistory: []models.Attempt{
			{Categories: []int{2, 2, 2, 2}},
			{Categories: []int{0, 0, 0, 1}},
			{Categories: []int{0, 0, 0, 0}},
		},
	}

	s := FromHistory(puzzle, rec)

	// Solved words first in solve order, then the rest in authored order.
	assert.Equal(t, []string{
		"IRON", "GOLD", "ZINC", "LEAD",
		"APPLE", "PEAR", "PLUM", "FIG",
		"RED", "BLUE", "GREEN", "PINK",
		"NILE", "AMAZON", "VOLGA", "RHINE",
	}, s.Words())
	assert.Equal(t, 1, s.Mistakes())
	assert.Len(t, s.Attempts(), 3)
}
