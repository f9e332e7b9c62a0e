package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/vytor/wordgroups/internal/models"
)

// Status is the lifecycle state of a play session. Won and Lost are
// terminal: no transition leaves them.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Session owns the mutable state of one (player, puzzle) play-through.
// All transitions are synchronous and CPU-only; persistence happens
// outside, on the snapshots this type hands out.
type Session struct {
	puzzle       *models.Puzzle
	words        []string
	selected     []string
	solvedGroups []models.SolvedGroup
	mistakes     int
	attempts     []models.Attempt
}

// SubmitResult reports the outcome of a Submit transition. Applied is false
// when the guard rejected the submission (not exactly four words selected,
// or the session already ended).
type SubmitResult struct {
	Applied bool
	Correct bool
	OneAway bool
	Solved  *models.SolvedGroup
	Status  Status
}

// New creates a fresh session: all sixteen words in one independent random
// permutation, nothing selected, nothing solved.
func New(puzzle *models.Puzzle, rng *rand.Rand) *Session {
	return &Session{
		puzzle: puzzle,
		words:  ShuffleWords(rng, puzzle.Solution.AllWords()),
	}
}

// Restore rebuilds a session from a stored snapshot. A snapshot that does
// not describe this puzzle (wrong word set, impossible counters) is
// rejected; callers treat that the same as no snapshot at all.
func Restore(puzzle *models.Puzzle, snap models.GameSnapshot) (*Session, error) {
	if !samePool(snap.Words, puzzle.Solution.AllWords()) {
		return nil, fmt.Errorf("snapshot words do not match puzzle")
	}
	if snap.Mistakes < 0 || snap.Mistakes > MaxMistakes {
		return nil, fmt.Errorf("snapshot mistakes out of range: %d", snap.Mistakes)
	}
	if len(snap.SolvedGroups) > 4 {
		return nil, fmt.Errorf("snapshot has %d solved groups", len(snap.SolvedGroups))
	}
	return &Session{
		puzzle:       puzzle,
		words:        append([]string(nil), snap.Words...),
		solvedGroups: append([]models.SolvedGroup(nil), snap.SolvedGroups...),
		mistakes:     snap.Mistakes,
		attempts:     append([]models.Attempt(nil), snap.AttemptHistory...),
	}, nil
}

// FromHistory rebuilds a session from a remote completed-game record. The
// word order is solved words in solve order followed by the remaining
// puzzle words in authored order; a completed game has no meaningful
// shuffle to preserve.
func FromHistory(puzzle *models.Puzzle, rec models.GameHistoryRecord) *Session {
	solved := make([]string, 0, 16)
	for _, g := range rec.SolvedGroups {
		solved = append(solved, g.Words...)
	}
	words := append([]string(nil), solved...)
	for _, w := range puzzle.Solution.AllWords() {
		if !contains(solved, w) {
			words = append(words, w)
		}
	}
	return &Session{
		puzzle:       puzzle,
		words:        words,
		solvedGroups: append([]models.SolvedGroup(nil), rec.SolvedGroups...),
		mistakes:     rec.Mistakes,
		attempts:     append([]models.Attempt(nil), rec.AttemptHistory...),
	}
}

// Status derives the lifecycle state from solved groups and mistakes.
func (s *Session) Status() Status {
	if IsWon(s.solvedGroups) {
		return StatusWon
	}
	if IsLost(s.mistakes, MaxMistakes) {
		return StatusLost
	}
	return StatusInProgress
}

// Puzzle returns the puzzle this session plays.
func (s *Session) Puzzle() *models.Puzzle {
	return s.puzzle
}

// Words returns the current display order: solved words at the front in
// solve order, then the unsolved pool.
func (s *Session) Words() []string {
	return append([]string(nil), s.words...)
}

// Selected returns the current selection in selection order.
func (s *Session) Selected() []string {
	return append([]string(nil), s.selected...)
}

// SolvedGroups returns the solved groups in solve order.
func (s *Session) SolvedGroups() []models.SolvedGroup {
	return append([]models.SolvedGroup(nil), s.solvedGroups...)
}

// Mistakes returns the number of incorrect submissions so far.
func (s *Session) Mistakes() int {
	return s.mistakes
}

// Attempts returns the submission history, oldest first.
func (s *Session) Attempts() []models.Attempt {
	return append([]models.Attempt(nil), s.attempts...)
}

// Toggle adds word to the selection, or removes it when already selected.
// Rejected without effect when the session has ended, the word is not an
// unsolved puzzle word, or the selection is already full.
func (s *Session) Toggle(word string) bool {
	if s.Status() != StatusInProgress {
		return false
	}
	if idx := index(s.selected, word); idx >= 0 {
		s.selected = append(s.selected[:idx], s.selected[idx+1:]...)
		return true
	}
	if len(s.selected) >= 4 {
		return false
	}
	if !contains(s.words, word) || s.isSolvedWord(word) {
		return false
	}
	s.selected = append(s.selected, word)
	return true
}

// DeselectAll clears the selection.
func (s *Session) DeselectAll() {
	s.selected = nil
}

// Shuffle re-permutes the unsolved tail of the word order. Solved words
// keep their relative front position.
func (s *Session) Shuffle(rng *rand.Rand) {
	if s.Status() != StatusInProgress {
		return
	}
	var solved, unsolved []string
	for _, w := range s.words {
		if s.isSolvedWord(w) {
			solved = append(solved, w)
		} else {
			unsolved = append(unsolved, w)
		}
	}
	s.words = append(solved, ShuffleWords(rng, unsolved)...)
}

// Submit evaluates the current four-word selection against the solution.
func (s *Session) Submit() SubmitResult {
	if s.Status() != StatusInProgress || len(s.selected) != 4 {
		return SubmitResult{Applied: false, Status: s.Status()}
	}

	categories := make([]int, len(s.selected))
	for i, w := range s.selected {
		categories[i] = CategoryOf(s.puzzle.Solution, w)
	}

	name, theme := FindMatchingTheme(s.selected, s.puzzle.Solution)
	s.attempts = append(s.attempts, models.Attempt{Categories: categories})
	s.selected = nil

	if theme != nil {
		group := models.SolvedGroup{
			Category:   name,
			Difficulty: theme.Difficulty,
			Words:      append([]string(nil), theme.Words...),
		}
		s.solvedGroups = append(s.solvedGroups, group)

		// Solved words accumulate at the front in solve order.
		rest := make([]string, 0, len(s.words))
		for _, w := range s.words {
			if !contains(theme.Words, w) {
				rest = append(rest, w)
			}
		}
		s.words = append(append([]string(nil), theme.Words...), rest...)

		return SubmitResult{
			Applied: true,
			Correct: true,
			Solved:  &group,
			Status:  s.Status(),
		}
	}

	s.mistakes++
	return SubmitResult{
		Applied: true,
		Correct: false,
		OneAway: IsOneAway(categories),
		Status:  s.Status(),
	}
}

// Snapshot copies the persistable state. Selection is deliberately not
// part of the snapshot.
func (s *Session) Snapshot() models.GameSnapshot {
	return models.GameSnapshot{
		Mistakes:       s.mistakes,
		SolvedGroups:   s.SolvedGroups(),
		AttemptHistory: s.Attempts(),
		Words:          s.Words(),
	}
}

func (s *Session) isSolvedWord(word string) bool {
	for _, g := range s.solvedGroups {
		if contains(g.Words, word) {
			return true
		}
	}
	return false
}

func index(words []string, word string) int {
	for i, w := range words {
		if w == word {
			return i
		}
	}
	return -1
}

func samePool(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
