package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// PuzzleTheme is one hidden category: a difficulty rank and its four words.
// Difficulty ranks run 0 (easiest) through 3 (hardest).
type PuzzleTheme struct {
	Difficulty int      `json:"difficulty"`
	Words      []string `json:"words"`
}

// PuzzleCategory pairs a category name with its theme. Solution keeps
// categories in authored order (difficulty ascending), which matters for
// deterministic matching.
type PuzzleCategory struct {
	Name  string
	Theme PuzzleTheme
}

// Solution is the ordered set of a puzzle's four categories. On the wire it
// is a JSON object keyed by category name, matching the authoring format.
type Solution []PuzzleCategory

// MarshalJSON emits the categories as a JSON object in authored order.
func (s Solution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		theme, err := json.Marshal(cat.Theme)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(theme)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form and restores authored order by sorting
// on difficulty (name as tiebreak, in case of malformed input).
func (s *Solution) UnmarshalJSON(data []byte) error {
	var raw map[string]PuzzleTheme
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Solution, 0, len(raw))
	for name, theme := range raw {
		out = append(out, PuzzleCategory{Name: name, Theme: theme})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Theme.Difficulty != out[j].Theme.Difficulty {
			return out[i].Theme.Difficulty < out[j].Theme.Difficulty
		}
		return out[i].Name < out[j].Name
	})
	*s = out
	return nil
}

// Words returns every word in the solution, category by category in
// authored order.
func (s Solution) AllWords() []string {
	words := make([]string, 0, len(s)*4)
	for _, cat := range s {
		words = append(words, cat.Theme.Words...)
	}
	return words
}

// Puzzle is the immutable description of one day's puzzle.
type Puzzle struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Author      string    `json:"author,omitempty"`
	Date        time.Time `json:"date"`
	Solution    Solution  `json:"solution"`
	TimesPlayed int       `json:"times_played"`
	TimesSolved int       `json:"times_solved"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// DateKey returns the YYYY-MM-DD key the puzzle is stored and played under.
func (p *Puzzle) DateKey() string {
	return DateKey(p.Date)
}

// DateKey formats a time as the YYYY-MM-DD key used throughout persistence.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PuzzleFilter narrows puzzle listings.
type PuzzleFilter struct {
	Author string
	Limit  int
	Offset int
}
