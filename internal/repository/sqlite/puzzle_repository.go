package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
)

type puzzleRepository struct {
	db *sql.DB
}

// NewPuzzleRepository creates a new PuzzleRepository implementation
func NewPuzzleRepository(db *sql.DB) repository.PuzzleRepository {
	return &puzzleRepository{db: db}
}

func (r *puzzleRepository) scanPuzzle(scan func(dest ...any) error) (*models.Puzzle, error) {
	var p models.Puzzle
	var dateKey string
	var solution []byte
	if err := scan(&p.ID, &p.Title, &p.Author, &dateKey, &solution, &p.TimesPlayed, &p.TimesSolved, &p.CreatedAt); err != nil {
		return nil, err
	}
	date, err := time.ParseInLocation("2006-01-02", dateKey, time.UTC)
	if err != nil {
		return nil, err
	}
	p.Date = date
	if err := json.Unmarshal(solution, &p.Solution); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *puzzleRepository) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("getting puzzle: id=%s", id)

	row := r.db.QueryRowContext(ctx, `
SELECT id, title, author, date_key, solution, times_played, times_solved, created_at
FROM puzzles
WHERE id = ?
`, id)
	p, err := r.scanPuzzle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("puzzle not found: id=%s", id)
			return nil, nil
		}
		log.Error("failed to get puzzle: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *puzzleRepository) GetByDate(ctx context.Context, dateKey string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("getting puzzle: date_key=%s", dateKey)

	row := r.db.QueryRowContext(ctx, `
SELECT id, title, author, date_key, solution, times_played, times_solved, created_at
FROM puzzles
WHERE date_key = ?
`, dateKey)
	p, err := r.scanPuzzle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no puzzle for date_key=%s", dateKey)
			return nil, nil
		}
		log.Error("failed to get puzzle by date: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *puzzleRepository) List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("listing puzzles with filter: author=%s, limit=%d, offset=%d", filter.Author, filter.Limit, filter.Offset)

	query := sqlBuilder.Select(
		"id", "title", "author", "date_key", "solution", "times_played", "times_solved", "created_at",
	).From("puzzles")

	if filter.Author != "" {
		query = query.Where(squirrel.Eq{"author": filter.Author})
	}
	query = query.OrderBy("date_key DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, err
	}
	defer rows.Close()
	var puzzles []models.Puzzle
	for rows.Next() {
		p, err := r.scanPuzzle(rows.Scan)
		if err != nil {
			log.Error("failed to scan puzzle row: %v", err)
			return nil, err
		}
		puzzles = append(puzzles, *p)
	}
	log.Debug("found %d puzzles", len(puzzles))
	return puzzles, rows.Err()
}

func (r *puzzleRepository) Insert(ctx context.Context, p models.Puzzle) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("inserting puzzle: date_key=%s, title=%s", p.DateKey(), p.Title)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	solution, err := json.Marshal(p.Solution)
	if err != nil {
		log.Error("failed to encode solution: %v", err)
		return "", err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO puzzles (id, title, author, date_key, solution)
VALUES (?, ?, ?, ?, ?)
`, p.ID, p.Title, p.Author, p.DateKey(), solution)
	if err != nil {
		log.Error("failed to insert puzzle: %v", err)
		return "", err
	}
	log.Debug("puzzle inserted: id=%s", p.ID)
	return p.ID, nil
}

func (r *puzzleRepository) Update(ctx context.Context, p models.Puzzle) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("updating puzzle: id=%s", p.ID)

	solution, err := json.Marshal(p.Solution)
	if err != nil {
		log.Error("failed to encode solution: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE puzzles
SET title = ?, author = ?, date_key = ?, solution = ?
WHERE id = ?
`, p.Title, p.Author, p.DateKey(), solution, p.ID)
	if err != nil {
		log.Error("failed to update puzzle: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("no puzzle updated: id=%s", p.ID)
		return sql.ErrNoRows
	}
	return nil
}

func (r *puzzleRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("deleting puzzle: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM puzzles WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete puzzle: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("no puzzle deleted: id=%s", id)
		return sql.ErrNoRows
	}
	return nil
}

func (r *puzzleRepository) IncrementPlayed(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("incrementing times_played: id=%s", id)

	_, err := r.db.ExecContext(ctx, `UPDATE puzzles SET times_played = times_played + 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to increment times_played: %v", err)
	}
	return err
}

func (r *puzzleRepository) IncrementSolved(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("incrementing times_solved: id=%s", id)

	_, err := r.db.ExecContext(ctx, `UPDATE puzzles SET times_solved = times_solved + 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to increment times_solved: %v", err)
	}
	return err
}
