package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vytor/wordgroups/internal/errors"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
)

// PuzzleService handles puzzle authoring and lookup
type PuzzleService interface {
	Create(ctx context.Context, p models.Puzzle) (*models.Puzzle, error)
	Update(ctx context.Context, p models.Puzzle) (*models.Puzzle, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Puzzle, error)
	GetByDate(ctx context.Context, dateKey string) (*models.Puzzle, error)
	GetToday(ctx context.Context) (*models.Puzzle, error)
	List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error)
}

type puzzleService struct {
	puzzleRepo repository.PuzzleRepository
	now        func() time.Time
}

// NewPuzzleService creates a new PuzzleService
func NewPuzzleService(puzzleRepo repository.PuzzleRepository) PuzzleService {
	return &puzzleService{puzzleRepo: puzzleRepo, now: time.Now}
}

func validateSolution(solution models.Solution) error {
	if len(solution) != 4 {
		return errors.NewValidationError("solution", fmt.Sprintf("expected 4 categories, got %d", len(solution)))
	}
	names := make(map[string]bool, 4)
	ranks := make(map[int]bool, 4)
	words := make(map[string]bool, 16)
	for _, cat := range solution {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return errors.NewValidationError("solution", "category name must not be empty")
		}
		if names[name] {
			return errors.NewValidationError("solution", fmt.Sprintf("duplicate category name: %s", name))
		}
		names[name] = true

		if cat.Theme.Difficulty < 0 || cat.Theme.Difficulty > 3 {
			return errors.NewValidationError("solution", fmt.Sprintf("difficulty out of range for %s: %d", name, cat.Theme.Difficulty))
		}
		if ranks[cat.Theme.Difficulty] {
			return errors.NewValidationError("solution", fmt.Sprintf("duplicate difficulty rank: %d", cat.Theme.Difficulty))
		}
		ranks[cat.Theme.Difficulty] = true

		if len(cat.Theme.Words) != 4 {
			return errors.NewValidationError("solution", fmt.Sprintf("category %s has %d words, expected 4", name, len(cat.Theme.Words)))
		}
		for _, w := range cat.Theme.Words {
			if strings.TrimSpace(w) == "" {
				return errors.NewValidationError("solution", fmt.Sprintf("category %s has an empty word", name))
			}
			if words[w] {
				return errors.NewValidationError("solution", fmt.Sprintf("word appears in more than one category: %s", w))
			}
			words[w] = true
		}
	}
	return nil
}

func (s *puzzleService) Create(ctx context.Context, p models.Puzzle) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating puzzle: date_key=%s, title=%s", p.DateKey(), p.Title)

	if p.Date.IsZero() {
		return nil, errors.NewValidationError("date", "date is required")
	}
	if err := validateSolution(p.Solution); err != nil {
		return nil, err
	}

	existing, err := s.puzzleRepo.GetByDate(ctx, p.DateKey())
	if err != nil {
		log.Error("failed to check existing puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewValidationError("date", fmt.Sprintf("a puzzle already exists for %s", p.DateKey()))
	}

	id, err := s.puzzleRepo.Insert(ctx, p)
	if err != nil {
		log.Error("failed to insert puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	created, err := s.puzzleRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to reload puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("puzzle created: id=%s, date_key=%s", id, p.DateKey())
	return created, nil
}

func (s *puzzleService) Update(ctx context.Context, p models.Puzzle) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating puzzle: id=%s", p.ID)

	if p.ID == "" {
		return nil, errors.NewValidationError("id", "id is required")
	}
	if p.Date.IsZero() {
		return nil, errors.NewValidationError("date", "date is required")
	}
	if err := validateSolution(p.Solution); err != nil {
		return nil, err
	}

	existing, err := s.puzzleRepo.Get(ctx, p.ID)
	if err != nil {
		log.Error("failed to load puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing == nil {
		return nil, errors.NewNotFoundError("puzzle", p.ID)
	}

	// Moving a puzzle to a new date must not collide with another one.
	if existing.DateKey() != p.DateKey() {
		other, err := s.puzzleRepo.GetByDate(ctx, p.DateKey())
		if err != nil {
			log.Error("failed to check date collision: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if other != nil {
			return nil, errors.NewValidationError("date", fmt.Sprintf("a puzzle already exists for %s", p.DateKey()))
		}
	}

	if err := s.puzzleRepo.Update(ctx, p); err != nil {
		log.Error("failed to update puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	updated, err := s.puzzleRepo.Get(ctx, p.ID)
	if err != nil {
		log.Error("failed to reload puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("puzzle updated: id=%s", p.ID)
	return updated, nil
}

func (s *puzzleService) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting puzzle: id=%s", id)

	existing, err := s.puzzleRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load puzzle: %v", err)
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("puzzle", id)
	}
	if err := s.puzzleRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete puzzle: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("puzzle deleted: id=%s", id)
	return nil
}

func (s *puzzleService) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting puzzle: id=%s", id)

	p, err := s.puzzleRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("puzzle", id)
	}
	return p, nil
}

func (s *puzzleService) GetByDate(ctx context.Context, dateKey string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting puzzle by date: date_key=%s", dateKey)

	if _, err := time.Parse("2006-01-02", dateKey); err != nil {
		return nil, errors.NewValidationError("date", "expected YYYY-MM-DD")
	}
	p, err := s.puzzleRepo.GetByDate(ctx, dateKey)
	if err != nil {
		log.Error("failed to get puzzle by date: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("puzzle", dateKey)
	}
	return p, nil
}

func (s *puzzleService) GetToday(ctx context.Context) (*models.Puzzle, error) {
	return s.GetByDate(ctx, models.DateKey(s.now()))
}

func (s *puzzleService) List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing puzzles: author=%s, limit=%d, offset=%d", filter.Author, filter.Limit, filter.Offset)

	puzzles, err := s.puzzleRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return puzzles, nil
}
