package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/vytor/wordgroups/internal/errors"
	"github.com/vytor/wordgroups/internal/game"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/repository"
	"github.com/vytor/wordgroups/internal/worker"
)

// Identity names the caller of a game operation. DeviceID is always set;
// PlayerID is empty for anonymous play.
type Identity struct {
	PlayerID string
	DeviceID string
}

func (id Identity) key() string {
	if id.PlayerID != "" {
		return "p:" + id.PlayerID
	}
	return "d:" + id.DeviceID
}

// GameState is the caller-facing view of a play session.
type GameState struct {
	PuzzleID       string               `json:"puzzleId"`
	Date           string               `json:"date"`
	Title          string               `json:"title"`
	Status         game.Status          `json:"status"`
	Words          []string             `json:"words"`
	Selected       []string             `json:"selected"`
	SolvedGroups   []models.SolvedGroup `json:"solvedGroups"`
	Mistakes       int                  `json:"mistakes"`
	MistakesLeft   int                  `json:"mistakesLeft"`
	AttemptHistory []models.Attempt     `json:"attemptHistory"`
}

// SubmitOutcome extends GameState with the result of one submission.
type SubmitOutcome struct {
	GameState
	Correct bool                `json:"correct"`
	OneAway bool                `json:"oneAway"`
	Solved  *models.SolvedGroup `json:"solved,omitempty"`
}

// SessionService handles game play: loading or restoring sessions, applying
// transitions, and scheduling background persistence.
type SessionService interface {
	GetGame(ctx context.Context, id Identity, dateKey string) (*GameState, error)
	Toggle(ctx context.Context, id Identity, dateKey, word string) (*GameState, error)
	DeselectAll(ctx context.Context, id Identity, dateKey string) (*GameState, error)
	Shuffle(ctx context.Context, id Identity, dateKey string) (*GameState, error)
	Submit(ctx context.Context, id Identity, dateKey string) (*SubmitOutcome, error)
	ShareText(ctx context.Context, id Identity, dateKey string) (string, error)
}

type sessionEntry struct {
	mu      sync.Mutex
	session *game.Session
	rng     *rand.Rand
}

type sessionService struct {
	puzzleRepo  repository.PuzzleRepository
	snapshots   repository.SnapshotStore
	history     repository.HistoryRepository
	statsRepo   repository.StatsRepository
	completions repository.CompletionRepository
	pool        *worker.Pool

	mu       sync.Mutex
	sessions map[string]*sessionEntry

	now    func() time.Time
	newRNG func() *rand.Rand
}

// NewSessionService creates a new SessionService
func NewSessionService(puzzleRepo repository.PuzzleRepository, snapshots repository.SnapshotStore, history repository.HistoryRepository, statsRepo repository.StatsRepository, completions repository.CompletionRepository, pool *worker.Pool) SessionService {
	return &sessionService{
		puzzleRepo:  puzzleRepo,
		snapshots:   snapshots,
		history:     history,
		statsRepo:   statsRepo,
		completions: completions,
		pool:        pool,
		sessions:    make(map[string]*sessionEntry),
		now:         time.Now,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// entry returns the live session for (identity, date), building it from the
// first source that yields one: in-memory registry, the player's completed
// game record, the device snapshot, then a fresh game.
func (s *sessionService) entry(ctx context.Context, id Identity, dateKey string) (*sessionEntry, error) {
	log := logger.FromContext(ctx)

	if id.DeviceID == "" && id.PlayerID == "" {
		return nil, errors.NewBadRequestError("missing device id")
	}

	key := id.key() + "|" + dateKey
	s.mu.Lock()
	if e, ok := s.sessions[key]; ok {
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()

	puzzle, err := s.puzzleRepo.GetByDate(ctx, dateKey)
	if err != nil {
		log.Error("failed to load puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		return nil, errors.NewNotFoundError("puzzle", dateKey)
	}

	session := s.restore(ctx, id, dateKey, puzzle)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have built the session while we were loading.
	if e, ok := s.sessions[key]; ok {
		return e, nil
	}
	e := &sessionEntry{session: session, rng: s.newRNG()}
	s.sessions[key] = e
	return e, nil
}

func (s *sessionService) restore(ctx context.Context, id Identity, dateKey string, puzzle *models.Puzzle) *game.Session {
	log := logger.FromContext(ctx)

	if id.PlayerID != "" {
		rec, err := s.history.Get(ctx, id.PlayerID, dateKey)
		if err != nil {
			log.Warn("failed to load history record, falling through: %v", err)
		} else if rec != nil {
			log.Debug("restored completed game from history: player_id=%s, date_key=%s", id.PlayerID, dateKey)
			return game.FromHistory(puzzle, *rec)
		}
	}

	if id.DeviceID != "" {
		snap, err := s.snapshots.Load(ctx, id.DeviceID, dateKey)
		if err != nil {
			log.Warn("failed to load snapshot, falling through: %v", err)
		} else if snap != nil {
			session, err := game.Restore(puzzle, *snap)
			if err != nil {
				log.Warn("rejecting stored snapshot: %v", err)
			} else {
				log.Debug("restored session from snapshot: device_id=%s, date_key=%s", id.DeviceID, dateKey)
				return session
			}
		}
	}

	log.Debug("starting fresh session: date_key=%s", dateKey)
	session := game.New(puzzle, s.newRNG())
	// Persist right away so a reload keeps the same shuffle.
	s.persistLocal(id, dateKey, session.Snapshot())
	return session
}

func (s *sessionService) state(session *game.Session) *GameState {
	puzzle := session.Puzzle()
	return &GameState{
		PuzzleID:       puzzle.ID,
		Date:           puzzle.DateKey(),
		Title:          puzzle.Title,
		Status:         session.Status(),
		Words:          session.Words(),
		Selected:       session.Selected(),
		SolvedGroups:   session.SolvedGroups(),
		Mistakes:       session.Mistakes(),
		MistakesLeft:   game.MaxMistakes - session.Mistakes(),
		AttemptHistory: session.Attempts(),
	}
}

func (s *sessionService) persistLocal(id Identity, dateKey string, snap models.GameSnapshot) {
	if id.DeviceID == "" {
		return
	}
	s.pool.TrySubmit(&worker.SnapshotSaveJob{
		Snapshots: s.snapshots,
		DeviceID:  id.DeviceID,
		DateKey:   dateKey,
		Snapshot:  snap,
	})
}

func (s *sessionService) GetGame(ctx context.Context, id Identity, dateKey string) (*GameState, error) {
	e, err := s.entry(ctx, id, dateKey)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.state(e.session), nil
}

func (s *sessionService) Toggle(ctx context.Context, id Identity, dateKey, word string) (*GameState, error) {
	if word == "" {
		return nil, errors.NewValidationError("word", "word is required")
	}
	e, err := s.entry(ctx, id, dateKey)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Toggle(word)
	return s.state(e.session), nil
}

func (s *sessionService) DeselectAll(ctx context.Context, id Identity, dateKey string) (*GameState, error) {
	e, err := s.entry(ctx, id, dateKey)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.DeselectAll()
	return s.state(e.session), nil
}

func (s *sessionService) Shuffle(ctx context.Context, id Identity, dateKey string) (*GameState, error) {
	e, err := s.entry(ctx, id, dateKey)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Shuffle(e.rng)
	if e.session.Status() == game.StatusInProgress {
		s.persistLocal(id, dateKey, e.session.Snapshot())
	}
	return s.state(e.session), nil
}

func (s *sessionService) Submit(ctx context.Context, id Identity, dateKey string) (*SubmitOutcome, error) {
	log := logger.FromContext(ctx)

	e, err := s.entry(ctx, id, dateKey)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	result := e.session.Submit()
	if !result.Applied {
		if e.session.Status() != game.StatusInProgress {
			return nil, errors.NewValidationError("game", "game has already ended")
		}
		return nil, errors.NewValidationError("selection", "exactly 4 words must be selected")
	}

	s.persistLocal(id, dateKey, e.session.Snapshot())

	if result.Status != game.StatusInProgress {
		puzzle := e.session.Puzzle()
		log.Info("game finished: date_key=%s, status=%s, mistakes=%d", dateKey, result.Status, e.session.Mistakes())
		s.pool.TrySubmit(&worker.CompletionSyncJob{
			Puzzles:     s.puzzleRepo,
			StatsRepo:   s.statsRepo,
			Completions: s.completions,
			PlayerID:    id.PlayerID,
			Record: models.GameHistoryRecord{
				PuzzleID:       puzzle.ID,
				PuzzleDate:     dateKey,
				Completed:      true,
				Won:            result.Status == game.StatusWon,
				Mistakes:       e.session.Mistakes(),
				SolvedGroups:   e.session.SolvedGroups(),
				AttemptHistory: e.session.Attempts(),
				CompletedAt:    s.now().UTC(),
			},
		})
	}

	return &SubmitOutcome{
		GameState: *s.state(e.session),
		Correct:   result.Correct,
		OneAway:   result.OneAway,
		Solved:    result.Solved,
	}, nil
}

func (s *sessionService) ShareText(ctx context.Context, id Identity, dateKey string) (string, error) {
	e, err := s.entry(ctx, id, dateKey)
	if err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	status := e.session.Status()
	if status == game.StatusInProgress {
		return "", errors.NewValidationError("game", "game is not finished")
	}
	puzzle := e.session.Puzzle()
	return game.ShareText(puzzle.Date, status == game.StatusWon, e.session.Mistakes(), e.session.Attempts()), nil
}
