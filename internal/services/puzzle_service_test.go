package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/wordgroups/internal/errors"
	"github.com/vytor/wordgroups/internal/models"
	"github.com/vytor/wordgroups/internal/testutil/mocks"
)

func validationCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected AppError, got %T", err)
	return appErr.Code
}

func TestCreatePuzzle(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)
	puzzle := *testPuzzle()
	puzzle.ID = ""

	repo.On("GetByDate", mock.Anything, testDate).Return(nil, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return("new-id", nil)
	created := puzzle
	created.ID = "new-id"
	repo.On("Get", mock.Anything, "new-id").Return(&created, nil)

	got, err := svc.Create(context.Background(), puzzle)
	require.NoError(t, err)
	assert.Equal(t, "new-id", got.ID)
	repo.AssertExpectations(t)
}

func TestCreatePuzzleDateCollision(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)

	repo.On("GetByDate", mock.Anything, testDate).Return(testPuzzle(), nil)

	_, err := svc.Create(context.Background(), *testPuzzle())
	assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreatePuzzleValidation(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)

	base := func() models.Puzzle { return *testPuzzle() }

	t.Run("missing date", func(t *testing.T) {
		p := base()
		p.Date = time.Time{}
		_, err := svc.Create(context.Background(), p)
		assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	})

	t.Run("wrong category count", func(t *testing.T) {
		p := base()
		p.Solution = p.Solution[:3]
		_, err := svc.Create(context.Background(), p)
		assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	})

	t.Run("duplicate category name", func(t *testing.T) {
		p := base()
		p.Solution[1].Name = p.Solution[0].Name
		_, err := svc.Create(context.Background(), p)
		assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	})

	t.Run("duplicate difficulty rank", func(t *testing.T) {
		p := base()
		p.Solution[1].Theme.Difficulty = 0
		_, err := svc.Create(context.Background(), p)
		assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	})

	t.Run("word in two categories", func(t *testing.T) {
		p := base()
		p.Solution[1].Theme.Words = []string{"APPLE", "BLUE", "GREEN", "PINK"}
		_, err := svc.Create(context.Background(), p)
		assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	})

	t.Run("short category", func(t *testing.T) {
		p := base()
		p.Solution[2].Theme.Words = []string{"IRON", "GOLD", "ZINC"}
		_, err := svc.Create(context.Background(), p)
		assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	})

	t.Run("empty word", func(t *testing.T) {
		p := base()
		p.Solution[3].Theme.Words = []string{"NILE", "AMAZON", "VOLGA", "  "}
		_, err := svc.Create(context.Background(), p)
		assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	})

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdatePuzzleNotFound(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)

	repo.On("Get", mock.Anything, "puzzle-1").Return(nil, nil)

	_, err := svc.Update(context.Background(), *testPuzzle())
	assert.Equal(t, apperrors.ErrCodeNotFound, validationCode(t, err))
}

func TestUpdatePuzzleDateCollision(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)

	existing := testPuzzle()
	repo.On("Get", mock.Anything, "puzzle-1").Return(existing, nil)

	moved := *testPuzzle()
	moved.Date = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	other := *testPuzzle()
	other.ID = "puzzle-2"
	repo.On("GetByDate", mock.Anything, "2026-03-15").Return(&other, nil)

	_, err := svc.Update(context.Background(), moved)
	assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeletePuzzleNotFound(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)

	repo.On("Get", mock.Anything, "missing").Return(nil, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.Equal(t, apperrors.ErrCodeNotFound, validationCode(t, err))
}

func TestGetByDateRejectsBadFormat(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo)

	_, err := svc.GetByDate(context.Background(), "14-03-2026")
	assert.Equal(t, apperrors.ErrCodeValidation, validationCode(t, err))
	repo.AssertNotCalled(t, "GetByDate", mock.Anything, mock.Anything)
}

func TestGetToday(t *testing.T) {
	repo := new(mocks.MockPuzzleRepository)
	svc := NewPuzzleService(repo).(*puzzleService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	repo.On("GetByDate", mock.Anything, testDate).Return(testPuzzle(), nil)

	got, err := svc.GetToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "puzzle-1", got.ID)
}
