package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/wordgroups/internal/errors"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/models"
)

type puzzleRequest struct {
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Date     string          `json:"date"`
	Solution models.Solution `json:"solution"`
}

func (pr puzzleRequest) toModel() (models.Puzzle, error) {
	date, err := time.ParseInLocation("2006-01-02", pr.Date, time.UTC)
	if err != nil {
		return models.Puzzle{}, errors.NewValidationError("date", "expected YYYY-MM-DD")
	}
	return models.Puzzle{
		Title:    pr.Title,
		Author:   pr.Author,
		Date:     date,
		Solution: pr.Solution,
	}, nil
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing puzzles")

	filter := models.PuzzleFilter{
		Author: r.URL.Query().Get("author"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	puzzles, err := s.Puzzles.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"puzzles": puzzles})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle, err := s.Puzzles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, puzzle)
}

func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req puzzleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	puzzle, err := req.toModel()
	if err != nil {
		handleError(w, r, err)
		return
	}
	created, err := s.Puzzles.Create(r.Context(), puzzle)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req puzzleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	puzzle, err := req.toModel()
	if err != nil {
		handleError(w, r, err)
		return
	}
	puzzle.ID = chi.URLParam(r, "id")
	updated, err := s.Puzzles.Update(r.Context(), puzzle)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeletePuzzle(w http.ResponseWriter, r *http.Request) {
	if err := s.Puzzles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
