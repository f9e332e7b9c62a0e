package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/wordgroups/internal/errors"
	"github.com/vytor/wordgroups/internal/models"
)

func gameDate(r *http.Request) (string, error) {
	dateKey := chi.URLParam(r, "date")
	if dateKey == "today" {
		return models.DateKey(time.Now()), nil
	}
	if _, err := time.Parse("2006-01-02", dateKey); err != nil {
		return "", errors.NewValidationError("date", "expected YYYY-MM-DD")
	}
	return dateKey, nil
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	dateKey, err := gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	state, err := s.Sessions.GetGame(r.Context(), identityFromContext(r.Context()), dateKey)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	dateKey, err := gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req struct {
		Word string `json:"word"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	state, err := s.Sessions.Toggle(r.Context(), identityFromContext(r.Context()), dateKey, req.Word)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	dateKey, err := gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	state, err := s.Sessions.DeselectAll(r.Context(), identityFromContext(r.Context()), dateKey)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	dateKey, err := gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	state, err := s.Sessions.Shuffle(r.Context(), identityFromContext(r.Context()), dateKey)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	dateKey, err := gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	outcome, err := s.Sessions.Submit(r.Context(), identityFromContext(r.Context()), dateKey)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	dateKey, err := gameDate(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	text, err := s.Sessions.ShareText(r.Context(), identityFromContext(r.Context()), dateKey)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"text": text})
}
