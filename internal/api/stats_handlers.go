package api

import (
	"net/http"

	"github.com/vytor/wordgroups/internal/models"
)

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	playerID := identityFromContext(r.Context()).PlayerID
	stats, err := s.Stats.GetStats(r.Context(), playerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleGetProfileStats(w http.ResponseWriter, r *http.Request) {
	playerID := identityFromContext(r.Context()).PlayerID
	profile, err := s.Stats.GetProfileStats(r.Context(), playerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	playerID := identityFromContext(r.Context()).PlayerID
	filter := models.HistoryFilter{
		Limit:  queryInt(r, "limit", s.Config.HistoryPageSize),
		Offset: queryInt(r, "offset", 0),
	}
	records, total, err := s.Stats.ListHistory(r.Context(), playerID, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"games":  records,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}
