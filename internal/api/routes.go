package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.identityMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/puzzles", func(r chi.Router) {
			r.Get("/", requireAdmin(s.handleListPuzzles))
			r.Post("/", requireAdmin(s.handleCreatePuzzle))
			r.Get("/{id}", requireAdmin(s.handleGetPuzzle))
			r.Put("/{id}", requireAdmin(s.handleUpdatePuzzle))
			r.Delete("/{id}", requireAdmin(s.handleDeletePuzzle))
		})

		r.Route("/games/{date}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Post("/select", s.handleSelect)
			r.Post("/deselect", s.handleDeselect)
			r.Post("/shuffle", s.handleShuffle)
			r.Post("/submit", s.handleSubmit)
			r.Get("/share", s.handleShare)
		})

		r.Get("/stats", requirePlayer(s.handleGetStats))
		r.Get("/stats/profile", requirePlayer(s.handleGetProfileStats))
		r.Get("/history", requirePlayer(s.handleListHistory))
	})

	return r
}
