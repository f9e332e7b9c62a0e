package api

import (
	"github.com/vytor/wordgroups/internal/config"
	"github.com/vytor/wordgroups/internal/services"
)

type Server struct {
	Puzzles  services.PuzzleService
	Sessions services.SessionService
	Stats    services.StatsService
	Config   config.Config
}
