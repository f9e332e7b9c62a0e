package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wordgroups/internal/api"
	"github.com/vytor/wordgroups/internal/config"
	"github.com/vytor/wordgroups/internal/db"
	"github.com/vytor/wordgroups/internal/logger"
	"github.com/vytor/wordgroups/internal/repository"
	"github.com/vytor/wordgroups/internal/repository/memory"
	"github.com/vytor/wordgroups/internal/repository/sqlite"
	"github.com/vytor/wordgroups/internal/services"
	"github.com/vytor/wordgroups/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("WordGroups Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("snapshot_store=%s", cfg.SnapshotStore)
	log.Debug("persist_worker_count=%d", cfg.PersistWorkers)
	log.Debug("persist_queue_size=%d", cfg.PersistQueueSize)
	log.Debug("history_page_size=%d", cfg.HistoryPageSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	puzzleRepo := sqlite.NewPuzzleRepository(database.DB)
	historyRepo := sqlite.NewHistoryRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	completionRepo := sqlite.NewCompletionRepository(database.DB)

	// Device snapshots can be kept in memory only: anonymous sessions then
	// survive refreshes but not restarts.
	var snapshotStore repository.SnapshotStore
	if cfg.SnapshotStore == "memory" {
		log.Info("using in-memory device snapshot store")
		snapshotStore = memory.NewSnapshotStore()
	} else {
		snapshotStore = sqlite.NewSnapshotRepository(database.DB)
	}

	// Initialize worker pool for background persistence
	persistPool := worker.NewPool(cfg.PersistWorkers, cfg.PersistQueueSize)

	// Initialize services
	puzzleService := services.NewPuzzleService(puzzleRepo)
	sessionService := services.NewSessionService(puzzleRepo, snapshotStore, historyRepo, statsRepo, completionRepo, persistPool)
	statsService := services.NewStatsService(statsRepo, historyRepo)

	srv := &api.Server{
		Puzzles:  puzzleService,
		Sessions: sessionService,
		Stats:    statsService,
		Config:   cfg,
	}

	ctx, cancel := context.WithCancel(context.Background())
	persistPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending persistence jobs before exit
	log.Debug("stopping persistence pool")
	cancel()
	persistPool.Stop()

	log.Info("===========================================")
	log.Info("WordGroups Server Stopped")
	log.Info("===========================================")
}
