package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	JWTSecret        string
	SnapshotStore    string
	PersistWorkers   int
	PersistQueueSize int
	HistoryPageSize  int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:wordgroups.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		JWTSecret:        envOr("JWT_SECRET", ""),
		SnapshotStore:    envOr("SNAPSHOT_STORE", "sqlite"),
		PersistWorkers:   envIntOr("PERSIST_WORKER_COUNT", 2),
		PersistQueueSize: envIntOr("PERSIST_QUEUE_SIZE", 64),
		HistoryPageSize:  envIntOr("HISTORY_PAGE_SIZE", 50),
	}
}

// Validate checks the configuration for values the server cannot start with.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	// Admin routes trust tokens signed with this secret; an empty one
	// would let any client mint a valid token.
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}
	switch c.SnapshotStore {
	case "sqlite", "memory":
	default:
		problems = append(problems, fmt.Sprintf("SNAPSHOT_STORE %q is not one of sqlite, memory", c.SnapshotStore))
	}
	if c.PersistWorkers <= 0 {
		problems = append(problems, "PERSIST_WORKER_COUNT must be positive")
	}
	if c.PersistQueueSize <= 0 {
		problems = append(problems, "PERSIST_QUEUE_SIZE must be positive")
	}
	if c.HistoryPageSize <= 0 {
		problems = append(problems, "HISTORY_PAGE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
