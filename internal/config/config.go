// Package config loads runtime configuration from the environment. A .env
// file is honoured in development; every value has a sensible default so a
// bare `go run ./cmd/api` comes up as a self-contained demo instance.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Archive backends.
const (
	ArchiveLocal = "local"
	ArchiveS3    = "s3"
)

// StoreConfig selects where the user roster and session blobs live.
type StoreConfig struct {
	Backend     string // file | sqlite | postgres
	Dir         string // file backend
	SQLitePath  string // sqlite backend
	PostgresDSN string // postgres backend
}

// S3Config holds credentials for the S3/R2 submission archive.
type S3Config struct {
	Endpoint  string // empty for plain AWS S3
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

// ArchiveConfig selects where finalized report submissions are filed.
type ArchiveConfig struct {
	Backend string // local | s3
	Dir     string // local backend
	S3      S3Config
}

// Config is the full runtime configuration.
type Config struct {
	Port         string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
	Store        StoreConfig
	Archive      ArchiveConfig
}

// Load reads configuration from the environment (and .env, if present).
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		Store: StoreConfig{
			Backend:     getEnv("STORE_BACKEND", StoreFile),
			Dir:         getEnv("STORE_DIR", "./data"),
			SQLitePath:  getEnv("STORE_SQLITE_PATH", "./data/labour.db"),
			PostgresDSN: os.Getenv("STORE_POSTGRES_DSN"),
		},
		Archive: ArchiveConfig{
			Backend: getEnv("ARCHIVE_BACKEND", ArchiveLocal),
			Dir:     getEnv("ARCHIVE_DIR", "./data/archive"),
			S3: S3Config{
				Endpoint:  os.Getenv("ARCHIVE_S3_ENDPOINT"),
				Region:    getEnv("ARCHIVE_S3_REGION", "auto"),
				AccessKey: os.Getenv("ARCHIVE_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("ARCHIVE_S3_SECRET_KEY"),
				Bucket:    os.Getenv("ARCHIVE_S3_BUCKET"),
				Prefix:    getEnv("ARCHIVE_S3_PREFIX", "submissions"),
			},
		},
	}

	if cfg.JWTSecret == "" {
		log.Println("[config] JWT_SECRET not set — using an insecure development default")
		cfg.JWTSecret = "dev-only-secret-change-me"
	}

	switch cfg.Store.Backend {
	case StoreFile, StoreSQLite:
	case StorePostgres:
		if cfg.Store.PostgresDSN == "" {
			return nil, fmt.Errorf("STORE_BACKEND=postgres requires STORE_POSTGRES_DSN")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}

	switch cfg.Archive.Backend {
	case ArchiveLocal:
	case ArchiveS3:
		if cfg.Archive.S3.Bucket == "" {
			return nil, fmt.Errorf("ARCHIVE_BACKEND=s3 requires ARCHIVE_S3_BUCKET")
		}
	default:
		return nil, fmt.Errorf("unknown ARCHIVE_BACKEND %q", cfg.Archive.Backend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
