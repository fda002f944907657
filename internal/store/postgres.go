package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBlobStore keeps blobs in a key/value table on a shared Postgres
// instance, for deployments where several dashboard nodes must see the same
// roster.
type PostgresBlobStore struct {
	pool *pgxpool.Pool
}

// NewPostgresBlobStore connects to the database and ensures the blobs
// table exists.
func NewPostgresBlobStore(ctx context.Context, dsn string) (*PostgresBlobStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = pool.Exec(initCtx, `
		CREATE TABLE IF NOT EXISTS app_blobs (
			name       TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create app_blobs table: %w", err)
	}

	return &PostgresBlobStore{pool: pool}, nil
}

// Read returns the blob contents, or ErrBlobNotFound.
func (s *PostgresBlobStore) Read(name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM app_blobs WHERE name = $1`, name).Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write upserts the blob.
func (s *PostgresBlobStore) Write(name string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO app_blobs (name, data, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, name, data)
	return err
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (s *PostgresBlobStore) Delete(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, `DELETE FROM app_blobs WHERE name = $1`, name)
	return err
}

// Close releases the connection pool.
func (s *PostgresBlobStore) Close() {
	s.pool.Close()
}
