package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteBlobStore keeps blobs in a single-table embedded database. Useful
// when the dashboard runs on a host where a loose data directory is
// undesirable but a full database server is overkill.
type SQLiteBlobStore struct {
	db *sql.DB
}

// NewSQLiteBlobStore opens (or creates) the database at path.
func NewSQLiteBlobStore(path string) (*SQLiteBlobStore, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			name       TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create blobs table: %w", err)
	}

	return &SQLiteBlobStore{db: db}, nil
}

// Read returns the blob contents, or ErrBlobNotFound.
func (s *SQLiteBlobStore) Read(name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blobs WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write upserts the blob.
func (s *SQLiteBlobStore) Write(name string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (name, data, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, name, data)
	return err
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (s *SQLiteBlobStore) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM blobs WHERE name = ?`, name)
	return err
}

// Close releases the database handle.
func (s *SQLiteBlobStore) Close() error {
	return s.db.Close()
}
