package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id       INTEGER PRIMARY KEY CHECK (id = 1),
    body     BLOB NOT NULL,
    saved_at TIMESTAMP NOT NULL
);`

// SQLiteSink stores the snapshot blob in a single-row table of a local
// SQLite database file.
type SQLiteSink struct {
	db *sqlx.DB
}

// NewSQLiteSink opens (or creates) the database at dsn and ensures the
// snapshot table exists.
func NewSQLiteSink(dsn string) (*SQLiteSink, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot table: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Load() ([]byte, bool, error) {
	var blob []byte
	err := s.db.Get(&blob, `SELECT body FROM snapshots WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("loading snapshot row: %w", err)
	}
	return blob, true, nil
}

func (s *SQLiteSink) Save(blob []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (id, body, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, saved_at = excluded.saved_at`,
		blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving snapshot row: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
