// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress (
    key TEXT PRIMARY KEY,
    data TEXT NOT NULL
);
`

// progressKey is the single fixed key the snapshot lives under.
const progressKey = "quizdeck-progress"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadProgress(ctx context.Context) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM progress WHERE key = ?", progressKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *SQLiteStore) SaveProgress(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO progress (key, data) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET data = excluded.data",
		progressKey, string(data),
	)
	return err
}
