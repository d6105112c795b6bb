package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteKV stores each collection as one JSON payload row.
type SQLiteKV struct {
	db *sql.DB
}

func NewSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name       TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Set(name string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		name, string(payload),
	)
	return err
}

func (s *SQLiteKV) Get(name string) ([]byte, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM collections WHERE name = ?`, name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

func (s *SQLiteKV) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM collections WHERE name = ?`, name)
	return err
}

func (s *SQLiteKV) Close() error { return s.db.Close() }
