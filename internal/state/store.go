// SPDX-License-Identifier: MPL-2.0

package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrEmptyKey is returned when a record key is empty.
var ErrEmptyKey = errors.New("state key must not be empty")

// Store wraps the SQLite connection holding all records.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

// Open creates or opens the database at path, creating its directory.
// It enables WAL mode for file databases and runs migrations.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database exists per connection.
	conn.SetMaxOpenConns(1)

	if path != MemoryPath {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &Store{conn: conn, now: time.Now}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS kv (
    key         TEXT PRIMARY KEY,
    version     INTEGER NOT NULL,
    value       TEXT NOT NULL,
    updated_at  DATETIME NOT NULL
);
`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Load decodes the record stored under key into dst. It reports false when no
// record exists or the stored version differs from version; dst is left
// untouched in both cases.
func (s *Store) Load(ctx context.Context, key string, version int, dst any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	var (
		stored int
		value  string
	)
	err := s.conn.QueryRowContext(ctx, `SELECT version, value FROM kv WHERE key = ?`, key).Scan(&stored, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if stored != version {
		return false, nil
	}

	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Save replaces the record stored under key.
func (s *Store) Save(ctx context.Context, key string, version int, v any) error {
	if key == "" {
		return ErrEmptyKey
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	query := `
		INSERT INTO kv (key, version, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := s.conn.ExecContext(ctx, query, key, version, string(data), s.now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Record describes one stored key.
type Record struct {
	Key       string
	Version   int
	UpdatedAt time.Time
}

// Records lists stored keys ordered by key.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT key, version, updated_at FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Key, &r.Version, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}
