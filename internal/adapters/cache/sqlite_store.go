package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/ports"
	"strings"
)

// SQLite backed snapshot store. Suits single-host deployments that want
// snapshots to survive restarts without running a database server.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

// Initialize the SQLite snapshot schema.
func InitSQLiteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init sqlite schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init sqlite schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createEntriesQuery := `
	CREATE TABLE IF NOT EXISTS cache_entries (
        key TEXT PRIMARY KEY,
        payload BLOB NOT NULL,
        ttl_seconds INTEGER NOT NULL,
        inserted_at INTEGER NOT NULL
    );
	`

	if _, err := tx.Exec(createEntriesQuery); err != nil {
		return fmt.Errorf("init sqlite schema: exec create table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sqlite schema: commit tx: %w", err)
	}

	return nil
}

// Load all persisted entries.
func (s *SQLiteStore) Load(ctx context.Context) ([]ports.CacheEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store: db is nil")
	}

	rows, err := s.DB.Query(`
	SELECT key, payload, ttl_seconds, inserted_at
    FROM cache_entries;
	`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query cache_entries table: %w", err)
	}
	defer rows.Close()

	out := []ports.CacheEntry{}
	for rows.Next() {
		var e ports.CacheEntry
		if err := rows.Scan(&e.Key, &e.Payload, &e.TTLSeconds, &e.InsertedAt); err != nil {
			return nil, fmt.Errorf("load snapshot: scan rows: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: row iteration: %w", err)
	}

	return out, nil
}

// Save replaces the previous snapshot with the given entries.
func (s *SQLiteStore) Save(ctx context.Context, entries []ports.CacheEntry) error {
	if s.DB == nil {
		return errors.New("sqlite store: db is nil")
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("save snapshot: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// The memory view is authoritative; the snapshot replaces whatever
	// came before it.
	if _, err := tx.Exec(`DELETE FROM cache_entries;`); err != nil {
		return fmt.Errorf("save snapshot: clear previous: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO cache_entries (key, payload, ttl_seconds, inserted_at)
    VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save snapshot: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("save snapshot: empty entry key")
		}

		if _, err := stmt.Exec(e.Key, e.Payload, e.TTLSeconds, e.InsertedAt); err != nil {
			return fmt.Errorf("save snapshot key=%q: %w", e.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot commit: %w", err)
	}

	return nil
}
