package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"strings"
)

// Postgres backed snapshot store for deployments where several service
// instances share one persisted cache.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// Initialize the postgres snapshot schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS cache_entries (
        key TEXT PRIMARY KEY,
        payload BYTEA NOT NULL,
        ttl_seconds BIGINT NOT NULL,
        inserted_at BIGINT NOT NULL
    );
	`

	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init postgres schema: exec create table: %w", err)
	}

	return nil
}

// Load all persisted entries.
func (s *PostgresStore) Load(ctx context.Context) (_ []ports.CacheEntry, err error) {
	defer obs.Time(ctx, "cache.snapshot.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres store: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
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
func (s *PostgresStore) Save(ctx context.Context, entries []ports.CacheEntry) (err error) {
	defer obs.Time(ctx, "cache.snapshot.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres store: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries;`); err != nil {
		return fmt.Errorf("save snapshot: clear previous: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cache_entries (key, payload, ttl_seconds, inserted_at)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (key) DO UPDATE
	SET payload = EXCLUDED.payload,
		ttl_seconds = EXCLUDED.ttl_seconds,
		inserted_at = EXCLUDED.inserted_at;
	`)
	if err != nil {
		return fmt.Errorf("save snapshot: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if strings.TrimSpace(e.Key) == "" {
			return fmt.Errorf("save snapshot: empty entry key")
		}

		if _, err := stmt.ExecContext(ctx, e.Key, e.Payload, e.TTLSeconds, e.InsertedAt); err != nil {
			return fmt.Errorf("save snapshot key=%q: %w", e.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot commit: %w", err)
	}

	return nil
}
