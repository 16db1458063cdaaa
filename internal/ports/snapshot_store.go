package ports

import (
	"context"
	"time"
)

// A single persisted cache record. InsertedAt is Unix epoch seconds so the
// remaining lifetime can be recomputed on reload; TTLSeconds = 0 means the
// entry never expires. JSON tags are the snapshot schema and must stay
// stable across processes and versions.
type CacheEntry struct {
	Key        string `json:"key"`
	Payload    []byte `json:"payload"`
	TTLSeconds int64  `json:"ttl_seconds"`
	InsertedAt int64  `json:"inserted_at_epoch_seconds"`
}

// Expired reports whether the entry's lifetime has elapsed as of now.
// Entries with TTLSeconds = 0 never expire.
func (e CacheEntry) Expired(now time.Time) bool {
	if e.TTLSeconds == 0 {
		return false
	}
	age := now.Sub(time.Unix(e.InsertedAt, 0))
	return age >= time.Duration(e.TTLSeconds)*time.Second
}

// Port: a boundary for durable cache snapshots. Implementations persist the
// cache's live entries wholesale; Save replaces whatever snapshot came
// before it. Both operations must tolerate an empty entry set.
type SnapshotStore interface {
	// Load all persisted entries. A missing snapshot is not an error and
	// returns an empty slice.
	Load(ctx context.Context) ([]CacheEntry, error)
	// Save replaces the previous snapshot with the given entries.
	Save(ctx context.Context, entries []CacheEntry) error
}
