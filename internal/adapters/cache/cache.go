package cache

import (
	"context"
	"itinerary-route-service/internal/ports"
	"log"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// TTL tiers assigned per category of cached provider data. Directions are
// the most volatile (road closures, new routes); photo URLs barely change.
const (
	TTLDirections   = 3 * 24 * time.Hour
	TTLPlaceSearch  = 7 * 24 * time.Hour
	TTLPlaceDetails = 14 * 24 * time.Hour
	TTLPlacePhoto   = 30 * 24 * time.Hour
)

const (
	// Every Nth Set triggers an asynchronous snapshot to the store.
	DefaultSnapshotEvery = 25

	sweepInterval = 10 * time.Minute
)

type entry struct {
	payload    []byte
	ttl        time.Duration // 0 means no expiry
	insertedAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return e.ttl != 0 && now.Sub(e.insertedAt) >= e.ttl
}

// In-memory response cache with per-entry TTL and periodic persistence.
// The memory map is authoritative at runtime; the snapshot store only
// seeds it across restarts. Safe for concurrent use. Construct with New
// and call Close on shutdown.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	store     ports.SnapshotStore // nil disables persistence
	snapEvery int
	setCount  int

	// Serializes snapshot writes so overlapping triggers cannot
	// interleave partial snapshots.
	snapMu sync.Mutex

	hits   atomic.Int64
	misses atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
}

// New builds a cache seeded from the store's snapshot and starts the
// periodic expiry sweep. A nil store yields a memory-only cache. Snapshot
// problems are never fatal: a corrupt or unreadable snapshot logs and the
// cache starts empty.
func New(ctx context.Context, store ports.SnapshotStore, snapshotEvery int) *Cache {
	if snapshotEvery <= 0 {
		snapshotEvery = DefaultSnapshotEvery
	}

	c := &Cache{
		entries:   make(map[string]entry),
		store:     store,
		snapEvery: snapshotEvery,
		done:      make(chan struct{}),
	}

	if store != nil {
		c.loadSnapshot(ctx)
	}

	go c.sweepLoop()

	return c
}

// Get returns the payload stored under key, or false when absent or
// expired. Expired entries are left for the sweep; reads never delete.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		c.misses.Inc()
		return nil, false
	}

	c.hits.Inc()
	return e.payload, true
}

// Set stores payload under key, replacing any previous entry and its
// timestamp. Every Nth call triggers an asynchronous snapshot; a failed
// snapshot never fails the Set.
func (c *Cache) Set(key string, payload []byte, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		payload:    payload,
		ttl:        ttl,
		insertedAt: time.Now(),
	}
	c.setCount++
	trigger := c.store != nil && c.setCount%c.snapEvery == 0
	c.mu.Unlock()

	if trigger {
		go func() {
			if err := c.Flush(context.Background()); err != nil {
				log.Printf("cache: async snapshot failed err=%v", err)
			}
		}()
	}
}

// Flush writes a snapshot of all live entries to the store synchronously.
// No-op without a store.
func (c *Cache) Flush(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	c.snapMu.Lock()
	defer c.snapMu.Unlock()

	return c.store.Save(ctx, c.collect())
}

// Close stops the sweep and attempts one final synchronous snapshot.
// Safe to call more than once.
func (c *Cache) Close(ctx context.Context) error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.Flush(ctx)

		st := c.Stats()
		log.Printf("cache: closed entries=%d hits=%d misses=%d", st.Entries, st.Hits, st.Misses)
	})
	return err
}

// Stats returns a point-in-time view of the cache counters.
func (c *Cache) Stats() ports.CacheStats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()

	return ports.CacheStats{
		Entries: n,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// Snapshot the live entries under a short read lock. The enumeration is
// point-in-time: a concurrent Set missed here lands in a later snapshot.
func (c *Cache) collect() []ports.CacheEntry {
	now := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ports.CacheEntry, 0, len(c.entries))
	for key, e := range c.entries {
		if e.expired(now) {
			continue
		}
		out = append(out, ports.CacheEntry{
			Key:        key,
			Payload:    e.payload,
			TTLSeconds: int64(e.ttl / time.Second),
			InsertedAt: e.insertedAt.Unix(),
		})
	}
	return out
}

// Seed the memory map from the persisted snapshot, recomputing each
// entry's remaining lifetime and discarding the already-expired.
func (c *Cache) loadSnapshot(ctx context.Context) {
	persisted, err := c.store.Load(ctx)
	if err != nil {
		log.Printf("cache: snapshot load failed, starting empty err=%v", err)
		return
	}

	now := time.Now()
	discarded := 0

	c.mu.Lock()
	for _, p := range persisted {
		if p.Expired(now) {
			discarded++
			continue
		}
		c.entries[p.Key] = entry{
			payload:    p.Payload,
			ttl:        time.Duration(p.TTLSeconds) * time.Second,
			insertedAt: time.Unix(p.InsertedAt, 0),
		}
	}
	loaded := len(c.entries)
	c.mu.Unlock()

	log.Printf("cache: snapshot loaded entries=%d discarded=%d", loaded, discarded)
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
}
