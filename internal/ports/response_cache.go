package ports

import "time"

// Port: a boundary over the shared response cache. Payloads are opaque
// bytes; callers own their serialization. A ttl of zero means the entry
// never expires.
type ResponseCache interface {
	// Return the payload stored under key, or false when absent or expired.
	Get(key string) ([]byte, bool)
	// Store payload under key for the given lifetime, replacing any
	// previous entry and its timestamp.
	Set(key string, payload []byte, ttl time.Duration)
}

// Point-in-time counters of the response cache.
type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// Port: read-only statistics view of the cache, consumed by the health
// endpoint without tying handlers to a concrete cache implementation.
type CacheStatsSource interface {
	Stats() CacheStats
}
