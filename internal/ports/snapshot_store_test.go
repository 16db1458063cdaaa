package ports

import (
	"testing"
	"time"
)

func TestCacheEntryExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		ttlSeconds int64
		age        time.Duration
		want       bool
	}{
		{"fresh", 3600, 10 * time.Minute, false},
		{"exactly at ttl", 3600, time.Hour, true},
		{"past ttl", 3600, 2 * time.Hour, true},
		{"zero ttl never expires", 0, 24 * 365 * time.Hour, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := CacheEntry{
				Key:        "k",
				TTLSeconds: tc.ttlSeconds,
				InsertedAt: now.Add(-tc.age).Unix(),
			}
			if got := e.Expired(now); got != tc.want {
				t.Errorf("Expired() = %v, want %v (ttl=%ds age=%s)", got, tc.want, tc.ttlSeconds, tc.age)
			}
		})
	}
}
