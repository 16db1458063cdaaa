package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-route-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "itinerary:response_cache"

// Redis backed snapshot store. Entries live as JSON fields of a single
// hash so Save can replace the whole snapshot in one transaction.
type RedisStore struct {
	Client *redis.Client
	Key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{Client: client, Key: key}
}

// Load all persisted entries.
func (s *RedisStore) Load(ctx context.Context) ([]ports.CacheEntry, error) {
	if s.Client == nil {
		return nil, errors.New("redis store: client is nil")
	}

	fields, err := s.Client.HGetAll(ctx, s.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: hgetall %q: %w", s.Key, err)
	}

	out := make([]ports.CacheEntry, 0, len(fields))
	for field, raw := range fields {
		var e ports.CacheEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("load snapshot: parse entry %q: %w", field, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Save replaces the previous snapshot with the given entries.
func (s *RedisStore) Save(ctx context.Context, entries []ports.CacheEntry) error {
	if s.Client == nil {
		return errors.New("redis store: client is nil")
	}

	fields := make(map[string]any, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("save snapshot: marshal entry %q: %w", e.Key, err)
		}
		fields[e.Key] = raw
	}

	pipe := s.Client.TxPipeline()
	pipe.Del(ctx, s.Key)
	if len(fields) > 0 {
		pipe.HSet(ctx, s.Key, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save snapshot: pipeline exec: %w", err)
	}

	return nil
}
