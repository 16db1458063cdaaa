package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/platform/db"
	"itinerary-route-service/internal/ports"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// cachetool operates on the response-cache snapshot without starting the
// server. It reads the same CACHE_BACKEND configuration the server does.
//
//	cachetool inspect   report entry counts and payload size
//	cachetool purge     rewrite the snapshot with expired entries dropped
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cmd := "inspect"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	store, closeStore, err := openSnapshotStore(getEnv("CACHE_BACKEND", "file"))
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	ctx := context.Background()

	switch cmd {
	case "inspect":
		err = inspect(ctx, store)
	case "purge":
		err = purge(ctx, store)
	default:
		log.Fatalf("unknown command %q (want inspect or purge)", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func inspect(ctx context.Context, store ports.SnapshotStore) error {
	entries, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	now := time.Now()
	live, expired, payloadBytes := 0, 0, 0
	for _, e := range entries {
		if e.Expired(now) {
			expired++
			continue
		}
		live++
		payloadBytes += len(e.Payload)
	}

	fmt.Printf("entries:       %d\n", len(entries))
	fmt.Printf("live:          %d\n", live)
	fmt.Printf("expired:       %d\n", expired)
	fmt.Printf("payload bytes: %d (live entries only)\n", payloadBytes)
	return nil
}

func purge(ctx context.Context, store ports.SnapshotStore) error {
	entries, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	now := time.Now()
	live := make([]ports.CacheEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Expired(now) {
			live = append(live, e)
		}
	}

	if err := store.Save(ctx, live); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	fmt.Printf("kept %d of %d entries (%d expired)\n", len(live), len(entries), len(entries)-len(live))
	return nil
}

// openSnapshotStore mirrors the server's backend selection so the tool
// operates on the same snapshot the server would load.
func openSnapshotStore(backend string) (ports.SnapshotStore, func(), error) {
	noop := func() {}

	switch backend {
	case "file":
		path := os.Getenv("CACHE_PATH")
		if path == "" {
			p, err := cache.DefaultPath()
			if err != nil {
				return nil, noop, fmt.Errorf("resolve default cache path: %w", err)
			}
			path = p
		}
		return cache.NewFileStore(path), noop, nil

	case "sqlite":
		path := getEnv("CACHE_PATH", "data/response_cache.db")
		sqlDB, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite cache %q: %w", path, err)
		}
		if err := cache.InitSQLiteSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, noop, err
		}
		return cache.NewSQLiteStore(sqlDB), func() { sqlDB.Close() }, nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, noop, errors.New("DATABASE_URL is required for the postgres cache backend")
		}
		sqlDB, err := db.Open(databaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := cache.InitPostgresSchema(context.Background(), sqlDB); err != nil {
			sqlDB.Close()
			return nil, noop, err
		}
		return cache.NewPostgresStore(sqlDB), func() { sqlDB.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
		return cache.NewRedisStore(client, os.Getenv("REDIS_KEY")), func() { client.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown CACHE_BACKEND %q (want file, sqlite, postgres or redis)", backend)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
