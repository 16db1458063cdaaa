package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/adapters/gmaps"
	"itinerary-route-service/internal/api"
	"itinerary-route-service/internal/platform/db"
	"itinerary-route-service/internal/ports"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires a snapshot store and the maps client behind ports and starts the
// HTTP server. The cache is closed (and flushed) on shutdown signals.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	apiKey := os.Getenv("MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("MAPS_API_KEY is required")
	}

	addr := getEnv("HTTP_ADDR", ":8080")
	baseURL := os.Getenv("MAPS_BASE_URL")
	backend := getEnv("CACHE_BACKEND", "file")
	snapshotEvery := getEnvInt("CACHE_SNAPSHOT_EVERY", cache.DefaultSnapshotEvery)
	timeout := time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second

	store, closeStore, err := openSnapshotStore(backend)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	respCache := cache.New(context.Background(), store, snapshotEvery)

	client, err := gmaps.NewClient(apiKey, baseURL, respCache, timeout)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(client, client, respCache)

	// Write timeout leaves room for a cold-cache multi-day itinerary, which
	// is one provider round trip per day.
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=%s cache_backend=%s", addr, backend)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal(err)
	case sig := <-sigCh:
		log.Printf("Shutting down signal=%s", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown err=%v", err)
	}
	if err := respCache.Close(shutdownCtx); err != nil {
		log.Printf("cache close err=%v", err)
	}
}

// openSnapshotStore builds the durable cache backend selected by
// CACHE_BACKEND. The returned func releases whatever connection the
// backend holds.
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

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, raw)
	}
	return n
}
