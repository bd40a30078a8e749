package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yatav-backend/internal/ai"
	"yatav-backend/internal/auth"
	"yatav-backend/internal/cache"
	"yatav-backend/internal/config"
	"yatav-backend/internal/llm"
	"yatav-backend/internal/scheduler"
	"yatav-backend/internal/server"
	"yatav-backend/internal/store"
)

// Sessions untouched for this long are closed by the nightly cleanup.
const staleSessionAge = 24 * time.Hour

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, db, err := store.Connect(ctx, cfg.MongoURL, cfg.MongoName)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("failed to disconnect mongodb: %v", err)
		}
	}()

	if err := store.EnsureIndexes(context.Background(), db); err != nil {
		log.Printf("failed to ensure indexes: %v", err)
	}

	stores := store.NewMongo(db)
	if err := store.SeedCharacters(context.Background(), stores.Characters); err != nil {
		log.Printf("failed to seed characters: %v", err)
	}

	// Redis is optional: presence tracking and realtime counters degrade
	// to no-ops without it.
	redisCache, err := cache.New(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	registry := llm.NewRegistry(cfg)
	log.Printf("AI providers ready: %d registered, default %q", registry.Len(), registry.DefaultName())

	srv := server.New(cfg, server.Deps{
		Users:      stores.Users,
		Characters: stores.Characters,
		Sessions:   stores.Sessions,
		Messages:   stores.Messages,
		AI:         ai.New(registry),
		Auth:       auth.New(cfg.JWTSecret, time.Duration(cfg.TokenExpireMinutes)*time.Minute),
		Cache:      redisCache,
		MongoPing:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
	})

	sched := scheduler.New()
	sched.SetCleanupFunction(func(ctx context.Context) error {
		closed, err := stores.Sessions.CloseStale(ctx, time.Now().UTC().Add(-staleSessionAge))
		if err != nil {
			return err
		}
		if closed > 0 {
			log.Printf("Closed %d stale sessions", closed)
		}
		return nil
	})
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()
	log.Printf("YATAV training backend listening on %s", cfg.ListenAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
