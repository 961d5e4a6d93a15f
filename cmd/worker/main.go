package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scripture_site_echo/internal/config"
	"scripture_site_echo/internal/services"
	"scripture_site_echo/internal/settings"
	"scripture_site_echo/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Setting writes must invalidate the same cache the server reads
	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis connection failed: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	registry := tasks.DefaultRegistry()
	runner := tasks.NewRunner(db, registry, tasks.Env{
		DB:       db,
		Settings: settings.NewStore(db, cache, cfg.SettingsCacheTTL),
	})
	log.Printf("Worker started with tasks %v, checking every %s", registry.Names(), cfg.WorkerInterval)

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down worker...")
		cancel()
	}()

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	process(ctx, runner)
	for {
		select {
		case <-ticker.C:
			process(ctx, runner)
		case <-ctx.Done():
			return
		}
	}
}

func process(ctx context.Context, runner *tasks.Runner) {
	log.Println("Checking for pending tasks...")
	if _, err := runner.RunDue(ctx, time.Now()); err != nil {
		log.Printf("Error processing tasks: %v", err)
	}
}
