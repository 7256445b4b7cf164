package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"volleypro/ingestion/internal/api"
	"volleypro/ingestion/internal/cache"
	"volleypro/ingestion/internal/client"
	"volleypro/ingestion/internal/config"
	"volleypro/ingestion/internal/logging"
	"volleypro/ingestion/internal/metrics"
	"volleypro/ingestion/internal/models"
	"volleypro/ingestion/internal/pipeline"
	"volleypro/ingestion/internal/repository"
	"volleypro/ingestion/internal/scheduler"

	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	logging.Setup(cfg.IsDevelopment(), cfg.LogLevel)

	log.Info().
		Str("env", cfg.AppEnv).
		Dur("sync_interval", cfg.SyncInterval).
		Msg("Starting FIVB tournament ingestion worker")

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	db, err := repository.NewDatabase(ctx, repository.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	// Optional events cache
	var responseCache api.ResponseCache
	if cfg.RedisEnabled {
		redisCache, err := cache.NewRedisCache(ctx, cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL(),
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			defer redisCache.Close()
			responseCache = redisCache
		}
	}

	feed := client.NewClient(cfg.FIVBBaseURL, cfg.FIVBFirstDate)

	var jobs []scheduler.Runner
	events := make(map[models.Sport]api.EventLister)
	for _, sport := range models.AllSports() {
		store := db.Tournaments(sport)
		jobs = append(jobs, pipeline.NewJob(sport, feed, store))
		events[sport] = store
	}

	// Update uptime and pool metrics
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
				log.Debug().Fields(db.PoolStats()).Msg("Database pool stats")
			case <-ctx.Done():
				return
			}
		}
	}()

	sched := scheduler.NewScheduler(cfg.SyncInterval, cfg.InitialSyncEnabled, jobs...)
	if cfg.EnableScheduler {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	} else {
		log.Warn().Msg("Scheduler disabled, serving HTTP only")
	}

	server := api.NewServer(cfg.HTTPAddr(), api.NewRouter(api.Options{
		Events:        events,
		Cache:         responseCache,
		EnableMetrics: cfg.EnableMetrics,
	}))

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
			cancel()
		}
	}()

	// Keep running until context is cancelled
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if cfg.EnableScheduler {
		sched.Stop()
	}

	log.Info().Msg("Worker shutdown complete")
}
