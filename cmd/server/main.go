package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gympos/internal/config"
	"gympos/internal/infra"
	"gympos/internal/repository"
	"gympos/internal/repository/memory"
	mongostore "gympos/internal/repository/mongo"
	"gympos/internal/router"
	"gympos/internal/service"
	"gympos/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer closeStore()

	// Redis is optional: without it the drinks list is served uncached and
	// close reports are not generated.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache and workers")
			rdb = nil
		}
	}

	var notifier service.CierreNotifier
	waitWorkers := func() {}
	if rdb != nil {
		dispatcher := worker.NewDispatcher(rdb)
		notifier = dispatcher

		var publisher worker.EventPublisher
		if cfg.RabbitMQURL != "" {
			p := infra.NewEventPublisher(cfg.RabbitMQURL)
			defer p.Close()
			publisher = p
		}

		// Worker handlers are wired here (composition root) so that the pool
		// has access to every infrastructure dependency.
		workerHandlers := &worker.WorkerHandlers{
			Cierre: worker.NewCierreWorker(store.Cierres(), publisher, dispatcher, worker.CierreWorkerConfig{
				GymName:  cfg.GymName,
				PDFDir:   cfg.PDFStoragePath,
				ReportTo: cfg.ReportEmailTo,
			}),
			Email: worker.NewEmailWorker(infra.NewMailer(cfg)),
		}
		waitWorkers = worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)
	}

	r := router.New(cfg, store, rdb, notifier)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("store", cfg.StoreDriver).Msgf("gympos backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	cancel()
	waitWorkers()
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}

// setupLogger: dev gets the pretty console writer, production plain JSON.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := infra.NewMongo(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		store := mongostore.New(db)
		if err := store.Migrate(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return store, func() { _ = client.Disconnect(context.Background()) }, nil
	case config.StoreMemory:
		log.Warn().Msg("memory store: data is lost on restart")
		return memory.New(), func() {}, nil
	default:
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewStore(db), closeDB, nil
	}
}
