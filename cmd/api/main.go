package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"salesdrive"
	"salesdrive/internal/config"
	"salesdrive/internal/domain/event"
	httpx "salesdrive/internal/http"
	eventsvc "salesdrive/internal/services/event"
	"salesdrive/internal/store/memory"
	"salesdrive/internal/store/postgres"
	redisstore "salesdrive/internal/store/redis"
	"salesdrive/internal/store/repositories"
)

func setupLogger(cfg config.Cfg) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var logger zerolog.Logger
	if cfg.IsProduction() {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	logger = logger.With().Timestamp().Str("app", "salesdrive-webhooks").Logger()
	log.Logger = logger
	return logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := salesdrive.NewFromConfig(cfg.SalesDrive, salesdrive.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("create salesdrive client")
	}

	// Event storage: Postgres when configured, memory otherwise
	var eventRepo repositories.EventRepository
	if cfg.DB.DSN != "" {
		pool := postgres.MustOpen(ctx, cfg.DB.DSN)
		defer pool.Close()
		repo := postgres.NewEventRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("ensure schema")
		}
		eventRepo = repo
	} else {
		logger.Warn().Msg("DB_DSN not set, webhook events are kept in memory")
		eventRepo = memory.NewEventStore()
	}

	var dedup repositories.Deduper = memory.NewDeduper()
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Open(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		dedup = redisstore.NewDeduper(rdb)
	}

	if cfg.Webhook.Token == "" {
		logger.Warn().Msg("WEBHOOK_TOKEN not set, webhook endpoints are open")
	}

	system := eventsvc.NewEventProcessingSystem(eventRepo, dedup, client.Orders, eventsvc.WorkerConfig{
		PollInterval: cfg.Webhook.PollInterval,
		BatchSize:    cfg.Webhook.BatchSize,
		DedupTTL:     cfg.Webhook.DedupTTL,
	}, logger)
	system.Processor.Register(event.TypeOrder, eventsvc.HandlerFunc(logOrderEvent(logger)))
	go system.Worker.Run(ctx)

	r := httpx.NewRouter(httpx.RouterDependencies{
		WebhookToken: cfg.Webhook.Token,
		Receiver:     system.Ingestor,
		Events:       eventRepo,
		Replay:       system.Replay,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Msgf("webhook receiver listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	logger.Info().Msg("server stopped")
}
