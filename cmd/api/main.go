// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the Konstra CMS HTTP API.
//
// # Startup Sequence
//
//  1. Logger, then configuration from the environment.
//  2. PostgreSQL pool and migrations.
//  3. Redis client for specification drafts.
//  4. S3 client for uploaded images.
//  5. Domain services and handlers.
//  6. HTTP server with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/konstra/internal/api"
	"github.com/taibuivan/konstra/internal/core/content"
	"github.com/taibuivan/konstra/internal/core/media"
	"github.com/taibuivan/konstra/internal/core/slugs"
	"github.com/taibuivan/konstra/internal/core/spectable"
	"github.com/taibuivan/konstra/internal/platform/config"
	"github.com/taibuivan/konstra/internal/platform/constants"
	"github.com/taibuivan/konstra/internal/platform/migration"
	pgstore "github.com/taibuivan/konstra/internal/platform/postgres"
	redisstore "github.com/taibuivan/konstra/internal/platform/redis"
	"github.com/taibuivan/konstra/internal/platform/storage"
)

func main() {
	// ── 1. Logger & Configuration ─────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("bucket", cfg.S3Bucket),
		slog.Int("trusted_proxies", len(cfg.ProxyPrefixes())),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 2. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Object Storage ─────────────────────────────────────────────────
	objects := media.NewS3Store(storage.NewClient(storage.Options{
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	}, log), cfg.S3PublicBaseURL)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	mediaService := media.NewService(objects, cfg.S3Bucket, cfg.MaxUploadBytes, log)
	slugResolver := slugs.NewResolver(slugs.NewPostgresFinder(pool), log)
	contentService := content.NewService(content.NewRepository(pool), slugResolver, mediaService, cfg.S3Bucket, log)
	draftService := spectable.NewService(spectable.NewDraftRepository(rdb), cfg.DraftTTL, log)

	handlers := api.Handlers{
		Health: api.NewHealthHandler(map[string]api.Check{
			"postgres": func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
			"redis":    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
			"object_storage": func(ctx context.Context) error {
				return objects.Ping(ctx, cfg.S3Bucket)
			},
		}, log),
		Projects:   content.NewHandler(contentService, content.CollectionProjects),
		Insights:   content.NewHandler(contentService, content.CollectionInsights),
		SpecDrafts: spectable.NewHandler(draftService),
		Media:      media.NewHandler(mediaService),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(appCtx, cfg, log, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-appCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger returns the JSON process logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
}

// must aborts startup on err. It is only used during wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
