// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Maktaba dashboard API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (sessions, creation locks).
//  4. Construct the remote GraphQL client.
//  5. Connect to the object store and ensure the upload bucket.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/joho/godotenv"

	"github.com/taibuivan/maktaba/internal/api"
	"github.com/taibuivan/maktaba/internal/core/author"
	"github.com/taibuivan/maktaba/internal/core/book"
	"github.com/taibuivan/maktaba/internal/core/category"
	"github.com/taibuivan/maktaba/internal/core/chapter"
	"github.com/taibuivan/maktaba/internal/core/favorite"
	"github.com/taibuivan/maktaba/internal/core/review"
	"github.com/taibuivan/maktaba/internal/core/user"
	"github.com/taibuivan/maktaba/internal/platform/config"
	"github.com/taibuivan/maktaba/internal/platform/constants"
	"github.com/taibuivan/maktaba/internal/platform/hasura"
	"github.com/taibuivan/maktaba/internal/platform/objstore"
	redisstore "github.com/taibuivan/maktaba/internal/platform/redis"
	"github.com/taibuivan/maktaba/internal/platform/sec"
	"github.com/taibuivan/maktaba/internal/uploads"
	"github.com/taibuivan/maktaba/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "maktaba"))
	slog.SetDefault(log)

	log.Info("[Maktaba] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; its absence is normal.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "maktaba"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Remote GraphQL ─────────────────────────────────────────────────
	upstream := hasura.NewClient(cfg.HasuraURL, cfg.HasuraAdminSecret, log)
	must(log, upstream.Ping(startupCtx), "reach graphql upstream")

	// ── 5. Object Store ───────────────────────────────────────────────────
	store, err := objstore.New(objstore.Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	must(log, err, "connect to object store")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckUpstream: func() error {
			return upstream.Ping(context.Background())
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckObjectStore: func() error {
			return store.Ping(context.Background())
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userService := user.NewService(user.NewRepository(upstream))

	authorService := author.NewService(
		author.NewRepository(upstream),
		author.NewRedisCreationLock(rdb),
	)

	bookService := book.NewService(book.NewRepository(upstream))
	chapterService := chapter.NewService(chapter.NewRepository(upstream), bookService)
	categoryService := category.NewService(category.NewRepository(upstream))
	favoriteService := favorite.NewService(favorite.NewRepository(upstream))
	reviewService := review.NewService(review.NewRepository(upstream))
	uploadsService := uploads.NewService(store)

	// The master password is a development convenience only; never honour
	// it in other environments even if set.
	masterPassword := ""
	if cfg.IsDevelopment() {
		masterPassword = cfg.DevMasterPassword
	}

	authService := auth.NewService(
		user.NewRepository(upstream),
		authorService,
		auth.NewSessionRepository(rdb),
		tokenService,
		masterPassword,
	)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.IsProduction()),
		User:      user.NewHandler(userService),
		Book:      book.NewHandler(bookService),
		Author:    author.NewHandler(authorService),
		Category:  category.NewHandler(categoryService),
		Chapter:   chapter.NewHandler(chapterService),
		Favorite:  favorite.NewHandler(favoriteService),
		Review:    review.NewHandler(reviewService),
		Uploads:   uploads.NewHandler(uploadsService),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(context.Background(), cfg, log, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
