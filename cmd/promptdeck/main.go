// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the PromptDeck API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"promptdeck/internal/ads"
	"promptdeck/internal/ai"
	"promptdeck/internal/cache"
	"promptdeck/internal/config"
	"promptdeck/internal/database"
	"promptdeck/internal/gallery"
	"promptdeck/internal/handlers"
	"promptdeck/internal/middleware"
	"promptdeck/internal/pinterest"
	"promptdeck/internal/router"
	"promptdeck/internal/session"
	"promptdeck/internal/storage"
	"promptdeck/internal/store"
)

func main() {
	// Load configuration from environment variables (and .env if present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Text logs in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (sessions, ads used-sets and the LLM cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	sessionStore := session.NewStore(valkeyClient, cfg.SessionTTL, !cfg.IsDev())

	// Initialize data stores.
	workspaceStore := store.NewWorkspaceStore(db)
	historyStore := store.NewHistoryStore(db, cfg.HistoryLimit)
	imageStore := store.NewImageStore(db)
	settingsStore := store.NewSettingsStore(db)

	// One retrying HTTP client is shared by every AI provider.
	aiClient := ai.NewHTTPClient(ai.HTTPOptions{
		Timeout:  cfg.AITimeout,
		RetryMax: cfg.AIRetryMax,
	})
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		ai.OpenAI: {
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			ImageModel: cfg.OpenAIImageModel,
			BaseURL:    cfg.OpenAIBaseURL,
		},
		ai.DeepSeek: {
			APIKey:  cfg.DeepSeekAPIKey,
			Model:   cfg.DeepSeekModel,
			BaseURL: cfg.DeepSeekBaseURL,
		},
	}, aiClient)

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)
	if len(aiRegistry.Available()) == 0 {
		slog.Warn("no server AI keys configured, workspaces must bring their own")
	}

	// Connect to S3-compatible object storage (optional, the gallery works
	// without it but provider URLs expire).
	var objects gallery.ObjectStore
	if cfg.S3Enabled() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			objects = storageClient
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", storageClient.Bucket(),
			)
		}
	} else {
		slog.Warn("s3 storage not configured, saved images are not archived")
	}
	imageGallery := gallery.New(imageStore, objects, nil)

	api := handlers.New(handlers.Deps{
		History:   historyStore,
		Images:    imageStore,
		Gallery:   imageGallery,
		Settings:  settingsStore,
		Providers: aiRegistry,
		LLMCache:  cache.NewLLMCache(valkeyClient, cfg.LLMCacheTTL),
		UsedSets: func(ws uuid.UUID) ads.UsedSet {
			return cache.NewUsedSet(valkeyClient, ws.String(), 0)
		},
		Pinterest:     pinterest.New(cfg.PinterestTimeout),
		SplitMax:      cfg.SplitMax,
		AdConcurrency: cfg.AIConcurrency,
	})

	aiLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer aiLimiter.Stop()

	r := router.New(router.Options{
		API:        api,
		Sessions:   sessionStore,
		Workspaces: workspaceStore,
		Settings:   settingsStore,
		AILimiter:  aiLimiter,
		Checks: map[string]router.Checker{
			"postgres": db.PingContext,
			"valkey": func(ctx context.Context) error {
				return valkeyClient.Ping(ctx).Err()
			},
		},
	})

	// WriteTimeout must accommodate ads generation, which waits on several
	// LLM calls (typically 10-30s, up to the AI timeout per attempt).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AITimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
