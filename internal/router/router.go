// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// PromptDeck API. Every /api route runs inside a workspace; endpoints that
// call paid AI providers are additionally rate-limited per client IP.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"promptdeck/internal/handlers"
	"promptdeck/internal/middleware"
)

// Checker reports whether a dependency is healthy.
type Checker func(ctx context.Context) error

// Options holds everything the router wires together.
type Options struct {
	API        *handlers.API
	Sessions   middleware.WorkspaceSessions
	Workspaces middleware.WorkspaceToucher
	Settings   middleware.SettingsCleaner

	// AILimiter throttles the AI-backed endpoints. nil disables limiting.
	AILimiter *middleware.RateLimiter

	// Checks are run by /health, keyed by dependency name.
	Checks map[string]Checker
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(o Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check, outside any workspace.
	r.Get("/health", healthHandler(o.Checks))

	a := o.API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadWorkspace(o.Sessions, o.Workspaces, o.Settings))

		r.Get("/catalogs", a.Catalogs)
		r.Get("/catalogs/{name}", a.Catalog)

		r.Route("/prompts", func(r chi.Router) {
			r.Post("/website", a.WebsitePrompt)
			r.Post("/esoteric", a.EsotericPrompt)
			r.Post("/split", a.SplitPrompt)
			r.Post("/preview", a.PreviewPrompt)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", a.ListHistory)
			r.Delete("/", a.ClearHistory)
			r.Delete("/{id}", a.DeleteHistory)
			r.Get("/{id}/download", a.DownloadHistory)
		})

		r.Get("/settings/ai", a.GetAISettings)
		r.Put("/settings/ai", a.PutAISettings)

		r.Route("/ads", func(r chi.Router) {
			r.Post("/reset", a.ResetAds)
			r.Post("/export", a.ExportAds)
			r.Post("/keywords/format", a.FormatKeywords)

			r.Group(func(r chi.Router) {
				useLimiter(r, o.AILimiter)
				r.Post("/generate", a.GenerateAds)
				r.Post("/keyword-groups", a.KeywordGroups)
			})
		})

		r.Route("/images", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				useLimiter(r, o.AILimiter)
				r.Post("/generate", a.GenerateImage)
			})

			r.Get("/saved", a.ListSavedImages)
			r.Post("/saved", a.SaveImage)
			r.Get("/saved/export", a.ExportSavedImages)
			r.Post("/saved/import", a.ImportSavedImages)
			r.Delete("/saved/{id}", a.DeleteSavedImage)
		})

		r.Post("/pinterest/resolve", a.ResolvePinterest)
	})

	return r
}

func useLimiter(r chi.Router, rl *middleware.RateLimiter) {
	if rl != nil {
		r.Use(rl.Middleware)
	}
}

// healthCheckTimeout bounds the whole /health run.
const healthCheckTimeout = 3 * time.Second

// healthHandler runs every dependency check and returns 200 when all pass,
// 503 otherwise.
func healthHandler(checks map[string]Checker) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				results[name] = err.Error()
				status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		body := map[string]any{"status": status}
		if len(results) > 0 {
			body["checks"] = results
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(body)
	}
}
