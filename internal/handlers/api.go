// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the PromptDeck JSON API.
// Every handler works inside the workspace loaded by the middleware and
// receives its dependencies through the API struct, as interfaces so tests
// can swap in fakes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"promptdeck/internal/ads"
	"promptdeck/internal/ai"
	"promptdeck/internal/models"
	"promptdeck/internal/pinterest"
	"promptdeck/internal/prompt"
	"promptdeck/internal/store"
)

// HistoryRepo stores prompt history entries.
type HistoryRepo interface {
	Add(ctx context.Context, e *models.PromptHistoryEntry) error
	List(ctx context.Context, workspaceID uuid.UUID) ([]models.PromptHistoryEntry, error)
	Get(ctx context.Context, workspaceID, id uuid.UUID) (*models.PromptHistoryEntry, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
	Clear(ctx context.Context, workspaceID uuid.UUID) error
}

// ImageRepo lists and bulk-imports saved images.
type ImageRepo interface {
	List(ctx context.Context, workspaceID uuid.UUID) ([]models.GeneratedImage, error)
	Import(ctx context.Context, workspaceID uuid.UUID, images []models.GeneratedImage) (int, error)
}

// Gallery saves and deletes images, archiving them when storage is enabled.
type Gallery interface {
	Save(ctx context.Context, workspaceID uuid.UUID, img *models.GeneratedImage) (bool, error)
	Delete(ctx context.Context, workspaceID, id uuid.UUID) error
}

// SettingsRepo stores a workspace's AI configuration.
type SettingsRepo interface {
	AIConfig(ctx context.Context, workspaceID uuid.UUID) (models.AIConfig, error)
	SetAIConfig(ctx context.Context, workspaceID uuid.UUID, cfg models.AIConfig) error
}

// PinResolver finds the video behind a Pinterest pin.
type PinResolver interface {
	Resolve(ctx context.Context, pinURL string) (*pinterest.Video, error)
}

// Providers resolves the AI provider for a workspace.
type Providers interface {
	Resolve(o ai.Override) (ai.Provider, error)
	ImageGenerator() (ai.ImageGenerator, bool)
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
	ActiveName() string
	Available() []string
}

// UsedSets returns the ads de-duplication set of a workspace.
type UsedSets func(workspaceID uuid.UUID) ads.UsedSet

// Deps bundles everything the API needs. LLMCache may be nil.
type Deps struct {
	History       HistoryRepo
	Images        ImageRepo
	Gallery       Gallery
	Settings      SettingsRepo
	Providers     Providers
	LLMCache      ai.ResponseCache
	UsedSets      UsedSets
	Pinterest     PinResolver
	SplitMax      int
	AdConcurrency int
}

// API groups the JSON API handlers and their dependencies.
type API struct {
	history       HistoryRepo
	images        ImageRepo
	gallery       Gallery
	settings      SettingsRepo
	providers     Providers
	llmCache      ai.ResponseCache
	usedSets      UsedSets
	pins          PinResolver
	splitMax      int
	adConcurrency int
}

// New creates the API handler group.
func New(d Deps) *API {
	if d.UsedSets == nil {
		sets := newMemorySets()
		d.UsedSets = sets.get
	}
	return &API{
		history:       d.History,
		images:        d.Images,
		gallery:       d.Gallery,
		settings:      d.Settings,
		providers:     d.Providers,
		llmCache:      d.LLMCache,
		usedSets:      d.UsedSets,
		pins:          d.Pinterest,
		splitMax:      d.SplitMax,
		adConcurrency: d.AdConcurrency,
	}
}

// maxBodySize caps JSON request bodies. Image imports are the largest.
const maxBodySize = 5 << 20

// decodeJSON reads a JSON request body into dst, rejecting unknown fields
// and trailing data. It writes a 400 and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, "request body too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			writeError(w, "request body is empty", http.StatusBadRequest)
		default:
			writeError(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		}
		return false
	}
	if dec.More() {
		writeError(w, "invalid JSON: trailing data", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps an error from a store, provider or generator onto an
// HTTP response. Unknown errors are logged and hidden behind a 500.
func writeFailure(w http.ResponseWriter, op string, err error) {
	var apiErr *ai.APIError
	var verr prompt.ValidationErrors

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr,
		})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, "not found", http.StatusNotFound)
	case errors.As(err, &apiErr):
		slog.Warn(op+" failed", "provider", apiErr.Provider, "status", apiErr.Status, "error", apiErr.Message)
		writeError(w, apiErr.UserMessage(), http.StatusBadGateway)
	case errors.Is(err, ads.ErrUnexpectedFormat):
		slog.Warn(op+" failed", "error", err)
		writeError(w, "the AI provider returned an unexpected format", http.StatusBadGateway)
	case errors.Is(err, ai.ErrNoProvider):
		writeError(w, "no AI provider is configured; add an API key in the AI settings", http.StatusConflict)
	case errors.Is(err, ads.ErrTemplatesExhausted):
		writeError(w, "ran out of unique ad text; reset the ads history and try again", http.StatusConflict)
	case errors.Is(err, pinterest.ErrInvalidURL):
		writeError(w, "not a Pinterest pin URL", http.StatusUnprocessableEntity)
	case errors.Is(err, pinterest.ErrNoVideo):
		writeError(w, "no video found on that pin", http.StatusNotFound)
	case errors.Is(err, pinterest.ErrFetch):
		slog.Warn(op+" failed", "error", err)
		writeError(w, "Pinterest could not be reached", http.StatusBadGateway)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, "the upstream service timed out", http.StatusGatewayTimeout)
	default:
		slog.Error(op+" failed", "error", err)
		writeError(w, "internal server error", http.StatusInternalServerError)
	}
}
