// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"promptdeck/internal/ai"
	"promptdeck/internal/middleware"
	"promptdeck/internal/models"
)

// serverAI describes the server-default providers. Keys are never exposed.
type serverAI struct {
	DefaultProvider string            `json:"default_provider"`
	Available       []string          `json:"available"`
	DefaultModels   map[string]string `json:"default_models"`
}

type aiSettingsResponse struct {
	Settings models.AIConfig `json:"settings"`
	Server   serverAI        `json:"server"`
}

func (a *API) aiSettingsResponse(cfg models.AIConfig) aiSettingsResponse {
	return aiSettingsResponse{
		Settings: cfg.Masked(),
		Server: serverAI{
			DefaultProvider: a.providers.ActiveName(),
			Available:       a.providers.Available(),
			DefaultModels: map[string]string{
				ai.OpenAI:   ai.DefaultOpenAIModel,
				ai.DeepSeek: ai.DefaultDeepSeekModel,
			},
		},
	}
}

// GetAISettings returns the workspace's AI settings with keys masked.
func (a *API) GetAISettings(w http.ResponseWriter, r *http.Request) {
	ws := middleware.WorkspaceFromCtx(r.Context())
	cfg, err := a.settings.AIConfig(r.Context(), ws)
	if err != nil {
		writeFailure(w, "load ai settings", err)
		return
	}
	writeJSON(w, http.StatusOK, a.aiSettingsResponse(cfg))
}

// PutAISettings replaces the workspace's AI settings. A key sent back in
// its masked form keeps the stored key; an empty key removes it.
func (a *API) PutAISettings(w http.ResponseWriter, r *http.Request) {
	var req models.AIConfig
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Provider = strings.TrimSpace(req.Provider)
	req.Model = strings.TrimSpace(req.Model)
	req.OpenAIAPIKey = strings.TrimSpace(req.OpenAIAPIKey)
	req.DeepSeekAPIKey = strings.TrimSpace(req.DeepSeekAPIKey)

	if msg := validateAISettings(req); msg != "" {
		writeError(w, msg, http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	ws := middleware.WorkspaceFromCtx(ctx)
	current, err := a.settings.AIConfig(ctx, ws)
	if err != nil {
		writeFailure(w, "load ai settings", err)
		return
	}
	if models.IsMasked(req.OpenAIAPIKey) {
		req.OpenAIAPIKey = current.OpenAIAPIKey
	}
	if models.IsMasked(req.DeepSeekAPIKey) {
		req.DeepSeekAPIKey = current.DeepSeekAPIKey
	}

	if err := a.settings.SetAIConfig(ctx, ws, req); err != nil {
		writeFailure(w, "save ai settings", err)
		return
	}

	slog.Info("ai settings updated", "workspace", ws, "provider", req.Provider, "model", req.Model)
	writeJSON(w, http.StatusOK, a.aiSettingsResponse(req))
}

// textProvider resolves the chat provider for a workspace.
func (a *API) textProvider(ctx context.Context, ws uuid.UUID) (ai.Provider, error) {
	cfg, err := a.settings.AIConfig(ctx, ws)
	if err != nil {
		return nil, err
	}
	name := cfg.Provider
	if name == "" {
		name = a.providers.ActiveName()
	}
	return a.providers.Resolve(ai.Override{
		Provider: name,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey(name),
	})
}

// imageGenerator resolves an image-capable provider for a workspace. Only
// OpenAI generates images: the workspace's own OpenAI key wins, then the
// server's.
func (a *API) imageGenerator(ctx context.Context, ws uuid.UUID) (ai.ImageGenerator, error) {
	cfg, err := a.settings.AIConfig(ctx, ws)
	if err != nil {
		return nil, err
	}
	if cfg.OpenAIAPIKey != "" {
		p, err := a.providers.Resolve(ai.Override{Provider: ai.OpenAI, APIKey: cfg.OpenAIAPIKey})
		if err != nil {
			return nil, err
		}
		if ig, ok := p.(ai.ImageGenerator); ok {
			return ig, nil
		}
	}
	if ig, ok := a.providers.ImageGenerator(); ok {
		return ig, nil
	}
	return nil, ai.ErrNoProvider
}
