// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"promptdeck/internal/ads"
	"promptdeck/internal/ai"
	"promptdeck/internal/middleware"
	"promptdeck/internal/models"
	"promptdeck/internal/slug"
)

// memorySets keeps per-workspace used sets in process memory. It backs the
// API when no Valkey-backed factory is configured.
type memorySets struct {
	mu   sync.Mutex
	sets map[uuid.UUID]*ads.MemorySet
}

func newMemorySets() *memorySets {
	return &memorySets{sets: make(map[uuid.UUID]*ads.MemorySet)}
}

func (m *memorySets) get(ws uuid.UUID) ads.UsedSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sets[ws]
	if !ok {
		s = ads.NewMemorySet()
		m.sets[ws] = s
	}
	return s
}

type generateAdsResponse struct {
	Ads     []ads.Ad                   `json:"ads"`
	History *models.PromptHistoryEntry `json:"history,omitempty"`
}

// GenerateAds drafts ads for every keyword group with the workspace's AI
// provider and normalizes them against the workspace's used lines.
func (a *API) GenerateAds(w http.ResponseWriter, r *http.Request) {
	var req ads.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	ws := middleware.WorkspaceFromCtx(ctx)
	provider, err := a.textProvider(ctx, ws)
	if err != nil {
		writeFailure(w, "resolve ai provider", err)
		return
	}

	start := time.Now()
	gen := ads.NewGenerator(provider, a.adConcurrency)
	list, err := gen.Generate(ctx, req, ads.NewTracker(a.usedSets(ws)))
	if err != nil {
		writeFailure(w, "generate ads", err)
		return
	}
	slog.Info("ads generated",
		"workspace", ws,
		"provider", provider.Name(),
		"groups", len(req.Groups),
		"ads", len(list),
		"duration", time.Since(start).String(),
	)

	var buf bytes.Buffer
	if err := ads.WriteJSON(&buf, list); err != nil {
		writeFailure(w, "encode ads", err)
		return
	}
	title := req.CampaignName
	if title == "" {
		title = req.Groups[0].Name
	}
	entry := a.record(r, models.HistoryAds, title, buf.String())

	writeJSON(w, http.StatusOK, generateAdsResponse{Ads: list, History: entry})
}

type keywordGroupsRequest struct {
	Keywords  []string `json:"keywords"`
	Text      string   `json:"text"`
	MaxGroups int      `json:"max_groups"`
}

// keywords merges the list and free-text forms of a keyword request.
func (k keywordGroupsRequest) keywords() []string {
	text := strings.Join(k.Keywords, "\n")
	if k.Text != "" {
		text += "\n" + k.Text
	}
	return ads.ParseKeywords(text)
}

// KeywordGroups clusters keywords into ad groups with the workspace's AI
// provider. Replies are cached, so regrouping the same list is free.
func (a *API) KeywordGroups(w http.ResponseWriter, r *http.Request) {
	var req keywordGroupsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	keywords := req.keywords()
	if len(keywords) == 0 {
		writeError(w, "at least one keyword is required", http.StatusUnprocessableEntity)
		return
	}
	if len(keywords) > maxKeywords {
		writeError(w, fmt.Sprintf("at most %d keywords per request", maxKeywords), http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	provider, err := a.textProvider(ctx, middleware.WorkspaceFromCtx(ctx))
	if err != nil {
		writeFailure(w, "resolve ai provider", err)
		return
	}
	if a.llmCache != nil {
		provider = ai.NewCached(provider, a.llmCache)
	}

	groups, err := ads.NewGenerator(provider, a.adConcurrency).GroupKeywords(ctx, keywords, req.MaxGroups)
	if err != nil {
		writeFailure(w, "group keywords", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

// ResetAds forgets every headline and description the workspace has used.
func (a *API) ResetAds(w http.ResponseWriter, r *http.Request) {
	ws := middleware.WorkspaceFromCtx(r.Context())
	if err := a.usedSets(ws).Reset(r.Context()); err != nil {
		writeFailure(w, "reset ads", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exportAdsRequest struct {
	Ads []ads.Ad `json:"ads"`
}

// ExportAds returns ads as a CSV (Google Ads Editor layout) or JSON download.
func (a *API) ExportAds(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		writeError(w, "format must be csv or json", http.StatusBadRequest)
		return
	}

	var req exportAdsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var buf bytes.Buffer
	var err error
	contentType := "text/csv; charset=utf-8"
	if format == "csv" {
		err = ads.WriteCSV(&buf, req.Ads)
	} else {
		contentType = "application/json; charset=utf-8"
		err = ads.WriteJSON(&buf, req.Ads)
	}
	if err != nil {
		writeFailure(w, "export ads", err)
		return
	}

	base := "google-ads"
	if len(req.Ads) > 0 {
		if s := slug.Limit(slug.Generate(req.Ads[0].CampaignName), 40); s != "" {
			base += "-" + s
		}
	}
	filename := fmt.Sprintf("%s-%s.%s", base, time.Now().UTC().Format("20060102-150405"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}

type formatKeywordsRequest struct {
	Keywords  []string `json:"keywords"`
	Text      string   `json:"text"`
	MatchType string   `json:"match_type"`
}

// FormatKeywords applies match-type notation to a keyword list.
func (a *API) FormatKeywords(w http.ResponseWriter, r *http.Request) {
	var req formatKeywordsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	mt, err := ads.ParseMatchType(req.MatchType)
	if err != nil {
		writeError(w, "match_type must be broad, phrase or exact", http.StatusUnprocessableEntity)
		return
	}

	keywords := keywordGroupsRequest{Keywords: req.Keywords, Text: req.Text}.keywords()
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, ads.FormatKeyword(k, mt))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"match_type": mt,
		"keywords":   out,
		"text":       strings.Join(out, "\n"),
	})
}

// marshalIndent is used for JSON downloads.
func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
