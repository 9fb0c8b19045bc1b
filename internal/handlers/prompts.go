// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"promptdeck/internal/markdown"
	"promptdeck/internal/middleware"
	"promptdeck/internal/models"
	"promptdeck/internal/prompt"
)

// promptResponse is returned by both prompt builders.
type promptResponse struct {
	Prompt  string                     `json:"prompt"`
	Parts   []string                   `json:"parts"`
	History *models.PromptHistoryEntry `json:"history,omitempty"`
}

// WebsitePrompt validates a website form, assembles the prompt, splits it
// into parts and records it in the workspace history.
func (a *API) WebsitePrompt(w http.ResponseWriter, r *http.Request) {
	var form prompt.WebsiteForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if err := form.Validate(); err != nil {
		writeFailure(w, "validate website form", err)
		return
	}

	max, ok := a.partSize(w, r)
	if !ok {
		return
	}

	text := prompt.Build(&form)
	entry := a.record(r, models.HistoryWebsite, form.ProjectName, text)
	writeJSON(w, http.StatusOK, promptResponse{
		Prompt:  text,
		Parts:   prompt.Split(text, max),
		History: entry,
	})
}

// EsotericPrompt builds an image-model prompt from an esoteric form and
// records it in the workspace history.
func (a *API) EsotericPrompt(w http.ResponseWriter, r *http.Request) {
	var form prompt.EsotericForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if err := form.Validate(); err != nil {
		writeFailure(w, "validate esoteric form", err)
		return
	}

	text := prompt.BuildImagePrompt(&form)
	entry := a.record(r, models.HistoryEsoteric, form.Subject, text)
	writeJSON(w, http.StatusOK, promptResponse{
		Prompt:  text,
		Parts:   []string{text},
		History: entry,
	})
}

type splitRequest struct {
	Text string `json:"text"`
	Max  int    `json:"max"`
}

// SplitPrompt splits arbitrary text into parts no longer than max runes.
// A missing max uses the server's default part size.
func (a *API) SplitPrompt(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Max < 0 {
		writeError(w, "max must not be negative", http.StatusUnprocessableEntity)
		return
	}
	if req.Max == 0 {
		req.Max = a.defaultPartSize()
	}

	parts := prompt.Split(req.Text, req.Max)
	writeJSON(w, http.StatusOK, map[string]any{"parts": parts, "count": len(parts)})
}

type previewRequest struct {
	Text string `json:"text"`
}

// PreviewPrompt renders prompt text as HTML.
func (a *API) PreviewPrompt(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	html, err := markdown.ToHTML(req.Text)
	if err != nil {
		writeFailure(w, "render preview", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// partSize reads the optional ?max= query parameter.
func (a *API) partSize(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("max")
	if raw == "" {
		return a.defaultPartSize(), true
	}
	n, err := parsePositiveInt(raw)
	if err != nil {
		writeError(w, "max must be a positive number", http.StatusUnprocessableEntity)
		return 0, false
	}
	return n, true
}

func (a *API) defaultPartSize() int {
	if a.splitMax > 0 {
		return a.splitMax
	}
	return prompt.DefaultPartSize
}

// record appends a history entry. History is a convenience: a failure is
// logged and the prompt is still returned.
func (a *API) record(r *http.Request, typ, title, text string) *models.PromptHistoryEntry {
	entry := &models.PromptHistoryEntry{
		WorkspaceID: middleware.WorkspaceFromCtx(r.Context()),
		Type:        typ,
		Title:       historyTitle(title),
		Prompt:      text,
	}
	if err := a.history.Add(r.Context(), entry); err != nil {
		slog.Warn("record history failed", "type", typ, "error", err)
		return nil
	}
	return entry
}

func historyTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "Untitled"
	}
	return truncate(s, maxHistoryTitleLen)
}
