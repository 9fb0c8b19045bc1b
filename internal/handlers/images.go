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
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"promptdeck/internal/ai"
	"promptdeck/internal/middleware"
	"promptdeck/internal/models"
)

type generatedImageResponse struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
	Prompt        string `json:"prompt"`
	Size          string `json:"size"`
	Quality       string `json:"quality"`
	Style         string `json:"style"`
}

// GenerateImage screens the prompt with the moderation endpoint and asks
// the image model for a single image. The image is not saved; provider
// URLs expire, so clients save the ones they want to keep.
func (a *API) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req ai.ImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		writeError(w, "Please describe the image you'd like to generate.", http.StatusUnprocessableEntity)
		return
	}
	if utf8.RuneCountInString(req.Prompt) > maxImagePromptLen {
		writeError(w, "Prompt is too long (max 4,000 characters).", http.StatusUnprocessableEntity)
		return
	}
	if err := req.Normalize(); err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	if !a.checkPromptSafety(w, r, req.Prompt) {
		return
	}

	gen, err := a.imageGenerator(ctx, middleware.WorkspaceFromCtx(ctx))
	if err != nil {
		writeFailure(w, "resolve image provider", err)
		return
	}

	res, err := gen.GenerateImage(ctx, req)
	if err != nil {
		writeFailure(w, "generate image", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"image": generatedImageResponse{
		URL:           res.URL,
		RevisedPrompt: res.RevisedPrompt,
		Prompt:        req.Prompt,
		Size:          req.Size,
		Quality:       req.Quality,
		Style:         req.Style,
	}})
}

// checkPromptSafety runs the prompt through the moderation API.
// Returns true if the prompt is safe (or if moderation is unavailable).
// If the prompt is flagged, writes a 422 and returns false.
func (a *API) checkPromptSafety(w http.ResponseWriter, r *http.Request, prompt string) bool {
	result, err := a.providers.CheckPrompt(r.Context(), prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return true
	}
	if result.Safe {
		return true
	}

	categories := strings.Join(result.Categories, ", ")
	slog.Warn("prompt flagged by moderation", "categories", categories)
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":      fmt.Sprintf("Your prompt was flagged for: %s. Please reformulate your request and try again.", categories),
		"categories": result.Categories,
	})
	return false
}

// ListSavedImages returns the workspace's saved images, newest first.
func (a *API) ListSavedImages(w http.ResponseWriter, r *http.Request) {
	ws := middleware.WorkspaceFromCtx(r.Context())
	images, err := a.images.List(r.Context(), ws)
	if err != nil {
		writeFailure(w, "list images", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

type saveImageRequest struct {
	URL     string `json:"url"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

// SaveImage adds an image to the workspace gallery. Saving a URL that is
// already there is not an error; the response reports it as a duplicate.
func (a *API) SaveImage(w http.ResponseWriter, r *http.Request) {
	var req saveImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateImageURL(req.URL); err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	img := &models.GeneratedImage{
		URL:     strings.TrimSpace(req.URL),
		Prompt:  truncate(strings.TrimSpace(req.Prompt), maxImagePromptLen),
		Size:    req.Size,
		Quality: req.Quality,
		Style:   req.Style,
	}
	added, err := a.gallery.Save(ctx, middleware.WorkspaceFromCtx(ctx), img)
	if err != nil {
		writeFailure(w, "save image", err)
		return
	}

	if !added {
		writeJSON(w, http.StatusOK, map[string]any{"duplicate": true})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"image": img})
}

// DeleteSavedImage removes an image and its archived copies.
func (a *API) DeleteSavedImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "invalid image ID", http.StatusBadRequest)
		return
	}

	ws := middleware.WorkspaceFromCtx(r.Context())
	if err := a.gallery.Delete(r.Context(), ws, id); err != nil {
		writeFailure(w, "delete image", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportSavedImages returns the gallery as a JSON download that
// ImportSavedImages accepts.
func (a *API) ExportSavedImages(w http.ResponseWriter, r *http.Request) {
	ws := middleware.WorkspaceFromCtx(r.Context())
	images, err := a.images.List(r.Context(), ws)
	if err != nil {
		writeFailure(w, "export images", err)
		return
	}

	data, err := marshalIndent(images)
	if err != nil {
		writeFailure(w, "encode images", err)
		return
	}

	filename := fmt.Sprintf("saved-images-%s.json", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// ImportSavedImages merges an exported gallery into the workspace. The body
// is either the bare exported array or {"images": [...]}. Images whose URL
// the workspace already has are skipped.
func (a *API) ImportSavedImages(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}

	images, err := decodeImport(raw)
	if err != nil {
		writeError(w, fmt.Sprintf("invalid import file: %v", err), http.StatusBadRequest)
		return
	}
	if len(images) > maxImportImages {
		writeError(w, fmt.Sprintf("at most %d images per import", maxImportImages), http.StatusUnprocessableEntity)
		return
	}
	for i := range images {
		if err := validateImageURL(images[i].URL); err != nil {
			writeError(w, fmt.Sprintf("image %d: %v", i+1, err), http.StatusUnprocessableEntity)
			return
		}
		// Object keys only come from this server's own archive.
		images[i].ArchiveKey = nil
		images[i].ThumbKey = nil
	}

	ctx := r.Context()
	added, err := a.images.Import(ctx, middleware.WorkspaceFromCtx(ctx), images)
	if err != nil {
		writeFailure(w, "import images", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"imported": added,
		"skipped":  len(images) - added,
	})
}

func decodeImport(raw json.RawMessage) ([]models.GeneratedImage, error) {
	raw = bytes.TrimSpace(raw)
	var images []models.GeneratedImage
	if len(raw) > 0 && raw[0] == '[' {
		err := json.Unmarshal(raw, &images)
		return images, err
	}

	var wrapped struct {
		Images []models.GeneratedImage `json:"images"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Images == nil {
		return nil, fmt.Errorf("expected an array of images")
	}
	return wrapped.Images, nil
}
