// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptdeck/internal/middleware"
)

// ListHistory returns the workspace's prompt history, newest first.
func (a *API) ListHistory(w http.ResponseWriter, r *http.Request) {
	ws := middleware.WorkspaceFromCtx(r.Context())
	entries, err := a.history.List(r.Context(), ws)
	if err != nil {
		writeFailure(w, "list history", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// ClearHistory deletes every history entry of the workspace.
func (a *API) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ws := middleware.WorkspaceFromCtx(r.Context())
	if err := a.history.Clear(r.Context(), ws); err != nil {
		writeFailure(w, "clear history", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteHistory deletes a single history entry.
func (a *API) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "invalid history ID", http.StatusBadRequest)
		return
	}

	ws := middleware.WorkspaceFromCtx(r.Context())
	if err := a.history.Delete(r.Context(), ws, id); err != nil {
		writeFailure(w, "delete history", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadHistory returns a history entry's prompt as a text attachment.
func (a *API) DownloadHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, "invalid history ID", http.StatusBadRequest)
		return
	}

	ws := middleware.WorkspaceFromCtx(r.Context())
	entry, err := a.history.Get(r.Context(), ws, id)
	if err != nil {
		writeFailure(w, "get history", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.Filename()))
	w.Write([]byte(entry.Prompt))
}
