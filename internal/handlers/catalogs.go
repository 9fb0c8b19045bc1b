// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptdeck/internal/catalog"
)

// Catalogs returns every option catalog.
func (a *API) Catalogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"catalogs": catalog.All()})
}

// Catalog returns a single option catalog by name.
func (a *API) Catalog(w http.ResponseWriter, r *http.Request) {
	c, ok := catalog.Lookup(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, "unknown catalog", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
