// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
)

type resolvePinRequest struct {
	URL string `json:"url"`
}

// ResolvePinterest finds the MP4 behind a Pinterest pin, for use as a
// background video.
func (a *API) ResolvePinterest(w http.ResponseWriter, r *http.Request) {
	var req resolvePinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, "url is required", http.StatusUnprocessableEntity)
		return
	}

	video, err := a.pins.Resolve(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		writeFailure(w, "resolve pinterest video", err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}
