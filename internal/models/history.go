// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// History entry types.
const (
	HistoryWebsite  = "website"
	HistoryEsoteric = "esoteric"
	HistoryAds      = "ads"
)

// DefaultHistoryLimit is how many entries a workspace keeps.
const DefaultHistoryLimit = 50

// PromptHistoryEntry is a previously generated prompt. Entries are listed
// newest first.
type PromptHistoryEntry struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"-"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Prompt      string    `json:"prompt"`
	Date        time.Time `json:"date"`
}

// ValidHistoryType reports whether t is a known entry type.
func ValidHistoryType(t string) bool {
	switch t {
	case HistoryWebsite, HistoryEsoteric, HistoryAds:
		return true
	}
	return false
}

// Filename returns a download-safe filename for the entry's prompt text.
func (e *PromptHistoryEntry) Filename() string {
	return e.Type + "-prompt-" + e.Date.UTC().Format("20060102-150405") + ".txt"
}
