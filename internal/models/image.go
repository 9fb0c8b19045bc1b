// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedImage is an image the user chose to keep. It is immutable once
// saved. When the archive is enabled, URL points at the archived copy and
// ArchiveKey/ThumbKey hold the object keys in the bucket. SourceURL keeps
// the provider URL the archived copy was made from.
type GeneratedImage struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"-"`
	URL         string    `json:"url"`
	SourceURL   *string   `json:"-"`
	Prompt      string    `json:"prompt"`
	Size        string    `json:"size"`
	Quality     string    `json:"quality"`
	Style       string    `json:"style"`
	ArchiveKey  *string   `json:"archive_key,omitempty"`
	ThumbKey    *string   `json:"-"`
	ThumbURL    *string   `json:"thumb_url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// IsArchived returns true if the original was copied to object storage.
func (g *GeneratedImage) IsArchived() bool {
	return g.ArchiveKey != nil && *g.ArchiveKey != ""
}
