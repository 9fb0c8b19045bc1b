// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"

	"promptdeck/internal/catalog"
)

// ImageGenerator is an optional interface for providers that can create
// images. Only OpenAI implements it; DeepSeek is text-only.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)
}

// ImageRequest describes a DALL·E style image generation call.
type ImageRequest struct {
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

// ImageResult is a generated image. URL points at the provider's
// short-lived storage.
type ImageResult struct {
	URL           string
	RevisedPrompt string
}

// Normalize fills defaults and rejects values outside the image catalogs.
func (r *ImageRequest) Normalize() error {
	if r.Prompt == "" {
		return fmt.Errorf("ai: image prompt is empty")
	}
	if r.Size == "" {
		r.Size = "1024x1024"
	}
	if r.Quality == "" {
		r.Quality = "standard"
	}
	if r.Style == "" {
		r.Style = "vivid"
	}
	checks := []struct{ name, value string }{
		{catalog.ImageSizes, r.Size},
		{catalog.ImageQualities, r.Quality},
		{catalog.ImageStyles, r.Style},
	}
	for _, c := range checks {
		if !catalog.MustLookup(c.name).Has(c.value) {
			return fmt.Errorf("ai: unsupported %s %q", c.name, c.value)
		}
	}
	return nil
}

// ImageGenerator returns a provider that supports image generation,
// preferring the active one.
func (r *Registry) ImageGenerator() (ImageGenerator, bool) {
	if p, err := r.Active(); err == nil {
		if ig, ok := p.(ImageGenerator); ok {
			return ig, true
		}
	}
	p, ok := r.Get(OpenAI)
	if !ok {
		return nil, false
	}
	ig, ok := p.(ImageGenerator)
	return ig, ok
}
