// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
)

// ResponseCache stores completed LLM responses by key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Cached wraps a provider so identical prompts are answered from cache.
// Use it only for deterministic tasks such as keyword grouping; ad copy
// must stay fresh on every call.
type Cached struct {
	Provider
	cache ResponseCache
}

// NewCached returns p unchanged when cache is nil.
func NewCached(p Provider, cache ResponseCache) Provider {
	if cache == nil {
		return p
	}
	return &Cached{Provider: p, cache: cache}
}

// Generate returns a cached response when one exists, otherwise calls the
// wrapped provider and stores the result.
func (c *Cached) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	key := CacheKey(c.Name(), c.Model(), systemPrompt, userPrompt)
	if cached, ok := c.cache.Get(ctx, key); ok {
		slog.Debug("using cached LLM response", "provider", c.Name())
		return cached, nil
	}

	out, err := c.Provider.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, out); err != nil {
		slog.Warn("failed to cache LLM response", "error", err)
	}
	return out, nil
}

// CacheKey derives a stable, URL-safe key for a prompt.
func CacheKey(provider, model, systemPrompt, userPrompt string) string {
	data := fmt.Sprintf("%s\n---\n%s\n---\n%s\n---\n%s", provider, model, systemPrompt, userPrompt)
	hash := sha256.Sum256([]byte(data))
	return base64.URLEncoding.EncodeToString(hash[:])
}
