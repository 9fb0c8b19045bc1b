// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// llm.go provides a Valkey-backed cache of LLM responses. Only
// deterministic requests (keyword grouping) go through it, so a repeated
// request skips the provider round trip entirely.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// llmKeyPrefix is the Valkey key prefix for cached responses.
	llmKeyPrefix = "llm:"

	// DefaultLLMTTL is how long a response stays cached.
	DefaultLLMTTL = 24 * time.Hour
)

// LLMCache stores LLM responses in Valkey.
type LLMCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLLMCache creates a new response cache backed by the given Valkey client.
func NewLLMCache(client *redis.Client, ttl time.Duration) *LLMCache {
	if ttl == 0 {
		ttl = DefaultLLMTTL
	}
	return &LLMCache{client: client, ttl: ttl}
}

// Get returns a cached response. Errors count as misses.
func (c *LLMCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, llmKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		slog.Warn("llm cache get error", "error", err)
		return "", false
	}
	return val, true
}

// Set stores a response with the configured TTL.
func (c *LLMCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, llmKeyPrefix+key, value, c.ttl).Err()
}

// Clear removes all cached responses by scanning for the prefix.
func (c *LLMCache) Clear(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, llmKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("llm cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("llm cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("llm cache cleared", "deleted", deleted)
	}
}
