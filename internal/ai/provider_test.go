// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"os"
	"testing"
	"time"
)

// liveRegistry builds a registry against the real API for name, skipping
// the test when the key env var is not set.
func liveRegistry(t *testing.T, name, keyEnv, modelEnv string) *Registry {
	t.Helper()
	key := os.Getenv(keyEnv)
	if key == "" {
		t.Skip(keyEnv + " not set")
	}
	return NewRegistry(name, map[string]ProviderConfig{
		name: {APIKey: key, Model: os.Getenv(modelEnv)},
	}, nil)
}

// TestOpenAILive tests the OpenAI provider against the real API.
// Skipped if OPENAI_API_KEY is not set.
func TestOpenAILive(t *testing.T) {
	reg := liveRegistry(t, OpenAI, "OPENAI_API_KEY", "OPENAI_MODEL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := reg.Generate(ctx, "Reply in exactly one short sentence.", "What is 2+2?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result == "" {
		t.Fatal("Generate returned empty string")
	}
	t.Logf("OpenAI response: %s", result)
}

// TestDeepSeekLive tests the DeepSeek provider against the real API.
// Skipped if DEEPSEEK_API_KEY is not set.
func TestDeepSeekLive(t *testing.T) {
	reg := liveRegistry(t, DeepSeek, "DEEPSEEK_API_KEY", "DEEPSEEK_MODEL")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := reg.Generate(ctx, "Reply in exactly one short sentence.", "What is 2+2?")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result == "" {
		t.Fatal("Generate returned empty string")
	}
	t.Logf("DeepSeek response: %s", result)
}
