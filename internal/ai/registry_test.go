// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// mockProvider is a test double implementing the Provider interface.
// It records calls and returns configurable responses.
type mockProvider struct {
	name       string
	response   string
	err        error
	callCount  int
	lastSystem string
	lastUser   string
	mu         sync.Mutex
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return "mock-model" }

func (m *mockProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	return m.response, m.err
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// ---------- Registry.Generate ----------

func TestRegistryGenerate(t *testing.T) {
	t.Run("delegates to active provider", func(t *testing.T) {
		mock := &mockProvider{name: "test", response: "Hello from mock"}

		reg := &Registry{
			providers: map[string]Provider{"test": mock},
			active:    "test",
		}

		result, err := reg.Generate(context.Background(), "system", "user")
		if err != nil {
			t.Fatalf("Generate: unexpected error: %v", err)
		}
		if result != "Hello from mock" {
			t.Errorf("result: got %q, want %q", result, "Hello from mock")
		}

		mock.mu.Lock()
		defer mock.mu.Unlock()
		if mock.callCount != 1 || mock.lastSystem != "system" || mock.lastUser != "user" {
			t.Errorf("unexpected call record: %d %q %q", mock.callCount, mock.lastSystem, mock.lastUser)
		}
	})

	t.Run("propagates provider error", func(t *testing.T) {
		mock := &mockProvider{name: "test", err: fmt.Errorf("api failure")}

		reg := &Registry{
			providers: map[string]Provider{"test": mock},
			active:    "test",
		}

		_, err := reg.Generate(context.Background(), "system", "user")
		if err == nil || err.Error() != "api failure" {
			t.Fatalf("error: got %v, want api failure", err)
		}
	})

	t.Run("error when active name does not match any registered provider", func(t *testing.T) {
		reg := &Registry{
			providers: map[string]Provider{OpenAI: &mockProvider{name: OpenAI}},
			active:    DeepSeek,
		}

		if _, err := reg.Generate(context.Background(), "system", "user"); err == nil {
			t.Fatal("expected error for mismatched active provider, got nil")
		}
	})
}

// ---------- Registry.SetActive ----------

func TestRegistrySetActive(t *testing.T) {
	mockA := &mockProvider{name: "a", response: "from a"}
	mockB := &mockProvider{name: "b", response: "from b"}

	reg := &Registry{
		providers: map[string]Provider{"a": mockA, "b": mockB},
		active:    "a",
	}

	if err := reg.SetActive("b"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if reg.ActiveName() != "b" {
		t.Errorf("ActiveName: got %q", reg.ActiveName())
	}
	if got, _ := reg.Generate(context.Background(), "s", "u"); got != "from b" {
		t.Errorf("Generate after switch: got %q", got)
	}

	if err := reg.SetActive("missing"); err == nil {
		t.Error("expected error switching to unregistered provider")
	}
	if reg.ActiveName() != "b" {
		t.Errorf("failed SetActive must not change the active provider, got %q", reg.ActiveName())
	}
}

func TestRegistryAvailableAndRegister(t *testing.T) {
	reg := &Registry{providers: map[string]Provider{}, active: OpenAI}
	if len(reg.Available()) != 0 {
		t.Fatal("expected empty registry")
	}

	reg.Register(OpenAI, &mockProvider{name: OpenAI})
	reg.Register(DeepSeek, &mockProvider{name: DeepSeek})

	avail := reg.Available()
	if len(avail) != 2 || avail[0] != DeepSeek || avail[1] != OpenAI {
		t.Errorf("Available: got %v, want sorted [deepseek openai]", avail)
	}
	if !reg.HasProvider(DeepSeek) || reg.HasProvider("claude") {
		t.Error("HasProvider mismatch")
	}
}

// ---------- Concurrency ----------

func TestRegistryConcurrency(t *testing.T) {
	mockA := &mockProvider{name: "a", response: "from a"}
	mockB := &mockProvider{name: "b", response: "from b"}

	reg := &Registry{
		providers: map[string]Provider{"a": mockA, "b": mockB},
		active:    "a",
	}

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines * 2)

	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			name := "a"
			if i%2 == 0 {
				name = "b"
			}
			reg.SetActive(name)
		}(i)
	}

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			result, err := reg.Generate(context.Background(), "sys", "usr")
			if err != nil {
				t.Errorf("Generate error during concurrency: %v", err)
				return
			}
			if result != "from a" && result != "from b" {
				t.Errorf("unexpected result: %q", result)
			}
		}()
	}

	wg.Wait()
}

// ---------- NewRegistry ----------

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry(OpenAI, map[string]ProviderConfig{
		OpenAI:   {APIKey: "", Model: "gpt-4o"},
		DeepSeek: {APIKey: "valid-key"},
		"gemini": {APIKey: "key"},
	}, noRetry())

	if reg.HasProvider(OpenAI) {
		t.Error("openai should be skipped (no API key)")
	}
	if !reg.HasProvider(DeepSeek) {
		t.Error("deepseek should be available (has API key)")
	}
	if reg.HasProvider("gemini") {
		t.Error("unknown provider should not be registered")
	}
	if _, err := reg.Active(); err == nil {
		t.Error("active openai has no key, Active should fail")
	}
	if _, ok := reg.ImageGenerator(); ok {
		t.Error("no image generator without an OpenAI key")
	}
}

// ---------- Cached ----------

type mapCache struct {
	mu sync.Mutex
	m  map[string]string
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}

func TestCached(t *testing.T) {
	mock := &mockProvider{name: "test", response: "grouped"}
	p := NewCached(mock, &mapCache{m: map[string]string{}})

	for i := 0; i < 3; i++ {
		got, err := p.Generate(context.Background(), "sys", "same prompt")
		if err != nil || got != "grouped" {
			t.Fatalf("Generate: %q, %v", got, err)
		}
	}
	if mock.calls() != 1 {
		t.Errorf("provider calls: got %d, want 1", mock.calls())
	}

	p.Generate(context.Background(), "sys", "other prompt")
	if mock.calls() != 2 {
		t.Errorf("different prompt should miss the cache, calls = %d", mock.calls())
	}

	if NewCached(mock, nil) != Provider(mock) {
		t.Error("nil cache should return the provider unchanged")
	}
}

func TestCached_ErrorsNotStored(t *testing.T) {
	mock := &mockProvider{name: "test", err: fmt.Errorf("boom")}
	cache := &mapCache{m: map[string]string{}}
	p := NewCached(mock, cache)

	if _, err := p.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
	if len(cache.m) != 0 {
		t.Error("failed responses must not be cached")
	}
}

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey(OpenAI, "gpt-4o", "s", "u")
	if a != CacheKey(OpenAI, "gpt-4o", "s", "u") {
		t.Error("key should be deterministic")
	}
	if a == CacheKey(DeepSeek, "gpt-4o", "s", "u") || a == CacheKey(OpenAI, "gpt-4o-mini", "s", "u") {
		t.Error("key should vary with provider and model")
	}
}

// ---------- Resolve ----------

func TestResolve(t *testing.T) {
	reg := NewRegistry(OpenAI, map[string]ProviderConfig{
		OpenAI:   {APIKey: "server-key", BaseURL: "http://openai.test/v1/"},
		DeepSeek: {BaseURL: "http://deepseek.test"},
	}, noRetry())

	tests := []struct {
		name      string
		override  Override
		wantName  string
		wantModel string
		wantErr   error
	}{
		{"server default", Override{}, OpenAI, DefaultOpenAIModel, nil},
		{"server default with model", Override{Model: "gpt-4o-mini"}, OpenAI, "gpt-4o-mini", nil},
		{"workspace key", Override{Provider: DeepSeek, APIKey: "ws-key"}, DeepSeek, DefaultDeepSeekModel, nil},
		{"workspace key and model", Override{Provider: DeepSeek, APIKey: "ws-key", Model: "deepseek-reasoner"}, DeepSeek, "deepseek-reasoner", nil},
		{"no server key", Override{Provider: DeepSeek}, "", "", ErrNoProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := reg.Resolve(tt.override)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if p.Name() != tt.wantName || p.Model() != tt.wantModel {
				t.Errorf("got %s/%s, want %s/%s", p.Name(), p.Model(), tt.wantName, tt.wantModel)
			}
		})
	}
}

func TestResolveReusesServerProvider(t *testing.T) {
	reg := NewRegistry(OpenAI, map[string]ProviderConfig{OpenAI: {APIKey: "k"}}, noRetry())
	want, _ := reg.Get(OpenAI)
	got, err := reg.Resolve(Override{Model: DefaultOpenAIModel})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Error("expected the registered provider to be reused")
	}
}

func TestActiveWrapsErrNoProvider(t *testing.T) {
	reg := NewRegistry("missing", nil, noRetry())
	if _, err := reg.Active(); !errors.Is(err, ErrNoProvider) {
		t.Errorf("expected ErrNoProvider, got %v", err)
	}
}
