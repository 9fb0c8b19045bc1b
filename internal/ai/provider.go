// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the LLM and image providers
// PromptDeck talks to (OpenAI and DeepSeek). Each provider implements the
// Provider interface; the Registry holds the server-wide defaults and the
// New factory builds per-workspace providers from user-supplied keys.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Provider names.
const (
	OpenAI   = "openai"
	DeepSeek = "deepseek"
)

// Default models used when a config leaves Model empty.
const (
	DefaultOpenAIModel   = "gpt-4o"
	DefaultDeepSeekModel = "deepseek-chat"
	DefaultImageModel    = "dall-e-3"
)

// Provider defines the interface that all AI providers must implement.
// Each provider handles its own HTTP communication and response parsing.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the user's request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "deepseek").
	Name() string

	// Model returns the chat model the provider sends requests to.
	Model() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}

// New builds a provider by name. hc is used for all outbound requests;
// nil falls back to NewHTTPClient defaults.
func New(name string, cfg ProviderConfig, hc *http.Client) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai: %s API key is not set", name)
	}
	if hc == nil {
		hc = NewHTTPClient(HTTPOptions{})
	}
	switch name {
	case OpenAI:
		return newOpenAI(cfg, hc), nil
	case DeepSeek:
		return newDeepSeek(cfg, hc), nil
	}
	return nil, fmt.Errorf("ai: unknown provider %q", name)
}

// Registry manages the server-default AI providers and selects the active
// one. It supports runtime switching by changing the active provider name.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	configs   map[string]ProviderConfig
	hc        *http.Client
	active    string
	moderator Moderator // nil when no OpenAI key is configured
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped.
// With an OpenAI key, image prompts are screened by the moderation endpoint.
func NewRegistry(active string, configs map[string]ProviderConfig, hc *http.Client) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		configs:   make(map[string]ProviderConfig, len(configs)),
		hc:        hc,
		active:    active,
	}

	for name, cfg := range configs {
		r.configs[name] = cfg
		if cfg.APIKey == "" {
			continue
		}
		p, err := New(name, cfg, hc)
		if err != nil {
			continue
		}
		r.providers[name] = p
	}

	if cfg, ok := configs[OpenAI]; ok && cfg.APIKey != "" {
		r.moderator = newOpenAIModerator(cfg.APIKey, cfg.BaseURL, hc)
	}

	return r
}

// Generate calls the active provider's Generate method.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, userPrompt)
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrNoProvider, r.active)
	}
	return p, nil
}

// Get returns a named provider.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	return p, ok
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the sorted names of all providers that have API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a provider in the registry.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}

// CheckPrompt runs a prompt through the moderation API. It reports the
// prompt as safe when no moderator is configured; providers still apply
// their own safety filters.
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	if r.moderator == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return r.moderator.CheckSafety(ctx, prompt)
}
