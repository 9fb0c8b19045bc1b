// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import "errors"

// ErrNoProvider means neither the workspace nor the server has a usable
// provider for the request.
var ErrNoProvider = errors.New("ai: no provider configured")

// Override is a workspace's own provider choice. Empty fields fall back to
// the server defaults.
type Override struct {
	Provider string
	Model    string
	APIKey   string
}

// Resolve returns the provider a request should use. A workspace key builds
// a fresh provider with the server's base URL for that provider; otherwise
// the server-default provider is used, rebuilt only when the workspace picks
// a different model.
func (r *Registry) Resolve(o Override) (Provider, error) {
	name := o.Provider
	if name == "" {
		name = r.ActiveName()
	}

	r.mu.RLock()
	cfg := r.configs[name]
	p, ok := r.providers[name]
	hc := r.hc
	r.mu.RUnlock()

	if o.APIKey != "" {
		cfg.APIKey = o.APIKey
		if o.Model != "" {
			cfg.Model = o.Model
		}
		return New(name, cfg, hc)
	}

	if !ok {
		return nil, ErrNoProvider
	}
	if o.Model == "" || o.Model == p.Model() || cfg.APIKey == "" {
		return p, nil
	}
	cfg.Model = o.Model
	return New(name, cfg, hc)
}
