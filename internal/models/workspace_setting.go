// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Workspace setting keys.
const (
	SettingAIProvider     = "ai_provider"
	SettingAIModel        = "ai_model"
	SettingOpenAIAPIKey   = "openai_api_key"
	SettingDeepSeekAPIKey = "deepseek_api_key"

	// SettingLegacyLoggedIn is an obsolete flag removed on every load.
	SettingLegacyLoggedIn = "isLoggedIn"
)

// WorkspaceSettings is a convenience map for accessing settings by key.
type WorkspaceSettings map[string]string

// Get returns the value for a key, or the fallback if the key doesn't exist.
func (s WorkspaceSettings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// AIConfig is a workspace's chosen provider and credentials.
type AIConfig struct {
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`
}

// AIConfigFrom reads the AI settings out of a settings map.
func AIConfigFrom(s WorkspaceSettings) AIConfig {
	return AIConfig{
		Provider:       s.Get(SettingAIProvider, ""),
		Model:          s.Get(SettingAIModel, ""),
		OpenAIAPIKey:   s.Get(SettingOpenAIAPIKey, ""),
		DeepSeekAPIKey: s.Get(SettingDeepSeekAPIKey, ""),
	}
}

// Settings converts the config back into storable key/value pairs.
func (c AIConfig) Settings() WorkspaceSettings {
	return WorkspaceSettings{
		SettingAIProvider:     c.Provider,
		SettingAIModel:        c.Model,
		SettingOpenAIAPIKey:   c.OpenAIAPIKey,
		SettingDeepSeekAPIKey: c.DeepSeekAPIKey,
	}
}

// APIKey returns the key for the given provider name.
func (c AIConfig) APIKey(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIAPIKey
	case "deepseek":
		return c.DeepSeekAPIKey
	}
	return ""
}

// Masked returns a copy safe to send to a browser: keys are reduced to
// their last four characters.
func (c AIConfig) Masked() AIConfig {
	c.OpenAIAPIKey = MaskKey(c.OpenAIAPIKey)
	c.DeepSeekAPIKey = MaskKey(c.DeepSeekAPIKey)
	return c
}

// MaskKey hides all but the last four characters of a secret.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("•", 8)
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}

// IsMasked reports whether v is a value produced by MaskKey, so updates
// that echo a masked key back can keep the stored one.
func IsMasked(v string) bool {
	return strings.HasPrefix(v, "••••••••")
}
