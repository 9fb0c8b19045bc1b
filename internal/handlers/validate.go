// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"promptdeck/internal/ai"
	"promptdeck/internal/models"
	"promptdeck/internal/netguard"
)

// Validation limits for API inputs.
const (
	maxHistoryTitleLen = 120
	maxImagePromptLen  = 4_000
	maxImportImages    = 500
	maxKeywords        = 500
	maxModelNameLen    = 100
	maxAPIKeyLen       = 300
)

// parsePositiveInt parses a strictly positive integer.
func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

// parseID parses a UUID path parameter.
func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	return id, err == nil
}

// truncate cuts a string to maxLen runes, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

// validateAISettings checks an AI settings update and returns the first
// problem found.
func validateAISettings(cfg models.AIConfig) string {
	switch cfg.Provider {
	case "", ai.OpenAI, ai.DeepSeek:
	default:
		return "Provider must be openai or deepseek."
	}
	if utf8.RuneCountInString(cfg.Model) > maxModelNameLen {
		return "Model name is too long (max 100 characters)."
	}
	for _, k := range []string{cfg.OpenAIAPIKey, cfg.DeepSeekAPIKey} {
		if len(k) > maxAPIKeyLen {
			return "API key is too long."
		}
		if strings.ContainsAny(k, " \t\r\n") {
			return "API keys cannot contain whitespace."
		}
	}
	return ""
}

// validateImageURL checks that an image URL is an absolute http(s) URL
// that does not name a local or private host. Names that resolve to one
// are refused later by the gallery's dialer.
func validateImageURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("image URL must be http or https")
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return errors.New("image URL has no host")
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return errors.New("image URL must point to a public host")
	}
	if ip, err := netip.ParseAddr(host); err == nil && !netguard.Allowed(ip) {
		return errors.New("image URL must point to a public host")
	}
	return nil
}
