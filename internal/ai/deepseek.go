// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultDeepSeekBaseURL = "https://api.deepseek.com"

// deepSeekProvider implements the Provider interface using DeepSeek's
// OpenAI-compatible chat completions endpoint (POST /chat/completions).
type deepSeekProvider struct {
	config ProviderConfig
	client *http.Client
}

func newDeepSeek(cfg ProviderConfig, hc *http.Client) *deepSeekProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDeepSeekBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultDeepSeekModel
	}
	return &deepSeekProvider{config: cfg, client: hc}
}

func (p *deepSeekProvider) Name() string  { return DeepSeek }
func (p *deepSeekProvider) Model() string { return p.config.Model }

// Generate sends a chat completion request and returns the assistant's
// response text.
func (p *deepSeekProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := chatRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("deepseek marshal: %w", err)
	}

	url := p.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("deepseek request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("deepseek read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errorFromBody(DeepSeek, resp.StatusCode, respBody)
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("deepseek unmarshal: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("deepseek: empty response (no choices)")
	}

	return result.Choices[0].Message.Content, nil
}

// --- Request/Response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
