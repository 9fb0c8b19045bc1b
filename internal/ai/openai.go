// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1/"

// openAIProvider implements Provider and ImageGenerator on top of the
// official OpenAI SDK.
type openAIProvider struct {
	config ProviderConfig
	client *openai.Client
}

// newOpenAI creates a new OpenAI provider. Retries are left to hc.
func newOpenAI(cfg ProviderConfig, hc *http.Client) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	return &openAIProvider{
		config: cfg,
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithHTTPClient(hc),
			option.WithMaxRetries(0),
		),
	}
}

func (p *openAIProvider) Name() string  { return OpenAI }
func (p *openAIProvider) Model() string { return p.config.Model }

// Generate sends a chat completion request to OpenAI and returns the
// assistant's response text.
func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		}),
		Model: openai.F(p.config.Model),
	})
	if err != nil {
		return "", p.wrapError(err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response (no choices)")
	}
	return completion.Choices[0].Message.Content, nil
}

// GenerateImage creates a single image and returns its hosted URL.
func (p *openAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         openai.F(req.Prompt),
		Model:          openai.F(openai.ImageModel(p.config.ImageModel)),
		N:              openai.F(int64(1)),
		Size:           openai.F(openai.ImageGenerateParamsSize(req.Size)),
		Quality:        openai.F(openai.ImageGenerateParamsQuality(req.Quality)),
		Style:          openai.F(openai.ImageGenerateParamsStyle(req.Style)),
		ResponseFormat: openai.F(openai.ImageGenerateParamsResponseFormatURL),
	})
	if err != nil {
		return nil, p.wrapError(err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, fmt.Errorf("openai: image response contained no URL")
	}
	return &ImageResult{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

// wrapError converts SDK errors into *APIError so callers can surface the
// provider's message without depending on the SDK.
func (p *openAIProvider) wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &APIError{
			Provider: OpenAI,
			Status:   apiErr.StatusCode,
			Message:  strings.TrimSpace(apiErr.Message),
		}
	}
	return fmt.Errorf("openai request: %w", err)
}
