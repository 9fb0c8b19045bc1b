// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// HTTPOptions tunes the outbound client shared by all providers.
type HTTPOptions struct {
	Timeout      time.Duration // per attempt; default 90s
	RetryMax     int           // default 2; negative disables retries
	RetryWaitMin time.Duration // default 1s
	RetryWaitMax time.Duration // default 10s
}

// retryLogger routes retryablehttp's printf-style logging into slog.
type retryLogger struct{}

func (retryLogger) Printf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...))
}

// NewHTTPClient returns an *http.Client that retries connection errors,
// 429s and 5xx responses with exponential backoff.
func NewHTTPClient(opts HTTPOptions) *http.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 90 * time.Second
	}
	if opts.RetryMax == 0 {
		opts.RetryMax = 2
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = time.Second
	}
	if opts.RetryWaitMax <= 0 {
		opts.RetryWaitMax = 10 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = opts.RetryWaitMin
	rc.RetryWaitMax = opts.RetryWaitMax
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = retryLogger{}
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		retry, err := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		if retry || err != nil {
			return retry, err
		}
		return resp != nil && resp.StatusCode == http.StatusTooManyRequests, nil
	}
	// Hand the final response back to the caller instead of a generic
	// "giving up" error so the provider can read the error body.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return rc.StandardClient()
}
