// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pinterest resolves a Pinterest pin URL to a direct MP4 video
// link by scraping the pin page metadata.
package pinterest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"promptdeck/internal/netguard"
)

// Errors returned by Resolve.
var (
	ErrInvalidURL = errors.New("pinterest: not a Pinterest pin URL")
	ErrNoVideo    = errors.New("pinterest: no video found for this pin")
	ErrFetch      = errors.New("pinterest: pin page could not be fetched")
)

// Pin pages serve a bot-check page to unknown agents.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

var mp4RE = regexp.MustCompile(`https?://[^"'\s<>\\]+?\.mp4`)

// Video is a resolved pin video.
type Video struct {
	PinURL     string   `json:"pin_url"`
	URL        string   `json:"url"`
	Candidates []string `json:"candidates"`
}

// Resolver fetches pin pages. The zero value is not usable; use New.
type Resolver struct {
	http *resty.Client

	// AllowHost reports whether a pin URL host may be fetched.
	AllowHost func(host string) bool
}

// maxRedirects bounds the pin.it short-link chain.
const maxRedirects = 5

// pinterestDomains are the registrable domains Pinterest serves pins from.
// Subdomains ("www.", "de.") of each are accepted too.
var pinterestDomains = map[string]bool{
	"pin.it":           true,
	"pinterest.com":    true,
	"pinterest.at":     true,
	"pinterest.ca":     true,
	"pinterest.ch":     true,
	"pinterest.cl":     true,
	"pinterest.co.kr":  true,
	"pinterest.co.uk":  true,
	"pinterest.com.au": true,
	"pinterest.com.mx": true,
	"pinterest.de":     true,
	"pinterest.dk":     true,
	"pinterest.es":     true,
	"pinterest.fr":     true,
	"pinterest.ie":     true,
	"pinterest.it":     true,
	"pinterest.jp":     true,
	"pinterest.nz":     true,
	"pinterest.ph":     true,
	"pinterest.pt":     true,
	"pinterest.se":     true,
}

// New creates a resolver with the given request timeout. Its connections
// are limited to public addresses.
func New(timeout time.Duration) *Resolver {
	return newResolver(timeout, netguard.Transport())
}

func newResolver(timeout time.Duration, transport http.RoundTripper) *Resolver {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	r := &Resolver{AllowHost: IsPinterestHost}
	r.http = resty.New().
		SetTransport(transport).
		SetTimeout(timeout).
		SetRetryCount(1).
		SetRedirectPolicy(
			resty.FlexibleRedirectPolicy(maxRedirects),
			resty.RedirectPolicyFunc(func(req *http.Request, _ []*http.Request) error {
				if !r.AllowHost(req.URL.Hostname()) {
					return fmt.Errorf("%w: redirect to %s", ErrInvalidURL, req.URL.Hostname())
				}
				return nil
			}),
		).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	return r
}

// IsPinterestHost reports whether host is one of Pinterest's domains or a
// subdomain of one.
func IsPinterestHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for {
		if pinterestDomains[host] {
			return true
		}
		_, parent, ok := strings.Cut(host, ".")
		if !ok {
			return false
		}
		host = parent
	}
}

// Resolve fetches the pin page and returns its video, preferring the
// 720p rendition.
func (r *Resolver) Resolve(ctx context.Context, pinURL string) (*Video, error) {
	u, err := url.Parse(strings.TrimSpace(pinURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || !r.AllowHost(u.Hostname()) {
		return nil, ErrInvalidURL
	}

	resp, err := r.http.R().SetContext(ctx).Get(u.String())
	if errors.Is(err, ErrInvalidURL) {
		return nil, ErrInvalidURL
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrFetch, resp.Status())
	}

	candidates := ExtractVideoURLs(resp.String())
	if len(candidates) == 0 {
		return nil, ErrNoVideo
	}

	return &Video{
		PinURL:     u.String(),
		URL:        pickBest(candidates),
		Candidates: candidates,
	}, nil
}

// ExtractVideoURLs returns the distinct MP4 URLs embedded in a pin page,
// in document order. JSON-escaped slashes are unescaped first.
func ExtractVideoURLs(page string) []string {
	page = strings.NewReplacer(`\u002F`, "/", `\u002f`, "/", `\/`, "/").Replace(page)

	var out []string
	seen := make(map[string]bool)
	for _, m := range mp4RE.FindAllString(page, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

func pickBest(candidates []string) string {
	for _, c := range candidates {
		if strings.Contains(c, "720p") {
			return c
		}
	}
	return candidates[0]
}
