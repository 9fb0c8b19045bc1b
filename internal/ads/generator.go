// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrUnexpectedFormat means the model replied with something that is not
// the JSON shape we asked for.
var ErrUnexpectedFormat = errors.New("ads: unexpected response format")

const (
	defaultConcurrency = 4
	maxAdsPerGroup     = 5
	maxGroups          = 20
)

// TextGenerator is the subset of an AI provider the generator needs.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generator drafts ad copy with an LLM and normalizes it with a Tracker.
type Generator struct {
	llm         TextGenerator
	concurrency int
}

// NewGenerator returns a Generator. concurrency bounds parallel LLM calls;
// values below 1 use the default.
func NewGenerator(llm TextGenerator, concurrency int) *Generator {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Generator{llm: llm, concurrency: concurrency}
}

// Request describes one generation batch.
type Request struct {
	Groups       []KeywordGroup `json:"groups"`
	FinalURL     string         `json:"final_url"`
	CampaignName string         `json:"campaign_name"`
	Path1        string         `json:"path1"`
	Path2        string         `json:"path2"`
	AdsPerGroup  int            `json:"ads_per_group"`
	Language     string         `json:"language"`
	Tone         string         `json:"tone"`
}

// Validate checks the request and applies defaults.
func (r *Request) Validate() error {
	if len(r.Groups) == 0 {
		return errors.New("at least one keyword group is required")
	}
	if len(r.Groups) > maxGroups {
		return fmt.Errorf("at most %d keyword groups per request", maxGroups)
	}
	for i, g := range r.Groups {
		if len(dedupe(g.Keywords)) == 0 {
			return fmt.Errorf("group %d has no keywords", i+1)
		}
	}
	if strings.TrimSpace(r.FinalURL) == "" {
		return errors.New("final URL is required")
	}
	if r.AdsPerGroup < 1 {
		r.AdsPerGroup = 1
	}
	if r.AdsPerGroup > maxAdsPerGroup {
		r.AdsPerGroup = maxAdsPerGroup
	}
	if r.Language == "" {
		r.Language = "English"
	}
	return nil
}

type draft struct {
	Titles       []string `json:"titles"`
	Descriptions []string `json:"descriptions"`
}

// Generate drafts ads for every group in parallel, then normalizes them
// sequentially in group order so uniqueness decisions are deterministic.
func (g *Generator) Generate(ctx context.Context, req Request, tracker *Tracker) ([]Ad, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	drafts := make([][]draft, len(req.Groups))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, grp := range req.Groups {
		eg.Go(func() error {
			d, err := g.draftGroup(egCtx, req, grp)
			if err != nil {
				return fmt.Errorf("group %q: %w", grp.Name, err)
			}
			drafts[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var batch []Ad
	for i, grp := range req.Groups {
		keywords := dedupe(grp.Keywords)
		for _, d := range drafts[i] {
			batch = append(batch, Ad{
				Titles:       d.Titles,
				Descriptions: d.Descriptions,
				Keywords:     keywords,
				FinalURL:     strings.TrimSpace(req.FinalURL),
				Path1:        req.Path1,
				Path2:        req.Path2,
				CampaignName: req.CampaignName,
				AdGroupName:  grp.Name,
			})
		}
	}

	return tracker.Normalize(ctx, batch)
}

func (g *Generator) draftGroup(ctx context.Context, req Request, grp KeywordGroup) ([]draft, error) {
	system := fmt.Sprintf(`You are a senior Google Ads copywriter. Write %d responsive search ads in %s.

Rules:
- Each ad has exactly %d headlines of at most %d characters and %d descriptions of at most %d characters.
- Every headline and description must be different from all others.
- Use the keywords naturally; no keyword stuffing, no exclamation marks in headlines.
- Respond with JSON only, no prose and no code fences, in this shape:
{"ads":[{"titles":["..."],"descriptions":["..."]}]}`,
		req.AdsPerGroup, req.Language, TitleCount, MaxTitleLen, DescriptionCount, MaxDescLen)

	user := fmt.Sprintf("Ad group: %s\nKeywords: %s\nLanding page: %s",
		grp.Name, strings.Join(dedupe(grp.Keywords), ", "), req.FinalURL)
	if req.Tone != "" {
		user += "\nTone: " + req.Tone
	}

	reply, err := g.llm.Generate(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Ads []draft `json:"ads"`
	}
	if err := json.Unmarshal([]byte(ExtractJSON(reply)), &parsed); err != nil {
		slog.Warn("ads draft unparseable", "group", grp.Name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}
	if len(parsed.Ads) == 0 {
		return nil, fmt.Errorf("%w: no ads in reply", ErrUnexpectedFormat)
	}
	if len(parsed.Ads) > req.AdsPerGroup {
		parsed.Ads = parsed.Ads[:req.AdsPerGroup]
	}
	return parsed.Ads, nil
}

// GroupKeywords asks the LLM to cluster keywords into ad groups. Keywords
// the model leaves out are collected into an "Other" group so nothing is
// lost.
func (g *Generator) GroupKeywords(ctx context.Context, keywords []string, maxGroupCount int) ([]KeywordGroup, error) {
	keywords = dedupe(keywords)
	if len(keywords) == 0 {
		return nil, errors.New("no keywords to group")
	}
	if maxGroupCount < 1 || maxGroupCount > maxGroups {
		maxGroupCount = 10
	}

	system := fmt.Sprintf(`You organise search keywords into tightly themed Google Ads ad groups.
Create at most %d groups. Each keyword belongs to exactly one group. Give each group a short descriptive name.
Respond with JSON only, no prose and no code fences, in this shape:
[{"name":"...","keywords":["..."]}]`, maxGroupCount)

	reply, err := g.llm.Generate(ctx, system, strings.Join(keywords, "\n"))
	if err != nil {
		return nil, err
	}

	groups, err := ParseGroups(reply)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]bool)
	for _, grp := range groups {
		for _, k := range grp.Keywords {
			grouped[strings.ToLower(k)] = true
		}
	}
	var rest []string
	for _, k := range keywords {
		if !grouped[strings.ToLower(k)] {
			rest = append(rest, k)
		}
	}
	if len(rest) > 0 {
		groups = append(groups, KeywordGroup{Name: "Other", Keywords: rest})
	}
	return groups, nil
}

// ParseGroups decodes keyword groups from an LLM reply. Both a bare array
// and an object with a "groups" array are accepted; groups without a name
// or keywords are dropped.
func ParseGroups(reply string) ([]KeywordGroup, error) {
	raw := ExtractJSON(reply)

	var groups []KeywordGroup
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &groups); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
	} else {
		var wrapped struct {
			Groups []KeywordGroup `json:"groups"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		groups = wrapped.Groups
	}

	out := make([]KeywordGroup, 0, len(groups))
	for _, grp := range groups {
		grp.Name = strings.TrimSpace(grp.Name)
		grp.Keywords = dedupe(grp.Keywords)
		if grp.Name == "" || len(grp.Keywords) == 0 {
			continue
		}
		out = append(out, grp)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no keyword groups", ErrUnexpectedFormat)
	}
	return out, nil
}

// ExtractJSON strips code fences and surrounding prose from an LLM reply,
// returning the outermost JSON object or array.
func ExtractJSON(reply string) string {
	s := strings.TrimSpace(reply)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s[start:]
	}
	return s[start : end+1]
}
