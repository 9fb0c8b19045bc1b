// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// ErrTemplatesExhausted is returned when every template candidate for an
// ad field is already in use and the ad can't be filled.
var ErrTemplatesExhausted = errors.New("ads: filler templates exhausted")

// Tracker enforces cross-ad uniqueness of titles and descriptions and
// backfills ads to their exact line counts.
type Tracker struct {
	used UsedSet
}

// NewTracker returns a Tracker backed by the given used set.
func NewTracker(used UsedSet) *Tracker {
	return &Tracker{used: used}
}

// Reset forgets every claimed line.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.used.Reset(ctx)
}

// Normalize processes ads in order. Each line is fitted to its limit;
// lines that collide case-insensitively with anything already claimed
// (in an earlier ad, earlier in the same ad, or in an earlier request)
// are dropped; the remainder is filled from templates built on the ad's
// keywords. Normalize returns new ads and leaves the input untouched.
// When it fails, every line it claimed is released again so a retry
// starts from the same used set.
func (t *Tracker) Normalize(ctx context.Context, in []Ad) (_ []Ad, err error) {
	claimed := make(map[Field][]string)
	defer func() {
		if err != nil {
			t.release(ctx, claimed)
		}
	}()

	out := make([]Ad, 0, len(in))
	for i, ad := range in {
		titles, err := t.fill(ctx, claimed, FieldTitle, ad.Titles, ad.Keywords, TitleCount, MaxTitleLen)
		if err != nil {
			return nil, fmt.Errorf("ad %d titles: %w", i, err)
		}
		descs, err := t.fill(ctx, claimed, FieldDescription, ad.Descriptions, ad.Keywords, DescriptionCount, MaxDescLen)
		if err != nil {
			return nil, fmt.Errorf("ad %d descriptions: %w", i, err)
		}

		ad.Titles = titles
		ad.Descriptions = descs
		ad.Keywords = append([]string(nil), ad.Keywords...)
		ad.Path1 = PathSegment(ad.Path1)
		ad.Path2 = PathSegment(ad.Path2)
		if ad.Path1 == "" && len(ad.Keywords) > 0 {
			ad.Path1 = PathSegment(ad.Keywords[0])
		}
		out = append(out, ad)
	}
	return out, nil
}

// release gives back the keys claimed by a failed Normalize. It runs
// even when ctx is already cancelled.
func (t *Tracker) release(ctx context.Context, claimed map[Field][]string) {
	ctx = context.WithoutCancel(ctx)
	for field, keys := range claimed {
		if len(keys) == 0 {
			continue
		}
		if err := t.used.Release(ctx, field, keys...); err != nil {
			slog.Warn("release ad text", "field", field, "count", len(keys), "error", err)
		}
	}
}

// fill accepts proposed lines first and then template candidates until
// want lines are claimed.
func (t *Tracker) fill(ctx context.Context, claimed map[Field][]string, field Field, proposed, keywords []string, want, max int) ([]string, error) {
	lines := make([]string, 0, want)

	for _, p := range proposed {
		if len(lines) == want {
			break
		}
		line := Fit(p, max)
		ok, err := t.claim(ctx, claimed, field, line)
		if err != nil {
			return nil, err
		}
		if ok {
			lines = append(lines, line)
		}
	}
	accepted := len(lines)

	var claimErr error
	candidates(field, keywords, func(c string) bool {
		if len(lines) == want {
			return false
		}
		if utf8.RuneCountInString(c) > max {
			return true
		}
		ok, err := t.claim(ctx, claimed, field, c)
		if err != nil {
			claimErr = err
			return false
		}
		if ok {
			lines = append(lines, c)
		}
		return true
	})
	if claimErr != nil {
		return nil, claimErr
	}

	if len(lines) < want {
		return nil, fmt.Errorf("%s: have %d of %d: %w", field, len(lines), want, ErrTemplatesExhausted)
	}
	if filled := len(lines) - accepted; filled > 0 {
		slog.Debug("ads backfilled", "field", field, "accepted", accepted, "filled", filled)
	}
	return lines, nil
}

func (t *Tracker) claim(ctx context.Context, claimed map[Field][]string, field Field, text string) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return false, nil
	}
	ok, err := t.used.Claim(ctx, field, key)
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", field, err)
	}
	if ok {
		claimed[field] = append(claimed[field], key)
	}
	return ok, nil
}
