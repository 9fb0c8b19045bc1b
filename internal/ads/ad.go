// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ads generates Google Ads responsive search ad copy from keyword
// groups, keeps headline and description text unique across a workspace,
// backfills short ads from deterministic templates and exports the result
// in the Google Ads Editor bulk-upload layout.
package ads

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"promptdeck/internal/slug"
)

// Google Ads responsive search ad limits.
const (
	TitleCount       = 15
	DescriptionCount = 4
	MaxTitleLen      = 30
	MaxDescLen       = 90
	MaxPathLen       = 15
)

// Ad is a single responsive search ad. After normalization it always has
// exactly TitleCount titles and DescriptionCount descriptions.
type Ad struct {
	Titles       []string `json:"titles"`
	Descriptions []string `json:"descriptions"`
	Keywords     []string `json:"keywords"`
	FinalURL     string   `json:"final_url"`
	Path1        string   `json:"path1,omitempty"`
	Path2        string   `json:"path2,omitempty"`
	CampaignName string   `json:"campaign_name,omitempty"`
	AdGroupName  string   `json:"ad_group_name,omitempty"`
}

// KeywordGroup is a named set of closely related keywords; each group
// becomes one ad group.
type KeywordGroup struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Fit collapses whitespace and shortens s to at most max runes, cutting at
// the last word boundary when possible and dropping dangling punctuation.
func Fit(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	r := []rune(s)[:max]
	cut := string(r)
	// Step back to a space only when the cut lands inside a word.
	if next := []rune(s)[max]; unicode.IsLetter(next) || unicode.IsDigit(next) {
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRightFunc(cut, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;:-–—&", r)
	})
}

// PathSegment turns free text into a display-URL path segment.
func PathSegment(s string) string {
	return slug.Limit(slug.Generate(s), MaxPathLen)
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
