// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ads

import (
	"fmt"
	"strings"
)

// MatchType is a Google Ads keyword match type.
type MatchType string

const (
	MatchBroad  MatchType = "broad"
	MatchPhrase MatchType = "phrase"
	MatchExact  MatchType = "exact"
)

// ParseMatchType validates a match type name; empty means broad.
func ParseMatchType(s string) (MatchType, error) {
	switch MatchType(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchBroad:
		return MatchBroad, nil
	case MatchPhrase:
		return MatchPhrase, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", fmt.Errorf("ads: unknown match type %q", s)
}

// FormatKeyword applies the match-type notation: [exact], "phrase", broad.
// Existing notation on kw is stripped first.
func FormatKeyword(kw string, mt MatchType) string {
	kw = strings.TrimSpace(kw)
	kw = strings.TrimPrefix(kw, "[")
	kw = strings.TrimSuffix(kw, "]")
	kw = strings.Trim(kw, `"`)
	kw = strings.Join(strings.Fields(kw), " ")

	switch mt {
	case MatchExact:
		return "[" + kw + "]"
	case MatchPhrase:
		return `"` + kw + `"`
	}
	return kw
}

// ParseKeywords splits free text on newlines, commas and semicolons and
// returns the distinct non-empty keywords (case-insensitive) in input order.
func ParseKeywords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})
	return dedupe(fields)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.Join(strings.Fields(k), " ")
		if k == "" {
			continue
		}
		lk := strings.ToLower(k)
		if seen[lk] {
			continue
		}
		seen[lk] = true
		out = append(out, k)
	}
	return out
}
