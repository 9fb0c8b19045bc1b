// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns free text into URL and filename friendly segments.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Generate lowercases s and joins its runs of letters and digits with single
// hyphens. Apostrophes are dropped so contractions stay one word.
// Example: "Tarot & Crystals: Kate's 2026" → "tarot-crystals-kates-2026"
func Generate(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '\'' || r == '’':
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Limit shortens a slug to at most max runes without leaving a trailing
// hyphen.
func Limit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimRight(string([]rune(s)[:max]), "-")
}
