// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"strings"
	"unicode/utf8"
)

// DefaultPartSize is the part length used when the caller doesn't set one.
const DefaultPartSize = 4_000

// breakMarkers are tried in order; the first one found in the window wins.
var breakMarkers = []string{"\n\n", "\n", ". ", ", ", " "}

// Split breaks text into parts of at most max runes, cutting just after the
// last paragraph break, line break, sentence end, comma or space inside each
// window. When a window contains none of those it is cut at max runes.
// Concatenating the parts always yields the original text. max <= 0 disables
// splitting.
//
// The search is greedy and never backtracks, so the part count is not
// minimal.
func Split(text string, max int) []string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return []string{text}
	}

	var parts []string
	rest := text
	for utf8.RuneCountInString(rest) > max {
		window := rest[:runeOffset(rest, max)]

		cut := len(window)
		for _, m := range breakMarkers {
			if i := strings.LastIndex(window, m); i >= 0 {
				cut = i + len(m)
				break
			}
		}

		parts = append(parts, rest[:cut])
		rest = rest[cut:]
	}
	if rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

// runeOffset returns the byte offset of the n-th rune of s.
func runeOffset(s string, n int) int {
	i := 0
	for off := range s {
		if i == n {
			return off
		}
		i++
	}
	return len(s)
}
