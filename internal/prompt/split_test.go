// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{
			name: "fits in one part",
			text: "short text",
			max:  100,
			want: []string{"short text"},
		},
		{
			name: "exactly max",
			text: "abcde",
			max:  5,
			want: []string{"abcde"},
		},
		{
			name: "empty text",
			text: "",
			max:  10,
			want: []string{""},
		},
		{
			name: "no limit",
			text: strings.Repeat("x", 50),
			max:  0,
			want: []string{strings.Repeat("x", 50)},
		},
		{
			name: "prefers paragraph break",
			text: "first para.\n\nsecond, para",
			max:  20,
			want: []string{"first para.\n\n", "second, para"},
		},
		{
			name: "falls back to newline",
			text: "line one\nline two is long",
			max:  12,
			want: []string{"line one\n", "line two is ", "long"},
		},
		{
			name: "sentence before comma",
			text: "One. Two, three four",
			max:  12,
			want: []string{"One. ", "Two, ", "three four"},
		},
		{
			name: "comma before space",
			text: "alpha beta, gamma",
			max:  12,
			want: []string{"alpha beta, ", "gamma"},
		},
		{
			name: "raw cut without markers",
			text: "abcdefghij",
			max:  4,
			want: []string{"abcd", "efgh", "ij"},
		},
		{
			name: "multibyte runes are not split",
			text: "ééééé",
			max:  2,
			want: []string{"éé", "éé", "é"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%q, %d): got %q, want %q", tt.text, tt.max, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("part %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitReconstructsAndRespectsMax(t *testing.T) {
	text := strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit. ", 40) +
		"\n\n" + strings.Repeat("Sed do eiusmod tempor.\n", 30) +
		strings.Repeat("z", 300)

	for _, max := range []int{1, 7, 50, 128, 999} {
		parts := Split(text, max)
		if strings.Join(parts, "") != text {
			t.Fatalf("max=%d: parts do not reconstruct the input", max)
		}
		for i, p := range parts {
			if n := utf8.RuneCountInString(p); n > max {
				t.Errorf("max=%d: part %d has %d runes", max, i, n)
			}
			if p == "" {
				t.Errorf("max=%d: part %d is empty", max, i)
			}
		}
	}
}
