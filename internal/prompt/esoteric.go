// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"promptdeck/internal/catalog"
)

const (
	maxSubjectLen  = 500
	maxElements    = 6
	maxImagePrompt = 4_000 // DALL·E 3 prompt limit
)

// EsotericForm describes an esoteric-themed image to generate.
type EsotericForm struct {
	Subject     string   `json:"subject" yaml:"subject"`
	Elements    []string `json:"elements" yaml:"elements"`
	Mood        string   `json:"mood" yaml:"mood"`
	ColorScheme string   `json:"color_scheme" yaml:"color_scheme"`
	Composition string   `json:"composition" yaml:"composition"`
	NoText      bool     `json:"no_text" yaml:"no_text"`
	Extra       string   `json:"extra" yaml:"extra"`
}

// Validate checks the esoteric form. It returns nil when valid.
func (f *EsotericForm) Validate() error {
	errs := ValidationErrors{}

	requireText(errs, "subject", f.Subject, maxSubjectLen)
	if len(f.Elements) == 0 {
		errs["elements"] = "Choose at least one element."
	} else if len(f.Elements) > maxElements {
		errs["elements"] = fmt.Sprintf("Choose at most %d elements.", maxElements)
	} else {
		optionList(errs, "elements", catalog.EsotericElements, f.Elements)
	}
	optionalOption(errs, "mood", catalog.EsotericMoods, f.Mood)
	optionalOption(errs, "color_scheme", catalog.ColorSchemes, f.ColorScheme)
	optionalText(errs, "composition", f.Composition, maxSubjectLen)
	optionalText(errs, "extra", f.Extra, maxSubjectLen)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// BuildImagePrompt assembles a single-paragraph image-model prompt.
// The result is capped at the image API's prompt limit.
func BuildImagePrompt(f *EsotericForm) string {
	var parts []string

	parts = append(parts, "A highly detailed esoteric illustration of "+strings.TrimSpace(f.Subject))

	elems := catalog.MustLookup(catalog.EsotericElements).Labels(f.Elements)
	for i := range elems {
		elems[i] = strings.ToLower(elems[i])
	}
	parts = append(parts, "featuring "+joinNatural(elems))

	if f.Mood != "" {
		parts = append(parts, "with a "+strings.ToLower(catalog.MustLookup(catalog.EsotericMoods).LabelFor(f.Mood))+" atmosphere")
	}
	if f.ColorScheme != "" {
		parts = append(parts, "rendered in a "+strings.ToLower(catalog.MustLookup(catalog.ColorSchemes).LabelFor(f.ColorScheme))+" palette")
	}
	if c := strings.TrimSpace(f.Composition); c != "" {
		parts = append(parts, "composition: "+c)
	}

	out := strings.Join(parts, ", ") + "."
	if e := strings.TrimSpace(f.Extra); e != "" {
		out += " " + e
	}
	if f.NoText {
		out += " No text, letters or watermarks in the image."
	}

	if utf8.RuneCountInString(out) > maxImagePrompt {
		out = string([]rune(out)[:maxImagePrompt])
	}
	return out
}

// joinNatural joins items as "a", "a and b" or "a, b and c".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
