// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt turns validated form selections into natural-language
// prompts and splits long prompts into display-sized parts.
package prompt

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"promptdeck/internal/catalog"
)

// Field limits for free-text inputs (counted in runes).
const (
	maxProjectNameLen = 120
	maxDescriptionLen = 4_000
	maxAudienceLen    = 1_000
	maxVideoDescLen   = 1_000
	maxNotesLen       = 4_000
	maxPageNameLen    = 80
	maxPages          = 30
)

// WebsiteForm captures everything the website prompt builder needs.
// Enumerated fields hold catalog values, not labels.
type WebsiteForm struct {
	ProjectName         string   `json:"project_name" yaml:"project_name"`
	BusinessDescription string   `json:"business_description" yaml:"business_description"`
	TargetAudience      string   `json:"target_audience" yaml:"target_audience"`
	DesignStyle         string   `json:"design_style" yaml:"design_style"`
	Layout              string   `json:"layout" yaml:"layout"`
	ColorScheme         string   `json:"color_scheme" yaml:"color_scheme"`
	PrimaryFont         string   `json:"primary_font" yaml:"primary_font"`
	SecondaryFont       string   `json:"secondary_font" yaml:"secondary_font"`
	Animations          []string `json:"animations" yaml:"animations"`
	Borders             string   `json:"borders" yaml:"borders"`
	SEO                 []string `json:"seo" yaml:"seo"`
	Performance         []string `json:"performance" yaml:"performance"`
	Pages               []string `json:"pages" yaml:"pages"`
	IncludeVideo        bool     `json:"include_background_video" yaml:"include_background_video"`
	VideoDescription    string   `json:"video_description" yaml:"video_description"`
	ResponsiveDesign    bool     `json:"responsive_design" yaml:"responsive_design"`
	DarkModeToggle      bool     `json:"dark_mode_toggle" yaml:"dark_mode_toggle"`
	AdditionalNotes     string   `json:"additional_notes" yaml:"additional_notes"`
}

// ValidationErrors maps a form field name to a user-facing message.
type ValidationErrors map[string]string

// Error implements error with the messages in field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Validate checks required fields, lengths and catalog membership.
// It returns nil when the form is valid.
func (f *WebsiteForm) Validate() error {
	errs := ValidationErrors{}

	requireText(errs, "project_name", f.ProjectName, maxProjectNameLen)
	requireText(errs, "business_description", f.BusinessDescription, maxDescriptionLen)
	optionalText(errs, "target_audience", f.TargetAudience, maxAudienceLen)
	optionalText(errs, "additional_notes", f.AdditionalNotes, maxNotesLen)

	requireOption(errs, "design_style", catalog.DesignStyles, f.DesignStyle)
	optionalOption(errs, "layout", catalog.Layouts, f.Layout)
	optionalOption(errs, "color_scheme", catalog.ColorSchemes, f.ColorScheme)
	requireOption(errs, "primary_font", catalog.Fonts, f.PrimaryFont)
	optionalOption(errs, "secondary_font", catalog.Fonts, f.SecondaryFont)
	optionalOption(errs, "borders", catalog.Borders, f.Borders)
	optionList(errs, "animations", catalog.Animations, f.Animations)
	optionList(errs, "seo", catalog.SEO, f.SEO)
	optionList(errs, "performance", catalog.Performance, f.Performance)

	if f.IncludeVideo {
		requireText(errs, "video_description", f.VideoDescription, maxVideoDescLen)
	}

	if len(f.Pages) > maxPages {
		errs["pages"] = fmt.Sprintf("At most %d pages are allowed.", maxPages)
	} else {
		for _, p := range f.Pages {
			p = strings.TrimSpace(p)
			if p == "" {
				errs["pages"] = "Page names cannot be empty."
				break
			}
			if utf8.RuneCountInString(p) > maxPageNameLen {
				errs["pages"] = fmt.Sprintf("Page names are limited to %d characters.", maxPageNameLen)
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func requireText(errs ValidationErrors, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		errs[field] = "This field is required."
		return
	}
	optionalText(errs, field, value, max)
}

func optionalText(errs ValidationErrors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		errs[field] = fmt.Sprintf("Too long (max %d characters).", max)
	}
}

func requireOption(errs ValidationErrors, field, name, value string) {
	if value == "" {
		errs[field] = "Please choose an option."
		return
	}
	optionalOption(errs, field, name, value)
}

func optionalOption(errs ValidationErrors, field, name, value string) {
	if value == "" {
		return
	}
	if !catalog.MustLookup(name).Has(value) {
		errs[field] = fmt.Sprintf("Unknown option %q.", value)
	}
}

func optionList(errs ValidationErrors, field, name string, values []string) {
	c := catalog.MustLookup(name)
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !c.Has(v) {
			errs[field] = fmt.Sprintf("Unknown option %q.", v)
			return
		}
		if seen[v] {
			errs[field] = fmt.Sprintf("Option %q selected twice.", v)
			return
		}
		seen[v] = true
	}
}
